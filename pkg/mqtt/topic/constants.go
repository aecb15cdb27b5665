package topic

// Standard MQTT wildcard definitions.
const (
	// Wildcard matches exactly one topic level.
	Wildcard = "+"

	// MultiWildcard matches the current level and all below it. It must be
	// the last level of a filter.
	MultiWildcard = "#"
)

// Topic segments. Changing them breaks every publisher already in the field.
const (
	// SuffixState carries raw snapshots from the poller.
	// Structure: {root}/state/{category}/{vehicleID}
	SuffixState = "state"

	// SuffixFacts carries decoded snapshots.
	// Structure: {root}/facts/{category}/{vehicleID}
	SuffixFacts = "facts"

	// SuffixPresence carries presence transitions.
	// Structure: {root}/presence/{vehicleID}
	SuffixPresence = "presence"
)
