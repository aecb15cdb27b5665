package topic

import (
	"strings"
)

// TopicBuilder constructs and parses the topics of one namespace.
type TopicBuilder struct {
	// root is the base namespace for all topics, e.g. "vfacts/v1".
	root string
}

// NewTopicBuilder creates a TopicBuilder for root. Surrounding slashes are
// ignored.
func NewTopicBuilder(root string) *TopicBuilder {
	return &TopicBuilder{root: strings.Trim(root, "/")}
}

// Root returns the namespace.
func (b *TopicBuilder) Root() string { return b.root }

// State returns the topic on which raw snapshots of one category arrive.
func (b *TopicBuilder) State(category, vehicleID string) string {
	return b.build(SuffixState, category, vehicleID)
}

// StateWildcard subscribes to every category of every vehicle.
// Result: {root}/state/+/+
func (b *TopicBuilder) StateWildcard() string {
	return b.build(SuffixState, Wildcard, Wildcard)
}

// Facts returns the topic on which a decoded snapshot is republished.
func (b *TopicBuilder) Facts(category, vehicleID string) string {
	return b.build(SuffixFacts, category, vehicleID)
}

// Presence returns the topic on which presence transitions are announced.
func (b *TopicBuilder) Presence(vehicleID string) string {
	return b.build(SuffixPresence, vehicleID)
}

// ParseState splits a topic produced by State. ok is false for any other
// topic, including one with an empty category or vehicle ID.
func (b *TopicBuilder) ParseState(topic string) (category, vehicleID string, ok bool) {
	rest, found := strings.CutPrefix(topic, b.root+"/"+SuffixState+"/")
	if !found {
		return "", "", false
	}
	category, vehicleID, found = strings.Cut(rest, "/")
	if !found || category == "" || vehicleID == "" || strings.Contains(vehicleID, "/") {
		return "", "", false
	}
	return category, vehicleID, true
}

// build joins root and segments: {root}/{segment}/...
func (b *TopicBuilder) build(segments ...string) string {
	return b.root + "/" + strings.Join(segments, "/")
}
