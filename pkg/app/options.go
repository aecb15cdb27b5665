package app

import (
	cliflag "k8s.io/component-base/cli/flag"

	"github.com/autopeer-io/vfacts/pkg/log"
)

// NamedFlagSetOptions is implemented by the options struct of a command.
type NamedFlagSetOptions interface {
	// Flags returns the flags grouped by section for help output.
	Flags() cliflag.NamedFlagSets

	// Complete fills in fields derived from other fields.
	Complete() error

	// Validate checks the options after flags, config file and environment
	// have been applied.
	Validate() error
}

// LogOptionsProvider is implemented by options that carry the log settings.
// The App initializes the global logger from them before running.
type LogOptionsProvider interface {
	LogOptions() *log.Options
}
