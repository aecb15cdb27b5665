package ingest

import (
	"errors"
	"time"

	"github.com/spf13/pflag"

	"github.com/autopeer-io/vfacts/pkg/options"
)

var _ options.IOptions = (*IngestOptions)(nil)

// IngestOptions controls what happens to a snapshot after it is decoded.
type IngestOptions struct {
	// Publish republishes decoded facts and presence changes over MQTT.
	Publish bool `json:"publish" mapstructure:"publish"`

	// Archive keeps every raw payload in the S3 bucket.
	Archive bool `json:"archive" mapstructure:"archive"`

	// StaleAfter takes a vehicle offline once it has been quiet that long.
	// Zero disables it.
	StaleAfter time.Duration `json:"stale-after" mapstructure:"stale-after"`

	SweepInterval time.Duration `json:"sweep-interval" mapstructure:"sweep-interval"`
}

func NewIngestOptions() *IngestOptions {
	return &IngestOptions{
		Publish:       true,
		Archive:       false,
		StaleAfter:    15 * time.Minute,
		SweepInterval: 30 * time.Second,
	}
}

func (o *IngestOptions) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	if o.StaleAfter < 0 {
		errs = append(errs, errors.New("--ingest.stale-after must not be negative"))
	}
	if o.StaleAfter > 0 && o.SweepInterval <= 0 {
		errs = append(errs, errors.New("--ingest.sweep-interval must be positive"))
	}
	return errs
}

func (o *IngestOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.BoolVar(&o.Publish, "ingest.publish", o.Publish, "Republish decoded facts to {topic-root}/facts/{category}/{vehicle}.")
	fs.BoolVar(&o.Archive, "ingest.archive", o.Archive, "Archive raw payloads to the S3 bucket.")
	fs.DurationVar(&o.StaleAfter, "ingest.stale-after", o.StaleAfter, "Mark a vehicle offline after this long without a snapshot. 0 disables.")
	fs.DurationVar(&o.SweepInterval, "ingest.sweep-interval", o.SweepInterval, "How often stale vehicles are looked for.")
}
