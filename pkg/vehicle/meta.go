// Package vehicle decodes the state snapshots reported for a vehicle.
//
// Every snapshot is built once from a record.Record and never changes
// afterwards. Missing or mistyped fields take their documented defaults, so a
// snapshot is always fully populated even when the upstream payload is not.
package vehicle

import (
	"time"

	"github.com/autopeer-io/vfacts/pkg/record"
)

// Meta is common to every snapshot.
type Meta struct {
	// Valid is false when the snapshot was built from an empty record.
	Valid bool `json:"valid"`
	// Timestamp is when upstream sampled the state. It is the zero time when
	// the record carries no timestamp.
	Timestamp time.Time `json:"timestamp"`
}

func newMeta(r record.Record) Meta {
	m := Meta{Valid: !r.Empty()}
	if ms := r.Int64("timestamp"); ms > 0 {
		m.Timestamp = time.UnixMilli(ms).UTC()
	}
	return m
}

// Metadata returns m. It lets every snapshot satisfy Snapshot through the
// embedded Meta.
func (m Meta) Metadata() Meta { return m }

// CToF converts a temperature in Celsius to Fahrenheit.
func CToF(c float64) float64 { return c*9/5 + 32 }
