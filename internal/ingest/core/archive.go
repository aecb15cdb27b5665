package core

import (
	"context"
	"time"

	"github.com/autopeer-io/vfacts/pkg/vehicle"
)

// Archive keeps raw payloads exactly as they were received.
type Archive interface {
	// Put stores payload and returns the object key it was stored under.
	Put(ctx context.Context, vehicleID string, category vehicle.Category, receivedAt time.Time, payload []byte) (string, error)

	// CheckBucket makes sure the target bucket exists.
	CheckBucket(ctx context.Context) error
}
