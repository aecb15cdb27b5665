package core

import (
	"context"

	"github.com/autopeer-io/vfacts/pkg/vehicle"
)

// FactsNotifier republishes decoded facts. In vfacts this is implemented by
// the MQTT outbound adapter.
type FactsNotifier interface {
	// NotifyFacts publishes the decoded form of one snapshot.
	NotifyFacts(ctx context.Context, vehicleID string, category vehicle.Category, facts any) error

	// NotifyPresence publishes a presence change.
	NotifyPresence(ctx context.Context, vehicleID string, state any) error
}
