package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/autopeer-io/vfacts/internal/ingest/core"
	pkgmqtt "github.com/autopeer-io/vfacts/pkg/mqtt"
	"github.com/autopeer-io/vfacts/pkg/mqtt/topic"
	"github.com/autopeer-io/vfacts/pkg/vehicle"
)

var _ core.FactsNotifier = (*MQTTNotifier)(nil)

// MQTTNotifier publishes decoded facts as retained JSON messages so that a
// new subscriber immediately gets the latest state.
type MQTTNotifier struct {
	client pkgmqtt.Client
	topics *topic.TopicBuilder
	qos    int
}

// NewMQTTNotifier publishes through client, which must be started by the
// caller. It uses a connection separate from the ingress one.
func NewMQTTNotifier(client pkgmqtt.Client, topics *topic.TopicBuilder, qos int) *MQTTNotifier {
	return &MQTTNotifier{client: client, topics: topics, qos: qos}
}

func (n *MQTTNotifier) NotifyFacts(ctx context.Context, vehicleID string, category vehicle.Category, facts any) error {
	return n.publish(ctx, n.topics.Facts(string(category), vehicleID), facts)
}

func (n *MQTTNotifier) NotifyPresence(ctx context.Context, vehicleID string, state any) error {
	return n.publish(ctx, n.topics.Presence(vehicleID), state)
}

func (n *MQTTNotifier) publish(ctx context.Context, topic string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal payload for %s: %w", topic, err)
	}
	return n.client.Publish(ctx, topic, n.qos, true, payload)
}

// Start connects the egress client.
func (n *MQTTNotifier) Start(ctx context.Context) error {
	return n.client.Start(ctx)
}

// Stop disconnects the egress client.
func (n *MQTTNotifier) Stop(ctx context.Context) {
	n.client.Disconnect(ctx)
}
