package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopeer-io/vfacts/pkg/mqtt/mqtttest"
	"github.com/autopeer-io/vfacts/pkg/mqtt/topic"
	"github.com/autopeer-io/vfacts/pkg/vehicle"
)

func TestMQTTNotifier(t *testing.T) {
	ctx := context.Background()
	client := mqtttest.NewClient()
	n := NewMQTTNotifier(client, topic.NewTopicBuilder("vfacts/v1"), 1)
	require.NoError(t, n.Start(ctx))

	require.NoError(t, n.NotifyFacts(ctx, "vh-1", vehicle.CategoryCharge, vehicle.ChargeState{BatteryLevel: 77}))
	require.NoError(t, n.NotifyPresence(ctx, "vh-1", map[string]string{"state": "asleep"}))

	msgs := client.Published()
	require.Len(t, msgs, 2)
	assert.Equal(t, "vfacts/v1/facts/charge/vh-1", msgs[0].Topic)
	assert.True(t, msgs[0].Retain)
	assert.Equal(t, 1, msgs[0].QoS)

	var charge map[string]any
	require.NoError(t, json.Unmarshal(msgs[0].Payload, &charge))
	assert.EqualValues(t, 77, charge["battery_level"])

	assert.Equal(t, "vfacts/v1/presence/vh-1", msgs[1].Topic)
	assert.JSONEq(t, `{"state":"asleep"}`, string(msgs[1].Payload))

	client.PublishErr = errors.New("broker gone")
	assert.Error(t, n.NotifyFacts(ctx, "vh-1", vehicle.CategoryDrive, vehicle.DriveState{}))

	assert.Error(t, n.NotifyPresence(ctx, "vh-1", func() {}), "unmarshalable payload")
	n.Stop(ctx)
	assert.False(t, client.IsConnected())
}
