package mqtt

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicsMatch(t *testing.T) {
	tests := []struct {
		filter string
		topic  string
		want   bool
	}{
		{"vfacts/state/charge/vh-1", "vfacts/state/charge/vh-1", true},
		{"vfacts/state/+/+", "vfacts/state/charge/vh-1", true},
		{"vfacts/state/+/+", "vfacts/state/charge", false},
		{"vfacts/state/+/+", "vfacts/state/charge/vh-1/x", false},
		{"vfacts/#", "vfacts/state/charge/vh-1", true},
		{"vfacts/facts/+/+", "vfacts/state/charge/vh-1", false},
		{"vfacts/state/charge", "vfacts/state/drive", false},
	}
	for _, tt := range tests {
		t.Run(tt.filter+" "+tt.topic, func(t *testing.T) {
			assert.Equal(t, tt.want, topicsMatch(tt.filter, tt.topic))
		})
	}
}

func TestTopicFilter(t *testing.T) {
	assert.Equal(t, "vfacts/state/+/+", topicFilter("$share/ingest/vfacts/state/+/+"))
	assert.Equal(t, "vfacts/state/+/+", topicFilter("vfacts/state/+/+"))
	assert.Equal(t, "$share/broken", topicFilter("$share/broken"))
}

func TestConfigValidate(t *testing.T) {
	_, err := NewClient(nil)
	assert.Error(t, err)

	_, err = NewClient(&ClientConfig{})
	assert.Error(t, err)

	_, err = NewClient(&ClientConfig{BrokerURL: "http://broker:1883"})
	assert.Error(t, err)

	_, err = NewClient(&ClientConfig{BrokerURL: "tcp://broker:1883", WillQoS: 3})
	assert.Error(t, err)

	cfg := &ClientConfig{BrokerURL: "tcp://broker:1883"}
	c, err := NewClient(cfg)
	assert.NoError(t, err)
	assert.False(t, c.IsConnected())
	assert.EqualValues(t, 60, cfg.KeepAlive)
	assert.NotZero(t, cfg.HandlerTimeout)
	assert.ErrorIs(t, c.Publish(t.Context(), "t", 0, false, nil), errNotStarted)
}

// Publishers may run before and while Start installs the connection manager.
func TestPublishConcurrentWithStart(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	c, err := NewClient(&ClientConfig{BrokerURL: "tcp://127.0.0.1:1", ConnectTimeout: 50 * time.Millisecond})
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, c.Start(ctx))
	}()
	go func() {
		defer wg.Done()
		for range 50 {
			pctx, pcancel := context.WithTimeout(ctx, time.Millisecond)
			err := c.Publish(pctx, "vfacts/facts/charge/vh-1", 0, false, []byte(`{}`))
			pcancel()
			assert.Error(t, err, "never connected")
		}
	}()
	wg.Wait()

	assert.False(t, c.IsConnected())
	dctx, dcancel := context.WithTimeout(context.Background(), time.Second)
	defer dcancel()
	c.Disconnect(dctx)
}
