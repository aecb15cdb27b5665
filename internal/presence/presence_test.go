package presence

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"

	"github.com/autopeer-io/vfacts/internal/pkg/metrics"
)

func gauge(state string) float64 {
	return testutil.ToFloat64(metrics.VehiclePresence.WithLabelValues(state))
}

func TestEventFor(t *testing.T) {
	tests := []struct {
		reported string
		event    string
		ok       bool
	}{
		{"online", EventWake, true},
		{"waking", EventWake, true},
		{"asleep", EventSleep, true},
		{"offline", EventLose, true},
		{"", "", false},
		{"parked", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.reported, func(t *testing.T) {
			event, ok := EventFor(tt.reported)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.event, event)
		})
	}
}

func TestObserve(t *testing.T) {
	ctx := context.Background()
	clk := clocktesting.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	var mu sync.Mutex
	var seen []Transition
	tr := NewTracker(clk, time.Minute, func(_ context.Context, t Transition) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, t)
	})

	onlineBefore := gauge(StateOnline)

	got, err := tr.Observe(ctx, "vh-1", "online")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, StateUnknown, got.From)
	assert.Equal(t, StateOnline, got.To)
	assert.Equal(t, clk.Now(), got.At)
	assert.Equal(t, onlineBefore+1, gauge(StateOnline))

	got, err = tr.Observe(ctx, "vh-1", "online")
	require.NoError(t, err)
	assert.Nil(t, got, "same state is not a transition")

	got, err = tr.Observe(ctx, "vh-1", "something-new")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, StateOnline, tr.State("vh-1"))

	_, err = tr.Observe(ctx, "vh-1", "asleep")
	require.NoError(t, err)
	assert.Equal(t, StateAsleep, tr.State("vh-1"))
	assert.Equal(t, onlineBefore, gauge(StateOnline))

	assert.Len(t, seen, 2)
	assert.Equal(t, StateUnknown, tr.State("never-seen"))
}

func TestSweep(t *testing.T) {
	ctx := context.Background()
	clk := clocktesting.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	tr := NewTracker(clk, time.Minute, nil)

	_, err := tr.Observe(ctx, "awake", "online")
	require.NoError(t, err)
	_, err = tr.Observe(ctx, "sleeping", "asleep")
	require.NoError(t, err)
	tr.Touch("fresh")

	clk.Step(30 * time.Second)
	assert.Empty(t, tr.Sweep(ctx))

	tr.Touch("fresh")
	clk.Step(45 * time.Second)
	fired := tr.Sweep(ctx)
	require.Len(t, fired, 1)
	assert.Equal(t, "awake", fired[0].VehicleID)
	assert.Equal(t, StateOffline, fired[0].To)

	assert.Equal(t, StateOffline, tr.State("awake"))
	assert.Equal(t, StateAsleep, tr.State("sleeping"))
	assert.Equal(t, StateUnknown, tr.State("fresh"))

	assert.Empty(t, tr.Sweep(ctx), "offline vehicles are not swept twice")

	_, err = tr.Observe(ctx, "awake", "online")
	require.NoError(t, err)
	assert.Equal(t, StateOnline, tr.State("awake"))
}

func TestSweepDisabled(t *testing.T) {
	clk := clocktesting.NewFakeClock(time.Now())
	tr := NewTracker(clk, 0, nil)
	tr.Touch("vh-1")
	clk.Step(time.Hour)
	assert.Nil(t, tr.Sweep(context.Background()))

	tr.SetStaleAfter(30 * time.Minute)
	fired := tr.Sweep(context.Background())
	require.Len(t, fired, 1)
	assert.Equal(t, StateOffline, fired[0].To)

	tr.SetStaleAfter(0)
	tr.Touch("vh-2")
	clk.Step(time.Hour)
	assert.Nil(t, tr.Sweep(context.Background()))
}

func TestListAndForget(t *testing.T) {
	ctx := context.Background()
	tr := NewTracker(clocktesting.NewFakeClock(time.Now()), time.Minute, nil)

	_, _ = tr.Observe(ctx, "b", "online")
	_, _ = tr.Observe(ctx, "a", "asleep")

	list := tr.List()
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].VehicleID)
	assert.Equal(t, StateAsleep, list[0].State)

	asleepBefore := gauge(StateAsleep)
	tr.Forget("a")
	assert.Len(t, tr.List(), 1)
	assert.Equal(t, asleepBefore-1, gauge(StateAsleep))
}

func TestRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	clk := clocktesting.NewFakeClock(time.Now())
	tr := NewTracker(clk, time.Minute, nil)
	_, err := tr.Observe(ctx, "vh-1", "online")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		tr.Run(ctx, clk, 10*time.Second)
		close(done)
	}()

	require.Eventually(t, clk.HasWaiters, time.Second, time.Millisecond)
	clk.Step(2 * time.Minute)
	require.Eventually(t, func() bool { return tr.State("vh-1") == StateOffline }, time.Second, time.Millisecond)

	cancel()
	<-done
}
