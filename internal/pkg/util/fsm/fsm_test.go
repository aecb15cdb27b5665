package fsm

import (
	"context"
	"errors"
	"testing"

	"github.com/looplab/fsm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMachine(allowSleep bool, onAsleep error) *fsm.FSM {
	return fsm.NewFSM("asleep",
		fsm.Events{
			{Name: "wake", Src: []string{"asleep", "online"}, Dst: "online"},
			{Name: "sleep", Src: []string{"online"}, Dst: "asleep"},
		},
		fsm.Callbacks{
			"before_sleep": WrapEvent(func(_ context.Context, e *fsm.Event) error {
				if !allowSleep {
					e.Cancel()
				}
				return nil
			}),
			"enter_asleep": WrapEvent(func(_ context.Context, _ *fsm.Event) error {
				return onAsleep
			}),
		},
	)
}

func TestFire(t *testing.T) {
	ctx := context.Background()
	f := newMachine(true, nil)

	changed, err := Fire(ctx, f, "wake")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "online", f.Current())

	changed, err = Fire(ctx, f, "wake")
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = Fire(ctx, f, "unknown")
	assert.Error(t, err)
}

func TestFireCancelledByGuard(t *testing.T) {
	ctx := context.Background()
	f := newMachine(false, nil)

	_, err := Fire(ctx, f, "wake")
	require.NoError(t, err)

	changed, err := Fire(ctx, f, "sleep")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "online", f.Current())
}

func TestWrapEventPropagatesError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	f := newMachine(true, boom)

	_, err := Fire(ctx, f, "wake")
	require.NoError(t, err)

	_, err = Fire(ctx, f, "sleep")
	assert.ErrorIs(t, err, boom)
}
