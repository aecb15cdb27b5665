package presence

import (
	"context"

	"github.com/looplab/fsm"

	"github.com/autopeer-io/vfacts/internal/pkg/metrics"
	fsmutil "github.com/autopeer-io/vfacts/internal/pkg/util/fsm"
)

// Presence states.
const (
	StateUnknown = "unknown"
	StateOnline  = "online"
	StateAsleep  = "asleep"
	StateOffline = "offline"
)

const (
	// EventWake fires when upstream reports the vehicle online or waking.
	EventWake = "event_wake"
	// EventSleep fires when upstream reports the vehicle asleep.
	EventSleep = "event_sleep"
	// EventLose fires when upstream reports the vehicle offline or when it
	// has not been heard from for too long.
	EventLose = "event_lose"
)

var allStates = []string{StateUnknown, StateOnline, StateAsleep, StateOffline}

// FiniteStateMachine tracks the presence of one vehicle.
type FiniteStateMachine struct {
	*fsm.FSM
	vehicleID string
	onEnter   func(ctx context.Context, t Transition)
}

func newFiniteStateMachine(vehicleID string, onEnter func(context.Context, Transition)) *FiniteStateMachine {
	f := &FiniteStateMachine{vehicleID: vehicleID, onEnter: onEnter}

	events := fsm.Events{
		{Name: EventWake, Src: allStates, Dst: StateOnline},
		{Name: EventSleep, Src: allStates, Dst: StateAsleep},
		{Name: EventLose, Src: allStates, Dst: StateOffline},
	}

	callbacks := fsm.Callbacks{
		// An asleep vehicle is quiet on purpose; only an explicit report
		// takes it offline.
		"before_" + EventLose: fsmutil.WrapEvent(f.GuardLose),
		"enter_state":         fsmutil.WrapEvent(f.ActionEnterState),
	}

	f.FSM = fsm.NewFSM(StateUnknown, events, callbacks)
	metrics.VehiclePresence.WithLabelValues(StateUnknown).Inc()
	return f
}

// GuardLose cancels a staleness-driven EventLose for an asleep vehicle.
func (f *FiniteStateMachine) GuardLose(_ context.Context, e *fsm.Event) error {
	if stale, _ := firstArg[bool](e); stale && e.Src == StateAsleep {
		e.Cancel()
	}
	return nil
}

// ActionEnterState keeps the presence gauge in step and reports the change.
func (f *FiniteStateMachine) ActionEnterState(ctx context.Context, e *fsm.Event) error {
	metrics.VehiclePresence.WithLabelValues(e.Src).Dec()
	metrics.VehiclePresence.WithLabelValues(e.Dst).Inc()

	if f.onEnter != nil {
		f.onEnter(ctx, Transition{VehicleID: f.vehicleID, From: e.Src, To: e.Dst, Event: e.Event})
	}
	return nil
}

func (f *FiniteStateMachine) release() {
	metrics.VehiclePresence.WithLabelValues(f.Current()).Dec()
}

func firstArg[T any](e *fsm.Event) (T, bool) {
	var zero T
	if len(e.Args) == 0 {
		return zero, false
	}
	v, ok := e.Args[0].(T)
	return v, ok
}
