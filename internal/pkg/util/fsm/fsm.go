package fsm

import (
	"context"
	"errors"

	"github.com/looplab/fsm"
)

// WrapEvent adapts a callback that returns an error to fsm.Callback. The error
// is stored on the event so that FSM.Event returns it.
func WrapEvent(fn func(ctx context.Context, event *fsm.Event) error) fsm.Callback {
	return func(ctx context.Context, event *fsm.Event) {
		if err := fn(ctx, event); err != nil {
			event.Err = err
		}
	}
}

// Fire triggers event on f and reports whether the state changed. Firing an
// event that leaves the machine where it is, or that a guard cancelled
// without a reason, is not an error.
func Fire(ctx context.Context, f *fsm.FSM, event string, args ...any) (bool, error) {
	err := f.Event(ctx, event, args...)
	if err == nil {
		return true, nil
	}

	var noTransition fsm.NoTransitionError
	if errors.As(err, &noTransition) && noTransition.Err == nil {
		return false, nil
	}
	var canceled fsm.CanceledError
	if errors.As(err, &canceled) && canceled.Err == nil {
		return false, nil
	}
	return false, err
}
