// Package presence derives whether a vehicle is online, asleep or offline
// from the description snapshots it reports and from how recently it was
// heard from.
package presence

import (
	"context"
	"sort"
	"sync"
	"time"

	"k8s.io/utils/clock"

	fsmutil "github.com/autopeer-io/vfacts/internal/pkg/util/fsm"
	"github.com/autopeer-io/vfacts/pkg/log"
)

// Transition describes one presence change.
type Transition struct {
	VehicleID string    `json:"vehicle_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Event     string    `json:"event"`
	At        time.Time `json:"at"`
}

// Status is the current presence of a vehicle.
type Status struct {
	VehicleID string    `json:"vehicle_id"`
	State     string    `json:"state"`
	LastSeen  time.Time `json:"last_seen"`
}

// Listener is called for every transition, outside of the tracker lock.
type Listener func(ctx context.Context, t Transition)

type entry struct {
	machine  *FiniteStateMachine
	lastSeen time.Time
}

// Tracker holds one state machine per vehicle.
type Tracker struct {
	mu       sync.Mutex
	clock    clock.PassiveClock
	staleFor time.Duration
	vehicles map[string]*entry
	listener Listener

	// pending collects transitions raised by callbacks while mu is held.
	pending []Transition
}

// NewTracker returns a tracker that takes a vehicle offline once it has not
// been seen for staleFor. A zero staleFor disables that.
func NewTracker(clk clock.PassiveClock, staleFor time.Duration, listener Listener) *Tracker {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Tracker{
		clock:    clk,
		staleFor: staleFor,
		vehicles: make(map[string]*entry),
		listener: listener,
	}
}

// EventFor maps an upstream vehicle state to a presence event. The second
// result is false for states that carry no presence information.
func EventFor(reported string) (string, bool) {
	switch reported {
	case "online", "waking":
		return EventWake, true
	case "asleep":
		return EventSleep, true
	case "offline":
		return EventLose, true
	}
	return "", false
}

// SetStaleAfter changes the stale period used by later sweeps. Zero disables
// sweeping.
func (t *Tracker) SetStaleAfter(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.staleFor = d
}

// Touch records that vehicleID was heard from.
func (t *Tracker) Touch(vehicleID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entryLocked(vehicleID).lastSeen = t.clock.Now()
}

// Observe records a reported vehicle state and returns the transition it
// caused, if any.
func (t *Tracker) Observe(ctx context.Context, vehicleID, reported string) (*Transition, error) {
	event, ok := EventFor(reported)

	t.mu.Lock()
	e := t.entryLocked(vehicleID)
	e.lastSeen = t.clock.Now()
	if !ok {
		t.mu.Unlock()
		log.Debug("Ignoring vehicle state without presence meaning", "vehicleID", vehicleID, "state", reported)
		return nil, nil
	}
	_, err := fsmutil.Fire(ctx, e.machine.FSM, event, false)
	fired := t.drainLocked()
	t.mu.Unlock()

	t.notify(ctx, fired)
	if err != nil {
		return nil, err
	}
	if len(fired) == 0 {
		return nil, nil
	}
	return &fired[len(fired)-1], nil
}

// Sweep takes every vehicle that has been quiet for longer than the stale
// period offline, except the ones that are asleep.
func (t *Tracker) Sweep(ctx context.Context) []Transition {
	t.mu.Lock()
	if t.staleFor <= 0 {
		t.mu.Unlock()
		return nil
	}
	now := t.clock.Now()
	for id, e := range t.vehicles {
		if now.Sub(e.lastSeen) < t.staleFor || e.machine.Is(StateOffline) {
			continue
		}
		if _, err := fsmutil.Fire(ctx, e.machine.FSM, EventLose, true); err != nil {
			log.Error(err, "Failed to mark vehicle offline", "vehicleID", id)
		}
	}
	fired := t.drainLocked()
	t.mu.Unlock()

	t.notify(ctx, fired)
	return fired
}

// Run calls Sweep every interval until ctx is done.
func (t *Tracker) Run(ctx context.Context, clk clock.Clock, interval time.Duration) {
	ticker := clk.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			t.Sweep(ctx)
		}
	}
}

// State returns the current presence of vehicleID, StateUnknown if it was
// never seen.
func (t *Tracker) State(vehicleID string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.vehicles[vehicleID]; ok {
		return e.machine.Current()
	}
	return StateUnknown
}

// List returns the status of every tracked vehicle sorted by ID.
func (t *Tracker) List() []Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Status, 0, len(t.vehicles))
	for id, e := range t.vehicles {
		out = append(out, Status{VehicleID: id, State: e.machine.Current(), LastSeen: e.lastSeen})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VehicleID < out[j].VehicleID })
	return out
}

// Forget stops tracking vehicleID.
func (t *Tracker) Forget(vehicleID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.vehicles[vehicleID]; ok {
		e.machine.release()
		delete(t.vehicles, vehicleID)
	}
}

func (t *Tracker) entryLocked(vehicleID string) *entry {
	e, ok := t.vehicles[vehicleID]
	if !ok {
		e = &entry{machine: newFiniteStateMachine(vehicleID, t.record)}
		t.vehicles[vehicleID] = e
	}
	return e
}

// record runs inside FSM callbacks, with mu held.
func (t *Tracker) record(_ context.Context, tr Transition) {
	tr.At = t.clock.Now()
	t.pending = append(t.pending, tr)
}

func (t *Tracker) drainLocked() []Transition {
	fired := t.pending
	t.pending = nil
	return fired
}

func (t *Tracker) notify(ctx context.Context, fired []Transition) {
	for _, tr := range fired {
		log.Info("Vehicle presence changed", "vehicleID", tr.VehicleID, "from", tr.From, "to", tr.To)
		if t.listener != nil {
			t.listener(ctx, tr)
		}
	}
}
