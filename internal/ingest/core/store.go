package core

import (
	"errors"
	"sort"
	"sync"
	"time"

	"k8s.io/utils/clock"

	"github.com/autopeer-io/vfacts/pkg/vehicle"
)

// ErrNotFound is returned when no snapshot is known for a vehicle and category.
var ErrNotFound = errors.New("not found")

// Entry is the latest snapshot of one category for one vehicle. Entries are
// never modified once stored.
type Entry struct {
	VehicleID  string           `json:"vehicle_id"`
	Category   vehicle.Category `json:"category"`
	ReceivedAt time.Time        `json:"received_at"`
	Snapshot   vehicle.Snapshot `json:"snapshot"`
}

// VehicleInfo summarizes what is known about one vehicle.
type VehicleInfo struct {
	VehicleID  string             `json:"vehicle_id"`
	Categories []vehicle.Category `json:"categories"`
	LastUpdate time.Time          `json:"last_update"`
}

// Store keeps the latest snapshot per vehicle and category in memory.
type Store struct {
	mu      sync.RWMutex
	clock   clock.PassiveClock
	entries map[string]map[vehicle.Category]*Entry
}

func NewStore(clk clock.PassiveClock) *Store {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Store{
		clock:   clk,
		entries: make(map[string]map[vehicle.Category]*Entry),
	}
}

// Put replaces the snapshot stored for vehicleID and category.
func (s *Store) Put(vehicleID string, category vehicle.Category, snap vehicle.Snapshot) *Entry {
	e := &Entry{
		VehicleID:  vehicleID,
		Category:   category,
		ReceivedAt: s.clock.Now(),
		Snapshot:   snap,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	byCategory, ok := s.entries[vehicleID]
	if !ok {
		byCategory = make(map[vehicle.Category]*Entry, len(vehicle.Categories))
		s.entries[vehicleID] = byCategory
	}
	byCategory[category] = e
	return e
}

func (s *Store) Get(vehicleID string, category vehicle.Category) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.entries[vehicleID][category]; ok {
		return e, nil
	}
	return nil, ErrNotFound
}

// Description returns the latest description snapshot of vehicleID.
func (s *Store) Description(vehicleID string) (vehicle.Description, error) {
	e, err := s.Get(vehicleID, vehicle.CategoryDescription)
	if err != nil {
		return vehicle.Description{}, err
	}
	return e.Snapshot.(vehicle.Description), nil
}

// Vehicles lists every vehicle with at least one snapshot, sorted by ID.
func (s *Store) Vehicles() []VehicleInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]VehicleInfo, 0, len(s.entries))
	for id, byCategory := range s.entries {
		info := VehicleInfo{VehicleID: id}
		for _, c := range vehicle.Categories {
			e, ok := byCategory[c]
			if !ok {
				continue
			}
			info.Categories = append(info.Categories, c)
			if e.ReceivedAt.After(info.LastUpdate) {
				info.LastUpdate = e.ReceivedAt
			}
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VehicleID < out[j].VehicleID })
	return out
}

// Delete drops everything known about vehicleID and reports whether there
// was anything.
func (s *Store) Delete(vehicleID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[vehicleID]
	delete(s.entries, vehicleID)
	return ok
}
