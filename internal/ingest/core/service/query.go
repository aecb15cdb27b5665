package service

import (
	"github.com/autopeer-io/vfacts/internal/ingest/core"
	"github.com/autopeer-io/vfacts/internal/presence"
	"github.com/autopeer-io/vfacts/pkg/vehicle"
	"github.com/autopeer-io/vfacts/pkg/vehicle/options"
)

// VehicleView is one row of the vehicle listing.
type VehicleView struct {
	core.VehicleInfo
	Presence string `json:"presence"`
	Name     string `json:"name,omitempty"`
}

// Vehicles lists every known vehicle with its presence.
func (s *Service) Vehicles() []VehicleView {
	infos := s.store.Vehicles()
	out := make([]VehicleView, 0, len(infos))
	for _, info := range infos {
		v := VehicleView{VehicleInfo: info, Presence: s.Presence(info.VehicleID)}
		if d, err := s.store.Description(info.VehicleID); err == nil {
			v.Name = d.Name()
		}
		out = append(out, v)
	}
	return out
}

// Latest returns the latest snapshot of category for vehicleID.
func (s *Service) Latest(vehicleID string, category string) (*core.Entry, error) {
	c, err := vehicle.ParseCategory(category)
	if err != nil {
		return nil, err
	}
	return s.store.Get(vehicleID, c)
}

// Options returns the option summary from the latest description of
// vehicleID.
func (s *Service) Options(vehicleID string) (options.Summary, error) {
	d, err := s.store.Description(vehicleID)
	if err != nil {
		return options.Summary{}, err
	}
	return d.Options().Summary(), nil
}

// Presence returns the presence state of vehicleID.
func (s *Service) Presence(vehicleID string) string {
	if s.presence == nil {
		return presence.StateUnknown
	}
	return s.presence.State(vehicleID)
}

// Forget drops a vehicle from the store and from presence tracking.
func (s *Service) Forget(vehicleID string) bool {
	if s.presence != nil {
		s.presence.Forget(vehicleID)
	}
	return s.store.Delete(vehicleID)
}
