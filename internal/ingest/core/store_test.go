package core

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"

	"github.com/autopeer-io/vfacts/pkg/vehicle"
)

func TestStore(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clk := clocktesting.NewFakePassiveClock(start)
	s := NewStore(clk)

	_, err := s.Get("vh-1", vehicle.CategoryCharge)
	assert.ErrorIs(t, err, ErrNotFound)

	s.Put("vh-1", vehicle.CategoryCharge, vehicle.ChargeState{BatteryLevel: 50})
	clk.SetTime(start.Add(time.Minute))
	s.Put("vh-1", vehicle.CategoryDescription, vehicle.Description{VIN: "5YJSA1H"})
	s.Put("vh-0", vehicle.CategoryDrive, vehicle.DriveState{})

	e, err := s.Get("vh-1", vehicle.CategoryCharge)
	require.NoError(t, err)
	assert.Equal(t, start, e.ReceivedAt)
	assert.Equal(t, 50, e.Snapshot.(vehicle.ChargeState).BatteryLevel)

	d, err := s.Description("vh-1")
	require.NoError(t, err)
	assert.Equal(t, "5YJSA1H", d.VIN)
	_, err = s.Description("vh-0")
	assert.ErrorIs(t, err, ErrNotFound)

	list := s.Vehicles()
	require.Len(t, list, 2)
	assert.Equal(t, "vh-0", list[0].VehicleID)
	assert.Equal(t, []vehicle.Category{vehicle.CategoryCharge, vehicle.CategoryDescription}, list[1].Categories)
	assert.Equal(t, start.Add(time.Minute), list[1].LastUpdate)

	assert.True(t, s.Delete("vh-0"))
	assert.False(t, s.Delete("vh-0"))
	assert.Len(t, s.Vehicles(), 1)
}

func TestStoreReplacesWholeEntry(t *testing.T) {
	s := NewStore(nil)
	first := s.Put("vh-1", vehicle.CategoryCharge, vehicle.ChargeState{BatteryLevel: 10})
	s.Put("vh-1", vehicle.CategoryCharge, vehicle.ChargeState{BatteryLevel: 20})

	assert.Equal(t, 10, first.Snapshot.(vehicle.ChargeState).BatteryLevel)
	e, err := s.Get("vh-1", vehicle.CategoryCharge)
	require.NoError(t, err)
	assert.Equal(t, 20, e.Snapshot.(vehicle.ChargeState).BatteryLevel)
}

func TestStoreConcurrent(t *testing.T) {
	s := NewStore(nil)
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				s.Put("vh", vehicle.CategoryCharge, vehicle.ChargeState{BatteryLevel: i*100 + j})
				_, _ = s.Get("vh", vehicle.CategoryCharge)
				_ = s.Vehicles()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, s.Vehicles(), 1)
}
