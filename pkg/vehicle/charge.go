package vehicle

import (
	"fmt"
	"math"

	"github.com/autopeer-io/vfacts/pkg/enum"
	"github.com/autopeer-io/vfacts/pkg/record"
)

// ChargingState is the charging_state of a charge snapshot.
type ChargingState int

const (
	ChargingUnknown ChargingState = iota
	ChargingComplete
	ChargingCharging
	ChargingDisconnected
	ChargingStopped
	ChargingNoPower
	ChargingStarting
)

var chargingStates = enum.NewTable("ChargingState",
	enum.Variant[ChargingState]{Value: ChargingUnknown, Tag: "Unknown", Name: "Unknown"},
	enum.Variant[ChargingState]{Value: ChargingComplete, Tag: "Complete", Name: "Complete"},
	enum.Variant[ChargingState]{Value: ChargingCharging, Tag: "Charging", Name: "Charging"},
	enum.Variant[ChargingState]{Value: ChargingDisconnected, Tag: "Disconnected", Name: "Disconnected"},
	enum.Variant[ChargingState]{Value: ChargingStopped, Tag: "Stopped", Name: "Stopped"},
	enum.Variant[ChargingState]{Value: ChargingNoPower, Tag: "NoPower", Name: "No Power"},
	enum.Variant[ChargingState]{Value: ChargingStarting, Tag: "Starting", Name: "Starting"},
)

func (s ChargingState) String() string { return chargingStates.Name(s) }

// MarshalText renders the upstream tag.
func (s ChargingState) MarshalText() ([]byte, error) { return []byte(chargingStates.Tag(s)), nil }

// ChargeState is the charge_state snapshot.
type ChargeState struct {
	Meta

	ChargingState ChargingState `json:"charging_state"`

	BatteryLevel       int     `json:"battery_level"`
	UsableBatteryLevel int     `json:"usable_battery_level"`
	BatteryRange       float64 `json:"battery_range"`
	EstBatteryRange    float64 `json:"est_battery_range"`
	IdealBatteryRange  float64 `json:"ideal_battery_range"`
	BatteryHeaterOn    bool    `json:"battery_heater_on"`
	NotEnoughPowerHeat bool    `json:"not_enough_power_to_heat"`

	ChargeToMaxRange      bool `json:"charge_to_max_range"`
	MaxRangeChargeCounter int  `json:"max_range_charge_counter"`
	ChargeLimitSOC        int  `json:"charge_limit_soc"`
	ChargeLimitSOCMax     int  `json:"charge_limit_soc_max"`
	ChargeLimitSOCMin     int  `json:"charge_limit_soc_min"`
	ChargeLimitSOCStd     int  `json:"charge_limit_soc_std"`

	ChargeRate              float64 `json:"charge_rate"`
	TimeToFullCharge        float64 `json:"time_to_full_charge"`
	ChargeEnergyAdded       float64 `json:"charge_energy_added"`
	ChargeMilesAddedRated   float64 `json:"charge_miles_added_rated"`
	ChargeMilesAddedIdeal   float64 `json:"charge_miles_added_ideal"`
	ChargeEnableRequest     bool    `json:"charge_enable_request"`
	UserChargeEnableRequest string  `json:"user_charge_enable_request"`
	ChargeCurrentRequest    int     `json:"charge_current_request"`
	ChargeCurrentRequestMax int     `json:"charge_current_request_max"`

	ChargerVoltage       int    `json:"charger_voltage"`
	ChargerPilotCurrent  int    `json:"charger_pilot_current"`
	ChargerActualCurrent int    `json:"charger_actual_current"`
	ChargerPower         int    `json:"charger_power"`
	ChargerPhases        int    `json:"charger_phases"`
	ChargePortDoorOpen   bool   `json:"charge_port_door_open"`
	ChargePortLatch      string `json:"charge_port_latch"`
	ConnChargeCable      string `json:"conn_charge_cable"`
	TripCharging         bool   `json:"trip_charging"`
	FastChargerPresent   bool   `json:"fast_charger_present"`
	FastChargerBrand     string `json:"fast_charger_brand"`
	FastChargerType      string `json:"fast_charger_type"`

	ScheduledChargingPending   bool  `json:"scheduled_charging_pending"`
	ScheduledChargingStartTime int64 `json:"scheduled_charging_start_time"`
	ManagedChargingActive      bool  `json:"managed_charging_active"`
	ManagedChargingCanceled    bool  `json:"managed_charging_user_canceled"`
	ManagedChargingStartTime   int64 `json:"managed_charging_start_time"`
}

// NewChargeState decodes r. charger_pilot_current defaults to -1.
func NewChargeState(r record.Record) ChargeState {
	return ChargeState{
		Meta:          newMeta(r),
		ChargingState: record.Enum(r, "charging_state", chargingStates),

		BatteryLevel:       r.Int("battery_level"),
		UsableBatteryLevel: r.Int("usable_battery_level"),
		BatteryRange:       r.Float("battery_range"),
		EstBatteryRange:    r.Float("est_battery_range"),
		IdealBatteryRange:  r.Float("ideal_battery_range"),
		BatteryHeaterOn:    r.Bool("battery_heater_on"),
		NotEnoughPowerHeat: r.Bool("not_enough_power_to_heat"),

		ChargeToMaxRange:      r.Bool("charge_to_max_range"),
		MaxRangeChargeCounter: r.Int("max_range_charge_counter"),
		ChargeLimitSOC:        r.Int("charge_limit_soc"),
		ChargeLimitSOCMax:     r.Int("charge_limit_soc_max"),
		ChargeLimitSOCMin:     r.Int("charge_limit_soc_min"),
		ChargeLimitSOCStd:     r.Int("charge_limit_soc_std"),

		ChargeRate:              r.Float("charge_rate"),
		TimeToFullCharge:        r.Float("time_to_full_charge"),
		ChargeEnergyAdded:       r.Float("charge_energy_added"),
		ChargeMilesAddedRated:   r.Float("charge_miles_added_rated"),
		ChargeMilesAddedIdeal:   r.Float("charge_miles_added_ideal"),
		ChargeEnableRequest:     r.Bool("charge_enable_request"),
		UserChargeEnableRequest: r.String("user_charge_enable_request"),
		ChargeCurrentRequest:    r.Int("charge_current_request"),
		ChargeCurrentRequestMax: r.Int("charge_current_request_max"),

		ChargerVoltage:       r.Int("charger_voltage"),
		ChargerPilotCurrent:  r.Int("charger_pilot_current", -1),
		ChargerActualCurrent: r.Int("charger_actual_current"),
		ChargerPower:         r.Int("charger_power"),
		ChargerPhases:        r.Int("charger_phases"),
		ChargePortDoorOpen:   r.Bool("charge_port_door_open"),
		ChargePortLatch:      r.String("charge_port_latch"),
		ConnChargeCable:      r.String("conn_charge_cable"),
		TripCharging:         r.Bool("trip_charging"),
		FastChargerPresent:   r.Bool("fast_charger_present"),
		FastChargerBrand:     r.String("fast_charger_brand"),
		FastChargerType:      r.String("fast_charger_type"),

		ScheduledChargingPending:   r.Bool("scheduled_charging_pending"),
		ScheduledChargingStartTime: r.Int64("scheduled_charging_start_time"),
		ManagedChargingActive:      r.Bool("managed_charging_active"),
		ManagedChargingCanceled:    r.Bool("managed_charging_user_canceled"),
		ManagedChargingStartTime:   r.Int64("managed_charging_start_time"),
	}
}

// ConnectedToCharger reports whether a cable is plugged in.
func (c ChargeState) ConnectedToCharger() bool {
	return c.ChargingState != ChargingDisconnected && c.ChargingState != ChargingUnknown
}

func (c ChargeState) IsCharging() bool {
	return c.ChargingState == ChargingCharging || c.ChargeRate > 0
}

// TimeToFull formats TimeToFullCharge, given in fractional hours, as HH:MM:SS.
func (c ChargeState) TimeToFull() string {
	total := int(math.Round(c.TimeToFullCharge * 3600))
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total/60%60, total%60)
}
