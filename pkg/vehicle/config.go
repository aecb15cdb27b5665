package vehicle

import "github.com/autopeer-io/vfacts/pkg/record"

// Config is the vehicle_config snapshot.
type Config struct {
	Meta

	CarType          string `json:"car_type"`
	CarSpecialType   string `json:"car_special_type"`
	TrimBadging      string `json:"trim_badging"`
	PerfConfig       string `json:"perf_config"`
	ExteriorColor    string `json:"exterior_color"`
	RoofColor        string `json:"roof_color"`
	WheelType        string `json:"wheel_type"`
	SpoilerType      string `json:"spoiler_type"`
	ThirdRowSeats    string `json:"third_row_seats"`
	ChargePortType   string `json:"charge_port_type"`
	RearSeatHeaters  int    `json:"rear_seat_heaters"`
	RearSeatType     int    `json:"rear_seat_type"`
	SeatType         int    `json:"seat_type"`
	SunRoofInstalled int    `json:"sun_roof_installed"`

	CanAcceptNavigationRequests bool `json:"can_accept_navigation_requests"`
	CanActuateTrunks            bool `json:"can_actuate_trunks"`
	EUVehicle                   bool `json:"eu_vehicle"`
	HasAirSuspension            bool `json:"has_air_suspension"`
	HasLudicrousMode            bool `json:"has_ludicrous_mode"`
	MotorizedChargePort         bool `json:"motorized_charge_port"`
	PLG                         bool `json:"plg"`
	RHD                         bool `json:"rhd"`
}

func NewConfig(r record.Record) Config {
	return Config{
		Meta:             newMeta(r),
		CarType:          r.String("car_type"),
		CarSpecialType:   r.String("car_special_type"),
		TrimBadging:      r.String("trim_badging"),
		PerfConfig:       r.String("perf_config"),
		ExteriorColor:    r.String("exterior_color"),
		RoofColor:        r.String("roof_color"),
		WheelType:        r.String("wheel_type"),
		SpoilerType:      r.String("spoiler_type"),
		ThirdRowSeats:    r.String("third_row_seats"),
		ChargePortType:   r.String("charge_port_type"),
		RearSeatHeaters:  r.Int("rear_seat_heaters"),
		RearSeatType:     r.Int("rear_seat_type"),
		SeatType:         r.Int("seat_type"),
		SunRoofInstalled: r.Int("sun_roof_installed"),

		CanAcceptNavigationRequests: r.Bool("can_accept_navigation_requests"),
		CanActuateTrunks:            r.Bool("can_actuate_trunks"),
		EUVehicle:                   r.Bool("eu_vehicle"),
		HasAirSuspension:            r.Bool("has_air_suspension"),
		HasLudicrousMode:            r.Bool("has_ludicrous_mode"),
		MotorizedChargePort:         r.Bool("motorized_charge_port"),
		PLG:                         r.Bool("plg"),
		RHD:                         r.Bool("rhd"),
	}
}
