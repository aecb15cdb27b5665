package vehicle

import "github.com/autopeer-io/vfacts/pkg/record"

// ClimateState is the climate_state snapshot. Temperatures are in Celsius.
type ClimateState struct {
	Meta

	InsideTemp           float64 `json:"inside_temp"`
	OutsideTemp          float64 `json:"outside_temp"`
	DriverTempSetting    float64 `json:"driver_temp_setting"`
	PassengerTempSetting float64 `json:"passenger_temp_setting"`
	MaxAvailTemp         float64 `json:"max_avail_temp"`
	MinAvailTemp         float64 `json:"min_avail_temp"`
	LeftTempDirection    string  `json:"left_temp_direction"`
	RightTempDirection   string  `json:"right_temp_direction"`

	ClimateOn            bool `json:"is_climate_on"`
	AutoConditioningOn   bool `json:"is_auto_conditioning_on"`
	Preconditioning      bool `json:"is_preconditioning"`
	SmartPreconditioning bool `json:"smart_preconditioning"`
	FrontDefrosterOn     bool `json:"is_front_defroster_on"`
	RearDefrosterOn      bool `json:"is_rear_defroster_on"`
	FanStatus            int  `json:"fan_status"`

	BatteryHeater        bool `json:"battery_heater"`
	BatteryHeaterNoPower bool `json:"battery_heater_no_power"`

	SeatHeaterLeft          bool `json:"seat_heater_left"`
	SeatHeaterRight         bool `json:"seat_heater_right"`
	SeatHeaterRearLeft      bool `json:"seat_heater_rear_left"`
	SeatHeaterRearCenter    bool `json:"seat_heater_rear_center"`
	SeatHeaterRearRight     bool `json:"seat_heater_rear_right"`
	SeatHeaterRearLeftBack  bool `json:"seat_heater_rear_left_back"`
	SeatHeaterRearRightBack bool `json:"seat_heater_rear_right_back"`

	SideMirrorHeaters   bool `json:"side_mirror_heaters"`
	SteeringWheelHeater bool `json:"steering_wheel_heater"`
	WiperBladeHeater    bool `json:"wiper_blade_heater"`
}

func NewClimateState(r record.Record) ClimateState {
	return ClimateState{
		Meta:                 newMeta(r),
		InsideTemp:           r.Float("inside_temp"),
		OutsideTemp:          r.Float("outside_temp"),
		DriverTempSetting:    r.Float("driver_temp_setting"),
		PassengerTempSetting: r.Float("passenger_temp_setting"),
		MaxAvailTemp:         r.Float("max_avail_temp"),
		MinAvailTemp:         r.Float("min_avail_temp"),
		LeftTempDirection:    r.String("left_temp_direction"),
		RightTempDirection:   r.String("right_temp_direction"),

		ClimateOn:            r.Bool("is_climate_on"),
		AutoConditioningOn:   r.Bool("is_auto_conditioning_on"),
		Preconditioning:      r.Bool("is_preconditioning"),
		SmartPreconditioning: r.Bool("smart_preconditioning"),
		FrontDefrosterOn:     r.Bool("is_front_defroster_on"),
		RearDefrosterOn:      r.Bool("is_rear_defroster_on"),
		FanStatus:            r.Int("fan_status"),

		BatteryHeater:        r.Bool("battery_heater"),
		BatteryHeaterNoPower: r.Bool("battery_heater_no_power"),

		SeatHeaterLeft:          r.Bool("seat_heater_left"),
		SeatHeaterRight:         r.Bool("seat_heater_right"),
		SeatHeaterRearLeft:      r.Bool("seat_heater_rear_left"),
		SeatHeaterRearCenter:    r.Bool("seat_heater_rear_center"),
		SeatHeaterRearRight:     r.Bool("seat_heater_rear_right"),
		SeatHeaterRearLeftBack:  r.Bool("seat_heater_rear_left_back"),
		SeatHeaterRearRightBack: r.Bool("seat_heater_rear_right_back"),

		SideMirrorHeaters:   r.Bool("side_mirror_heaters"),
		SteeringWheelHeater: r.Bool("steering_wheel_heater"),
		WiperBladeHeater:    r.Bool("wiper_blade_heater"),
	}
}
