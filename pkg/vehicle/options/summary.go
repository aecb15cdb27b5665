package options

import (
	"fmt"
	"strings"
)

// Coded is a decoded enumeration value as it appears in JSON output.
type Coded struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type codedEnum interface {
	Code() string
	String() string
}

func coded(v codedEnum) Coded { return Coded{Code: v.Code(), Name: v.String()} }

// Summary is a flat, serializable rendering of every derived fact.
type Summary struct {
	Model          Coded  `json:"model"`
	ModelType      Coded  `json:"model_type"`
	ProductionYear int    `json:"production_year"`
	Region         Coded  `json:"region"`
	TrimLevel      Coded  `json:"trim_level"`
	DriveSide      Coded  `json:"drive_side"`
	DriveType      Coded  `json:"drive_type"`
	BatteryType    Coded  `json:"battery_type"`
	PaintColor     Coded  `json:"paint_color"`
	RoofType       Coded  `json:"roof_type"`
	WheelType      Coded  `json:"wheel_type"`
	SeatType       Coded  `json:"seat_type"`
	InteriorColor  string `json:"interior_color"`
	DecorType      Coded  `json:"decor_type"`
	AdapterType    Coded  `json:"adapter_type"`

	Features map[string]bool `json:"features"`

	Codes     []string `json:"codes"`
	Malformed []string `json:"malformed,omitempty"`
}

// Features returns every boolean predicate keyed by a stable name.
func (o Options) Features() map[string]bool {
	return map[string]bool{
		"awd":                    o.IsAWD(),
		"performance":            o.IsPerformance(),
		"performance_plus":       o.IsPerfPlus(),
		"p85d":                   o.IsP85D(),
		"perf_exterior":          o.HasPerfExterior(),
		"perf_powertrain":        o.HasPerfPowertrain(),
		"spoiler":                o.HasSpoiler(),
		"third_row":              o.HasThirdRow(),
		"air_suspension":         o.HasAirSuspension(),
		"supercharger":           o.HasSupercharger(),
		"tech_package":           o.HasTechPackage(),
		"audio_upgrade":          o.HasAudioUpgrade(),
		"twin_charger":           o.HasTwinCharger(),
		"hpwc":                   o.HasHPWC(),
		"hepa_filter":            o.HasHEPAFilter(),
		"autopilot":              o.HasAutopilot(),
		"ludicrous_speed":        o.HasLudicrousSpeed(),
		"battery_software_limit": o.HasBatterySoftwareLimit(),
		"paint_armor":            o.HasPaintArmor(),
		"parcel_shelf":           o.HasParcelShelf(),
		"power_liftgate":         o.HasPowerLiftgate(),
		"nav_system":             o.HasNavSystem(),
		"premium_lighting":       o.HasPremiumLighting(),
		"homelink":               o.HasHomeLink(),
		"sat_radio":              o.HasSatRadio(),
		"lighted_door_handles":   o.HasLightedDoorHandles(),
		"keyless_entry":          o.HasKeylessEntry(),
		"folding_mirrors":        o.HasFoldingMirrors(),
		"parking_sensors":        o.HasParkingSensors(),
		"lighting_package":       o.HasLightingPackage(),
		"security_package":       o.HasSecurityPackage(),
		"cold_weather":           o.HasColdWeather(),
		"fog_lamps":              o.HasFogLamps(),
		"extended_nappa_trim":    o.HasExtendedNappaTrim(),
		"yacht_floor":            o.HasYachtFloor(),
		"red_calipers":           o.HasRedCalipers(),
	}
}

// Summary renders o for JSON output.
func (o Options) Summary() Summary {
	seat := o.SeatType()
	return Summary{
		Model:          coded(o.Model()),
		ModelType:      coded(o.ModelType()),
		ProductionYear: o.ProductionYear(),
		Region:         coded(o.Region()),
		TrimLevel:      coded(o.TrimLevel()),
		DriveSide:      coded(o.DriveSide()),
		DriveType:      coded(o.DriveType()),
		BatteryType:    coded(o.BatteryType()),
		PaintColor:     coded(o.PaintColor()),
		RoofType:       coded(o.RoofType()),
		WheelType:      coded(o.WheelType()),
		SeatType:       coded(seat),
		InteriorColor:  seat.Color().String(),
		DecorType:      coded(o.DecorType()),
		AdapterType:    coded(o.AdapterType()),
		Features:       o.Features(),
		Codes:          o.Codes(),
		Malformed:      o.Malformed(),
	}
}

func (o Options) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Model: %s %s\n", o.Model(), o.ModelType())
	fmt.Fprintf(&sb, "Region: %s\n", o.Region())
	fmt.Fprintf(&sb, "Year: %d\n", o.ProductionYear())
	fmt.Fprintf(&sb, "Trim: %s\n", o.TrimLevel())
	fmt.Fprintf(&sb, "Drive Side: %s\n", o.DriveSide())
	fmt.Fprintf(&sb, "Dual Motor: %t\n", o.IsAWD())
	fmt.Fprintf(&sb, "Battery: %s\n", o.BatteryType())
	fmt.Fprintf(&sb, "Color: %s\n", o.PaintColor())
	fmt.Fprintf(&sb, "Roof: %s\n", o.RoofType())
	fmt.Fprintf(&sb, "Wheels: %s\n", o.WheelType())
	fmt.Fprintf(&sb, "Seats: %s\n", o.SeatType())
	fmt.Fprintf(&sb, "Decor: %s\n", o.DecorType())
	return sb.String()
}
