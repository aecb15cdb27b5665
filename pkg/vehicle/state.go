package vehicle

import (
	"github.com/autopeer-io/vfacts/pkg/enum"
	"github.com/autopeer-io/vfacts/pkg/record"
)

// PanoState is the sun_roof_state of the panoramic roof.
type PanoState int

const (
	PanoUnknown PanoState = iota
	PanoOpen
	PanoClosed
	PanoVent
	PanoComfort
	PanoMoving
	// PanoReportedUnknown is the literal "unknown" upstream sends for cars
	// without a panoramic roof.
	PanoReportedUnknown
)

var panoStates = enum.NewTable("PanoState",
	enum.Variant[PanoState]{Value: PanoUnknown, Tag: "Unknown", Name: "Unknown"},
	enum.Variant[PanoState]{Value: PanoOpen, Tag: "open", Name: "Open"},
	enum.Variant[PanoState]{Value: PanoClosed, Tag: "closed", Name: "Closed"},
	enum.Variant[PanoState]{Value: PanoVent, Tag: "vent", Name: "Vent"},
	enum.Variant[PanoState]{Value: PanoComfort, Tag: "comfort", Name: "Comfort"},
	enum.Variant[PanoState]{Value: PanoMoving, Tag: "moving", Name: "Moving"},
	enum.Variant[PanoState]{Value: PanoReportedUnknown, Tag: "unknown", Name: "Unknown"},
)

func (s PanoState) String() string { return panoStates.Name(s) }

func (s PanoState) MarshalText() ([]byte, error) { return []byte(panoStates.Tag(s)), nil }

// SpeedLimit is the speed_limit_mode record nested in the vehicle state.
type SpeedLimit struct {
	Active          bool    `json:"active"`
	CurrentLimitMPH float64 `json:"current_limit_mph"`
	MaxLimitMPH     int     `json:"max_limit_mph"`
	MinLimitMPH     int     `json:"min_limit_mph"`
	PinCodeSet      bool    `json:"pin_code_set"`
}

// SoftwareUpdate is the software_update record nested in the vehicle state.
type SoftwareUpdate struct {
	Status              string `json:"status"`
	ExpectedDurationSec int    `json:"expected_duration_sec"`
}

// VehicleState is the vehicle_state snapshot.
type VehicleState struct {
	Meta

	APIVersion int     `json:"api_version"`
	CarVersion string  `json:"car_version"`
	Name       string  `json:"vehicle_name"`
	Odometer   float64 `json:"odometer"`
	Locked     bool    `json:"locked"`

	DriverFrontOpen    bool `json:"df"`
	PassengerFrontOpen bool `json:"pf"`
	DriverRearOpen     bool `json:"dr"`
	PassengerRearOpen  bool `json:"pr"`
	FrontTrunkOpen     bool `json:"ft"`
	RearTrunkOpen      bool `json:"rt"`

	PanoState       PanoState `json:"sun_roof_state"`
	PanoPercentOpen int       `json:"sun_roof_percent_open"`

	AutoparkState      string `json:"autopark_state_v2"`
	AutoparkStyle      string `json:"autopark_style"`
	LastAutoparkError  string `json:"last_autopark_error"`
	CenterDisplayState string `json:"center_display_state"`

	CalendarSupported       bool `json:"calendar_supported"`
	ParsedCalendarSupported bool `json:"parsed_calendar_supported"`
	NotificationsSupported  bool `json:"notifications_supported"`
	HomelinkNearby          bool `json:"homelink_nearby"`
	RemoteStart             bool `json:"remote_start"`
	RemoteStartSupported    bool `json:"remote_start_supported"`
	UserPresent             bool `json:"is_user_present"`
	ValetMode               bool `json:"valet_mode"`
	ValetPinNeeded          bool `json:"valet_pin_needed"`

	MediaRemoteControl bool           `json:"media_remote_control_enabled"`
	SoftwareUpdate     SoftwareUpdate `json:"software_update"`
	SpeedLimit         SpeedLimit     `json:"speed_limit_mode"`
}

func NewVehicleState(r record.Record) VehicleState {
	update := r.Object("software_update")
	limit := r.Object("speed_limit_mode")

	return VehicleState{
		Meta:       newMeta(r),
		APIVersion: r.Int("api_version"),
		CarVersion: r.String("car_version"),
		Name:       r.String("vehicle_name"),
		Odometer:   r.Float("odometer"),
		Locked:     r.Bool("locked"),

		DriverFrontOpen:    r.Int("df") != 0,
		PassengerFrontOpen: r.Int("pf") != 0,
		DriverRearOpen:     r.Int("dr") != 0,
		PassengerRearOpen:  r.Int("pr") != 0,
		FrontTrunkOpen:     r.Int("ft") != 0,
		RearTrunkOpen:      r.Int("rt") != 0,

		PanoState:       record.Enum(r, "sun_roof_state", panoStates),
		PanoPercentOpen: r.Int("sun_roof_percent_open"),

		AutoparkState:      r.String("autopark_state_v2"),
		AutoparkStyle:      r.String("autopark_style"),
		LastAutoparkError:  r.String("last_autopark_error"),
		CenterDisplayState: r.String("center_display_state"),

		CalendarSupported:       r.Bool("calendar_supported"),
		ParsedCalendarSupported: r.Bool("parsed_calendar_supported"),
		NotificationsSupported:  r.Bool("notifications_supported"),
		HomelinkNearby:          r.Bool("homelink_nearby"),
		RemoteStart:             r.Bool("remote_start"),
		RemoteStartSupported:    r.Bool("remote_start_supported"),
		UserPresent:             r.Bool("is_user_present"),
		ValetMode:               r.Bool("valet_mode"),
		ValetPinNeeded:          r.Bool("valet_pin_needed"),

		MediaRemoteControl: r.Object("media_state").Bool("remote_control_enabled"),
		SoftwareUpdate: SoftwareUpdate{
			Status:              update.String("status"),
			ExpectedDurationSec: update.Int("expected_duration_sec"),
		},
		SpeedLimit: SpeedLimit{
			Active:          limit.Bool("active"),
			CurrentLimitMPH: limit.Float("current_limit_mph"),
			MaxLimitMPH:     limit.Int("max_limit_mph"),
			MinLimitMPH:     limit.Int("min_limit_mph"),
			PinCodeSet:      limit.Bool("pin_code_set"),
		},
	}
}

// HasPano reports whether the car has a panoramic roof at all.
func (v VehicleState) HasPano() bool {
	return v.PanoState != PanoUnknown && v.PanoState != PanoReportedUnknown
}

func (v VehicleState) HasSoftwareUpdate() bool { return v.SoftwareUpdate.Status != "" }

// AnyOpen reports whether a door or trunk is open.
func (v VehicleState) AnyOpen() bool {
	return v.DriverFrontOpen || v.PassengerFrontOpen || v.DriverRearOpen ||
		v.PassengerRearOpen || v.FrontTrunkOpen || v.RearTrunkOpen
}
