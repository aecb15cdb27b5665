package vehicle

import "github.com/autopeer-io/vfacts/pkg/record"

// DriveState is the drive_state snapshot. ShiftState and Speed are kept as the
// raw upstream strings; their value domains are not fully known.
type DriveState struct {
	Meta

	Latitude                float64 `json:"latitude"`
	Longitude               float64 `json:"longitude"`
	NativeLatitude          float64 `json:"native_latitude"`
	NativeLongitude         float64 `json:"native_longitude"`
	NativeLocationSupported int     `json:"native_location_supported"`
	NativeType              string  `json:"native_type"`
	Heading                 int     `json:"heading"`
	GPSAsOf                 int64   `json:"gps_as_of"`
	ShiftState              string  `json:"shift_state"`
	Speed                   string  `json:"speed"`
	Power                   int     `json:"power"`
}

func NewDriveState(r record.Record) DriveState {
	return DriveState{
		Meta:                    newMeta(r),
		Latitude:                r.Float("latitude"),
		Longitude:               r.Float("longitude"),
		NativeLatitude:          r.Float("native_latitude"),
		NativeLongitude:         r.Float("native_longitude"),
		NativeLocationSupported: r.Int("native_location_supported"),
		NativeType:              r.String("native_type"),
		Heading:                 r.Int("heading"),
		GPSAsOf:                 r.Int64("gps_as_of"),
		ShiftState:              r.String("shift_state"),
		Speed:                   r.String("speed"),
		Power:                   r.Int("power"),
	}
}

// Parked reports whether the car is in park or reports no gear at all.
func (d DriveState) Parked() bool {
	return d.ShiftState == "" || d.ShiftState == "P"
}
