package vehicle

import (
	"fmt"

	"github.com/autopeer-io/vfacts/pkg/record"
)

// Category names one kind of snapshot.
type Category string

const (
	CategoryCharge      Category = "charge"
	CategoryDrive       Category = "drive"
	CategoryClimate     Category = "climate"
	CategoryVehicle     Category = "vehicle"
	CategoryConfig      Category = "config"
	CategoryDescription Category = "description"
)

// Categories lists every category in a stable order.
var Categories = []Category{
	CategoryCharge,
	CategoryDrive,
	CategoryClimate,
	CategoryVehicle,
	CategoryConfig,
	CategoryDescription,
}

// Snapshot is implemented by every decoded snapshot.
type Snapshot interface {
	Metadata() Meta
}

// ParseCategory validates s.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	switch c {
	case CategoryCharge, CategoryDrive, CategoryClimate, CategoryVehicle, CategoryConfig, CategoryDescription:
		return c, nil
	}
	return "", fmt.Errorf("unknown snapshot category %q", s)
}

// Decode builds the snapshot for c from r.
func Decode(c Category, r record.Record) (Snapshot, error) {
	switch c {
	case CategoryCharge:
		return NewChargeState(r), nil
	case CategoryDrive:
		return NewDriveState(r), nil
	case CategoryClimate:
		return NewClimateState(r), nil
	case CategoryVehicle:
		return NewVehicleState(r), nil
	case CategoryConfig:
		return NewConfig(r), nil
	case CategoryDescription:
		return NewDescription(r), nil
	}
	return nil, fmt.Errorf("unknown snapshot category %q", c)
}
