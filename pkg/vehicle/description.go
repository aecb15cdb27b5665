package vehicle

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/autopeer-io/vfacts/pkg/record"
	"github.com/autopeer-io/vfacts/pkg/vehicle/options"
)

// Description is the entry returned for a vehicle by the vehicle listing.
type Description struct {
	Meta

	ID          string `json:"id"`
	IDS         string `json:"id_s"`
	VehicleID   string `json:"vehicle_id"`
	UserID      string `json:"user_id"`
	VIN         string `json:"vin"`
	DisplayName string `json:"display_name"`
	Color       string `json:"color"`
	// State is "online", "asleep" or "waking" as reported upstream.
	State       string `json:"state"`
	InService   bool   `json:"in_service"`
	APIVersion  int    `json:"api_version"`
	OptionCodes string `json:"option_codes"`

	BackseatToken          string `json:"backseat_token"`
	BackseatTokenUpdatedAt int64  `json:"backseat_token_updated_at"`
	// Tokens are the streaming tokens. They are only kept when upstream sends
	// exactly two of them.
	Tokens []string `json:"tokens"`

	options options.Options
}

func NewDescription(r record.Record) Description {
	d := Description{
		Meta:        newMeta(r),
		ID:          r.String("id"),
		IDS:         r.String("id_s"),
		VehicleID:   r.String("vehicle_id"),
		UserID:      r.String("user_id"),
		VIN:         r.String("vin"),
		DisplayName: r.String("display_name"),
		Color:       r.String("color"),
		State:       r.String("state"),
		InService:   r.Bool("in_service"),
		APIVersion:  r.Int("api_version"),
		OptionCodes: r.String("option_codes"),

		BackseatToken:          r.String("backseat_token"),
		BackseatTokenUpdatedAt: r.Int64("backseat_token_updated_at"),
	}
	if tokens := r.Strings("tokens"); len(tokens) == 2 {
		d.Tokens = tokens
	}
	d.options = options.Parse(d.OptionCodes, r.Logger())
	return d
}

// Options returns the decoded option codes.
func (d Description) Options() options.Options { return d.options }

// UUID is a stable identifier derived from the VIN.
func (d Description) UUID() string {
	sum := sha256.Sum256([]byte(d.VIN))
	return hex.EncodeToString(sum[:])
}

func (d Description) IsAsleep() bool { return d.State == "asleep" }

// Name returns the display name, falling back to the VIN.
func (d Description) Name() string {
	if d.DisplayName != "" {
		return d.DisplayName
	}
	return d.VIN
}
