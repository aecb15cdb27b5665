// Package options decodes the option-code string of a vehicle description.
//
// The option codes are a comma separated list of short tokens such as
// "MDLS,RENA,BT85,PPSW,WT21". The first two characters of a token name the
// option family and the token as a whole names the value. The encoding has
// accreted a number of exceptions over the years; Parse normalizes them before
// building the lookup table, and the accessors on Options resolve families to
// closed enumerations that fall back to Unknown for codes not known here.
package options

import (
	"slices"
	"strings"

	"github.com/go-logr/logr"

	"github.com/autopeer-io/vfacts/pkg/enum"
)

// firstProductionYear is the year encoded by the production marker MS01.
const firstProductionYear = 2012

// Options is the decoded, read-only view over one option-code string.
// The zero value behaves like an empty option string.
type Options struct {
	table          map[string]string
	productionYear int
	malformed      []string
}

// quirks are string-level rewrites applied, in order, before tokenizing.
var quirks = []struct{ old, new string }{
	// P85D carries no battery code of its own; PD01 keeps it out of the
	// generic performance family.
	{"P85D", "PD01"},
	// PBT is the only three letter prefix in the stream.
	{"PBT", "BT"},
	// WTX0 and WTX1 are secondary wheel tokens that show up next to the real
	// one, often after it. Lower-casing moves them out of the WT family.
	// Assumption: a decoy never appears as the only wheel token of a vehicle.
	{"WTX0", "wtXO"},
	{"WTX1", "wtX1"},
}

// Parse decodes codes. It never fails: malformed tokens are logged at V(1),
// reported by Malformed and otherwise ignored.
func Parse(codes string, logger logr.Logger) Options {
	b := newBuilder(logger)
	if codes != "" {
		for _, q := range quirks {
			codes = strings.ReplaceAll(codes, q.old, q.new)
		}
		for _, token := range strings.Split(codes, ",") {
			b.add(token)
		}
	}
	return b.freeze()
}

// builder owns the lookup table while it is being populated. Once frozen the
// table is only reachable through the read-only methods of Options.
type builder struct {
	log            logr.Logger
	table          map[string]string
	productionYear int
	malformed      []string
}

func newBuilder(logger logr.Logger) *builder {
	return &builder{
		log:            logger,
		table:          make(map[string]string),
		productionYear: firstProductionYear,
	}
}

func (b *builder) add(token string) {
	if len(token) < 2 {
		b.reject(token, "token shorter than its prefix")
		return
	}

	prefix := token[:2]
	switch prefix {
	case "MS":
		// MSnn is a production year marker: 01 is 2012, 02 is 2013 and so on.
		if len(token) == 4 {
			offset, ok := twoDigits(token[2:])
			if !ok {
				b.reject(token, "production year is not numeric")
				return
			}
			b.productionYear = firstProductionYear - 1 + offset
			return
		}
	case "X0":
		// X0 tokens are presence flags keyed by the whole code.
		if len(token) == 2 {
			b.reject(token, "flag token without a code")
			return
		}
		prefix = token
	}

	b.table[prefix] = token
}

func (b *builder) reject(token, reason string) {
	b.log.V(1).Info("Malformed option token", "token", token, "reason", reason)
	b.malformed = append(b.malformed, token)
}

func (b *builder) freeze() Options {
	o := Options{
		table:          b.table,
		productionYear: b.productionYear,
		malformed:      b.malformed,
	}
	b.table, b.malformed = nil, nil
	return o
}

func twoDigits(s string) (int, bool) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

// Lookup returns the raw token stored for prefix. X0 flags are looked up by
// their full code.
func (o Options) Lookup(prefix string) (string, bool) {
	token, ok := o.table[prefix]
	return token, ok
}

// Codes returns the stored tokens in sorted order.
func (o Options) Codes() []string {
	out := make([]string, 0, len(o.table))
	for _, token := range o.table {
		out = append(out, token)
	}
	slices.Sort(out)
	return out
}

// Malformed returns the tokens that were skipped while parsing.
func (o Options) Malformed() []string {
	return slices.Clone(o.malformed)
}

// ProductionYear returns the year from the MS marker, or 2012 when the marker
// is absent.
func (o Options) ProductionYear() int {
	if o.productionYear == 0 {
		return firstProductionYear
	}
	return o.productionYear
}

// HasOption reports whether the family named by code is present and not set to
// its baseline value. X flags are true whenever present; every other family is
// false when its token is the prefix followed by "00".
func (o Options) HasOption(code string) bool {
	token, ok := o.table[code]
	if !ok {
		return false
	}
	if strings.HasPrefix(code, "X") {
		return true
	}
	return token != code+"00"
}

// resolve looks the prefixes up in order and resolves the first token found.
func resolve[T ~int](o Options, table *enum.Table[T], prefixes ...string) T {
	for _, p := range prefixes {
		if token, ok := o.table[p]; ok {
			return table.Parse(token)
		}
	}
	return table.Unknown()
}

func (o Options) Region() Region           { return resolve(o, regions, "RE") }
func (o Options) TrimLevel() TrimLevel     { return resolve(o, trimLevels, "TM") }
func (o Options) DriveSide() DriveSide     { return resolve(o, driveSides, "DR") }
func (o Options) RoofType() RoofType       { return resolve(o, roofTypes, "RF") }
func (o Options) WheelType() WheelType     { return resolve(o, wheelTypes, "WT") }
func (o Options) DecorType() DecorType     { return resolve(o, decorTypes, "ID") }
func (o Options) AdapterType() AdapterType { return resolve(o, adapterTypes, "AD") }
func (o Options) Model() Model             { return resolve(o, models, "MD") }

func (o Options) PaintColor() PaintColor {
	return resolve(o, paintColors, "PB", "PM", "PP")
}

func (o Options) SeatType() SeatType {
	return resolve(o, seatTypes, "IB", "IP", "IZ", "IS")
}

// BatteryType returns the encoded battery. When none is encoded it is inferred:
// P85D and performance-plus cars carry the 85kWh pack, everything else 70kWh.
func (o Options) BatteryType() BatteryType {
	bt := resolve(o, batteryTypes, "BT")
	if bt != UnknownBatteryType {
		return bt
	}
	if o.IsP85D() || o.IsPerfPlus() {
		return BT85
	}
	return BT70
}

// DriveType returns the encoded drive type, defaulting to rear-wheel drive.
func (o Options) DriveType() DriveType {
	if dt := resolve(o, driveTypes, "DV"); dt != UnknownDriveType {
		return dt
	}
	return DV2W
}

// ModelType derives the marketed model from battery, drive and performance
// options. The order of the checks follows the product line history.
func (o Options) ModelType() ModelType {
	battery := o.BatteryType()
	if battery == BT37 {
		return THREE75
	}

	if o.IsAWD() {
		switch {
		case o.IsP85D():
			return P85D
		case battery == BT85:
			return S85D
		default:
			return S70D
		}
	}

	switch {
	case o.IsPerfPlus():
		return P85Plus
	case o.IsPerformance():
		return P85
	case battery == BT85:
		return S85
	default:
		return S60
	}
}

func (o Options) IsPerformance() bool { return o.HasOption("PF") }

// IsPerfPlus is true for an explicit PX option, or for the Super 21" Gray
// wheel which some performance-plus cars report instead.
func (o Options) IsPerfPlus() bool { return o.HasOption("PX") || o.WheelType() == WTSG }

func (o Options) IsP85D() bool { return o.HasOption("PD") }
func (o Options) IsAWD() bool  { return o.DriveType() == DV4W }

func (o Options) HasThirdRow() bool             { return o.HasOption("TR") }
func (o Options) HasAirSuspension() bool        { return o.HasOption("SU") }
func (o Options) HasSupercharger() bool         { return o.HasOption("SC") || o.IsPerfPlus() }
func (o Options) HasTechPackage() bool          { return o.HasOption("TP") }
func (o Options) HasAudioUpgrade() bool         { return o.HasOption("AU") }
func (o Options) HasTwinCharger() bool          { return o.HasOption("CH") }
func (o Options) HasHPWC() bool                 { return o.HasOption("HP") }
func (o Options) HasHEPAFilter() bool           { return o.HasOption("AF") }
func (o Options) HasAutopilot() bool            { return o.HasOption("DA") }
func (o Options) HasLudicrousSpeed() bool       { return o.HasOption("BP") }
func (o Options) HasBatterySoftwareLimit() bool { return o.HasOption("BR") }
func (o Options) HasPaintArmor() bool           { return o.HasOption("PA") }
func (o Options) HasParcelShelf() bool          { return o.HasOption("PS") }
func (o Options) HasParkingSensors() bool       { return o.HasOption("PK") }
func (o Options) HasLightingPackage() bool      { return o.HasOption("LP") }
func (o Options) HasSecurityPackage() bool      { return o.HasOption("SP") }
func (o Options) HasColdWeather() bool          { return o.HasOption("CW") }
func (o Options) HasFogLamps() bool             { return o.HasOption("FG") }
func (o Options) HasExtendedNappaTrim() bool    { return o.HasOption("IX") }
func (o Options) HasYachtFloor() bool           { return o.HasOption("YF") }

func (o Options) HasPowerLiftgate() bool      { return o.HasOption("X001") }
func (o Options) HasNavSystem() bool          { return o.HasOption("X003") }
func (o Options) HasPremiumLighting() bool    { return o.HasOption("X007") }
func (o Options) HasHomeLink() bool           { return o.HasOption("X011") }
func (o Options) HasSatRadio() bool           { return o.HasOption("X013") }
func (o Options) HasPerfExterior() bool       { return o.HasOption("X019") }
func (o Options) HasSpoiler() bool            { return o.HasOption("X019") }
func (o Options) HasPerfPowertrain() bool     { return o.HasOption("X024") }
func (o Options) HasLightedDoorHandles() bool { return o.HasOption("X027") }
func (o Options) HasKeylessEntry() bool       { return o.HasOption("X031") }
func (o Options) HasFoldingMirrors() bool     { return o.HasOption("X037") }

// HasRedCalipers reports red brake calipers (BC0R; black is BC0B). The table
// is keyed by prefix, so the BC entry is compared rather than looking up the
// whole code, which would never be present.
func (o Options) HasRedCalipers() bool {
	token, ok := o.table["BC"]
	return ok && token == "BC0R"
}
