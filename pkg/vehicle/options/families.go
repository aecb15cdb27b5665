package options

import "github.com/autopeer-io/vfacts/pkg/enum"

// Every family below is closed and its zero value is Unknown. Codes that are
// not listed resolve to Unknown until they are added here.

// WheelType is encoded under the WT prefix.
type WheelType int

const (
	UnknownWheelType WheelType = iota
	WT19
	WT1P
	WT20
	WT21
	WT2E
	WTAE
	WTAP
	WTAS
	WTDS
	WTGP
	WTSE
	WTSG
	WTSP
	WTSS
	WTTB
	WTTP
	WTTG
	WTX1
)

type wheelVariant = enum.Variant[WheelType]

var wheelTypes = enum.NewTable("WheelType",
	wheelVariant{Value: UnknownWheelType, Tag: "Unknown", Name: "Unknown"},
	wheelVariant{Value: WT19, Tag: "WT19", Name: `Silver 19"`},
	wheelVariant{Value: WT1P, Tag: "WT1P", Name: `Silver 19"`},
	wheelVariant{Value: WT20, Tag: "WT20", Name: `Silver 20" Slipstream`},
	wheelVariant{Value: WT21, Tag: "WT21", Name: `Silver 21"`},
	wheelVariant{Value: WT2E, Tag: "WT2E", Name: `Silver 21" Euro`},
	wheelVariant{Value: WTAE, Tag: "WTAE", Name: `Aero 19"`},
	wheelVariant{Value: WTAP, Tag: "WTAP", Name: `Aero 19"`},
	wheelVariant{Value: WTAS, Tag: "WTAS", Name: `Silver 19" Slipstream`},
	wheelVariant{Value: WTDS, Tag: "WTDS", Name: `Grey 19" Slipstream`},
	wheelVariant{Value: WTGP, Tag: "WTGP", Name: `Turbine 19" Charcoal`},
	wheelVariant{Value: WTSE, Tag: "WTSE", Name: `Charcoal 21" Euro`},
	wheelVariant{Value: WTSG, Tag: "WTSG", Name: `Super 21" Gray`},
	wheelVariant{Value: WTSP, Tag: "WTSP", Name: `Charcoal 21"`},
	wheelVariant{Value: WTSS, Tag: "WTSS", Name: `Super 21" Silver`},
	wheelVariant{Value: WTTB, Tag: "WTTB", Name: `Turbine 19"`},
	wheelVariant{Value: WTTP, Tag: "WTTP", Name: `Turbine 19"`},
	wheelVariant{Value: WTTG, Tag: "WTTG", Name: `Turbine 19" Charcoal`},
	wheelVariant{Value: WTX1, Tag: "WTX1", Name: `Silver 19"`},
)

func (v WheelType) Code() string   { return wheelTypes.Tag(v) }
func (v WheelType) String() string { return wheelTypes.Name(v) }

// TrimLevel is encoded under the TM prefix.
type TrimLevel int

const (
	UnknownTrimLevel TrimLevel = iota
	TM00
	TM02
	TM0A
	TM0B
	TM0C
)

type trimVariant = enum.Variant[TrimLevel]

var trimLevels = enum.NewTable("TrimLevel",
	trimVariant{Value: UnknownTrimLevel, Tag: "Unknown", Name: "Unknown"},
	trimVariant{Value: TM00, Tag: "TM00", Name: "General Production Trim"},
	trimVariant{Value: TM02, Tag: "TM02", Name: "General Production Signature Trim"},
	trimVariant{Value: TM0A, Tag: "TM0A", Name: "ALPHA PRE-PRODUCTION NON-SALEABLE"},
	trimVariant{Value: TM0B, Tag: "TM0B", Name: "BETA PRE-PRODUCTION NON-SALEABLE"},
	trimVariant{Value: TM0C, Tag: "TM0C", Name: "PRE-PRODUCTION SALEABLE"},
)

func (v TrimLevel) Code() string   { return trimLevels.Tag(v) }
func (v TrimLevel) String() string { return trimLevels.Name(v) }

// InteriorColor is the cabin color implied by a seat option.
type InteriorColor int

const (
	InteriorBlack InteriorColor = iota
	InteriorTan
	InteriorGray
	InteriorWhite
)

func (c InteriorColor) String() string {
	switch c {
	case InteriorBlack:
		return "Black"
	case InteriorTan:
		return "Tan"
	case InteriorWhite:
		return "White"
	default:
		return "Gray"
	}
}

// SeatType spans the IB, IP, IZ and IS prefixes.
type SeatType int

const (
	UnknownSeatType SeatType = iota
	IBMB
	IPMB
	IPMG
	IPMT
	IZZW
	QYMT
	QZMB
	IZMB
	IZMG
	IZMT
	ISZW
	ISZT
	ISZB
)

type seatVariant = enum.Variant[SeatType]

var seatTypes = enum.NewTable("SeatType",
	seatVariant{Value: UnknownSeatType, Tag: "Unknown", Name: "Unknown"},
	seatVariant{Value: IBMB, Tag: "IBMB", Name: "Base Textile, Black"},
	seatVariant{Value: IPMB, Tag: "IPMB", Name: "Leather, Black"},
	seatVariant{Value: IPMG, Tag: "IPMG", Name: "Leather, Gray"},
	seatVariant{Value: IPMT, Tag: "IPMT", Name: "Leather, Tan"},
	seatVariant{Value: IZZW, Tag: "IZZW", Name: "Perf Leather with Grey Piping, White"},
	seatVariant{Value: QYMT, Tag: "QYMT", Name: "Leather, Tan"},
	seatVariant{Value: QZMB, Tag: "QZMB", Name: "Perf Leather with Piping, Black"},
	seatVariant{Value: IZMB, Tag: "IZMB", Name: "Perf Leather with Piping, Black"},
	seatVariant{Value: IZMG, Tag: "IZMG", Name: "Perf Leather with Piping, Gray"},
	seatVariant{Value: IZMT, Tag: "IZMT", Name: "Perf Leather with Piping, Tan"},
	seatVariant{Value: ISZW, Tag: "ISZW", Name: "Signature Perforated Leather, White"},
	seatVariant{Value: ISZT, Tag: "ISZT", Name: "Signature Perforated Leather, Tan"},
	seatVariant{Value: ISZB, Tag: "ISZB", Name: "Signature Perforated Leather, Black"},
)

var seatColors = map[SeatType]InteriorColor{
	IBMB: InteriorBlack,
	IPMB: InteriorBlack,
	IPMG: InteriorGray,
	IPMT: InteriorTan,
	IZZW: InteriorWhite,
	QYMT: InteriorTan,
	QZMB: InteriorBlack,
	IZMB: InteriorBlack,
	IZMG: InteriorGray,
	IZMT: InteriorTan,
	ISZW: InteriorWhite,
	ISZT: InteriorTan,
	ISZB: InteriorBlack,
}

func (v SeatType) Code() string   { return seatTypes.Tag(v) }
func (v SeatType) String() string { return seatTypes.Name(v) }

// Color returns the interior color of the seat option. Unknown seats are Gray.
func (v SeatType) Color() InteriorColor {
	if c, ok := seatColors[v]; ok {
		return c
	}
	return InteriorGray
}

// RoofType is encoded under the RF prefix.
type RoofType int

const (
	UnknownRoofType RoofType = iota
	RF3G
	RFBK
	RFBC
	RFFG
	RFPO
	RFP2
	RFPX
)

type roofVariant = enum.Variant[RoofType]

var roofTypes = enum.NewTable("RoofType",
	roofVariant{Value: UnknownRoofType, Tag: "Unknown", Name: "Unknown"},
	roofVariant{Value: RF3G, Tag: "RF3G", Name: "Glass"},
	roofVariant{Value: RFBK, Tag: "RFBK", Name: "Black"},
	roofVariant{Value: RFBC, Tag: "RFBC", Name: "Body Color"},
	roofVariant{Value: RFFG, Tag: "RFFG", Name: "Glass"},
	roofVariant{Value: RFPO, Tag: "RFPO", Name: "Panoramic"},
	roofVariant{Value: RFP2, Tag: "RFP2", Name: "Sunroof"},
	roofVariant{Value: RFPX, Tag: "RFPX", Name: "Model X"},
)

func (v RoofType) Code() string   { return roofTypes.Tag(v) }
func (v RoofType) String() string { return roofTypes.Name(v) }

// Region is encoded under the RE prefix.
type Region int

const (
	UnknownRegion Region = iota
	RENA
	RENC
	REEU
)

type regionVariant = enum.Variant[Region]

var regions = enum.NewTable("Region",
	regionVariant{Value: UnknownRegion, Tag: "Unknown", Name: "Unknown"},
	regionVariant{Value: RENA, Tag: "RENA", Name: "United States"},
	regionVariant{Value: RENC, Tag: "RENC", Name: "Canada"},
	regionVariant{Value: REEU, Tag: "REEU", Name: "Europe"},
)

func (v Region) Code() string   { return regions.Tag(v) }
func (v Region) String() string { return regions.Name(v) }

// PaintColor spans the PB, PM and PP prefixes.
type PaintColor int

const (
	UnknownPaintColor PaintColor = iota
	PBCW
	PBSB
	PMAB
	PMBL
	PMMB
	PMMR
	PMNG
	PMSG
	PMSS
	PMTG
	PPMR
	PPSB
	PPSR
	PPSW
	PPTI
)

type paintVariant = enum.Variant[PaintColor]

var paintColors = enum.NewTable("PaintColor",
	paintVariant{Value: UnknownPaintColor, Tag: "Unknown", Name: "Unknown"},
	paintVariant{Value: PBCW, Tag: "PBCW", Name: "Catalina White"},
	paintVariant{Value: PBSB, Tag: "PBSB", Name: "Sierra Black"},
	paintVariant{Value: PMAB, Tag: "PMAB", Name: "Anza Brown Metallic"},
	paintVariant{Value: PMBL, Tag: "PMBL", Name: "Obsidian Black Multi-Coat"},
	paintVariant{Value: PMMB, Tag: "PMMB", Name: "Monterey Blue Metallic"},
	paintVariant{Value: PMMR, Tag: "PMMR", Name: "Multi-Coat Red"},
	paintVariant{Value: PMNG, Tag: "PMNG", Name: "Midnight Silver Metallic"},
	paintVariant{Value: PMSG, Tag: "PMSG", Name: "Sequoia Green Metallic"},
	paintVariant{Value: PMSS, Tag: "PMSS", Name: "San Simeon Silver Metallic"},
	paintVariant{Value: PMTG, Tag: "PMTG", Name: "Dolphin Gray Metallic"},
	paintVariant{Value: PPMR, Tag: "PPMR", Name: "Muir Red Multi-Coat"},
	paintVariant{Value: PPSB, Tag: "PPSB", Name: "Deep Blue Metallic"},
	paintVariant{Value: PPSR, Tag: "PPSR", Name: "Signature Red"},
	paintVariant{Value: PPSW, Tag: "PPSW", Name: "Shasta Pearl White Multi-Coat"},
	paintVariant{Value: PPTI, Tag: "PPTI", Name: "Titanium Metallic"},
)

func (v PaintColor) Code() string   { return paintColors.Tag(v) }
func (v PaintColor) String() string { return paintColors.Name(v) }

// DriveSide is encoded under the DR prefix.
type DriveSide int

const (
	UnknownDriveSide DriveSide = iota
	DRLH
	DRRH
)

type driveSideVariant = enum.Variant[DriveSide]

var driveSides = enum.NewTable("DriveSide",
	driveSideVariant{Value: UnknownDriveSide, Tag: "Unknown", Name: "Unknown"},
	driveSideVariant{Value: DRLH, Tag: "DRLH", Name: "Left Hand"},
	driveSideVariant{Value: DRRH, Tag: "DRRH", Name: "Right Hand"},
)

func (v DriveSide) Code() string   { return driveSides.Tag(v) }
func (v DriveSide) String() string { return driveSides.Name(v) }

// DecorType is encoded under the ID prefix.
type DecorType int

const (
	UnknownDecorType DecorType = iota
	IDBA
	IDBO
	IDCF
	IDOM
	IDOG
	IDLW
	IDPB
	IDHM
)

type decorVariant = enum.Variant[DecorType]

var decorTypes = enum.NewTable("DecorType",
	decorVariant{Value: UnknownDecorType, Tag: "Unknown", Name: "Unknown"},
	decorVariant{Value: IDBA, Tag: "IDBA", Name: "Dark Ash Wood"},
	decorVariant{Value: IDBO, Tag: "IDBO", Name: "Figured Ash Wood"},
	decorVariant{Value: IDCF, Tag: "IDCF", Name: "Carbon Fiber"},
	decorVariant{Value: IDOM, Tag: "IDOM", Name: "Matte Obeche Wood"},
	decorVariant{Value: IDOG, Tag: "IDOG", Name: "Gloss Obeche Wood"},
	decorVariant{Value: IDLW, Tag: "IDLW", Name: "Lacewood"},
	decorVariant{Value: IDPB, Tag: "IDPB", Name: "Piano Black"},
	decorVariant{Value: IDHM, Tag: "IDHM", Name: "Matte Abachi"},
)

func (v DecorType) Code() string   { return decorTypes.Tag(v) }
func (v DecorType) String() string { return decorTypes.Name(v) }

// BatteryType is encoded under the BT prefix (PBT is normalized to BT).
type BatteryType int

const (
	UnknownBatteryType BatteryType = iota
	BT37
	BT40
	BT60
	BT70
	BT85
	BTX4
	BTX5
	BTX6
	BTX7
	BTX8
)

type batteryVariant = enum.Variant[BatteryType]

var batteryTypes = enum.NewTable("BatteryType",
	batteryVariant{Value: UnknownBatteryType, Tag: "Unknown", Name: "Unknown"},
	batteryVariant{Value: BT37, Tag: "BT37", Name: "75kWh (Model 3)"},
	batteryVariant{Value: BT40, Tag: "BT40", Name: "40kWh (Software Limited)"},
	batteryVariant{Value: BT60, Tag: "BT60", Name: "60kWh"},
	batteryVariant{Value: BT70, Tag: "BT70", Name: "70kWh"},
	batteryVariant{Value: BT85, Tag: "BT85", Name: "85kWh"},
	batteryVariant{Value: BTX4, Tag: "BTX4", Name: "90kWh"},
	batteryVariant{Value: BTX5, Tag: "BTX5", Name: "75kWh"},
	batteryVariant{Value: BTX6, Tag: "BTX6", Name: "100kWh"},
	batteryVariant{Value: BTX7, Tag: "BTX7", Name: "75kWh"},
	batteryVariant{Value: BTX8, Tag: "BTX8", Name: "85kWh"},
)

func (v BatteryType) Code() string   { return batteryTypes.Tag(v) }
func (v BatteryType) String() string { return batteryTypes.Name(v) }

// AdapterType is encoded under the AD prefix. ADPX2 is the one five character code.
type AdapterType int

const (
	UnknownAdapterType AdapterType = iota
	AD02
	AD04
	AD05
	AD06
	AD07
	ADPX2
	ADX8
)

type adapterVariant = enum.Variant[AdapterType]

var adapterTypes = enum.NewTable("AdapterType",
	adapterVariant{Value: UnknownAdapterType, Tag: "Unknown", Name: "Unknown"},
	adapterVariant{Value: AD02, Tag: "AD02", Name: "NEMA 14-50"},
	adapterVariant{Value: AD04, Tag: "AD04", Name: "European 3-Phase"},
	adapterVariant{Value: AD05, Tag: "AD05", Name: "European 3-Phase, IT"},
	adapterVariant{Value: AD06, Tag: "AD06", Name: "Schuko (1 phase, 230V 13A)"},
	adapterVariant{Value: AD07, Tag: "AD07", Name: "Red IEC309 (3 phase 400V 16A)"},
	adapterVariant{Value: ADPX2, Tag: "ADPX2", Name: "Type 2 Public Charging Connector"},
	adapterVariant{Value: ADX8, Tag: "ADX8", Name: "Blue IEC309 (1 phase 230V 32A)"},
)

func (v AdapterType) Code() string   { return adapterTypes.Tag(v) }
func (v AdapterType) String() string { return adapterTypes.Name(v) }

// DriveType is encoded under the DV prefix.
type DriveType int

const (
	UnknownDriveType DriveType = iota
	DV2W
	DV4W
)

type driveTypeVariant = enum.Variant[DriveType]

var driveTypes = enum.NewTable("DriveType",
	driveTypeVariant{Value: UnknownDriveType, Tag: "Unknown", Name: "Unknown"},
	driveTypeVariant{Value: DV2W, Tag: "DV2W", Name: "RWD"},
	driveTypeVariant{Value: DV4W, Tag: "DV4W", Name: "AWD"},
)

func (v DriveType) Code() string   { return driveTypes.Tag(v) }
func (v DriveType) String() string { return driveTypes.Name(v) }

// Model is encoded under the MD prefix.
type Model int

const (
	UnknownModel Model = iota
	MDLS
	MDLX
	MDL3
)

type modelVariant = enum.Variant[Model]

var models = enum.NewTable("Model",
	modelVariant{Value: UnknownModel, Tag: "Unknown", Name: "Unknown"},
	modelVariant{Value: MDLS, Tag: "MDLS", Name: "Model S"},
	modelVariant{Value: MDLX, Tag: "MDLX", Name: "Model X"},
	modelVariant{Value: MDL3, Tag: "MDL3", Name: "Model 3"},
)

func (v Model) Code() string   { return models.Tag(v) }
func (v Model) String() string { return models.Name(v) }

// ModelType is never encoded directly; it is derived by Options.ModelType.
type ModelType int

const (
	UnknownModelType ModelType = iota
	S40
	S60
	S70
	S75
	S85
	P85
	P85Plus
	S60D
	S70D
	S75D
	S85D
	P85D
	S90D
	P90D
	S100D
	P100D
	THREE75
)

type modelTypeVariant = enum.Variant[ModelType]

var modelTypes = enum.NewTable("ModelType",
	modelTypeVariant{Value: UnknownModelType, Tag: "Unknown", Name: "Unknown"},
	modelTypeVariant{Value: S40, Tag: "S40", Name: "40"},
	modelTypeVariant{Value: S60, Tag: "S60", Name: "60"},
	modelTypeVariant{Value: S70, Tag: "S70", Name: "70"},
	modelTypeVariant{Value: S75, Tag: "S75", Name: "75"},
	modelTypeVariant{Value: S85, Tag: "S85", Name: "85"},
	modelTypeVariant{Value: P85, Tag: "P85", Name: "P85"},
	modelTypeVariant{Value: P85Plus, Tag: "P85Plus", Name: "P85+"},
	modelTypeVariant{Value: S60D, Tag: "S60D", Name: "60D"},
	modelTypeVariant{Value: S70D, Tag: "S70D", Name: "70D"},
	modelTypeVariant{Value: S75D, Tag: "S75D", Name: "75D"},
	modelTypeVariant{Value: S85D, Tag: "S85D", Name: "85D"},
	modelTypeVariant{Value: P85D, Tag: "P85D", Name: "P85D"},
	modelTypeVariant{Value: S90D, Tag: "S90D", Name: "90D"},
	modelTypeVariant{Value: P90D, Tag: "P90D", Name: "P90D"},
	modelTypeVariant{Value: S100D, Tag: "S100D", Name: "100D"},
	modelTypeVariant{Value: P100D, Tag: "P100D", Name: "P100D"},
	modelTypeVariant{Value: THREE75, Tag: "THREE75", Name: "LR"},
)

func (v ModelType) Code() string   { return modelTypes.Tag(v) }
func (v ModelType) String() string { return modelTypes.Name(v) }
