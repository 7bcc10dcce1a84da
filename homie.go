package homie

// Homie 5 constants, data types and the unit table.

const (
	ProtocolVersion   = "5.0"
	protocolMajor     = "5"
	DefaultDomain     = "homie"
	FloatPrecision    = 6 // decimal places kept when encoding floats
	setTopicSuffix    = "set"
	targetTopicSuffix = "$target"
)

// Datatype is one of the property data types allowed by the convention.
type Datatype int

// These are the allowed Property data types, as per the v5 convention
const (
	DtString Datatype = iota
	DtInteger
	DtFloat
	DtBoolean
	DtEnum
	DtColor
	DtDatetime
	DtDuration
)

var datatypeNames = [...]string{
	DtString:   "string",
	DtInteger:  "integer",
	DtFloat:    "float",
	DtBoolean:  "boolean",
	DtEnum:     "enum",
	DtColor:    "color",
	DtDatetime: "datetime",
	DtDuration: "duration",
}

func (d Datatype) String() string {
	if d < 0 || int(d) >= len(datatypeNames) {
		return "unknown"
	}
	return datatypeNames[d]
}

func (d Datatype) valid() bool {
	return d >= DtString && d <= DtDuration
}

// ParseDatatype maps the wire name of a datatype back to its value.
func ParseDatatype(s string) (Datatype, bool) {
	for i, n := range datatypeNames {
		if n == s {
			return Datatype(i), true
		}
	}
	return 0, false
}

// Recommended units.
const (
	UnitCelsius     = "°C"
	UnitFahrenheit  = "°F"
	UnitDegree      = "°"
	UnitLiter       = "L"
	UnitGallon      = "gal"
	UnitVolt        = "V"
	UnitWatt        = "W"
	UnitKilowatt    = "kW"
	UnitKilowattHr  = "kWh"
	UnitWattHour    = "Wh"
	UnitAmpere      = "A"
	UnitMilliAmpere = "mA"
	UnitHertz       = "Hz"
	UnitPercent     = "%"
	UnitMeter       = "m"
	UnitCubicMeter  = "m³"
	UnitFeet        = "ft"
	UnitPascal      = "Pa"
	UnitKilopascal  = "kPa"
	UnitPSI         = "psi"
	UnitSeconds     = "s"
	UnitMinutes     = "min"
	UnitHours       = "h"
	UnitLux         = "lx"
	UnitKelvin      = "K"
	UnitMired       = "MK⁻¹"
	UnitCount       = "#"
	UnitPPM         = "ppm"
	UnitSpeed       = "m/s"
	UnitKmh         = "km/h"
)

// These are the allowed Property units.  Units however, are optional.
var propertyUnits = map[string]bool{
	UnitCelsius:     true,
	UnitFahrenheit:  true,
	UnitDegree:      true, // angle
	UnitLiter:       true,
	UnitGallon:      true,
	UnitVolt:        true,
	UnitWatt:        true,
	UnitKilowatt:    true,
	UnitKilowattHr:  true,
	UnitWattHour:    true,
	UnitAmpere:      true,
	UnitMilliAmpere: true,
	UnitHertz:       true,
	UnitPercent:     true,
	UnitMeter:       true,
	UnitCubicMeter:  true,
	UnitFeet:        true,
	UnitPascal:      true,
	UnitKilopascal:  true,
	UnitPSI:         true,
	UnitSeconds:     true,
	UnitMinutes:     true,
	UnitHours:       true,
	UnitLux:         true,
	UnitKelvin:      true,
	UnitMired:       true,
	UnitCount:       true, // count or amount
	UnitPPM:         true,
	UnitSpeed:       true,
	UnitKmh:         true,
}

// KnownUnit reports whether unit is in the convention's unit table.
func KnownUnit(unit string) bool {
	return propertyUnits[unit]
}
