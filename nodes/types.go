package nodes

import "strings"

// Namespace is the homecontrol type namespace used in node $type attributes.
const Namespace = "homie-homecontrol/v1"

const typePrefix = Namespace + "/type="

// Kind names a node type.
type Kind string

const (
	KindButton      Kind = "button"
	KindColorlight  Kind = "colorlight"
	KindContact     Kind = "contact"
	KindDimmer      Kind = "dimmer"
	KindLightscene  Kind = "lightscene"
	KindMaintenance Kind = "maintenance"
	KindMotion      Kind = "motion"
	KindNumeric     Kind = "numeric"
	KindOrientation Kind = "orientation"
	KindPowermeter  Kind = "powermeter"
	KindShutter     Kind = "shutter"
	KindSwitch      Kind = "switch"
	KindThermostat  Kind = "thermostat"
	KindTilt        Kind = "tilt"
	KindVibration   Kind = "vibration"
	KindWater       Kind = "water"
	KindWeather     Kind = "weather"
)

var kinds = []Kind{
	KindButton, KindColorlight, KindContact, KindDimmer, KindLightscene,
	KindMaintenance, KindMotion, KindNumeric, KindOrientation, KindPowermeter,
	KindShutter, KindSwitch, KindThermostat, KindTilt, KindVibration,
	KindWater, KindWeather,
}

// Kinds returns every known node type.
func Kinds() []Kind { return append([]Kind(nil), kinds...) }

// TypeTag is the value published as the node's $type.
func (k Kind) TypeTag() string { return typePrefix + string(k) }

// DefaultID is the node id used when none is given.
func (k Kind) DefaultID() string {
	if k == KindLightscene {
		return "scenes"
	}
	return string(k)
}

func (k Kind) known() bool {
	for _, x := range kinds {
		if x == k {
			return true
		}
	}
	return false
}

// ParseKind maps a plain type name such as "switch" to its Kind.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	return k, k.known()
}

// ParseType maps a $type value back to its Kind. Numeric sensors carry
// their sensor type as a suffix, e.g. ".../type=numeric-temperature".
func ParseType(tag string) (Kind, bool) {
	name, ok := strings.CutPrefix(tag, typePrefix)
	if !ok {
		return "", false
	}
	if k, ok := ParseKind(name); ok {
		return k, true
	}
	if st, ok := strings.CutPrefix(name, string(KindNumeric)+"-"); ok {
		if SensorType(st).known() {
			return KindNumeric, true
		}
	}
	return "", false
}

// NewConfig returns the default configuration of kind, ready to be
// overlaid by a configuration file.
func NewConfig(kind Kind) (Configurer, bool) {
	switch kind {
	case KindButton:
		c := DefaultButtonConfig()
		return &c, true
	case KindColorlight:
		c := DefaultColorlightConfig()
		return &c, true
	case KindContact:
		c := DefaultContactConfig()
		return &c, true
	case KindDimmer:
		c := DefaultDimmerConfig()
		return &c, true
	case KindLightscene:
		c := DefaultLightsceneConfig()
		return &c, true
	case KindMaintenance:
		c := DefaultMaintenanceConfig()
		return &c, true
	case KindMotion:
		c := DefaultMotionConfig()
		return &c, true
	case KindNumeric:
		c := DefaultNumericConfig()
		return &c, true
	case KindOrientation:
		c := DefaultOrientationConfig()
		return &c, true
	case KindPowermeter:
		c := DefaultPowermeterConfig()
		return &c, true
	case KindShutter:
		c := DefaultShutterConfig()
		return &c, true
	case KindSwitch:
		c := DefaultSwitchConfig()
		return &c, true
	case KindThermostat:
		c := DefaultThermostatConfig()
		return &c, true
	case KindTilt:
		c := DefaultTiltConfig()
		return &c, true
	case KindVibration:
		c := DefaultVibrationConfig()
		return &c, true
	case KindWater:
		c := DefaultWaterConfig()
		return &c, true
	case KindWeather:
		c := DefaultWeatherConfig()
		return &c, true
	}
	return nil, false
}
