package nodes

import (
	"github.com/duke1swd/homie5nodes"
)

const (
	NumericDefaultName = "numeric-sensor"
	NumericValueID     = "value"
)

// SensorType selects the quantity a numeric sensor measures.
type SensorType string

const (
	SensorGeneric     SensorType = "generic"
	SensorTemperature SensorType = "temperature"
	SensorHumidity    SensorType = "humidity"
	SensorPressure    SensorType = "pressure"
	SensorVolume      SensorType = "volume"
	SensorVolt        SensorType = "volt"
	SensorCurrent     SensorType = "current"
	SensorPower       SensorType = "power"
	SensorEnergy      SensorType = "energy"
	SensorFrequency   SensorType = "frequency"
	SensorBattery     SensorType = "battery"
	SensorDistance    SensorType = "distance"
	SensorSpeed       SensorType = "speed"
	SensorLight       SensorType = "light"
	SensorGasCO       SensorType = "gas-co"
	SensorGasCO2      SensorType = "gas-co2"
	SensorGasCH4      SensorType = "gas-ch4"
	SensorGasVOC      SensorType = "gas-voc"
)

type sensorInfo struct {
	unit   string
	format string
}

var sensors = map[SensorType]sensorInfo{
	SensorGeneric:     {},
	SensorTemperature: {homie.UnitCelsius, "-273.15:"},
	SensorHumidity:    {homie.UnitPercent, "0:100"},
	SensorPressure:    {homie.UnitKilopascal, ""},
	SensorVolume:      {homie.UnitLiter, ""},
	SensorVolt:        {homie.UnitVolt, ""},
	SensorCurrent:     {homie.UnitAmpere, ""},
	SensorPower:       {homie.UnitWatt, ""},
	SensorEnergy:      {homie.UnitKilowattHr, ""},
	SensorFrequency:   {homie.UnitHertz, ""},
	SensorBattery:     {homie.UnitPercent, "0:100"},
	SensorDistance:    {homie.UnitMeter, ""},
	SensorSpeed:       {homie.UnitSpeed, ""},
	SensorLight:       {homie.UnitLux, ""},
	SensorGasCO:       {homie.UnitPPM, ""},
	SensorGasCO2:      {homie.UnitPPM, ""},
	SensorGasCH4:      {homie.UnitPPM, ""},
	SensorGasVOC:      {homie.UnitPPM, ""},
}

func (s SensorType) known() bool {
	_, ok := sensors[s]
	return ok
}

// TypeTag is the $type of a numeric node measuring s.
func (s SensorType) TypeTag() string {
	return KindNumeric.TypeTag() + "-" + string(s)
}

// NumericConfig describes a single-value sensor. Unit and Range override the
// sensor type's defaults when set.
type NumericConfig struct {
	Common `yaml:",inline"`
	Sensor SensorType       `yaml:"sensor"`
	Unit   string           `yaml:"unit,omitempty"`
	Range  homie.FloatRange `yaml:"range,omitempty"`
}

func DefaultNumericConfig() NumericConfig { return NumericConfig{Sensor: SensorGeneric} }

func (c NumericConfig) Kind() Kind { return KindNumeric }

func (c NumericConfig) NodeConfig() (homie.NodeConfig, error) {
	info, ok := sensors[c.Sensor]
	if !ok {
		return homie.NodeConfig{}, invalid("sensor", "unknown sensor type %q", c.Sensor)
	}
	unit, format := info.unit, info.format
	if c.Unit != "" {
		unit = c.Unit
	}
	if r := c.Range.String(); r != "" {
		format = r
	}

	name := string(c.Sensor)
	if c.Sensor == SensorGeneric {
		name = NumericDefaultName
	}
	return c.Common.apply(homie.NodeConfig{
		Type: c.Sensor.TypeTag(),
		Name: name,
		Properties: []homie.PropertyDescriptor{
			homie.NewProperty(NumericValueID, homie.DtFloat).
				WithName("Measurement").
				WithFormat(format).
				WithUnit(unit),
		},
	}), nil
}

type Numeric struct {
	base
}

func NewNumeric(dev *homie.Device, id string, cfg NumericConfig) (*Numeric, error) {
	b, err := newBase(dev, id, cfg, nil)
	if err != nil {
		return nil, err
	}
	return &Numeric{base: b}, nil
}

func (n *Numeric) Value(v float64) error { return n.pub.Publish(NumericValueID, v) }
