package nodes

import (
	"github.com/duke1swd/homie5nodes"
)

const (
	PowermeterDefaultName   = "Powermeter"
	PowermeterPowerID       = "power"
	PowermeterCurrentID     = "current"
	PowermeterVoltageID     = "voltage"
	PowermeterFrequencyID   = "frequency"
	PowermeterConsumptionID = "consumption"
)

type PowermeterConfig struct {
	Common      `yaml:",inline"`
	Current     bool `yaml:"current"`
	Voltage     bool `yaml:"voltage"`
	Frequency   bool `yaml:"frequency"`
	Consumption bool `yaml:"consumption"`
}

func DefaultPowermeterConfig() PowermeterConfig {
	return PowermeterConfig{Current: true, Voltage: true, Consumption: true}
}

func (c PowermeterConfig) Kind() Kind { return KindPowermeter }

func (c PowermeterConfig) NodeConfig() (homie.NodeConfig, error) {
	reading := func(id, name, unit string) homie.PropertyDescriptor {
		return homie.NewProperty(id, homie.DtFloat).WithName(name).WithFormat("0:").WithUnit(unit)
	}

	props := []homie.PropertyDescriptor{reading(PowermeterPowerID, "Current power", homie.UnitWatt)}
	if c.Current {
		props = append(props, reading(PowermeterCurrentID, "Current", homie.UnitMilliAmpere))
	}
	if c.Voltage {
		props = append(props, reading(PowermeterVoltageID, "Voltage", homie.UnitVolt))
	}
	if c.Frequency {
		props = append(props, reading(PowermeterFrequencyID, "Frequency", homie.UnitHertz))
	}
	if c.Consumption {
		props = append(props, reading(PowermeterConsumptionID, "Consumption", homie.UnitWattHour))
	}
	return c.Common.apply(homie.NodeConfig{
		Type:       KindPowermeter.TypeTag(),
		Name:       PowermeterDefaultName,
		Properties: props,
	}), nil
}

type Powermeter struct {
	base
}

func NewPowermeter(dev *homie.Device, id string, cfg PowermeterConfig) (*Powermeter, error) {
	b, err := newBase(dev, id, cfg, nil)
	if err != nil {
		return nil, err
	}
	return &Powermeter{base: b}, nil
}

func (p *Powermeter) Power(watt float64) error     { return p.pub.Publish(PowermeterPowerID, watt) }
func (p *Powermeter) Current(ma float64) error     { return p.pub.Publish(PowermeterCurrentID, ma) }
func (p *Powermeter) Voltage(v float64) error      { return p.pub.Publish(PowermeterVoltageID, v) }
func (p *Powermeter) Frequency(hz float64) error   { return p.pub.Publish(PowermeterFrequencyID, hz) }
func (p *Powermeter) Consumption(wh float64) error { return p.pub.Publish(PowermeterConsumptionID, wh) }
