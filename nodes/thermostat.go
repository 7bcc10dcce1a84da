package nodes

import (
	"github.com/duke1swd/homie5nodes"
)

const (
	ThermostatDefaultName      = "Thermostat"
	ThermostatSetTemperatureID = "set-temperature"
	ThermostatValveID          = "valve"
	ThermostatWindowOpenID     = "windowopen"
	ThermostatBoostStateID     = "boost-state"
	ThermostatModeID           = "mode"
)

// ThermostatMode is an operating mode a thermostat may offer.
type ThermostatMode string

const (
	ModeOff              ThermostatMode = "off"
	ModeAuto             ThermostatMode = "auto"
	ModeManual           ThermostatMode = "manual"
	ModeParty            ThermostatMode = "party"
	ModeBoost            ThermostatMode = "boost"
	ModeCool             ThermostatMode = "cool"
	ModeHeat             ThermostatMode = "heat"
	ModeEmergencyHeating ThermostatMode = "emergency-heating"
	ModePrecooling       ThermostatMode = "precooling"
	ModeFanOnly          ThermostatMode = "fan-only"
	ModeDry              ThermostatMode = "dry"
	ModeSleep            ThermostatMode = "sleep"
)

func (m ThermostatMode) valid() bool {
	switch m {
	case ModeOff, ModeAuto, ModeManual, ModeParty, ModeBoost, ModeCool, ModeHeat,
		ModeEmergencyHeating, ModePrecooling, ModeFanOnly, ModeDry, ModeSleep:
		return true
	}
	return false
}

type ThermostatConfig struct {
	Common     `yaml:",inline"`
	Unit       string           `yaml:"unit"`
	Valve      bool             `yaml:"valve"`
	WindowOpen bool             `yaml:"windowopen"`
	BoostState bool             `yaml:"boost-state"`
	Mode       bool             `yaml:"mode"`
	Modes      []ThermostatMode `yaml:"modes"`
	TempRange  homie.FloatRange `yaml:"temp-range"`
}

func DefaultThermostatConfig() ThermostatConfig {
	return ThermostatConfig{
		Unit:       homie.UnitCelsius,
		Valve:      true,
		WindowOpen: true,
		BoostState: true,
		Mode:       true,
		Modes:      []ThermostatMode{ModeAuto, ModeManual},
		TempRange:  homie.FltRange(5, 32).WithStep(0.5),
	}
}

func (c ThermostatConfig) Kind() Kind { return KindThermostat }

func (c ThermostatConfig) NodeConfig() (homie.NodeConfig, error) {
	if err := checkTempUnit(c.Unit); err != nil {
		return homie.NodeConfig{}, err
	}

	cfg := homie.NodeConfig{
		Type: KindThermostat.TypeTag(),
		Name: ThermostatDefaultName,
		Properties: []homie.PropertyDescriptor{
			homie.NewProperty(ThermostatSetTemperatureID, homie.DtFloat).
				WithName("Set target temperature").
				WithFormat(c.TempRange.String()).
				WithUnit(c.Unit).
				AsSettable(true),
		},
	}
	if c.Valve {
		cfg.Properties = append(cfg.Properties, homie.NewProperty(ThermostatValveID, homie.DtInteger).
			WithName("Valve opening Level").
			WithFormat(homie.IntRange(0, 100).String()).
			WithUnit(homie.UnitPercent))
	}
	if c.WindowOpen {
		cfg.Properties = append(cfg.Properties, homie.NewProperty(ThermostatWindowOpenID, homie.DtBoolean).
			WithName("Window open detected").
			WithFormat("closed,open"))
	}
	if c.BoostState {
		cfg.Properties = append(cfg.Properties, homie.NewProperty(ThermostatBoostStateID, homie.DtInteger).
			WithName("Remaining boost time").
			WithFormat("0:").
			WithUnit(homie.UnitMinutes))
	}
	if c.Mode {
		modes := make([]string, len(c.Modes))
		for i, m := range c.Modes {
			if !m.valid() {
				return homie.NodeConfig{}, invalid("modes", "unknown thermostat mode %q", m)
			}
			modes[i] = string(m)
		}
		cfg.Actions = append(cfg.Actions, homie.NewAction(ThermostatModeID, modes...).WithName("Change Mode"))
	}
	return c.Common.apply(cfg), nil
}

type ThermostatHandlers struct {
	SetTemperature func(float64)
	Mode           func(ThermostatMode)
}

type Thermostat struct {
	base
}

func NewThermostat(dev *homie.Device, id string, cfg ThermostatConfig, h ThermostatHandlers) (*Thermostat, error) {
	sink := sinkOf(map[string]bool{
		ThermostatSetTemperatureID: h.SetTemperature != nil,
		ThermostatModeID:           h.Mode != nil,
	}, func(c homie.Command) {
		switch c.Property {
		case ThermostatSetTemperatureID:
			h.SetTemperature(c.Value.(float64))
		case ThermostatModeID:
			h.Mode(ThermostatMode(c.Value.(string)))
		}
	})
	b, err := newBase(dev, id, cfg, sink)
	if err != nil {
		return nil, err
	}
	return &Thermostat{base: b}, nil
}

func (t *Thermostat) SetTemperature(v float64) error {
	return t.pub.Publish(ThermostatSetTemperatureID, v)
}

func (t *Thermostat) SetTemperatureTarget(v float64) error {
	return t.pub.PublishTarget(ThermostatSetTemperatureID, v)
}

func (t *Thermostat) Valve(percent int64) error {
	return t.pub.Publish(ThermostatValveID, percent)
}

func (t *Thermostat) WindowOpen(open bool) error {
	return t.pub.Publish(ThermostatWindowOpenID, open)
}

func (t *Thermostat) BoostState(minutes int64) error {
	return t.pub.Publish(ThermostatBoostStateID, minutes)
}

// Mode reports the active mode. Modes are not retained.
func (t *Thermostat) Mode(m ThermostatMode) error {
	return t.pub.Publish(ThermostatModeID, string(m))
}
