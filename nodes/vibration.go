package nodes

import (
	"github.com/duke1swd/homie5nodes"
)

const (
	VibrationDefaultName = "Vibration sensor"
	VibrationID          = "vibration"
	VibrationStrengthID  = "vibration-strength"
)

type VibrationConfig struct {
	Common   `yaml:",inline"`
	Strength bool `yaml:"vibration-strength"`
}

func DefaultVibrationConfig() VibrationConfig { return VibrationConfig{Strength: true} }

func (c VibrationConfig) Kind() Kind { return KindVibration }

func (c VibrationConfig) NodeConfig() (homie.NodeConfig, error) {
	props := []homie.PropertyDescriptor{
		homie.NewProperty(VibrationID, homie.DtBoolean).WithName("Vibration detected").WithFormat("no-vibration,vibration"),
	}
	if c.Strength {
		props = append(props, homie.NewProperty(VibrationStrengthID, homie.DtInteger).WithName("Vibration strength"))
	}
	return c.Common.apply(homie.NodeConfig{
		Type:       KindVibration.TypeTag(),
		Name:       VibrationDefaultName,
		Properties: props,
	}), nil
}

type Vibration struct {
	base
}

func NewVibration(dev *homie.Device, id string, cfg VibrationConfig) (*Vibration, error) {
	b, err := newBase(dev, id, cfg, nil)
	if err != nil {
		return nil, err
	}
	return &Vibration{base: b}, nil
}

func (v *Vibration) Vibration(detected bool) error { return v.pub.Publish(VibrationID, detected) }
func (v *Vibration) Strength(s int64) error        { return v.pub.Publish(VibrationStrengthID, s) }
