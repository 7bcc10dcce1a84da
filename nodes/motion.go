package nodes

import (
	"github.com/duke1swd/homie5nodes"
)

const (
	MotionDefaultName = "Motion sensor"
	MotionMotionID    = "motion"
	MotionLuxID       = "lux"
)

type MotionConfig struct {
	Common `yaml:",inline"`
	Lux    bool `yaml:"lux"`
}

func DefaultMotionConfig() MotionConfig { return MotionConfig{} }

func (c MotionConfig) Kind() Kind { return KindMotion }

func (c MotionConfig) NodeConfig() (homie.NodeConfig, error) {
	props := []homie.PropertyDescriptor{
		homie.NewProperty(MotionMotionID, homie.DtBoolean).WithName("Motion detected").WithFormat("no-motion,motion"),
	}
	if c.Lux {
		props = append(props, homie.NewProperty(MotionLuxID, homie.DtInteger).WithName("Current lightlevel").WithUnit(homie.UnitLux))
	}
	return c.Common.apply(homie.NodeConfig{
		Type:       KindMotion.TypeTag(),
		Name:       MotionDefaultName,
		Properties: props,
	}), nil
}

type Motion struct {
	base
}

func NewMotion(dev *homie.Device, id string, cfg MotionConfig) (*Motion, error) {
	b, err := newBase(dev, id, cfg, nil)
	if err != nil {
		return nil, err
	}
	return &Motion{base: b}, nil
}

func (m *Motion) Motion(detected bool) error { return m.pub.Publish(MotionMotionID, detected) }
func (m *Motion) Lux(lux int64) error        { return m.pub.Publish(MotionLuxID, lux) }
