package nodes

import (
	"github.com/duke1swd/homie5nodes"
)

const (
	WaterDefaultName = "Water sensor"
	WaterDetectedID  = "detected"
)

type WaterConfig struct {
	Common `yaml:",inline"`
}

func DefaultWaterConfig() WaterConfig { return WaterConfig{} }

func (c WaterConfig) Kind() Kind { return KindWater }

func (c WaterConfig) NodeConfig() (homie.NodeConfig, error) {
	return c.Common.apply(homie.NodeConfig{
		Type: KindWater.TypeTag(),
		Name: WaterDefaultName,
		Properties: []homie.PropertyDescriptor{
			homie.NewProperty(WaterDetectedID, homie.DtBoolean).WithName("Water detection").WithFormat("no water,water detected"),
		},
	}), nil
}

type Water struct {
	base
}

func NewWater(dev *homie.Device, id string, cfg WaterConfig) (*Water, error) {
	b, err := newBase(dev, id, cfg, nil)
	if err != nil {
		return nil, err
	}
	return &Water{base: b}, nil
}

func (w *Water) Detected(wet bool) error { return w.pub.Publish(WaterDetectedID, wet) }
