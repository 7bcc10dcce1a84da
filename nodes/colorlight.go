package nodes

import (
	"github.com/duke1swd/homie5nodes"
)

const (
	ColorlightDefaultName   = "Colorlight control"
	ColorlightColorID       = "color"
	ColorlightTemperatureID = "color-temperature"
)

type ColorlightConfig struct {
	Common       `yaml:",inline"`
	Settable     bool               `yaml:"settable"`
	ColorFormats []homie.ColorSpace `yaml:"color-formats"`
	CTMin        int64              `yaml:"ct-min"`
	CTMax        int64              `yaml:"ct-max"`
}

func DefaultColorlightConfig() ColorlightConfig {
	return ColorlightConfig{
		Settable:     true,
		ColorFormats: []homie.ColorSpace{homie.ColorRGB},
		CTMin:        153,
		CTMax:        555,
	}
}

func (c ColorlightConfig) Kind() Kind { return KindColorlight }

func (c ColorlightConfig) NodeConfig() (homie.NodeConfig, error) {
	return c.Common.apply(homie.NodeConfig{
		Type: KindColorlight.TypeTag(),
		Name: ColorlightDefaultName,
		Properties: []homie.PropertyDescriptor{
			homie.NewProperty(ColorlightColorID, homie.DtColor).
				WithName("Color").
				WithFormat(homie.ColorFormat(c.ColorFormats...)).
				AsSettable(c.Settable),
			homie.NewProperty(ColorlightTemperatureID, homie.DtInteger).
				WithName("Color temperature").
				WithFormat(homie.IntRange(c.CTMin, c.CTMax).String()).
				WithUnit(homie.UnitMired).
				AsSettable(c.Settable),
		},
	}), nil
}

type ColorlightHandlers struct {
	Color            func(homie.Color)
	ColorTemperature func(mired int64)
}

type Colorlight struct {
	base
}

func NewColorlight(dev *homie.Device, id string, cfg ColorlightConfig, h ColorlightHandlers) (*Colorlight, error) {
	sink := sinkOf(map[string]bool{
		ColorlightColorID:       h.Color != nil,
		ColorlightTemperatureID: h.ColorTemperature != nil,
	}, func(c homie.Command) {
		switch c.Property {
		case ColorlightColorID:
			h.Color(c.Value.(homie.Color))
		case ColorlightTemperatureID:
			h.ColorTemperature(c.Value.(int64))
		}
	})
	b, err := newBase(dev, id, cfg, sink)
	if err != nil {
		return nil, err
	}
	return &Colorlight{base: b}, nil
}

func (l *Colorlight) Color(c homie.Color) error {
	return l.pub.Publish(ColorlightColorID, c)
}

func (l *Colorlight) ColorTarget(c homie.Color) error {
	return l.pub.PublishTarget(ColorlightColorID, c)
}

func (l *Colorlight) ColorTemperature(mired int64) error {
	return l.pub.Publish(ColorlightTemperatureID, mired)
}

func (l *Colorlight) ColorTemperatureTarget(mired int64) error {
	return l.pub.PublishTarget(ColorlightTemperatureID, mired)
}
