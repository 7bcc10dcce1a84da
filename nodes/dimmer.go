package nodes

import (
	"github.com/duke1swd/homie5nodes"
)

const (
	DimmerDefaultName  = "Brightness control"
	DimmerBrightnessID = "brightness"
	DimmerActionID     = "action"
	DimmerBrighter     = "brighter"
	DimmerDarker       = "darker"
)

type DimmerConfig struct {
	Common   `yaml:",inline"`
	Settable bool               `yaml:"settable"`
	Range    homie.IntegerRange `yaml:"range"`
}

func DefaultDimmerConfig() DimmerConfig {
	return DimmerConfig{Settable: true, Range: homie.IntRange(0, 100)}
}

func (c DimmerConfig) Kind() Kind { return KindDimmer }

func (c DimmerConfig) NodeConfig() (homie.NodeConfig, error) {
	return c.Common.apply(homie.NodeConfig{
		Type: KindDimmer.TypeTag(),
		Name: DimmerDefaultName,
		Properties: []homie.PropertyDescriptor{
			homie.NewProperty(DimmerBrightnessID, homie.DtInteger).
				WithName("Brightness Level").
				WithFormat(c.Range.String()).
				WithUnit(homie.UnitPercent).
				AsSettable(c.Settable),
		},
		Actions: []homie.ActionDescriptor{
			homie.NewAction(DimmerActionID, DimmerBrighter, DimmerDarker).WithName("Change Brightness").AsSettable(c.Settable),
		},
	}), nil
}

type DimmerHandlers struct {
	Brightness func(level int64)
	Brighter   func()
	Darker     func()
}

type Dimmer struct {
	base
}

func NewDimmer(dev *homie.Device, id string, cfg DimmerConfig, h DimmerHandlers) (*Dimmer, error) {
	sink := sinkOf(map[string]bool{
		DimmerBrightnessID: h.Brightness != nil,
		DimmerActionID:     h.Brighter != nil || h.Darker != nil,
	}, func(c homie.Command) {
		switch {
		case c.Property == DimmerBrightnessID:
			h.Brightness(c.Value.(int64))
		case c.Property == DimmerActionID && c.Value == DimmerBrighter && h.Brighter != nil:
			h.Brighter()
		case c.Property == DimmerActionID && c.Value == DimmerDarker && h.Darker != nil:
			h.Darker()
		default:
			unhandled(dev, c)
		}
	})
	b, err := newBase(dev, id, cfg, sink)
	if err != nil {
		return nil, err
	}
	return &Dimmer{base: b}, nil
}

func (d *Dimmer) Brightness(level int64) error {
	return d.pub.Publish(DimmerBrightnessID, level)
}

func (d *Dimmer) BrightnessTarget(level int64) error {
	return d.pub.PublishTarget(DimmerBrightnessID, level)
}
