package nodes

import (
	"github.com/duke1swd/homie5nodes"
)

const (
	ShutterDefaultName = "Shutter control"
	ShutterPositionID  = "position"
	ShutterActionID    = "action"
)

// ShutterAction is a command for a moving shutter.
type ShutterAction string

const (
	ShutterOpen  ShutterAction = "open"
	ShutterClose ShutterAction = "close"
	ShutterStop  ShutterAction = "stop"
)

type ShutterConfig struct {
	Common  `yaml:",inline"`
	CanStop bool `yaml:"can-stop"`
}

func DefaultShutterConfig() ShutterConfig { return ShutterConfig{CanStop: true} }

func (c ShutterConfig) Kind() Kind { return KindShutter }

func (c ShutterConfig) NodeConfig() (homie.NodeConfig, error) {
	cmds := []string{string(ShutterOpen), string(ShutterClose)}
	if c.CanStop {
		cmds = append(cmds, string(ShutterStop))
	}
	return c.Common.apply(homie.NodeConfig{
		Type: KindShutter.TypeTag(),
		Name: ShutterDefaultName,
		Properties: []homie.PropertyDescriptor{
			homie.NewProperty(ShutterPositionID, homie.DtInteger).
				WithName("Shutter position").
				WithFormat(homie.IntRange(0, 100).String()).
				WithUnit(homie.UnitPercent).
				AsSettable(true),
		},
		Actions: []homie.ActionDescriptor{
			homie.NewAction(ShutterActionID, cmds...).WithName("Control Shutter"),
		},
	}), nil
}

type ShutterHandlers struct {
	Position func(percent int64)
	Action   func(ShutterAction)
}

type Shutter struct {
	base
}

func NewShutter(dev *homie.Device, id string, cfg ShutterConfig, h ShutterHandlers) (*Shutter, error) {
	sink := sinkOf(map[string]bool{
		ShutterPositionID: h.Position != nil,
		ShutterActionID:   h.Action != nil,
	}, func(c homie.Command) {
		switch c.Property {
		case ShutterPositionID:
			h.Position(c.Value.(int64))
		case ShutterActionID:
			h.Action(ShutterAction(c.Value.(string)))
		}
	})
	b, err := newBase(dev, id, cfg, sink)
	if err != nil {
		return nil, err
	}
	return &Shutter{base: b}, nil
}

func (s *Shutter) Position(percent int64) error {
	return s.pub.Publish(ShutterPositionID, percent)
}

func (s *Shutter) PositionTarget(percent int64) error {
	return s.pub.PublishTarget(ShutterPositionID, percent)
}
