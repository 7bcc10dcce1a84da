package nodes

import (
	"github.com/duke1swd/homie5nodes"
)

const (
	SwitchDefaultName = "On/Off switch"
	SwitchStateID     = "state"
	SwitchActionID    = "action"
	SwitchToggle      = "toggle"
)

type SwitchConfig struct {
	Common   `yaml:",inline"`
	Settable bool `yaml:"settable"`
}

func DefaultSwitchConfig() SwitchConfig { return SwitchConfig{Settable: true} }

func (c SwitchConfig) Kind() Kind { return KindSwitch }

func (c SwitchConfig) NodeConfig() (homie.NodeConfig, error) {
	return c.Common.apply(homie.NodeConfig{
		Type: KindSwitch.TypeTag(),
		Name: SwitchDefaultName,
		Properties: []homie.PropertyDescriptor{
			homie.NewProperty(SwitchStateID, homie.DtBoolean).
				WithName("On/Off state").
				WithFormat("off,on").
				AsSettable(c.Settable),
		},
		Actions: []homie.ActionDescriptor{
			homie.NewAction(SwitchActionID, SwitchToggle).WithName("Change state").AsSettable(c.Settable),
		},
	}), nil
}

// SwitchHandlers receive the commands of a switch. Nil handlers are skipped.
type SwitchHandlers struct {
	State  func(on bool)
	Toggle func()
}

type Switch struct {
	base
}

func NewSwitch(dev *homie.Device, id string, cfg SwitchConfig, h SwitchHandlers) (*Switch, error) {
	sink := sinkOf(map[string]bool{
		SwitchStateID:  h.State != nil,
		SwitchActionID: h.Toggle != nil,
	}, func(c homie.Command) {
		switch c.Property {
		case SwitchStateID:
			h.State(c.Value.(bool))
		case SwitchActionID:
			h.Toggle()
		}
	})
	b, err := newBase(dev, id, cfg, sink)
	if err != nil {
		return nil, err
	}
	return &Switch{base: b}, nil
}

func (s *Switch) State(on bool) error       { return s.pub.Publish(SwitchStateID, on) }
func (s *Switch) StateTarget(on bool) error { return s.pub.PublishTarget(SwitchStateID, on) }

// Toggled reports that the switch was toggled locally.
func (s *Switch) Toggled() error { return s.pub.Publish(SwitchActionID, SwitchToggle) }
