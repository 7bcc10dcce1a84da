package nodes

import (
	"github.com/duke1swd/homie5nodes"
)

const (
	ButtonDefaultName = "Pushbutton"
	ButtonActionID    = "action"
)

// ButtonAction is an event a button reports.
type ButtonAction string

const (
	ButtonPress       ButtonAction = "press"
	ButtonLongPress   ButtonAction = "long-press"
	ButtonDoublePress ButtonAction = "double-press"
	ButtonRelease     ButtonAction = "release"
	ButtonLongRelease ButtonAction = "long-release"
	ButtonContinuous  ButtonAction = "continuous"
)

func (a ButtonAction) valid() bool {
	switch a {
	case ButtonPress, ButtonLongPress, ButtonDoublePress, ButtonRelease, ButtonLongRelease, ButtonContinuous:
		return true
	}
	return false
}

// ButtonConfig selects the events a button can report.
type ButtonConfig struct {
	Common  `yaml:",inline"`
	Actions []ButtonAction `yaml:"actions"`
}

func DefaultButtonConfig() ButtonConfig {
	return ButtonConfig{Actions: []ButtonAction{ButtonPress}}
}

func (c ButtonConfig) Kind() Kind { return KindButton }

func (c ButtonConfig) NodeConfig() (homie.NodeConfig, error) {
	cmds := make([]string, len(c.Actions))
	for i, a := range c.Actions {
		if !a.valid() {
			return homie.NodeConfig{}, invalid("actions", "unknown button action %q", a)
		}
		cmds[i] = string(a)
	}

	return c.Common.apply(homie.NodeConfig{
		Type: KindButton.TypeTag(),
		Name: ButtonDefaultName,
		Actions: []homie.ActionDescriptor{
			// events only; controllers can not press the button
			homie.NewAction(ButtonActionID, cmds...).WithName("Button action event").AsSettable(false),
		},
	}), nil
}

// Button publishes button events. It accepts no commands.
type Button struct {
	base
}

func NewButton(dev *homie.Device, id string, cfg ButtonConfig) (*Button, error) {
	b, err := newBase(dev, id, cfg, nil)
	if err != nil {
		return nil, err
	}
	return &Button{base: b}, nil
}

// Trigger reports a button event.
func (b *Button) Trigger(a ButtonAction) error {
	return b.pub.Publish(ButtonActionID, string(a))
}
