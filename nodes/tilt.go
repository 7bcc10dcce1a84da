package nodes

import (
	"github.com/duke1swd/homie5nodes"
)

const (
	TiltDefaultName = "Tilt sensor"
	TiltStateID     = "state"
)

type TiltConfig struct {
	Common `yaml:",inline"`
}

func DefaultTiltConfig() TiltConfig { return TiltConfig{} }

func (c TiltConfig) Kind() Kind { return KindTilt }

func (c TiltConfig) NodeConfig() (homie.NodeConfig, error) {
	return c.Common.apply(homie.NodeConfig{
		Type: KindTilt.TypeTag(),
		Name: TiltDefaultName,
		Properties: []homie.PropertyDescriptor{
			homie.NewProperty(TiltStateID, homie.DtBoolean).WithName("Tilted state").WithFormat("not tilted,tilted"),
		},
	}), nil
}

type Tilt struct {
	base
}

func NewTilt(dev *homie.Device, id string, cfg TiltConfig) (*Tilt, error) {
	b, err := newBase(dev, id, cfg, nil)
	if err != nil {
		return nil, err
	}
	return &Tilt{base: b}, nil
}

func (t *Tilt) State(tilted bool) error { return t.pub.Publish(TiltStateID, tilted) }
