package nodes

import (
	"github.com/duke1swd/homie5nodes"
)

const (
	OrientationDefaultName = "Orientation sensor"
	OrientationXID         = "orientation-x"
	OrientationYID         = "orientation-y"
	OrientationZID         = "orientation-z"
	OrientationTiltID      = "tilt"
)

type OrientationConfig struct {
	Common `yaml:",inline"`
}

func DefaultOrientationConfig() OrientationConfig { return OrientationConfig{} }

func (c OrientationConfig) Kind() Kind { return KindOrientation }

func (c OrientationConfig) NodeConfig() (homie.NodeConfig, error) {
	angle := func(id, name string) homie.PropertyDescriptor {
		return homie.NewProperty(id, homie.DtInteger).WithName(name).WithUnit(homie.UnitDegree)
	}
	return c.Common.apply(homie.NodeConfig{
		Type: KindOrientation.TypeTag(),
		Name: OrientationDefaultName,
		Properties: []homie.PropertyDescriptor{
			angle(OrientationXID, "Rotation X-Axis"),
			angle(OrientationYID, "Rotation Y-Axis"),
			angle(OrientationZID, "Rotation Z-Axis"),
			angle(OrientationTiltID, "Tilt angle"),
		},
	}), nil
}

type Orientation struct {
	base
}

func NewOrientation(dev *homie.Device, id string, cfg OrientationConfig) (*Orientation, error) {
	b, err := newBase(dev, id, cfg, nil)
	if err != nil {
		return nil, err
	}
	return &Orientation{base: b}, nil
}

// Rotation publishes the three axis angles in degrees, stopping at the
// first failure.
func (o *Orientation) Rotation(x, y, z int64) error {
	for _, p := range []struct {
		id string
		v  int64
	}{{OrientationXID, x}, {OrientationYID, y}, {OrientationZID, z}} {
		if err := o.pub.Publish(p.id, p.v); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orientation) Tilt(deg int64) error {
	return o.pub.Publish(OrientationTiltID, deg)
}
