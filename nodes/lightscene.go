package nodes

import (
	"github.com/duke1swd/homie5nodes"
)

const (
	LightsceneDefaultName = "Light scenes"
	LightsceneRecallID    = "recall"
)

// LightsceneConfig lists the scenes a controller may recall. The list must
// not be empty.
type LightsceneConfig struct {
	Common   `yaml:",inline"`
	Scenes   []string `yaml:"scenes"`
	Settable bool     `yaml:"settable"`
}

func DefaultLightsceneConfig() LightsceneConfig {
	return LightsceneConfig{Settable: true}
}

func (c LightsceneConfig) Kind() Kind { return KindLightscene }

func (c LightsceneConfig) NodeConfig() (homie.NodeConfig, error) {
	if len(c.Scenes) == 0 {
		return homie.NodeConfig{}, invalid("scenes", "no scenes configured")
	}
	return c.Common.apply(homie.NodeConfig{
		Type: KindLightscene.TypeTag(),
		Name: LightsceneDefaultName,
		Actions: []homie.ActionDescriptor{
			homie.NewAction(LightsceneRecallID, c.Scenes...).WithName("Recall a scene").AsSettable(c.Settable),
		},
	}), nil
}

type Lightscene struct {
	base
}

// NewLightscene builds the node; recall is called with the scene to
// activate.
func NewLightscene(dev *homie.Device, id string, cfg LightsceneConfig, recall func(scene string)) (*Lightscene, error) {
	sink := sinkOf(map[string]bool{LightsceneRecallID: recall != nil}, func(c homie.Command) {
		recall(c.Value.(string))
	})
	b, err := newBase(dev, id, cfg, sink)
	if err != nil {
		return nil, err
	}
	return &Lightscene{base: b}, nil
}

// Recalled reports that scene was activated.
func (l *Lightscene) Recalled(scene string) error {
	return l.pub.Publish(LightsceneRecallID, scene)
}
