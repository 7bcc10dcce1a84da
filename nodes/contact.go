package nodes

import (
	"github.com/duke1swd/homie5nodes"
)

const (
	ContactDefaultName = "Open/Close contact"
	ContactStateID     = "state"
)

type ContactConfig struct {
	Common `yaml:",inline"`
}

func DefaultContactConfig() ContactConfig { return ContactConfig{} }

func (c ContactConfig) Kind() Kind { return KindContact }

func (c ContactConfig) NodeConfig() (homie.NodeConfig, error) {
	return c.Common.apply(homie.NodeConfig{
		Type: KindContact.TypeTag(),
		Name: ContactDefaultName,
		Properties: []homie.PropertyDescriptor{
			homie.NewProperty(ContactStateID, homie.DtBoolean).WithName("Open/Close state").WithFormat("closed,open"),
		},
	}), nil
}

// Contact is a door or window contact.
type Contact struct {
	base
}

func NewContact(dev *homie.Device, id string, cfg ContactConfig) (*Contact, error) {
	b, err := newBase(dev, id, cfg, nil)
	if err != nil {
		return nil, err
	}
	return &Contact{base: b}, nil
}

// State publishes whether the contact is open.
func (c *Contact) State(open bool) error {
	return c.pub.Publish(ContactStateID, open)
}
