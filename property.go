package homie

// PropertyDescriptor describes one property of a node. It is a plain value:
// the With/As methods return modified copies, so a descriptor handed to a
// NodeConfig can not be changed behind the node's back.
//
// Build descriptors with NewProperty. Homie properties are retained unless
// stated otherwise, but the zero value and struct literals have Retained
// false and are published as non-retained.
type PropertyDescriptor struct {
	ID       string
	Name     string
	Datatype Datatype
	Format   string
	Unit     string
	Settable bool
	Retained bool
	Default  string // wire form, published by PublishDefaults
}

// NewProperty returns a retained, read-only property.
func NewProperty(id string, dt Datatype) PropertyDescriptor {
	return PropertyDescriptor{ID: id, Datatype: dt, Retained: true}
}

func (p PropertyDescriptor) WithName(name string) PropertyDescriptor {
	p.Name = name
	return p
}

func (p PropertyDescriptor) WithFormat(format string) PropertyDescriptor {
	p.Format = format
	return p
}

func (p PropertyDescriptor) WithUnit(unit string) PropertyDescriptor {
	p.Unit = unit
	return p
}

func (p PropertyDescriptor) WithDefault(wire string) PropertyDescriptor {
	p.Default = wire
	return p
}

func (p PropertyDescriptor) AsSettable(settable bool) PropertyDescriptor {
	p.Settable = settable
	return p
}

func (p PropertyDescriptor) AsRetained(retained bool) PropertyDescriptor {
	p.Retained = retained
	return p
}

// Encode validates value against the descriptor and returns its wire form.
func (p PropertyDescriptor) Encode(value any) (string, error) {
	return Encode(p.Datatype, p.Format, value)
}

// Decode parses a wire payload for this descriptor.
func (p PropertyDescriptor) Decode(payload string) (any, error) {
	return Decode(p.Datatype, p.Format, payload)
}

// ActionDescriptor is a trigger-only enum property: a fixed, ordered command
// vocabulary with no retained state.
type ActionDescriptor struct {
	ID       string
	Name     string
	Commands []string
	Settable bool
}

// NewAction returns a settable action accepting the given commands.
func NewAction(id string, commands ...string) ActionDescriptor {
	return ActionDescriptor{ID: id, Commands: append([]string(nil), commands...), Settable: true}
}

func (a ActionDescriptor) WithName(name string) ActionDescriptor {
	a.Name = name
	return a
}

// AsSettable marks whether controllers may send the action. Event sources
// such as buttons publish their actions without accepting them.
func (a ActionDescriptor) AsSettable(settable bool) ActionDescriptor {
	a.Settable = settable
	return a
}

// Property returns the enum property the action is carried on.
func (a ActionDescriptor) Property() PropertyDescriptor {
	return PropertyDescriptor{
		ID:       a.ID,
		Name:     a.Name,
		Datatype: DtEnum,
		Format:   EnumFormat(a.Commands...),
		Settable: a.Settable,
		Retained: false,
	}
}
