package homie

// Publisher pushes values of one node's declared properties to the
// transport. It carries no state between calls and is safe for concurrent use.
type Publisher struct {
	dev  *Device
	desc *NodeDescription
}

func newPublisher(dev *Device, desc *NodeDescription) *Publisher {
	return &Publisher{dev: dev, desc: desc}
}

func (p *Publisher) Description() *NodeDescription { return p.desc }

// Publish encodes value for property id and sends it on the state topic with
// the property's retained flag. Nothing is sent when encoding fails.
func (p *Publisher) Publish(id string, value any) error {
	e, wire, err := p.encode(id, value)
	if err != nil {
		return err
	}
	return p.send(id, wire, e.desc.Retained, p.desc.id, id)
}

// PublishTarget sends value on the property's $target topic, announcing the
// state a settable property is moving towards. Only retained properties have
// a target.
func (p *Publisher) PublishTarget(id string, value any) error {
	e, wire, err := p.encode(id, value)
	if err != nil {
		return err
	}
	if !e.desc.Retained {
		return &PublishError{Property: id, Err: ErrNotRetained}
	}
	return p.send(id, wire, true, p.desc.id, id, targetTopicSuffix)
}

// PublishRaw sends an already encoded payload after checking it against the
// property's format.
func (p *Publisher) PublishRaw(id, payload string) error {
	e, ok := p.desc.lookup(id)
	if !ok {
		return &PublishError{Property: id, Err: ErrUnknownProperty}
	}
	if _, err := e.c.decode(payload); err != nil {
		return &PublishError{Property: id, Err: err}
	}
	return p.send(id, payload, e.desc.Retained, p.desc.id, id)
}

// Announce publishes the node's discovery attribute topics. It stops at the
// first transport failure.
func (p *Publisher) Announce() error {
	for _, m := range attributes(p.dev, p.desc) {
		if err := p.dev.publish(m.Topic, m.Payload, m.Retained); err != nil {
			return err
		}
	}
	return nil
}

// PublishDefaults publishes the declared default of every property that has one.
func (p *Publisher) PublishDefaults() error {
	for _, e := range p.desc.entries {
		if e.desc.Default == "" {
			continue
		}
		if err := p.send(e.desc.ID, e.desc.Default, e.desc.Retained, p.desc.id, e.desc.ID); err != nil {
			return err
		}
	}
	return nil
}

func (p *Publisher) encode(id string, value any) (*entry, string, error) {
	e, ok := p.desc.lookup(id)
	if !ok {
		return nil, "", &PublishError{Property: id, Err: ErrUnknownProperty}
	}
	wire, err := e.c.encode(value)
	if err != nil {
		return nil, "", &PublishError{Property: id, Err: err}
	}
	return e, wire, nil
}

func (p *Publisher) send(id, payload string, retained bool, parts ...string) error {
	if err := p.dev.publish(p.dev.Topic(parts...), payload, retained); err != nil {
		return &PublishError{Property: id, Err: err}
	}
	return nil
}
