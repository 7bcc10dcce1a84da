package homie

import (
	"log/slog"
	"strings"
)

// DeviceState is the value of the device level $state attribute.
type DeviceState string

const (
	StateInit         DeviceState = "init"
	StateReady        DeviceState = "ready"
	StateDisconnected DeviceState = "disconnected"
	StateSleeping     DeviceState = "sleeping"
	StateLost         DeviceState = "lost"
)

// Device is the already established device context nodes attach to. It owns
// the topic root and the transport; the device lifecycle itself is driven by
// the caller.
type Device struct {
	domain    string
	id        string
	name      string
	root      string
	transport Transport
	log       *slog.Logger
}

type DeviceOption func(*Device)

// WithLogger sets the logger used for dropped commands. Default is slog.Default().
func WithLogger(l *slog.Logger) DeviceOption {
	return func(d *Device) {
		if l != nil {
			d.log = l
		}
	}
}

// WithName sets the human readable device name used in $description.
func WithName(name string) DeviceOption {
	return func(d *Device) { d.name = name }
}

// NewDevice returns the context for device id under domain. An empty domain
// selects DefaultDomain.
func NewDevice(domain, id string, t Transport, opts ...DeviceOption) (*Device, error) {
	if domain == "" {
		domain = DefaultDomain
	}
	if err := validateID(domain, false); err != nil {
		return nil, buildErr("domain", "%v", err)
	}
	if err := validateID(id, false); err != nil {
		return nil, buildErr("device-id", "%v", err)
	}
	if t == nil {
		return nil, buildErr("transport", "no transport")
	}

	d := &Device{
		domain:    domain,
		id:        id,
		name:      id,
		root:      domain + "/" + protocolMajor + "/" + id,
		transport: t,
		log:       slog.Default(),
	}
	for _, o := range opts {
		o(d)
	}
	d.log = d.log.With("device", id)
	return d, nil
}

func (d *Device) ID() string           { return d.id }
func (d *Device) Name() string         { return d.name }
func (d *Device) Domain() string       { return d.domain }
func (d *Device) Root() string         { return d.root }
func (d *Device) Logger() *slog.Logger { return d.log }
func (d *Device) Transport() Transport { return d.transport }

// Topic joins parts below the device root.
func (d *Device) Topic(parts ...string) string {
	if len(parts) == 0 {
		return d.root
	}
	return d.root + "/" + strings.Join(parts, "/")
}

func (d *Device) publish(topic, payload string, retained bool) error {
	if err := d.transport.Publish(topic, payload, retained); err != nil {
		return &TransportError{Topic: topic, Err: err}
	}
	return nil
}

// PublishState publishes the retained $state attribute.
func (d *Device) PublishState(s DeviceState) error {
	return d.publish(d.Topic("$state"), string(s), true)
}

// LastWill is the message a broker should publish for device id once its
// session dies. The transport needs it before any Device exists.
func LastWill(domain, id string) Message {
	if domain == "" {
		domain = DefaultDomain
	}
	return Message{
		Topic:    domain + "/" + protocolMajor + "/" + id + "/$state",
		Payload:  string(StateLost),
		Retained: true,
	}
}

// SetAlert raises alert id with a human readable message.
func (d *Device) SetAlert(id, message string) error {
	if err := validateID(id, false); err != nil {
		return buildErr("alert", "%v", err)
	}
	if message == "" {
		return buildErr("alert["+id+"]", "empty alert message")
	}
	return d.publish(d.Topic("$alert", id), message, true)
}

// ClearAlert removes alert id by publishing an empty retained message.
func (d *Device) ClearAlert(id string) error {
	if err := validateID(id, false); err != nil {
		return buildErr("alert", "%v", err)
	}
	return d.publish(d.Topic("$alert", id), "", true)
}

// PublishDescription publishes the retained $description document for nodes.
func (d *Device) PublishDescription(nodes ...*NodeDescription) error {
	b, err := MarshalDeviceDescription(d.name, nodes...)
	if err != nil {
		return err
	}
	return d.publish(d.Topic("$description"), string(b), true)
}
