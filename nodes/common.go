// Package nodes holds the homecontrol node types built on the generic homie
// node builder. Each type pairs a typed configuration, restricted to the
// options that make sense for it, with a node handle offering typed publish
// methods and typed command callbacks.
//
// Callbacks run on the transport's delivery goroutine. With the mqtt
// transport they must hand work off instead of publishing directly.
package nodes

import (
	"fmt"

	"github.com/duke1swd/homie5nodes"
)

// Common carries the settings shared by every node type.
type Common struct {
	Name   string          `yaml:"name,omitempty"`
	Retain map[string]bool `yaml:"retain,omitempty"`
}

func (c Common) apply(cfg homie.NodeConfig) homie.NodeConfig {
	if c.Name != "" {
		cfg.Name = c.Name
	}
	if len(c.Retain) > 0 {
		cfg.Retained = make(map[string]bool, len(c.Retain))
		for k, v := range c.Retain {
			cfg.Retained[k] = v
		}
	}
	return cfg
}

// Configurer is implemented by every per-type configuration.
type Configurer interface {
	Kind() Kind
	NodeConfig() (homie.NodeConfig, error)
}

func invalid(field, format string, args ...any) error {
	return &homie.BuildError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// base is the part every typed node shares.
type base struct {
	dev  *homie.Device
	desc *homie.NodeDescription
	pub  *homie.Publisher
	disp *homie.Dispatcher
}

func newBase(dev *homie.Device, id string, c Configurer, sink homie.Sink) (base, error) {
	if id == "" {
		id = c.Kind().DefaultID()
	}
	cfg, err := c.NodeConfig()
	if err != nil {
		return base{}, err
	}
	desc, pub, disp, err := homie.Build(dev, id, cfg, sink)
	if err != nil {
		return base{}, err
	}
	return base{dev: dev, desc: desc, pub: pub, disp: disp}, nil
}

func (b *base) ID() string                          { return b.desc.ID() }
func (b *base) Description() *homie.NodeDescription { return b.desc }
func (b *base) Publisher() *homie.Publisher         { return b.pub }

// Announce publishes the node's discovery attributes.
func (b *base) Announce() error { return b.pub.Announce() }

// Errors reports set commands that were dropped.
func (b *base) Errors() <-chan error { return b.disp.Errors() }

// Close releases the node's subscriptions.
func (b *base) Close() error { return b.disp.Close() }

// handlerSink subscribes only the properties whose callback is installed.
type handlerSink struct {
	accept map[string]bool
	f      func(homie.Command)
}

func (s handlerSink) Deliver(c homie.Command)      { s.f(c) }
func (s handlerSink) Accepts(property string) bool { return s.accept[property] }

// sinkOf returns nil when no callback is installed so that no set topic is
// subscribed for nothing.
func sinkOf(accept map[string]bool, f func(homie.Command)) homie.Sink {
	for _, ok := range accept {
		if ok {
			return handlerSink{accept: accept, f: f}
		}
	}
	return nil
}

// unhandled logs a command that passed decoding but has no callback, such
// as one direction of a partly handled action.
func unhandled(dev *homie.Device, c homie.Command) {
	dev.Logger().Warn("no callback for command",
		"node", c.Node,
		"property", c.Property,
		"payload", c.Payload)
}
