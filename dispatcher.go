package homie

import (
	"errors"
	"sync"
)

// Command is one decoded, validated inbound set command.
type Command struct {
	Node     string
	Property string
	Value    any    // typed as returned by Decode
	Payload  string // raw wire form
}

// Sink receives commands from a Dispatcher. Deliver is called on the
// transport's goroutine, one topic at a time in arrival order. It must not
// call Dispatcher.Close.
type Sink interface {
	Deliver(Command)
}

// SinkFilter is implemented by sinks that only handle some settable
// properties. The set topics of the others are not subscribed.
type SinkFilter interface {
	Sink
	Accepts(property string) bool
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Command)

func (f SinkFunc) Deliver(c Command) { f(c) }

// QueuePolicy selects what a ChannelSink does when its channel is full.
type QueuePolicy int

const (
	// Block waits for room in the channel.
	Block QueuePolicy = iota
	// DropOldest discards the oldest queued command to make room.
	DropOldest
)

type chanSink struct {
	ch     chan Command
	policy QueuePolicy
}

// ChannelSink returns a Sink queueing commands on ch.
func ChannelSink(ch chan Command, policy QueuePolicy) Sink {
	return &chanSink{ch: ch, policy: policy}
}

func (s *chanSink) Deliver(c Command) {
	if s.policy == Block {
		s.ch <- c
		return
	}
	for {
		select {
		case s.ch <- c:
			return
		default:
		}
		select {
		case <-s.ch:
		default:
		}
	}
}

const errorBuffer = 32

// Dispatcher owns the set topic subscriptions of one node and routes decoded
// commands to its sink. Commands that cannot be decoded are dropped, logged
// and reported on Errors.
type Dispatcher struct {
	dev  *Device
	desc *NodeDescription
	sink Sink
	errs chan error

	mu     sync.RWMutex
	subs   []Subscription
	topics []string
	closed bool
}

func newDispatcher(dev *Device, desc *NodeDescription, sink Sink) (*Dispatcher, error) {
	d := &Dispatcher{
		dev:  dev,
		desc: desc,
		sink: sink,
		errs: make(chan error, errorBuffer),
	}
	if sink == nil {
		return d, nil
	}

	for _, e := range desc.entries {
		if !e.desc.Settable {
			continue
		}
		if f, ok := sink.(SinkFilter); ok && !f.Accepts(e.desc.ID) {
			continue
		}
		topic := dev.Topic(desc.id, e.desc.ID, setTopicSuffix)
		sub, err := dev.transport.Subscribe(topic, d.handler(e, topic))
		if err != nil {
			unsubscribe(d.subs, d.topics)
			return nil, &TransportError{Topic: topic, Err: err}
		}
		d.subs = append(d.subs, sub)
		d.topics = append(d.topics, topic)
	}
	return d, nil
}

func (d *Dispatcher) handler(e entry, topic string) Handler {
	return func(m Message) {
		d.mu.RLock()
		defer d.mu.RUnlock()
		if d.closed {
			return
		}

		if m.Retained {
			d.report(e, m, ErrStaleCommand)
			return
		}
		v, err := e.c.decode(m.Payload)
		if err != nil {
			d.report(e, m, err)
			return
		}
		d.sink.Deliver(Command{
			Node:     d.desc.id,
			Property: e.desc.ID,
			Value:    v,
			Payload:  m.Payload,
		})
	}
}

func (d *Dispatcher) report(e entry, m Message, err error) {
	cerr := &CommandError{
		Node:     d.desc.id,
		Property: e.desc.ID,
		Topic:    m.Topic,
		Payload:  m.Payload,
		Err:      err,
	}
	d.dev.log.Warn("dropped command",
		"node", cerr.Node,
		"property", cerr.Property,
		"topic", cerr.Topic,
		"payload", cerr.Payload,
		"error", err)

	select {
	case d.errs <- cerr:
	default:
	}
}

// Errors returns the channel dropped commands are reported on as
// *CommandError. Reports are discarded while the channel is full. It is
// closed by Close.
func (d *Dispatcher) Errors() <-chan error { return d.errs }

// Topics returns the set topics the dispatcher is subscribed to.
func (d *Dispatcher) Topics() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]string(nil), d.topics...)
}

// Close unsubscribes every set topic. Once it returns no further command
// reaches the sink. Closing twice returns ErrDispatcherClosed. With a Block
// ChannelSink the channel must keep being drained until Close returns.
//
// The lock is only held to flip closed. Unsubscribing waits on the broker,
// and the transport may need to run handlers before it sees the ack.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrDispatcherClosed
	}
	d.closed = true
	subs, topics := d.subs, d.topics
	d.subs, d.topics = nil, nil
	// No handler holds the read lock now and later ones return early,
	// so nothing can send on errs any more.
	close(d.errs)
	d.mu.Unlock()

	return unsubscribe(subs, topics)
}

func unsubscribe(subs []Subscription, topics []string) error {
	var errs []error
	for i, s := range subs {
		if err := s.Unsubscribe(); err != nil {
			errs = append(errs, &TransportError{Topic: topics[i], Err: err})
		}
	}
	return errors.Join(errs...)
}
