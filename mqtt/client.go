// Package mqtt connects a homie.Device to an MQTT broker through the paho
// client.
package mqtt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/duke1swd/homie5nodes"
)

const (
	DefaultBroker  = "tcp://127.0.0.1:1883"
	clientIDPrefix = "homie5nodes"
	defaultTimeout = 10 * time.Second
	disconnectWait = 250 // ms
)

var ErrTimeout = errors.New("mqtt operation timed out")

// Options configures Connect. Zero values select the defaults.
type Options struct {
	Broker   string
	ClientID string
	Username string
	Password string
	QoS      byte
	Timeout  time.Duration

	// Will is registered as the last will, typically $state=lost.
	Will *homie.Message

	Logger *slog.Logger
}

// NewClientID returns a client id unique to this process for deviceID.
func NewClientID(deviceID string) string {
	return clientIDPrefix + "-" + deviceID + "-" + strings.SplitN(uuid.NewString(), "-", 2)[0]
}

// Client implements homie.Transport. Publish and Subscribe wait for the
// broker's acknowledgement, so they must not be called from inside a
// message handler: handlers run in order on paho's router goroutine.
type Client struct {
	c       paho.Client
	qos     byte
	timeout time.Duration
	log     *slog.Logger

	mu   sync.Mutex
	subs map[string]paho.MessageHandler
}

// Connect dials the broker and waits until the session is up or ctx ends.
// The connection is kept up by paho's auto reconnect; subscriptions are
// renewed on every reconnect.
func Connect(ctx context.Context, o Options) (*Client, error) {
	if o.Broker == "" {
		o.Broker = DefaultBroker
	}
	if o.ClientID == "" {
		o.ClientID = NewClientID("client")
	}
	if o.Timeout == 0 {
		o.Timeout = defaultTimeout
	}
	if o.QoS == 0 {
		o.QoS = 1
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	cl := &Client{
		qos:     o.QoS,
		timeout: o.Timeout,
		log:     o.Logger.With("broker", o.Broker),
		subs:    make(map[string]paho.MessageHandler),
	}

	options := paho.NewClientOptions()
	options.AddBroker(o.Broker)
	options.SetClientID(o.ClientID)
	options.SetKeepAlive(60 * time.Second)
	options.SetCleanSession(true)
	options.SetAutoReconnect(true)
	options.SetConnectRetry(true)
	options.SetConnectRetryInterval(time.Minute)
	options.SetOrderMatters(true)
	if o.Username != "" {
		options.SetUsername(o.Username)
		options.SetPassword(o.Password)
	}
	if o.Will != nil {
		options.SetWill(o.Will.Topic, o.Will.Payload, o.QoS, o.Will.Retained)
	}
	options.SetConnectionLostHandler(func(_ paho.Client, err error) {
		cl.log.Warn("mqtt connection lost", "error", err)
	})
	options.SetOnConnectHandler(cl.onConnect)

	cl.c = paho.NewClient(options)

	if err := cl.wait(ctx, cl.c.Connect()); err != nil {
		cl.c.Disconnect(0)
		return nil, fmt.Errorf("mqtt connect %s: %w", o.Broker, err)
	}
	return cl, nil
}

// onConnect renews subscriptions. A clean session forgets them on every
// reconnect; on the first connect the map is still empty.
func (cl *Client) onConnect(c paho.Client) {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	cl.log.Info("mqtt connected", "subscriptions", len(cl.subs))
	for topic, h := range cl.subs {
		t := c.Subscribe(topic, cl.qos, h)
		go func(topic string, t paho.Token) {
			if !t.WaitTimeout(cl.timeout) || t.Error() != nil {
				cl.log.Error("mqtt resubscribe failed", "topic", topic, "error", t.Error())
			}
		}(topic, t)
	}
}

func (cl *Client) wait(ctx context.Context, t paho.Token) error {
	timer := time.NewTimer(cl.timeout)
	defer timer.Stop()

	select {
	case <-t.Done():
		return t.Error()
	case <-timer.C:
		return ErrTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Publish sends payload and waits for the broker to acknowledge it.
func (cl *Client) Publish(topic, payload string, retained bool) error {
	return cl.wait(context.Background(), cl.c.Publish(topic, cl.qos, retained, payload))
}

// Subscribe registers h for topic. Handlers see messages of one topic in the
// order the broker delivered them.
func (cl *Client) Subscribe(topic string, h homie.Handler) (homie.Subscription, error) {
	mh := func(_ paho.Client, m paho.Message) { h(toMessage(m)) }

	if err := cl.wait(context.Background(), cl.c.Subscribe(topic, cl.qos, mh)); err != nil {
		return nil, err
	}

	cl.mu.Lock()
	cl.subs[topic] = mh
	cl.mu.Unlock()
	return &subscription{cl: cl, topic: topic}, nil
}

type subscription struct {
	cl    *Client
	topic string
	once  sync.Once
}

func (s *subscription) Unsubscribe() error {
	var err error
	s.once.Do(func() {
		s.cl.mu.Lock()
		delete(s.cl.subs, s.topic)
		s.cl.mu.Unlock()
		err = s.cl.wait(context.Background(), s.cl.c.Unsubscribe(s.topic))
	})
	return err
}

func toMessage(m paho.Message) homie.Message {
	return homie.Message{Topic: m.Topic(), Payload: string(m.Payload()), Retained: m.Retained()}
}

// Connected reports whether the session is currently up.
func (cl *Client) Connected() bool { return cl.c.IsConnected() }

// Close disconnects after giving in-flight work a moment to finish.
func (cl *Client) Close() {
	cl.c.Disconnect(disconnectWait)
}
