package homie

// Message is one publish/subscribe message as seen by the node layer.
type Message struct {
	Topic    string
	Payload  string
	Retained bool
}

// Handler receives inbound messages. Transports may call it from their own
// goroutines; messages on one topic must arrive in order.
type Handler func(Message)

// Subscription is a live subscription returned by Transport.Subscribe.
type Subscription interface {
	Unsubscribe() error
}

// Transport is the publish/subscribe client a Device talks through. The mqtt
// package provides the paho based implementation.
type Transport interface {
	Publish(topic, payload string, retained bool) error
	Subscribe(topic string, h Handler) (Subscription, error)
}
