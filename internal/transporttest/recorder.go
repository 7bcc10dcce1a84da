// Package transporttest provides in-memory transports for tests.
package transporttest

import (
	"sort"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/duke1swd/homie5nodes"
)

// Recorder is an in-memory homie.Transport. It records every publish and
// hands injected messages to the handlers subscribed to their exact topic.
type Recorder struct {
	mu        sync.Mutex
	published []homie.Message
	subs      map[string]map[int]homie.Handler
	next      int
}

func NewRecorder() *Recorder {
	return &Recorder{subs: make(map[string]map[int]homie.Handler)}
}

func (r *Recorder) Publish(topic, payload string, retained bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = append(r.published, homie.Message{Topic: topic, Payload: payload, Retained: retained})
	return nil
}

func (r *Recorder) Subscribe(topic string, h homie.Handler) (homie.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.subs[topic] == nil {
		r.subs[topic] = make(map[int]homie.Handler)
	}
	r.next++
	r.subs[topic][r.next] = h
	return &subscription{r: r, topic: topic, id: r.next}, nil
}

type subscription struct {
	r     *Recorder
	topic string
	id    int
}

func (s *subscription) Unsubscribe() error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	delete(s.r.subs[s.topic], s.id)
	if len(s.r.subs[s.topic]) == 0 {
		delete(s.r.subs, s.topic)
	}
	return nil
}

// Inject delivers a message to the subscribers of topic on the calling
// goroutine and returns how many handlers saw it.
func (r *Recorder) Inject(topic, payload string, retained bool) int {
	r.mu.Lock()
	var hs []homie.Handler
	for _, h := range r.subs[topic] {
		hs = append(hs, h)
	}
	r.mu.Unlock()

	m := homie.Message{Topic: topic, Payload: payload, Retained: retained}
	for _, h := range hs {
		h(m)
	}
	return len(hs)
}

// Messages returns everything published so far, in order.
func (r *Recorder) Messages() []homie.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]homie.Message(nil), r.published...)
}

// Last returns the most recent message published on topic.
func (r *Recorder) Last(topic string) (homie.Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.published) - 1; i >= 0; i-- {
		if r.published[i].Topic == topic {
			return r.published[i], true
		}
	}
	return homie.Message{}, false
}

// Retained builds the map of topic to payload a broker would hold after
// the recorded publishes. Empty retained payloads clear a topic.
func (r *Recorder) Retained() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make(map[string]string)
	for _, m := range r.published {
		if !m.Retained {
			continue
		}
		if m.Payload == "" {
			delete(all, m.Topic)
			continue
		}
		all[m.Topic] = m.Payload
	}
	return all
}

// Subscribed returns the topics with at least one live subscription, sorted.
func (r *Recorder) Subscribed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	topics := make([]string, 0, len(r.subs))
	for t := range r.subs {
		topics = append(topics, t)
	}
	sort.Strings(topics)
	return topics
}

// Reset forgets recorded publishes. Subscriptions stay.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = nil
}

// MockTransport is a testify mock of homie.Transport for failure paths.
type MockTransport struct{ mock.Mock }

func (m *MockTransport) Publish(topic, payload string, retained bool) error {
	return m.Called(topic, payload, retained).Error(0)
}

func (m *MockTransport) Subscribe(topic string, h homie.Handler) (homie.Subscription, error) {
	ret := m.Called(topic, h)
	var s homie.Subscription
	if ret.Get(0) != nil {
		s = ret.Get(0).(homie.Subscription)
	}
	return s, ret.Error(1)
}

// MockSubscription is a testify mock of homie.Subscription.
type MockSubscription struct{ mock.Mock }

func (m *MockSubscription) Unsubscribe() error { return m.Called().Error(0) }
