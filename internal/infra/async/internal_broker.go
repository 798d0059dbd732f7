package async

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

type BrokerTopicName string

type BrokerMessage struct {
	Event string
	Value any
	Span  trace.Span
	Error error
}

type InternalBroker interface {
	Subscribe(topic BrokerTopicName) (Subscription, error)
	Unsubscribe(topic BrokerTopicName, subscription Subscription) error
	Publish(ctx context.Context, topic BrokerTopicName, msg BrokerMessage) error
	Stop()
}

var _ InternalBroker = (*LocalBroker)(nil)

var ErrTopicNotFound = errors.New("topic not found")
var ErrSubscriptorNotFound = errors.New("subscriptor not found")

// LocalBroker fans messages out to in-process subscribers. A topic exists
// once somebody subscribed to it, even after every subscriber left.
func NewLocalBroker() *LocalBroker {
	return &LocalBroker{
		topics: make(map[BrokerTopicName][]*subscriptor),
	}
}

type LocalBroker struct {
	mu     sync.RWMutex
	topics map[BrokerTopicName][]*subscriptor
}

type Subscription struct {
	ID       string
	Receiver chan BrokerMessage
}

type subscriptor struct {
	once         sync.Once
	mu           sync.RWMutex
	closed       bool
	done         chan struct{}
	subscription Subscription
}

func (b *LocalBroker) Subscribe(topic BrokerTopicName) (Subscription, error) {
	subscription := Subscription{ID: uuid.NewString(), Receiver: make(chan BrokerMessage)}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.topics[topic] = append(b.topics[topic], &subscriptor{
		done:         make(chan struct{}),
		subscription: subscription,
	})

	return subscription, nil
}

func (b *LocalBroker) Unsubscribe(topic BrokerTopicName, subscription Subscription) error {
	b.mu.Lock()
	subscriptors, ok := b.topics[topic]
	if !ok {
		b.mu.Unlock()
		return ErrTopicNotFound
	}

	index := slices.IndexFunc(subscriptors, func(s *subscriptor) bool { return s.subscription.ID == subscription.ID })
	if index < 0 {
		b.mu.Unlock()
		return ErrSubscriptorNotFound
	}
	removed := subscriptors[index]
	b.topics[topic] = slices.Delete(slices.Clone(subscriptors), index, index+1)
	b.mu.Unlock()

	removed.safeClose()
	return nil
}

func (b *LocalBroker) Publish(ctx context.Context, topic BrokerTopicName, msg BrokerMessage) error {
	msg.Span = trace.SpanFromContext(ctx)

	b.mu.RLock()
	subscriptors, ok := b.topics[topic]
	b.mu.RUnlock()
	if !ok {
		return ErrTopicNotFound
	}

	for _, s := range subscriptors {
		go s.deliver(msg)
	}

	return nil
}

func (b *LocalBroker) Stop() {
	b.mu.Lock()
	topics := b.topics
	b.topics = make(map[BrokerTopicName][]*subscriptor)
	b.mu.Unlock()

	for _, subscriptors := range topics {
		for _, s := range subscriptors {
			s.safeClose()
		}
	}
}

func (s *subscriptor) deliver(msg BrokerMessage) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}

	select {
	case s.subscription.Receiver <- msg:
	case <-s.done:
	}
}

// safeClose releases blocked deliveries before closing the receiver.
func (s *subscriptor) safeClose() {
	s.once.Do(func() {
		close(s.done)
		s.mu.Lock()
		s.closed = true
		close(s.subscription.Receiver)
		s.mu.Unlock()
	})
}
