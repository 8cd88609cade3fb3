package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davelara/shopper-cart/internal/platform/logger"
)

// Event describes a single change on a stored entity.
type Event struct {
	Entity string    `json:"entity"`
	ID     string    `json:"id"`
	Action string    `json:"action"`
	At     time.Time `json:"at"`
}

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Publisher fans change events out to interested subscribers. Read-side
// clients obtain an explicit Subscription and are responsible for closing it.
type Publisher interface {
	Publish(ctx context.Context, topic string, ev Event) error
	Subscribe(ctx context.Context, topic string) (*Subscription, error)
	Close() error
}

type redisStreams struct {
	client *redis.Client
	prefix string
}

func NewRedisStreams(addr, prefix string) Publisher {
	return &redisStreams{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		prefix: prefix,
	}
}

func (s *redisStreams) channel(topic string) string {
	return fmt.Sprintf("%s:%s", s.prefix, topic)
}

func (s *redisStreams) Publish(ctx context.Context, topic string, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := s.client.Publish(ctx, s.channel(topic), payload).Err(); err != nil {
		return err
	}
	logger.Debug("stream: published %s %s on %s", ev.Action, ev.ID, topic)
	return nil
}

func (s *redisStreams) Subscribe(ctx context.Context, topic string) (*Subscription, error) {
	pubsub := s.client.Subscribe(ctx, s.channel(topic))
	// Force the subscription onto the wire before handing out the handle.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	sub := &Subscription{
		topic:  topic,
		pubsub: pubsub,
		events: make(chan Event, 16),
		done:   make(chan struct{}),
	}
	go sub.run()
	return sub, nil
}

func (s *redisStreams) Close() error {
	return s.client.Close()
}

// Subscription is a live handle to one topic. Events() delivers changes
// until Close is called. Close must be called exactly once, by the owner of
// the handle.
type Subscription struct {
	topic  string
	pubsub *redis.PubSub
	events chan Event
	done   chan struct{}
}

func (s *Subscription) run() {
	defer close(s.events)
	ch := s.pubsub.Channel()
	for {
		select {
		case <-s.done:
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				logger.Warn("stream: dropping malformed event on %s: %v", s.topic, err)
				continue
			}
			select {
			case s.events <- ev:
			case <-s.done:
				return
			}
		}
	}
}

func (s *Subscription) Topic() string {
	return s.topic
}

func (s *Subscription) Events() <-chan Event {
	return s.events
}

func (s *Subscription) Close() error {
	close(s.done)
	return s.pubsub.Close()
}

// Topics used by the storefront.
const (
	TopicCatalog = "catalog"
)

// CartTopic scopes cart change events to a single user.
func CartTopic(userID string) string {
	return fmt.Sprintf("carts:%s", userID)
}
