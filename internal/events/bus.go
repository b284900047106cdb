package events

import (
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type funcHandler struct {
	id string
	fn EventHandler
}

// EventBus delivers events synchronously. Subscribers are called in the
// order they subscribed, then the function handlers for the event type.
// Handlers may subscribe or unsubscribe while an event is being delivered;
// the change applies from the next Publish.
type EventBus struct {
	mu           sync.RWMutex
	subscribers  []Subscriber
	funcHandlers map[string][]funcHandler
	nextHandler  int
	logger       zerolog.Logger
}

var _ Bus = (*EventBus)(nil)

// NewEventBus creates a new event bus instance
func NewEventBus() *EventBus {
	return &EventBus{
		funcHandlers: make(map[string][]funcHandler),
		logger:       log.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe adds a subscriber. Subscribing again with a known ID replaces
// the old subscriber in its place.
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	i := eb.indexOf(subscriber.ID())
	if i >= 0 {
		eb.subscribers[i] = subscriber
	} else {
		eb.subscribers = append(eb.subscribers, subscriber)
	}
	eb.logger.Debug().
		Str("subscriber_id", subscriber.ID()).
		Bool("replaced", i >= 0).
		Msg("Subscriber added to event bus")
}

// Unsubscribe removes a subscriber from the event bus
func (eb *EventBus) Unsubscribe(subscriberID string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.subscribers = slices.DeleteFunc(eb.subscribers, func(s Subscriber) bool {
		return s.ID() == subscriberID
	})
	eb.logger.Debug().
		Str("subscriber_id", subscriberID).
		Msg("Subscriber removed from event bus")
}

// SubscribeFunc registers a handler for one event type and returns its ID
func (eb *EventBus) SubscribeFunc(eventType string, handler EventHandler) string {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextHandler++
	id := fmt.Sprintf("%s#%d", eventType, eb.nextHandler)
	eb.funcHandlers[eventType] = append(eb.funcHandlers[eventType], funcHandler{id: id, fn: handler})

	eb.logger.Debug().
		Str("event_type", eventType).
		Str("handler_id", id).
		Msg("Function handler added to event bus")
	return id
}

// Publish delivers the event to every interested subscriber and handler.
// A panicking receiver is logged and skipped.
func (eb *EventBus) Publish(event Event) {
	eventType := event.Type()

	eb.mu.RLock()
	subscribers := slices.Clone(eb.subscribers)
	handlers := slices.Clone(eb.funcHandlers[eventType])
	eb.mu.RUnlock()

	eb.logger.Debug().
		Str("event_type", eventType).
		Str("board_id", event.BoardID()).
		Time("timestamp", event.Timestamp()).
		Msg("Publishing event")

	for _, s := range subscribers {
		if s.InterestedIn(eventType) {
			eb.deliver(eventType, s.ID(), func() { s.HandleEvent(event) })
		}
	}
	for _, h := range handlers {
		eb.deliver(eventType, h.id, func() { h.fn(event) })
	}
}

func (eb *EventBus) deliver(eventType, receiver string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error().
				Str("receiver", receiver).
				Str("event_type", eventType).
				Interface("panic", r).
				Msg("Event receiver panicked")
		}
	}()
	fn()
}

func (eb *EventBus) indexOf(subscriberID string) int {
	return slices.IndexFunc(eb.subscribers, func(s Subscriber) bool {
		return s.ID() == subscriberID
	})
}

// GetSubscriberCount returns the number of subscribers
func (eb *EventBus) GetSubscriberCount() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers)
}

// GetFuncHandlerCount returns the number of function handlers for an event type
func (eb *EventBus) GetFuncHandlerCount(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.funcHandlers[eventType])
}
