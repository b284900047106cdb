package events

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/settling/internal/geometry"
	"github.com/mitchelldurbincs/settling/internal/hex"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus()

	var received Event
	bus.SubscribeFunc(TypeBoardCreated, func(e Event) {
		received = e
	})

	bus.Publish(NewBoardCreatedEvent("board-1", 37, 9, hex.NewCube(-2, 0, 2)))

	require.NotNil(t, received)
	assert.Equal(t, TypeBoardCreated, received.Type())
	assert.Equal(t, "board-1", received.BoardID())
	assert.False(t, received.Timestamp().IsZero())
}

func TestEventBusMultipleHandlers(t *testing.T) {
	bus := NewEventBus()

	calls := 0
	id1 := bus.SubscribeFunc(TypeRoadPlaced, func(e Event) { calls++ })
	id2 := bus.SubscribeFunc(TypeRoadPlaced, func(e Event) { calls++ })

	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, bus.GetFuncHandlerCount(TypeRoadPlaced))

	bus.Publish(NewRoadPlacedEvent("board-1", "alice", geometry.At(hex.Origin, 0)))
	bus.Publish(NewRobberMovedEvent("board-1", hex.Origin, hex.NewCube(1, 0, -1)))

	assert.Equal(t, 2, calls)
}

// TestSubscriber is a test implementation of Subscriber
type TestSubscriber struct {
	id              string
	interestedTypes map[string]bool
	receivedEvents  []Event
}

func (ts *TestSubscriber) ID() string {
	return ts.id
}

func (ts *TestSubscriber) HandleEvent(e Event) {
	ts.receivedEvents = append(ts.receivedEvents, e)
}

func (ts *TestSubscriber) InterestedIn(eventType string) bool {
	if ts.interestedTypes == nil {
		return true
	}
	return ts.interestedTypes[eventType]
}

func TestEventBusSubscriber(t *testing.T) {
	bus := NewEventBus()

	subscriber := &TestSubscriber{
		id: "test-subscriber",
		interestedTypes: map[string]bool{
			TypeTownPlaced:   true,
			TypeCityUpgraded: true,
		},
	}
	bus.Subscribe(subscriber)
	assert.Equal(t, 1, bus.GetSubscriberCount())

	vertex := geometry.At(hex.NewCube(1, 1, -2), 4)
	bus.Publish(NewTownPlacedEvent("board-1", "alice", vertex, true))
	bus.Publish(NewRoadPlacedEvent("board-1", "alice", geometry.At(hex.NewCube(1, 1, -2), 4)))
	bus.Publish(NewCityUpgradedEvent("board-1", "alice", vertex))

	require.Len(t, subscriber.receivedEvents, 2)
	assert.Equal(t, TypeTownPlaced, subscriber.receivedEvents[0].Type())
	assert.Equal(t, TypeCityUpgraded, subscriber.receivedEvents[1].Type())

	bus.Unsubscribe(subscriber.ID())
	bus.Publish(NewTownPlacedEvent("board-1", "bob", vertex, false))

	assert.Len(t, subscriber.receivedEvents, 2)
	assert.Equal(t, 0, bus.GetSubscriberCount())
}

type panickingSubscriber struct{}

func (panickingSubscriber) ID() string               { return "panicky" }
func (panickingSubscriber) HandleEvent(Event)        { panic("boom") }
func (panickingSubscriber) InterestedIn(string) bool { return true }

func TestEventBus_RecoversFromPanics(t *testing.T) {
	bus := NewEventBus()
	bus.Subscribe(panickingSubscriber{})
	bus.SubscribeFunc(TypePlacementRejected, func(Event) { panic("also boom") })

	delivered := false
	bus.SubscribeFunc(TypePlacementRejected, func(Event) { delivered = true })

	assert.NotPanics(t, func() {
		bus.Publish(NewPlacementRejectedEvent("board-1", "bob", "add road", "(0, 0, 0):0", errors.New("road exists")))
	})
	assert.True(t, delivered)
}

// orderedSubscriber records its ID into a shared log
type orderedSubscriber struct {
	id  string
	log *[]string
}

func (o orderedSubscriber) ID() string               { return o.id }
func (o orderedSubscriber) HandleEvent(Event)        { *o.log = append(*o.log, o.id) }
func (o orderedSubscriber) InterestedIn(string) bool { return true }

func TestEventBus_DeliversInSubscriptionOrder(t *testing.T) {
	bus := NewEventBus()
	var got []string
	for _, id := range []string{"c", "a", "e", "b", "d"} {
		bus.Subscribe(orderedSubscriber{id: id, log: &got})
	}
	// resubscribing keeps the original position
	bus.Subscribe(orderedSubscriber{id: "a", log: &got})
	assert.Equal(t, 5, bus.GetSubscriberCount())

	for range 3 {
		got = nil
		bus.Publish(NewRobberMovedEvent("board-1", hex.Origin, hex.NewCube(1, 0, -1)))
		assert.Equal(t, []string{"c", "a", "e", "b", "d"}, got)
	}
}

func TestEventBus_HandlersCanChangeSubscriptions(t *testing.T) {
	bus := NewEventBus()
	var got []string
	bus.Subscribe(orderedSubscriber{id: "first", log: &got})

	calls := 0
	bus.SubscribeFunc(TypeRoadPlaced, func(Event) {
		calls++
		bus.Unsubscribe("first")
		bus.SubscribeFunc(TypeRoadPlaced, func(Event) { calls++ })
	})

	done := make(chan struct{})
	go func() {
		bus.Publish(NewRoadPlacedEvent("board-1", "alice", geometry.At(hex.Origin, 0)))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked while a handler changed subscriptions")
	}

	assert.Equal(t, []string{"first"}, got)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, bus.GetSubscriberCount())
	assert.Equal(t, 2, bus.GetFuncHandlerCount(TypeRoadPlaced))
}

func TestPlacementRejectedEvent(t *testing.T) {
	e := NewPlacementRejectedEvent("board-1", "bob", "add town", "(1, 1, -2):4", errors.New("occupied"))

	assert.Equal(t, TypePlacementRejected, e.Type())
	assert.Equal(t, "bob", e.Player)
	assert.Equal(t, "add town", e.Op)
	assert.Equal(t, "(1, 1, -2):4", e.At)
	assert.Equal(t, "occupied", e.Reason)
}
