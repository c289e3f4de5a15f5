package event_bus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var timestamp = time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)

func TestPublish_RunsHandlersInSubscriptionOrder(t *testing.T) {
	bus := NewEventBus()
	var calls []int
	for i := 1; i <= 5; i++ {
		i := i
		bus.Subscribe("test", func(e Event) error {
			calls = append(calls, i)
			return nil
		})
	}

	err := bus.Publish(NewEvent(context.Background(), "test", timestamp, "payload"))

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, calls)
}

func TestPublish_OnlyMatchingType(t *testing.T) {
	bus := NewEventBus()
	called := false
	bus.Subscribe("other", func(e Event) error {
		called = true
		return nil
	})

	require.NoError(t, bus.Publish(NewEvent(context.Background(), "test", timestamp, nil)))
	assert.False(t, called)
}

func TestUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	var calls []string
	unsubA := bus.Subscribe("test", func(e Event) error { calls = append(calls, "a"); return nil })
	bus.Subscribe("test", func(e Event) error { calls = append(calls, "b"); return nil })

	unsubA()
	unsubA()
	require.NoError(t, bus.Publish(NewEvent(context.Background(), "test", timestamp, nil)))

	assert.Equal(t, []string{"b"}, calls)
}

func TestPublish_CollectsErrorsAndPanics(t *testing.T) {
	bus := NewEventBus()
	reached := false
	bus.Subscribe("test", func(e Event) error { return errors.New("boom") })
	bus.Subscribe("test", func(e Event) error { panic("bad handler") })
	bus.Subscribe("test", func(e Event) error { reached = true; return nil })

	err := bus.Publish(NewEvent(context.Background(), "test", timestamp, nil))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 handler(s) failed")
	assert.Contains(t, err.Error(), "bad handler")
	assert.True(t, reached, "later handlers still run")
}

func TestPublish_CancelledContext(t *testing.T) {
	bus := NewEventBus()
	called := false
	bus.Subscribe("test", func(e Event) error { called = true; return nil })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := bus.Publish(NewEvent(ctx, "test", timestamp, nil))

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestSubscribeTyped(t *testing.T) {
	bus := NewEventBus()
	var received []CalendarEventDeleted
	var stamps []time.Time
	SubscribeTyped(bus, CalendarEventDeletedType, func(e EventT[CalendarEventDeleted]) error {
		received = append(received, e.Data)
		stamps = append(stamps, e.Timestamp)
		assert.NotNil(t, e.Context())
		return nil
	})

	require.NoError(t, bus.Publish(NewEvent(context.Background(), CalendarEventDeletedType, timestamp, CalendarEventDeleted{Id: "1"})))
	require.NoError(t, bus.Publish(NewEvent(context.Background(), CalendarEventDeletedType, timestamp, "wrong payload")))
	require.NoError(t, bus.Publish(NewEvent(context.Background(), CalendarEventDeletedType, timestamp, nil)))

	assert.Equal(t, []CalendarEventDeleted{{Id: "1"}}, received)
	assert.Equal(t, []time.Time{timestamp}, stamps)
}
