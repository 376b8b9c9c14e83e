package events_test

import (
	"errors"
	"testing"

	"github.com/KirkDiggler/macro-relay/internal/domain/entity"
	"github.com/KirkDiggler/macro-relay/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_EffectFlow(t *testing.T) {
	bus := events.NewBus()

	var seen []*events.EffectEvent
	recorder := &testListener{
		id:       "recorder",
		priority: events.PriorityAudit,
		handler: func(e events.Event) error {
			if effectEvent, ok := e.(*events.EffectEvent); ok {
				seen = append(seen, effectEvent)
			}
			return nil
		},
	}

	bus.Subscribe(events.EventTypeEffectIncremented, recorder)

	injury := &entity.Effect{ID: "eff-1", Name: "injury", Counter: 2}
	err := bus.Emit(events.NewEffectEvent(events.EventTypeEffectIncremented, "char-1", injury, 1))
	require.NoError(t, err)

	// Not subscribed
	err = bus.Emit(events.NewEffectEvent(events.EventTypeEffectRemoved, "char-1", injury, 2))
	require.NoError(t, err)

	require.Len(t, seen, 1)
	assert.Equal(t, "char-1", seen[0].GetEntityID())
	assert.Equal(t, 1, seen[0].Previous)
	assert.Equal(t, 2, seen[0].Effect.Counter)
}

func TestEventBus_Priority(t *testing.T) {
	bus := events.NewBus()

	var executionOrder []string
	record := func(name string) func(events.Event) error {
		return func(events.Event) error {
			executionOrder = append(executionOrder, name)
			return nil
		}
	}

	// Subscribe in random order
	bus.Subscribe(events.EventTypeEffectCreated, &testListener{id: "low", priority: 300, handler: record("low")})
	bus.Subscribe(events.EventTypeEffectCreated, &testListener{id: "high", priority: 100, handler: record("high")})
	bus.Subscribe(events.EventTypeEffectCreated, &testListener{id: "medium", priority: 200, handler: record("medium")})

	err := bus.Emit(events.NewEffectEvent(events.EventTypeEffectCreated, "char-1", &entity.Effect{Name: "bless"}, 0))
	require.NoError(t, err)

	// Lower priority number = earlier execution
	assert.Equal(t, []string{"high", "medium", "low"}, executionOrder)

	bus.Unsubscribe(events.EventTypeEffectCreated, "medium")
	executionOrder = nil

	err = bus.Emit(events.NewEffectEvent(events.EventTypeEffectCreated, "char-1", &entity.Effect{Name: "bless"}, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "low"}, executionOrder)
}

func TestEventBus_Cancellation(t *testing.T) {
	bus := events.NewBus()

	var firstExecuted, secondExecuted bool

	first := &testListener{
		id:       "first",
		priority: 100,
		handler: func(e events.Event) error {
			firstExecuted = true
			e.Cancel()
			return nil
		},
	}

	second := &testListener{
		id:       "second",
		priority: 200,
		handler: func(e events.Event) error {
			secondExecuted = true
			return nil
		},
	}

	bus.Subscribe(events.EventTypeEffectUpdated, first)
	bus.Subscribe(events.EventTypeEffectUpdated, second)

	event := events.NewEffectEvent(events.EventTypeEffectUpdated, "char-1", &entity.Effect{Name: "mana"}, 1)
	require.NoError(t, bus.Emit(event))

	assert.True(t, firstExecuted)
	assert.False(t, secondExecuted)
	assert.True(t, event.IsCancelled())
}

func TestEventBus_ListenerError(t *testing.T) {
	bus := events.NewBus()
	bus.Subscribe(events.EventTypeEffectRemoved, &testListener{
		id:       "broken",
		priority: 0,
		handler:  func(events.Event) error { return errors.New("feed offline") },
	})

	err := bus.Emit(events.NewEffectEvent(events.EventTypeEffectRemoved, "char-1", &entity.Effect{Name: "injury"}, 1))
	assert.ErrorContains(t, err, "listener broken failed")

	bus.Clear()
	assert.NoError(t, bus.Emit(events.NewEffectEvent(events.EventTypeEffectRemoved, "char-1", &entity.Effect{Name: "injury"}, 1)))
}

// Test helper: simple event listener
type testListener struct {
	id       string
	priority int
	handler  func(events.Event) error
}

func (l *testListener) ID() string                       { return l.id }
func (l *testListener) Priority() int                    { return l.priority }
func (l *testListener) HandleEvent(e events.Event) error { return l.handler(e) }
