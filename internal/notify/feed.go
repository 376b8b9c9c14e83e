package notify

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/macro-relay/internal/events"
)

// FeedListener reports effect changes to the table as they happen
type FeedListener struct {
	notifier Notifier
}

// NewFeedListener creates a listener posting effect events through notifier
func NewFeedListener(notifier Notifier) *FeedListener {
	return &FeedListener{notifier: notifier}
}

// Register subscribes the listener to every effect event on the bus
func (l *FeedListener) Register(bus *events.Bus) {
	bus.SubscribeAll(events.EffectEventTypes, l)
}

func (l *FeedListener) ID() string    { return "effect-feed" }
func (l *FeedListener) Priority() int { return events.PriorityNotify }

// HandleEvent posts one line per effect change
func (l *FeedListener) HandleEvent(e events.Event) error {
	effectEvent, ok := e.(*events.EffectEvent)
	if !ok || effectEvent.Effect == nil {
		return nil
	}

	return l.notifier.Notify(context.Background(), &Message{
		Level: LevelInfo,
		Text:  Describe(effectEvent),
	})
}

// Describe renders an effect event as plain text
func Describe(e *events.EffectEvent) string {
	name := e.Effect.Name
	switch e.GetType() {
	case events.EventTypeEffectCreated:
		if e.Effect.Counter > 0 {
			return fmt.Sprintf("%s gains %s (%d)", e.GetEntityID(), name, e.Effect.Counter)
		}
		return fmt.Sprintf("%s gains %s", e.GetEntityID(), name)
	case events.EventTypeEffectIncremented:
		return fmt.Sprintf("%s: %s %d -> %d", e.GetEntityID(), name, e.Previous, e.Effect.Counter)
	case events.EventTypeEffectRemoved:
		return fmt.Sprintf("%s loses %s", e.GetEntityID(), name)
	default:
		return fmt.Sprintf("%s: %s updated", e.GetEntityID(), name)
	}
}
