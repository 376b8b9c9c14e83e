package events

import (
	"time"

	"github.com/KirkDiggler/macro-relay/internal/domain/entity"
)

// EventType represents the type of domain event
type EventType string

// Event is the base interface for all domain events
type Event interface {
	GetType() EventType
	GetEntityID() string
	IsCancelled() bool
	Cancel()
}

// BaseEvent provides common implementation for all events
type BaseEvent struct {
	Type       EventType
	EntityID   string
	OccurredAt time.Time
	Cancelled  bool
}

func (e *BaseEvent) GetType() EventType  { return e.Type }
func (e *BaseEvent) GetEntityID() string { return e.EntityID }
func (e *BaseEvent) IsCancelled() bool   { return e.Cancelled }
func (e *BaseEvent) Cancel()             { e.Cancelled = true }

// EffectEvent is emitted after an effect mutation reached the store
type EffectEvent struct {
	BaseEvent
	// Effect is the effect as stored after the mutation, or as it was
	// just before removal
	Effect *entity.Effect
	// Previous is the counter before the mutation when the executor knew it
	// (0 on create)
	Previous int
}

// NewEffectEvent creates an effect event of the given type
func NewEffectEvent(eventType EventType, entityID string, effect *entity.Effect, previous int) *EffectEvent {
	return &EffectEvent{
		BaseEvent: BaseEvent{
			Type:       eventType,
			EntityID:   entityID,
			OccurredAt: time.Now(),
		},
		Effect:   effect,
		Previous: previous,
	}
}
