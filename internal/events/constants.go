package events

// Event type constants
const (
	EventTypeEffectCreated     EventType = "effect.created"
	EventTypeEffectIncremented EventType = "effect.incremented"
	EventTypeEffectUpdated     EventType = "effect.updated"
	EventTypeEffectRemoved     EventType = "effect.removed"
)

// EffectEventTypes lists every effect mutation event
var EffectEventTypes = []EventType{
	EventTypeEffectCreated,
	EventTypeEffectIncremented,
	EventTypeEffectUpdated,
	EventTypeEffectRemoved,
}

// Priority levels for listener order
const (
	PriorityAudit  = 0   // Record what happened before anything reacts
	PriorityNotify = 100 // Chat feeds
	PriorityLow    = 500
)
