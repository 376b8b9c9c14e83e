package effects

//go:generate mockgen -destination=mock/mock.go -package=mockeffects -source=mutator.go

import (
	"context"

	"github.com/KirkDiggler/macro-relay/internal/domain/entity"
)

// Action describes what a mutation did to the stored effect
type Action string

const (
	ActionCreated     Action = "created"
	ActionIncremented Action = "incremented"
	ActionUpdated     Action = "updated"
	ActionRemoved     Action = "removed"
	ActionNone        Action = "none"
)

// Outcome is the result of one effect mutation
type Outcome struct {
	Action   Action
	EntityID string
	// Effect is the stored effect after the mutation. For removals it is the
	// effect as it was just before deletion; for ActionNone it may be nil.
	Effect *entity.Effect
}

// None builds an outcome for a mutation that had nothing to do
func None(entityID string) *Outcome {
	return &Outcome{Action: ActionNone, EntityID: entityID}
}

// Mutator performs the three mutation operations against one store. The
// Executor mutates directly; relay clients forward to a privileged Executor.
type Mutator interface {
	// Apply creates the effect or, when the entity already carries one with
	// the same name, increments its counter by payload.Counter
	Apply(ctx context.Context, entityID string, payload *entity.Effect) (*Outcome, error)

	// Update merges a patch into an existing effect. Fails with EffectNotFound
	// if the effect is gone.
	Update(ctx context.Context, entityID, effectID string, patch *entity.Patch) (*Outcome, error)

	// Remove deletes an effect. Fails with EffectNotFound if it is already gone.
	Remove(ctx context.Context, entityID, effectID string) (*Outcome, error)
}

// Reader supplies the latest stored state of an entity
type Reader interface {
	Get(ctx context.Context, id string) (*entity.Entity, error)
}
