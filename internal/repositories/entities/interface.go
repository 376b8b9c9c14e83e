package entities

//go:generate mockgen -destination=mock/mock.go -package=mockentities -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/macro-relay/internal/domain/entity"
)

// Repository stores entities and is the mutation sink for their effects.
// Reads always reflect the latest stored state; nothing is cached.
type Repository interface {
	// Create stores a new entity together with any effects it already carries
	Create(ctx context.Context, e *entity.Entity) error

	// Get retrieves an entity with its live effect list
	Get(ctx context.Context, id string) (*entity.Entity, error)

	// Delete removes an entity and all of its effects
	Delete(ctx context.Context, id string) error

	// ListByOwner retrieves every entity owned by a participant
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Entity, error)

	// CreateEffect attaches a new effect. Fails with AlreadyExists when the
	// entity already carries an effect with the same semantic name.
	CreateEffect(ctx context.Context, entityID string, effect *entity.Effect) error

	// UpdateEffect merges a patch into an existing effect
	UpdateEffect(ctx context.Context, entityID, effectID string, patch *entity.Patch) (*entity.Effect, error)

	// DeleteEffect removes an effect
	DeleteEffect(ctx context.Context, entityID, effectID string) error
}
