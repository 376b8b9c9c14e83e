package entities

import (
	"context"
	"sync"

	"github.com/KirkDiggler/macro-relay/internal/domain/entity"
	dnderr "github.com/KirkDiggler/macro-relay/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the entity repository
// Useful for testing and single-table development
type InMemoryRepository struct {
	mu       sync.RWMutex
	entities map[string]*entity.Entity
	clock    TimeProvider
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		entities: make(map[string]*entity.Entity),
		clock:    SystemTime(),
	}
}

// Create stores a new entity
func (r *InMemoryRepository) Create(_ context.Context, e *entity.Entity) error {
	if e == nil {
		return dnderr.InvalidArgument("entity cannot be nil")
	}
	if e.ID == "" {
		return dnderr.InvalidArgument("entity ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entities[e.ID]; exists {
		return dnderr.AlreadyExistsf("entity with ID '%s' already exists", e.ID).
			WithMeta("entity_id", e.ID)
	}

	stored := e.Clone()
	stored.NormalizeAttributes()
	seen := make(map[string]bool, len(stored.Effects))
	for _, effect := range stored.Effects {
		key := entity.NormalizeName(effect.Name)
		if seen[key] {
			return dnderr.AlreadyExistsf("entity '%s' carries effect '%s' twice", e.ID, effect.Name)
		}
		seen[key] = true
	}

	now := r.clock.Now()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	r.entities[e.ID] = stored

	return nil
}

// Get retrieves an entity by ID
func (r *InMemoryRepository) Get(_ context.Context, id string) (*entity.Entity, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("entity ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, exists := r.entities[id]
	if !exists {
		return nil, dnderr.NotFoundf("entity with ID '%s' not found", id).
			WithMeta("entity_id", id)
	}

	return stored.Clone(), nil
}

// Delete removes an entity
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	if id == "" {
		return dnderr.InvalidArgument("entity ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entities[id]; !exists {
		return dnderr.NotFoundf("entity with ID '%s' not found", id).
			WithMeta("entity_id", id)
	}
	delete(r.entities, id)

	return nil
}

// ListByOwner retrieves all entities for a specific owner
func (r *InMemoryRepository) ListByOwner(_ context.Context, ownerID string) ([]*entity.Entity, error) {
	if ownerID == "" {
		return nil, dnderr.InvalidArgument("owner ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*entity.Entity
	for _, stored := range r.entities {
		if stored.OwnerID == ownerID {
			result = append(result, stored.Clone())
		}
	}

	return result, nil
}

// CreateEffect attaches a new effect to an entity
func (r *InMemoryRepository) CreateEffect(_ context.Context, entityID string, effect *entity.Effect) error {
	if effect == nil {
		return dnderr.InvalidArgument("effect cannot be nil")
	}
	if effect.ID == "" || entity.NormalizeName(effect.Name) == "" {
		return dnderr.InvalidArgument("effect ID and name are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.entities[entityID]
	if !exists {
		return dnderr.NotFoundf("entity with ID '%s' not found", entityID).
			WithMeta("entity_id", entityID)
	}

	if stored.FindEffect(effect.Name) != nil {
		return dnderr.AlreadyExistsf("entity '%s' already has effect '%s'", entityID, effect.Name).
			WithMeta("entity_id", entityID).
			WithMeta("effect_name", effect.Name)
	}

	stored.Effects = append(stored.Effects, effect.Clone())
	stored.UpdatedAt = r.clock.Now()

	return nil
}

// UpdateEffect merges a patch into an existing effect
func (r *InMemoryRepository) UpdateEffect(_ context.Context, entityID, effectID string, patch *entity.Patch) (*entity.Effect, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.entities[entityID]
	if !exists {
		return nil, dnderr.NotFoundf("entity with ID '%s' not found", entityID).
			WithMeta("entity_id", entityID)
	}

	effect := stored.EffectByID(effectID)
	if effect == nil {
		return nil, dnderr.EffectNotFound(entityID, effectID)
	}

	now := r.clock.Now()
	patch.ApplyTo(effect, now)
	stored.UpdatedAt = now

	return effect.Clone(), nil
}

// DeleteEffect removes an effect from an entity
func (r *InMemoryRepository) DeleteEffect(_ context.Context, entityID, effectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.entities[entityID]
	if !exists {
		return dnderr.NotFoundf("entity with ID '%s' not found", entityID).
			WithMeta("entity_id", entityID)
	}

	for i, effect := range stored.Effects {
		if effect.ID != effectID {
			continue
		}
		stored.Effects = append(stored.Effects[:i], stored.Effects[i+1:]...)
		stored.UpdatedAt = r.clock.Now()
		return nil
	}

	return dnderr.EffectNotFound(entityID, effectID)
}
