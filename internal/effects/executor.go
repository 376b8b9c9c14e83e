package effects

import (
	"context"
	"log"
	"time"

	"github.com/KirkDiggler/macro-relay/internal/domain/entity"
	dnderr "github.com/KirkDiggler/macro-relay/internal/errors"
	"github.com/KirkDiggler/macro-relay/internal/events"
	"github.com/KirkDiggler/macro-relay/internal/repositories/entities"
	"github.com/KirkDiggler/macro-relay/internal/uuid"
)

// ExecutorConfig holds dependencies for the executor
type ExecutorConfig struct {
	Repository    entities.Repository
	UUIDGenerator uuid.Generator
	EventBus      *events.Bus
	TimeProvider  entities.TimeProvider
	// EffectTTL sets ExpiresAt on created effects that carry none
	EffectTTL time.Duration
}

// Executor runs mutation operations directly against the repository. It
// enforces structure only; rule limits belong to the caller.
type Executor struct {
	repo      entities.Repository
	uuidGen   uuid.Generator
	bus       *events.Bus
	clock     entities.TimeProvider
	effectTTL time.Duration
}

// NewExecutor creates a new executor
func NewExecutor(cfg *ExecutorConfig) *Executor {
	if cfg == nil {
		panic("executor config cannot be nil")
	}
	if cfg.Repository == nil {
		panic("repository is required")
	}

	exec := &Executor{
		repo:      cfg.Repository,
		uuidGen:   cfg.UUIDGenerator,
		bus:       cfg.EventBus,
		clock:     cfg.TimeProvider,
		effectTTL: cfg.EffectTTL,
	}
	if exec.uuidGen == nil {
		exec.uuidGen = uuid.NewGoogleUUIDGenerator()
	}
	if exec.clock == nil {
		exec.clock = entities.SystemTime()
	}
	if exec.effectTTL <= 0 {
		exec.effectTTL = entity.DefaultEffectTTL
	}

	return exec
}

// Apply creates the effect or folds it into the existing one of the same name
func (x *Executor) Apply(ctx context.Context, entityID string, payload *entity.Effect) (*Outcome, error) {
	if entityID == "" {
		return nil, dnderr.InvalidArgument("entity ID is required")
	}
	if payload == nil || entity.NormalizeName(payload.Name) == "" {
		return nil, dnderr.InvalidArgument("effect name is required")
	}
	if payload.Counter < 0 {
		return nil, dnderr.InvalidArgumentf("effect counter cannot be negative: %d", payload.Counter)
	}

	target, err := x.repo.Get(ctx, entityID)
	if err != nil {
		return nil, err
	}

	if existing := target.FindEffect(payload.Name); existing != nil {
		return x.merge(ctx, entityID, existing, payload)
	}

	created := x.newEffect(payload)
	err = x.repo.CreateEffect(ctx, entityID, created)
	if dnderr.IsAlreadyExists(err) {
		// Someone else created it between our read and write
		log.Printf("[EFFECTS] Concurrent create of %q on %s, folding into existing effect", payload.Name, entityID)
		target, err = x.repo.Get(ctx, entityID)
		if err != nil {
			return nil, err
		}
		existing := target.FindEffect(payload.Name)
		if existing == nil {
			return nil, dnderr.Internalf("effect %q on %s vanished during create", payload.Name, entityID)
		}
		return x.merge(ctx, entityID, existing, payload)
	}
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to create effect %q on %s", payload.Name, entityID)
	}

	x.emit(events.EventTypeEffectCreated, entityID, created, 0)
	return &Outcome{Action: ActionCreated, EntityID: entityID, Effect: created}, nil
}

// Update merges a patch into an existing effect
func (x *Executor) Update(ctx context.Context, entityID, effectID string, patch *entity.Patch) (*Outcome, error) {
	if entityID == "" || effectID == "" {
		return nil, dnderr.InvalidArgument("entity ID and effect ID are required")
	}
	if patch.IsEmpty() {
		return nil, dnderr.InvalidArgument("patch cannot be empty")
	}
	if patch.Counter != nil && *patch.Counter < 0 {
		return nil, dnderr.InvalidArgumentf("effect counter cannot be negative: %d", *patch.Counter)
	}

	updated, err := x.repo.UpdateEffect(ctx, entityID, effectID, patch)
	if err != nil {
		return nil, err
	}

	x.emit(events.EventTypeEffectUpdated, entityID, updated, updated.Counter)
	return &Outcome{Action: ActionUpdated, EntityID: entityID, Effect: updated}, nil
}

// Remove deletes an effect
func (x *Executor) Remove(ctx context.Context, entityID, effectID string) (*Outcome, error) {
	if entityID == "" || effectID == "" {
		return nil, dnderr.InvalidArgument("entity ID and effect ID are required")
	}

	target, err := x.repo.Get(ctx, entityID)
	if err != nil {
		return nil, err
	}
	existing := target.EffectByID(effectID)
	if existing == nil {
		return nil, dnderr.EffectNotFound(entityID, effectID)
	}

	if err := x.repo.DeleteEffect(ctx, entityID, effectID); err != nil {
		return nil, err
	}

	x.emit(events.EventTypeEffectRemoved, entityID, existing, existing.Counter)
	return &Outcome{Action: ActionRemoved, EntityID: entityID, Effect: existing}, nil
}

// merge applies a same-name payload to the effect already on the entity
func (x *Executor) merge(ctx context.Context, entityID string, existing, payload *entity.Effect) (*Outcome, error) {
	patch := &entity.Patch{
		Tags:    payload.Tags,
		Bonuses: payload.Bonuses,
	}
	if payload.Description != "" {
		patch.Description = &payload.Description
	}
	if payload.Icon != "" {
		patch.Icon = &payload.Icon
	}

	action := ActionUpdated
	eventType := events.EventTypeEffectUpdated
	if payload.Counter > 0 {
		next := existing.Counter + payload.Counter
		patch.Counter = &next
		action = ActionIncremented
		eventType = events.EventTypeEffectIncremented
	}

	if patch.IsEmpty() {
		return &Outcome{Action: ActionNone, EntityID: entityID, Effect: existing}, nil
	}

	updated, err := x.repo.UpdateEffect(ctx, entityID, existing.ID, patch)
	if err != nil {
		return nil, err
	}

	x.emit(eventType, entityID, updated, existing.Counter)
	return &Outcome{Action: action, EntityID: entityID, Effect: updated}, nil
}

func (x *Executor) newEffect(payload *entity.Effect) *entity.Effect {
	created := payload.Clone()
	now := x.clock.Now()

	if created.ID == "" {
		created.ID = x.uuidGen.New()
	}
	if created.Bonuses != nil {
		bonuses := make(map[string]int, len(created.Bonuses))
		for k, v := range created.Bonuses {
			bonuses[entity.NormalizeName(k)] = v
		}
		created.Bonuses = bonuses
	}
	if created.ExpiresAt.IsZero() {
		created.ExpiresAt = now.Add(x.effectTTL)
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	return created
}

// emit publishes after the store accepted the change, so a failing
// listener is only logged
func (x *Executor) emit(eventType events.EventType, entityID string, effect *entity.Effect, previous int) {
	if err := x.bus.Emit(events.NewEffectEvent(eventType, entityID, effect.Clone(), previous)); err != nil {
		log.Printf("[EFFECTS] Event %s for %s failed: %v", eventType, entityID, err)
	}
}
