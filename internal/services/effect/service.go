package effect

//go:generate mockgen -destination=mock/mock_service.go -package=mockeffect -source=service.go

import (
	"context"
	"log"
	"sync"

	"github.com/KirkDiggler/macro-relay/internal/domain/characteristic"
	"github.com/KirkDiggler/macro-relay/internal/domain/entity"
	"github.com/KirkDiggler/macro-relay/internal/effects"
	dnderr "github.com/KirkDiggler/macro-relay/internal/errors"
	"github.com/KirkDiggler/macro-relay/internal/relay"
	"github.com/KirkDiggler/macro-relay/internal/repositories/entities"
	"github.com/KirkDiggler/macro-relay/internal/uuid"
)

// Repository is an alias for the entity repository interface
type Repository = entities.Repository

// Service resolves characteristics and routes effect mutations to the
// owner's executor or through the relay
type Service interface {
	// CreateEntity stores a new entity
	CreateEntity(ctx context.Context, e *entity.Entity) error

	// GetEntity reads the latest state of an entity
	GetEntity(ctx context.Context, entityID string) (*entity.Entity, error)

	// ListEntities lists the entities a participant owns
	ListEntities(ctx context.Context, ownerID string) ([]*entity.Entity, error)

	// Resolve computes a characteristic from fresh entity state
	Resolve(ctx context.Context, entityID, name string) (*characteristic.Resolution, error)

	// ResolveWithDefault is Resolve with a base of 3 for absent characteristics
	ResolveWithDefault(ctx context.Context, entityID, name string) (*characteristic.Resolution, error)

	// Apply creates or increments an effect
	Apply(ctx context.Context, input *ApplyInput) (*effects.Outcome, error)

	// Update patches an existing effect
	Update(ctx context.Context, input *UpdateInput) (*effects.Outcome, error)

	// Remove deletes an effect. An effect that is already gone is ActionNone.
	Remove(ctx context.Context, input *RemoveInput) (*effects.Outcome, error)

	// Increment adds Amount to the named effect's counter, creating it if needed
	Increment(ctx context.Context, input *CounterInput) (*effects.Outcome, error)

	// SetCounter sets the named effect's counter to Amount; zero or less deletes it
	SetCounter(ctx context.Context, input *CounterInput) (*effects.Outcome, error)

	// Decrement subtracts Amount, deleting the effect when it reaches zero
	Decrement(ctx context.Context, input *DecrementInput) (*effects.Outcome, error)

	// AttachPaired applies a per-target instance and counts it on the caster
	AttachPaired(ctx context.Context, input *PairedInput) (*effects.PairedOutcome, error)

	// DetachPaired removes a per-target instance and uncounts it on its caster
	DetachPaired(ctx context.Context, input *PairedInput) (*effects.PairedOutcome, error)
}

// ApplyInput contains the data for Apply
type ApplyInput struct {
	CallerID string
	EntityID string
	Effect   *entity.Effect
}

// UpdateInput contains the data for Update
type UpdateInput struct {
	CallerID string
	EntityID string
	EffectID string
	Patch    *entity.Patch
}

// RemoveInput contains the data for Remove
type RemoveInput struct {
	CallerID string
	EntityID string
	EffectID string
}

// CounterInput contains the data for Increment and SetCounter
type CounterInput struct {
	CallerID string
	EntityID string
	Effect   *entity.Effect
	Amount   int
}

// DecrementInput contains the data for Decrement
type DecrementInput struct {
	CallerID string
	EntityID string
	Name     string
	Amount   int
}

// PairedInput contains the data for paired attach and detach. DetachPaired
// reads an empty CasterID or Aggregate from the instance's own tags.
type PairedInput struct {
	CallerID  string
	CasterID  string
	TargetID  string
	Aggregate string
	Instance  string
	// Effect is the instance template for AttachPaired
	Effect *entity.Effect
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    Repository        // Required
	Executor      *effects.Executor // Required
	Relay         relay.Relay       // Optional, non-owned entities fail without it
	UUIDGenerator uuid.Generator    // Optional, will use default if nil
}

type service struct {
	repository Repository
	executor   *effects.Executor
	relay      relay.Relay
	uuidGen    uuid.Generator
	counter    *effects.Counter

	pairedMu sync.Mutex
	paired   map[string]*effects.Paired
}

// NewService creates a new effect service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.Executor == nil {
		panic("executor is required")
	}

	svc := &service{
		repository: cfg.Repository,
		executor:   cfg.Executor,
		relay:      cfg.Relay,
		uuidGen:    cfg.UUIDGenerator,
		counter:    effects.NewCounter(cfg.Repository),
		paired:     make(map[string]*effects.Paired),
	}
	if svc.uuidGen == nil {
		svc.uuidGen = uuid.NewGoogleUUIDGenerator()
	}

	return svc
}

func (s *service) CreateEntity(ctx context.Context, e *entity.Entity) error {
	return s.repository.Create(ctx, e)
}

func (s *service) GetEntity(ctx context.Context, entityID string) (*entity.Entity, error) {
	return s.repository.Get(ctx, entityID)
}

func (s *service) ListEntities(ctx context.Context, ownerID string) ([]*entity.Entity, error) {
	return s.repository.ListByOwner(ctx, ownerID)
}

func (s *service) Resolve(ctx context.Context, entityID, name string) (*characteristic.Resolution, error) {
	e, err := s.repository.Get(ctx, entityID)
	if err != nil {
		return nil, err
	}
	return characteristic.Resolve(e, name)
}

func (s *service) ResolveWithDefault(ctx context.Context, entityID, name string) (*characteristic.Resolution, error) {
	e, err := s.repository.Get(ctx, entityID)
	if err != nil {
		return nil, err
	}
	return characteristic.ResolveWithDefault(e, name)
}

func (s *service) Apply(ctx context.Context, input *ApplyInput) (*effects.Outcome, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	m, err := s.mutatorFor(ctx, input.CallerID, input.EntityID)
	if err != nil {
		return nil, err
	}
	return m.Apply(ctx, input.EntityID, input.Effect)
}

func (s *service) Update(ctx context.Context, input *UpdateInput) (*effects.Outcome, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	m, err := s.mutatorFor(ctx, input.CallerID, input.EntityID)
	if err != nil {
		return nil, err
	}
	return m.Update(ctx, input.EntityID, input.EffectID, input.Patch)
}

func (s *service) Remove(ctx context.Context, input *RemoveInput) (*effects.Outcome, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	m, err := s.mutatorFor(ctx, input.CallerID, input.EntityID)
	if err != nil {
		return nil, err
	}

	outcome, err := m.Remove(ctx, input.EntityID, input.EffectID)
	if dnderr.IsEffectNotFound(err) {
		log.Printf("[ROUTING] WARNING: effect %s already gone from %s", input.EffectID, input.EntityID)
		return effects.None(input.EntityID), nil
	}
	return outcome, err
}

func (s *service) Increment(ctx context.Context, input *CounterInput) (*effects.Outcome, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	m, err := s.mutatorFor(ctx, input.CallerID, input.EntityID)
	if err != nil {
		return nil, err
	}
	return s.counter.Increment(ctx, m, input.EntityID, input.Effect, input.Amount)
}

func (s *service) SetCounter(ctx context.Context, input *CounterInput) (*effects.Outcome, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	m, err := s.mutatorFor(ctx, input.CallerID, input.EntityID)
	if err != nil {
		return nil, err
	}
	return s.counter.Set(ctx, m, input.EntityID, input.Effect, input.Amount)
}

func (s *service) Decrement(ctx context.Context, input *DecrementInput) (*effects.Outcome, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	m, err := s.mutatorFor(ctx, input.CallerID, input.EntityID)
	if err != nil {
		return nil, err
	}
	return s.counter.Decrement(ctx, m, input.EntityID, input.Name, input.Amount)
}

func (s *service) AttachPaired(ctx context.Context, input *PairedInput) (*effects.PairedOutcome, error) {
	paired, caster, target, err := s.pairedBindings(ctx, input)
	if err != nil {
		return nil, err
	}
	return paired.Attach(ctx, caster, target, input.Effect)
}

func (s *service) DetachPaired(ctx context.Context, input *PairedInput) (*effects.PairedOutcome, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	if input.CasterID == "" || input.Aggregate == "" {
		resolved, err := s.fromInstance(ctx, input)
		if err != nil {
			return nil, err
		}
		if resolved == nil {
			return &effects.PairedOutcome{Instance: effects.None(input.TargetID)}, nil
		}
		input = resolved
	}

	paired, caster, target, err := s.pairedBindings(ctx, input)
	if err != nil {
		return nil, err
	}
	return paired.Detach(ctx, caster, target)
}

// fromInstance completes a release from the tags the instance was created
// with. A nil input means the instance is already gone.
func (s *service) fromInstance(ctx context.Context, input *PairedInput) (*PairedInput, error) {
	if input.CallerID == "" {
		return nil, dnderr.InvalidArgument("caller ID is required")
	}
	if input.TargetID == "" || entity.NormalizeName(input.Instance) == "" {
		return nil, dnderr.InvalidArgument("target and instance name are required")
	}

	target, err := s.repository.Get(ctx, input.TargetID)
	if err != nil {
		return nil, err
	}
	current := target.FindEffect(input.Instance)
	if current == nil {
		return nil, nil
	}

	resolved := *input
	if resolved.CasterID == "" {
		resolved.CasterID = current.Tag(entity.TagCaster)
	}
	if resolved.Aggregate == "" {
		resolved.Aggregate = current.Tag(entity.TagPaired)
	}
	if resolved.CasterID == "" || resolved.Aggregate == "" {
		return nil, dnderr.InvalidArgumentf("%q on %s is not maintained by a caster", current.Name, input.TargetID).
			WithMeta("entity_id", input.TargetID)
	}
	return &resolved, nil
}

// pairedRule returns the rule for an aggregate/instance pair, built once
func (s *service) pairedRule(aggregate, instance string) *effects.Paired {
	key := entity.NormalizeName(aggregate) + "/" + entity.NormalizeName(instance)

	s.pairedMu.Lock()
	defer s.pairedMu.Unlock()

	if rule, ok := s.paired[key]; ok {
		return rule
	}
	rule := s.counter.Paired(aggregate, instance)
	s.paired[key] = rule
	return rule
}

// pairedBindings resolves the caster and target mutators independently,
// before either side is touched
func (s *service) pairedBindings(ctx context.Context, input *PairedInput) (*effects.Paired, effects.Binding, effects.Binding, error) {
	if input == nil {
		return nil, effects.Binding{}, effects.Binding{}, dnderr.InvalidArgument("input cannot be nil")
	}

	casterMutator, err := s.mutatorFor(ctx, input.CallerID, input.CasterID)
	if err != nil {
		return nil, effects.Binding{}, effects.Binding{}, err
	}
	targetMutator, err := s.mutatorFor(ctx, input.CallerID, input.TargetID)
	if err != nil {
		return nil, effects.Binding{}, effects.Binding{}, err
	}

	return s.pairedRule(input.Aggregate, input.Instance),
		effects.Binding{EntityID: input.CasterID, Mutator: casterMutator},
		effects.Binding{EntityID: input.TargetID, Mutator: targetMutator},
		nil
}

// mutatorFor picks the direct executor for owners and the relay for
// everyone else. The relay is never consulted for owned entities.
func (s *service) mutatorFor(ctx context.Context, callerID, entityID string) (effects.Mutator, error) {
	if callerID == "" {
		return nil, dnderr.InvalidArgument("caller ID is required")
	}
	if entityID == "" {
		return nil, dnderr.InvalidArgument("entity ID is required")
	}

	target, err := s.repository.Get(ctx, entityID)
	if err != nil {
		return nil, err
	}

	if target.IsOwnedBy(callerID) {
		return s.executor, nil
	}

	if s.relay == nil || !s.relay.Available(ctx) {
		log.Printf("[ROUTING] %s does not own %s and no relay is available", callerID, entityID)
		return nil, dnderr.DelegationUnavailable(entityID).WithMeta("caller_id", callerID)
	}

	log.Printf("[ROUTING] Delegating mutation of %s for %s", entityID, callerID)
	return relay.NewClient(&relay.ClientConfig{
		Relay:         s.relay,
		CallerID:      callerID,
		UUIDGenerator: s.uuidGen,
	}), nil
}
