package macro

import (
	"context"
	"log"

	"github.com/KirkDiggler/macro-relay/internal/dice"
	"github.com/KirkDiggler/macro-relay/internal/domain/characteristic"
	"github.com/KirkDiggler/macro-relay/internal/domain/entity"
	"github.com/KirkDiggler/macro-relay/internal/effects"
	dnderr "github.com/KirkDiggler/macro-relay/internal/errors"
	"github.com/KirkDiggler/macro-relay/internal/notify"
	"github.com/KirkDiggler/macro-relay/internal/services/effect"
)

// Service runs the apply-intent and report phases of the table macros.
// Every input is fully gathered before the first mutation.
type Service interface {
	// Check resolves a characteristic and rolls the resulting dice pool
	Check(ctx context.Context, input *CheckInput) (*CheckResult, error)

	// Injure adds injury stacks to a target
	Injure(ctx context.Context, input *InjuryInput) (*effects.Outcome, error)

	// Heal removes injury stacks from a target
	Heal(ctx context.Context, input *InjuryInput) (*effects.Outcome, error)

	// Maintain starts a caster-maintained effect on a target
	Maintain(ctx context.Context, input *MaintainInput) (*effects.PairedOutcome, error)

	// Release ends a caster-maintained effect on a target
	Release(ctx context.Context, input *ReleaseInput) (*effects.PairedOutcome, error)

	// Dispel removes a named effect from an entity
	Dispel(ctx context.Context, input *DispelInput) (*effects.Outcome, error)
}

// CheckInput contains the data for a characteristic check
type CheckInput struct {
	CallerID       string
	EntityID       string
	Characteristic string
	// Sides of each die, dice.DefaultSides when zero
	Sides    int
	Modifier int
	// UseDefault resolves absent characteristics as 3 instead of failing
	UseDefault bool
}

// CheckResult is the plain data a check reports
type CheckResult struct {
	Resolution *characteristic.Resolution
	Formula    string
	Roll       *dice.RollResult
}

// InjuryInput contains the data for Injure and Heal
type InjuryInput struct {
	CallerID string
	TargetID string
	Amount   int
}

// MaintainInput contains the data for Maintain
type MaintainInput struct {
	CallerID  string
	CasterID  string
	TargetID  string
	Aggregate string
	Instance  string
	// MaxActive caps how many targets the caster may maintain at once; 0 is unlimited
	MaxActive int
	Effect    *entity.Effect
}

// ReleaseInput contains the data for Release
type ReleaseInput struct {
	CallerID  string
	CasterID  string
	TargetID  string
	Aggregate string
	Instance  string
}

// DispelInput contains the data for Dispel
type DispelInput struct {
	CallerID string
	EntityID string
	Name     string
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	EffectService effect.Service  // Required
	Roller        dice.Roller     // Optional, will use random roller if nil
	Notifier      notify.Notifier // Optional, will log if nil
}

type service struct {
	effectService effect.Service
	roller        dice.Roller
	notifier      notify.Notifier
}

// NewService creates a new macro service
func NewService(cfg *ServiceConfig) Service {
	if cfg.EffectService == nil {
		panic("effect service is required")
	}

	svc := &service{
		effectService: cfg.EffectService,
		roller:        cfg.Roller,
		notifier:      cfg.Notifier,
	}
	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}
	if svc.notifier == nil {
		svc.notifier = notify.NewLogNotifier()
	}

	return svc
}

func (s *service) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	resolve := s.effectService.Resolve
	if input.UseDefault {
		resolve = s.effectService.ResolveWithDefault
	}

	res, err := resolve(ctx, input.EntityID, input.Characteristic)
	if err != nil {
		return nil, s.fail(ctx, input.CallerID, err)
	}

	formula := characteristic.Formula(res, input.Sides, input.Modifier)
	roll, err := dice.Evaluate(s.roller, formula)
	if err != nil {
		return nil, s.fail(ctx, input.CallerID, dnderr.Wrapf(err, "failed to roll %s", formula))
	}

	s.report(ctx, notify.Infof(input.CallerID, "%s: %s", res, roll))
	return &CheckResult{Resolution: res, Formula: formula, Roll: roll}, nil
}

func (s *service) Injure(ctx context.Context, input *InjuryInput) (*effects.Outcome, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	outcome, err := s.effectService.Increment(ctx, &effect.CounterInput{
		CallerID: input.CallerID,
		EntityID: input.TargetID,
		Effect: &entity.Effect{
			Name: characteristic.InjuryEffectName,
			Icon: "icons/svg/blood.svg",
		},
		Amount: input.Amount,
	})
	if err != nil {
		return nil, s.fail(ctx, input.CallerID, err)
	}

	if outcome.Effect != nil {
		s.report(ctx, notify.Infof(input.CallerID, "%s now has %d injuries", input.TargetID, outcome.Effect.Counter))
	}
	return outcome, nil
}

func (s *service) Heal(ctx context.Context, input *InjuryInput) (*effects.Outcome, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	outcome, err := s.effectService.Decrement(ctx, &effect.DecrementInput{
		CallerID: input.CallerID,
		EntityID: input.TargetID,
		Name:     characteristic.InjuryEffectName,
		Amount:   input.Amount,
	})
	if err != nil {
		return nil, s.fail(ctx, input.CallerID, err)
	}

	switch outcome.Action {
	case effects.ActionRemoved:
		s.report(ctx, notify.Infof(input.CallerID, "%s is no longer injured", input.TargetID))
	case effects.ActionUpdated:
		if outcome.Effect == nil {
			break
		}
		s.report(ctx, notify.Infof(input.CallerID, "%s now has %d injuries", input.TargetID, outcome.Effect.Counter))
	}
	return outcome, nil
}

func (s *service) Maintain(ctx context.Context, input *MaintainInput) (*effects.PairedOutcome, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	if input.MaxActive > 0 {
		if err := s.checkLimit(ctx, input); err != nil {
			return nil, s.fail(ctx, input.CallerID, err)
		}
	}

	result, err := s.effectService.AttachPaired(ctx, &effect.PairedInput{
		CallerID:  input.CallerID,
		CasterID:  input.CasterID,
		TargetID:  input.TargetID,
		Aggregate: input.Aggregate,
		Instance:  input.Instance,
		Effect:    input.Effect,
	})
	if err != nil {
		return nil, s.fail(ctx, input.CallerID, err)
	}

	if result.Warning != nil {
		s.report(ctx, notify.Warningf(input.CallerID, "%s applied, but %s", input.Instance, result.Warning))
	} else if result.Aggregate != nil && result.Aggregate.Effect != nil {
		s.report(ctx, notify.Infof(input.CallerID, "%s on %s (%d active)",
			input.Instance, input.TargetID, result.Aggregate.Effect.Counter))
	}
	return result, nil
}

func (s *service) Release(ctx context.Context, input *ReleaseInput) (*effects.PairedOutcome, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	result, err := s.effectService.DetachPaired(ctx, &effect.PairedInput{
		CallerID:  input.CallerID,
		CasterID:  input.CasterID,
		TargetID:  input.TargetID,
		Aggregate: input.Aggregate,
		Instance:  input.Instance,
	})
	if err != nil {
		return nil, s.fail(ctx, input.CallerID, err)
	}

	if result.Warning != nil {
		s.report(ctx, notify.Warningf(input.CallerID, "%s released, but %s", input.Instance, result.Warning))
	}
	return result, nil
}

func (s *service) Dispel(ctx context.Context, input *DispelInput) (*effects.Outcome, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	target, err := s.effectService.GetEntity(ctx, input.EntityID)
	if err != nil {
		return nil, s.fail(ctx, input.CallerID, err)
	}

	existing := target.FindEffect(input.Name)
	if existing == nil {
		return effects.None(input.EntityID), nil
	}

	if existing.Tag(entity.TagPaired) != "" {
		return s.dispelMaintained(ctx, input, existing)
	}

	outcome, err := s.effectService.Remove(ctx, &effect.RemoveInput{
		CallerID: input.CallerID,
		EntityID: input.EntityID,
		EffectID: existing.ID,
	})
	if err != nil {
		return nil, s.fail(ctx, input.CallerID, err)
	}

	if outcome.Action == effects.ActionRemoved {
		s.report(ctx, notify.Infof(input.CallerID, "%s removed from %s", existing.Name, target.Name))
	}
	return outcome, nil
}

// dispelMaintained releases a paired instance so its caster stops counting it
func (s *service) dispelMaintained(ctx context.Context, input *DispelInput, instance *entity.Effect) (*effects.Outcome, error) {
	result, err := s.effectService.DetachPaired(ctx, &effect.PairedInput{
		CallerID: input.CallerID,
		TargetID: input.EntityID,
		Instance: instance.Name,
	})
	if err != nil {
		return nil, s.fail(ctx, input.CallerID, err)
	}

	if result.Warning != nil {
		s.report(ctx, notify.Warningf(input.CallerID, "%s dispelled, but %s", instance.Name, result.Warning))
	} else if result.Instance.Action == effects.ActionRemoved {
		s.report(ctx, notify.Infof(input.CallerID, "%s dispelled from %s", instance.Name, input.EntityID))
	}
	return result.Instance, nil
}

// checkLimit refuses a new maintained target once the caster is at MaxActive.
// Re-maintaining a target already held does not count against the limit.
func (s *service) checkLimit(ctx context.Context, input *MaintainInput) error {
	caster, err := s.effectService.GetEntity(ctx, input.CasterID)
	if err != nil {
		return err
	}

	aggregate := caster.FindEffect(input.Aggregate)
	if aggregate == nil || aggregate.Counter < input.MaxActive {
		return nil
	}

	target, err := s.effectService.GetEntity(ctx, input.TargetID)
	if err != nil {
		return err
	}
	if target.FindEffect(input.Instance) != nil {
		return nil
	}

	return dnderr.LimitExceededf("%s already maintains %d of %d %s", caster.Name, aggregate.Counter, input.MaxActive, input.Instance).
		WithMeta("entity_id", input.CasterID)
}

// fail reports an error to the caller and hands it back. Refusals that
// changed nothing are warnings; everything else is an error.
func (s *service) fail(ctx context.Context, callerID string, err error) error {
	entityID, _ := dnderr.GetMeta(err)["entity_id"].(string)

	switch {
	case dnderr.IsDelegationUnavailable(err):
		s.report(ctx, notify.Errorf(callerID, "The game master must be online to change %s", entityID))
	case dnderr.IsAttributeNotFound(err):
		attribute, _ := dnderr.GetMeta(err)["attribute"].(string)
		s.report(ctx, notify.Errorf(callerID, "%s has no %s", entityID, attribute))
	case dnderr.IsNotFound(err):
		s.report(ctx, notify.Errorf(callerID, "There is no %s at this table", entityID))
	case dnderr.IsLimitExceeded(err), dnderr.IsPermissionDenied(err), dnderr.IsInvalidArgument(err):
		s.report(ctx, notify.Warningf(callerID, "%s", err.Error()))
	default:
		s.report(ctx, notify.Errorf(callerID, "%s", err.Error()))
	}
	return err
}

func (s *service) report(ctx context.Context, msg *notify.Message) {
	if err := s.notifier.Notify(ctx, msg); err != nil {
		log.Printf("[MACRO] Failed to notify %s: %v", msg.ParticipantID, err)
	}
}
