package effects

import (
	"context"
	"log"

	"github.com/KirkDiggler/macro-relay/internal/domain/entity"
	dnderr "github.com/KirkDiggler/macro-relay/internal/errors"
)

// Binding is an entity together with the mutator allowed to change it
type Binding struct {
	EntityID string
	Mutator  Mutator
}

// Paired keeps a caster-side aggregate counting the per-target instances
// the caster currently has active
type Paired struct {
	// Aggregate is the name of the effect on the caster
	Aggregate string
	// Instance is the name of the effect on each target
	Instance string

	counter *Counter
}

// PairedOutcome reports both halves of a paired mutation
type PairedOutcome struct {
	Instance  *Outcome
	Aggregate *Outcome
	// Warning is set when the instance changed but the aggregate could not
	// follow. The instance change is kept.
	Warning error
}

// Paired builds the paired rule for an aggregate/instance name pair
func (c *Counter) Paired(aggregate, instance string) *Paired {
	return &Paired{
		Aggregate: aggregate,
		Instance:  instance,
		counter:   c,
	}
}

// Attach applies the instance to the target. Only a newly created instance
// increments the caster aggregate.
func (p *Paired) Attach(ctx context.Context, caster, target Binding, payload *entity.Effect) (*PairedOutcome, error) {
	if err := p.validate(caster, target); err != nil {
		return nil, err
	}

	current, err := p.counter.find(ctx, target.EntityID, p.Instance)
	if err != nil {
		return nil, err
	}
	if current != nil {
		if err := p.checkHeldBy(current, caster.EntityID, target.EntityID); err != nil {
			return nil, err
		}
	}

	instance := &entity.Effect{}
	if payload != nil {
		instance = payload.Clone()
	}
	instance.Name = p.Instance
	instance.Tags = withTags(instance.Tags, map[string]string{
		entity.TagCaster: caster.EntityID,
		entity.TagTarget: target.EntityID,
		entity.TagPaired: p.Aggregate,
	})

	applied, err := target.Mutator.Apply(ctx, target.EntityID, instance)
	if err != nil {
		return nil, err
	}

	result := &PairedOutcome{Instance: applied}
	if applied.Action != ActionCreated {
		return result, nil
	}

	aggregate := &entity.Effect{
		Name: p.Aggregate,
		Tags: map[string]string{
			entity.TagCaster: caster.EntityID,
			entity.TagPaired: p.Instance,
		},
	}
	result.Aggregate, result.Warning = p.followAggregate(func() (*Outcome, error) {
		return p.counter.Increment(ctx, caster.Mutator, caster.EntityID, aggregate, 1)
	}, caster.EntityID, "increment")

	return result, nil
}

// Detach removes the instance from the target and decrements the caster
// aggregate, deleting it at zero. An absent instance leaves the aggregate alone.
func (p *Paired) Detach(ctx context.Context, caster, target Binding) (*PairedOutcome, error) {
	if err := p.validate(caster, target); err != nil {
		return nil, err
	}

	current, err := p.counter.find(ctx, target.EntityID, p.Instance)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return &PairedOutcome{Instance: None(target.EntityID)}, nil
	}
	if err := p.checkHeldBy(current, caster.EntityID, target.EntityID); err != nil {
		return nil, err
	}

	removed, err := p.counter.remove(ctx, target.Mutator, target.EntityID, current.ID)
	if err != nil {
		return nil, err
	}

	result := &PairedOutcome{Instance: removed}
	if removed.Action != ActionRemoved {
		return result, nil
	}

	result.Aggregate, result.Warning = p.followAggregate(func() (*Outcome, error) {
		return p.counter.Decrement(ctx, caster.Mutator, caster.EntityID, p.Aggregate, 1)
	}, caster.EntityID, "decrement")

	return result, nil
}

func (p *Paired) followAggregate(mutate func() (*Outcome, error), casterID, verb string) (*Outcome, error) {
	outcome, err := mutate()
	if err == nil {
		return outcome, nil
	}

	log.Printf("[EFFECTS] WARNING: %q changed but aggregate %q on %s failed to %s: %v",
		p.Instance, p.Aggregate, casterID, verb, err)
	return nil, dnderr.Wrapf(err, "aggregate %q on %s is out of sync", p.Aggregate, casterID).
		WithMeta("entity_id", casterID).
		WithMeta("aggregate", p.Aggregate)
}

// checkHeldBy refuses to touch an instance that another caster, or another
// aggregate, is counting. The aggregate only ever counts its own instances.
func (p *Paired) checkHeldBy(instance *entity.Effect, casterID, targetID string) error {
	if holder := instance.Tag(entity.TagCaster); holder != casterID {
		return dnderr.PermissionDeniedf("%q on %s is maintained by %q, not %s", p.Instance, targetID, holder, casterID).
			WithMeta("entity_id", targetID).
			WithMeta("caster_id", holder)
	}
	if aggregate := instance.Tag(entity.TagPaired); entity.NormalizeName(aggregate) != entity.NormalizeName(p.Aggregate) {
		return dnderr.InvalidArgumentf("%q on %s is counted by %q, not %q", p.Instance, targetID, aggregate, p.Aggregate).
			WithMeta("entity_id", targetID)
	}
	return nil
}

func (p *Paired) validate(caster, target Binding) error {
	if p.counter == nil {
		return dnderr.Internalf("paired rule %q/%q has no counter", p.Aggregate, p.Instance)
	}
	if entity.NormalizeName(p.Aggregate) == "" || entity.NormalizeName(p.Instance) == "" {
		return dnderr.InvalidArgument("aggregate and instance names are required")
	}
	if caster.EntityID == "" || target.EntityID == "" {
		return dnderr.InvalidArgument("caster and target are required")
	}
	if caster.Mutator == nil || target.Mutator == nil {
		return dnderr.InvalidArgument("caster and target mutators are required")
	}
	return nil
}

func withTags(base, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
