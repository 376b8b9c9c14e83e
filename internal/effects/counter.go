package effects

import (
	"context"
	"log"

	"github.com/KirkDiggler/macro-relay/internal/domain/entity"
	dnderr "github.com/KirkDiggler/macro-relay/internal/errors"
)

// Counter implements the counted-effect operations on top of any Mutator.
// Each call reads the entity fresh before deciding what to mutate; two
// concurrent callers can still lose an update.
type Counter struct {
	reader Reader
}

// NewCounter creates a counter reading entity state from reader
func NewCounter(reader Reader) *Counter {
	if reader == nil {
		panic("reader is required")
	}
	return &Counter{reader: reader}
}

// Increment creates the effect with counter = amount, or adds amount to the
// existing effect of the same name
func (c *Counter) Increment(ctx context.Context, m Mutator, entityID string, payload *entity.Effect, amount int) (*Outcome, error) {
	if amount < 1 {
		return nil, dnderr.InvalidArgumentf("increment amount must be positive: %d", amount)
	}
	if payload == nil {
		return nil, dnderr.InvalidArgument("effect payload is required")
	}

	next := payload.Clone()
	next.Counter = amount
	return m.Apply(ctx, entityID, next)
}

// Set makes the counter exactly value. A value of zero or less deletes the
// effect, which is a no-op when it is already absent.
func (c *Counter) Set(ctx context.Context, m Mutator, entityID string, payload *entity.Effect, value int) (*Outcome, error) {
	if payload == nil {
		return nil, dnderr.InvalidArgument("effect payload is required")
	}

	existing, err := c.find(ctx, entityID, payload.Name)
	if err != nil {
		return nil, err
	}

	if value <= 0 {
		if existing == nil {
			return None(entityID), nil
		}
		return c.remove(ctx, m, entityID, existing.ID)
	}

	if existing == nil {
		next := payload.Clone()
		next.Counter = value
		return m.Apply(ctx, entityID, next)
	}

	patch := &entity.Patch{
		Counter: &value,
		Tags:    payload.Tags,
		Bonuses: payload.Bonuses,
	}
	return m.Update(ctx, entityID, existing.ID, patch)
}

// Decrement subtracts amount, floored at zero. Reaching zero deletes the
// effect. Decrementing an absent effect succeeds with ActionNone.
func (c *Counter) Decrement(ctx context.Context, m Mutator, entityID, name string, amount int) (*Outcome, error) {
	if amount < 1 {
		return nil, dnderr.InvalidArgumentf("decrement amount must be positive: %d", amount)
	}

	existing, err := c.find(ctx, entityID, name)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return None(entityID), nil
	}

	next := max(0, existing.Counter-amount)
	if next == 0 {
		return c.remove(ctx, m, entityID, existing.ID)
	}

	outcome, err := m.Update(ctx, entityID, existing.ID, entity.CounterPatch(next))
	if dnderr.IsEffectNotFound(err) {
		log.Printf("[EFFECTS] %q on %s disappeared before decrement", name, entityID)
		return None(entityID), nil
	}
	return outcome, err
}

func (c *Counter) find(ctx context.Context, entityID, name string) (*entity.Effect, error) {
	if entityID == "" {
		return nil, dnderr.InvalidArgument("entity ID is required")
	}
	if entity.NormalizeName(name) == "" {
		return nil, dnderr.InvalidArgument("effect name is required")
	}

	target, err := c.reader.Get(ctx, entityID)
	if err != nil {
		return nil, err
	}
	return target.FindEffect(name), nil
}

// remove treats an effect that is already gone as the desired end state
func (c *Counter) remove(ctx context.Context, m Mutator, entityID, effectID string) (*Outcome, error) {
	outcome, err := m.Remove(ctx, entityID, effectID)
	if dnderr.IsEffectNotFound(err) {
		return None(entityID), nil
	}
	return outcome, err
}
