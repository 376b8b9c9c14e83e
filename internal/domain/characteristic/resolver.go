package characteristic

import (
	"fmt"

	"github.com/KirkDiggler/macro-relay/internal/domain/entity"
	dnderr "github.com/KirkDiggler/macro-relay/internal/errors"
)

// InjuryEffectName names the counted effect that lowers every characteristic
const InjuryEffectName = "injury"

// DefaultBase is used by ResolveWithDefault when the entity declares no value
const DefaultBase = 3

// Resolution is the effective value of a characteristic at the time of the call.
// It is never cached; effects can change between two calls in the same macro.
type Resolution struct {
	Name           string `json:"name"`
	Base           int    `json:"base"`
	Injuries       int    `json:"injuries"`
	EffectBonus    int    `json:"effect_bonus"`
	InjuryAdjusted int    `json:"injury_adjusted"`
	Final          int    `json:"final"`
}

func (r *Resolution) String() string {
	return fmt.Sprintf("%s %d (base %d, injuries %d, bonus %+d)",
		r.Name, r.Final, r.Base, r.Injuries, r.EffectBonus)
}

// Resolve computes the effective value of a characteristic. The entity must
// declare a base value for it.
func Resolve(e *entity.Entity, name string) (*Resolution, error) {
	if e == nil {
		return nil, dnderr.InvalidArgument("entity is required")
	}
	if entity.NormalizeName(name) == "" {
		return nil, dnderr.InvalidArgument("characteristic name is required")
	}

	base, ok := e.Attribute(name)
	if !ok {
		return nil, dnderr.AttributeNotFound(e.ID, entity.NormalizeName(name))
	}

	return compute(e, name, base), nil
}

// ResolveWithDefault is Resolve for the call sites where a missing base
// value means DefaultBase instead of an error.
func ResolveWithDefault(e *entity.Entity, name string) (*Resolution, error) {
	if e == nil {
		return nil, dnderr.InvalidArgument("entity is required")
	}
	if entity.NormalizeName(name) == "" {
		return nil, dnderr.InvalidArgument("characteristic name is required")
	}

	base, ok := e.Attribute(name)
	if !ok {
		base = DefaultBase
	}

	return compute(e, name, base), nil
}

func compute(e *entity.Entity, name string, base int) *Resolution {
	injuries := 0
	if injury := e.FindEffect(InjuryEffectName); injury != nil {
		injuries = injury.Counter
	}

	bonus := 0
	for _, effect := range e.Effects {
		bonus += effect.Bonus(name)
	}

	adjusted := max(1, base-injuries)

	return &Resolution{
		Name:           entity.NormalizeName(name),
		Base:           base,
		Injuries:       injuries,
		EffectBonus:    bonus,
		InjuryAdjusted: adjusted,
		Final:          max(1, adjusted+bonus),
	}
}
