package entity

import "time"

// Conventional owner tag keys relating effects across entities
const (
	TagCaster = "caster"
	TagTarget = "target"
	TagPaired = "paired"
)

// DefaultEffectTTL is the coarse expiry given to every effect. Effects are
// removed explicitly long before it matters.
const DefaultEffectTTL = 24 * time.Hour

// Effect is a named, persistent, optionally counted annotation on an entity
type Effect struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Icon        string            `json:"icon,omitempty"`
	Description string            `json:"description,omitempty"`
	Counter     int               `json:"counter,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
	Bonuses     map[string]int    `json:"bonuses,omitempty"`
	ExpiresAt   time.Time         `json:"expires_at"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Bonus returns the additive bonus this effect declares for a characteristic
func (e *Effect) Bonus(characteristic string) int {
	if e == nil || e.Bonuses == nil {
		return 0
	}
	return e.Bonuses[NormalizeName(characteristic)]
}

// Tag returns an owner tag value
func (e *Effect) Tag(key string) string {
	if e == nil || e.Tags == nil {
		return ""
	}
	return e.Tags[key]
}

// Clone returns a deep copy of the effect
func (e *Effect) Clone() *Effect {
	if e == nil {
		return nil
	}

	out := *e
	if e.Tags != nil {
		out.Tags = make(map[string]string, len(e.Tags))
		for k, v := range e.Tags {
			out.Tags[k] = v
		}
	}
	if e.Bonuses != nil {
		out.Bonuses = make(map[string]int, len(e.Bonuses))
		for k, v := range e.Bonuses {
			out.Bonuses[k] = v
		}
	}
	return &out
}
