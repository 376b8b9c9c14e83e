package entity

import (
	"sort"
	"strings"
	"time"
)

// Entity is a game participant (player character or NPC) that effects attach to
type Entity struct {
	ID         string         `json:"id"`
	OwnerID    string         `json:"owner_id"`
	Name       string         `json:"name"`
	Attributes map[string]int `json:"attributes"`
	Effects    []*Effect      `json:"effects,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// IsOwnedBy reports whether the participant may mutate this entity directly
func (e *Entity) IsOwnedBy(participantID string) bool {
	if e == nil || participantID == "" {
		return false
	}
	return e.OwnerID == participantID
}

// Attribute returns the base value for a characteristic. Lookup is case-insensitive.
func (e *Entity) Attribute(name string) (int, bool) {
	if e == nil || e.Attributes == nil {
		return 0, false
	}
	value, ok := e.Attributes[NormalizeName(name)]
	return value, ok
}

// FindEffect returns the effect carrying the given semantic name, or nil
func (e *Entity) FindEffect(name string) *Effect {
	if e == nil {
		return nil
	}
	key := NormalizeName(name)
	for _, effect := range e.Effects {
		if effect != nil && NormalizeName(effect.Name) == key {
			return effect
		}
	}
	return nil
}

// EffectByID returns the effect with the given id, or nil
func (e *Entity) EffectByID(id string) *Effect {
	if e == nil {
		return nil
	}
	for _, effect := range e.Effects {
		if effect != nil && effect.ID == id {
			return effect
		}
	}
	return nil
}

// SortEffects orders effects by creation time, then id
func (e *Entity) SortEffects() {
	sort.SliceStable(e.Effects, func(i, j int) bool {
		a, b := e.Effects[i], e.Effects[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// Clone returns a deep copy so callers can't alias repository state
func (e *Entity) Clone() *Entity {
	if e == nil {
		return nil
	}

	out := *e
	if e.Attributes != nil {
		out.Attributes = make(map[string]int, len(e.Attributes))
		for k, v := range e.Attributes {
			out.Attributes[k] = v
		}
	}
	if e.Effects != nil {
		out.Effects = make([]*Effect, 0, len(e.Effects))
		for _, effect := range e.Effects {
			out.Effects = append(out.Effects, effect.Clone())
		}
	}
	return &out
}

// NormalizeAttributes lower-cases attribute keys in place
func (e *Entity) NormalizeAttributes() {
	if len(e.Attributes) == 0 {
		return
	}
	normalized := make(map[string]int, len(e.Attributes))
	for k, v := range e.Attributes {
		normalized[NormalizeName(k)] = v
	}
	e.Attributes = normalized
}

// NormalizeName is the identity key for effect names and characteristic names
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
