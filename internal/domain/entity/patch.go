package entity

import "time"

// Patch is a shallow merge over an effect's counter, tags and bonuses.
// Name and ID are identity and never patched.
type Patch struct {
	Counter     *int              `json:"counter,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
	Bonuses     map[string]int    `json:"bonuses,omitempty"`
	Description *string           `json:"description,omitempty"`
	Icon        *string           `json:"icon,omitempty"`
}

// CounterPatch builds a patch that only sets the counter
func CounterPatch(value int) *Patch {
	return &Patch{Counter: &value}
}

// IsEmpty reports whether applying the patch would change nothing
func (p *Patch) IsEmpty() bool {
	return p == nil ||
		(p.Counter == nil && len(p.Tags) == 0 && len(p.Bonuses) == 0 &&
			p.Description == nil && p.Icon == nil)
}

// ApplyTo merges the patch into the effect. An empty tag value deletes the tag.
func (p *Patch) ApplyTo(effect *Effect, now time.Time) {
	if p == nil || effect == nil {
		return
	}

	if p.Counter != nil {
		effect.Counter = *p.Counter
	}
	if p.Description != nil {
		effect.Description = *p.Description
	}
	if p.Icon != nil {
		effect.Icon = *p.Icon
	}

	for k, v := range p.Tags {
		if v == "" {
			delete(effect.Tags, k)
			continue
		}
		if effect.Tags == nil {
			effect.Tags = make(map[string]string)
		}
		effect.Tags[k] = v
	}

	for k, v := range p.Bonuses {
		if effect.Bonuses == nil {
			effect.Bonuses = make(map[string]int)
		}
		effect.Bonuses[NormalizeName(k)] = v
	}

	effect.UpdatedAt = now
}
