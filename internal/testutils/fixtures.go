package testutils

import (
	"time"

	"github.com/KirkDiggler/macro-relay/internal/domain/entity"
)

// FixedTime is the clock used by fixtures
var FixedTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

// CreateTestEntity creates an entity with the common characteristics set
func CreateTestEntity(id, ownerID, name string) *entity.Entity {
	return &entity.Entity{
		ID:      id,
		OwnerID: ownerID,
		Name:    name,
		Attributes: map[string]int{
			"strength":  4,
			"agility":   3,
			"will":      2,
			"knowledge": 3,
		},
		CreatedAt: FixedTime,
		UpdatedAt: FixedTime,
	}
}

// CreateTestInjury creates an injury effect with the given counter
func CreateTestInjury(id string, counter int) *entity.Effect {
	return &entity.Effect{
		ID:        id,
		Name:      "injury",
		Counter:   counter,
		ExpiresAt: FixedTime.Add(entity.DefaultEffectTTL),
		CreatedAt: FixedTime,
		UpdatedAt: FixedTime,
	}
}

// CreateTestBonus creates an effect granting a bonus to one characteristic
func CreateTestBonus(id, name, characteristic string, bonus int) *entity.Effect {
	return &entity.Effect{
		ID:        id,
		Name:      name,
		Bonuses:   map[string]int{characteristic: bonus},
		ExpiresAt: FixedTime.Add(entity.DefaultEffectTTL),
		CreatedAt: FixedTime,
		UpdatedAt: FixedTime,
	}
}
