package entity_test

import (
	"testing"
	"time"

	"github.com/KirkDiggler/macro-relay/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntity_IsOwnedBy(t *testing.T) {
	e := &entity.Entity{ID: "char-1", OwnerID: "user-1"}

	assert.True(t, e.IsOwnedBy("user-1"))
	assert.False(t, e.IsOwnedBy("user-2"))
	assert.False(t, e.IsOwnedBy(""))

	var nilEntity *entity.Entity
	assert.False(t, nilEntity.IsOwnedBy("user-1"))

	unowned := &entity.Entity{ID: "npc-1"}
	assert.False(t, unowned.IsOwnedBy(""))
}

func TestEntity_FindEffect(t *testing.T) {
	e := &entity.Entity{
		ID: "char-1",
		Effects: []*entity.Effect{
			{ID: "e1", Name: "Injury", Counter: 2},
			{ID: "e2", Name: "Flame Shield"},
		},
	}

	t.Run("matches case-insensitively", func(t *testing.T) {
		found := e.FindEffect("  injury ")
		require.NotNil(t, found)
		assert.Equal(t, "e1", found.ID)
	})

	t.Run("missing name", func(t *testing.T) {
		assert.Nil(t, e.FindEffect("stun"))
	})

	t.Run("by id", func(t *testing.T) {
		assert.Equal(t, "Flame Shield", e.EffectByID("e2").Name)
		assert.Nil(t, e.EffectByID("nope"))
	})
}

func TestEntity_Attribute(t *testing.T) {
	e := &entity.Entity{Attributes: map[string]int{"Strength": 4}}
	e.NormalizeAttributes()

	value, ok := e.Attribute("STRENGTH")
	assert.True(t, ok)
	assert.Equal(t, 4, value)

	_, ok = e.Attribute("agility")
	assert.False(t, ok)
}

func TestEntity_CloneIsDeep(t *testing.T) {
	original := &entity.Entity{
		ID:         "char-1",
		Attributes: map[string]int{"strength": 4},
		Effects: []*entity.Effect{
			{ID: "e1", Name: "injury", Counter: 1, Tags: map[string]string{"caster": "a"}},
		},
	}

	clone := original.Clone()
	clone.Attributes["strength"] = 9
	clone.Effects[0].Counter = 5
	clone.Effects[0].Tags["caster"] = "b"

	assert.Equal(t, 4, original.Attributes["strength"])
	assert.Equal(t, 1, original.Effects[0].Counter)
	assert.Equal(t, "a", original.Effects[0].Tags["caster"])
}

func TestEntity_SortEffects(t *testing.T) {
	now := time.Now()
	e := &entity.Entity{
		Effects: []*entity.Effect{
			{ID: "b", CreatedAt: now},
			{ID: "c", CreatedAt: now.Add(-time.Minute)},
			{ID: "a", CreatedAt: now},
		},
	}

	e.SortEffects()

	ids := []string{e.Effects[0].ID, e.Effects[1].ID, e.Effects[2].ID}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestPatch_ApplyTo(t *testing.T) {
	now := time.Now()
	effect := &entity.Effect{
		ID:      "e1",
		Name:    "Mana Maintenance",
		Counter: 2,
		Tags:    map[string]string{"caster": "char-1", "paired": "Manifestation"},
	}

	desc := "two spells held"
	patch := &entity.Patch{
		Counter:     intPtr(3),
		Tags:        map[string]string{"paired": "", "target": "npc-1"},
		Bonuses:     map[string]int{"Strength": -1},
		Description: &desc,
	}
	patch.ApplyTo(effect, now)

	assert.Equal(t, 3, effect.Counter)
	assert.Equal(t, "Mana Maintenance", effect.Name)
	assert.Equal(t, map[string]string{"caster": "char-1", "target": "npc-1"}, effect.Tags)
	assert.Equal(t, -1, effect.Bonus("strength"))
	assert.Equal(t, desc, effect.Description)
	assert.Equal(t, now, effect.UpdatedAt)
}

func TestPatch_IsEmpty(t *testing.T) {
	var nilPatch *entity.Patch
	assert.True(t, nilPatch.IsEmpty())
	assert.True(t, (&entity.Patch{}).IsEmpty())
	assert.False(t, entity.CounterPatch(0).IsEmpty())
}

func intPtr(v int) *int { return &v }
