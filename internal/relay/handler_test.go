package relay_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/macro-relay/internal/domain/entity"
	"github.com/KirkDiggler/macro-relay/internal/effects"
	dnderr "github.com/KirkDiggler/macro-relay/internal/errors"
	"github.com/KirkDiggler/macro-relay/internal/relay"
	"github.com/KirkDiggler/macro-relay/internal/repositories/entities"
	"github.com/KirkDiggler/macro-relay/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T) (*relay.Handler, *entities.InMemoryRepository) {
	t.Helper()
	repo := entities.NewInMemoryRepository()
	require.NoError(t, repo.Create(context.Background(), testutils.CreateTestEntity("npc-1", "gm", "Goblin")))

	executor := effects.NewExecutor(&effects.ExecutorConfig{Repository: repo})
	return relay.NewHandler(executor), repo
}

func TestHandler_Operations(t *testing.T) {
	handler, repo := newHandler(t)
	ctx := context.Background()

	resp := handler.Handle(ctx, &relay.Request{
		ID:        "req-1",
		Operation: relay.OperationApply,
		CallerID:  "user-1",
		EntityID:  "npc-1",
		Effect:    &entity.Effect{Name: "injury", Counter: 1},
	})
	require.True(t, resp.Success, resp.Error)
	assert.Equal(t, "req-1", resp.RequestID)
	assert.Equal(t, string(effects.ActionCreated), resp.Action)
	require.Len(t, resp.Effects, 1)
	effectID := resp.Effects[0].ID

	resp = handler.Handle(ctx, &relay.Request{
		ID:        "req-2",
		Operation: relay.OperationUpdate,
		EntityID:  "npc-1",
		EffectID:  effectID,
		Patch:     entity.CounterPatch(3),
	})
	require.True(t, resp.Success, resp.Error)
	assert.Equal(t, 3, resp.Effects[0].Counter)

	resp = handler.Handle(ctx, &relay.Request{
		ID:        "req-3",
		Operation: relay.OperationRemove,
		EntityID:  "npc-1",
		EffectID:  effectID,
	})
	require.True(t, resp.Success, resp.Error)
	assert.Equal(t, string(effects.ActionRemoved), resp.Action)

	stored, err := repo.Get(ctx, "npc-1")
	require.NoError(t, err)
	assert.Empty(t, stored.Effects)
}

func TestHandler_FailuresBecomeResponses(t *testing.T) {
	handler, _ := newHandler(t)
	ctx := context.Background()

	resp := handler.Handle(ctx, &relay.Request{
		ID:        "req-1",
		Operation: relay.OperationRemove,
		EntityID:  "npc-1",
		EffectID:  "gone",
	})
	assert.False(t, resp.Success)
	assert.Equal(t, "req-1", resp.RequestID)
	assert.Equal(t, string(dnderr.CodeEffectNotFound), resp.Code)
	assert.NotEmpty(t, resp.Error)

	resp = handler.Handle(ctx, &relay.Request{ID: "req-2", Operation: "explode", EntityID: "npc-1"})
	assert.False(t, resp.Success)
	assert.Equal(t, string(dnderr.CodeInvalidArgument), resp.Code)

	resp = handler.Handle(ctx, nil)
	assert.False(t, resp.Success)
}

func TestResponse_Err(t *testing.T) {
	ok := &relay.Response{Success: true}
	assert.NoError(t, ok.Err("npc-1", ""))

	failed := &relay.Response{Code: string(dnderr.CodeEffectNotFound), Error: "effect eff-1 not found"}
	err := failed.Err("npc-1", "eff-1")
	assert.True(t, dnderr.IsEffectNotFound(err))
	assert.Equal(t, "eff-1", dnderr.GetMeta(err)["effect_id"])

	unknown := &relay.Response{Error: "boom"}
	assert.Equal(t, dnderr.CodeUnknown, dnderr.GetCode(unknown.Err("npc-1", "")))
}
