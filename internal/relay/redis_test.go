package relay_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/macro-relay/internal/domain/entity"
	"github.com/KirkDiggler/macro-relay/internal/effects"
	dnderr "github.com/KirkDiggler/macro-relay/internal/errors"
	"github.com/KirkDiggler/macro-relay/internal/relay"
	"github.com/KirkDiggler/macro-relay/internal/testutils"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRelay_Available(t *testing.T) {
	client, mock := redismock.NewClientMock()
	r := relay.NewRedisRelay(&relay.RedisRelayConfig{Client: client})
	ctx := context.Background()

	mock.ExpectExists(relay.PresenceKey).SetVal(1)
	assert.True(t, r.Available(ctx))

	mock.ExpectExists(relay.PresenceKey).SetVal(0)
	assert.False(t, r.Available(ctx))

	mock.ExpectExists(relay.PresenceKey).SetErr(errors.New("connection refused"))
	assert.False(t, r.Available(ctx))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisRelay_InvalidRequestNeverPublishes(t *testing.T) {
	client, mock := redismock.NewClientMock()
	r := relay.NewRedisRelay(&relay.RedisRelayConfig{Client: client})

	_, err := r.Execute(context.Background(), &relay.Request{ID: "req-1", Operation: relay.OperationApply, EntityID: "npc-1"})
	assert.True(t, dnderr.IsInvalidArgument(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisRelay_RoundTrip(t *testing.T) {
	client := testutils.CreateTestRedisClientOrSkip(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler, repo := newHandler(t)
	server := relay.NewRedisServer(&relay.RedisServerConfig{
		Client:      client,
		Handler:     handler,
		ServerID:    "gm-test",
		PresenceTTL: 3 * time.Second,
		Heartbeat:   time.Second,
	})

	done := make(chan error, 1)
	go func() { done <- server.Run(ctx) }()

	select {
	case <-server.Ready():
	case err := <-done:
		t.Fatalf("relay server exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("relay server never became ready")
	}

	r := relay.NewRedisRelay(&relay.RedisRelayConfig{Client: client, Timeout: 5 * time.Second})
	require.True(t, r.Available(ctx))

	mutator := relay.NewClient(&relay.ClientConfig{Relay: r, CallerID: "user-1"})
	outcome, err := mutator.Apply(ctx, "npc-1", &entity.Effect{Name: "injury", Counter: 2})
	require.NoError(t, err)
	assert.Equal(t, effects.ActionCreated, outcome.Action)

	_, err = mutator.Remove(ctx, "npc-1", "missing")
	assert.True(t, dnderr.IsEffectNotFound(err))

	stored, err := repo.Get(ctx, "npc-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.FindEffect("injury").Counter)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("relay server did not stop")
	}
	assert.False(t, r.Available(context.Background()), "presence is withdrawn on shutdown")
}

func TestRedisRelay_NoServer(t *testing.T) {
	client := testutils.CreateTestRedisClientOrSkip(t)
	r := relay.NewRedisRelay(&relay.RedisRelayConfig{Client: client, Timeout: time.Second})
	ctx := context.Background()

	assert.False(t, r.Available(ctx))

	_, err := r.Execute(ctx, &relay.Request{
		ID:        "req-1",
		Operation: relay.OperationApply,
		EntityID:  "npc-1",
		Effect:    &entity.Effect{Name: "injury", Counter: 1},
	})
	assert.True(t, dnderr.IsDelegationUnavailable(err))
}
