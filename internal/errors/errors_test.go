package errors_test

import (
	"errors"
	"fmt"
	"testing"

	dnderr "github.com/KirkDiggler/macro-relay/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_PreservesCode(t *testing.T) {
	base := dnderr.EffectNotFound("char-1", "eff-1")

	wrapped := dnderr.Wrap(base, "removing effect")
	require.NotNil(t, wrapped)
	assert.Equal(t, dnderr.CodeEffectNotFound, wrapped.Code)
	assert.Equal(t, "char-1", wrapped.Meta["entity_id"])
	assert.True(t, dnderr.IsEffectNotFound(wrapped))

	// Meta is copied, not shared
	wrapped.WithMeta("extra", 1)
	_, shared := base.Meta["extra"]
	assert.False(t, shared)
}

func TestWrap_ForeignError(t *testing.T) {
	wrapped := dnderr.Wrap(errors.New("boom"), "context")
	assert.Equal(t, dnderr.CodeUnknown, wrapped.Code)
	assert.Equal(t, "context: boom", wrapped.Error())

	assert.Nil(t, dnderr.Wrap(nil, "nothing"))
}

func TestIs_ThroughStdlibWrapping(t *testing.T) {
	err := fmt.Errorf("apply injury: %w", dnderr.DelegationUnavailable("npc-1"))

	assert.True(t, dnderr.IsDelegationUnavailable(err))
	assert.False(t, dnderr.IsEffectNotFound(err))
	assert.Equal(t, dnderr.CodeDelegationUnavailable, dnderr.GetCode(err))
	assert.Equal(t, "npc-1", dnderr.GetMeta(err)["entity_id"])
}

func TestHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"attribute", dnderr.AttributeNotFound("a", "strength"), dnderr.IsAttributeNotFound},
		{"limit", dnderr.LimitExceededf("max %d", 3), dnderr.IsLimitExceeded},
		{"invalid", dnderr.InvalidArgument("bad"), dnderr.IsInvalidArgument},
		{"exists", dnderr.AlreadyExistsf("dup %s", "x"), dnderr.IsAlreadyExists},
		{"not found", dnderr.NotFoundf("missing %s", "x"), dnderr.IsNotFound},
		{"permission", dnderr.PermissionDeniedf("held by %s", "x"), dnderr.IsPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
		})
	}

	assert.Equal(t, dnderr.CodeUnknown, dnderr.GetCode(errors.New("plain")))
	assert.Nil(t, dnderr.GetMeta(errors.New("plain")))
}

func TestWrapWithCode(t *testing.T) {
	err := dnderr.WrapWithCode(errors.New("redis down"), dnderr.CodeUnavailable, "relay presence")
	assert.Equal(t, dnderr.CodeUnavailable, err.Code)
	assert.ErrorContains(t, err, "redis down")
}
