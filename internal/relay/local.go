package relay

import (
	"context"
	"sync/atomic"

	dnderr "github.com/KirkDiggler/macro-relay/internal/errors"
)

// Local is an in-process relay for single-process tables and tests
type Local struct {
	handler *Handler
	online  atomic.Bool
}

// NewLocal creates an in-process relay. It starts online.
func NewLocal(handler *Handler) *Local {
	l := &Local{handler: handler}
	l.online.Store(handler != nil)
	return l
}

// SetOnline toggles whether the privileged side is reachable
func (l *Local) SetOnline(online bool) {
	l.online.Store(online)
}

// Available reports the online flag
func (l *Local) Available(_ context.Context) bool {
	return l.handler != nil && l.online.Load()
}

// Execute hands the request straight to the handler
func (l *Local) Execute(ctx context.Context, req *Request) (*Response, error) {
	if !l.Available(ctx) {
		entityID := ""
		if req != nil {
			entityID = req.EntityID
		}
		return nil, dnderr.DelegationUnavailable(entityID)
	}
	if err := ctx.Err(); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "relay request cancelled")
	}

	return l.handler.Handle(ctx, req), nil
}
