package relay

import (
	"context"
	"log"

	"github.com/KirkDiggler/macro-relay/internal/effects"
	dnderr "github.com/KirkDiggler/macro-relay/internal/errors"
)

// Handler runs relayed requests on the privileged side
type Handler struct {
	mutator effects.Mutator
}

// NewHandler creates a handler that executes requests with mutator
func NewHandler(mutator effects.Mutator) *Handler {
	if mutator == nil {
		panic("mutator is required")
	}
	return &Handler{mutator: mutator}
}

// Handle executes one request. It never returns an error; failures are
// encoded in the response.
func (h *Handler) Handle(ctx context.Context, req *Request) *Response {
	if err := req.Validate(); err != nil {
		resp := failure(err)
		if req != nil {
			resp.RequestID = req.ID
		}
		return resp
	}

	log.Printf("[RELAY] %s on %s for %s (request %s)", req.Operation, req.EntityID, req.CallerID, req.ID)

	var (
		outcome *effects.Outcome
		err     error
	)
	switch req.Operation {
	case OperationApply:
		outcome, err = h.mutator.Apply(ctx, req.EntityID, req.Effect)
	case OperationUpdate:
		outcome, err = h.mutator.Update(ctx, req.EntityID, req.EffectID, req.Patch)
	case OperationRemove:
		outcome, err = h.mutator.Remove(ctx, req.EntityID, req.EffectID)
	}

	if err != nil {
		log.Printf("[RELAY] Request %s failed: %v", req.ID, err)
		resp := failure(err)
		resp.RequestID = req.ID
		return resp
	}

	resp := &Response{
		RequestID: req.ID,
		Success:   true,
		Action:    string(outcome.Action),
	}
	if outcome.Effect != nil {
		resp.Effects = append(resp.Effects, outcome.Effect)
	}
	return resp
}

func failure(err error) *Response {
	return &Response{
		Success: false,
		Code:    string(dnderr.GetCode(err)),
		Error:   err.Error(),
	}
}
