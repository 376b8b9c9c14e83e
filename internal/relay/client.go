package relay

import (
	"context"
	"time"

	"github.com/KirkDiggler/macro-relay/internal/domain/entity"
	"github.com/KirkDiggler/macro-relay/internal/effects"
	dnderr "github.com/KirkDiggler/macro-relay/internal/errors"
	"github.com/KirkDiggler/macro-relay/internal/uuid"
)

// ClientConfig holds dependencies for a relay client
type ClientConfig struct {
	Relay         Relay
	CallerID      string
	UUIDGenerator uuid.Generator
}

// Client adapts a Relay to effects.Mutator on behalf of one caller
type Client struct {
	relay    Relay
	callerID string
	uuidGen  uuid.Generator
}

// NewClient creates a relay-backed mutator
func NewClient(cfg *ClientConfig) *Client {
	if cfg == nil || cfg.Relay == nil {
		panic("relay is required")
	}

	uuidGen := cfg.UUIDGenerator
	if uuidGen == nil {
		uuidGen = uuid.NewGoogleUUIDGenerator()
	}

	return &Client{
		relay:    cfg.Relay,
		callerID: cfg.CallerID,
		uuidGen:  uuidGen,
	}
}

// Apply forwards a create-or-increment
func (c *Client) Apply(ctx context.Context, entityID string, payload *entity.Effect) (*effects.Outcome, error) {
	return c.do(ctx, &Request{
		Operation: OperationApply,
		EntityID:  entityID,
		Effect:    payload,
	})
}

// Update forwards a patch
func (c *Client) Update(ctx context.Context, entityID, effectID string, patch *entity.Patch) (*effects.Outcome, error) {
	return c.do(ctx, &Request{
		Operation: OperationUpdate,
		EntityID:  entityID,
		EffectID:  effectID,
		Patch:     patch,
	})
}

// Remove forwards a deletion
func (c *Client) Remove(ctx context.Context, entityID, effectID string) (*effects.Outcome, error) {
	return c.do(ctx, &Request{
		Operation: OperationRemove,
		EntityID:  entityID,
		EffectID:  effectID,
	})
}

func (c *Client) do(ctx context.Context, req *Request) (*effects.Outcome, error) {
	req.ID = c.uuidGen.New()
	req.CallerID = c.callerID
	req.SentAt = time.Now()

	resp, err := c.relay.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, dnderr.Internalf("relay returned no response for request %s", req.ID)
	}
	if err := resp.Err(req.EntityID, req.EffectID); err != nil {
		return nil, err
	}

	outcome := &effects.Outcome{
		Action:   effects.Action(resp.Action),
		EntityID: req.EntityID,
	}
	if len(resp.Effects) > 0 {
		outcome.Effect = resp.Effects[0]
	}
	return outcome, nil
}
