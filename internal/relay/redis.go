package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	dnderr "github.com/KirkDiggler/macro-relay/internal/errors"
	"github.com/redis/go-redis/v9"
)

const (
	// PresenceKey exists while a relay server is running
	PresenceKey = "relay:presence"
	// RequestChannel carries requests to the relay server
	RequestChannel = "relay:requests"

	responseChannelPattern = "relay:response:%s"

	// DefaultTimeout bounds one round trip when no deadline is configured
	DefaultTimeout = 10 * time.Second
)

// ResponseChannel is where the answer to one request is published
func ResponseChannel(requestID string) string {
	return fmt.Sprintf(responseChannelPattern, requestID)
}

// RedisRelayConfig holds configuration for the Redis relay client
type RedisRelayConfig struct {
	Client  redis.UniversalClient
	Timeout time.Duration
}

// RedisRelay sends requests to a RedisServer over Redis pub/sub
type RedisRelay struct {
	client  redis.UniversalClient
	timeout time.Duration
}

// NewRedisRelay creates a new Redis relay client
func NewRedisRelay(cfg *RedisRelayConfig) *RedisRelay {
	if cfg == nil || cfg.Client == nil {
		panic("redis client is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &RedisRelay{
		client:  cfg.Client,
		timeout: timeout,
	}
}

// Available reports whether a relay server has announced itself
func (r *RedisRelay) Available(ctx context.Context) bool {
	n, err := r.client.Exists(ctx, PresenceKey).Result()
	if err != nil {
		log.Printf("[RELAY] Presence check failed: %v", err)
		return false
	}
	return n > 0
}

// Execute publishes the request and waits for its response. The response
// channel is subscribed before publishing so the answer cannot be missed.
func (r *RedisRelay) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal relay request: %w", err)
	}

	sub := r.client.Subscribe(ctx, ResponseChannel(req.ID))
	defer sub.Close()

	// Wait for the subscription to be confirmed
	if _, err := sub.Receive(ctx); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to subscribe for relay response")
	}

	receivers, err := r.client.Publish(ctx, RequestChannel, payload).Result()
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to publish relay request")
	}
	if receivers == 0 {
		return nil, dnderr.DelegationUnavailable(req.EntityID)
	}

	select {
	case msg, ok := <-sub.Channel():
		if !ok {
			return nil, dnderr.Newf(dnderr.CodeUnavailable, "relay response channel closed for request %s", req.ID)
		}
		var resp Response
		if err := json.Unmarshal([]byte(msg.Payload), &resp); err != nil {
			return nil, fmt.Errorf("failed to unmarshal relay response: %w", err)
		}
		return &resp, nil
	case <-ctx.Done():
		return nil, dnderr.WrapWithCode(ctx.Err(), dnderr.CodeUnavailable,
			fmt.Sprintf("relay did not answer request %s", req.ID)).
			WithMeta("entity_id", req.EntityID)
	}
}
