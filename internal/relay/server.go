package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// RedisServerConfig holds configuration for the privileged relay server
type RedisServerConfig struct {
	Client  redis.UniversalClient
	Handler *Handler
	// ServerID is written into the presence key
	ServerID    string
	PresenceTTL time.Duration
	Heartbeat   time.Duration
}

// RedisServer answers relay requests published on Redis. Requests are
// handled one at a time in arrival order.
type RedisServer struct {
	client      redis.UniversalClient
	handler     *Handler
	serverID    string
	presenceTTL time.Duration
	heartbeat   time.Duration
	ready       chan struct{}
}

// NewRedisServer creates a new relay server
func NewRedisServer(cfg *RedisServerConfig) *RedisServer {
	if cfg == nil || cfg.Client == nil {
		panic("redis client is required")
	}
	if cfg.Handler == nil {
		panic("handler is required")
	}

	s := &RedisServer{
		client:      cfg.Client,
		handler:     cfg.Handler,
		serverID:    cfg.ServerID,
		presenceTTL: cfg.PresenceTTL,
		heartbeat:   cfg.Heartbeat,
		ready:       make(chan struct{}),
	}
	if s.presenceTTL <= 0 {
		s.presenceTTL = 15 * time.Second
	}
	if s.heartbeat <= 0 || s.heartbeat >= s.presenceTTL {
		s.heartbeat = s.presenceTTL / 3
	}
	if s.serverID == "" {
		s.serverID = "relay"
	}

	return s
}

// Ready is closed once the server is subscribed and has announced itself
func (s *RedisServer) Ready() <-chan struct{} {
	return s.ready
}

// Run serves requests until ctx is cancelled, then withdraws presence
func (s *RedisServer) Run(ctx context.Context) error {
	sub := s.client.Subscribe(ctx, RequestChannel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", RequestChannel, err)
	}
	if err := s.announce(ctx); err != nil {
		return err
	}
	defer s.withdraw()

	close(s.ready)
	log.Printf("[RELAY] Server %s listening on %s", s.serverID, RequestChannel)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ticker := time.NewTicker(s.heartbeat)
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if err := s.announce(gctx); err != nil {
					log.Printf("[RELAY] Heartbeat failed: %v", err)
				}
			}
		}
	})

	g.Go(func() error {
		messages := sub.Channel()
		for {
			select {
			case <-gctx.Done():
				return nil
			case msg, ok := <-messages:
				if !ok {
					return fmt.Errorf("request subscription closed")
				}
				s.serve(gctx, msg.Payload)
			}
		}
	})

	return g.Wait()
}

func (s *RedisServer) serve(ctx context.Context, payload string) {
	var req Request
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		log.Printf("[RELAY] Dropping unreadable request: %v", err)
		return
	}
	if req.ID == "" {
		log.Printf("[RELAY] Dropping request without ID")
		return
	}

	resp := s.handler.Handle(ctx, &req)

	data, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[RELAY] Failed to marshal response %s: %v", req.ID, err)
		return
	}
	if err := s.client.Publish(ctx, ResponseChannel(req.ID), data).Err(); err != nil {
		log.Printf("[RELAY] Failed to publish response %s: %v", req.ID, err)
	}
}

func (s *RedisServer) announce(ctx context.Context) error {
	if err := s.client.Set(ctx, PresenceKey, s.serverID, s.presenceTTL).Err(); err != nil {
		return fmt.Errorf("failed to announce relay presence: %w", err)
	}
	return nil
}

func (s *RedisServer) withdraw() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.client.Del(ctx, PresenceKey).Err(); err != nil {
		log.Printf("[RELAY] Failed to withdraw presence: %v", err)
		return
	}
	log.Printf("[RELAY] Server %s stopped", s.serverID)
}
