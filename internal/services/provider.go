package services

import (
	"time"

	"github.com/KirkDiggler/macro-relay/internal/dice"
	"github.com/KirkDiggler/macro-relay/internal/effects"
	"github.com/KirkDiggler/macro-relay/internal/events"
	"github.com/KirkDiggler/macro-relay/internal/notify"
	"github.com/KirkDiggler/macro-relay/internal/relay"
	"github.com/KirkDiggler/macro-relay/internal/repositories/entities"
	effectService "github.com/KirkDiggler/macro-relay/internal/services/effect"
	macroService "github.com/KirkDiggler/macro-relay/internal/services/macro"
)

// Provider holds all service instances
type Provider struct {
	Executor      *effects.Executor
	EffectService effectService.Service
	MacroService  macroService.Service
	// RelayHandler serves delegated requests against Executor
	RelayHandler *relay.Handler
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	EntityRepository entities.Repository
	Relay            relay.Relay
	EventBus         *events.Bus
	Notifier         notify.Notifier
	Roller           dice.Roller
	EffectTTL        time.Duration
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	// Use in-memory repository if none provided
	repo := cfg.EntityRepository
	if repo == nil {
		repo = entities.NewInMemoryRepository()
	}

	executor := effects.NewExecutor(&effects.ExecutorConfig{
		Repository: repo,
		EventBus:   cfg.EventBus,
		EffectTTL:  cfg.EffectTTL,
	})

	effectSvc := effectService.NewService(&effectService.ServiceConfig{
		Repository: repo,
		Executor:   executor,
		Relay:      cfg.Relay,
	})

	macroSvc := macroService.NewService(&macroService.ServiceConfig{
		EffectService: effectSvc,
		Roller:        cfg.Roller,
		Notifier:      cfg.Notifier,
	})

	return &Provider{
		Executor:      executor,
		EffectService: effectSvc,
		MacroService:  macroSvc,
		RelayHandler:  relay.NewHandler(executor),
	}
}
