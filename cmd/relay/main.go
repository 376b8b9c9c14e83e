package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/macro-relay/internal/config"
	"github.com/KirkDiggler/macro-relay/internal/events"
	"github.com/KirkDiggler/macro-relay/internal/notify"
	"github.com/KirkDiggler/macro-relay/internal/relay"
	"github.com/KirkDiggler/macro-relay/internal/repositories/entities"
	"github.com/KirkDiggler/macro-relay/internal/services"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	opts, err := cfg.Redis.Options()
	if err != nil {
		log.Fatalf("Failed to build Redis options: %v", err)
	}
	redisClient := redis.NewClient(opts)
	defer func() {
		if closeErr := redisClient.Close(); closeErr != nil {
			log.Printf("Error closing Redis connection: %v", closeErr)
		} else {
			log.Println("Closed Redis connection")
		}
	}()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	pingErr := redisClient.Ping(pingCtx).Err()
	cancelPing()
	if pingErr != nil {
		log.Printf("Failed to connect to Redis at %s: %v", opts.Addr, pingErr)
		return
	}
	log.Printf("Successfully connected to Redis at %s", opts.Addr)

	// Notifications go to Discord when configured, always to the log
	notifier := notify.Notifier(notify.NewLogNotifier())
	if cfg.Discord.Enabled() {
		dg, dgErr := discordgo.New("Bot " + cfg.Discord.Token)
		if dgErr != nil {
			log.Fatalf("Failed to create Discord session: %v", dgErr)
		}
		notifier = notify.Multi(notifier, notify.NewDiscordNotifier(&notify.DiscordNotifierConfig{
			Session:   dg,
			ChannelID: cfg.Discord.ChannelID,
		}))
		log.Printf("Posting effect feed to Discord channel %s", cfg.Discord.ChannelID)
	}

	bus := events.NewBus()
	notify.NewFeedListener(notifier).Register(bus)

	provider := services.NewProvider(&services.ProviderConfig{
		EntityRepository: entities.NewRedis(redisClient),
		EventBus:         bus,
		Notifier:         notifier,
		EffectTTL:        cfg.Relay.EffectTTL,
	})

	server := relay.NewRedisServer(&relay.RedisServerConfig{
		Client:      redisClient,
		Handler:     provider.RelayHandler,
		ServerID:    cfg.Relay.GMUserID,
		PresenceTTL: cfg.Relay.PresenceTTL,
		Heartbeat:   cfg.Relay.Heartbeat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	go func() {
		select {
		case <-server.Ready():
			fmt.Println("Relay is now running. Press CTRL-C to exit.")
		case <-ctx.Done():
		}
	}()

	if err := server.Run(ctx); err != nil {
		log.Printf("Relay stopped: %v", err)
	}

	fmt.Println("Shutting down...")
}
