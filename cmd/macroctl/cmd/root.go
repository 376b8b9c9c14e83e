package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/macro-relay/internal/config"
	"github.com/KirkDiggler/macro-relay/internal/relay"
	"github.com/KirkDiggler/macro-relay/internal/repositories/entities"
	"github.com/KirkDiggler/macro-relay/internal/services"
)

var (
	callerID string

	redisClient *redis.Client
	provider    *services.Provider
)

var rootCmd = &cobra.Command{
	Use:   "macroctl",
	Short: "Run table macros against the shared entity store",
	Long: `macroctl runs the table macros on behalf of one participant.

Entities owned by the participant are changed directly. Everything else is
sent to the game master relay, which must be running (see the relay binary).

Available commands:
  entity     Create and inspect entities
  resolve    Show the effective value of a characteristic
  check      Roll a characteristic check
  injure     Add injuries to a target
  heal       Remove injuries from a target
  maintain   Start a caster-maintained effect on a target
  release    End a caster-maintained effect on a target
  remove     Remove a named effect from an entity

Use "macroctl [command] --help" for more information about a specific command.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&callerID, "as", "", "Participant running the macro (defaults to $MACRO_USER_ID)")
}

func setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file")
	}
	if callerID == "" {
		callerID = os.Getenv("MACRO_USER_ID")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	opts, err := cfg.Redis.Options()
	if err != nil {
		return err
	}
	redisClient = redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}

	provider = services.NewProvider(&services.ProviderConfig{
		EntityRepository: entities.NewRedis(redisClient),
		Relay: relay.NewRedisRelay(&relay.RedisRelayConfig{
			Client:  redisClient,
			Timeout: cfg.Relay.Timeout,
		}),
		EffectTTL: cfg.Relay.EffectTTL,
	})
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if redisClient == nil {
		return nil
	}
	return redisClient.Close()
}

func requireCaller() error {
	if callerID == "" {
		return fmt.Errorf("--as or MACRO_USER_ID is required")
	}
	return nil
}
