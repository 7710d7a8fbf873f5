package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/engine"
	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
	"github.com/arudraviharbommana/intelli-nlp/internal/agent/repo"
	"github.com/arudraviharbommana/intelli-nlp/internal/core"
	logx "github.com/arudraviharbommana/intelli-nlp/pkg/logger"
	pkgredis "github.com/arudraviharbommana/intelli-nlp/pkg/redis"
)

// AppConfig defines all configurable parameters for the CLI,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// Engine configs
	Engine       model.EngineConfig
	Conversation model.ConversationConfig
}

var (
	conversationID string
	quiet          bool
)

var rootCmd = &cobra.Command{
	Use:           "intelli-nlp",
	Short:         "Rule-based conversational engine with attachment analysis",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&conversationID, "conversation", "c", "", "conversation id to resume (default: a new one)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "disable logging")
	rootCmd.AddCommand(chatCmd, askCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() (AppConfig, error) {
	// Load .env file
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		logx.Warn().Err(err).Msg("could not load .env file")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("process environment config: %w", err)
	}
	return cfg, nil
}

// bootstrap loads configuration, initialises logging and returns the engine
// for the selected conversation plus a cleanup func.
func bootstrap(ctx context.Context) (*engine.Engine, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	if quiet {
		logx.Disable()
	} else {
		logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})
	}

	conversationRepo, closeRepo, err := newRepository(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	if conversationID == "" {
		conversationID = uuid.NewString()
	}
	e, err := engine.New(ctx, conversationID, conversationRepo, cfg.Engine)
	if err != nil {
		closeRepo()
		return nil, nil, fmt.Errorf("start engine: %w", err)
	}

	logx.Info().
		Str("conversation_id", conversationID).
		Str("store", cfg.Conversation.Store).
		Msg("engine ready")
	return e, closeRepo, nil
}

func newRepository(ctx context.Context, cfg AppConfig) (model.ConversationRepository, func(), error) {
	switch cfg.Conversation.Store {
	case model.StoreMemory, "":
		return repo.NewMemoryConversationRepository(), func() {}, nil
	case model.StoreRedis:
		rdb, err := cfg.Redis.New(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("initialise redis client: %w", err)
		}
		logx.Debug().Msg("Connected to Redis successfully")
		closeFn := func() {
			if err := rdb.Close(); err != nil {
				logx.Warn().Err(err).Msg("failed to close redis client")
			}
		}
		return repo.NewRedisConversationRepository(rdb, cfg.Conversation.TTL, cfg.Redis.KeyPrefix), closeFn, nil
	default:
		return nil, nil, fmt.Errorf("unknown CONVERSATION_STORE %q (want %s or %s)", cfg.Conversation.Store, model.StoreMemory, model.StoreRedis)
	}
}
