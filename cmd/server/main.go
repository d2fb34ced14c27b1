package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cardforge/oracle-engine/internal/cards"
	"github.com/cardforge/oracle-engine/internal/config"
	"github.com/cardforge/oracle-engine/internal/events"
	"github.com/cardforge/oracle-engine/internal/server"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting oracle server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to open card store", zap.Error(err))
	}
	defer store.Close()
	logger.Info("card store initialized", zap.String("backend", cfg.Cards.Backend))

	opts := []cards.RepositoryOption{cards.WithCacheTTL(cfg.Cards.CacheTTL)}
	if cfg.Catalog.Enabled {
		catalog := cards.NewCatalog(cfg.Catalog.BaseURL, cfg.Catalog.RequestsPerSecond, logger)
		opts = append(opts, cards.WithCatalog(catalog))
		logger.Info("remote catalog enabled", zap.String("base_url", cfg.Catalog.BaseURL))
	}
	repo := cards.NewRepository(store, logger, opts...)

	bus := events.NewBus()
	srv := server.New(cfg.Server.Address, bus, repo, logger)

	logger.Info("oracle server initialized",
		zap.String("version", version),
		zap.String("address", cfg.Server.Address),
	)

	if err := srv.Start(ctx, cfg.Server.ShutdownTimeout); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}

	logger.Info("oracle server stopped")
}

func openStore(ctx context.Context, cfg *config.Config) (cards.Store, error) {
	switch cfg.Cards.Backend {
	case "file":
		return cards.NewFileStore(cfg.Cards.Path)
	case "sqlite":
		return cards.NewSQLiteStore(cfg.Cards.Path)
	case "postgres":
		return cards.NewPostgresStore(ctx, cfg.Cards.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown cards backend %q", cfg.Cards.Backend)
	}
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
