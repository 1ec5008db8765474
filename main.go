package main

import (
	"context"
	"io"
	"log"
	"os"
	"strings"

	"forex-gap-tracker/config"
	"forex-gap-tracker/internal/bot"
	"forex-gap-tracker/internal/database"
	"forex-gap-tracker/internal/notification"
	"forex-gap-tracker/internal/resolver"
	"forex-gap-tracker/internal/secrets"
	"forex-gap-tracker/internal/twelvedata"

	"github.com/rs/zerolog"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := newLogger(cfg.LoggingConfig)
	ctx := context.Background()

	// Credential bootstrap: Vault when enabled, environment otherwise
	source, err := secrets.New(cfg.VaultConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create secret source")
	}
	if err := source.Apply(ctx, cfg); err != nil {
		logger.Warn().Err(err).Msg("Secret lookup failed, using environment credentials")
	}

	// Market data client
	var client twelvedata.MarketDataClient
	if cfg.TwelveDataConfig.MockMode {
		logger.Warn().Msg("MOCK MODE: using simulated market data")
		client = twelvedata.NewMockClient()
	} else {
		client = twelvedata.NewClient(cfg.TwelveDataConfig.APIKey, cfg.TwelveDataConfig.BaseURL)
	}

	// Notification manager
	var notifyManager *notification.Manager
	if cfg.NotificationConfig.Enabled {
		notifyManager = notification.NewManager()

		if cfg.NotificationConfig.Telegram.Enabled {
			notifyManager.AddNotifier(notification.NewTelegramNotifier(notification.TelegramConfig{
				BotToken: cfg.NotificationConfig.Telegram.BotToken,
				ChatID:   cfg.NotificationConfig.Telegram.ChatID,
				Enabled:  cfg.NotificationConfig.Telegram.Enabled,
			}))
			logger.Info().Msg("Telegram notifications enabled")
		}

		if cfg.NotificationConfig.Discord.Enabled {
			notifyManager.AddNotifier(notification.NewDiscordNotifier(notification.DiscordConfig{
				WebhookURL: cfg.NotificationConfig.Discord.WebhookURL,
				Enabled:    cfg.NotificationConfig.Discord.Enabled,
			}))
			logger.Info().Msg("Discord notifications enabled")
		}
	}

	// Database
	db, err := database.NewDB(cfg.DatabaseConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.RunMigrations(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Info().Str("database", cfg.DatabaseConfig.Database).Msg("Database ready")

	repo := database.NewRepository(db, logger)
	res := resolver.New(repo, client, cfg.GapConfig, logger)

	b := bot.New(cfg.GapConfig, client, repo, notifyManager, res, cfg.NotificationConfig.NotifyOutcomes, logger)

	// One full cycle: detection pass, then outcome sweep. The external
	// scheduler decides how often this binary runs.
	if err := b.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("Run finished with errors")
		os.Exit(1)
	}

	logger.Info().Msg("Run complete")
}

func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if !cfg.JSONFormat {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
