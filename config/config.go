package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	TwelveDataConfig   TwelveDataConfig   `json:"twelvedata"`
	GapConfig          GapConfig          `json:"gap"`
	DatabaseConfig     DatabaseConfig     `json:"database"`
	NotificationConfig NotificationConfig `json:"notification"`
	VaultConfig        VaultConfig        `json:"vault"`
	LoggingConfig      LoggingConfig      `json:"logging"`
}

// TwelveDataConfig holds market data provider configuration
type TwelveDataConfig struct {
	APIKey   string `json:"api_key"`
	BaseURL  string `json:"base_url"`
	MockMode bool   `json:"mock_mode"` // Use simulated data when the provider is unavailable
}

// GapConfig holds gap detection and outcome resolution configuration
type GapConfig struct {
	Pairs            []string          `json:"pairs"`
	Timeframes       map[string]string `json:"timeframes"` // timeframe -> chart interval code
	MinGapPips       float64           `json:"min_gap_pips"`
	WaitHours        map[string]int    `json:"wait_hours"` // timeframe -> hours before outcome check
	DefaultWaitHours int               `json:"default_wait_hours"`
}

type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
	SSLMode  string `json:"ssl_mode"`
}

type NotificationConfig struct {
	Enabled        bool           `json:"enabled"`
	NotifyOutcomes bool           `json:"notify_outcomes"` // Also alert when a pending gap resolves
	Telegram       TelegramConfig `json:"telegram"`
	Discord        DiscordConfig  `json:"discord"`
}

type TelegramConfig struct {
	Enabled  bool   `json:"enabled"`
	BotToken string `json:"bot_token"`
	ChatID   string `json:"chat_id"`
}

type DiscordConfig struct {
	Enabled    bool   `json:"enabled"`
	WebhookURL string `json:"webhook_url"`
}

// VaultConfig holds HashiCorp Vault configuration for credential storage
type VaultConfig struct {
	Enabled    bool   `json:"enabled"`
	Address    string `json:"address"`
	Token      string `json:"token"`
	MountPath  string `json:"mount_path"`
	SecretPath string `json:"secret_path"`
	TLSEnabled bool   `json:"tls_enabled"`
	CACert     string `json:"ca_cert"`
}

type LoggingConfig struct {
	Level      string `json:"level"`       // debug, info, warn, error
	JSONFormat bool   `json:"json_format"` // Output as JSON
}

func Load() (*Config, error) {
	// First try to load base config from file
	cfg, err := loadFromFile("config.json")
	if err != nil {
		// If no config file, start with empty config
		cfg = &Config{}
	}

	// Apply environment variable overrides (these take precedence)
	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the config
func applyEnvOverrides(cfg *Config) {
	// Market data provider config
	cfg.TwelveDataConfig.APIKey = getEnvOrDefault("TD_API_KEY", cfg.TwelveDataConfig.APIKey)
	cfg.TwelveDataConfig.BaseURL = getEnvOrDefault("TD_BASE_URL", cfg.TwelveDataConfig.BaseURL)
	cfg.TwelveDataConfig.MockMode = getEnvOrDefault("MOCK_MODE", "false") == "true"

	// Gap config
	if pairs := os.Getenv("GAP_PAIRS"); pairs != "" {
		cfg.GapConfig.Pairs = splitAndTrim(pairs)
	}
	cfg.GapConfig.MinGapPips = getEnvFloatOrDefault("GAP_MIN_PIPS", cfg.GapConfig.MinGapPips)

	// Notification config
	cfg.NotificationConfig.Enabled = getEnvOrDefault("NOTIFICATIONS_ENABLED", "true") == "true"
	cfg.NotificationConfig.NotifyOutcomes = getEnvOrDefault("NOTIFY_OUTCOMES", "false") == "true"
	cfg.NotificationConfig.Telegram.Enabled = getEnvOrDefault("TELEGRAM_ENABLED", "true") == "true"
	cfg.NotificationConfig.Telegram.BotToken = getEnvOrDefault("TELEGRAM_BOT_TOKEN", cfg.NotificationConfig.Telegram.BotToken)
	cfg.NotificationConfig.Telegram.ChatID = getEnvOrDefault("TELEGRAM_CHAT_ID", cfg.NotificationConfig.Telegram.ChatID)
	cfg.NotificationConfig.Discord.Enabled = getEnvOrDefault("DISCORD_ENABLED", "false") == "true"
	cfg.NotificationConfig.Discord.WebhookURL = getEnvOrDefault("DISCORD_WEBHOOK_URL", cfg.NotificationConfig.Discord.WebhookURL)

	// Database config
	cfg.DatabaseConfig.Host = getEnvOrDefault("DB_HOST", cfg.DatabaseConfig.Host)
	cfg.DatabaseConfig.Port = getEnvIntOrDefault("DB_PORT", cfg.DatabaseConfig.Port)
	cfg.DatabaseConfig.User = getEnvOrDefault("DB_USER", cfg.DatabaseConfig.User)
	cfg.DatabaseConfig.Password = getEnvOrDefault("DB_PASSWORD", cfg.DatabaseConfig.Password)
	cfg.DatabaseConfig.Database = getEnvOrDefault("DB_NAME", cfg.DatabaseConfig.Database)
	cfg.DatabaseConfig.SSLMode = getEnvOrDefault("DB_SSLMODE", cfg.DatabaseConfig.SSLMode)

	// Vault config
	cfg.VaultConfig.Enabled = getEnvOrDefault("VAULT_ENABLED", "false") == "true"
	cfg.VaultConfig.Address = getEnvOrDefault("VAULT_ADDR", cfg.VaultConfig.Address)
	cfg.VaultConfig.Token = getEnvOrDefault("VAULT_TOKEN", cfg.VaultConfig.Token)
	cfg.VaultConfig.MountPath = getEnvOrDefault("VAULT_MOUNT_PATH", cfg.VaultConfig.MountPath)
	cfg.VaultConfig.SecretPath = getEnvOrDefault("VAULT_SECRET_PATH", cfg.VaultConfig.SecretPath)
	cfg.VaultConfig.TLSEnabled = getEnvOrDefault("VAULT_TLS_ENABLED", "false") == "true"

	// Logging config
	cfg.LoggingConfig.Level = getEnvOrDefault("LOG_LEVEL", cfg.LoggingConfig.Level)
	cfg.LoggingConfig.JSONFormat = getEnvOrDefault("LOG_JSON", "true") == "true"
}

// applyDefaults fills anything still unset after file and environment
func applyDefaults(cfg *Config) {
	if cfg.TwelveDataConfig.BaseURL == "" {
		cfg.TwelveDataConfig.BaseURL = "https://api.twelvedata.com"
	}
	if len(cfg.GapConfig.Pairs) == 0 {
		cfg.GapConfig.Pairs = []string{"GBP/USD", "EUR/USD", "USD/JPY", "EUR/JPY", "AUD/JPY"}
	}
	if len(cfg.GapConfig.Timeframes) == 0 {
		cfg.GapConfig.Timeframes = map[string]string{"4h": "240", "1day": "D"}
	}
	if cfg.GapConfig.MinGapPips == 0 {
		cfg.GapConfig.MinGapPips = 20
	}
	if len(cfg.GapConfig.WaitHours) == 0 {
		cfg.GapConfig.WaitHours = map[string]int{"4h": 6}
	}
	if cfg.GapConfig.DefaultWaitHours == 0 {
		cfg.GapConfig.DefaultWaitHours = 24
	}
	if cfg.DatabaseConfig.Host == "" {
		cfg.DatabaseConfig.Host = "localhost"
	}
	if cfg.DatabaseConfig.Port == 0 {
		cfg.DatabaseConfig.Port = 5432
	}
	if cfg.DatabaseConfig.User == "" {
		cfg.DatabaseConfig.User = "postgres"
	}
	if cfg.DatabaseConfig.Database == "" {
		cfg.DatabaseConfig.Database = "gap_tracker"
	}
	if cfg.DatabaseConfig.SSLMode == "" {
		cfg.DatabaseConfig.SSLMode = "disable"
	}
	if cfg.VaultConfig.Address == "" {
		cfg.VaultConfig.Address = "http://localhost:8200"
	}
	if cfg.VaultConfig.MountPath == "" {
		cfg.VaultConfig.MountPath = "secret"
	}
	if cfg.VaultConfig.SecretPath == "" {
		cfg.VaultConfig.SecretPath = "gap-tracker/credentials"
	}
	if cfg.LoggingConfig.Level == "" {
		cfg.LoggingConfig.Level = "info"
	}
}

func loadFromFile(filename string) (*Config, error) {
	file, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return &config, nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
