package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if len(cfg.GapConfig.Pairs) != 5 {
		t.Errorf("Expected 5 default pairs, got %d", len(cfg.GapConfig.Pairs))
	}
	if cfg.GapConfig.MinGapPips != 20 {
		t.Errorf("MinGapPips = %v, want 20", cfg.GapConfig.MinGapPips)
	}
	if cfg.GapConfig.Timeframes["4h"] != "240" || cfg.GapConfig.Timeframes["1day"] != "D" {
		t.Errorf("Unexpected timeframe map: %v", cfg.GapConfig.Timeframes)
	}
	if cfg.GapConfig.WaitHours["4h"] != 6 {
		t.Errorf("WaitHours[4h] = %d, want 6", cfg.GapConfig.WaitHours["4h"])
	}
	if cfg.GapConfig.DefaultWaitHours != 24 {
		t.Errorf("DefaultWaitHours = %d, want 24", cfg.GapConfig.DefaultWaitHours)
	}
	if cfg.TwelveDataConfig.BaseURL != "https://api.twelvedata.com" {
		t.Errorf("Unexpected base URL: %s", cfg.TwelveDataConfig.BaseURL)
	}
	if cfg.LoggingConfig.Level != "info" {
		t.Errorf("Default log level = %s, want info", cfg.LoggingConfig.Level)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TD_API_KEY", "test-key")
	t.Setenv("GAP_PAIRS", "GBP/USD, USD/JPY")
	t.Setenv("GAP_MIN_PIPS", "35")
	t.Setenv("TELEGRAM_BOT_TOKEN", "bot-token")
	t.Setenv("TELEGRAM_CHAT_ID", "12345")
	t.Setenv("MOCK_MODE", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.TwelveDataConfig.APIKey != "test-key" {
		t.Errorf("APIKey = %s, want test-key", cfg.TwelveDataConfig.APIKey)
	}
	if !cfg.TwelveDataConfig.MockMode {
		t.Error("MockMode should be enabled")
	}
	if len(cfg.GapConfig.Pairs) != 2 || cfg.GapConfig.Pairs[1] != "USD/JPY" {
		t.Errorf("Unexpected pairs: %v", cfg.GapConfig.Pairs)
	}
	if cfg.GapConfig.MinGapPips != 35 {
		t.Errorf("MinGapPips = %v, want 35", cfg.GapConfig.MinGapPips)
	}
	if cfg.NotificationConfig.Telegram.BotToken != "bot-token" {
		t.Errorf("BotToken = %s", cfg.NotificationConfig.Telegram.BotToken)
	}
	if cfg.LoggingConfig.Level != "debug" {
		t.Errorf("Level = %s, want debug", cfg.LoggingConfig.Level)
	}
}

func TestLoadInvalidNumericEnvFallsBack(t *testing.T) {
	t.Setenv("GAP_MIN_PIPS", "not-a-number")
	t.Setenv("DB_PORT", "also-not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.GapConfig.MinGapPips != 20 {
		t.Errorf("Invalid GAP_MIN_PIPS should fall back to 20, got %v", cfg.GapConfig.MinGapPips)
	}
	if cfg.DatabaseConfig.Port != 5432 {
		t.Errorf("Invalid DB_PORT should fall back to 5432, got %d", cfg.DatabaseConfig.Port)
	}
}
