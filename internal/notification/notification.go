package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"forex-gap-tracker/internal/gap"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	NotifyGapAlert NotificationType = "gap_alert"
	NotifyOutcome  NotificationType = "outcome"
)

// Notification represents a notification message
type Notification struct {
	Type      NotificationType
	Title     string
	Message   string
	Pair      string
	Timestamp time.Time
}

// Notifier interface for different notification providers
type Notifier interface {
	Send(notification *Notification) error
	Name() string
	IsEnabled() bool
}

// Manager manages multiple notification providers
type Manager struct {
	notifiers []Notifier
	enabled   bool
}

// NewManager creates a new notification manager
func NewManager() *Manager {
	return &Manager{
		notifiers: make([]Notifier, 0),
		enabled:   true,
	}
}

// AddNotifier adds a notification provider
func (m *Manager) AddNotifier(n Notifier) {
	m.notifiers = append(m.notifiers, n)
}

// Send sends a notification to all enabled providers
func (m *Manager) Send(notification *Notification) error {
	if !m.enabled {
		return nil
	}

	var lastErr error
	for _, n := range m.notifiers {
		if n.IsEnabled() {
			if err := n.Send(notification); err != nil {
				lastErr = err
			}
		}
	}
	return lastErr
}

// SendGapAlert sends the alert for a freshly detected gap event
func (m *Manager) SendGapAlert(event *gap.GapEvent) error {
	message := fmt.Sprintf(
		"📍 Pair: %s\n🕒 TF: %s\n📏 Gap: %s pips\n📉 RSI: %s\n\n🧠 Suggestion:\n%s\n\n🔗 %s",
		event.Pair, event.Timeframe, event.GapPips.StringFixed(1),
		event.RSILabel(), event.Suggestion, event.ChartURL,
	)

	return m.Send(&Notification{
		Type:      NotifyGapAlert,
		Title:     fmt.Sprintf("📊 %s Detected!", event.Direction.Label()),
		Message:   message,
		Pair:      event.Pair,
		Timestamp: event.DetectedAt,
	})
}

// SendOutcome sends a follow-up when a pending gap resolves
func (m *Manager) SendOutcome(event *gap.GapEvent) error {
	emoji := "✅"
	verdict := "filled"
	if event.Outcome == gap.OutcomeNotFilled {
		emoji = "❌"
		verdict = "not filled"
	}

	return m.Send(&Notification{
		Type:      NotifyOutcome,
		Title:     fmt.Sprintf("%s Gap %s: %s", emoji, verdict, event.Pair),
		Message:   fmt.Sprintf("%s %s gap of %s pips from %s was %s.", event.Pair, event.Timeframe, event.GapPips.StringFixed(1), event.DetectedAt.Format("2006-01-02 15:04"), verdict),
		Pair:      event.Pair,
		Timestamp: time.Now().UTC(),
	})
}

// =============================================================================
// TELEGRAM NOTIFIER
// =============================================================================

// TelegramNotifier sends notifications via Telegram
type TelegramNotifier struct {
	botToken string
	chatID   string
	enabled  bool
	client   *http.Client
}

// TelegramConfig holds Telegram configuration
type TelegramConfig struct {
	BotToken string
	ChatID   string
	Enabled  bool
}

// NewTelegramNotifier creates a new Telegram notifier
func NewTelegramNotifier(config TelegramConfig) *TelegramNotifier {
	return &TelegramNotifier{
		botToken: config.BotToken,
		chatID:   config.ChatID,
		enabled:  config.Enabled && config.BotToken != "" && config.ChatID != "",
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *TelegramNotifier) Name() string {
	return "telegram"
}

func (t *TelegramNotifier) IsEnabled() bool {
	return t.enabled
}

func (t *TelegramNotifier) Send(notification *Notification) error {
	if !t.enabled {
		return nil
	}

	message := fmt.Sprintf("%s\n%s", notification.Title, notification.Message)

	payload := map[string]interface{}{
		"chat_id": t.chatID,
		"text":    message,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal telegram payload: %w", err)
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.botToken)
	resp, err := t.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}

	return nil
}

// =============================================================================
// DISCORD NOTIFIER
// =============================================================================

// DiscordNotifier sends notifications via Discord webhook
type DiscordNotifier struct {
	webhookURL string
	enabled    bool
	client     *http.Client
}

// DiscordConfig holds Discord configuration
type DiscordConfig struct {
	WebhookURL string
	Enabled    bool
}

// NewDiscordNotifier creates a new Discord notifier
func NewDiscordNotifier(config DiscordConfig) *DiscordNotifier {
	return &DiscordNotifier{
		webhookURL: config.WebhookURL,
		enabled:    config.Enabled && config.WebhookURL != "",
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (d *DiscordNotifier) Name() string {
	return "discord"
}

func (d *DiscordNotifier) IsEnabled() bool {
	return d.enabled
}

func (d *DiscordNotifier) Send(notification *Notification) error {
	if !d.enabled {
		return nil
	}

	color := 0x2ECC71 // Green
	if notification.Type == NotifyOutcome {
		color = 0x3498DB // Blue
	}

	embed := map[string]interface{}{
		"title":       notification.Title,
		"description": notification.Message,
		"color":       color,
		"timestamp":   notification.Timestamp.Format(time.RFC3339),
	}

	payload := map[string]interface{}{
		"embeds": []interface{}{embed},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal discord payload: %w", err)
	}

	resp, err := d.client.Post(d.webhookURL, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to send discord message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("discord API returned status %d", resp.StatusCode)
	}

	return nil
}
