package secrets

import (
	"context"
	"fmt"

	"forex-gap-tracker/config"

	"github.com/hashicorp/vault/api"
)

// Source reads API credentials from HashiCorp Vault. When Vault is disabled
// it is a no-op and the config keeps whatever the environment provided.
type Source struct {
	client *api.Client
	config config.VaultConfig
}

// New creates a new secret source
func New(cfg config.VaultConfig) (*Source, error) {
	if !cfg.Enabled {
		return &Source{config: cfg}, nil
	}

	vaultConfig := api.DefaultConfig()
	vaultConfig.Address = cfg.Address

	if cfg.TLSEnabled && cfg.CACert != "" {
		tlsConfig := &api.TLSConfig{
			CACert: cfg.CACert,
		}
		if err := vaultConfig.ConfigureTLS(tlsConfig); err != nil {
			return nil, fmt.Errorf("failed to configure TLS: %w", err)
		}
	}

	client, err := api.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}

	client.SetToken(cfg.Token)

	return &Source{
		client: client,
		config: cfg,
	}, nil
}

// Apply reads the credential secret and fills the corresponding config
// fields. Only keys present in the secret are applied, so environment
// values survive a partial secret.
func (s *Source) Apply(ctx context.Context, cfg *config.Config) error {
	if !s.config.Enabled {
		return nil
	}

	path := fmt.Sprintf("%s/data/%s", s.config.MountPath, s.config.SecretPath)

	secret, err := s.client.Logical().ReadWithContext(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to read secret from vault: %w", err)
	}
	if secret == nil || secret.Data == nil {
		return fmt.Errorf("no secret found at %s", path)
	}

	// KV v2 wraps the payload in a "data" envelope
	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return fmt.Errorf("unexpected secret format at %s", path)
	}

	if v, ok := data["td_api_key"].(string); ok && v != "" {
		cfg.TwelveDataConfig.APIKey = v
	}
	if v, ok := data["telegram_bot_token"].(string); ok && v != "" {
		cfg.NotificationConfig.Telegram.BotToken = v
	}
	if v, ok := data["telegram_chat_id"].(string); ok && v != "" {
		cfg.NotificationConfig.Telegram.ChatID = v
	}
	if v, ok := data["discord_webhook_url"].(string); ok && v != "" {
		cfg.NotificationConfig.Discord.WebhookURL = v
	}

	return nil
}
