package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults_IMAPAccountID(t *testing.T) {
	t.Run("inherits viewer account", func(t *testing.T) {
		cfg := &Config{
			AppConfig:  &AppConfig{ViewerAccount: "me@example.com"},
			IMAPConfig: &IMAPConfig{Username: "imap-user@example.com"},
		}

		cfg.applyDefaults()

		assert.Equal(t, "me@example.com", cfg.IMAPConfig.AccountID)
	})

	t.Run("falls back to imap username", func(t *testing.T) {
		cfg := &Config{
			AppConfig:  &AppConfig{},
			IMAPConfig: &IMAPConfig{Username: "imap-user@example.com"},
		}

		cfg.applyDefaults()

		assert.Equal(t, "imap-user@example.com", cfg.IMAPConfig.AccountID)
	})

	t.Run("explicit id kept", func(t *testing.T) {
		cfg := &Config{
			AppConfig:  &AppConfig{ViewerAccount: "me@example.com"},
			IMAPConfig: &IMAPConfig{AccountID: "acc-42"},
		}

		cfg.applyDefaults()

		assert.Equal(t, "acc-42", cfg.IMAPConfig.AccountID)
	})
}
