package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/openinbox/inboxd/internal/logger"
	"github.com/openinbox/inboxd/internal/tracing"
)

type Config struct {
	AppConfig      *AppConfig
	Logger         *logger.Config
	Tracing        *tracing.JaegerConfig
	DatabaseConfig *DatabaseConfig
	IMAPConfig     *IMAPConfig
	CronConfig     *CronConfig
}

func InitConfig() (*Config, error) {
	config := &Config{
		AppConfig:      &AppConfig{},
		Logger:         &logger.Config{},
		Tracing:        &tracing.JaegerConfig{},
		DatabaseConfig: &DatabaseConfig{},
		IMAPConfig:     &IMAPConfig{},
		CronConfig:     &CronConfig{},
	}

	err := godotenv.Load()
	if err != nil {
		log.Print("Unable to load .env file")
	}

	err = env.Parse(config)
	if err != nil {
		log.Fatalf("Error loading inboxd config: %v", err)
	}

	config.AppConfig.Logger = config.Logger
	config.AppConfig.Tracing = config.Tracing
	config.applyDefaults()

	return config, nil
}

// applyDefaults fills cross-config fallbacks after env parsing. Fetched mail
// is stored under the IMAP account id while views query by viewer account, so
// an unset account id inherits the viewer account (then the IMAP username) to
// keep the two keys in agreement.
func (c *Config) applyDefaults() {
	if c.IMAPConfig.AccountID == "" {
		c.IMAPConfig.AccountID = c.AppConfig.ViewerAccount
	}
	if c.IMAPConfig.AccountID == "" {
		c.IMAPConfig.AccountID = c.IMAPConfig.Username
	}
}
