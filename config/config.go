package config

import (
	"github.com/openinbox/inboxd/internal/logger"
	"github.com/openinbox/inboxd/internal/tracing"
)

type AppConfig struct {
	APIPort string `env:"PORT" envDefault:"11211"`
	APIKey  string `env:"API_KEY,required"`
	// ViewerAccount is the mailbox owner address, used by the needs-reply
	// classifier to recognize self-sent mail.
	ViewerAccount string `env:"VIEWER_ACCOUNT"`
	Logger        *logger.Config
	Tracing       *tracing.JaegerConfig
}

type DatabaseConfig struct {
	Host            string `env:"INBOXD_POSTGRES_HOST,required"`
	Port            string `env:"INBOXD_POSTGRES_PORT,required"`
	User            string `env:"INBOXD_POSTGRES_USER,required"`
	DBName          string `env:"INBOXD_POSTGRES_DB_NAME,required"`
	Password        string `env:"INBOXD_POSTGRES_PASSWORD,required"`
	MaxConn         int    `env:"INBOXD_POSTGRES_DB_MAX_CONN" envDefault:"20"`
	MaxIdleConn     int    `env:"INBOXD_POSTGRES_DB_MAX_IDLE_CONN" envDefault:"10"`
	ConnMaxLifetime int    `env:"INBOXD_POSTGRES_DB_CONN_MAX_LIFETIME" envDefault:"60"`
	LogLevel        string `env:"INBOXD_POSTGRES_LOG_LEVEL" envDefault:"WARN"`
	SSLMode         string `env:"INBOXD_POSTGRES_SSL_MODE" envDefault:"disable"`
}

type IMAPConfig struct {
	Enabled       bool   `env:"IMAP_ENABLED" envDefault:"false"`
	Server        string `env:"IMAP_SERVER"`
	Port          int    `env:"IMAP_PORT" envDefault:"993"`
	TLS           bool   `env:"IMAP_TLS" envDefault:"true"`
	Username      string `env:"IMAP_USERNAME"`
	Password      string `env:"IMAP_PASSWORD"`
	Folder        string `env:"IMAP_FOLDER" envDefault:"INBOX"`
	AccountID     string `env:"IMAP_ACCOUNT_ID"`
	FetchBatchMax int    `env:"IMAP_FETCH_BATCH_MAX" envDefault:"200"`
}

type CronConfig struct {
	MailSyncSchedule    string `env:"CRON_SCHEDULE_MAIL_SYNC" envDefault:"0 */5 * * * *"`
	ViewRefreshSchedule string `env:"CRON_SCHEDULE_VIEW_REFRESH" envDefault:"30 * * * * *"`
}
