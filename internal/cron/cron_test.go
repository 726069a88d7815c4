package cron

import (
	"testing"

	cronv3 "github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openinbox/inboxd/config"
	"github.com/openinbox/inboxd/internal/logger"
)

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		DevMode: true,
	})
	appLogger.InitLogger()
	return appLogger
}

func testConfig() *config.Config {
	return &config.Config{
		AppConfig: &config.AppConfig{
			ViewerAccount: "me@example.com",
			Logger: &logger.Config{
				LogLevel: "info",
			},
		},
		IMAPConfig: &config.IMAPConfig{},
		CronConfig: &config.CronConfig{
			MailSyncSchedule:    "0 */5 * * * *",
			ViewRefreshSchedule: "30 * * * * *",
		},
	}
}

func TestNewCronManager(t *testing.T) {
	// Arrange
	cfg := testConfig()
	log := getLogger()

	// Act
	cm := NewCronManager(cfg, log, nil)

	// Assert
	assert.NotNil(t, cm)
	assert.Equal(t, cfg, cm.cfg)
	assert.Equal(t, log, cm.log)
	assert.NotNil(t, cm.jobIDs)
}

func TestCronManager_RegisterJobs(t *testing.T) {
	// Arrange
	cfg := testConfig()
	cm := NewCronManager(cfg, getLogger(), nil)
	c := cronv3.New(cronv3.WithSeconds())

	// Act
	syncID, err := c.AddFunc(cfg.CronConfig.MailSyncSchedule, func() {})
	require.NoError(t, err)
	cm.jobIDs["mail_sync"] = syncID

	refreshID, err := c.AddFunc(cfg.CronConfig.ViewRefreshSchedule, func() {})
	require.NoError(t, err)
	cm.jobIDs["view_refresh"] = refreshID

	cm.cron = c

	// Assert
	assert.NotNil(t, cm.cron)
	assert.Equal(t, 2, len(cm.jobIDs))
}

func TestCronManager_Stop(t *testing.T) {
	// Arrange
	cm := NewCronManager(testConfig(), getLogger(), nil)
	cm.cron = cronv3.New(cronv3.WithSeconds())
	cm.cron.Start()

	// Act
	cm.Stop()

	// Assert
	select {
	case <-cm.stopCh:
	default:
		t.Fatal("stop channel not closed")
	}
}
