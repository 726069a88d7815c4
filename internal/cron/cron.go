package cron

import (
	"context"
	"sync"

	cronv3 "github.com/robfig/cron/v3"

	"github.com/openinbox/inboxd/config"
	"github.com/openinbox/inboxd/internal/logger"
	"github.com/openinbox/inboxd/internal/tracing"
	"github.com/openinbox/inboxd/services"
)

// GroupInbox serializes jobs touching the mail store so a sync and a refresh
// never interleave.
const GroupInbox = "inbox"

var jobLocks = struct {
	sync.Mutex
	locks map[string]*sync.Mutex
}{
	locks: map[string]*sync.Mutex{
		GroupInbox: new(sync.Mutex),
	},
}

type CronManager struct {
	cfg      *config.Config
	log      logger.Logger
	cron     *cronv3.Cron
	stopCh   chan struct{}
	jobIDs   map[string]cronv3.EntryID
	services *services.Services
}

func NewCronManager(cfg *config.Config, log logger.Logger, svcs *services.Services) *CronManager {
	return &CronManager{
		cfg:      cfg,
		log:      log,
		stopCh:   make(chan struct{}),
		jobIDs:   make(map[string]cronv3.EntryID),
		services: svcs,
	}
}

// Start initializes and starts the cron scheduler
func (cm *CronManager) Start() {
	cm.log.Info("Starting cron manager")
	cronOptions := []cronv3.Option{
		cronv3.WithSeconds(),
		cronv3.WithChain(
			cronv3.SkipIfStillRunning(cronv3.DefaultLogger),
			cronv3.Recover(cronv3.DefaultLogger),
		),
	}
	c := cronv3.New(cronOptions...)
	cm.registerJobs(c)
	c.Start()
	cm.cron = c
}

// Stop gracefully stops the cron manager
func (cm *CronManager) Stop() {
	if cm.cron != nil {
		cm.log.Info("Stopping cron manager")
		ctx := cm.cron.Stop()
		<-ctx.Done()
	}
	close(cm.stopCh)
}

// registerJobs adds all cron jobs to the scheduler
func (cm *CronManager) registerJobs(c *cronv3.Cron) {
	cronConfig := cm.cfg.CronConfig

	if cronConfig.MailSyncSchedule != "" && cm.cfg.IMAPConfig.Enabled {
		id, err := c.AddFunc(cronConfig.MailSyncSchedule, func() {
			defer tracing.RecoverAndLog(cm.log)
			jobLocks.locks[GroupInbox].Lock()
			defer jobLocks.locks[GroupInbox].Unlock()
			cm.syncMailbox()
		})
		if err != nil {
			cm.log.Fatalf("Could not add mail sync cron job: %v", err)
		}
		cm.jobIDs["mail_sync"] = id
		cm.log.Infof("Registered mail sync job with schedule: %s", cronConfig.MailSyncSchedule)
	}

	if cronConfig.ViewRefreshSchedule != "" && cm.cfg.AppConfig.ViewerAccount != "" {
		id, err := c.AddFunc(cronConfig.ViewRefreshSchedule, func() {
			defer tracing.RecoverAndLog(cm.log)
			jobLocks.locks[GroupInbox].Lock()
			defer jobLocks.locks[GroupInbox].Unlock()
			cm.refreshView()
		})
		if err != nil {
			cm.log.Fatalf("Could not add view refresh cron job: %v", err)
		}
		cm.jobIDs["view_refresh"] = id
		cm.log.Infof("Registered view refresh job with schedule: %s", cronConfig.ViewRefreshSchedule)
	}
}

func (cm *CronManager) syncMailbox() {
	ctx := context.Background()

	span, ctx := tracing.StartTracerSpan(ctx, "CronManager.syncMailbox")
	defer span.Finish()
	tracing.TagComponentCronJob(span)

	if err := cm.services.IMAPService.SyncNow(ctx); err != nil {
		tracing.TraceErr(span, err)
		cm.log.Errorf("Scheduled mailbox sync failed: %v", err)
		return
	}
}

// refreshView recomputes the view state so date-tiered sections roll over as
// time passes, even without new mail.
func (cm *CronManager) refreshView() {
	ctx := context.Background()

	span, ctx := tracing.StartTracerSpan(ctx, "CronManager.refreshView")
	defer span.Finish()
	tracing.TagComponentCronJob(span)

	cm.services.InboxViewService.Refresh(ctx, cm.cfg.AppConfig.ViewerAccount)
}
