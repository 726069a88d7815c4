package imap

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/emersion/go-imap/client"
	tracingLog "github.com/opentracing/opentracing-go/log"

	"github.com/openinbox/inboxd/config"
	"github.com/openinbox/inboxd/interfaces"
	"github.com/openinbox/inboxd/internal/errors"
	"github.com/openinbox/inboxd/internal/logger"
	"github.com/openinbox/inboxd/internal/repository"
	"github.com/openinbox/inboxd/internal/tracing"
)

const (
	CONNECT_TIMEOUT = 30 * time.Second
	FETCH_TIMEOUT   = 60 * time.Second
)

type IMAPService struct {
	log          logger.Logger
	cfg          *config.IMAPConfig
	repositories *repository.Repositories
	onSync       func(context.Context)

	client      *client.Client
	clientMutex sync.Mutex

	status      interfaces.MailboxStatus
	statusMutex sync.RWMutex

	syncing atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewIMAPService(log logger.Logger, cfg *config.IMAPConfig, repos *repository.Repositories) *IMAPService {
	return &IMAPService{
		log:          log,
		cfg:          cfg,
		repositories: repos,
	}
}

// SetOnSync registers a callback fired after each successful sync that stored
// at least one new message. The server wires it to the view-state refresh.
func (s *IMAPService) SetOnSync(handler func(context.Context)) {
	s.onSync = handler
}

// Start connects to the configured mailbox and runs the initial sync in the
// background. A disabled mailbox is a no-op; the rest of the service runs on
// stored messages only.
func (s *IMAPService) Start(ctx context.Context) error {
	span, ctx := tracing.StartTracerSpan(ctx, "IMAPService.Start")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	if !s.cfg.Enabled {
		s.log.Info("IMAP sync disabled, running on stored messages only")
		return nil
	}
	if s.cfg.Server == "" || s.cfg.Username == "" {
		tracing.TraceErr(span, errors.ErrMailboxNotConfigured)
		return errors.ErrMailboxNotConfigured
	}

	s.ctx, s.cancel = context.WithCancel(context.Background())
	span.LogFields(tracingLog.String("server", s.cfg.Server), tracingLog.String("folder", s.cfg.Folder))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer tracing.RecoverAndLog(s.log)

		if err := s.SyncNow(s.ctx); err != nil {
			s.log.Errorf("Initial mailbox sync failed: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the service
func (s *IMAPService) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		log.Println("Timeout waiting for IMAP operations to complete")
	}

	s.clientMutex.Lock()
	if s.client != nil {
		s.client.Timeout = 5 * time.Second
		_ = s.client.Logout()
		s.client = nil
	}
	s.clientMutex.Unlock()

	return nil
}

// SyncNow fetches the newest messages from the mailbox and stores the ones
// not seen before. Only one sync runs at a time.
func (s *IMAPService) SyncNow(ctx context.Context) error {
	span, ctx := tracing.StartTracerSpan(ctx, "IMAPService.SyncNow")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	if !s.cfg.Enabled {
		return errors.ErrMailboxNotConfigured
	}
	if !s.syncing.CompareAndSwap(false, true) {
		tracing.TraceErr(span, errors.ErrSyncInProgress)
		return errors.ErrSyncInProgress
	}
	defer s.syncing.Store(false)

	c, err := s.getClient(ctx)
	if err != nil {
		s.recordSyncError(err)
		tracing.TraceErr(span, err)
		return err
	}

	stored, err := s.syncFolder(ctx, c)
	if err != nil {
		s.recordSyncError(err)
		tracing.TraceErr(span, err)
		return err
	}

	span.LogFields(tracingLog.Int("stored", stored))
	s.recordSyncSuccess(stored)

	if stored > 0 && s.onSync != nil {
		s.onSync(ctx)
	}
	return nil
}

// Status returns the current status of the mailbox
func (s *IMAPService) Status() map[string]interfaces.MailboxStatus {
	s.statusMutex.RLock()
	defer s.statusMutex.RUnlock()

	if !s.cfg.Enabled {
		return map[string]interfaces.MailboxStatus{}
	}
	return map[string]interfaces.MailboxStatus{
		s.cfg.AccountID: s.status,
	}
}

func (s *IMAPService) recordSyncSuccess(stored int) {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()
	s.status.Connected = true
	s.status.LastSync = time.Now()
	s.status.LastError = ""
	s.status.Messages += stored
}

func (s *IMAPService) recordSyncError(err error) {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()
	s.status.Connected = false
	s.status.LastError = err.Error()
}
