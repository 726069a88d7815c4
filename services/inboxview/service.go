package inboxview

import (
	"context"
	"sync"

	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"

	"github.com/openinbox/inboxd/interfaces"
	"github.com/openinbox/inboxd/internal/enum"
	"github.com/openinbox/inboxd/internal/logger"
	"github.com/openinbox/inboxd/internal/models"
	"github.com/openinbox/inboxd/internal/repository"
	"github.com/openinbox/inboxd/internal/tracing"
)

type inboxViewService struct {
	log          logger.Logger
	repositories *repository.Repositories
	viewState    interfaces.ViewStateService

	// lastParams remembers each account's most recent view parameters so
	// background refreshes recompute the view the user is actually looking at.
	paramsMutex sync.RWMutex
	lastParams  map[string]models.ViewParameters
}

func NewInboxViewService(log logger.Logger, repos *repository.Repositories, viewState interfaces.ViewStateService) interfaces.InboxViewService {
	return &inboxViewService{
		log:          log,
		repositories: repos,
		viewState:    viewState,
		lastParams:   make(map[string]models.ViewParameters),
	}
}

func (s *inboxViewService) GetView(ctx context.Context, accountID string, params models.ViewParameters) (models.ViewState, error) {
	return s.getView(ctx, accountID, params, true)
}

// getView runs one view computation. Only parameter sets a user actually
// asked to see are remembered for background refreshes; auxiliary
// computations like the counts poll must not overwrite them.
func (s *inboxViewService) getView(ctx context.Context, accountID string, params models.ViewParameters, remember bool) (models.ViewState, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "InboxViewService.GetView")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagAccount(span, accountID)

	req, err := s.buildRequest(ctx, accountID, params)
	if err != nil {
		tracing.TraceErr(span, err)
		return models.ViewState{}, err
	}
	span.LogFields(tracingLog.Int("messages", len(req.Messages)))

	if remember {
		s.rememberParams(accountID, params)
	}

	state, err := s.viewState.Request(ctx, req)
	if err != nil {
		tracing.TraceErr(span, err)
		return models.ViewState{}, err
	}
	return state, nil
}

func (s *inboxViewService) GetCounts(ctx context.Context, accountID string, tab enum.Tab, pinnedOption enum.PinnedOption) (map[enum.DrawerFilter]int, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "InboxViewService.GetCounts")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagAccount(span, accountID)

	// Counts ride on a full view computation; the drawer filter and search are
	// deliberately absent so every filter's count is reported. The bare
	// parameter set is not remembered: a counts poll must not reset the view
	// the next background refresh recomputes.
	state, err := s.getView(ctx, accountID, models.ViewParameters{Tab: tab, PinnedOption: pinnedOption}, false)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return state.Counts, nil
}

func (s *inboxViewService) Refresh(ctx context.Context, accountID string) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "InboxViewService.Refresh")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagAccount(span, accountID)

	req, err := s.buildRequest(ctx, accountID, s.recallParams(accountID))
	if err != nil {
		s.log.Warnf("Skipping view refresh for %s: %v", accountID, err)
		tracing.TraceErr(span, err)
		return
	}

	s.viewState.Submit(req)
}

func (s *inboxViewService) GetFilterConfig(ctx context.Context, accountID string) (models.FilterConfig, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "InboxViewService.GetFilterConfig")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagAccount(span, accountID)

	settings, err := s.repositories.FilterSettingsRepository.GetByAccount(ctx, accountID)
	if err != nil {
		tracing.TraceErr(span, err)
		return models.FilterConfig{}, err
	}
	if settings == nil {
		return models.FilterConfig{EnabledRules: models.DefaultEnabledRules()}, nil
	}
	return settings.Config(), nil
}

func (s *inboxViewService) UpdateFilterSettings(ctx context.Context, settings *models.FilterSettings) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "InboxViewService.UpdateFilterSettings")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagAccount(span, settings.AccountID)

	if err := s.repositories.FilterSettingsRepository.Save(ctx, settings); err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	s.Refresh(ctx, settings.AccountID)
	return nil
}

func (s *inboxViewService) buildRequest(ctx context.Context, accountID string, params models.ViewParameters) (interfaces.ViewRequest, error) {
	cfg, err := s.GetFilterConfig(ctx, accountID)
	if err != nil {
		return interfaces.ViewRequest{}, err
	}

	emails, err := s.repositories.EmailRepository.GetByAccount(ctx, accountID)
	if err != nil {
		return interfaces.ViewRequest{}, err
	}

	snapshots := make([]models.MessageSnapshot, 0, len(emails))
	for _, email := range emails {
		snapshots = append(snapshots, email.Snapshot())
	}

	return interfaces.ViewRequest{
		Messages:      snapshots,
		Params:        params,
		Config:        cfg,
		ViewerAccount: accountID,
	}, nil
}

func (s *inboxViewService) rememberParams(accountID string, params models.ViewParameters) {
	s.paramsMutex.Lock()
	s.lastParams[accountID] = params
	s.paramsMutex.Unlock()
}

func (s *inboxViewService) recallParams(accountID string) models.ViewParameters {
	s.paramsMutex.RLock()
	defer s.paramsMutex.RUnlock()
	return s.lastParams[accountID]
}
