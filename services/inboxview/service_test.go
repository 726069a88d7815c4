package inboxview

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openinbox/inboxd/interfaces"
	"github.com/openinbox/inboxd/internal/enum"
	"github.com/openinbox/inboxd/internal/logger"
	"github.com/openinbox/inboxd/internal/models"
	"github.com/openinbox/inboxd/internal/repository"
	"github.com/openinbox/inboxd/internal/utils"
)

func testLogger(t *testing.T) logger.Logger {
	t.Helper()
	log := logger.NewAppLogger(&logger.Config{DevMode: true})
	log.InitLogger()
	return log
}

type stubEmailRepository struct {
	emails []*models.Email
}

func (r *stubEmailRepository) Store(ctx context.Context, email *models.Email) (string, error) {
	return email.ID, nil
}

func (r *stubEmailRepository) GetByID(ctx context.Context, id string) (*models.Email, error) {
	return nil, nil
}

func (r *stubEmailRepository) GetByMessageID(ctx context.Context, messageID string) (*models.Email, error) {
	return nil, nil
}

func (r *stubEmailRepository) GetByAccount(ctx context.Context, accountID string) ([]*models.Email, error) {
	return r.emails, nil
}

func (r *stubEmailRepository) MarkRead(ctx context.Context, id string, read bool) error {
	return nil
}

func (r *stubEmailRepository) Delete(ctx context.Context, id string) error {
	return nil
}

type stubSettingsRepository struct {
	settings *models.FilterSettings
}

func (r *stubSettingsRepository) GetByAccount(ctx context.Context, accountID string) (*models.FilterSettings, error) {
	return r.settings, nil
}

func (r *stubSettingsRepository) Save(ctx context.Context, settings *models.FilterSettings) error {
	r.settings = settings
	return nil
}

// recordingViewState captures the requests handed to the worker so tests can
// inspect which parameters each path used.
type recordingViewState struct {
	requested []interfaces.ViewRequest
	submitted []interfaces.ViewRequest
}

func (v *recordingViewState) Start(ctx context.Context) {}
func (v *recordingViewState) Stop()                     {}

func (v *recordingViewState) Request(ctx context.Context, req interfaces.ViewRequest) (models.ViewState, error) {
	v.requested = append(v.requested, req)
	return models.ViewState{}, nil
}

func (v *recordingViewState) Submit(req interfaces.ViewRequest) {
	v.submitted = append(v.submitted, req)
}

func (v *recordingViewState) Current() (models.ViewState, bool) {
	return models.ViewState{}, false
}

func (v *recordingViewState) Subscribe() (<-chan models.ViewState, func()) {
	ch := make(chan models.ViewState)
	return ch, func() {}
}

func newTestService(t *testing.T) (interfaces.InboxViewService, *recordingViewState) {
	t.Helper()
	viewState := &recordingViewState{}
	repos := &repository.Repositories{
		EmailRepository:          &stubEmailRepository{},
		FilterSettingsRepository: &stubSettingsRepository{},
	}
	return NewInboxViewService(testLogger(t), repos, viewState), viewState
}

func TestInboxViewService_RefreshRecallsViewParams(t *testing.T) {
	svc, viewState := newTestService(t)

	params := models.ViewParameters{
		Tab:          enum.TabPrimary,
		DrawerFilter: utils.Ptr(enum.FilterUnread),
	}
	_, err := svc.GetView(context.Background(), "acc-1", params)
	require.NoError(t, err)

	svc.Refresh(context.Background(), "acc-1")

	require.Len(t, viewState.submitted, 1)
	assert.Equal(t, params, viewState.submitted[0].Params)
}

func TestInboxViewService_CountsDoNotClobberRememberedParams(t *testing.T) {
	svc, viewState := newTestService(t)

	params := models.ViewParameters{
		Tab:          enum.TabPrimary,
		DrawerFilter: utils.Ptr(enum.FilterNeedsReply),
		Search:       models.ParseSearch("invoice"),
	}
	_, err := svc.GetView(context.Background(), "acc-1", params)
	require.NoError(t, err)

	_, err = svc.GetCounts(context.Background(), "acc-1", enum.TabPrimary, "")
	require.NoError(t, err)

	// The refresh after a counts poll must still recompute the view the user
	// is looking at, not the bare counts parameter set.
	svc.Refresh(context.Background(), "acc-1")

	require.Len(t, viewState.submitted, 1)
	assert.Equal(t, params, viewState.submitted[0].Params)
}

func TestInboxViewService_RefreshWithoutPriorViewUsesDefaults(t *testing.T) {
	svc, viewState := newTestService(t)

	svc.Refresh(context.Background(), "acc-1")

	require.Len(t, viewState.submitted, 1)
	assert.Equal(t, models.ViewParameters{}, viewState.submitted[0].Params)
}
