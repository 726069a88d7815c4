package viewstate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openinbox/inboxd/interfaces"
	"github.com/openinbox/inboxd/internal/enum"
	"github.com/openinbox/inboxd/internal/logger"
	"github.com/openinbox/inboxd/internal/models"
)

func testLogger(t *testing.T) logger.Logger {
	t.Helper()
	log := logger.NewAppLogger(&logger.Config{DevMode: true})
	log.InitLogger()
	return log
}

func snapshot(id, subject, sender string, date time.Time) models.MessageSnapshot {
	return models.MessageSnapshot{
		ID:          id,
		ThreadID:    "thread-" + id,
		Date:        date,
		Subject:     subject,
		Snippet:     "snippet for " + subject,
		SenderEmail: sender,
		SenderName:  "Jane Doe",
		IsUnread:    true,
		AccountID:   "acc-1",
	}
}

func TestViewStateService_RequestComputesState(t *testing.T) {
	svc := NewViewStateService(testLogger(t))
	svc.Start(context.Background())
	defer svc.Stop()

	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	state, err := svc.Request(context.Background(), interfaces.ViewRequest{
		Messages: []models.MessageSnapshot{
			snapshot("m1", "Lunch on Friday?", "jane@gmail.com", now.Add(-time.Hour)),
			snapshot("m2", "Your receipt from Acme", "billing@acme.com", now.Add(-26*time.Hour)),
		},
		Params:        models.ViewParameters{Tab: enum.TabAll},
		Config:        models.FilterConfig{EnabledRules: models.DefaultEnabledRules()},
		ViewerAccount: "me@example.com",
		Now:           now,
	})
	require.NoError(t, err)

	require.Len(t, state.Sections, 2)
	assert.Equal(t, "Today", state.Sections[0].Title)
	assert.Equal(t, "Yesterday", state.Sections[1].Title)
	assert.Equal(t, 2, state.Counts[enum.FilterUnread])
	assert.Equal(t, 1, state.Counts[enum.FilterMoney])

	current, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, state, current)
}

func TestViewStateService_RequestNotRunning(t *testing.T) {
	svc := NewViewStateService(testLogger(t))

	_, err := svc.Request(context.Background(), interfaces.ViewRequest{})
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestViewStateService_SupersededRequestNotPublished(t *testing.T) {
	svc := NewViewStateService(testLogger(t)).(*viewStateService)

	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	older := interfaces.ViewRequest{
		Messages:      []models.MessageSnapshot{snapshot("m1", "older view", "a@gmail.com", now)},
		Params:        models.ViewParameters{Tab: enum.TabAll},
		ViewerAccount: "me@example.com",
		Now:           now,
	}
	newer := older
	newer.Messages = []models.MessageSnapshot{snapshot("m2", "newer view", "b@gmail.com", now)}

	// Queue both before the worker runs so the first is already superseded
	// when it is computed.
	svc.requests <- workItem{generation: svc.generation.Add(1), request: older}
	svc.requests <- workItem{generation: svc.generation.Add(1), request: newer}
	svc.started.Store(true)

	go svc.run(context.Background())
	defer svc.Stop()

	require.Eventually(t, func() bool {
		_, ok := svc.Current()
		return ok
	}, time.Second, 5*time.Millisecond)

	state, ok := svc.Current()
	require.True(t, ok)
	require.Len(t, state.Sections, 1)
	require.Len(t, state.Sections[0].Messages, 1)
	assert.Equal(t, "newer view", state.Sections[0].Messages[0].Subject)
}

func TestViewStateService_SubscribeReceivesPublishedState(t *testing.T) {
	svc := NewViewStateService(testLogger(t))
	svc.Start(context.Background())
	defer svc.Stop()

	updates, cancel := svc.Subscribe()
	defer cancel()

	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	svc.Submit(interfaces.ViewRequest{
		Messages:      []models.MessageSnapshot{snapshot("m1", "hello there", "jane@gmail.com", now)},
		Params:        models.ViewParameters{Tab: enum.TabAll},
		ViewerAccount: "me@example.com",
		Now:           now,
	})

	select {
	case state := <-updates:
		require.Len(t, state.Sections, 1)
		assert.Equal(t, "hello there", state.Sections[0].Messages[0].Subject)
	case <-time.After(time.Second):
		t.Fatal("no view state published")
	}
}

func TestViewStateService_BundlesOnlyOnPrimary(t *testing.T) {
	svc := NewViewStateService(testLogger(t))
	svc.Start(context.Background())
	defer svc.Stop()

	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	promo := snapshot("m1", "40% off everything", "deals@shop.com", now)
	promo.Labels = []string{enum.LabelCategoryPromotions}

	req := interfaces.ViewRequest{
		Messages:      []models.MessageSnapshot{promo},
		Params:        models.ViewParameters{Tab: enum.TabPrimary},
		Config:        models.FilterConfig{EnabledRules: models.DefaultEnabledRules()},
		ViewerAccount: "me@example.com",
		Now:           now,
	}

	state, err := svc.Request(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, state.Bundles, 1)
	assert.Equal(t, enum.BundlePromotions, state.Bundles[0].Category)
	assert.Equal(t, 1, state.Bundles[0].TotalCount)

	req.Params.Tab = enum.TabAll
	state, err = svc.Request(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, state.Bundles)
}
