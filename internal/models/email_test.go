package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openinbox/inboxd/internal/enum"
)

func TestEmail_Snapshot(t *testing.T) {
	sentAt := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	email := &Email{
		ID:          "e1",
		AccountID:   "acc-1",
		ThreadID:    "root@example.com",
		Subject:     "Quarterly report",
		Snippet:     "attached",
		FromAddress: "jane@acme.com",
		FromName:    "Jane Doe",
		SentAt:      &sentAt,
		IsUnread:    true,
		Labels:      []string{enum.LabelInbox, enum.LabelCategoryPromotions},
		ThreadCount: 3,
	}

	m := email.Snapshot()

	assert.Equal(t, "e1", m.ID)
	assert.Equal(t, sentAt, m.Date)
	assert.Equal(t, "jane@acme.com", m.SenderEmail)
	assert.Equal(t, 3, m.ThreadMessageCount)
	assert.True(t, m.HasLabel(enum.LabelCategoryPromotions))
	assert.False(t, m.HasLabel(enum.LabelCategorySocial))

	// Snapshot labels are a copy, not a view of the row.
	m.Labels[0] = "changed"
	assert.Equal(t, enum.LabelInbox, email.Labels[0])
}

func TestEmail_SnapshotDefaults(t *testing.T) {
	m := (&Email{ID: "e1"}).Snapshot()

	assert.True(t, m.Date.IsZero())
	assert.Equal(t, 1, m.ThreadMessageCount)
}
