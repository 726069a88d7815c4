package inbox

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openinbox/inboxd/internal/enum"
	"github.com/openinbox/inboxd/internal/models"
)

func labeled(id string, date time.Time, unread bool, labels ...string) models.MessageSnapshot {
	return models.MessageSnapshot{
		ID:          id,
		Date:        date,
		Subject:     "subject " + id,
		SenderEmail: "sender@example.com",
		IsUnread:    unread,
		Labels:      labels,
	}
}

func TestBuildBundles(t *testing.T) {
	now := time.Date(2026, time.March, 13, 12, 0, 0, 0, time.UTC)

	msgs := []models.MessageSnapshot{
		labeled("p1", now.Add(-1*time.Hour), true, enum.LabelCategoryPromotions),
		labeled("p2", now.Add(-2*time.Hour), false, enum.LabelCategoryPromotions),
		labeled("s1", now.Add(-3*time.Hour), true, enum.LabelCategorySocial),
		labeled("u1", now.Add(-4*time.Hour), true, enum.LabelCategoryUpdates),
		labeled("plain", now.Add(-5*time.Hour), true),
	}

	bundles := BuildBundles(msgs)

	// Fixed order, empty categories omitted (no forums here).
	require.Len(t, bundles, 3)
	assert.Equal(t, enum.BundlePromotions, bundles[0].Category)
	assert.Equal(t, enum.BundleSocial, bundles[1].Category)
	assert.Equal(t, enum.BundleUpdates, bundles[2].Category)

	assert.Equal(t, 2, bundles[0].TotalCount)
	assert.Equal(t, 1, bundles[0].UnreadCount)
	require.NotNil(t, bundles[0].Latest)
	assert.Equal(t, "p1", bundles[0].Latest.ID)
}

func TestBuildBundles_MessageCountsOnce(t *testing.T) {
	now := time.Date(2026, time.March, 13, 12, 0, 0, 0, time.UTC)

	// Carries both promotions and social; only the first category in fixed
	// order claims it.
	both := labeled("both", now, true, enum.LabelCategorySocial, enum.LabelCategoryPromotions)

	bundles := BuildBundles([]models.MessageSnapshot{both})

	require.Len(t, bundles, 1)
	assert.Equal(t, enum.BundlePromotions, bundles[0].Category)
	assert.Equal(t, 1, bundles[0].TotalCount)
}

func TestBuildBundles_Empty(t *testing.T) {
	assert.Empty(t, BuildBundles(nil))

	plain := labeled("plain", time.Now(), true)
	assert.Empty(t, BuildBundles([]models.MessageSnapshot{plain}))
}
