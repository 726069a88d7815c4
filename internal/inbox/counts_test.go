package inbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openinbox/inboxd/internal/enum"
)

func TestCounts_AllTab(t *testing.T) {
	msgs, classifications := fixture()

	counts := Counts(msgs, classifications, enum.TabAll, "", defaultConfig())

	// Every drawer filter is present, zero or not.
	require.Len(t, counts, len(enum.DrawerFilters()))
	assert.Equal(t, 3, counts[enum.FilterUnread])
	assert.Equal(t, 1, counts[enum.FilterNeedsReply])
	assert.Equal(t, 1, counts[enum.FilterMoney])
	assert.Equal(t, 1, counts[enum.FilterNewsletters])
	assert.Equal(t, 0, counts[enum.FilterDeadlines])
}

func TestCounts_ScopedToTab(t *testing.T) {
	msgs, classifications := fixture()

	counts := Counts(msgs, classifications, enum.TabPrimary, "", defaultConfig())

	// Only the human and the receipt are in Primary; the newsletter's unread
	// and newsletter counts disappear.
	assert.Equal(t, 2, counts[enum.FilterUnread])
	assert.Equal(t, 1, counts[enum.FilterMoney])
	assert.Equal(t, 0, counts[enum.FilterNewsletters])
}

func TestCounts_ExcludeBlockedSenders(t *testing.T) {
	msgs, classifications := fixture()
	cfg := defaultConfig()
	cfg.BlockedSenders = []string{"jane@gmail.com"}

	counts := Counts(msgs, classifications, enum.TabAll, "", cfg)

	assert.Equal(t, 2, counts[enum.FilterUnread])
	assert.Equal(t, 0, counts[enum.FilterNeedsReply])
}

func TestCounts_PinnedTabUsesPinnedOption(t *testing.T) {
	msgs, classifications := fixture()

	counts := Counts(msgs, classifications, enum.TabPinned, enum.PinnedMoney, defaultConfig())

	// Scope is the single money message.
	assert.Equal(t, 1, counts[enum.FilterUnread])
	assert.Equal(t, 1, counts[enum.FilterMoney])
	assert.Equal(t, 0, counts[enum.FilterNeedsReply])
}

func TestCounts_Empty(t *testing.T) {
	counts := Counts(nil, nil, enum.TabAll, "", defaultConfig())

	require.Len(t, counts, len(enum.DrawerFilters()))
	for filter, count := range counts {
		assert.Zerof(t, count, "filter %s", filter)
	}
}
