package inbox

import (
	"github.com/openinbox/inboxd/internal/classify"
	"github.com/openinbox/inboxd/internal/enum"
	"github.com/openinbox/inboxd/internal/models"
)

// Counts computes the per-drawer-filter counts for the current tab context.
// It runs blocked-sender removal and the tab context but deliberately NOT the
// active drawer filter: a count answers "how many would match filter X if it
// were selected", independent of which filter currently is.
func Counts(
	msgs []models.MessageSnapshot,
	classifications map[string]classify.Classification,
	tab enum.Tab,
	pinnedOption enum.PinnedOption,
	cfg models.FilterConfig,
) map[enum.DrawerFilter]int {
	scoped := tabScope(msgs, classifications, tab, pinnedOption, cfg)

	counts := make(map[enum.DrawerFilter]int, len(enum.DrawerFilters()))
	for _, filter := range enum.DrawerFilters() {
		counts[filter] = 0
	}

	for _, m := range scoped {
		c := classifications[m.ID]
		for _, filter := range enum.DrawerFilters() {
			if matchesDrawerFilter(m, c, filter) {
				counts[filter]++
			}
		}
	}

	return counts
}
