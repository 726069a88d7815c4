package inbox

import (
	"sort"

	"github.com/openinbox/inboxd/internal/enum"
	"github.com/openinbox/inboxd/internal/models"
)

// BuildBundles summarizes the non-Primary categories as collapsed rows:
// unread and total counts plus the newest message as preview. Messages are
// scanned newest-first and each contributes to at most one bundle — the first
// category, in fixed order, whose label it carries. Bundles with zero
// messages are omitted.
func BuildBundles(msgs []models.MessageSnapshot) []models.CategoryBundle {
	sorted := make([]models.MessageSnapshot, len(msgs))
	copy(sorted, msgs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	type accumulator struct {
		total  int
		unread int
		latest *models.MessageSnapshot
	}
	accs := make(map[enum.BundleCategory]*accumulator)

	for i := range sorted {
		m := sorted[i]
		for _, category := range enum.BundleCategories() {
			if !m.HasLabel(enum.CategoryLabel(category)) {
				continue
			}
			acc := accs[category]
			if acc == nil {
				acc = &accumulator{}
				accs[category] = acc
			}
			acc.total++
			if m.IsUnread {
				acc.unread++
			}
			if acc.latest == nil {
				preview := m
				acc.latest = &preview
			}
			break
		}
	}

	var bundles []models.CategoryBundle
	for _, category := range enum.BundleCategories() {
		acc := accs[category]
		if acc == nil || acc.total == 0 {
			continue
		}
		bundles = append(bundles, models.CategoryBundle{
			Category:    category,
			UnreadCount: acc.unread,
			TotalCount:  acc.total,
			Latest:      acc.latest,
		})
	}

	return bundles
}
