// Package inbox implements the view pipeline: tab and filter membership,
// per-filter counts, date-tiered sections and category bundles. Everything is
// pure computation over snapshots plus explicit configuration.
package inbox

import (
	"strings"

	"github.com/openinbox/inboxd/internal/classify"
	"github.com/openinbox/inboxd/internal/enum"
	"github.com/openinbox/inboxd/internal/models"
	"github.com/openinbox/inboxd/internal/utils"
)

// ApplyFilters runs the full filter pipeline in its fixed order:
// blocked-sender removal, tab context, active drawer filter, free-text
// search. When a bundle category is being viewed the pipeline is bypassed
// entirely and the result is a plain label drill-in.
func ApplyFilters(
	msgs []models.MessageSnapshot,
	classifications map[string]classify.Classification,
	params models.ViewParameters,
	cfg models.FilterConfig,
) []models.MessageSnapshot {
	if params.ViewingCategory != nil {
		// Drill-in skips tab, drawer filter and search, but blocked senders
		// stay invisible everywhere.
		return filterByCategory(RemoveBlocked(msgs, cfg), *params.ViewingCategory)
	}

	out := tabScope(msgs, classifications, params.Tab, params.PinnedOption, cfg)

	if params.DrawerFilter != nil {
		filtered := out[:0:0]
		for _, m := range out {
			if matchesDrawerFilter(m, classifications[m.ID], *params.DrawerFilter) {
				filtered = append(filtered, m)
			}
		}
		out = filtered
	}

	if params.Search != nil {
		filtered := out[:0:0]
		for _, m := range out {
			if params.Search.Matches(m) {
				filtered = append(filtered, m)
			}
		}
		out = filtered
	}

	return out
}

// RemoveBlocked drops messages whose sender is on the account's blocked
// list. Blocked senders never surface anywhere: sections, counts or bundles.
func RemoveBlocked(msgs []models.MessageSnapshot, cfg models.FilterConfig) []models.MessageSnapshot {
	blocked := utils.LowerSet(cfg.BlockedSenders)
	if len(blocked) == 0 {
		return msgs
	}

	out := make([]models.MessageSnapshot, 0, len(msgs))
	for _, m := range msgs {
		if _, isBlocked := blocked[strings.ToLower(m.SenderEmail)]; !isBlocked {
			out = append(out, m)
		}
	}
	return out
}

// tabScope applies blocked-sender removal and the tab context, the shared
// prefix of the filter pipeline and the count engine. Counts depend on this
// being exactly the displayed pipeline minus drawer filter and search.
func tabScope(
	msgs []models.MessageSnapshot,
	classifications map[string]classify.Classification,
	tab enum.Tab,
	pinnedOption enum.PinnedOption,
	cfg models.FilterConfig,
) []models.MessageSnapshot {
	msgs = RemoveBlocked(msgs, cfg)

	out := make([]models.MessageSnapshot, 0, len(msgs))
	for _, m := range msgs {
		switch tab {
		case enum.TabPrimary:
			if !belongsToPrimary(m, classifications[m.ID], cfg) {
				continue
			}
		case enum.TabPinned:
			if !matchesPinnedOption(m, classifications[m.ID], pinnedOption, cfg) {
				continue
			}
		}

		out = append(out, m)
	}
	return out
}

// belongsToPrimary decides Primary-tab membership. Manual per-sender
// overrides are consulted first, "always primary" beating "always other";
// after that, membership is a logical OR across the enabled rules only.
func belongsToPrimary(m models.MessageSnapshot, c classify.Classification, cfg models.FilterConfig) bool {
	sender := strings.ToLower(m.SenderEmail)

	if _, ok := utils.LowerSet(cfg.AlwaysPrimary)[sender]; ok {
		return true
	}
	if _, ok := utils.LowerSet(cfg.AlwaysOther)[sender]; ok {
		return false
	}

	if cfg.RuleEnabled(enum.RulePeople) && c.IsPeople {
		return true
	}
	if cfg.RuleEnabled(enum.RuleVIP) {
		if _, ok := utils.LowerSet(cfg.VIPSenders)[sender]; ok {
			return true
		}
	}
	if cfg.RuleEnabled(enum.RuleSecurity) && c.IsSecurity {
		return true
	}
	if cfg.RuleEnabled(enum.RuleMoney) && c.IsMoney {
		return true
	}
	if cfg.RuleEnabled(enum.RuleDeadlines) && c.IsDeadline {
		return true
	}
	if cfg.RuleEnabled(enum.RuleNewsletters) && c.IsNewsletter {
		return true
	}
	if cfg.RuleEnabled(enum.RulePromotions) && m.HasLabel(enum.LabelCategoryPromotions) {
		return true
	}
	if cfg.RuleEnabled(enum.RuleSocial) && m.HasLabel(enum.LabelCategorySocial) {
		return true
	}
	if cfg.RuleEnabled(enum.RuleForums) && m.HasLabel(enum.LabelCategoryForums) {
		return true
	}
	if cfg.RuleEnabled(enum.RuleUpdates) && m.HasLabel(enum.LabelCategoryUpdates) {
		return true
	}

	return false
}

func matchesPinnedOption(m models.MessageSnapshot, c classify.Classification, option enum.PinnedOption, cfg models.FilterConfig) bool {
	switch option {
	case enum.PinnedOther:
		return !belongsToPrimary(m, c, cfg)
	case enum.PinnedMoney:
		return c.IsMoney
	case enum.PinnedDeadlines:
		return c.IsDeadline
	case enum.PinnedNeedsReply:
		return c.IsNeedsReply
	case enum.PinnedNewsletters:
		return c.IsNewsletter
	case enum.PinnedPeople:
		return c.IsPeople
	case enum.PinnedUnread:
		return m.IsUnread
	}
	return false
}

func matchesDrawerFilter(m models.MessageSnapshot, c classify.Classification, filter enum.DrawerFilter) bool {
	switch filter {
	case enum.FilterUnread:
		return m.IsUnread
	case enum.FilterNeedsReply:
		return c.IsNeedsReply
	case enum.FilterDeadlines:
		return c.IsDeadline
	case enum.FilterMoney:
		return c.IsMoney
	case enum.FilterNewsletters:
		return c.IsNewsletter
	}
	return false
}

func filterByCategory(msgs []models.MessageSnapshot, category enum.BundleCategory) []models.MessageSnapshot {
	label := enum.CategoryLabel(category)
	out := make([]models.MessageSnapshot, 0, len(msgs))
	for _, m := range msgs {
		if m.HasLabel(label) {
			out = append(out, m)
		}
	}
	return out
}
