package models

import (
	"github.com/openinbox/inboxd/internal/enum"
)

// ViewParameters are the user-chosen knobs that shape the inbox view.
// ViewingCategory is mutually exclusive with the tab/drawer/search pipeline:
// when set, the view is a plain drill-in into that label category.
type ViewParameters struct {
	Tab             enum.Tab
	PinnedOption    enum.PinnedOption
	DrawerFilter    *enum.DrawerFilter
	Search          *SearchFilter
	ViewingCategory *enum.BundleCategory
}

// FilterConfig is the per-account configuration consumed (never owned) by the
// tab/filter engine. Callers source it from whatever persistence they prefer;
// the engine reads no ambient state.
type FilterConfig struct {
	BlockedSenders []string
	AlwaysPrimary  []string
	AlwaysOther    []string
	VIPSenders     []string
	EnabledRules   map[enum.RuleKind]bool
}

// DefaultEnabledRules is the rule set applied when an account has never
// configured Primary-tab rules.
func DefaultEnabledRules() map[enum.RuleKind]bool {
	return map[enum.RuleKind]bool{
		enum.RulePeople:    true,
		enum.RuleVIP:       true,
		enum.RuleSecurity:  true,
		enum.RuleMoney:     true,
		enum.RuleDeadlines: true,
	}
}

// RuleEnabled reports whether a rule participates in Primary membership.
func (c FilterConfig) RuleEnabled(rule enum.RuleKind) bool {
	return c.EnabledRules[rule]
}

// EmailSection is one date-tiered display group of the inbox.
type EmailSection struct {
	ID       string
	Title    string
	Messages []MessageSnapshot
}

// CategoryBundle is the collapsed summary row for one non-Primary category.
type CategoryBundle struct {
	Category    enum.BundleCategory
	UnreadCount int
	TotalCount  int
	Latest      *MessageSnapshot
}

// ViewState is the immutable output of one view computation. A new ViewState
// replaces the previous one wholesale; consumers never see partial updates.
type ViewState struct {
	Sections []EmailSection
	Counts   map[enum.DrawerFilter]int
	Bundles  []CategoryBundle
}
