package enum

// Tab is one of the three top-level inbox views.
type Tab string

const (
	TabAll     Tab = "all"
	TabPrimary Tab = "primary"
	TabPinned  Tab = "pinned"
)

func (t Tab) String() string {
	return string(t)
}

func DecodeTab(s string) (Tab, bool) {
	switch Tab(s) {
	case TabAll, TabPrimary, TabPinned:
		return Tab(s), true
	}
	return "", false
}

// PinnedOption selects the single predicate behind the Pinned tab.
type PinnedOption string

const (
	PinnedOther       PinnedOption = "other"
	PinnedMoney       PinnedOption = "money"
	PinnedDeadlines   PinnedOption = "deadlines"
	PinnedNeedsReply  PinnedOption = "needs_reply"
	PinnedNewsletters PinnedOption = "newsletters"
	PinnedPeople      PinnedOption = "people"
	PinnedUnread      PinnedOption = "unread"
)

func (t PinnedOption) String() string {
	return string(t)
}

func DecodePinnedOption(s string) (PinnedOption, bool) {
	switch PinnedOption(s) {
	case PinnedOther, PinnedMoney, PinnedDeadlines, PinnedNeedsReply,
		PinnedNewsletters, PinnedPeople, PinnedUnread:
		return PinnedOption(s), true
	}
	return "", false
}

// DrawerFilter is the secondary single-select filter applied within a tab.
type DrawerFilter string

const (
	FilterUnread      DrawerFilter = "unread"
	FilterNeedsReply  DrawerFilter = "needs_reply"
	FilterDeadlines   DrawerFilter = "deadlines"
	FilterMoney       DrawerFilter = "money"
	FilterNewsletters DrawerFilter = "newsletters"
)

func (t DrawerFilter) String() string {
	return string(t)
}

// DrawerFilters lists all drawer filters in display order. Counts are always
// produced for every entry.
func DrawerFilters() []DrawerFilter {
	return []DrawerFilter{FilterUnread, FilterNeedsReply, FilterDeadlines, FilterMoney, FilterNewsletters}
}

func DecodeDrawerFilter(s string) (DrawerFilter, bool) {
	switch DrawerFilter(s) {
	case FilterUnread, FilterNeedsReply, FilterDeadlines, FilterMoney, FilterNewsletters:
		return DrawerFilter(s), true
	}
	return "", false
}

// BundleCategory is a non-Primary label category summarized as a single
// collapsed row on the Primary tab.
type BundleCategory string

const (
	BundlePromotions BundleCategory = "promotions"
	BundleSocial     BundleCategory = "social"
	BundleUpdates    BundleCategory = "updates"
	BundleForums     BundleCategory = "forums"
)

func (t BundleCategory) String() string {
	return string(t)
}

// BundleCategories returns categories in their fixed display order. The order
// also decides which bundle claims a message carrying several category labels.
func BundleCategories() []BundleCategory {
	return []BundleCategory{BundlePromotions, BundleSocial, BundleUpdates, BundleForums}
}

func DecodeBundleCategory(s string) (BundleCategory, bool) {
	switch BundleCategory(s) {
	case BundlePromotions, BundleSocial, BundleUpdates, BundleForums:
		return BundleCategory(s), true
	}
	return "", false
}

// RuleKind names a Primary-tab membership rule. Rules are enabled or disabled
// per account; disabled rules never contribute to membership.
type RuleKind string

const (
	RulePeople      RuleKind = "people"
	RuleVIP         RuleKind = "vip"
	RuleSecurity    RuleKind = "security"
	RuleMoney       RuleKind = "money"
	RuleDeadlines   RuleKind = "deadlines"
	RuleNewsletters RuleKind = "newsletters"
	RulePromotions  RuleKind = "promotions"
	RuleSocial      RuleKind = "social"
	RuleForums      RuleKind = "forums"
	RuleUpdates     RuleKind = "updates"
)

func (t RuleKind) String() string {
	return string(t)
}

// RuleKinds returns all rules in display order.
func RuleKinds() []RuleKind {
	return []RuleKind{
		RulePeople, RuleVIP, RuleSecurity, RuleMoney, RuleDeadlines,
		RuleNewsletters, RulePromotions, RuleSocial, RuleForums, RuleUpdates,
	}
}

func DecodeRuleKind(s string) (RuleKind, bool) {
	switch RuleKind(s) {
	case RulePeople, RuleVIP, RuleSecurity, RuleMoney, RuleDeadlines,
		RuleNewsletters, RulePromotions, RuleSocial, RuleForums, RuleUpdates:
		return RuleKind(s), true
	}
	return "", false
}
