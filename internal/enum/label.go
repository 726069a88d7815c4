package enum

// Label identifiers as delivered by the mail provider. Category labels are
// Gmail-style; status labels cover the flags we act on.
const (
	LabelCategoryPromotions = "CATEGORY_PROMOTIONS"
	LabelCategorySocial     = "CATEGORY_SOCIAL"
	LabelCategoryUpdates    = "CATEGORY_UPDATES"
	LabelCategoryForums     = "CATEGORY_FORUMS"
	LabelSent               = "SENT"
	LabelUnread             = "UNREAD"
	LabelStarred            = "STARRED"
	LabelInbox              = "INBOX"
)

// CategoryLabel maps a bundle category to its provider label.
func CategoryLabel(category BundleCategory) string {
	switch category {
	case BundlePromotions:
		return LabelCategoryPromotions
	case BundleSocial:
		return LabelCategorySocial
	case BundleUpdates:
		return LabelCategoryUpdates
	case BundleForums:
		return LabelCategoryForums
	}
	return ""
}

// BulkCategoryLabels lists the category labels that mark a message as bulk.
func BulkCategoryLabels() []string {
	return []string{
		LabelCategoryPromotions,
		LabelCategorySocial,
		LabelCategoryUpdates,
		LabelCategoryForums,
	}
}
