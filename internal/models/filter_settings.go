package models

import (
	"time"

	"github.com/lib/pq"

	"github.com/openinbox/inboxd/internal/enum"
)

// FilterSettings is the stored form of an account's FilterConfig.
type FilterSettings struct {
	AccountID      string         `gorm:"column:account_id;type:varchar(50);primaryKey"`
	BlockedSenders pq.StringArray `gorm:"column:blocked_senders;type:text[]"`
	AlwaysPrimary  pq.StringArray `gorm:"column:always_primary;type:text[]"`
	AlwaysOther    pq.StringArray `gorm:"column:always_other;type:text[]"`
	VIPSenders     pq.StringArray `gorm:"column:vip_senders;type:text[]"`
	EnabledRules   pq.StringArray `gorm:"column:enabled_rules;type:text[]"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:current_timestamp"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:current_timestamp"`
}

func (FilterSettings) TableName() string {
	return "filter_settings"
}

// Config materializes the stored row into the value the engine consumes.
// Unknown rule names are ignored. An empty rule list means every rule is
// disabled; accounts that never saved settings have no row at all and get
// DefaultEnabledRules at load time instead.
func (s *FilterSettings) Config() FilterConfig {
	cfg := FilterConfig{
		BlockedSenders: append([]string(nil), s.BlockedSenders...),
		AlwaysPrimary:  append([]string(nil), s.AlwaysPrimary...),
		AlwaysOther:    append([]string(nil), s.AlwaysOther...),
		VIPSenders:     append([]string(nil), s.VIPSenders...),
	}

	cfg.EnabledRules = make(map[enum.RuleKind]bool, len(s.EnabledRules))
	for _, name := range s.EnabledRules {
		if rule, ok := enum.DecodeRuleKind(name); ok {
			cfg.EnabledRules[rule] = true
		}
	}
	return cfg
}
