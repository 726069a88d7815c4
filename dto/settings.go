package dto

import (
	"github.com/pkg/errors"

	"github.com/openinbox/inboxd/internal/enum"
	"github.com/openinbox/inboxd/internal/models"
)

type FilterSettingsRequest struct {
	BlockedSenders []string `json:"blockedSenders"`
	AlwaysPrimary  []string `json:"alwaysPrimary"`
	AlwaysOther    []string `json:"alwaysOther"`
	VIPSenders     []string `json:"vipSenders"`
	EnabledRules   []string `json:"enabledRules"`
}

// ToModel validates rule names and builds the storable settings row. An
// omitted enabledRules field keeps the default rule set; an explicit empty
// list disables every rule.
func (r FilterSettingsRequest) ToModel(accountID string) (*models.FilterSettings, error) {
	for _, name := range r.EnabledRules {
		if _, ok := enum.DecodeRuleKind(name); !ok {
			return nil, errors.Errorf("unknown rule: %s", name)
		}
	}

	rules := r.EnabledRules
	if rules == nil {
		defaults := models.DefaultEnabledRules()
		for _, rule := range enum.RuleKinds() {
			if defaults[rule] {
				rules = append(rules, rule.String())
			}
		}
	}

	return &models.FilterSettings{
		AccountID:      accountID,
		BlockedSenders: r.BlockedSenders,
		AlwaysPrimary:  r.AlwaysPrimary,
		AlwaysOther:    r.AlwaysOther,
		VIPSenders:     r.VIPSenders,
		EnabledRules:   rules,
	}, nil
}

type FilterSettingsResponse struct {
	AccountID      string   `json:"accountId"`
	BlockedSenders []string `json:"blockedSenders"`
	AlwaysPrimary  []string `json:"alwaysPrimary"`
	AlwaysOther    []string `json:"alwaysOther"`
	VIPSenders     []string `json:"vipSenders"`
	EnabledRules   []string `json:"enabledRules"`
}

func MapFilterConfig(accountID string, cfg models.FilterConfig) FilterSettingsResponse {
	rules := make([]string, 0, len(cfg.EnabledRules))
	for _, rule := range enum.RuleKinds() {
		if cfg.EnabledRules[rule] {
			rules = append(rules, rule.String())
		}
	}

	return FilterSettingsResponse{
		AccountID:      accountID,
		BlockedSenders: emptyIfNil(cfg.BlockedSenders),
		AlwaysPrimary:  emptyIfNil(cfg.AlwaysPrimary),
		AlwaysOther:    emptyIfNil(cfg.AlwaysOther),
		VIPSenders:     emptyIfNil(cfg.VIPSenders),
		EnabledRules:   rules,
	}
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
