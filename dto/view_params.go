package dto

import (
	"github.com/pkg/errors"

	"github.com/openinbox/inboxd/internal/enum"
	"github.com/openinbox/inboxd/internal/models"
	"github.com/openinbox/inboxd/internal/utils"
)

// ViewQuery carries the user-chosen view knobs as query parameters.
type ViewQuery struct {
	Tab      string `form:"tab"`
	Pinned   string `form:"pinned"`
	Filter   string `form:"filter"`
	Search   string `form:"q"`
	Category string `form:"category"`
}

// ToViewParameters validates and converts the raw query into pipeline
// parameters. Blank values fall back to the All tab with no filter.
func (q ViewQuery) ToViewParameters() (models.ViewParameters, error) {
	params := models.ViewParameters{
		Tab: enum.TabAll,
	}

	if q.Tab != "" {
		tab, ok := enum.DecodeTab(q.Tab)
		if !ok {
			return params, errors.Errorf("unknown tab: %s", q.Tab)
		}
		params.Tab = tab
	}

	if q.Pinned != "" {
		option, ok := enum.DecodePinnedOption(q.Pinned)
		if !ok {
			return params, errors.Errorf("unknown pinned option: %s", q.Pinned)
		}
		params.PinnedOption = option
	}

	if q.Filter != "" {
		filter, ok := enum.DecodeDrawerFilter(q.Filter)
		if !ok {
			return params, errors.Errorf("unknown filter: %s", q.Filter)
		}
		params.DrawerFilter = utils.Ptr(filter)
	}

	if q.Category != "" {
		category, ok := enum.DecodeBundleCategory(q.Category)
		if !ok {
			return params, errors.Errorf("unknown category: %s", q.Category)
		}
		params.ViewingCategory = utils.Ptr(category)
	}

	if params.Tab == enum.TabPinned && params.PinnedOption == "" {
		params.PinnedOption = enum.PinnedOther
	}

	params.Search = models.ParseSearch(q.Search)

	return params, nil
}
