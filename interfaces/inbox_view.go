package interfaces

import (
	"context"

	"github.com/openinbox/inboxd/internal/enum"
	"github.com/openinbox/inboxd/internal/models"
)

// InboxViewService assembles view requests from stored messages and settings
// and hands them to the view-state worker.
type InboxViewService interface {
	// GetView computes the full view state for the account with the given
	// parameters.
	GetView(ctx context.Context, accountID string, params models.ViewParameters) (models.ViewState, error)

	// GetCounts computes only the per-filter counts for the account's current
	// tab context.
	GetCounts(ctx context.Context, accountID string, tab enum.Tab, pinnedOption enum.PinnedOption) (map[enum.DrawerFilter]int, error)

	// Refresh recomputes and publishes the view state with the account's last
	// used parameters. Background paths (sync, cron) call this.
	Refresh(ctx context.Context, accountID string)

	// GetFilterConfig returns the account's effective filter configuration,
	// defaults applied.
	GetFilterConfig(ctx context.Context, accountID string) (models.FilterConfig, error)

	// UpdateFilterSettings persists new settings and refreshes the view.
	UpdateFilterSettings(ctx context.Context, settings *models.FilterSettings) error
}
