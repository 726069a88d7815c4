package interfaces

import (
	"context"
	"time"

	"github.com/openinbox/inboxd/internal/models"
)

// ViewRequest is one full snapshot of messages plus view parameters handed to
// the view-state worker. The worker never reaches back into caller-owned
// state; everything it needs rides in the request.
type ViewRequest struct {
	Messages      []models.MessageSnapshot
	Params        models.ViewParameters
	Config        models.FilterConfig
	ViewerAccount string

	// Now anchors date bucketing; zero means time.Now() at computation.
	Now time.Time
}

// ViewStateService owns the classification cache and turns snapshots into
// ViewStates on a dedicated goroutine. Publication is latest-request-wins: a
// result whose request was superseded is returned to its caller but never
// published to subscribers.
type ViewStateService interface {
	Start(ctx context.Context)
	Stop()

	// Request computes a ViewState for the given snapshot, waiting for the
	// worker. It is the synchronous path used by API handlers.
	Request(ctx context.Context, req ViewRequest) (models.ViewState, error)

	// Submit enqueues a computation without waiting, used by background
	// refresh paths. Superseded submissions are silently discarded.
	Submit(req ViewRequest)

	// Current returns the most recently published ViewState, if any.
	Current() (models.ViewState, bool)

	// Subscribe registers for published ViewStates. The returned cancel
	// function must be called to release the subscription.
	Subscribe() (<-chan models.ViewState, func())
}
