package viewstate

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"

	"github.com/openinbox/inboxd/interfaces"
	"github.com/openinbox/inboxd/internal/classify"
	"github.com/openinbox/inboxd/internal/enum"
	"github.com/openinbox/inboxd/internal/inbox"
	"github.com/openinbox/inboxd/internal/logger"
	"github.com/openinbox/inboxd/internal/models"
	"github.com/openinbox/inboxd/internal/tracing"
)

var (
	ErrNotRunning = errors.New("view-state worker is not running")
)

// requestQueueSize bounds pending computations. Background submissions
// coalesce when the queue is full, so the bound is never a hard limit for
// synchronous callers.
const requestQueueSize = 16

type workItem struct {
	generation uint64
	request    interfaces.ViewRequest
	reply      chan models.ViewState
}

type viewStateService struct {
	log   logger.Logger
	cache *classify.Cache

	// generation stamps every incoming request; the worker publishes a result
	// only when its request is still the latest, so a stale computation can
	// never overwrite a newer one.
	generation atomic.Uint64

	requests chan workItem

	started atomic.Bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	mu          sync.RWMutex
	current     models.ViewState
	hasCurrent  bool
	subscribers map[uint64]chan models.ViewState
	nextSubID   uint64
}

func NewViewStateService(log logger.Logger) interfaces.ViewStateService {
	return &viewStateService{
		log:         log,
		cache:       classify.NewCache(),
		requests:    make(chan workItem, requestQueueSize),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
		subscribers: make(map[uint64]chan models.ViewState),
	}
}

func (s *viewStateService) Start(ctx context.Context) {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	go s.run(ctx)
}

func (s *viewStateService) Stop() {
	if !s.started.Load() {
		return
	}
	close(s.stopCh)
	<-s.doneCh
}

func (s *viewStateService) Request(ctx context.Context, req interfaces.ViewRequest) (models.ViewState, error) {
	if !s.started.Load() {
		return models.ViewState{}, ErrNotRunning
	}

	item := workItem{
		generation: s.generation.Add(1),
		request:    req,
		reply:      make(chan models.ViewState, 1),
	}

	select {
	case s.requests <- item:
	case <-ctx.Done():
		return models.ViewState{}, ctx.Err()
	case <-s.stopCh:
		return models.ViewState{}, ErrNotRunning
	}

	select {
	case state := <-item.reply:
		return state, nil
	case <-ctx.Done():
		return models.ViewState{}, ctx.Err()
	case <-s.stopCh:
		return models.ViewState{}, ErrNotRunning
	}
}

func (s *viewStateService) Submit(req interfaces.ViewRequest) {
	if !s.started.Load() {
		return
	}

	item := workItem{
		generation: s.generation.Add(1),
		request:    req,
	}

	select {
	case s.requests <- item:
		return
	default:
	}

	// Queue full: drop the oldest pending item to make room. The dropped item
	// was already superseded by this one, so nothing user-visible is lost.
	select {
	case stale := <-s.requests:
		if stale.reply != nil {
			// A synchronous caller is waiting on it; keep it queued instead.
			select {
			case s.requests <- stale:
			default:
			}
		}
	default:
	}

	select {
	case s.requests <- item:
	default:
		s.log.Warn("view-state queue full, dropping background refresh")
	}
}

func (s *viewStateService) Current() (models.ViewState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.hasCurrent
}

func (s *viewStateService) Subscribe() (<-chan models.ViewState, func()) {
	ch := make(chan models.ViewState, 1)

	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// run is the single worker loop. It owns the classification cache exclusively;
// every request is computed and answered, but only the latest one is
// published.
func (s *viewStateService) run(ctx context.Context) {
	defer close(s.doneCh)
	defer tracing.RecoverAndLog(s.log)

	for {
		select {
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		case item := <-s.requests:
			state := s.compute(ctx, item.request)

			if item.reply != nil {
				item.reply <- state
			}

			if item.generation == s.generation.Load() {
				s.publish(state)
			} else {
				s.log.Debugf("view-state generation %d superseded, not publishing", item.generation)
			}
		}
	}
}

func (s *viewStateService) compute(ctx context.Context, req interfaces.ViewRequest) models.ViewState {
	span, _ := tracing.StartTracerSpan(ctx, "ViewStateService.compute")
	defer span.Finish()
	tracing.TagComponentWorker(span)
	tracing.TagAccount(span, req.ViewerAccount)

	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	classifications, recomputed := s.cache.Rebuild(req.Messages, req.ViewerAccount)
	span.LogFields(log.Int("messages", len(req.Messages)), log.Int("classified", recomputed))

	visible := inbox.ApplyFilters(req.Messages, classifications, req.Params, req.Config)

	state := models.ViewState{
		Sections: inbox.BuildSections(visible, now),
		Counts:   inbox.Counts(req.Messages, classifications, req.Params.Tab, req.Params.PinnedOption, req.Config),
	}

	// Bundles belong to the plain Primary view only; a drill-in or a non-Primary
	// tab shows none.
	if req.Params.Tab == enum.TabPrimary && req.Params.ViewingCategory == nil {
		state.Bundles = inbox.BuildBundles(inbox.RemoveBlocked(req.Messages, req.Config))
	}

	return state
}

func (s *viewStateService) publish(state models.ViewState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = state
	s.hasCurrent = true

	for _, ch := range s.subscribers {
		// Replace any unconsumed state so slow subscribers always see the
		// newest one next.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- state:
		default:
		}
	}
}
