package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jobpilot/jobreview/internal/core"
	"github.com/jobpilot/jobreview/internal/domain/card"
	"github.com/jobpilot/jobreview/internal/domain/listing"
	"github.com/jobpilot/jobreview/internal/domain/model"
	apperrors "github.com/jobpilot/jobreview/internal/errors"
	"github.com/jobpilot/jobreview/internal/observability/metrics"
	"github.com/jobpilot/jobreview/internal/observability/statsd"
)

// ErrSessionRequired is returned when an operation is invoked without a session id.
var ErrSessionRequired = errors.New("session id is required")

// Page load kinds, used as metric tags.
const (
	loadInitial = "initial"
	loadNext    = "next"
	loadPrev    = "prev"
)

// ListingServiceConfig tunes paging.
type ListingServiceConfig struct {
	PageSize int
	// LoadTimeout bounds one store load and is how long the loading guard holds.
	LoadTimeout time.Duration
	// Now is the clock; defaults to time.Now.
	Now func() time.Time
}

// ListingServiceOptions groups dependencies for ListingService.
type ListingServiceOptions struct {
	Repo    core.JobAdRepository
	States  core.ListStateStore
	Config  ListingServiceConfig
	Logger  *slog.Logger // optional
	Metrics statsd.Sink  // optional
}

// ListingService drives the list view of each review session: first mount, paging,
// card toggles and removal of decided listings.
type ListingService struct {
	repo        core.JobAdRepository
	states      core.ListStateStore
	pageSize    int
	loadTimeout time.Duration
	now         func() time.Time
	logger      *slog.Logger
	metrics     statsd.Sink
	locks       *sessionLocks
}

// NewListingService constructs a new ListingService.
func NewListingService(opts ListingServiceOptions) *ListingService {
	if opts.Repo == nil {
		panic("JobAdRepository is required")
	}
	if opts.States == nil {
		panic("ListStateStore is required")
	}

	cfg := opts.Config
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = listing.DefaultLoadTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ListingService{
		repo:        opts.Repo,
		states:      opts.States,
		pageSize:    cfg.PageSize,
		loadTimeout: cfg.LoadTimeout,
		now:         cfg.Now,
		logger:      logger.With("component", "listing_service"),
		metrics:     opts.Metrics,
		locks:       newSessionLocks(),
	}
}

// PageSize returns the configured page size.
func (s *ListingService) PageSize() int { return s.pageSize }

// View returns the session's list view without touching the store. A session with no
// state yet gets a fresh idle view.
func (s *ListingService) View(ctx context.Context, sessionID string) (*listing.State, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	return s.loadOrNew(ctx, sessionID)
}

// Mount runs the first load of a session: the first page and the unprocessed count are
// fetched concurrently. Once a session is mounted later calls return the held view.
func (s *ListingService) Mount(ctx context.Context, sessionID string) (*listing.State, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	unlock := s.locks.lock(sessionID)
	st, err := s.loadOrNew(ctx, sessionID)
	if err != nil {
		unlock()
		return nil, err
	}
	if st.Mounted && st.Status == listing.StatusLoadingInitial && st.Stalled(s.now(), s.loadTimeout) {
		s.logger.Warn("initial load stalled, remounting", "session", sessionID)
		st.Reset()
	}
	if err := st.BeginMount(s.now()); err != nil {
		unlock()
		return st, nil
	}
	gen, seq, size := st.Generation, st.LoadSeq, st.PageSize
	if err := s.save(ctx, sessionID, st); err != nil {
		unlock()
		return nil, err
	}
	unlock()

	loadCtx, cancel := s.loadContext(ctx)
	defer cancel()
	res := s.fetchInitial(loadCtx, size)

	return s.commit(ctx, sessionID, gen, seq, loadInitial, func(cur *listing.State) string {
		cur.ApplyInitial(res)
		if res.PageErr != nil || res.CountErr != nil {
			return metrics.ResultError
		}
		return metrics.ResultSuccess
	})
}

// Next loads the following page and appends it to the held list.
func (s *ListingService) Next(ctx context.Context, sessionID string) (*listing.State, error) {
	return s.turn(ctx, sessionID, 1, loadNext)
}

// Prev reloads the preceding page from its recorded start token.
func (s *ListingService) Prev(ctx context.Context, sessionID string) (*listing.State, error) {
	return s.turn(ctx, sessionID, -1, loadPrev)
}

// Reset discards the session's list view and mounts a fresh one. Loads still in flight for
// the discarded view are dropped when they complete.
func (s *ListingService) Reset(ctx context.Context, sessionID string) (*listing.State, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	unlock := s.locks.lock(sessionID)
	st, err := s.loadOrNew(ctx, sessionID)
	if err == nil {
		st.Reset()
		st.PageSize = s.pageSize
		err = s.save(ctx, sessionID, st)
	}
	unlock()
	if err != nil {
		return nil, err
	}
	return s.Mount(ctx, sessionID)
}

// Item returns a held listing and its card state.
func (s *ListingService) Item(ctx context.Context, sessionID, id string) (model.JobAd, card.State, error) {
	if sessionID == "" {
		return model.JobAd{}, card.State{}, ErrSessionRequired
	}
	st, err := s.loadOrNew(ctx, sessionID)
	if err != nil {
		return model.JobAd{}, card.State{}, err
	}
	job, ok := st.Item(id)
	if !ok {
		return model.JobAd{}, card.State{}, apperrors.NotFoundf("job ad %s is not listed", id)
	}
	return job, st.Card(id), nil
}

// UpdateCard applies fn to a held listing's card state and stores the result.
func (s *ListingService) UpdateCard(
	ctx context.Context,
	sessionID, id string,
	fn func(*card.State) error,
) (model.JobAd, card.State, error) {
	if sessionID == "" {
		return model.JobAd{}, card.State{}, ErrSessionRequired
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	st, err := s.loadOrNew(ctx, sessionID)
	if err != nil {
		return model.JobAd{}, card.State{}, err
	}
	job, ok := st.Item(id)
	if !ok {
		return model.JobAd{}, card.State{}, apperrors.NotFoundf("job ad %s is not listed", id)
	}

	c := st.Card(id)
	if err := fn(&c); err != nil {
		return job, st.Card(id), err
	}
	st.SetCard(id, c)
	if err := s.save(ctx, sessionID, st); err != nil {
		return job, c, err
	}
	return job, c, nil
}

// Toggle flips a card between collapsed and expanded.
func (s *ListingService) Toggle(ctx context.Context, sessionID, id string) (model.JobAd, card.State, error) {
	return s.UpdateCard(ctx, sessionID, id, func(c *card.State) error {
		c.Toggle()
		return nil
	})
}

// Remove drops a decided listing from the session's held list. It is never re-added by a
// later page load.
func (s *ListingService) Remove(ctx context.Context, sessionID, id string) error {
	if sessionID == "" {
		return ErrSessionRequired
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	st, err := s.states.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load list state: %w", err)
	}
	if st == nil {
		return nil
	}
	st.Remove(id)
	return s.save(ctx, sessionID, st)
}

// CountSummary is the unprocessed count with its page math.
type CountSummary struct {
	Count    int `json:"count"`
	PageSize int `json:"page_size"`
	LastPage int `json:"last_page"`
}

// Count queries the store for the current unprocessed count.
func (s *ListingService) Count(ctx context.Context) (CountSummary, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return CountSummary{}, fmt.Errorf("count job ads: %w", err)
	}
	view := listing.State{Count: n, PageSize: s.pageSize}
	return CountSummary{Count: n, PageSize: s.pageSize, LastPage: view.LastPage()}, nil
}

func (s *ListingService) turn(ctx context.Context, sessionID string, delta int, kind string) (*listing.State, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	unlock := s.locks.lock(sessionID)
	st, err := s.loadOrNew(ctx, sessionID)
	if err != nil {
		unlock()
		return nil, err
	}
	if !st.Mounted {
		unlock()
		return s.Mount(ctx, sessionID)
	}

	target := st.Page + delta
	cursor, err := st.BeginPage(target, s.now(), s.loadTimeout)
	if err != nil {
		unlock()
		return st, err
	}
	gen, seq, size := st.Generation, st.LoadSeq, st.PageSize
	if err := s.save(ctx, sessionID, st); err != nil {
		unlock()
		return nil, err
	}
	unlock()

	loadCtx, cancel := s.loadContext(ctx)
	defer cancel()
	page, fetchErr := s.repo.FetchPage(loadCtx, model.PageRequest{Size: size, Cursor: cursor})
	if fetchErr != nil {
		s.logger.Error("page load failed", "session", sessionID, "page", target, "error", fetchErr)
	}

	return s.commit(ctx, sessionID, gen, seq, kind, func(cur *listing.State) string {
		if fetchErr != nil {
			cur.FailPage()
			return metrics.ResultError
		}
		cur.ApplyPage(target, *page)
		return metrics.ResultSuccess
	})
}

func (s *ListingService) fetchInitial(ctx context.Context, size int) listing.InitialResult {
	var (
		g   errgroup.Group
		res listing.InitialResult
	)
	// The two requests fail independently, so neither goroutine returns its error to the group.
	g.Go(func() error {
		page, err := s.repo.FetchPage(ctx, model.PageRequest{Size: size})
		if err != nil {
			s.logger.Error("initial page load failed", "error", err)
			res.PageErr = err
			return nil
		}
		res.Page = *page
		return nil
	})
	g.Go(func() error {
		n, err := s.repo.Count(ctx)
		if err != nil {
			s.logger.Error("count load failed", "error", err)
			res.CountErr = err
			return nil
		}
		res.Count = n
		return nil
	})
	_ = g.Wait()
	return res
}

// commit lands a completed load unless the view moved on while it was in flight.
func (s *ListingService) commit(
	ctx context.Context,
	sessionID string,
	gen, seq int64,
	kind string,
	apply func(*listing.State) string,
) (*listing.State, error) {
	ctx = context.WithoutCancel(ctx)

	unlock := s.locks.lock(sessionID)
	defer unlock()

	cur, err := s.loadOrNew(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !cur.Awaits(gen, seq) {
		s.logger.Debug("dropping stale load", "session", sessionID, "kind", kind, "generation", gen)
		metrics.EmitPageLoad(s.metrics, kind, metrics.ResultDropped)
		return cur, nil
	}

	result := apply(cur)
	metrics.EmitPageLoad(s.metrics, kind, result)
	if err := s.save(ctx, sessionID, cur); err != nil {
		return nil, err
	}
	return cur, nil
}

// loadContext detaches store loads from the request so a client navigating away does not
// cancel them; the load timeout still bounds them.
func (s *ListingService) loadContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.loadTimeout)
}

func (s *ListingService) loadOrNew(ctx context.Context, sessionID string) (*listing.State, error) {
	st, err := s.states.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load list state: %w", err)
	}
	if st == nil {
		st = listing.New(s.pageSize)
	}
	return st, nil
}

func (s *ListingService) save(ctx context.Context, sessionID string, st *listing.State) error {
	if err := s.states.Save(ctx, sessionID, st); err != nil {
		return fmt.Errorf("save list state: %w", err)
	}
	return nil
}
