package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/jobpilot/jobreview/internal/adapters/memory"
	"github.com/jobpilot/jobreview/internal/domain/model"
	"github.com/jobpilot/jobreview/internal/mocks"
	"github.com/jobpilot/jobreview/internal/testutil"
)

type countSink struct {
	mu     sync.Mutex
	counts []countEntry
}

type countEntry struct {
	name string
	tags map[string]string
}

func (s *countSink) Count(name string, _ int64, tags map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts = append(s.counts, countEntry{name: name, tags: tags})
}

func (s *countSink) Timing(string, time.Duration, map[string]string) {}

// find returns how many counts named name carry every tag in want.
func (s *countSink) find(name string, want map[string]string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
outer:
	for _, c := range s.counts {
		if c.name != name {
			continue
		}
		for k, v := range want {
			if c.tags[k] != v {
				continue outer
			}
		}
		n++
	}
	return n
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type listingFixture struct {
	svc    *ListingService
	repo   *mocks.MockJobAdRepository
	states *memory.ListStateStore
	sink   *countSink
	clock  *clock
}

func newListingFixture(t *testing.T, pageSize int) *listingFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &listingFixture{
		repo:   mocks.NewMockJobAdRepository(ctrl),
		states: memory.NewListStateStore(time.Hour),
		sink:   &countSink{},
		clock:  &clock{now: testutil.TestTime()},
	}
	f.svc = NewListingService(ListingServiceOptions{
		Repo:    f.repo,
		States:  f.states,
		Config:  ListingServiceConfig{PageSize: pageSize, LoadTimeout: time.Minute, Now: f.clock.Now},
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics: f.sink,
	})
	return f
}

// pagedStore serves 45 job ads in pages of 20, keyed by cursor.
func pagedStore(items []model.JobAd) func(context.Context, model.PageRequest) (*model.JobAdPage, error) {
	pages := map[string]model.JobAdPage{
		"":         {Items: items[0:20], Next: "cursor-2"},
		"cursor-2": {Items: items[20:40], Next: "cursor-3"},
		"cursor-3": {Items: items[40:45]},
	}
	return func(_ context.Context, req model.PageRequest) (*model.JobAdPage, error) {
		p := pages[req.Cursor]
		return &p, nil
	}
}
