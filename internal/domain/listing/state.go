// Package listing implements the list view state machine: paging cursors, the accumulated
// listing set, and the per-card view state held for one review session.
//
//	idle -> loading-initial -> {has-items | empty | errored}
//	has-items -> loading-more -> {has-items | empty | errored}
//
// State is a plain value so it can be persisted between requests by any state store.
package listing

import (
	"errors"
	"time"

	"github.com/jobpilot/jobreview/internal/domain/card"
	"github.com/jobpilot/jobreview/internal/domain/model"
)

// Status is the lifecycle position of a list view.
type Status string

const (
	StatusIdle           Status = "idle"
	StatusLoadingInitial Status = "loading-initial"
	StatusHasItems       Status = "has-items"
	StatusEmpty          Status = "empty"
	StatusErrored        Status = "errored"
	StatusLoadingMore    Status = "loading-more"
)

// Page-level messages shown when a load fails.
const (
	MsgLoadFailed  = "Failed to load jobs."
	MsgCountFailed = "Failed to load job count."
)

var (
	// ErrAlreadyMounted is returned by BeginMount after the first mount of a session.
	ErrAlreadyMounted = errors.New("list view already mounted")
	// ErrLoadInProgress is returned when a page change is requested while a load is in flight.
	ErrLoadInProgress = errors.New("a page load is already in progress")
	// ErrPageOutOfRange is returned for page changes past either bound.
	ErrPageOutOfRange = errors.New("page out of range")
)

// DefaultLoadTimeout is how long a load may stay in flight before the guard lets a new one start.
const DefaultLoadTimeout = time.Minute

// State is the list view of one review session.
type State struct {
	// Generation changes on every reset; loads started under an older generation are dropped.
	Generation int64  `json:"generation"`
	Status     Status `json:"status"`
	Mounted    bool   `json:"mounted"`

	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Count    int `json:"count"`

	// Cursors[i] is the exclusive start token for page i+1. Cursors[0] is always empty.
	// A page without an entry has no known start token (the store reported the end).
	Cursors []string `json:"cursors"`

	Items   []model.JobAd         `json:"items"`
	Removed map[string]bool       `json:"removed,omitempty"`
	Cards   map[string]card.State `json:"cards,omitempty"`

	LoadError  string `json:"load_error,omitempty"`
	CountError string `json:"count_error,omitempty"`

	// LoadingSince is the unix time the in-flight load started, zero when idle.
	LoadingSince int64 `json:"loading_since,omitempty"`
	// PendingPage is the page an in-flight load will land on.
	PendingPage int `json:"pending_page,omitempty"`
	// LoadSeq identifies the most recently started load.
	LoadSeq int64 `json:"load_seq,omitempty"`
}

// New returns an idle, unmounted list view.
func New(pageSize int) *State {
	return &State{
		Status:   StatusIdle,
		Page:     1,
		PageSize: pageSize,
		Cursors:  []string{""},
		Removed:  map[string]bool{},
		Cards:    map[string]card.State{},
	}
}

// Reset discards everything but the page size and moves to the next generation.
func (s *State) Reset() {
	next := New(s.PageSize)
	next.Generation = s.Generation + 1
	*s = *next
}

// LastPage is ceil(Count / PageSize); zero when nothing is unprocessed or the count is unknown.
func (s *State) LastPage() int {
	if s.PageSize <= 0 || s.Count <= 0 {
		return 0
	}
	return (s.Count + s.PageSize - 1) / s.PageSize
}

// CanPrev reports whether the Previous control is enabled.
func (s *State) CanPrev() bool {
	return s.Page > 1
}

// CanNext reports whether the Next control is enabled: there is a later page by count and the
// store handed back a continuation token to reach it.
func (s *State) CanNext() bool {
	return s.Page < s.LastPage() && s.hasCursorFor(s.Page+1)
}

// Loading reports whether a load is in flight.
func (s *State) Loading() bool {
	return s.Status == StatusLoadingInitial || s.Status == StatusLoadingMore
}

// Stalled reports whether a load has been in flight for longer than timeout.
func (s *State) Stalled(now time.Time, timeout time.Duration) bool {
	return s.Loading() && s.loadExpired(now, timeout)
}

// Errors returns the page-level messages to display, initial/page load first.
func (s *State) Errors() []string {
	var msgs []string
	if s.LoadError != "" {
		msgs = append(msgs, s.LoadError)
	}
	if s.CountError != "" {
		msgs = append(msgs, s.CountError)
	}
	return msgs
}

// Card returns the view state of a listing card.
func (s *State) Card(id string) card.State {
	return s.Cards[id]
}

// SetCard stores a card's view state, dropping it when back to the default.
func (s *State) SetCard(id string, c card.State) {
	if s.Cards == nil {
		s.Cards = map[string]card.State{}
	}
	if c.IsZero() {
		delete(s.Cards, id)
		return
	}
	s.Cards[id] = c
}

// Has reports whether the listing is currently held.
func (s *State) Has(id string) bool {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return true
		}
	}
	return false
}

// Item returns a held listing by id.
func (s *State) Item(id string) (model.JobAd, bool) {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return s.Items[i], true
		}
	}
	return model.JobAd{}, false
}

// BeginMount moves an unmounted view into loading-initial. It succeeds once per generation.
func (s *State) BeginMount(now time.Time) error {
	if s.Mounted {
		return ErrAlreadyMounted
	}
	s.Mounted = true
	s.Status = StatusLoadingInitial
	s.LoadingSince = now.Unix()
	s.PendingPage = 1
	s.LoadSeq++
	return nil
}

// InitialResult carries the outcome of the two first-mount requests.
type InitialResult struct {
	Page     model.JobAdPage
	PageErr  error
	Count    int
	CountErr error
}

// ApplyInitial lands the first-mount results. The two failures are recorded independently.
func (s *State) ApplyInitial(res InitialResult) {
	s.finishLoad()
	if res.CountErr != nil {
		s.CountError = MsgCountFailed
	} else {
		s.Count = res.Count
		s.CountError = ""
	}
	if res.PageErr != nil {
		s.LoadError = MsgLoadFailed
	} else {
		s.LoadError = ""
		s.Page = 1
		s.merge(res.Page.Items)
		s.recordCursor(1, res.Page.Next)
	}
	s.settle()
}

// BeginPage starts a move to target and returns the start token to query with.
// A load stuck for longer than timeout no longer blocks.
func (s *State) BeginPage(target int, now time.Time, timeout time.Duration) (string, error) {
	if s.Loading() && !s.loadExpired(now, timeout) {
		return "", ErrLoadInProgress
	}
	if target < 1 || target == s.Page {
		return "", ErrPageOutOfRange
	}
	if target > s.Page && target > s.LastPage() {
		return "", ErrPageOutOfRange
	}
	if !s.hasCursorFor(target) {
		return "", ErrPageOutOfRange
	}
	s.Status = StatusLoadingMore
	s.LoadingSince = now.Unix()
	s.PendingPage = target
	s.LoadSeq++
	return s.Cursors[target-1], nil
}

// Awaits reports whether the load numbered seq in generation gen is still the one in flight.
// Completions for anything else are stale and must be dropped.
func (s *State) Awaits(gen, seq int64) bool {
	return s.Generation == gen && s.LoadSeq == seq && s.Loading()
}

// ApplyPage lands a page load started with BeginPage. Results are appended, never replacing
// held items; listings already held or already decided are skipped.
func (s *State) ApplyPage(target int, page model.JobAdPage) {
	s.finishLoad()
	s.LoadError = ""
	s.Page = target
	s.merge(page.Items)
	s.recordCursor(target, page.Next)
	s.settle()
}

// FailPage records a failed page load; the current page is unchanged.
func (s *State) FailPage() {
	s.finishLoad()
	s.LoadError = MsgLoadFailed
	s.settle()
}

// Remove drops a decided listing from the held list and remembers it so later pages do not
// bring it back. Page and count are left as they are.
func (s *State) Remove(id string) {
	kept := s.Items[:0]
	for _, it := range s.Items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.Items = kept
	if s.Removed == nil {
		s.Removed = map[string]bool{}
	}
	s.Removed[id] = true
	delete(s.Cards, id)
	if !s.Loading() {
		s.settle()
	}
}

func (s *State) merge(items []model.JobAd) {
	for _, it := range items {
		if s.Removed[it.ID] || s.Has(it.ID) {
			continue
		}
		s.Items = append(s.Items, it)
	}
}

// recordCursor stores the start token of page+1, or forgets every later start token when
// the store reported the end of the index.
func (s *State) recordCursor(page int, next string) {
	if len(s.Cursors) == 0 {
		s.Cursors = []string{""}
	}
	if next == "" {
		if len(s.Cursors) > page {
			s.Cursors = s.Cursors[:page]
		}
		return
	}
	for len(s.Cursors) <= page {
		s.Cursors = append(s.Cursors, "")
	}
	s.Cursors[page] = next
}

func (s *State) hasCursorFor(page int) bool {
	if page == 1 {
		return true
	}
	return page >= 1 && page <= len(s.Cursors) && s.Cursors[page-1] != ""
}

func (s *State) finishLoad() {
	s.LoadingSince = 0
	s.PendingPage = 0
}

func (s *State) loadExpired(now time.Time, timeout time.Duration) bool {
	if timeout <= 0 || s.LoadingSince == 0 {
		return false
	}
	return now.Sub(time.Unix(s.LoadingSince, 0)) > timeout
}

func (s *State) settle() {
	switch {
	case s.LoadError != "" || s.CountError != "":
		s.Status = StatusErrored
	case len(s.Items) == 0:
		s.Status = StatusEmpty
	default:
		s.Status = StatusHasItems
	}
}
