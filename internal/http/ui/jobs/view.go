// Package jobs builds the view models for the job review list and its cards.
package jobs

import (
	"net/url"
	"strings"
	"time"

	"github.com/jobpilot/jobreview/internal/domain/card"
	"github.com/jobpilot/jobreview/internal/domain/listing"
	"github.com/jobpilot/jobreview/internal/domain/model"
	"github.com/jobpilot/jobreview/internal/http/ui/viewmodel"
)

// Card is a single job ad rendered as a collapsible card.
type Card struct {
	ID          string
	Title       string
	Company     string
	Description string
	Link        string
	AddedAt     time.Time
	Expanded    bool
	Processing  bool
}

// NewCard combines a job ad with its card state.
func NewCard(job model.JobAd, st card.State) Card {
	return Card{
		ID:          job.ID,
		Title:       job.Title,
		Company:     job.Company,
		Description: job.Description,
		Link:        job.Link,
		AddedAt:     job.AddedAt(),
		Expanded:    st.Expanded,
		Processing:  st.Processing,
	}
}

// Heading is the card header text.
func (c Card) Heading() string {
	if c.Company == "" {
		return c.Title
	}
	return c.Title + ", " + c.Company
}

// DOMID is the element id of the card, safe for use in CSS selectors.
func (c Card) DOMID() string {
	var b strings.Builder
	b.WriteString("job-")
	for _, r := range c.ID {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// ToggleURL is the endpoint that expands or collapses the card.
func (c Card) ToggleURL() string {
	return "/jobs/" + url.PathEscape(c.ID) + "/toggle"
}

// DecisionURL is the endpoint that records a decision.
func (c Card) DecisionURL() string {
	return "/jobs/" + url.PathEscape(c.ID) + "/decision"
}

// ButtonsDisabled reports whether the Applied/Declined buttons render disabled.
func (c Card) ButtonsDisabled() bool {
	return c.Processing
}

// List is the rendered state of a review session's list view.
type List struct {
	Cards  []Card
	Pager  viewmodel.Pager
	Errors []string
	// LoadingInitial is true until the first page and count have landed.
	LoadingInitial bool
	// LoadingMore is true while a later page is being fetched.
	LoadingMore bool
	// Blocked hides the list when the first page could not be loaded.
	Blocked bool
	Empty   bool
}

// FromState builds the list view model from a session's list state.
func FromState(st *listing.State) List {
	if st == nil {
		return List{LoadingInitial: true, Pager: viewmodel.Pager{Page: 1}}
	}

	cards := make([]Card, 0, len(st.Items))
	for _, job := range st.Items {
		cards = append(cards, NewCard(job, st.Card(job.ID)))
	}

	list := List{
		Cards:  cards,
		Errors: st.Errors(),
		Pager: viewmodel.Pager{
			Page:     st.Page,
			LastPage: st.LastPage(),
			HasPrev:  st.CanPrev(),
			HasNext:  st.CanNext(),
			Loading:  st.Loading(),
		},
		LoadingInitial: st.Status == listing.StatusLoadingInitial || st.Status == listing.StatusIdle,
		LoadingMore:    st.Status == listing.StatusLoadingMore,
	}
	list.Blocked = st.LoadError != "" && len(cards) == 0
	list.Empty = !list.LoadingInitial && !list.Blocked && len(cards) == 0
	return list
}
