package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/jobpilot/jobreview/internal/domain/card"
	"github.com/jobpilot/jobreview/internal/domain/listing"
	"github.com/jobpilot/jobreview/internal/domain/model"
	apperrors "github.com/jobpilot/jobreview/internal/errors"
	"github.com/jobpilot/jobreview/internal/http/ui/jobs"
)

// jobRemovedPayload accompanies the job:removed event.
type jobRemovedPayload struct {
	ID string `json:"id"`
}

// Jobs serves the review page, mounting the session's list on first visit.
func (h *UIHandlers) Jobs(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	st, err := h.Listing.Mount(r.Context(), sid)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	data := basePageData(r, PageMeta{Title: "Job Review", PageTitle: "Job Review", CurrentPage: PageJobs})
	data["List"] = jobs.FromState(st)
	h.renderPage(w, r, data)
}

// PageNext advances the list one page.
func (h *UIHandlers) PageNext(w http.ResponseWriter, r *http.Request) {
	h.turnPage(w, r, h.Listing.Next)
}

// PagePrev moves the list back one page.
func (h *UIHandlers) PagePrev(w http.ResponseWriter, r *http.Request) {
	h.turnPage(w, r, h.Listing.Prev)
}

// Reload discards the session's list and starts over from page 1.
func (h *UIHandlers) Reload(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	st, err := h.Listing.Reset(r.Context(), sid)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.respondList(w, r, st)
}

type pageTurn func(ctx context.Context, sessionID string) (*listing.State, error)

func (h *UIHandlers) turnPage(w http.ResponseWriter, r *http.Request, turn pageTurn) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	st, err := turn(r.Context(), sid)
	switch {
	case err == nil, errors.Is(err, listing.ErrPageOutOfRange):
		// An out-of-range page re-renders the current list unchanged.
		h.respondList(w, r, st)
	case errors.Is(err, listing.ErrLoadInProgress):
		HTMX(w).Reswap("none")
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "load_in_progress", Err: err})
	default:
		h.serverError(w, r, err)
	}
}

// respondList swaps the list fragment for htmx and redirects plain form posts back to the page.
func (h *UIHandlers) respondList(w http.ResponseWriter, r *http.Request, st *listing.State) {
	if !IsHTMX(r) {
		http.Redirect(w, r, "/jobs", http.StatusSeeOther)
		return
	}
	h.renderFragment(w, r, tmplJobList, map[string]any{
		"List":      jobs.FromState(st),
		"CSRFToken": GetCSRFToken(r),
	})
}

// Toggle expands or collapses one card.
func (h *UIHandlers) Toggle(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	job, st, err := h.Listing.Toggle(r.Context(), sid, r.PathValue("id"))
	switch {
	case err == nil:
		h.respondCard(w, r, job, st)
	case apperrors.IsNotFound(err):
		// The card is no longer listed; an empty swap drops it from the page.
		h.respondGone(w, r)
	default:
		h.serverError(w, r, err)
	}
}

// Decision records Applied or Declined for one card.
func (h *UIHandlers) Decision(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "bad_request", Err: err})
		return
	}
	req := model.DecisionRequest{
		JobID:    r.PathValue("id"),
		Decision: r.FormValue("decision"),
	}

	out, err := h.Decisions.Decide(r.Context(), sid, req)
	switch {
	case err == nil && out.Removed:
		HTMX(w).Trigger(EventJobRemoved, jobRemovedPayload{ID: req.JobID})
		h.respondGone(w, r)
	case err == nil:
		// The write failed; the card comes back with its buttons enabled.
		h.respondCard(w, r, out.Job, out.Card)
	case errors.Is(err, card.ErrDecisionInFlight):
		HTMX(w).Reswap("none")
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "decision_in_flight", Err: err})
	case apperrors.IsNotFound(err):
		h.respondGone(w, r)
	case apperrors.IsValidation(err):
		HTMX(w).Reswap("none")
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation", Err: err})
	default:
		h.serverError(w, r, err)
	}
}

func (h *UIHandlers) respondCard(w http.ResponseWriter, r *http.Request, job model.JobAd, st card.State) {
	if !IsHTMX(r) {
		http.Redirect(w, r, "/jobs", http.StatusSeeOther)
		return
	}
	h.renderFragment(w, r, tmplJobCard, map[string]any{
		"Card":      jobs.NewCard(job, st),
		"CSRFToken": GetCSRFToken(r),
	})
}

func (h *UIHandlers) respondGone(w http.ResponseWriter, r *http.Request) {
	if !IsHTMX(r) {
		http.Redirect(w, r, "/jobs", http.StatusSeeOther)
		return
	}
	HTMX(w).Empty()
}

// sessionID reads the review session id set by the Session middleware.
func (h *UIHandlers) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	sid, ok := SessionIDFromContext(r.Context())
	if !ok || sid == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "session_required"})
		return "", false
	}
	return sid, true
}
