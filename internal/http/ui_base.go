package httpx

import (
	"context"
	"html"
	"log/slog"
	"net/http"

	"github.com/jobpilot/jobreview/internal/domain/card"
	"github.com/jobpilot/jobreview/internal/domain/listing"
	"github.com/jobpilot/jobreview/internal/domain/model"
	"github.com/jobpilot/jobreview/internal/http/ui/viewmodel"
	"github.com/jobpilot/jobreview/internal/service"
)

// ListingUI is the list view surface the UI needs.
type ListingUI interface {
	Mount(ctx context.Context, sessionID string) (*listing.State, error)
	Next(ctx context.Context, sessionID string) (*listing.State, error)
	Prev(ctx context.Context, sessionID string) (*listing.State, error)
	Reset(ctx context.Context, sessionID string) (*listing.State, error)
	Toggle(ctx context.Context, sessionID, id string) (model.JobAd, card.State, error)
	Count(ctx context.Context) (service.CountSummary, error)
}

// DecisionUI records decisions submitted from a card.
type DecisionUI interface {
	Decide(ctx context.Context, sessionID string, req model.DecisionRequest) (service.DecisionOutcome, error)
}

// Compile-time interface assertions to ensure concrete services satisfy their UI interfaces.
var (
	_ ListingUI  = (*service.ListingService)(nil)
	_ DecisionUI = (*service.DecisionService)(nil)
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T         *TemplateRenderer
	Listing   ListingUI
	Decisions DecisionUI
	IsDev     bool // Development mode flag for enhanced error reporting
	Logger    *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// buildLayout constructs shared layout metadata from the request context.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	return viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
	}
}

// basePageData constructs the common page data map.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := buildLayout(r, meta)
	data := map[string]any{
		"Title":       layout.Title,
		"PageTitle":   layout.PageTitle,
		"CurrentPage": layout.CurrentPage,
	}
	if layout.CSRFToken != "" {
		data["CSRFToken"] = layout.CSRFToken
	}
	return data
}

// renderPage renders a full page, or for htmx requests the page content plus out-of-band
// title updates.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if !WantsPartial(r) {
		if err := h.T.RenderFull(w, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	title, _ := data["Title"].(string)
	pageTitle, _ := data["PageTitle"].(string)
	currentPage, _ := data["CurrentPage"].(string)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// Include a <title> element so htmx updates document.title on partial swaps
	if _, err := w.Write([]byte(`<title>` + html.EscapeString(title) + `</title>`)); err != nil {
		h.logger().Error("failed to write partial document title", "error", err)
		return
	}
	if _, err := w.Write([]byte(`<h1 id="header-title" class="header-title" hx-swap-oob="outerHTML">` +
		html.EscapeString(pageTitle) + `</h1>`)); err != nil {
		h.logger().Error("failed to write partial header title", "error", err)
		return
	}
	if err := h.T.Render(w, ContentTemplateFor(currentPage), data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial content render")
	}
}

// renderFragment renders a named partial for htmx swaps.
func (h *UIHandlers) renderFragment(w http.ResponseWriter, r *http.Request, name string, data any) {
	if err := h.T.Render(w, name, data); err != nil {
		h.logAndRenderTemplateError(w, r, err, name)
	}
}

// NotFound renders the 404 page for browsers and a JSON error for API clients.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if !IsBrowserRequest(r) {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found"})
		return
	}
	data := basePageData(r, PageMeta{Title: "Not Found", PageTitle: "Page Not Found", CurrentPage: PageNotFound})
	data["StatusCode"] = http.StatusNotFound
	data["Message"] = "The page you are looking for does not exist."
	if err := h.T.RenderError(w, http.StatusNotFound, data); err != nil {
		h.logger().Error("failed to render not found page", "error", err)
		http.NotFound(w, r)
	}
}

// serverError renders a generic failure without store details.
func (h *UIHandlers) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger().Error("request failed",
		"error", err,
		"path", r.URL.Path,
		"method", r.Method,
	)
	status := DetermineErrorStatus(err)
	if status < http.StatusInternalServerError {
		status = http.StatusInternalServerError
	}
	if WantsPartial(r) {
		http.Error(w, http.StatusText(status), status)
		return
	}
	data := basePageData(r, PageMeta{Title: "Error", PageTitle: "Something went wrong", CurrentPage: PageNotFound})
	data["StatusCode"] = status
	data["Message"] = "An unexpected error occurred. Please try again."
	if renderErr := h.T.RenderError(w, status, data); renderErr != nil {
		http.Error(w, http.StatusText(status), status)
	}
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, context string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"context", context,
		"path", r.URL.Path,
		"method", r.Method,
	)

	if h.IsDev {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		if _, writeErr := w.Write([]byte(`<div class="template-error"><h2>Template Rendering Error</h2>` +
			`<p><strong>Context:</strong> ` + html.EscapeString(context) + `</p>` +
			`<pre>` + html.EscapeString(err.Error()) + `</pre></div>`)); writeErr != nil {
			h.logger().Error("failed to write template error response", "error", writeErr)
		}
		return
	}

	http.Error(w, "internal server error", http.StatusInternalServerError)
}
