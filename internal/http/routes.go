package httpx

import (
	"bytes"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	jobreview "github.com/jobpilot/jobreview"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Listing   ListingUI
	Decisions DecisionUI
	// Optional: raw page reads for GET /api/jobs. The route is not registered when nil.
	Pager JobPager
	// Optional: overrides the embedded or on-disk templates.
	TemplateFS   fs.FS
	CookieDomain string
	// SessionTTL bounds the review session cookie; it should match the state store TTL.
	SessionTTL time.Duration
	IsDev      bool         // Development mode flag for hot reloading, etc.
	Logger     *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates and configures a new HTTP router with browser middleware.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	api := &APIHandlers{Counter: services.Listing, Pager: services.Pager}
	registerAPIRoutes(mux, api)

	// Static assets at /static
	// Dev mode: serve from disk for hot reloading
	// Prod mode: serve from embedded FS
	mux.Handle("GET /static/", staticWithFallback(services.IsDev))

	uiHandlers := setupUIHandlers(services, logger)
	if uiHandlers != nil {
		cfg := uiRouteConfig{
			CookieDomain: services.CookieDomain,
			SessionTTL:   services.SessionTTL,
		}
		registerUIRoutes(mux, uiHandlers, cfg)
	}

	handler := &notFoundHandler{
		mux:        mux,
		uiHandlers: uiHandlers,
	}

	return Recover(logger)(Logging(logger)(BrowserDetection()(handler)))
}

// templateFS picks the template source: an explicit override, the disk in dev mode, or the
// embedded copy.
func templateFS(services RouterServices) fs.FS {
	if services.TemplateFS != nil {
		return services.TemplateFS
	}
	if services.IsDev {
		return os.DirFS(TemplatePathFromRoot)
	}
	sub, err := fs.Sub(jobreview.TemplateFS, "frontend/templates")
	if err != nil {
		log.Printf("failed to create sub-filesystem for templates: %v; falling back to disk", err)
		return os.DirFS(TemplatePathFromRoot)
	}
	return sub
}

// setupUIHandlers creates UI handlers with a template renderer.
func setupUIHandlers(services RouterServices, logger *slog.Logger) *UIHandlers {
	if services.Listing == nil || services.Decisions == nil {
		return nil
	}
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS(services),
		DevMode:    services.IsDev,
		Logger:     logger,
	})
	if err != nil {
		logger.Error("failed to create template renderer", slog.Any("error", err))
		return nil
	}

	return &UIHandlers{
		T:         tr,
		Listing:   services.Listing,
		Decisions: services.Decisions,
		IsDev:     services.IsDev,
		Logger:    logger,
	}
}

// staticWithFallback serves /static/* assets.
// In dev mode (isDev=true), serves from disk for hot reloading.
// In production mode (isDev=false), serves from embedded FS.
func staticWithFallback(isDev bool) http.Handler {
	if isDev {
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))), false)
	}

	staticSub, err := fs.Sub(jobreview.StaticFS, "frontend/static")
	if err != nil {
		log.Printf("failed to create sub-filesystem for static assets: %v", err)
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))), false)
	}
	return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))), true)
}

// staticWithCacheHeaders wraps a static file handler to add cache headers. Embedded assets
// change only with a new build, so they may be cached briefly; disk assets are never cached.
func staticWithCacheHeaders(handler http.Handler, cacheable bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cacheable {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		} else {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")
		}
		handler.ServeHTTP(w, r)
	})
}

// notFoundHandler wraps a ServeMux and provides custom 404 handling.
type notFoundHandler struct {
	mux        *http.ServeMux
	uiHandlers *UIHandlers
}

// ServeHTTP implements http.Handler and provides custom 404 handling.
func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cw := newCaptureWriter(w)
	// Serve the request through the mux, capturing status, headers, and body
	h.mux.ServeHTTP(cw, r)

	// Only the mux's own "404 page not found" is replaced; handlers answering 404 keep theirs.
	if cw.status == http.StatusNotFound && !cw.wroteJSON() {
		// For missing static assets, preserve the default file server response
		if strings.HasPrefix(r.URL.Path, "/static/") {
			cw.flushTo(w)
			return
		}
		if h.uiHandlers != nil {
			h.uiHandlers.NotFound(w, r)
			return
		}
		http.NotFound(w, r)
		return
	}

	cw.flushTo(w)
}

// captureWriter buffers headers, status and body so we can decide post-dispatch.
type captureWriter struct {
	rw     http.ResponseWriter
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter(w http.ResponseWriter) *captureWriter {
	return &captureWriter{rw: w, header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) wroteJSON() bool {
	return strings.HasPrefix(c.header.Get("Content-Type"), "application/json")
}

func (c *captureWriter) flushTo(w http.ResponseWriter) {
	for k, vs := range c.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	if _, err := w.Write(c.buf.Bytes()); err != nil {
		log.Printf("failed to write captured response: %v", err)
	}
}

func registerAPIRoutes(mux *http.ServeMux, h *APIHandlers) {
	if h.Counter != nil {
		mux.HandleFunc("GET /api/jobs/count", h.Count)
	}
	if h.Pager != nil {
		mux.HandleFunc("GET /api/jobs", h.List)
	}
}

// uiRouteConfig holds configuration for UI route registration.
type uiRouteConfig struct {
	CookieDomain string
	SessionTTL   time.Duration
}

// wrap applies the review session and CSRF middleware every UI route needs.
func (cfg uiRouteConfig) wrap() func(http.Handler) http.Handler {
	session := Session(SessionConfig{CookieDomain: cfg.CookieDomain, MaxAge: cfg.SessionTTL})
	csrf := CSRFProtection(CSRFConfig{CookieDomain: cfg.CookieDomain})
	return func(h http.Handler) http.Handler {
		return session(csrf(h))
	}
}

func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrap := cfg.wrap()
	mux.Handle("GET /{$}", wrap(http.HandlerFunc(h.Jobs)))
	mux.Handle("GET /jobs", wrap(http.HandlerFunc(h.Jobs)))
	mux.Handle("POST /jobs/page/next", wrap(http.HandlerFunc(h.PageNext)))
	mux.Handle("POST /jobs/page/prev", wrap(http.HandlerFunc(h.PagePrev)))
	mux.Handle("POST /jobs/reload", wrap(http.HandlerFunc(h.Reload)))
	mux.Handle("POST /jobs/{id}/toggle", wrap(http.HandlerFunc(h.Toggle)))
	mux.Handle("POST /jobs/{id}/decision", wrap(http.HandlerFunc(h.Decision)))
}
