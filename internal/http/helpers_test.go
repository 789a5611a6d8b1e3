package httpx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jobpilot/jobreview/internal/adapters/memory"
	"github.com/jobpilot/jobreview/internal/domain/model"
	"github.com/jobpilot/jobreview/internal/mocks"
	"github.com/jobpilot/jobreview/internal/service"
	"github.com/jobpilot/jobreview/internal/testutil"
)

// uiFixture wires the router to real services backed by a mocked store.
type uiFixture struct {
	router   http.Handler
	repo     *mocks.MockJobAdRepository
	claims   *memory.Claimer
	listings *service.ListingService
}

func newUIFixture(t *testing.T) *uiFixture {
	t.Helper()
	RequireTemplateRenderer(t)

	ctrl := gomock.NewController(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	now := func() time.Time { return testutil.TestTime() }

	f := &uiFixture{
		repo:   mocks.NewMockJobAdRepository(ctrl),
		claims: memory.NewClaimer(),
	}
	listings := service.NewListingService(service.ListingServiceOptions{
		Repo:   f.repo,
		States: memory.NewListStateStore(time.Hour),
		Config: service.ListingServiceConfig{PageSize: 20, LoadTimeout: time.Minute, Now: now},
		Logger: logger,
	})
	f.listings = listings
	decisions := service.NewDecisionService(service.DecisionServiceOptions{
		Repo:     f.repo,
		Listings: listings,
		Claims:   f.claims,
		Config:   service.DecisionServiceConfig{Now: now},
		Logger:   logger,
	})
	f.router = NewRouter(RouterServices{
		Listing:    listings,
		Decisions:  decisions,
		Pager:      f.repo,
		TemplateFS: os.DirFS(TemplatePathFromTest),
		SessionTTL: time.Hour,
		Logger:     logger,
	})
	return f
}

// expectMount serves the first page of items and their total as the unprocessed count.
func (f *uiFixture) expectMount(items []model.JobAd) {
	f.repo.EXPECT().FetchPage(gomock.Any(), model.PageRequest{Size: 20}).
		DoAndReturn(pagedItems(items))
	f.repo.EXPECT().Count(gomock.Any()).Return(len(items), nil)
}

// pagedItems serves items in pages of 20 using "page-N" cursors.
func pagedItems(items []model.JobAd) func(context.Context, model.PageRequest) (*model.JobAdPage, error) {
	return func(_ context.Context, req model.PageRequest) (*model.JobAdPage, error) {
		start := 0
		if req.Cursor != "" {
			n, err := strconv.Atoi(strings.TrimPrefix(req.Cursor, "page-"))
			if err != nil {
				return nil, err
			}
			start = (n - 1) * req.Size
		}
		end := min(start+req.Size, len(items))
		page := &model.JobAdPage{Items: append([]model.JobAd(nil), items[start:end]...)}
		if end < len(items) {
			page.Next = "page-" + strconv.Itoa(start/req.Size+2)
		}
		return page, nil
	}
}

// browser keeps the session and CSRF cookies between requests like a real client.
type browser struct {
	t       *testing.T
	h       http.Handler
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, h http.Handler) *browser {
	t.Helper()
	return &browser{t: t, h: h, cookies: make(map[string]*http.Cookie)}
}

func (b *browser) get(path string, htmx bool) *httptest.ResponseRecorder {
	b.t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept", "text/html")
	return b.do(req, htmx)
}

func (b *browser) post(path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	b.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")
	if c, ok := b.cookies[DefaultCSRFCookieName]; ok {
		req.Header.Set(DefaultCSRFHeaderName, c.Value)
	}
	return b.do(req, htmx)
}

func (b *browser) do(req *http.Request, htmx bool) *httptest.ResponseRecorder {
	b.t.Helper()
	if htmx {
		req.Header.Set("Hx-Request", "true")
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	b.h.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		b.cookies[c.Name] = c
	}
	return rec
}

func parseHTML(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return doc
}
