package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jobpilot/jobreview/internal/domain/card"
	"github.com/jobpilot/jobreview/internal/domain/listing"
	"github.com/jobpilot/jobreview/internal/domain/model"
	apperrors "github.com/jobpilot/jobreview/internal/errors"
	"github.com/jobpilot/jobreview/internal/testutil"
)

func cardHeadings(doc *goquery.Document) []string {
	var out []string
	doc.Find("li.job-card .job-card-header").Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}

func TestJobsPage_RendersFirstPage(t *testing.T) {
	f := newUIFixture(t)
	f.expectMount(testutil.JobAds("job", 45))
	b := newBrowser(t, f.router)

	rec := b.get("/jobs", false)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseHTML(t, rec)

	assert.Equal(t, "Job Review", doc.Find("title").Text())
	headings := cardHeadings(doc)
	require.Len(t, headings, 20)
	assert.Equal(t, "Backend Engineer job-1, Acme", headings[0])
	assert.Equal(t, "Backend Engineer job-20, Acme", headings[19])

	assert.Equal(t, "Page: 1 / 3", doc.Find(".pager-label").Text())
	_, prevDisabled := doc.Find(`button[data-action="prev"]`).Attr("disabled")
	_, nextDisabled := doc.Find(`button[data-action="next"]`).Attr("disabled")
	assert.True(t, prevDisabled)
	assert.False(t, nextDisabled)

	// Collapsed cards render just the header.
	header := doc.Find("li.job-card .job-card-header").First()
	assert.Equal(t, "false", header.AttrOr("aria-expanded", ""))
	assert.Equal(t, "button", header.AttrOr("role", ""))
	assert.Equal(t, "0", header.AttrOr("tabindex", ""))
	assert.Equal(t, 0, doc.Find(".job-card-body").Length())

	hxHeaders, ok := doc.Find("body").Attr("hx-headers")
	require.True(t, ok)
	assert.Contains(t, hxHeaders, b.cookies[DefaultCSRFCookieName].Value)
	require.Contains(t, b.cookies, DefaultSessionCookieName)
}

func TestJobsPage_RootServesSameView(t *testing.T) {
	f := newUIFixture(t)
	f.expectMount(testutil.JobAds("job", 3))
	b := newBrowser(t, f.router)

	doc := parseHTML(t, b.get("/", false))
	assert.Len(t, cardHeadings(doc), 3)
}

func TestJobsPage_MountsOncePerSession(t *testing.T) {
	f := newUIFixture(t)
	f.expectMount(testutil.JobAds("job", 3))
	b := newBrowser(t, f.router)

	b.get("/jobs", false)
	// A second visit reuses the held view; the mock would fail on another FetchPage or Count.
	doc := parseHTML(t, b.get("/jobs", false))
	assert.Len(t, cardHeadings(doc), 3)
}

func TestJobsPage_HTMXReturnsContentOnly(t *testing.T) {
	f := newUIFixture(t)
	f.expectMount(testutil.JobAds("job", 2))
	b := newBrowser(t, f.router)

	rec := b.get("/jobs", true)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "<title>Job Review</title>"))
	assert.NotContains(t, body, "<html")
	assert.Contains(t, body, `id="job-list"`)
}

func TestJobsPage_Empty(t *testing.T) {
	f := newUIFixture(t)
	f.expectMount(nil)
	b := newBrowser(t, f.router)

	doc := parseHTML(t, b.get("/jobs", false))
	assert.Equal(t, "No jobs found", strings.TrimSpace(doc.Find(".empty").Text()))
	assert.Equal(t, 0, doc.Find("li.job-card").Length())
	assert.Equal(t, "Page: 1 / 0", doc.Find(".pager-label").Text())
}

func TestJobsPage_InitialFailures(t *testing.T) {
	tests := []struct {
		name       string
		pageErr    error
		countErr   error
		wantErrors []string
		wantCards  int
	}{
		{
			name:       "both fail",
			pageErr:    apperrors.Internal("boom"),
			countErr:   apperrors.Internal("boom"),
			wantErrors: []string{listing.MsgLoadFailed, listing.MsgCountFailed},
		},
		{
			name:       "count fails but the page renders",
			countErr:   apperrors.Internal("boom"),
			wantErrors: []string{listing.MsgCountFailed},
			wantCards:  3,
		},
		{
			name:       "page fails",
			pageErr:    apperrors.Internal("boom"),
			wantErrors: []string{listing.MsgLoadFailed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUIFixture(t)
			if tt.pageErr != nil {
				f.repo.EXPECT().FetchPage(gomock.Any(), gomock.Any()).Return(nil, tt.pageErr)
			} else {
				f.repo.EXPECT().FetchPage(gomock.Any(), gomock.Any()).
					Return(&model.JobAdPage{Items: testutil.JobAds("job", 3)}, nil)
			}
			if tt.countErr != nil {
				f.repo.EXPECT().Count(gomock.Any()).Return(0, tt.countErr)
			} else {
				f.repo.EXPECT().Count(gomock.Any()).Return(3, nil)
			}
			b := newBrowser(t, f.router)

			doc := parseHTML(t, b.get("/jobs", false))
			var got []string
			doc.Find("p.error").Each(func(_ int, s *goquery.Selection) {
				got = append(got, s.Text())
			})
			assert.Equal(t, tt.wantErrors, got)
			assert.Len(t, cardHeadings(doc), tt.wantCards)
			// Store details never reach the page.
			assert.NotContains(t, doc.Text(), "boom")
		})
	}
}

func TestPageNextAndPrev(t *testing.T) {
	f := newUIFixture(t)
	items := testutil.JobAds("job", 45)
	f.expectMount(items)
	f.repo.EXPECT().FetchPage(gomock.Any(), model.PageRequest{Size: 20, Cursor: "page-2"}).
		DoAndReturn(pagedItems(items)).Times(2)
	f.repo.EXPECT().FetchPage(gomock.Any(), model.PageRequest{Size: 20, Cursor: "page-3"}).
		DoAndReturn(pagedItems(items))
	b := newBrowser(t, f.router)
	b.get("/jobs", false)

	rec := b.post("/jobs/page/next", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseHTML(t, rec)
	assert.Equal(t, 1, doc.Find("#job-list").Length())
	// Pages accumulate below the ones already shown.
	headings := cardHeadings(doc)
	require.Len(t, headings, 40)
	assert.Equal(t, "Backend Engineer job-1, Acme", headings[0])
	assert.Equal(t, "Backend Engineer job-21, Acme", headings[20])
	assert.Equal(t, "Page: 2 / 3", doc.Find(".pager-label").Text())
	_, prevDisabled := doc.Find(`button[data-action="prev"]`).Attr("disabled")
	assert.False(t, prevDisabled)

	doc = parseHTML(t, b.post("/jobs/page/next", nil, true))
	assert.Len(t, cardHeadings(doc), 45)
	assert.Equal(t, "Page: 3 / 3", doc.Find(".pager-label").Text())
	_, nextDisabled := doc.Find(`button[data-action="next"]`).Attr("disabled")
	assert.True(t, nextDisabled)

	// Next on the last page re-renders it without a store call.
	doc = parseHTML(t, b.post("/jobs/page/next", nil, true))
	assert.Equal(t, "Page: 3 / 3", doc.Find(".pager-label").Text())

	// Going back re-reads page 2 from its recorded cursor; nothing is listed twice.
	doc = parseHTML(t, b.post("/jobs/page/prev", nil, true))
	assert.Len(t, cardHeadings(doc), 45)
	assert.Equal(t, "Page: 2 / 3", doc.Find(".pager-label").Text())
}

func TestPageNext_FailureKeepsItems(t *testing.T) {
	f := newUIFixture(t)
	items := testutil.JobAds("job", 45)
	f.expectMount(items)
	f.repo.EXPECT().FetchPage(gomock.Any(), model.PageRequest{Size: 20, Cursor: "page-2"}).
		Return(nil, apperrors.Wrap(errors.New("slow down"), apperrors.ErrCodeThrottled, "store"))
	b := newBrowser(t, f.router)
	b.get("/jobs", false)

	doc := parseHTML(t, b.post("/jobs/page/next", nil, true))
	headings := cardHeadings(doc)
	require.Len(t, headings, 20)
	assert.Equal(t, "Backend Engineer job-1, Acme", headings[0])
	assert.Equal(t, listing.MsgLoadFailed, doc.Find("p.error").Text())
	assert.Equal(t, "Page: 1 / 3", doc.Find(".pager-label").Text())
}

func TestPageNext_PlainFormRedirects(t *testing.T) {
	f := newUIFixture(t)
	items := testutil.JobAds("job", 45)
	f.expectMount(items)
	f.repo.EXPECT().FetchPage(gomock.Any(), model.PageRequest{Size: 20, Cursor: "page-2"}).
		DoAndReturn(pagedItems(items))
	b := newBrowser(t, f.router)
	b.get("/jobs", false)

	rec := b.post("/jobs/page/next", nil, false)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/jobs", rec.Header().Get("Location"))
}

func TestReload_StartsOver(t *testing.T) {
	f := newUIFixture(t)
	items := testutil.JobAds("job", 45)
	f.expectMount(items)
	f.expectMount(items[:10])
	b := newBrowser(t, f.router)
	b.get("/jobs", false)

	doc := parseHTML(t, b.post("/jobs/reload", nil, true))
	assert.Len(t, cardHeadings(doc), 10)
	assert.Equal(t, "Page: 1 / 1", doc.Find(".pager-label").Text())
}

func TestToggle(t *testing.T) {
	f := newUIFixture(t)
	f.expectMount([]model.JobAd{
		testutil.NewJobAd("job-1").WithTitle("SRE").WithCompany("Globex").
			WithDescription("Keep things running.").Build(),
	})
	b := newBrowser(t, f.router)
	b.get("/jobs", false)

	rec := b.post("/jobs/job-1/toggle", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseHTML(t, rec)

	li := doc.Find("li#job-job-1")
	require.Equal(t, 1, li.Length())
	assert.Equal(t, "true", li.Find(".job-card-header").AttrOr("aria-expanded", ""))
	assert.Equal(t, "SRE, Globex", strings.TrimSpace(li.Find(".job-card-header").Text()))
	assert.Contains(t, li.Find(".job-added").Text(), "Added on: Mar 5, 2024")

	link := li.Find(`a[href="https://jobs.example.com/job-1"]`)
	assert.Equal(t, "Link to job", link.Text())
	assert.Equal(t, "_blank", link.AttrOr("target", ""))
	assert.Equal(t, "noreferrer", link.AttrOr("rel", ""))
	assert.Equal(t, "Keep things running.", li.Find(".job-description").Text())

	buttons := li.Find(`button[name="decision"]`)
	require.Equal(t, 2, buttons.Length())
	assert.Equal(t, "Applied", buttons.Eq(0).Text())
	assert.Equal(t, "applied", buttons.Eq(0).AttrOr("value", ""))
	assert.Equal(t, "Declined", buttons.Eq(1).Text())
	buttons.Each(func(_ int, s *goquery.Selection) {
		_, disabled := s.Attr("disabled")
		assert.False(t, disabled)
	})

	// Toggling again collapses the card, and the collapsed state persists across a reload.
	doc = parseHTML(t, b.post("/jobs/job-1/toggle", nil, true))
	assert.Equal(t, "false", doc.Find(".job-card-header").AttrOr("aria-expanded", ""))
	assert.Equal(t, 0, doc.Find(".job-card-body").Length())
}

func TestToggle_UnknownCardIsDropped(t *testing.T) {
	f := newUIFixture(t)
	f.expectMount(testutil.JobAds("job", 1))
	b := newBrowser(t, f.router)
	b.get("/jobs", false)

	rec := b.post("/jobs/nope/toggle", nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDecision_RemovesCard(t *testing.T) {
	tests := []struct {
		decision      string
		wantQualified bool
	}{
		{decision: "applied", wantQualified: true},
		{decision: "declined", wantQualified: false},
	}

	for _, tt := range tests {
		t.Run(tt.decision, func(t *testing.T) {
			f := newUIFixture(t)
			f.expectMount(testutil.JobAds("job", 3))
			f.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, job model.JobAd) error {
					assert.Equal(t, "job-2", job.ID)
					assert.True(t, job.Processed)
					assert.Equal(t, tt.wantQualified, job.IsQualified)
					assert.Equal(t, testutil.TestTime().Unix(), job.DateProcessed)
					return nil
				})
			b := newBrowser(t, f.router)
			b.get("/jobs", false)
			b.post("/jobs/job-2/toggle", nil, true)

			rec := b.post("/jobs/job-2/decision", url.Values{"decision": {tt.decision}}, true)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Empty(t, rec.Body.String())
			assert.JSONEq(t, `{"job:removed":{"id":"job-2"}}`, rec.Header().Get("Hx-Trigger"))

			doc := parseHTML(t, b.get("/jobs", false))
			assert.Equal(t, []string{
				"Backend Engineer job-1, Acme",
				"Backend Engineer job-3, Acme",
			}, cardHeadings(doc))
			// The count is not re-queried after a decision.
			assert.Equal(t, "Page: 1 / 1", doc.Find(".pager-label").Text())
		})
	}
}

func TestDecision_FailureReenablesButtons(t *testing.T) {
	f := newUIFixture(t)
	f.expectMount(testutil.JobAds("job", 2))
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(apperrors.Wrap(errors.New("slow down"), apperrors.ErrCodeThrottled, "store"))
	b := newBrowser(t, f.router)
	b.get("/jobs", false)
	b.post("/jobs/job-1/toggle", nil, true)

	rec := b.post("/jobs/job-1/decision", url.Values{"decision": {"applied"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Hx-Trigger"))

	doc := parseHTML(t, rec)
	li := doc.Find("li#job-job-1")
	require.Equal(t, 1, li.Length())
	assert.Equal(t, "true", li.Find(".job-card-header").AttrOr("aria-expanded", ""))
	li.Find(`button[name="decision"]`).Each(func(_ int, s *goquery.Selection) {
		_, disabled := s.Attr("disabled")
		assert.False(t, disabled)
	})

	doc = parseHTML(t, b.get("/jobs", false))
	assert.Len(t, cardHeadings(doc), 2)
}

func TestJobsPage_ProcessingCardDisablesButtons(t *testing.T) {
	f := newUIFixture(t)
	f.expectMount(testutil.JobAds("job", 2))
	b := newBrowser(t, f.router)
	b.get("/jobs", false)
	b.post("/jobs/job-1/toggle", nil, true)

	sid := b.cookies[DefaultSessionCookieName].Value
	_, _, err := f.listings.UpdateCard(t.Context(), sid, "job-1", func(c *card.State) error {
		c.BeginDecision()
		return nil
	})
	require.NoError(t, err)

	doc := parseHTML(t, b.get("/jobs", false))
	buttons := doc.Find(`li#job-job-1 button[name="decision"]`)
	require.Equal(t, 2, buttons.Length())
	buttons.Each(func(_ int, s *goquery.Selection) {
		_, disabled := s.Attr("disabled")
		assert.True(t, disabled, "%s button is disabled while a decision is in flight", s.AttrOr("value", ""))
	})
}

func TestDecision_RejectsBadInput(t *testing.T) {
	f := newUIFixture(t)
	f.expectMount(testutil.JobAds("job", 1))
	b := newBrowser(t, f.router)
	b.get("/jobs", false)

	rec := b.post("/jobs/job-1/decision", url.Values{"decision": {"maybe"}}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "none", rec.Header().Get("Hx-Reswap"))

	// A listing that is not held is dropped from the page without a store write.
	rec = b.post("/jobs/job-9/decision", url.Values{"decision": {"applied"}}, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDecision_InFlightConflicts(t *testing.T) {
	f := newUIFixture(t)
	f.expectMount(testutil.JobAds("job", 1))
	b := newBrowser(t, f.router)
	b.get("/jobs", false)

	sid := b.cookies[DefaultSessionCookieName].Value
	_, held, err := f.claims.Claim(t.Context(), sid+":job-1", 0)
	require.NoError(t, err)
	require.True(t, held)

	rec := b.post("/jobs/job-1/decision", url.Values{"decision": {"declined"}}, true)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "none", rec.Header().Get("Hx-Reswap"))
}

func TestUIPost_RequiresCSRFToken(t *testing.T) {
	f := newUIFixture(t)
	f.expectMount(testutil.JobAds("job", 1))
	b := newBrowser(t, f.router)
	b.get("/jobs", false)

	delete(b.cookies, DefaultCSRFCookieName)
	rec := b.post("/jobs/job-1/toggle", nil, true)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
