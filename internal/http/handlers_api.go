package httpx

import (
	"context"
	"net/http"

	"github.com/jobpilot/jobreview/internal/domain/model"
	"github.com/jobpilot/jobreview/internal/service"
)

const (
	defaultAPIPageSize = 20
	maxAPIPageSize     = 100
)

// JobCounter reports the unprocessed count.
type JobCounter interface {
	Count(ctx context.Context) (service.CountSummary, error)
}

// JobPager reads pages of unprocessed job ads straight from the store.
type JobPager interface {
	FetchPage(ctx context.Context, req model.PageRequest) (*model.JobAdPage, error)
}

// APIHandlers serves the read-only JSON endpoints.
type APIHandlers struct {
	Counter JobCounter
	Pager   JobPager
}

type jobPageResponse struct {
	Items []model.JobAd `json:"items"`
	Next  string        `json:"next,omitempty"`
}

// Count handles GET /api/jobs/count.
func (h *APIHandlers) Count(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Counter.Count(r.Context())
	if err != nil {
		WriteAPIError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

// List handles GET /api/jobs?limit=N&cursor=TOKEN.
func (h *APIHandlers) List(w http.ResponseWriter, r *http.Request) {
	req := model.PageRequest{
		Size:   ParseLimit(r, defaultAPIPageSize, maxAPIPageSize),
		Cursor: r.URL.Query().Get("cursor"),
	}
	page, err := h.Pager.FetchPage(r.Context(), req)
	if err != nil {
		WriteAPIError(w, err)
		return
	}
	items := page.Items
	if items == nil {
		items = []model.JobAd{}
	}
	WriteJSON(w, http.StatusOK, jobPageResponse{Items: items, Next: page.Next})
}
