package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
const (
	PageJobs     = "jobs"
	PageNotFound = "not-found"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

// Named partials rendered directly by handlers.
const (
	tmplJobList = "job-list"
	tmplJobCard = "job-card"
)

// EventJobRemoved is the htmx event triggered after a decided card leaves the list.
const EventJobRemoved = "job:removed"

// Content templates are defined once and reused to avoid per-call allocations.
//
//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageJobs:     "jobs-content",
	PageNotFound: "not-found-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to jobs-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := ContentTemplateMap()[currentPage]; ok {
		return name
	}
	return "jobs-content"
}
