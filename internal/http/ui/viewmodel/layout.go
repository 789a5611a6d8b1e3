package viewmodel

// Layout captures shared chrome metadata (titles, navigation state, CSRF token).
type Layout struct {
	Title       string
	PageTitle   string
	CurrentPage string
	CSRFToken   string
}

// LayoutProvider exposes layout metadata for renderer utilities.
type LayoutProvider interface {
	LayoutData() *Layout
}
