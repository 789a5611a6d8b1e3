package viewmodel

import "fmt"

// Pager is the Previous/Next control pair under a list.
type Pager struct {
	Page     int
	LastPage int
	HasPrev  bool
	HasNext  bool
	// Loading disables both controls while a page load is in flight.
	Loading bool
}

// Label renders the "Page X / Y" indicator.
func (p Pager) Label() string {
	return fmt.Sprintf("Page: %d / %d", p.Page, p.LastPage)
}

// PrevDisabled reports whether Previous is disabled.
func (p Pager) PrevDisabled() bool { return !p.HasPrev || p.Loading }

// NextDisabled reports whether Next is disabled.
func (p Pager) NextDisabled() bool { return !p.HasNext || p.Loading }
