// Package card holds the per-listing view state: expand/collapse and the in-flight decision flag.
package card

import "errors"

// ErrDecisionInFlight is returned when a decision is submitted while another one for the
// same listing has not resolved yet.
var ErrDecisionInFlight = errors.New("decision already in flight")

// State is the view state of a single listing card. The zero value is a collapsed, idle card.
type State struct {
	Expanded   bool `json:"expanded,omitempty"`
	Processing bool `json:"processing,omitempty"`
}

// Toggle flips between collapsed and expanded.
func (s *State) Toggle() {
	s.Expanded = !s.Expanded
}

// BeginDecision marks a decision as in flight. The caller holds the decision claim, so a
// flag that is already set was left by a request that never resolved; stale reports that.
func (s *State) BeginDecision() (stale bool) {
	stale = s.Processing
	s.Processing = true
	return stale
}

// Resolve clears the in-flight flag. A successful decision also collapses the card.
func (s *State) Resolve(succeeded bool) {
	s.Processing = false
	if succeeded {
		s.Expanded = false
	}
}

// ButtonsDisabled reports whether the Applied/Declined buttons must be disabled.
func (s State) ButtonsDisabled() bool {
	return s.Processing
}

// IsZero reports whether the card is in its default state and need not be stored.
func (s State) IsZero() bool {
	return !s.Expanded && !s.Processing
}
