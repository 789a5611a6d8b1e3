// Package model defines the core data types shared by the job review UI, its services and the store adapter.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Sentinel strings used by the store in place of a boolean processed flag.
const (
	ProcessedYes = "Yes"
	ProcessedNo  = "No"
)

// ProcessedSentinel converts the entity flag to the store's sentinel string.
func ProcessedSentinel(processed bool) string {
	if processed {
		return ProcessedYes
	}
	return ProcessedNo
}

// ParseProcessed converts the store sentinel back to a boolean.
// Anything other than "Yes" is treated as unprocessed.
func ParseProcessed(s string) bool {
	return s == ProcessedYes
}

// JobAd is a job advertisement pulled from the store.
type JobAd struct {
	ID            string `json:"id"`
	DateAdded     int64  `json:"date_added"`
	Title         string `json:"title"`
	Company       string `json:"company"`
	Description   string `json:"description"`
	Link          string `json:"link"`
	IsQualified   bool   `json:"is_qualified"`
	Processed     bool   `json:"processed"`
	DateProcessed int64  `json:"date_processed"`
}

// AddedAt returns DateAdded as a time.
func (j JobAd) AddedAt() time.Time {
	return time.Unix(j.DateAdded, 0).UTC()
}

// ProcessedAt returns DateProcessed as a time, or the zero time when undecided.
func (j JobAd) ProcessedAt() time.Time {
	if j.DateProcessed == 0 {
		return time.Time{}
	}
	return time.Unix(j.DateProcessed, 0).UTC()
}

// Decide returns a copy of the job with the decision recorded at now.
func (j JobAd) Decide(d Decision, now time.Time) JobAd {
	decided := j
	decided.IsQualified = d == DecisionApplied
	decided.Processed = true
	decided.DateProcessed = now.Unix()
	return decided
}

// Decision is the user's verdict on a listing.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type Decision string

const (
	// DecisionApplied marks the listing as applied to (qualified).
	DecisionApplied Decision = "applied"
	// DecisionDeclined marks the listing as declined.
	DecisionDeclined Decision = "declined"
)

// Valid returns true if the Decision is one of the known values.
func (d Decision) Valid() bool {
	return d == DecisionApplied || d == DecisionDeclined
}

// UnmarshalText implements encoding.TextUnmarshaler so decisions can be parsed from forms and flags.
func (d *Decision) UnmarshalText(text []byte) error {
	parsed, err := ParseDecision(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDecision normalises and validates a decision string.
func ParseDecision(s string) (Decision, error) {
	d := Decision(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("invalid decision: %q", s)
	}
	return d, nil
}

// DecisionRequest carries a decision submitted for one listing.
type DecisionRequest struct {
	JobID    string `validate:"required"`
	Decision string `validate:"required,oneof=applied declined"`
}

var requestValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate normalises the decision the way ParseDecision does, then validates the request.
func (r *DecisionRequest) Validate() error {
	r.JobID = strings.TrimSpace(r.JobID)
	r.Decision = strings.ToLower(strings.TrimSpace(r.Decision))
	return requestValidator.Struct(r)
}

// PageRequest asks the store for one page of unprocessed listings.
type PageRequest struct {
	// Size bounds the number of items returned.
	Size int
	// Cursor is the continuation token returned with the previous page; empty for the first page.
	Cursor string
}

// JobAdPage is one page of unprocessed listings.
type JobAdPage struct {
	Items []JobAd
	// Next is the store's continuation token, empty once the index is exhausted.
	Next string
}
