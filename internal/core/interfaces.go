// Package core holds the ports between the service layer and its adapters.
package core

import (
	"context"
	"time"

	"github.com/jobpilot/jobreview/internal/domain/listing"
	"github.com/jobpilot/jobreview/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// Service implementations depend on these interfaces, not on the DynamoDB or Redis adapters.

// JobAdRepository reads unprocessed job ads and records decisions.
type JobAdRepository interface {
	// FetchPage returns at most req.Size unprocessed job ads starting after req.Cursor,
	// plus the continuation token for the following page (empty at the end of the index).
	FetchPage(ctx context.Context, req model.PageRequest) (*model.JobAdPage, error)
	// Count returns the number of unprocessed job ads.
	Count(ctx context.Context) (int, error)
	// Get loads one job ad by its primary key.
	Get(ctx context.Context, id string, dateAdded int64) (*model.JobAd, error)
	// Update writes a decided job ad. Concurrent updates are last-write-wins.
	Update(ctx context.Context, job model.JobAd) error
}

// ListStateStore persists the list view of each review session.
type ListStateStore interface {
	// Load returns the stored state, or nil with no error when the session has none.
	Load(ctx context.Context, sessionID string) (*listing.State, error)
	Save(ctx context.Context, sessionID string, state *listing.State) error
	Delete(ctx context.Context, sessionID string) error
}

// DecisionClaimer guards a job ad against a second decision while one is in flight.
type DecisionClaimer interface {
	// Claim reports whether the caller now holds the claim on key. Claims expire after ttl.
	// The returned token identifies this holder to Release.
	Claim(ctx context.Context, key string, ttl time.Duration) (token string, held bool, err error)
	// Release drops the claim only while token still holds it; a claim that expired and was
	// taken by another caller is left alone.
	Release(ctx context.Context, key, token string) error
}
