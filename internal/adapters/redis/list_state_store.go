// Package redis provides Redis-backed adapters for review session state.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jobpilot/jobreview/internal/core"
	"github.com/jobpilot/jobreview/internal/domain/listing"
)

// ErrSessionIDRequired is returned when a state is saved without a session id.
var ErrSessionIDRequired = errors.New("session ID cannot be empty")

// ListStateStore keeps each session's list view as JSON with a sliding TTL.
type ListStateStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ core.ListStateStore = (*ListStateStore)(nil)

// NewListStateStore creates a store whose entries expire ttl after their last save.
func NewListStateStore(client redis.UniversalClient, ttl time.Duration) *ListStateStore {
	return NewListStateStoreWithPrefix(client, "jobreview:liststate:", ttl)
}

// NewListStateStoreWithPrefix creates a store with a custom key prefix.
func NewListStateStoreWithPrefix(client redis.UniversalClient, prefix string, ttl time.Duration) *ListStateStore {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &ListStateStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *ListStateStore) Save(ctx context.Context, sessionID string, state *listing.State) error {
	if sessionID == "" {
		return ErrSessionIDRequired
	}
	if state == nil {
		return s.Delete(ctx, sessionID)
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal list state: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+sessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *ListStateStore) Load(ctx context.Context, sessionID string) (*listing.State, error) {
	if sessionID == "" {
		return nil, nil
	}

	data, err := s.client.Get(ctx, s.prefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var state listing.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal list state: %w", err)
	}
	return &state, nil
}

func (s *ListStateStore) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+sessionID).Err()
}
