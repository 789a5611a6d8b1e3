// Package memory provides in-process adapters for single-replica deployments and tests.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jobpilot/jobreview/internal/core"
	"github.com/jobpilot/jobreview/internal/domain/listing"
)

// ErrSessionIDRequired is returned when a state is saved without a session id.
var ErrSessionIDRequired = errors.New("session ID cannot be empty")

type entry struct {
	data      []byte
	expiresAt time.Time
}

// ListStateStore keeps list views in a map. States are stored serialized so callers never
// share slices or maps with the store.
type ListStateStore struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

var _ core.ListStateStore = (*ListStateStore)(nil)

// NewListStateStore creates a store whose entries expire ttl after their last save.
// A non-positive ttl keeps entries until deleted.
func NewListStateStore(ttl time.Duration) *ListStateStore {
	return &ListStateStore{entries: make(map[string]entry), ttl: ttl, now: time.Now}
}

func (s *ListStateStore) Save(_ context.Context, sessionID string, state *listing.State) error {
	if sessionID == "" {
		return ErrSessionIDRequired
	}
	if state == nil {
		s.mu.Lock()
		delete(s.entries, sessionID)
		s.mu.Unlock()
		return nil
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal list state: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e := entry{data: data}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	s.entries[sessionID] = e
	s.sweepLocked()
	return nil
}

func (s *ListStateStore) Load(_ context.Context, sessionID string) (*listing.State, error) {
	s.mu.Lock()
	e, ok := s.entries[sessionID]
	if ok && s.expired(e) {
		delete(s.entries, sessionID)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return nil, nil
	}

	var state listing.State
	if err := json.Unmarshal(e.data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal list state: %w", err)
	}
	return &state, nil
}

func (s *ListStateStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}

// Len returns the number of live entries.
func (s *ListStateStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	return len(s.entries)
}

func (s *ListStateStore) expired(e entry) bool {
	return !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt)
}

func (s *ListStateStore) sweepLocked() {
	for id, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, id)
		}
	}
}

// Claimer implements core.DecisionClaimer with an expiring in-process map.
type Claimer struct {
	mu     sync.Mutex
	claims map[string]claim
	now    func() time.Time
}

type claim struct {
	token string
	until time.Time
}

var _ core.DecisionClaimer = (*Claimer)(nil)

// NewClaimer creates an empty Claimer.
func NewClaimer() *Claimer {
	return &Claimer{claims: make(map[string]claim), now: time.Now}
}

// Claim takes key unless an unexpired claim on it exists.
func (c *Claimer) Claim(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	if key == "" {
		return "", false, errors.New("key cannot be empty")
	}
	if ttl <= 0 {
		ttl = time.Second
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if cur, held := c.claims[key]; held && now.Before(cur.until) {
		return "", false, nil
	}
	token := uuid.NewString()
	c.claims[key] = claim{token: token, until: now.Add(ttl)}
	return token, true, nil
}

// Release drops the claim on key if token still holds it.
func (c *Claimer) Release(_ context.Context, key, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, held := c.claims[key]; held && cur.token == token {
		delete(c.claims, key)
	}
	return nil
}
