package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/levelup-labs/jobscout/internal/jobs"
)

type inMemoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]inMemoryEntry
}

type inMemoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewInMemory returns a process-local session store. A ttl of zero disables
// expiry. Listings are stored serialized so callers never share memory with
// the store.
func NewInMemory(ttl time.Duration) Store {
	return &inMemoryStore{
		ttl:     ttl,
		entries: make(map[string]inMemoryEntry),
	}
}

func (s *inMemoryStore) SaveListings(_ context.Context, sessionID string, listings []jobs.Listing) error {
	data, err := json.Marshal(listings)
	if err != nil {
		return fmt.Errorf("marshal listings: %w", err)
	}

	entry := inMemoryEntry{data: data}
	if s.ttl > 0 {
		entry.expiresAt = time.Now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[sessionID] = entry
	s.mu.Unlock()

	return nil
}

func (s *inMemoryStore) LoadListings(_ context.Context, sessionID string) ([]jobs.Listing, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, sessionID)
		s.mu.Unlock()
		return nil, false, nil
	}

	var listings []jobs.Listing
	if err := json.Unmarshal(entry.data, &listings); err != nil {
		return nil, false, fmt.Errorf("unmarshal listings: %w", err)
	}

	return listings, true, nil
}
