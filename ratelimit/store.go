package ratelimit

import (
	"context"
	"sync"
	"time"
)

// State holds the most recently observed rate-limit headers for one client
// identifier. A nil pointer field means the server has never sent the
// corresponding header for this identifier.
type State struct {
	Limit       *int      `json:"limit,omitempty"`
	Remaining   *int      `json:"remaining,omitempty"`
	ResetTime   string    `json:"reset_time,omitempty"`
	RetryAfter  *int      `json:"retry_after,omitempty"` // seconds
	LastUpdated time.Time `json:"last_updated"`
}

// Store persists rate-limit state between requests.
//
// Implementations must be safe for concurrent use. Field-level last-write-wins
// under racing updates is acceptable; structural corruption is not.
type Store interface {
	// Get returns the state for clientID and whether any state exists.
	Get(ctx context.Context, clientID string) (State, bool, error)

	// Set replaces the state for clientID.
	Set(ctx context.Context, clientID string, state State) error
}

// MemoryStore implements Store using a mutex-guarded map. Entries live for
// the lifetime of the store and are never evicted.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]State
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]State)}
}

func (ms *MemoryStore) Get(ctx context.Context, clientID string) (State, bool, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	state, ok := ms.states[clientID]
	return state, ok, nil
}

func (ms *MemoryStore) Set(ctx context.Context, clientID string, state State) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.states[clientID] = state
	return nil
}
