// Package bridge is a local HTTP endpoint that a browser extension keeps
// updated with the user's open tabs.
package bridge

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aidanlsb/tablink/internal/linkresolver"
)

// Snapshot is the last set of tabs pushed by the extension.
type Snapshot struct {
	ID        string             `json:"snapshot_id,omitempty"`
	UpdatedAt time.Time          `json:"updated_at,omitempty"`
	Tabs      []linkresolver.Tab `json:"tabs"`
}

// Store holds the latest snapshot in memory.
type Store struct {
	mu     sync.RWMutex
	latest Snapshot
	maxAge time.Duration
	now    func() time.Time
}

// NewStore returns a store whose snapshots expire after maxAge.
// A non-positive maxAge disables expiry.
func NewStore(maxAge time.Duration) *Store {
	return &Store{maxAge: maxAge, now: time.Now}
}

// Replace stores tabs as the current snapshot.
func (s *Store) Replace(tabs []linkresolver.Tab) Snapshot {
	if tabs == nil {
		tabs = []linkresolver.Tab{}
	}
	snap := Snapshot{
		ID:        uuid.NewString(),
		UpdatedAt: s.now().UTC(),
		Tabs:      tabs,
	}

	s.mu.Lock()
	s.latest = snap
	s.mu.Unlock()
	return snap
}

// Current returns the latest snapshot. Expired or missing snapshots have no tabs.
func (s *Store) Current() Snapshot {
	s.mu.RLock()
	snap := s.latest
	s.mu.RUnlock()

	if snap.ID == "" || s.expired(snap) {
		return Snapshot{Tabs: []linkresolver.Tab{}}
	}
	return snap
}

// Clear drops the current snapshot.
func (s *Store) Clear() {
	s.mu.Lock()
	s.latest = Snapshot{}
	s.mu.Unlock()
}

func (s *Store) expired(snap Snapshot) bool {
	return s.maxAge > 0 && s.now().Sub(snap.UpdatedAt) > s.maxAge
}
