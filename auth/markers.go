package auth

import (
	"sync"
	"time"
)

// MarkerStore records when the last successful token refresh happened. The
// handler consults it to skip refreshes that another caller just completed.
type MarkerStore interface {
	// LastRefresh returns the time of the last successful refresh and
	// whether one has been recorded.
	LastRefresh() (time.Time, bool)

	// SetLastRefresh records a successful refresh at t.
	SetLastRefresh(t time.Time)
}

// MemoryMarkerStore is the in-process MarkerStore. One per application
// instance; nothing is persisted.
type MemoryMarkerStore struct {
	lock        sync.RWMutex
	lastRefresh time.Time
	set         bool
}

var _ MarkerStore = (*MemoryMarkerStore)(nil)

func NewMemoryMarkerStore() *MemoryMarkerStore {
	return &MemoryMarkerStore{}
}

func (ms *MemoryMarkerStore) LastRefresh() (time.Time, bool) {
	ms.lock.RLock()
	defer ms.lock.RUnlock()
	return ms.lastRefresh, ms.set
}

func (ms *MemoryMarkerStore) SetLastRefresh(t time.Time) {
	ms.lock.Lock()
	defer ms.lock.Unlock()
	ms.lastRefresh = t
	ms.set = true
}
