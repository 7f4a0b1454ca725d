package memory

import (
	"context"
	"sync"

	"github.com/stampwallet/stamp-ledger/internal/core/domain"
)

// AuditLog keeps the most recent entries of each store. Entries are stored
// oldest first internally and returned newest first.
type AuditLog struct {
	mu       sync.RWMutex
	entries  map[string][]domain.AuditEntry
	capacity int
}

// NewAuditLog creates a log retaining capacity entries per store. Capacity
// is capped at domain.DefaultAuditCapacity; a non-positive value uses it.
func NewAuditLog(capacity int) *AuditLog {
	if capacity <= 0 || capacity > domain.DefaultAuditCapacity {
		capacity = domain.DefaultAuditCapacity
	}
	return &AuditLog{entries: make(map[string][]domain.AuditEntry), capacity: capacity}
}

func (a *AuditLog) Append(_ context.Context, storeID string, entry domain.AuditEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	list := append(a.entries[storeID], entry)
	if over := len(list) - a.capacity; over > 0 {
		// Copy so the evicted prefix can be collected.
		trimmed := make([]domain.AuditEntry, a.capacity, a.capacity+1)
		copy(trimmed, list[over:])
		list = trimmed
	}
	a.entries[storeID] = list
	return nil
}

func (a *AuditLog) List(_ context.Context, storeID string) ([]domain.AuditEntry, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	list := a.entries[storeID]
	out := make([]domain.AuditEntry, len(list))
	for i, e := range list {
		out[len(list)-1-i] = e
	}
	return out, nil
}
