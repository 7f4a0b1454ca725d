package memory

import (
	"context"
	"sync"

	"github.com/stampwallet/stamp-ledger/internal/core/domain"
)

// storeLedger holds one tenant's balances behind its own lock so that
// stores never contend with each other.
type storeLedger struct {
	mu       sync.Mutex
	balances map[string]int
}

// LedgerStore maps (store, wallet) to a stamp balance.
type LedgerStore struct {
	mu     sync.RWMutex
	stores map[string]*storeLedger
}

func NewLedgerStore() *LedgerStore {
	return &LedgerStore{stores: make(map[string]*storeLedger)}
}

// shard returns the ledger for storeID. With create false a missing store
// yields nil instead of being materialised.
func (l *LedgerStore) shard(storeID string, create bool) *storeLedger {
	l.mu.RLock()
	sl, ok := l.stores[storeID]
	l.mu.RUnlock()
	if ok || !create {
		return sl
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if sl, ok = l.stores[storeID]; ok {
		return sl
	}
	sl = &storeLedger{balances: make(map[string]int)}
	l.stores[storeID] = sl
	return sl
}

func (l *LedgerStore) Balance(_ context.Context, storeID, walletID string) (int, error) {
	sl := l.shard(storeID, false)
	if sl == nil {
		return 0, nil
	}
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return sl.balances[walletID], nil
}

func (l *LedgerStore) ApplyDelta(_ context.Context, storeID, walletID string, delta int) (int, error) {
	sl := l.shard(storeID, true)
	sl.mu.Lock()
	defer sl.mu.Unlock()
	next := domain.ClampStamps(sl.balances[walletID] + delta)
	sl.balances[walletID] = next
	return next, nil
}

func (l *LedgerStore) Reset(_ context.Context, storeID, walletID string) error {
	sl := l.shard(storeID, true)
	sl.mu.Lock()
	sl.balances[walletID] = 0
	sl.mu.Unlock()
	return nil
}

// Wallets reports how many wallet entries exist in a store.
func (l *LedgerStore) Wallets(storeID string) int {
	sl := l.shard(storeID, false)
	if sl == nil {
		return 0
	}
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return len(sl.balances)
}
