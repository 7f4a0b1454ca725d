package service

import (
	"hash/fnv"
	"sync"
)

const defaultLockStripes = 64

// walletLocks serialises mutations of a single wallet without a global lock.
// Wallets hash onto a fixed set of mutexes, so two wallets may share a
// stripe but one wallet always maps to the same stripe.
type walletLocks struct {
	stripes []sync.Mutex
}

func newWalletLocks(n int) *walletLocks {
	if n <= 0 {
		n = defaultLockStripes
	}
	return &walletLocks{stripes: make([]sync.Mutex, n)}
}

// lock acquires the stripe for (storeID, walletID) and returns its unlock.
func (l *walletLocks) lock(storeID, walletID string) func() {
	m := &l.stripes[l.shardIndex(storeID, walletID)]
	m.Lock()
	return m.Unlock
}

func (l *walletLocks) shardIndex(storeID, walletID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(storeID))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(walletID))
	return int(h.Sum32() % uint32(len(l.stripes)))
}
