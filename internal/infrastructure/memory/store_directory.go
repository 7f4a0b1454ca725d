// Package memory holds the process-scoped, concurrency-safe state of the
// stamp ledger. Nothing here survives a restart.
package memory

import (
	"context"
	"sort"

	"github.com/stampwallet/stamp-ledger/internal/core/domain"
)

// StoreDirectory is an immutable registry built once at startup.
type StoreDirectory struct {
	byID    map[string]domain.Store
	ordered []domain.Store
}

func NewStoreDirectory(stores []domain.Store) *StoreDirectory {
	d := &StoreDirectory{byID: make(map[string]domain.Store, len(stores))}
	for _, s := range stores {
		d.byID[s.ID] = s
	}
	for _, s := range d.byID {
		d.ordered = append(d.ordered, s)
	}
	sort.Slice(d.ordered, func(i, j int) bool { return d.ordered[i].ID < d.ordered[j].ID })
	return d
}

func (d *StoreDirectory) List(_ context.Context) []domain.Store {
	out := make([]domain.Store, len(d.ordered))
	copy(out, d.ordered)
	return out
}

func (d *StoreDirectory) Get(_ context.Context, id string) (domain.Store, error) {
	s, ok := d.byID[id]
	if !ok {
		return domain.Store{}, domain.ErrUnknownStore
	}
	return s, nil
}
