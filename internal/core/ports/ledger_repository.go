package ports

import (
	"context"

	"github.com/stampwallet/stamp-ledger/internal/core/domain"
)

// LedgerRepository holds per-store wallet balances. Every method is scoped by
// storeID and implementations keep balances in [0, domain.StampCap].
type LedgerRepository interface {
	// Balance returns 0 for wallets never seen and does not create them.
	Balance(ctx context.Context, storeID, walletID string) (int, error)
	// ApplyDelta atomically sets the balance to clamp(current+delta) and
	// returns the new value.
	ApplyDelta(ctx context.Context, storeID, walletID string, delta int) (int, error)
	// Reset sets the balance to 0, creating the entry when missing.
	Reset(ctx context.Context, storeID, walletID string) error
}

// AuditRepository is the bounded per-store audit trail.
type AuditRepository interface {
	Append(ctx context.Context, storeID string, entry domain.AuditEntry) error
	// List returns the store's entries newest first.
	List(ctx context.Context, storeID string) ([]domain.AuditEntry, error)
}

// AuditArchive receives a copy of every audit entry for long-term storage.
// Failures are not fatal to the request.
type AuditArchive interface {
	Archive(ctx context.Context, entry domain.AuditEntry) error
}

// RateLimiter throttles mutations per (store, user).
type RateLimiter interface {
	Allow(ctx context.Context, storeID, userID string) (bool, error)
}
