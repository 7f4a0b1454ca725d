package ports

import (
	"context"

	"github.com/stampwallet/stamp-ledger/internal/core/domain"
)

// EarnInput is the purchase being recorded. AmountCents is a float so that
// non-integral or non-finite values reach validation instead of being lost
// in decoding.
type EarnInput struct {
	WalletID    string
	AmountCents float64
}

// EarnResult is the audit entry written for the earn plus the cap in force.
type EarnResult struct {
	Entry    domain.AuditEntry
	StampCap int
}

// AuditListing is a store's audit trail, newest first.
type AuditListing struct {
	StoreID string
	Items   []domain.AuditEntry
}

// LoyaltyService implements the stamp ledger use cases.
type LoyaltyService interface {
	ListStores(ctx context.Context) []domain.Store
	GetLedger(ctx context.Context, storeID, walletID string) (*domain.WalletState, error)
	Earn(ctx context.Context, session *domain.Session, in EarnInput) (*EarnResult, error)
	Reset(ctx context.Context, session *domain.Session, walletID string) (*domain.WalletState, error)
	ListAudit(ctx context.Context, session *domain.Session) (*AuditListing, error)
}
