package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stampwallet/stamp-ledger/internal/core/domain"
	"github.com/stampwallet/stamp-ledger/internal/core/ports"
	"github.com/stampwallet/stamp-ledger/internal/pkg/metrics"
)

// LoyaltyService orchestrates ledger mutations. Every write follows
// authorize → validate → rate limit → mutate ledger → append audit, and any
// failing step returns before the ledger or audit trail is touched.
type LoyaltyService struct {
	stores  ports.StoreDirectory
	auth    ports.AuthService
	ledger  ports.LedgerRepository
	audit   ports.AuditRepository
	limiter ports.RateLimiter
	archive ports.AuditArchive // optional
	locks   *walletLocks
	now     func() time.Time
	log     zerolog.Logger
}

// LoyaltyDeps groups the collaborators of LoyaltyService.
type LoyaltyDeps struct {
	Stores  ports.StoreDirectory
	Auth    ports.AuthService
	Ledger  ports.LedgerRepository
	Audit   ports.AuditRepository
	Limiter ports.RateLimiter
	Archive ports.AuditArchive
}

func NewLoyaltyService(deps LoyaltyDeps, log zerolog.Logger) *LoyaltyService {
	return &LoyaltyService{
		stores:  deps.Stores,
		auth:    deps.Auth,
		ledger:  deps.Ledger,
		audit:   deps.Audit,
		limiter: deps.Limiter,
		archive: deps.Archive,
		locks:   newWalletLocks(defaultLockStripes),
		now:     time.Now,
		log:     log,
	}
}

func (s *LoyaltyService) ListStores(ctx context.Context) []domain.Store {
	return s.stores.List(ctx)
}

// GetLedger is the unauthenticated balance lookup. The store must still be
// named explicitly and exist.
func (s *LoyaltyService) GetLedger(ctx context.Context, storeID, walletID string) (*domain.WalletState, error) {
	if blank(walletID) {
		return nil, domain.NewInputError("walletId required")
	}
	if storeID == "" {
		return nil, domain.NewInputError("storeId required")
	}
	if _, err := s.stores.Get(ctx, storeID); err != nil {
		return nil, domain.NewInputError("unknown store")
	}

	stamps, err := s.ledger.Balance(ctx, storeID, walletID)
	if err != nil {
		return nil, fmt.Errorf("get ledger: %w", err)
	}
	return &domain.WalletState{StoreID: storeID, WalletID: walletID, Stamps: stamps, StampCap: domain.StampCap}, nil
}

func (s *LoyaltyService) Earn(ctx context.Context, session *domain.Session, in ports.EarnInput) (*ports.EarnResult, error) {
	if session == nil {
		return nil, domain.ErrUnauthenticated
	}

	walletID := in.WalletID
	cents, err := validateEarn(walletID, in.AmountCents)
	if err != nil {
		metrics.EarnTotal.WithLabelValues("invalid_input").Inc()
		return nil, err
	}

	allowed, err := s.limiter.Allow(ctx, session.StoreID, session.UserID)
	if err != nil {
		metrics.EarnTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("earn: rate limiter: %w", err)
	}
	if !allowed {
		metrics.EarnTotal.WithLabelValues("rate_limited").Inc()
		s.log.Warn().
			Str("store_id", session.StoreID).
			Str("user_id", session.UserID).
			Msg("earn rate limited")
		return nil, domain.ErrRateLimited
	}

	added := domain.StampsForAmount(cents)

	unlock := s.locks.lock(session.StoreID, walletID)
	defer unlock()

	before, err := s.ledger.Balance(ctx, session.StoreID, walletID)
	if err != nil {
		metrics.EarnTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("earn: read balance: %w", err)
	}
	after, err := s.ledger.ApplyDelta(ctx, session.StoreID, walletID, added)
	if err != nil {
		metrics.EarnTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("earn: apply delta: %w", err)
	}

	entry := domain.AuditEntry{
		ID:          uuid.NewString(),
		Timestamp:   s.now().UTC(),
		Type:        domain.AuditEarn,
		StoreID:     session.StoreID,
		WalletID:    walletID,
		Actor:       session.Actor(),
		AmountCents: &cents,
		StampsAdded: &added,
		StampsAfter: &after,
	}
	if err := s.record(ctx, entry); err != nil {
		metrics.EarnTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.EarnTotal.WithLabelValues("ok").Inc()
	if credited := after - before; credited > 0 {
		metrics.StampsAwardedTotal.WithLabelValues(session.StoreID).Add(float64(credited))
	}
	s.log.Info().
		Str("store_id", session.StoreID).
		Str("wallet_id", walletID).
		Int64("amount_cents", cents).
		Int("stamps_added", added).
		Int("stamps_after", after).
		Msg("stamps earned")

	return &ports.EarnResult{Entry: entry, StampCap: domain.StampCap}, nil
}

func (s *LoyaltyService) Reset(ctx context.Context, session *domain.Session, walletID string) (*domain.WalletState, error) {
	if err := s.auth.RequireRole(session, domain.RoleManager); err != nil {
		return nil, err
	}

	if blank(walletID) {
		return nil, domain.NewInputError("walletId required")
	}

	unlock := s.locks.lock(session.StoreID, walletID)
	defer unlock()

	if err := s.ledger.Reset(ctx, session.StoreID, walletID); err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}

	entry := domain.AuditEntry{
		ID:        uuid.NewString(),
		Timestamp: s.now().UTC(),
		Type:      domain.AuditReset,
		StoreID:   session.StoreID,
		WalletID:  walletID,
		Actor:     session.Actor(),
	}
	if err := s.record(ctx, entry); err != nil {
		return nil, err
	}

	metrics.WalletResetsTotal.WithLabelValues(session.StoreID).Inc()
	s.log.Info().
		Str("store_id", session.StoreID).
		Str("wallet_id", walletID).
		Str("user_id", session.UserID).
		Msg("wallet reset")

	return &domain.WalletState{StoreID: session.StoreID, WalletID: walletID, Stamps: 0, StampCap: domain.StampCap}, nil
}

func (s *LoyaltyService) ListAudit(ctx context.Context, session *domain.Session) (*ports.AuditListing, error) {
	if err := s.auth.RequireRole(session, domain.RoleManager); err != nil {
		return nil, err
	}
	items, err := s.audit.List(ctx, session.StoreID)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	return &ports.AuditListing{StoreID: session.StoreID, Items: items}, nil
}

// record appends to the bounded trail, then mirrors to the archive. Archive
// failures are logged and counted but do not fail the request.
func (s *LoyaltyService) record(ctx context.Context, entry domain.AuditEntry) error {
	if err := s.audit.Append(ctx, entry.StoreID, entry); err != nil {
		return fmt.Errorf("append audit: %w", err)
	}
	if s.archive == nil {
		return nil
	}
	if err := s.archive.Archive(ctx, entry); err != nil {
		metrics.AuditArchiveErrorsTotal.Inc()
		s.log.Warn().Err(err).Str("audit_id", entry.ID).Msg("failed to archive audit entry")
	}
	return nil
}

// blank reports an ID that is empty or only whitespace. Non-blank IDs are
// used verbatim, so " w1" and "w1" are different wallets.
func blank(id string) bool {
	return strings.TrimSpace(id) == ""
}

func validateEarn(walletID string, amount float64) (int64, error) {
	if blank(walletID) {
		return 0, domain.NewInputError("walletId required")
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount != math.Trunc(amount) {
		return 0, domain.NewInputError("amountCents must be an integer number of cents")
	}
	if amount <= 0 {
		return 0, domain.NewInputError("amountCents must be positive")
	}
	if amount > domain.MaxAmountCents {
		return 0, domain.NewInputError("amount too high")
	}
	return int64(amount), nil
}
