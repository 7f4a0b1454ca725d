package ports

import (
	"context"

	"github.com/stampwallet/stamp-ledger/internal/core/domain"
)

// StoreDirectory is the static registry of tenants.
type StoreDirectory interface {
	List(ctx context.Context) []domain.Store
	// Get returns domain.ErrUnknownStore when id is not registered.
	Get(ctx context.Context, id string) (domain.Store, error)
}

// UserRepository looks up store-scoped identities.
type UserRepository interface {
	// FindByStoreAndUsername returns domain.ErrUserNotFound when no user with
	// that username exists in the store.
	FindByStoreAndUsername(ctx context.Context, storeID, username string) (*domain.User, error)
}

// CredentialVerifier checks a candidate password against a user's stored
// credential.
type CredentialVerifier interface {
	Verify(user *domain.User, candidate string) bool
}

// SessionStore owns issued sessions.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session) error
	// Get returns domain.ErrUnauthenticated when the token is unknown.
	Get(ctx context.Context, token string) (*domain.Session, error)
	// Delete removes the session and reports whether one existed.
	Delete(ctx context.Context, token string) (bool, error)
}
