package ports

import (
	"context"

	"github.com/stampwallet/stamp-ledger/internal/core/domain"
)

// LoginInput carries the credentials presented at login.
type LoginInput struct {
	StoreID  string
	Username string
	Password string
}

// LoginResult is returned after a successful login.
type LoginResult struct {
	Token string
	Store domain.Store
	User  domain.UserSummary
}

type AuthService interface {
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	Authenticate(ctx context.Context, token string) (*domain.Session, error)
	Logout(ctx context.Context, token string) error
	RequireRole(session *domain.Session, role string) error
	// Store resolves the store a session is bound to.
	Store(ctx context.Context, session *domain.Session) (domain.Store, error)
}
