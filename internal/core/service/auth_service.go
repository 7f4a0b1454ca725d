package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/stampwallet/stamp-ledger/internal/core/domain"
	"github.com/stampwallet/stamp-ledger/internal/core/ports"
	"github.com/stampwallet/stamp-ledger/internal/pkg/metrics"
)

const tokenBytes = 32

// AuthService implements login, token resolution and logout.
type AuthService struct {
	stores   ports.StoreDirectory
	users    ports.UserRepository
	verifier ports.CredentialVerifier
	sessions ports.SessionStore
	ttl      time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

// NewAuthService wires the session registry. A non-positive ttl issues
// sessions that live until logout.
func NewAuthService(
	stores ports.StoreDirectory,
	users ports.UserRepository,
	verifier ports.CredentialVerifier,
	sessions ports.SessionStore,
	ttl time.Duration,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		stores:   stores,
		users:    users,
		verifier: verifier,
		sessions: sessions,
		ttl:      ttl,
		now:      time.Now,
		log:      log,
	}
}

func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	if in.StoreID == "" || in.Username == "" || in.Password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid_input").Inc()
		return nil, domain.NewInputError("storeId, username and password are required")
	}

	store, err := s.stores.Get(ctx, in.StoreID)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("unknown_store").Inc()
		return nil, err
	}

	user, err := s.users.FindByStoreAndUsername(ctx, store.ID, in.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: find user: %w", err)
	}
	if !s.verifier.Verify(user, in.Password) {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		s.log.Info().Str("store_id", store.ID).Str("username", in.Username).Msg("login rejected")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := generateToken()
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: generate token: %w", err)
	}

	session := &domain.Session{
		Token:     token,
		UserID:    user.ID,
		StoreID:   store.ID,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: s.now().UTC(),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: save session: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	metrics.ActiveSessions.Inc()
	s.log.Info().
		Str("store_id", store.ID).
		Str("user_id", user.ID).
		Str("role", user.Role).
		Msg("session issued")

	return &ports.LoginResult{Token: token, Store: store, User: user.Summary()}, nil
}

// Authenticate resolves a bearer token. Expired sessions are removed on
// lookup.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.Expired(s.now(), s.ttl) {
		if removed, err := s.sessions.Delete(ctx, token); err != nil {
			s.log.Warn().Err(err).Msg("failed to delete expired session")
		} else if removed {
			metrics.ActiveSessions.Dec()
		}
		return nil, domain.ErrUnauthenticated
	}
	return session, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	removed, err := s.sessions.Delete(ctx, token)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if removed {
		metrics.ActiveSessions.Dec()
	}
	return nil
}

func (s *AuthService) RequireRole(session *domain.Session, role string) error {
	if session == nil {
		return domain.ErrUnauthenticated
	}
	if session.Role != role {
		return domain.ErrForbidden
	}
	return nil
}

func (s *AuthService) Store(ctx context.Context, session *domain.Session) (domain.Store, error) {
	if session == nil {
		return domain.Store{}, domain.ErrUnauthenticated
	}
	return s.stores.Get(ctx, session.StoreID)
}

// generateToken returns 256 bits of randomness, base64url encoded.
func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
