package memory

import (
	"context"

	"github.com/stampwallet/stamp-ledger/internal/core/domain"
)

type userKey struct {
	storeID  string
	username string
}

// UserRepository indexes seeded users by (store, username). It is read-only
// after construction.
type UserRepository struct {
	users map[userKey]domain.User
}

func NewUserRepository(users []domain.User) *UserRepository {
	r := &UserRepository{users: make(map[userKey]domain.User, len(users))}
	for _, u := range users {
		r.users[userKey{u.StoreID, u.Username}] = u
	}
	return r
}

func (r *UserRepository) FindByStoreAndUsername(_ context.Context, storeID, username string) (*domain.User, error) {
	u, ok := r.users[userKey{storeID, username}]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}
