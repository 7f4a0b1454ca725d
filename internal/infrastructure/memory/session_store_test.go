package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stampwallet/stamp-ledger/internal/core/domain"
)

func TestSessionStore_Lifecycle(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &domain.Session{Token: "t1", StoreID: "s1", Role: domain.RoleStaff}))

	got, err := s.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "s1", got.StoreID)

	removed, err := s.Delete(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = s.Get(ctx, "t1")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	removed, err = s.Delete(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, removed, "second delete is a no-op")
}

func TestSessionStore_GetReturnsCopy(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()
	_ = s.Save(ctx, &domain.Session{Token: "t1", Role: domain.RoleStaff})

	got, _ := s.Get(ctx, "t1")
	got.Role = domain.RoleManager

	again, _ := s.Get(ctx, "t1")
	assert.Equal(t, domain.RoleStaff, again.Role, "stored binding is immutable")
}

func TestStoreDirectoryAndUsers(t *testing.T) {
	ctx := context.Background()
	dir := NewStoreDirectory([]domain.Store{{ID: "b", Name: "B"}, {ID: "a", Name: "A"}})

	list := dir.List(ctx)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)

	_, err := dir.Get(ctx, "zzz")
	assert.ErrorIs(t, err, domain.ErrUnknownStore)

	users := NewUserRepository([]domain.User{
		{ID: "1", StoreID: "a", Username: "staff"},
		{ID: "2", StoreID: "b", Username: "staff"},
	})
	u, err := users.FindByStoreAndUsername(ctx, "b", "staff")
	require.NoError(t, err)
	assert.Equal(t, "2", u.ID)

	_, err = users.FindByStoreAndUsername(ctx, "c", "staff")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
