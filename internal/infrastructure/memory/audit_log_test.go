package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stampwallet/stamp-ledger/internal/core/domain"
)

func entry(i int) domain.AuditEntry {
	return domain.AuditEntry{ID: fmt.Sprintf("e%d", i), Type: domain.AuditEarn, StoreID: "s1"}
}

func TestAuditLog_NewestFirst(t *testing.T) {
	a := NewAuditLog(0)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, a.Append(ctx, "s1", entry(i)))
	}

	items, err := a.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "e2", items[0].ID)
	assert.Equal(t, "e0", items[2].ID)
}

func TestAuditLog_EvictsOldestBeyondCapacity(t *testing.T) {
	a := NewAuditLog(domain.DefaultAuditCapacity)
	ctx := context.Background()

	for i := 0; i < domain.DefaultAuditCapacity+1; i++ {
		require.NoError(t, a.Append(ctx, "s1", entry(i)))
	}

	items, _ := a.List(ctx, "s1")
	require.Len(t, items, domain.DefaultAuditCapacity)
	assert.Equal(t, fmt.Sprintf("e%d", domain.DefaultAuditCapacity), items[0].ID, "newest at front")
	assert.Equal(t, "e1", items[len(items)-1].ID)
	for _, it := range items {
		assert.NotEqual(t, "e0", it.ID, "oldest entry must be evicted")
	}
}

func TestAuditLog_CapacityNeverExceedsDefault(t *testing.T) {
	a := NewAuditLog(domain.DefaultAuditCapacity * 5)
	ctx := context.Background()

	for i := 0; i < domain.DefaultAuditCapacity+10; i++ {
		require.NoError(t, a.Append(ctx, "s1", entry(i)))
	}

	items, _ := a.List(ctx, "s1")
	assert.Len(t, items, domain.DefaultAuditCapacity)
}

func TestAuditLog_PerStore(t *testing.T) {
	a := NewAuditLog(2)
	ctx := context.Background()

	_ = a.Append(ctx, "s1", entry(1))
	_ = a.Append(ctx, "s2", entry(2))

	items, _ := a.List(ctx, "s2")
	require.Len(t, items, 1)
	assert.Equal(t, "e2", items[0].ID)

	empty, _ := a.List(ctx, "unknown")
	assert.Empty(t, empty)
}

func TestAuditLog_ListReturnsCopy(t *testing.T) {
	a := NewAuditLog(5)
	ctx := context.Background()
	_ = a.Append(ctx, "s1", entry(1))

	items, _ := a.List(ctx, "s1")
	items[0].ID = "tampered"

	again, _ := a.List(ctx, "s1")
	assert.Equal(t, "e1", again[0].ID)
}
