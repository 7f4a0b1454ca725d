package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"pgregory.net/rapid"

	"github.com/stampwallet/stamp-ledger/internal/core/domain"
)

func TestLedgerStore_BalanceDoesNotMaterialise(t *testing.T) {
	l := NewLedgerStore()
	ctx := context.Background()

	n, err := l.Balance(ctx, "s1", "w1")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, l.Wallets("s1"))
}

func TestLedgerStore_ApplyDeltaClamps(t *testing.T) {
	l := NewLedgerStore()
	ctx := context.Background()

	n, err := l.ApplyDelta(ctx, "s1", "w1", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = l.ApplyDelta(ctx, "s1", "w1", 10)
	require.NoError(t, err)
	assert.Equal(t, domain.StampCap, n, "prior 5 plus 10 clamps to the cap")

	n, err = l.ApplyDelta(ctx, "s1", "w1", -50)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestLedgerStore_ResetCreatesEntry(t *testing.T) {
	l := NewLedgerStore()
	ctx := context.Background()

	require.NoError(t, l.Reset(ctx, "s1", "fresh"))
	assert.Equal(t, 1, l.Wallets("s1"))

	_, _ = l.ApplyDelta(ctx, "s1", "w", 7)
	require.NoError(t, l.Reset(ctx, "s1", "w"))
	n, _ := l.Balance(ctx, "s1", "w")
	assert.Equal(t, 0, n)
}

func TestLedgerStore_StoresAreIsolated(t *testing.T) {
	l := NewLedgerStore()
	ctx := context.Background()

	_, _ = l.ApplyDelta(ctx, "s1", "shared-wallet", 4)
	n, _ := l.Balance(ctx, "s2", "shared-wallet")
	assert.Equal(t, 0, n)
}

func TestLedgerStore_ConcurrentDeltasDoNotLoseUpdates(t *testing.T) {
	l := NewLedgerStore()
	ctx := context.Background()

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			_, err := l.ApplyDelta(ctx, "s1", "w1", 1)
			return err
		})
	}
	require.NoError(t, g.Wait())

	n, _ := l.Balance(ctx, "s1", "w1")
	assert.Equal(t, 8, n)
}

func TestLedgerStore_ConcurrentAcrossStores(t *testing.T) {
	l := NewLedgerStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, store := range []string{"a", "b", "c", "d"} {
		for i := 0; i < 25; i++ {
			wg.Add(1)
			go func(store string) {
				defer wg.Done()
				_, _ = l.ApplyDelta(ctx, store, "w", 1)
			}(store)
		}
	}
	wg.Wait()

	for _, store := range []string{"a", "b", "c", "d"} {
		n, _ := l.Balance(ctx, store, "w")
		assert.Equal(t, domain.StampCap, n, store)
	}
}

func TestLedgerStore_BalanceAlwaysWithinBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := NewLedgerStore()
		ctx := context.Background()
		wallets := []string{"w1", "w2", "w3"}

		ops := rapid.SliceOf(rapid.IntRange(-20, 60)).Draw(t, "ops")
		for i, delta := range ops {
			w := wallets[i%len(wallets)]
			var n int
			if delta == 0 {
				_ = l.Reset(ctx, "s", w)
				n, _ = l.Balance(ctx, "s", w)
			} else {
				n, _ = l.ApplyDelta(ctx, "s", w, delta)
			}
			if n < 0 || n > domain.StampCap {
				t.Fatalf("balance %d out of bounds after delta %d", n, delta)
			}
		}
	})
}
