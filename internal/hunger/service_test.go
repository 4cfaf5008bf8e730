package hunger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pondkeeper/pondkeeper/internal/domain"
	"github.com/pondkeeper/pondkeeper/internal/repository"
)

func setup(balance int, hunger time.Duration, lastUpdate time.Time) (Service, *repository.FakeAccountRepository) {
	repo := repository.NewFakeAccountRepository()
	acc := domain.NewAccount("acc-1", "kermit", lastUpdate)
	acc.Balance = balance
	acc.Hunger = hunger
	acc.LastHungerUpdate = lastUpdate
	repo.Seed(acc)
	return NewService(repo), repo
}

func TestSettlePersistsPenalty(t *testing.T) {
	now := time.Now()
	svc, repo := setup(5, 0, now.Add(-30*time.Hour))
	ctx := context.Background()

	acc, err := svc.Settle(ctx, "acc-1", now)
	require.NoError(t, err)

	assert.Equal(t, 4, acc.Balance)
	assert.Equal(t, 1, acc.StolenFlies)
	assert.Equal(t, -6*time.Hour, acc.Hunger)

	stored, err := repo.Get(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Balance)
	assert.Equal(t, 1, stored.StolenFlies)
}

func TestSettleIdempotent(t *testing.T) {
	now := time.Now()
	svc, _ := setup(5, 0, now.Add(-30*time.Hour))
	ctx := context.Background()

	first, err := svc.Settle(ctx, "acc-1", now)
	require.NoError(t, err)

	second, err := svc.Settle(ctx, "acc-1", now)
	require.NoError(t, err)

	assert.Equal(t, first.Balance, second.Balance)
	assert.Equal(t, first.StolenFlies, second.StolenFlies)
	assert.Equal(t, first.Hunger, second.Hunger)
}

func TestSettleUnknownAccount(t *testing.T) {
	svc, _ := setup(0, 0, time.Now())
	_, err := svc.Settle(context.Background(), "ghost", time.Now())
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

// StolenFlies grows monotonically across settles with increasing now, and
// only Acknowledge resets it.
func TestStolenFliesMonotonic(t *testing.T) {
	start := time.Now().Add(-200 * time.Hour)
	svc, _ := setup(100, 0, start)
	ctx := context.Background()

	prev := 0
	for _, offset := range []time.Duration{30 * time.Hour, 60 * time.Hour, 120 * time.Hour} {
		acc, err := svc.Settle(ctx, "acc-1", start.Add(offset))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, acc.StolenFlies, prev)
		prev = acc.StolenFlies
	}
	assert.Greater(t, prev, 0)

	acc, err := svc.Acknowledge(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, 0, acc.StolenFlies)

	// Idempotent
	acc, err = svc.Acknowledge(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, 0, acc.StolenFlies)
}

// Concurrent settles at the same instant: invariants hold no matter which
// caller's write wins.
func TestSettleConcurrent(t *testing.T) {
	now := time.Now()
	svc, repo := setup(5, 0, now.Add(-30*time.Hour))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Settle(ctx, "acc-1", now)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	acc, err := repo.Get(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, 4, acc.Balance)
	assert.Equal(t, 1, acc.StolenFlies)
	assert.Equal(t, -6*time.Hour, acc.Hunger)
}
