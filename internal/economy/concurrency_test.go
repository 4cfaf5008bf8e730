package economy

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pondkeeper/pondkeeper/internal/domain"
	"github.com/pondkeeper/pondkeeper/internal/repository"
)

func TestConcurrentPurchasesSpendBalanceOnce(t *testing.T) {
	svc, repo := testSetup(t, 100)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Purchase(ctx, "acc-1", "gift_box", 1)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		}
	}
	assert.Equal(t, 1, succeeded)

	acc, err := repo.Get(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, 0, acc.Balance)
	assert.Equal(t, 1, acc.Inventory["gift_box"])
}

func TestConcurrentSellsNeverOverdraw(t *testing.T) {
	repo := repository.NewFakeAccountRepository()
	acc := domain.NewAccount("acc-1", "kermit", time.Now())
	acc.Inventory["hat_leaf"] = 3
	repo.Seed(acc)
	svc := NewService(repo, testCatalog(t))
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Sell(ctx, "acc-1", "hat_leaf", 1)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, errors.Is(err, domain.ErrInsufficientInventory))
		}
	}
	assert.Equal(t, 3, succeeded)

	got, err := repo.Get(ctx, "acc-1")
	require.NoError(t, err)
	assert.NotContains(t, got.Inventory, "hat_leaf")
	// floor(10/2) = 5 per unit, three units sold
	assert.Equal(t, 15, got.Balance)
}
