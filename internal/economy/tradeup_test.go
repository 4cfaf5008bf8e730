package economy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pondkeeper/pondkeeper/internal/domain"
	"github.com/pondkeeper/pondkeeper/internal/repository"
)

func repeatID(id string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = id
	}
	return out
}

func TestTradeUpProducesNextTier(t *testing.T) {
	repo := repository.NewFakeAccountRepository()
	repo.Seed(&domain.Account{ID: "acc-1", Inventory: map[string]int{"bg_sunset": 10}})
	svc := NewServiceWithRand(repo, testCatalog(t), sequenceRand(0.0))
	ctx := context.Background()

	result, err := svc.TradeUp(ctx, "acc-1", repeatID("bg_sunset", 10))
	require.NoError(t, err)
	assert.Equal(t, "badge_gold", result.ItemID)
	assert.Equal(t, domain.RarityLegendary, result.Rarity)

	acc, err := repo.Get(ctx, "acc-1")
	require.NoError(t, err)
	assert.NotContains(t, acc.Inventory, "bg_sunset")
	assert.Equal(t, 1, acc.Inventory["badge_gold"])
}

func TestTradeUpMixedSetAllowed(t *testing.T) {
	// 6 + 4 of two different commons at the same rarity is a valid set.
	repo := repository.NewFakeAccountRepository()
	repo.Seed(&domain.Account{ID: "acc-1", Inventory: map[string]int{"hat_leaf": 6, "hat_acorn": 4}})
	svc := NewServiceWithRand(repo, testCatalog(t), sequenceRand(0.0))
	ctx := context.Background()

	ids := append(repeatID("hat_leaf", 6), repeatID("hat_acorn", 4)...)
	result, err := svc.TradeUp(ctx, "acc-1", ids)
	require.NoError(t, err)
	assert.Equal(t, domain.RarityUncommon, result.Rarity)

	acc, err := repo.Get(ctx, "acc-1")
	require.NoError(t, err)
	assert.NotContains(t, acc.Inventory, "hat_leaf")
	assert.NotContains(t, acc.Inventory, "hat_acorn")
}

func TestTradeUpRejectsBadSets(t *testing.T) {
	repo := repository.NewFakeAccountRepository()
	repo.Seed(&domain.Account{ID: "acc-1", Inventory: map[string]int{
		"hat_leaf": 10, "glasses_round": 10, "badge_gold": 10,
	}})
	svc := NewService(repo, testCatalog(t))
	ctx := context.Background()

	// Wrong count
	_, err := svc.TradeUp(ctx, "acc-1", repeatID("hat_leaf", 9))
	assert.ErrorIs(t, err, domain.ErrInvalidTradeSet)

	// Mixed rarities
	ids := append(repeatID("hat_leaf", 5), repeatID("glasses_round", 5)...)
	_, err = svc.TradeUp(ctx, "acc-1", ids)
	assert.ErrorIs(t, err, domain.ErrInvalidTradeSet)

	// Top tier has nothing above it
	_, err = svc.TradeUp(ctx, "acc-1", repeatID("badge_gold", 10))
	assert.ErrorIs(t, err, domain.ErrInvalidTradeSet)

	// Unknown item in set
	ids = append(repeatID("hat_leaf", 9), "unicorn_horn")
	_, err = svc.TradeUp(ctx, "acc-1", ids)
	assert.ErrorIs(t, err, domain.ErrUnknownItem)
}

func TestTradeUpOwnershipShortfall(t *testing.T) {
	repo := repository.NewFakeAccountRepository()
	repo.Seed(&domain.Account{ID: "acc-1", Inventory: map[string]int{"hat_leaf": 4}})
	svc := NewServiceWithRand(repo, testCatalog(t), sequenceRand(0.0))
	ctx := context.Background()

	_, err := svc.TradeUp(ctx, "acc-1", repeatID("hat_leaf", 10))
	assert.ErrorIs(t, err, domain.ErrInvalidTradeSet)

	// Nothing was consumed
	acc, err := repo.Get(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, 4, acc.Inventory["hat_leaf"])
}

func TestTradeUpEmptyNextPool(t *testing.T) {
	// A catalog without legendary items cannot pay out an epic trade-up.
	cat, err := newCatalogWithout(t, domain.RarityLegendary)
	require.NoError(t, err)
	repo := repository.NewFakeAccountRepository()
	repo.Seed(&domain.Account{ID: "acc-1", Inventory: map[string]int{"bg_sunset": 10}})
	svc := NewService(repo, cat)

	_, err = svc.TradeUp(context.Background(), "acc-1", repeatID("bg_sunset", 10))
	assert.ErrorIs(t, err, domain.ErrNoRewardAvailable)
}
