package economy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pondkeeper/pondkeeper/internal/catalog"
	"github.com/pondkeeper/pondkeeper/internal/domain"
	"github.com/pondkeeper/pondkeeper/internal/repository"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]domain.Item{
		{ID: "hat_leaf", Slot: domain.SlotHat, Rarity: domain.RarityCommon, Price: 10},
		{ID: "hat_acorn", Slot: domain.SlotHat, Rarity: domain.RarityCommon, Price: 10},
		{ID: "glasses_dew", Slot: domain.SlotGlasses, Rarity: domain.RarityCommon, Price: 13},
		{ID: "glasses_round", Slot: domain.SlotGlasses, Rarity: domain.RarityUncommon, Price: 25},
		{ID: "scarf_moss", Slot: domain.SlotScarf, Rarity: domain.RarityUncommon, Price: 30},
		{ID: "scarf_silk", Slot: domain.SlotScarf, Rarity: domain.RarityRare, Price: 60},
		{ID: "bg_sunset", Slot: domain.SlotBackground, Rarity: domain.RarityEpic, Price: 120},
		{ID: "badge_gold", Slot: domain.SlotBadge, Rarity: domain.RarityLegendary, Price: 500},
		{ID: "gift_box", Rarity: domain.RarityRare, Price: 100, Gift: true},
	}, nil)
	require.NoError(t, err)
	return cat
}

func testSetup(t *testing.T, balance int) (Service, *repository.FakeAccountRepository) {
	t.Helper()
	repo := repository.NewFakeAccountRepository()
	acc := domain.NewAccount("acc-1", "kermit", time.Now())
	acc.Balance = balance
	repo.Seed(acc)
	return NewService(repo, testCatalog(t)), repo
}

// sequenceRand returns rolls from the given slice, then repeats the last one.
func sequenceRand(rolls ...float64) func() float64 {
	i := 0
	return func() float64 {
		if i < len(rolls) {
			v := rolls[i]
			i++
			return v
		}
		return rolls[len(rolls)-1]
	}
}

func TestPurchaseExactBalance(t *testing.T) {
	svc, repo := testSetup(t, 100)
	ctx := context.Background()

	// gift_box costs exactly the full balance
	result, err := svc.Purchase(ctx, "acc-1", "gift_box", 1)
	require.NoError(t, err)
	assert.Equal(t, 100, result.Cost)

	acc, err := repo.Get(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, 0, acc.Balance)
	assert.Equal(t, 1, acc.Inventory["gift_box"])

	// A repeat purchase fails at write time
	_, err = svc.Purchase(ctx, "acc-1", "gift_box", 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	acc, err = repo.Get(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, 0, acc.Balance)
	assert.Equal(t, 1, acc.Inventory["gift_box"])
}

func TestPurchaseValidation(t *testing.T) {
	svc, _ := testSetup(t, 1000)
	ctx := context.Background()

	_, err := svc.Purchase(ctx, "acc-1", "hat_leaf", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Purchase(ctx, "acc-1", "hat_leaf", MaxTransactionQuantity+1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Purchase(ctx, "acc-1", "unicorn_horn", 1)
	assert.ErrorIs(t, err, domain.ErrUnknownItem)

	_, err = svc.Purchase(ctx, "ghost", "hat_leaf", 1)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestSellCreditsHalfPrice(t *testing.T) {
	svc, repo := testSetup(t, 0)
	ctx := context.Background()
	require.NoError(t, repo.GrantItem(ctx, "acc-1", "glasses_dew", 3))

	result, err := svc.Sell(ctx, "acc-1", "glasses_dew", 2)
	require.NoError(t, err)
	// floor(13/2) = 6 per unit
	assert.Equal(t, 12, result.Proceeds)

	acc, err := repo.Get(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, 12, acc.Balance)
	assert.Equal(t, 1, acc.Inventory["glasses_dew"])

	_, err = svc.Sell(ctx, "acc-1", "glasses_dew", 5)
	assert.ErrorIs(t, err, domain.ErrInsufficientInventory)
}

func TestEquip(t *testing.T) {
	svc, repo := testSetup(t, 0)
	ctx := context.Background()
	require.NoError(t, repo.GrantItem(ctx, "acc-1", "hat_leaf", 1))

	// Wrong slot
	err := svc.Equip(ctx, "acc-1", domain.SlotGlasses, "hat_leaf")
	assert.ErrorIs(t, err, domain.ErrSlotMismatch)

	// Not owned
	err = svc.Equip(ctx, "acc-1", domain.SlotHat, "hat_acorn")
	assert.ErrorIs(t, err, domain.ErrNotOwned)

	// Unknown item
	err = svc.Equip(ctx, "acc-1", domain.SlotHat, "unicorn_horn")
	assert.ErrorIs(t, err, domain.ErrUnknownItem)

	// Success
	require.NoError(t, svc.Equip(ctx, "acc-1", domain.SlotHat, "hat_leaf"))
	acc, err := repo.Get(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "hat_leaf", acc.Equipped[domain.SlotHat])

	// Unequip always succeeds
	require.NoError(t, svc.Equip(ctx, "acc-1", domain.SlotHat, ""))
	acc, err = repo.Get(ctx, "acc-1")
	require.NoError(t, err)
	assert.NotContains(t, acc.Equipped, domain.SlotHat)
}

func TestMarkItemsSeen(t *testing.T) {
	svc, repo := testSetup(t, 0)
	ctx := context.Background()
	require.NoError(t, repo.GrantItem(ctx, "acc-1", "hat_leaf", 1))
	require.NoError(t, repo.GrantItem(ctx, "acc-1", "hat_acorn", 1))

	require.NoError(t, svc.MarkItemsSeen(ctx, "acc-1", []string{"hat_leaf"}))

	acc, err := repo.Get(ctx, "acc-1")
	require.NoError(t, err)
	assert.NotContains(t, acc.UnseenItemIDs, "hat_leaf")
	assert.Contains(t, acc.UnseenItemIDs, "hat_acorn")

	err = svc.MarkItemsSeen(ctx, "acc-1", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
