package economy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pondkeeper/pondkeeper/internal/catalog"
	"github.com/pondkeeper/pondkeeper/internal/domain"
	"github.com/pondkeeper/pondkeeper/internal/repository"
)

// newCatalogWithout rebuilds the test catalog with every item of the given
// rarity removed, keeping gift containers.
func newCatalogWithout(t *testing.T, excluded domain.Rarity) (*catalog.Catalog, error) {
	t.Helper()
	full := testCatalog(t)
	var items []domain.Item
	for _, item := range full.Items() {
		if item.Rarity == excluded && !item.Gift {
			continue
		}
		items = append(items, item)
	}
	return catalog.New(items, nil)
}

func TestRollRarity(t *testing.T) {
	weights := catalog.DefaultGiftWeights

	// Cumulative boundaries: common 0.55, uncommon 0.80, rare 0.92,
	// epic 0.98, legendary 1.00.
	tests := []struct {
		roll float64
		want domain.Rarity
	}{
		{0.0, domain.RarityCommon},
		{0.54, domain.RarityCommon},
		{0.55, domain.RarityUncommon},
		{0.79, domain.RarityUncommon},
		{0.80, domain.RarityRare},
		{0.92, domain.RarityEpic},
		{0.98, domain.RarityLegendary},
		{0.999, domain.RarityLegendary},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, RollRarity(weights, tc.roll), "roll %v", tc.roll)
	}
}

func TestRollRarityDegenerateWeights(t *testing.T) {
	assert.Equal(t, domain.RarityCommon, RollRarity(nil, 0.5))
	assert.Equal(t, domain.RarityCommon, RollRarity(map[domain.Rarity]float64{}, 0.99))
}

func TestOpenGiftConsumesContainer(t *testing.T) {
	repo := repository.NewFakeAccountRepository()
	repo.Seed(&domain.Account{ID: "acc-1", Inventory: map[string]int{"gift_box": 2}})
	// First roll lands in the rare band, second picks within the pool.
	svc := NewServiceWithRand(repo, testCatalog(t), sequenceRand(0.85, 0.0))
	ctx := context.Background()

	result, err := svc.OpenGift(ctx, "acc-1", "gift_box")
	require.NoError(t, err)
	assert.Equal(t, "scarf_silk", result.ItemID)
	assert.Equal(t, domain.RarityRare, result.Rarity)
	assert.Equal(t, "scarf_silk (Rare)", result.Reveal)

	acc, err := repo.Get(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, 1, acc.Inventory["gift_box"])
	assert.Equal(t, 1, acc.Inventory["scarf_silk"])
}

func TestOpenGiftNeverRollsGiftItems(t *testing.T) {
	// The rare pool excludes gift_box even though gift_box is rare, so a
	// rare roll against a catalog whose only rare item is the container
	// degrades down to uncommon.
	cat, err := newCatalogWithout(t, domain.RarityRare)
	require.NoError(t, err)
	repo := repository.NewFakeAccountRepository()
	repo.Seed(&domain.Account{ID: "acc-1", Inventory: map[string]int{"gift_box": 1}})
	svc := NewServiceWithRand(repo, cat, sequenceRand(0.85, 0.0))

	result, err := svc.OpenGift(context.Background(), "acc-1", "gift_box")
	require.NoError(t, err)
	assert.Equal(t, domain.RarityUncommon, result.Rarity)
}

func TestOpenGiftErrors(t *testing.T) {
	repo := repository.NewFakeAccountRepository()
	repo.Seed(&domain.Account{ID: "acc-1", Inventory: map[string]int{"hat_leaf": 1}})
	svc := NewService(repo, testCatalog(t))
	ctx := context.Background()

	// Not a gift container
	_, err := svc.OpenGift(ctx, "acc-1", "hat_leaf")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Container not owned
	_, err = svc.OpenGift(ctx, "acc-1", "gift_box")
	assert.ErrorIs(t, err, domain.ErrInsufficientInventory)

	_, err = svc.OpenGift(ctx, "acc-1", "unicorn_horn")
	assert.ErrorIs(t, err, domain.ErrUnknownItem)
}
