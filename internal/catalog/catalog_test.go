package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pondkeeper/pondkeeper/internal/domain"
)

func testItems() []domain.Item {
	return []domain.Item{
		{ID: "hat_leaf", Slot: domain.SlotHat, Rarity: domain.RarityCommon, Price: 10},
		{ID: "hat_acorn", Slot: domain.SlotHat, Rarity: domain.RarityCommon, Price: 10},
		{ID: "glasses_round", Slot: domain.SlotGlasses, Rarity: domain.RarityUncommon, Price: 25},
		{ID: "scarf_silk", Slot: domain.SlotScarf, Rarity: domain.RarityRare, Price: 60},
		{ID: "gift_box", Rarity: domain.RarityRare, Price: 100, Gift: true},
	}
}

func TestNewValidates(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err)

	_, err = New([]domain.Item{{ID: "", Rarity: domain.RarityCommon}}, nil)
	assert.ErrorContains(t, err, "empty id")

	_, err = New([]domain.Item{{ID: "x", Rarity: "MYTHIC"}}, nil)
	assert.ErrorContains(t, err, "unknown rarity")

	_, err = New([]domain.Item{{ID: "x", Rarity: domain.RarityCommon, Price: -1}}, nil)
	assert.ErrorContains(t, err, "negative price")

	items := testItems()
	items = append(items, items[0])
	_, err = New(items, nil)
	assert.ErrorContains(t, err, "duplicate")
}

func TestRewardPoolExcludesGifts(t *testing.T) {
	c, err := New(testItems(), nil)
	require.NoError(t, err)

	pool := c.RewardPool(domain.RarityRare)
	require.Len(t, pool, 1)
	assert.Equal(t, "scarf_silk", pool[0].ID)
}

func TestRewardPoolDeterministicOrder(t *testing.T) {
	c, err := New(testItems(), nil)
	require.NoError(t, err)

	pool := c.RewardPool(domain.RarityCommon)
	require.Len(t, pool, 2)
	assert.Equal(t, "hat_acorn", pool[0].ID)
	assert.Equal(t, "hat_leaf", pool[1].ID)
}

func TestGiftWeightOverrides(t *testing.T) {
	c, err := New(testItems(), map[domain.Rarity]float64{domain.RarityCommon: 0.9})
	require.NoError(t, err)

	weights := c.GiftWeights()
	assert.Equal(t, 0.9, weights[domain.RarityCommon])
	assert.Equal(t, DefaultGiftWeights[domain.RarityLegendary], weights[domain.RarityLegendary])

	_, err = New(testItems(), map[domain.Rarity]float64{"MYTHIC": 0.1})
	assert.Error(t, err)

	_, err = New(testItems(), map[domain.Rarity]float64{domain.RarityCommon: -0.1})
	assert.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	data := `{
		"items": [
			{"item_id": "hat_leaf", "slot": "hat", "rarity": "COMMON", "price": 10},
			{"item_id": "gift_box", "rarity": "RARE", "price": 100, "gift": true}
		],
		"gift_weights": {"COMMON": 0.8}
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	item, ok := c.Get("hat_leaf")
	require.True(t, ok)
	assert.Equal(t, domain.SlotHat, item.Slot)
	assert.Equal(t, 0.8, c.GiftWeights()[domain.RarityCommon])

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
