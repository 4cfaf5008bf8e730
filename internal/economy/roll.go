package economy

import (
	"github.com/pondkeeper/pondkeeper/internal/domain"
)

// rarityRollOrder walks tiers from most to least common when mapping a
// uniform roll onto the configured weights.
var rarityRollOrder = []domain.Rarity{
	domain.RarityCommon,
	domain.RarityUncommon,
	domain.RarityRare,
	domain.RarityEpic,
	domain.RarityLegendary,
}

// RollRarity maps a uniform roll in [0,1) onto the weighted rarity
// distribution. Pure function so reward rolls test deterministically.
func RollRarity(weights map[domain.Rarity]float64, roll float64) domain.Rarity {
	total := 0.0
	for _, rarity := range rarityRollOrder {
		total += weights[rarity]
	}
	if total <= 0 {
		return domain.RarityCommon
	}

	target := roll * total
	acc := 0.0
	for _, rarity := range rarityRollOrder {
		acc += weights[rarity]
		if target < acc {
			return rarity
		}
	}
	// roll == 1.0 edge
	return rarityRollOrder[len(rarityRollOrder)-1]
}

// pickUniform draws one item uniformly from a non-empty pool.
func pickUniform(pool []domain.Item, rnd func() float64) domain.Item {
	idx := int(rnd() * float64(len(pool)))
	if idx >= len(pool) {
		idx = len(pool) - 1
	}
	return pool[idx]
}

// degradeToNonEmpty walks the rolled rarity downward until a non-empty reward
// pool is found. Returns false when every tier at or below start is empty.
func (s *service) degradeToNonEmpty(start domain.Rarity) ([]domain.Item, domain.Rarity, bool) {
	rarity := start
	for {
		pool := s.catalog.RewardPool(rarity)
		if len(pool) > 0 {
			return pool, rarity, true
		}
		lower, ok := rarity.Prev()
		if !ok {
			return nil, rarity, false
		}
		rarity = lower
	}
}
