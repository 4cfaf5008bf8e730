package economy

import (
	"context"
	"errors"
	"fmt"

	"github.com/pondkeeper/pondkeeper/internal/domain"
	"github.com/pondkeeper/pondkeeper/internal/logger"
)

func (s *service) TradeUp(ctx context.Context, accountID string, itemIDs []string) (*RewardResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgTradeUpCalled, "account_id", accountID, "count", len(itemIDs))

	consume, rarity, err := s.validateTradeSet(itemIDs)
	if err != nil {
		return nil, err
	}

	next, ok := rarity.Next()
	if !ok {
		return nil, fmt.Errorf("%w: %s items cannot be traded up", domain.ErrInvalidTradeSet, rarity)
	}

	pool := s.catalog.RewardPool(next)
	if len(pool) == 0 {
		// Configuration fault: the catalog has no payout for this tier
		log.Error("Empty trade-up reward pool", "rarity", next)
		return nil, fmt.Errorf("%w: no %s items in catalog", domain.ErrNoRewardAvailable, next)
	}

	reward := pickUniform(pool, s.rnd)

	if err := s.repo.ExchangeItems(ctx, accountID, consume, reward.ID); err != nil {
		// An ownership shortfall at write time is an invalid trade set from
		// the caller's point of view
		if errors.Is(err, domain.ErrInsufficientInventory) {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidTradeSet, err)
		}
		return nil, fmt.Errorf(ErrMsgTradeUpFailed, err)
	}

	log.Info(LogMsgTradeUpDone, "account_id", accountID, "rarity", rarity, "reward", reward.ID)
	return &RewardResult{ItemID: reward.ID, Rarity: reward.Rarity, Reveal: revealLine(reward)}, nil
}

// validateTradeSet checks count, catalog membership and rarity uniformity,
// returning the consumption multiset and the shared rarity.
func (s *service) validateTradeSet(itemIDs []string) (map[string]int, domain.Rarity, error) {
	if len(itemIDs) != domain.TradeUpSetSize {
		return nil, "", fmt.Errorf("%w: expected %d items, got %d", domain.ErrInvalidTradeSet, domain.TradeUpSetSize, len(itemIDs))
	}

	consume := make(map[string]int)
	var rarity domain.Rarity
	for i, id := range itemIDs {
		item, ok := s.catalog.Get(id)
		if !ok {
			return nil, "", fmt.Errorf("%w: %s", domain.ErrUnknownItem, id)
		}
		if i == 0 {
			rarity = item.Rarity
		} else if item.Rarity != rarity {
			return nil, "", fmt.Errorf("%w: mixed rarities %s and %s", domain.ErrInvalidTradeSet, rarity, item.Rarity)
		}
		consume[id]++
	}
	return consume, rarity, nil
}
