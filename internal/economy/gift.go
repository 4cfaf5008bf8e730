package economy

import (
	"context"
	"fmt"

	"github.com/pondkeeper/pondkeeper/internal/domain"
	"github.com/pondkeeper/pondkeeper/internal/logger"
)

func (s *service) OpenGift(ctx context.Context, accountID, giftItemID string) (*RewardResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgOpenGiftCalled, "account_id", accountID, "gift", giftItemID)

	gift, err := s.getItem(giftItemID)
	if err != nil {
		return nil, err
	}
	if !gift.Gift {
		return nil, fmt.Errorf("%w: %s is not a gift", domain.ErrInvalidInput, giftItemID)
	}

	rolled := RollRarity(s.catalog.GiftWeights(), s.rnd())

	// Gift items never roll themselves, so an empty pool at the rolled tier
	// degrades to the next lower non-empty tier
	pool, rarity, ok := s.degradeToNonEmpty(rolled)
	if !ok {
		log.Error("No non-empty reward pool for gift roll", "rolled", rolled)
		return nil, fmt.Errorf("%w: catalog has no gift rewards", domain.ErrNoRewardAvailable)
	}

	reward := pickUniform(pool, s.rnd)

	if err := s.repo.ExchangeItems(ctx, accountID, map[string]int{giftItemID: 1}, reward.ID); err != nil {
		return nil, fmt.Errorf(ErrMsgOpenGiftFailed, err)
	}

	log.Info(LogMsgGiftOpened, "account_id", accountID, "gift", giftItemID, "rolled", rolled, "reward", reward.ID, "rarity", rarity)
	return &RewardResult{ItemID: reward.ID, Rarity: reward.Rarity, Reveal: revealLine(reward)}, nil
}
