package economy

import (
	"context"
	"fmt"

	"github.com/pondkeeper/pondkeeper/internal/logger"
)

func (s *service) Purchase(ctx context.Context, accountID, itemID string, quantity int) (*PurchaseResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgPurchaseCalled, "account_id", accountID, "item", itemID, "quantity", quantity)

	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	item, err := s.getItem(itemID)
	if err != nil {
		return nil, err
	}

	cost := item.Price * quantity

	// The conditional write is the sole arbiter: the balance precondition is
	// checked by the same storage operation that debits it.
	if err := s.repo.PurchaseItem(ctx, accountID, itemID, quantity, cost); err != nil {
		return nil, fmt.Errorf(ErrMsgPurchaseFailed, err)
	}

	log.Info(LogMsgItemPurchased, "account_id", accountID, "item", itemID, "quantity", quantity, "cost", cost)
	return &PurchaseResult{ItemID: itemID, Quantity: quantity, Cost: cost}, nil
}

func (s *service) Sell(ctx context.Context, accountID, itemID string, quantity int) (*SellResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSellCalled, "account_id", accountID, "item", itemID, "quantity", quantity)

	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	item, err := s.getItem(itemID)
	if err != nil {
		return nil, err
	}

	proceeds := item.SellPrice() * quantity

	if err := s.repo.SellItem(ctx, accountID, itemID, quantity, proceeds); err != nil {
		return nil, fmt.Errorf(ErrMsgSellFailed, err)
	}

	log.Info(LogMsgItemSold, "account_id", accountID, "item", itemID, "quantity", quantity, "proceeds", proceeds)
	return &SellResult{ItemID: itemID, Quantity: quantity, Proceeds: proceeds}, nil
}
