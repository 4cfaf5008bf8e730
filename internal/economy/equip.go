package economy

import (
	"context"
	"fmt"

	"github.com/pondkeeper/pondkeeper/internal/domain"
	"github.com/pondkeeper/pondkeeper/internal/logger"
)

func (s *service) Equip(ctx context.Context, accountID string, slot domain.Slot, itemID string) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgEquipCalled, "account_id", accountID, "slot", slot, "item", itemID)

	// Empty item ID always succeeds: it unequips the slot
	if itemID != "" {
		item, err := s.getItem(itemID)
		if err != nil {
			return err
		}
		if item.Slot != slot {
			return fmt.Errorf("%w: %s belongs to slot %s, not %s", domain.ErrSlotMismatch, itemID, item.Slot, slot)
		}
	}

	if err := s.repo.SetEquipped(ctx, accountID, slot, itemID); err != nil {
		return fmt.Errorf(ErrMsgEquipFailed, err)
	}
	return nil
}
