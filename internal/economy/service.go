package economy

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pondkeeper/pondkeeper/internal/catalog"
	"github.com/pondkeeper/pondkeeper/internal/domain"
	"github.com/pondkeeper/pondkeeper/internal/repository"
	"github.com/pondkeeper/pondkeeper/internal/utils"
)

// PurchaseResult contains the result of a purchase operation
type PurchaseResult struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
	Cost     int    `json:"cost"`
}

// SellResult contains the result of a sell operation
type SellResult struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
	Proceeds int    `json:"proceeds"`
}

// RewardResult describes the item produced by a trade-up or gift opening
type RewardResult struct {
	ItemID string        `json:"item_id"`
	Rarity domain.Rarity `json:"rarity"`

	// Reveal is the display line shown to the user, e.g. "Wizard Hat (Rare)".
	Reveal string `json:"reveal"`
}

func revealLine(item domain.Item) string {
	name := item.Name
	if name == "" {
		name = item.ID
	}
	tier := cases.Title(language.English).String(strings.ToLower(string(item.Rarity)))
	return fmt.Sprintf("%s (%s)", name, tier)
}

// Service defines the interface for economy operations
type Service interface {
	Purchase(ctx context.Context, accountID, itemID string, quantity int) (*PurchaseResult, error)
	Sell(ctx context.Context, accountID, itemID string, quantity int) (*SellResult, error)
	TradeUp(ctx context.Context, accountID string, itemIDs []string) (*RewardResult, error)
	OpenGift(ctx context.Context, accountID, giftItemID string) (*RewardResult, error)
	Equip(ctx context.Context, accountID string, slot domain.Slot, itemID string) error
	MarkItemsSeen(ctx context.Context, accountID string, itemIDs []string) error
}

type service struct {
	repo    repository.Account
	catalog *catalog.Catalog
	rnd     func() float64
}

// NewService creates a new economy service
func NewService(repo repository.Account, cat *catalog.Catalog) Service {
	return &service{
		repo:    repo,
		catalog: cat,
		rnd:     utils.RandomFloat,
	}
}

// NewServiceWithRand creates an economy service with an injected random
// source, for deterministic reward rolls in tests.
func NewServiceWithRand(repo repository.Account, cat *catalog.Catalog, rnd func() float64) Service {
	return &service{repo: repo, catalog: cat, rnd: rnd}
}

// validateQuantity rejects non-positive and oversized transaction quantities
func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf(ErrMsgInvalidQuantityFmt, quantity, domain.ErrInvalidInput)
	}
	if quantity > MaxTransactionQuantity {
		return fmt.Errorf(ErrMsgQuantityExceedsMaxFmt, quantity, MaxTransactionQuantity, domain.ErrInvalidInput)
	}
	return nil
}

// getItem resolves a catalog item or fails with ErrUnknownItem
func (s *service) getItem(itemID string) (domain.Item, error) {
	item, ok := s.catalog.Get(itemID)
	if !ok {
		return domain.Item{}, fmt.Errorf("%w: %s", domain.ErrUnknownItem, itemID)
	}
	return item, nil
}

func (s *service) MarkItemsSeen(ctx context.Context, accountID string, itemIDs []string) error {
	if len(itemIDs) == 0 {
		return fmt.Errorf("%w: no item ids", domain.ErrInvalidInput)
	}
	if err := s.repo.MarkItemsSeen(ctx, accountID, itemIDs); err != nil {
		return fmt.Errorf(ErrMsgMarkSeenFailed, err)
	}
	return nil
}
