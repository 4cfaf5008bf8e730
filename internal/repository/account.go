// Package repository defines the storage interfaces consumed by the services.
// Every mutating method is a single atomic operation: the stated precondition
// is checked by the same storage operation that performs the write, so two
// concurrent calls can never both succeed when only one has sufficient
// funds or stock. Read-then-write sequences are not acceptable here.
package repository

import (
	"context"
	"time"

	"github.com/pondkeeper/pondkeeper/internal/domain"
)

// Account is the storage contract for the per-user record.
type Account interface {
	// Create inserts a new account record.
	Create(ctx context.Context, acc *domain.Account) error

	// Get returns the account or domain.ErrAccountNotFound.
	Get(ctx context.Context, accountID string) (*domain.Account, error)

	// PurchaseItem debits cost and credits qty of itemID, marking it unseen.
	// Precondition: balance >= cost. Fails with domain.ErrInsufficientFunds.
	PurchaseItem(ctx context.Context, accountID, itemID string, qty, cost int) error

	// SellItem debits qty of itemID (dropping the entry at zero) and credits
	// proceeds. Precondition: inventory[itemID] >= qty. Fails with
	// domain.ErrInsufficientInventory.
	SellItem(ctx context.Context, accountID, itemID string, qty, proceeds int) error

	// ExchangeItems debits every entry of consume and credits one rewardID,
	// marking it unseen. Precondition: every consumed quantity is owned.
	// Fails with domain.ErrInsufficientInventory. Used by trade-up and
	// gift opening.
	ExchangeItems(ctx context.Context, accountID string, consume map[string]int, rewardID string) error

	// GrantItem credits qty of itemID and marks it unseen.
	GrantItem(ctx context.Context, accountID, itemID string, qty int) error

	// GrantFlies credits amount to the balance.
	GrantFlies(ctx context.Context, accountID string, amount int) error

	// SetEquipped wears itemID in slot; empty itemID unequips.
	// Precondition for non-empty IDs: inventory[itemID] >= 1. Fails with
	// domain.ErrNotOwned.
	SetEquipped(ctx context.Context, accountID string, slot domain.Slot, itemID string) error

	// MarkItemsSeen removes itemIDs from the unseen set.
	MarkItemsSeen(ctx context.Context, accountID string, itemIDs []string) error

	// ApplySettlement applies a decay settlement guarded by a compare-and-swap
	// on LastHungerUpdate. Returns false without error when another writer
	// settled first; losing the race is not a failure.
	ApplySettlement(ctx context.Context, accountID string, expectedLastUpdate time.Time, s domain.Settlement) (bool, error)

	// ClearStolenFlies zeroes the pending-acknowledgement counter.
	ClearStolenFlies(ctx context.Context, accountID string) error

	// RecordTaskCompletion counts taskID for today, resetting stale daily
	// stats first, and credits the task rewards. Returns false when taskID
	// was already counted today.
	RecordTaskCompletion(ctx context.Context, accountID, today, taskID string, flies int, hungerCredit time.Duration) (bool, error)

	// ClaimMilestoneGift increments the daily claim counter and grants the
	// gift item, guarded by a compare-and-swap on the current counter value
	// and today's date. Returns false when the counter moved underneath the
	// caller.
	ClaimMilestoneGift(ctx context.Context, accountID, today string, expectedClaimed int, giftItemID string, taskCount int) (bool, error)

	// ClaimCalendarDay appends day to the month's claimed set and applies the
	// reward. Precondition: month matches and day not yet claimed; returns
	// false when a concurrent claim won.
	ClaimCalendarDay(ctx context.Context, accountID, month string, day int, date string, streak int, flies int, items map[string]int) (bool, error)

	// UpdateNotificationPrefs stores the full preference block. Last write
	// wins; the activity histogram tolerates lost samples.
	UpdateNotificationPrefs(ctx context.Context, accountID string, prefs domain.NotificationPrefs) error

	// SetLastNotified stamps the reminder throttle clock.
	SetLastNotified(ctx context.Context, accountID string, at time.Time) error

	// RemoveDeviceTokens prunes permanently-invalid device tokens.
	RemoveDeviceTokens(ctx context.Context, accountID string, tokens []string) error

	// ListNotifiable returns accounts with notifications enabled and at
	// least one device token.
	ListNotifiable(ctx context.Context) ([]*domain.Account, error)
}
