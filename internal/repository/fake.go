package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pondkeeper/pondkeeper/internal/domain"
	"github.com/pondkeeper/pondkeeper/internal/utils"
)

// FakeAccountRepository is a stateful in-memory implementation of Account for
// testing. A single mutex serializes all mutations, which reproduces the
// conditional-write semantics of the real storage layer closely enough to
// exercise race behavior in integration-style unit tests.
type FakeAccountRepository struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
}

// NewFakeAccountRepository creates an empty fake repository.
func NewFakeAccountRepository() *FakeAccountRepository {
	return &FakeAccountRepository{accounts: make(map[string]*domain.Account)}
}

// Seed inserts an account directly, bypassing Create validation. Test helper.
func (f *FakeAccountRepository) Seed(acc *domain.Account) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[acc.ID] = acc
}

func (f *FakeAccountRepository) get(accountID string) (*domain.Account, error) {
	acc, ok := f.accounts[accountID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return acc, nil
}

func (f *FakeAccountRepository) Create(ctx context.Context, acc *domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.accounts[acc.ID]; exists {
		return fmt.Errorf("account %s already exists: %w", acc.ID, domain.ErrInvalidInput)
	}
	cp := cloneAccount(acc)
	f.accounts[acc.ID] = cp
	return nil
}

func (f *FakeAccountRepository) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, err := f.get(accountID)
	if err != nil {
		return nil, err
	}
	clone := cloneAccount(acc)
	clone.PruneStaleEquipped()
	return clone, nil
}

func (f *FakeAccountRepository) PurchaseItem(ctx context.Context, accountID, itemID string, qty, cost int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, err := f.get(accountID)
	if err != nil {
		return err
	}
	if acc.Balance < cost {
		return fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientFunds, cost, acc.Balance)
	}
	acc.Balance -= cost
	acc.Inventory[itemID] += qty
	acc.UnseenItemIDs = utils.AddToSet(acc.UnseenItemIDs, itemID)
	return nil
}

func (f *FakeAccountRepository) SellItem(ctx context.Context, accountID, itemID string, qty, proceeds int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, err := f.get(accountID)
	if err != nil {
		return err
	}
	if acc.Inventory[itemID] < qty {
		return fmt.Errorf("%w: need %d of %s, have %d", domain.ErrInsufficientInventory, qty, itemID, acc.Inventory[itemID])
	}
	acc.Inventory[itemID] -= qty
	if acc.Inventory[itemID] == 0 {
		delete(acc.Inventory, itemID)
	}
	acc.Balance += proceeds
	return nil
}

func (f *FakeAccountRepository) ExchangeItems(ctx context.Context, accountID string, consume map[string]int, rewardID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, err := f.get(accountID)
	if err != nil {
		return err
	}
	for itemID, qty := range consume {
		if acc.Inventory[itemID] < qty {
			return fmt.Errorf("%w: need %d of %s, have %d", domain.ErrInsufficientInventory, qty, itemID, acc.Inventory[itemID])
		}
	}
	for itemID, qty := range consume {
		acc.Inventory[itemID] -= qty
		if acc.Inventory[itemID] == 0 {
			delete(acc.Inventory, itemID)
		}
	}
	acc.Inventory[rewardID]++
	acc.UnseenItemIDs = utils.AddToSet(acc.UnseenItemIDs, rewardID)
	return nil
}

func (f *FakeAccountRepository) GrantItem(ctx context.Context, accountID, itemID string, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, err := f.get(accountID)
	if err != nil {
		return err
	}
	acc.Inventory[itemID] += qty
	acc.UnseenItemIDs = utils.AddToSet(acc.UnseenItemIDs, itemID)
	return nil
}

func (f *FakeAccountRepository) GrantFlies(ctx context.Context, accountID string, amount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, err := f.get(accountID)
	if err != nil {
		return err
	}
	acc.Balance += amount
	return nil
}

func (f *FakeAccountRepository) SetEquipped(ctx context.Context, accountID string, slot domain.Slot, itemID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, err := f.get(accountID)
	if err != nil {
		return err
	}
	if itemID == "" {
		delete(acc.Equipped, slot)
		return nil
	}
	if acc.Inventory[itemID] < 1 {
		return fmt.Errorf("%w: %s", domain.ErrNotOwned, itemID)
	}
	acc.Equipped[slot] = itemID
	return nil
}

func (f *FakeAccountRepository) MarkItemsSeen(ctx context.Context, accountID string, itemIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, err := f.get(accountID)
	if err != nil {
		return err
	}
	for _, id := range itemIDs {
		acc.UnseenItemIDs = utils.RemoveFromSet(acc.UnseenItemIDs, id)
	}
	return nil
}

func (f *FakeAccountRepository) ApplySettlement(ctx context.Context, accountID string, expectedLastUpdate time.Time, s domain.Settlement) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, err := f.get(accountID)
	if err != nil {
		return false, err
	}
	if !acc.LastHungerUpdate.Equal(expectedLastUpdate) {
		return false, nil
	}
	acc.Hunger = s.Hunger
	acc.LastHungerUpdate = s.LastHungerUpdate
	if s.StolenFlies > 0 {
		// Re-clamp at write time: the balance may have moved since the
		// settlement was computed.
		stolen := s.StolenFlies
		if stolen > acc.Balance {
			stolen = acc.Balance
		}
		acc.Balance -= stolen
		acc.StolenFlies += stolen
	}
	return true, nil
}

func (f *FakeAccountRepository) ClearStolenFlies(ctx context.Context, accountID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, err := f.get(accountID)
	if err != nil {
		return err
	}
	acc.StolenFlies = 0
	return nil
}

func (f *FakeAccountRepository) RecordTaskCompletion(ctx context.Context, accountID, today, taskID string, flies int, hungerCredit time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, err := f.get(accountID)
	if err != nil {
		return false, err
	}
	acc.ResetDailyStatsIfStale(today)
	if acc.HasCompletedTask(taskID) {
		return false, nil
	}
	acc.DailyStats.CompletedTaskIDs = append(acc.DailyStats.CompletedTaskIDs, taskID)
	acc.DailyStats.TasksCompletedToday++
	acc.Balance += flies
	acc.Hunger += hungerCredit
	if acc.Hunger > domain.MaxHunger {
		acc.Hunger = domain.MaxHunger
	}
	return true, nil
}

func (f *FakeAccountRepository) ClaimMilestoneGift(ctx context.Context, accountID, today string, expectedClaimed int, giftItemID string, taskCount int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, err := f.get(accountID)
	if err != nil {
		return false, err
	}
	acc.ResetDailyStatsIfStale(today)
	if acc.DailyStats.MilestoneGiftsClaimedToday != expectedClaimed {
		return false, nil
	}
	acc.DailyStats.MilestoneGiftsClaimedToday++
	acc.DailyStats.TaskCountAtLastGift = taskCount
	acc.Inventory[giftItemID]++
	acc.UnseenItemIDs = utils.AddToSet(acc.UnseenItemIDs, giftItemID)
	return true, nil
}

func (f *FakeAccountRepository) ClaimCalendarDay(ctx context.Context, accountID, month string, day int, date string, streak int, flies int, items map[string]int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, err := f.get(accountID)
	if err != nil {
		return false, err
	}
	acc.ResetCalendarIfStale(month)
	if acc.HasClaimedDay(day) {
		return false, nil
	}
	acc.CalendarState.ClaimedDays = append(acc.CalendarState.ClaimedDays, day)
	acc.CalendarState.LastClaimDate = date
	acc.CalendarState.Streak = streak
	acc.Balance += flies
	for itemID, qty := range items {
		acc.Inventory[itemID] += qty
		acc.UnseenItemIDs = utils.AddToSet(acc.UnseenItemIDs, itemID)
	}
	return true, nil
}

func (f *FakeAccountRepository) UpdateNotificationPrefs(ctx context.Context, accountID string, prefs domain.NotificationPrefs) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, err := f.get(accountID)
	if err != nil {
		return err
	}
	acc.NotificationPrefs = prefs
	return nil
}

func (f *FakeAccountRepository) SetLastNotified(ctx context.Context, accountID string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, err := f.get(accountID)
	if err != nil {
		return err
	}
	stamp := at
	acc.NotificationPrefs.LastNotifiedAt = &stamp
	return nil
}

func (f *FakeAccountRepository) RemoveDeviceTokens(ctx context.Context, accountID string, tokens []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, err := f.get(accountID)
	if err != nil {
		return err
	}
	for _, token := range tokens {
		acc.NotificationPrefs.DeviceTokens = utils.RemoveFromSet(acc.NotificationPrefs.DeviceTokens, token)
	}
	return nil
}

func (f *FakeAccountRepository) ListNotifiable(ctx context.Context) ([]*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Account
	for _, acc := range f.accounts {
		if acc.NotificationPrefs.Enabled && len(acc.NotificationPrefs.DeviceTokens) > 0 {
			out = append(out, cloneAccount(acc))
		}
	}
	return out, nil
}

func cloneAccount(acc *domain.Account) *domain.Account {
	cp := *acc
	cp.Inventory = make(map[string]int, len(acc.Inventory))
	for k, v := range acc.Inventory {
		cp.Inventory[k] = v
	}
	cp.Equipped = make(map[domain.Slot]string, len(acc.Equipped))
	for k, v := range acc.Equipped {
		cp.Equipped[k] = v
	}
	cp.UnseenItemIDs = append([]string(nil), acc.UnseenItemIDs...)
	cp.DailyStats.CompletedTaskIDs = append([]string(nil), acc.DailyStats.CompletedTaskIDs...)
	cp.CalendarState.ClaimedDays = append([]int(nil), acc.CalendarState.ClaimedDays...)
	cp.NotificationPrefs.ActivityHours = append([]int(nil), acc.NotificationPrefs.ActivityHours...)
	cp.NotificationPrefs.DeviceTokens = append([]string(nil), acc.NotificationPrefs.DeviceTokens...)
	if acc.NotificationPrefs.LastNotifiedAt != nil {
		stamp := *acc.NotificationPrefs.LastNotifiedAt
		cp.NotificationPrefs.LastNotifiedAt = &stamp
	}
	return &cp
}
