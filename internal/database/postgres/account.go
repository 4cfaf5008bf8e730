// Package postgres implements the account repository on PostgreSQL. Single-key
// mutations are one conditional UPDATE whose WHERE clause carries the business
// precondition; RowsAffected arbitrates who wins a race. Multi-key mutations
// (trade-up consumption, daily-stat claims) run in a short row-locked
// transaction on the single account row, which serializes them the same way.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pondkeeper/pondkeeper/internal/domain"
	"github.com/pondkeeper/pondkeeper/internal/logger"
	"github.com/pondkeeper/pondkeeper/internal/utils"
)

// AccountRepository implements repository.Account for PostgreSQL.
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, acc *domain.Account) error {
	inventory, equipped, unseen, stats, calendar, prefs, err := marshalState(acc)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO accounts (account_id, username, balance, stolen_flies, hunger_ms,
			last_hunger_update, inventory, equipped, unseen_items, daily_stats,
			calendar_state, notification_prefs, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		acc.ID, acc.Username, acc.Balance, acc.StolenFlies, acc.Hunger.Milliseconds(),
		acc.LastHungerUpdate, inventory, equipped, unseen, stats, calendar, prefs,
		acc.CreatedAt, acc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *AccountRepository) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE account_id = $1`, accountID)
	return scanAccount(row)
}

func (r *AccountRepository) PurchaseItem(ctx context.Context, accountID, itemID string, qty, cost int) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE accounts SET
			balance = balance - $3,
			inventory = jsonb_set(inventory, ARRAY[$2],
				to_jsonb(COALESCE((inventory->>$2)::int, 0) + $4)),
			unseen_items = CASE WHEN unseen_items ? $2
				THEN unseen_items ELSE unseen_items || to_jsonb($2) END,
			updated_at = NOW()
		WHERE account_id = $1 AND balance >= $3`,
		accountID, itemID, cost, qty)
	if err != nil {
		return fmt.Errorf(ErrMsgUpdateFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return r.missOrPrecondition(ctx, accountID, domain.ErrInsufficientFunds)
	}
	return nil
}

func (r *AccountRepository) SellItem(ctx context.Context, accountID, itemID string, qty, proceeds int) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE accounts SET
			balance = balance + $4,
			inventory = CASE WHEN (inventory->>$2)::int = $3
				THEN inventory - $2
				ELSE jsonb_set(inventory, ARRAY[$2], to_jsonb((inventory->>$2)::int - $3)) END,
			updated_at = NOW()
		WHERE account_id = $1 AND COALESCE((inventory->>$2)::int, 0) >= $3`,
		accountID, itemID, qty, proceeds)
	if err != nil {
		return fmt.Errorf(ErrMsgUpdateFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return r.missOrPrecondition(ctx, accountID, domain.ErrInsufficientInventory)
	}
	return nil
}

func (r *AccountRepository) ExchangeItems(ctx context.Context, accountID string, consume map[string]int, rewardID string) error {
	return r.inAccountTx(ctx, accountID, func(acc *domain.Account) (bool, error) {
		for itemID, qty := range consume {
			if acc.Inventory[itemID] < qty {
				return false, fmt.Errorf("%w: need %d of %s, have %d",
					domain.ErrInsufficientInventory, qty, itemID, acc.Inventory[itemID])
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
		return true, nil
	})
}

func (r *AccountRepository) GrantItem(ctx context.Context, accountID, itemID string, qty int) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE accounts SET
			inventory = jsonb_set(inventory, ARRAY[$2],
				to_jsonb(COALESCE((inventory->>$2)::int, 0) + $3)),
			unseen_items = CASE WHEN unseen_items ? $2
				THEN unseen_items ELSE unseen_items || to_jsonb($2) END,
			updated_at = NOW()
		WHERE account_id = $1`,
		accountID, itemID, qty)
	if err != nil {
		return fmt.Errorf(ErrMsgUpdateFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) GrantFlies(ctx context.Context, accountID string, amount int) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE accounts SET balance = balance + $2, updated_at = NOW()
		WHERE account_id = $1`,
		accountID, amount)
	if err != nil {
		return fmt.Errorf(ErrMsgUpdateFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) SetEquipped(ctx context.Context, accountID string, slot domain.Slot, itemID string) error {
	if itemID == "" {
		tag, err := r.db.Exec(ctx, `
			UPDATE accounts SET equipped = equipped - $2::text, updated_at = NOW()
			WHERE account_id = $1`,
			accountID, string(slot))
		if err != nil {
			return fmt.Errorf(ErrMsgUpdateFailed, err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrAccountNotFound
		}
		return nil
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE accounts SET
			equipped = jsonb_set(equipped, ARRAY[$2], to_jsonb($3::text)),
			updated_at = NOW()
		WHERE account_id = $1 AND COALESCE((inventory->>$3)::int, 0) >= 1`,
		accountID, string(slot), itemID)
	if err != nil {
		return fmt.Errorf(ErrMsgUpdateFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return r.missOrPrecondition(ctx, accountID, domain.ErrNotOwned)
	}
	return nil
}

func (r *AccountRepository) MarkItemsSeen(ctx context.Context, accountID string, itemIDs []string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE accounts SET
			unseen_items = COALESCE(
				(SELECT jsonb_agg(to_jsonb(e))
				 FROM jsonb_array_elements_text(unseen_items) AS t(e)
				 WHERE e <> ALL($2)),
				'[]'::jsonb),
			updated_at = NOW()
		WHERE account_id = $1`,
		accountID, itemIDs)
	if err != nil {
		return fmt.Errorf(ErrMsgUpdateFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) ApplySettlement(ctx context.Context, accountID string, expectedLastUpdate time.Time, s domain.Settlement) (bool, error) {
	// Both LEAST expressions see the pre-update balance, so the steal is
	// re-clamped against whatever the balance is at write time.
	tag, err := r.db.Exec(ctx, `
		UPDATE accounts SET
			hunger_ms = $3,
			last_hunger_update = $4,
			stolen_flies = stolen_flies + LEAST($5, balance),
			balance = balance - LEAST($5, balance),
			updated_at = NOW()
		WHERE account_id = $1 AND last_hunger_update = $2`,
		accountID, expectedLastUpdate, s.Hunger.Milliseconds(), s.LastHungerUpdate, s.StolenFlies)
	if err != nil {
		return false, fmt.Errorf(ErrMsgUpdateFailed, err)
	}
	if tag.RowsAffected() == 0 {
		if err := r.missOrPrecondition(ctx, accountID, nil); err != nil {
			return false, err
		}
		// CAS lost to a concurrent settler
		return false, nil
	}
	return true, nil
}

func (r *AccountRepository) ClearStolenFlies(ctx context.Context, accountID string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE accounts SET stolen_flies = 0, updated_at = NOW()
		WHERE account_id = $1`,
		accountID)
	if err != nil {
		return fmt.Errorf(ErrMsgUpdateFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) RecordTaskCompletion(ctx context.Context, accountID, today, taskID string, flies int, hungerCredit time.Duration) (bool, error) {
	applied := false
	err := r.inAccountTx(ctx, accountID, func(acc *domain.Account) (bool, error) {
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
		applied = true
		return true, nil
	})
	return applied, err
}

func (r *AccountRepository) ClaimMilestoneGift(ctx context.Context, accountID, today string, expectedClaimed int, giftItemID string, taskCount int) (bool, error) {
	applied := false
	err := r.inAccountTx(ctx, accountID, func(acc *domain.Account) (bool, error) {
		acc.ResetDailyStatsIfStale(today)
		if acc.DailyStats.MilestoneGiftsClaimedToday != expectedClaimed {
			return false, nil
		}
		acc.DailyStats.MilestoneGiftsClaimedToday++
		acc.DailyStats.TaskCountAtLastGift = taskCount
		acc.Inventory[giftItemID]++
		acc.UnseenItemIDs = utils.AddToSet(acc.UnseenItemIDs, giftItemID)
		applied = true
		return true, nil
	})
	return applied, err
}

func (r *AccountRepository) ClaimCalendarDay(ctx context.Context, accountID, month string, day int, date string, streak int, flies int, items map[string]int) (bool, error) {
	applied := false
	err := r.inAccountTx(ctx, accountID, func(acc *domain.Account) (bool, error) {
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
		applied = true
		return true, nil
	})
	return applied, err
}

func (r *AccountRepository) UpdateNotificationPrefs(ctx context.Context, accountID string, prefs domain.NotificationPrefs) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf(ErrMsgMarshalFailed, err)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE accounts SET notification_prefs = $2, updated_at = NOW()
		WHERE account_id = $1`,
		accountID, data)
	if err != nil {
		return fmt.Errorf(ErrMsgUpdateFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) SetLastNotified(ctx context.Context, accountID string, at time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE accounts SET
			notification_prefs = jsonb_set(notification_prefs,
				'{last_notified_at}', to_jsonb($2::text)),
			updated_at = NOW()
		WHERE account_id = $1`,
		accountID, at.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf(ErrMsgUpdateFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) RemoveDeviceTokens(ctx context.Context, accountID string, tokens []string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE accounts SET
			notification_prefs = jsonb_set(notification_prefs, '{device_tokens}',
				COALESCE(
					(SELECT jsonb_agg(to_jsonb(e))
					 FROM jsonb_array_elements_text(notification_prefs->'device_tokens') AS t(e)
					 WHERE e <> ALL($2)),
					'[]'::jsonb)),
			updated_at = NOW()
		WHERE account_id = $1`,
		accountID, tokens)
	if err != nil {
		return fmt.Errorf(ErrMsgUpdateFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) ListNotifiable(ctx context.Context) ([]*domain.Account, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+accountColumns+` FROM accounts
		WHERE notification_prefs->>'enabled' = 'true'
		  AND jsonb_array_length(notification_prefs->'device_tokens') > 0`)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgQueryFailed, err)
	}
	defer rows.Close()

	var out []*domain.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(ErrMsgQueryFailed, err)
	}
	return out, nil
}

// inAccountTx locks the account row, runs mutate on the decoded record, and
// writes the whole mutable state back iff mutate reports a change. The row
// lock serializes concurrent multi-key mutations on the same account.
func (r *AccountRepository) inAccountTx(ctx context.Context, accountID string, mutate func(*domain.Account) (bool, error)) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgTxBeginFailed, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			log.Warn("Failed to rollback transaction", "error", err)
		}
	}()

	row := tx.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE account_id = $1 FOR UPDATE`, accountID)
	acc, err := scanAccount(row)
	if err != nil {
		return err
	}

	changed, err := mutate(acc)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	inventory, equipped, unseen, stats, calendar, prefs, err := marshalState(acc)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE accounts SET
			balance = $2, stolen_flies = $3, hunger_ms = $4, last_hunger_update = $5,
			inventory = $6, equipped = $7, unseen_items = $8, daily_stats = $9,
			calendar_state = $10, notification_prefs = $11, updated_at = NOW()
		WHERE account_id = $1`,
		accountID, acc.Balance, acc.StolenFlies, acc.Hunger.Milliseconds(),
		acc.LastHungerUpdate, inventory, equipped, unseen, stats, calendar, prefs)
	if err != nil {
		return fmt.Errorf(ErrMsgUpdateFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgTxCommitFailed, err)
	}
	return nil
}

// missOrPrecondition resolves a zero-row conditional update into either
// "account does not exist" or the supplied precondition error.
func (r *AccountRepository) missOrPrecondition(ctx context.Context, accountID string, precondition error) error {
	var one int
	err := r.db.QueryRow(ctx,
		`SELECT 1 FROM accounts WHERE account_id = $1`, accountID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrAccountNotFound
	}
	if err != nil {
		return fmt.Errorf(ErrMsgQueryFailed, err)
	}
	return precondition
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		acc      domain.Account
		hungerMS int64
		inventory, equipped, unseen,
		stats, calendar, prefs []byte
	)
	err := row.Scan(&acc.ID, &acc.Username, &acc.Balance, &acc.StolenFlies, &hungerMS,
		&acc.LastHungerUpdate, &inventory, &equipped, &unseen, &stats,
		&calendar, &prefs, &acc.CreatedAt, &acc.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgScanFailed, err)
	}

	acc.Hunger = time.Duration(hungerMS) * time.Millisecond
	if err := unmarshalInto(inventory, &acc.Inventory); err != nil {
		return nil, err
	}
	if err := unmarshalInto(equipped, &acc.Equipped); err != nil {
		return nil, err
	}
	if err := unmarshalInto(unseen, &acc.UnseenItemIDs); err != nil {
		return nil, err
	}
	if err := unmarshalInto(stats, &acc.DailyStats); err != nil {
		return nil, err
	}
	if err := unmarshalInto(calendar, &acc.CalendarState); err != nil {
		return nil, err
	}
	if err := unmarshalInto(prefs, &acc.NotificationPrefs); err != nil {
		return nil, err
	}
	if acc.Inventory == nil {
		acc.Inventory = map[string]int{}
	}
	if acc.Equipped == nil {
		acc.Equipped = map[domain.Slot]string{}
	}
	acc.PruneStaleEquipped()
	return &acc, nil
}

func unmarshalInto(data []byte, target any) error {
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf(ErrMsgScanFailed, err)
	}
	return nil
}

// marshalState serializes the JSONB columns. Nil slices are written as empty
// arrays so the in-database json operators never meet a scalar null.
func marshalState(acc *domain.Account) (inventory, equipped, unseen, stats, calendar, prefs []byte, err error) {
	inventoryMap := acc.Inventory
	if inventoryMap == nil {
		inventoryMap = map[string]int{}
	}
	equippedMap := acc.Equipped
	if equippedMap == nil {
		equippedMap = map[domain.Slot]string{}
	}
	unseenIDs := acc.UnseenItemIDs
	if unseenIDs == nil {
		unseenIDs = []string{}
	}
	statsCopy := acc.DailyStats
	if statsCopy.CompletedTaskIDs == nil {
		statsCopy.CompletedTaskIDs = []string{}
	}
	calendarCopy := acc.CalendarState
	if calendarCopy.ClaimedDays == nil {
		calendarCopy.ClaimedDays = []int{}
	}
	prefsCopy := acc.NotificationPrefs
	if prefsCopy.ActivityHours == nil {
		prefsCopy.ActivityHours = []int{}
	}
	if prefsCopy.DeviceTokens == nil {
		prefsCopy.DeviceTokens = []string{}
	}

	fields := []struct {
		target *[]byte
		source any
	}{
		{&inventory, inventoryMap},
		{&equipped, equippedMap},
		{&unseen, unseenIDs},
		{&stats, statsCopy},
		{&calendar, calendarCopy},
		{&prefs, prefsCopy},
	}
	for _, f := range fields {
		if *f.target, err = json.Marshal(f.source); err != nil {
			return nil, nil, nil, nil, nil, nil, fmt.Errorf(ErrMsgMarshalFailed, err)
		}
	}
	return inventory, equipped, unseen, stats, calendar, prefs, nil
}
