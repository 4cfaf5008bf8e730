package domain

import "time"

// Account is the durable per-user record. All mutable game state lives here;
// it is partitioned by account ID and mutated only through the storage layer's
// conditional operations.
type Account struct {
	ID        string    `json:"account_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Balance is the fly count. Never negative.
	Balance int `json:"balance"`

	// Inventory maps catalog item ID to owned quantity. Entries are removed
	// when their quantity reaches zero.
	Inventory map[string]int `json:"inventory"`

	// Equipped maps cosmetic slot to the worn item ID. An equipped ID must
	// reference an inventory entry with quantity > 0; enforced lazily on read.
	Equipped map[Slot]string `json:"equipped"`

	// UnseenItemIDs holds items acquired but not yet viewed (badge counts).
	UnseenItemIDs []string `json:"unseen_item_ids"`

	// Hunger is a signed remaining-time counter. Negative values are accrued
	// starvation debt not yet resolved into penalties.
	Hunger           time.Duration `json:"hunger"`
	LastHungerUpdate time.Time     `json:"last_hunger_update"`

	// StolenFlies is currency removed by starvation penalties, pending
	// user acknowledgement.
	StolenFlies int `json:"stolen_flies"`

	DailyStats        DailyStats        `json:"daily_stats"`
	CalendarState     CalendarState     `json:"calendar_state"`
	NotificationPrefs NotificationPrefs `json:"notification_prefs"`
}

// DailyStats tracks per-day task completion counters. The Date field is
// compared to the caller-supplied "today" and the whole block is reset lazily
// on mismatch before any read or write.
type DailyStats struct {
	Date                       string   `json:"date"`
	TasksCompletedToday        int      `json:"tasks_completed_today"`
	MilestoneGiftsClaimedToday int      `json:"milestone_gifts_claimed_today"`
	CompletedTaskIDs           []string `json:"completed_task_ids"`
	TaskCountAtLastGift        int      `json:"task_count_at_last_gift"`
}

// CalendarState tracks the daily-login reward calendar for the current month.
// Reset lazily on month rollover.
type CalendarState struct {
	Month         string `json:"month"`
	ClaimedDays   []int  `json:"claimed_days"`
	LastClaimDate string `json:"last_claim_date"`
	Streak        int    `json:"streak"`
}

// NotificationPrefs holds adaptive-reminder state for one account.
type NotificationPrefs struct {
	Enabled        bool       `json:"enabled"`
	Timezone       string     `json:"timezone"`
	ActivityHours  []int      `json:"activity_hours"`
	MorningSlot    int        `json:"morning_slot"`
	EveningSlot    int        `json:"evening_slot"`
	LastNotifiedAt *time.Time `json:"last_notified_at,omitempty"`
	DeviceTokens   []string   `json:"device_tokens"`
}

// NewAccount returns an account with zeroed game state and sane defaults.
func NewAccount(id, username string, now time.Time) *Account {
	return &Account{
		ID:               id,
		Username:         username,
		CreatedAt:        now,
		UpdatedAt:        now,
		Inventory:        map[string]int{},
		Equipped:         map[Slot]string{},
		Hunger:           MaxHunger,
		LastHungerUpdate: now,
		NotificationPrefs: NotificationPrefs{
			Timezone:    "UTC",
			MorningSlot: DefaultMorningSlot,
			EveningSlot: DefaultEveningSlot,
		},
	}
}

// ResetDailyStatsIfStale zeroes the daily counters when the stored date does
// not match today. Returns true if a reset happened.
func (a *Account) ResetDailyStatsIfStale(today string) bool {
	if a.DailyStats.Date == today {
		return false
	}
	a.DailyStats = DailyStats{Date: today}
	return true
}

// ResetCalendarIfStale clears claimed days and streak when the stored month
// does not match the current month key. Returns true if a reset happened.
func (a *Account) ResetCalendarIfStale(month string) bool {
	if a.CalendarState.Month == month {
		return false
	}
	a.CalendarState = CalendarState{Month: month}
	return true
}

// HasCompletedTask reports whether taskID was already counted today.
func (a *Account) HasCompletedTask(taskID string) bool {
	for _, id := range a.DailyStats.CompletedTaskIDs {
		if id == taskID {
			return true
		}
	}
	return false
}

// HasClaimedDay reports whether the calendar day was claimed this month.
func (a *Account) HasClaimedDay(day int) bool {
	for _, d := range a.CalendarState.ClaimedDays {
		if d == day {
			return true
		}
	}
	return false
}

// Quantity returns the owned count for an item, zero when absent.
func (a *Account) Quantity(itemID string) int {
	return a.Inventory[itemID]
}

// PruneStaleEquipped drops equipped entries whose item is no longer owned.
// Selling or trading away the last copy of a worn item leaves the slot
// pointing at nothing; the ownership rule is enforced here on read rather
// than on every inventory write. Returns true if anything was removed.
func (a *Account) PruneStaleEquipped() bool {
	changed := false
	for slot, itemID := range a.Equipped {
		if a.Inventory[itemID] == 0 {
			delete(a.Equipped, slot)
			changed = true
		}
	}
	return changed
}
