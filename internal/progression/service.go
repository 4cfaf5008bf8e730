package progression

import (
	"context"
	"fmt"
	"time"

	"github.com/pondkeeper/pondkeeper/internal/catalog"
	"github.com/pondkeeper/pondkeeper/internal/clock"
	"github.com/pondkeeper/pondkeeper/internal/domain"
	"github.com/pondkeeper/pondkeeper/internal/logger"
	"github.com/pondkeeper/pondkeeper/internal/repository"
)

// TaskSource reports the tracked tasks due for an account on a local date.
type TaskSource interface {
	DueTasks(ctx context.Context, accountID, date string) ([]domain.TaskItem, error)
}

// ClaimResult describes a successful milestone gift claim.
type ClaimResult struct {
	SlotIndex    int    `json:"slot_index"`
	GiftItemID   string `json:"gift_item_id"`
	ClaimedToday int    `json:"claimed_today"`
}

// TaskResult describes the outcome of recording a task completion.
type TaskResult struct {
	Awarded        bool          `json:"awarded"`
	Flies          int           `json:"flies"`
	HungerCredit   time.Duration `json:"-"`
	CompletedToday int           `json:"completed_today"`
}

// Service defines the daily milestone progression operations.
type Service interface {
	// Slots computes the three milestone slots for the account's local day.
	Slots(ctx context.Context, accountID string, now time.Time) ([]Slot, error)

	// ClaimGift claims the next sequential milestone gift for today.
	ClaimGift(ctx context.Context, accountID string, now time.Time) (*ClaimResult, error)

	// CompleteTask records one task completion, once per task per day, and
	// pays out the fly and hunger rewards.
	CompleteTask(ctx context.Context, accountID, taskID string, now time.Time) (*TaskResult, error)
}

type service struct {
	repo       repository.Account
	catalog    *catalog.Catalog
	tasks      TaskSource
	clock      *clock.Resolver
	giftItemID string
}

// NewService creates a progression service. giftItemID is the catalog item
// granted per milestone claim.
func NewService(repo repository.Account, cat *catalog.Catalog, tasks TaskSource, resolver *clock.Resolver, giftItemID string) Service {
	return &service{
		repo:       repo,
		catalog:    cat,
		tasks:      tasks,
		clock:      resolver,
		giftItemID: giftItemID,
	}
}

func (s *service) Slots(ctx context.Context, accountID string, now time.Time) ([]Slot, error) {
	acc, err := s.repo.Get(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetSlotsFailed, err)
	}

	today := s.clock.LocalDate(acc.NotificationPrefs.Timezone, now)
	acc.ResetDailyStatsIfStale(today)

	total, err := s.dueCount(ctx, accountID, today)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetSlotsFailed, err)
	}

	return computeSlots(total, acc.DailyStats.TasksCompletedToday, acc.DailyStats.MilestoneGiftsClaimedToday), nil
}

func (s *service) ClaimGift(ctx context.Context, accountID string, now time.Time) (*ClaimResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgClaimCalled, "account_id", accountID)

	if _, ok := s.catalog.Get(s.giftItemID); !ok {
		log.Error(LogMsgBadGiftItem, "gift_item_id", s.giftItemID)
		return nil, fmt.Errorf("%w: %s", domain.ErrNoRewardDefined, s.giftItemID)
	}

	for attempt := 0; attempt < claimAttempts; attempt++ {
		acc, err := s.repo.Get(ctx, accountID)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgClaimFailed, err)
		}

		today := s.clock.LocalDate(acc.NotificationPrefs.Timezone, now)
		acc.ResetDailyStatsIfStale(today)

		claimed := acc.DailyStats.MilestoneGiftsClaimedToday
		if claimed >= domain.MaxMilestoneGiftsPerDay {
			return nil, fmt.Errorf("%w: %d gifts claimed today", domain.ErrGiftLimitReached, claimed)
		}

		completed := acc.DailyStats.TasksCompletedToday
		if completed < claimThresholds[claimed] {
			return nil, fmt.Errorf("%w: milestone %d needs %d completions, have %d",
				domain.ErrMilestoneNotReached, claimed, claimThresholds[claimed], completed)
		}

		applied, err := s.repo.ClaimMilestoneGift(ctx, accountID, today, claimed, s.giftItemID, completed)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgClaimFailed, err)
		}
		if !applied {
			// A concurrent claim moved the counter; re-read and decide again
			log.Warn(LogMsgClaimLostRace, "account_id", accountID, "attempt", attempt)
			continue
		}

		log.Info(LogMsgGiftClaimed, "account_id", accountID, "slot", claimed, "gift_item_id", s.giftItemID)
		return &ClaimResult{SlotIndex: claimed, GiftItemID: s.giftItemID, ClaimedToday: claimed + 1}, nil
	}

	return nil, fmt.Errorf(ErrMsgClaimFailed, fmt.Errorf("conditional write contention for account %s", accountID))
}

func (s *service) CompleteTask(ctx context.Context, accountID, taskID string, now time.Time) (*TaskResult, error) {
	log := logger.FromContext(ctx)

	if taskID == "" {
		return nil, fmt.Errorf("%w: empty task id", domain.ErrInvalidInput)
	}

	acc, err := s.repo.Get(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCompleteTaskFailed, err)
	}
	today := s.clock.LocalDate(acc.NotificationPrefs.Timezone, now)

	applied, err := s.repo.RecordTaskCompletion(ctx, accountID, today, taskID, domain.FliesPerTask, domain.HungerPerTask)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCompleteTaskFailed, err)
	}

	fresh, err := s.repo.Get(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCompleteTaskFailed, err)
	}
	fresh.ResetDailyStatsIfStale(today)

	if !applied {
		log.Info(LogMsgTaskDuplicate, "account_id", accountID, "task_id", taskID)
		return &TaskResult{Awarded: false, CompletedToday: fresh.DailyStats.TasksCompletedToday}, nil
	}

	log.Info(LogMsgTaskCompleted, "account_id", accountID, "task_id", taskID,
		"completed_today", fresh.DailyStats.TasksCompletedToday)
	return &TaskResult{
		Awarded:        true,
		Flies:          domain.FliesPerTask,
		HungerCredit:   domain.HungerPerTask,
		CompletedToday: fresh.DailyStats.TasksCompletedToday,
	}, nil
}

// dueCount counts the non-suppressed tasks due on date.
func (s *service) dueCount(ctx context.Context, accountID, date string) (int, error) {
	tasks, err := s.tasks.DueTasks(ctx, accountID, date)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, t := range tasks {
		if !t.Suppressed {
			n++
		}
	}
	return n, nil
}
