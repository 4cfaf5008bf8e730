package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/pondkeeper/pondkeeper/internal/clock"
	"github.com/pondkeeper/pondkeeper/internal/domain"
	"github.com/pondkeeper/pondkeeper/internal/logger"
	"github.com/pondkeeper/pondkeeper/internal/repository"
)

// DayStatus is one calendar day merged with the account's claim state.
type DayStatus struct {
	Day     int       `json:"day"`
	Reward  DayReward `json:"reward"`
	Claimed bool      `json:"claimed"`
	Today   bool      `json:"today"`
}

// StatusResult is the full calendar view for the account's current month.
type StatusResult struct {
	Month  string      `json:"month"`
	Streak int         `json:"streak"`
	Days   []DayStatus `json:"days"`
}

// ClaimResult describes a successful calendar claim.
type ClaimResult struct {
	Day     int      `json:"day"`
	Flies   int      `json:"flies"`
	ItemIDs []string `json:"item_ids,omitempty"`
	Streak  int      `json:"streak"`
}

// Service defines the daily reward calendar operations.
type Service interface {
	// Status returns the month's reward table merged with claim state.
	Status(ctx context.Context, accountID string, now time.Time) (*StatusResult, error)

	// Claim grants the reward for day, which must be today in the account's
	// timezone and unclaimed this month. Premium accounts additionally
	// receive the premium-tier payout.
	Claim(ctx context.Context, accountID string, day int, premium bool, now time.Time) (*ClaimResult, error)
}

type service struct {
	repo  repository.Account
	clock *clock.Resolver
}

// NewService creates a calendar service.
func NewService(repo repository.Account, resolver *clock.Resolver) Service {
	return &service{repo: repo, clock: resolver}
}

func (s *service) Status(ctx context.Context, accountID string, now time.Time) (*StatusResult, error) {
	acc, err := s.repo.Get(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgStatusFailed, err)
	}

	zone := acc.NotificationPrefs.Timezone
	month := s.clock.LocalMonth(zone, now)
	today := s.clock.LocalDay(zone, now)
	acc.ResetCalendarIfStale(month)

	days := make([]DayStatus, 0, len(rewardTable))
	for day := 1; day <= 31; day++ {
		reward, ok := RewardFor(day)
		if !ok {
			continue
		}
		days = append(days, DayStatus{
			Day:     day,
			Reward:  reward,
			Claimed: acc.HasClaimedDay(day),
			Today:   day == today,
		})
	}

	return &StatusResult{Month: month, Streak: acc.CalendarState.Streak, Days: days}, nil
}

func (s *service) Claim(ctx context.Context, accountID string, day int, premium bool, now time.Time) (*ClaimResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgClaimCalled, "account_id", accountID, "day", day, "premium", premium)

	reward, ok := RewardFor(day)
	if !ok {
		return nil, fmt.Errorf("%w: day %d", domain.ErrNoRewardDefined, day)
	}

	for attempt := 0; attempt < claimAttempts; attempt++ {
		acc, err := s.repo.Get(ctx, accountID)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgClaimFailed, err)
		}

		zone := acc.NotificationPrefs.Timezone
		month := s.clock.LocalMonth(zone, now)
		date := s.clock.LocalDate(zone, now)
		acc.ResetCalendarIfStale(month)

		if day != s.clock.LocalDay(zone, now) {
			return nil, fmt.Errorf("%w: day %d is not today", domain.ErrWrongDay, day)
		}
		if acc.HasClaimedDay(day) {
			return nil, fmt.Errorf("%w: day %d", domain.ErrAlreadyClaimed, day)
		}

		streak := nextStreak(acc.CalendarState, date)

		flies := reward.Free.Flies
		items := make(map[string]int)
		if reward.Free.ItemID != "" {
			items[reward.Free.ItemID] += reward.Free.Quantity
		}
		if premium {
			flies += reward.Premium.Flies
			if reward.Premium.ItemID != "" {
				items[reward.Premium.ItemID] += reward.Premium.Quantity
			}
		}

		applied, err := s.repo.ClaimCalendarDay(ctx, accountID, month, day, date, streak, flies, items)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgClaimFailed, err)
		}
		if !applied {
			log.Warn(LogMsgClaimLostRace, "account_id", accountID, "day", day, "attempt", attempt)
			continue
		}

		itemIDs := make([]string, 0, len(items))
		for id := range items {
			itemIDs = append(itemIDs, id)
		}
		log.Info(LogMsgDayClaimed, "account_id", accountID, "day", day, "flies", flies, "streak", streak)
		return &ClaimResult{Day: day, Flies: flies, ItemIDs: itemIDs, Streak: streak}, nil
	}

	// A lost conditional write here means a concurrent caller claimed the
	// same day already
	return nil, fmt.Errorf("%w: day %d", domain.ErrAlreadyClaimed, day)
}

// nextStreak computes the consecutive-day counter for a claim on date.
func nextStreak(state domain.CalendarState, date string) int {
	prev, err := time.Parse(domain.DateLayout, state.LastClaimDate)
	if err != nil {
		return 1
	}
	if prev.AddDate(0, 0, 1).Format(domain.DateLayout) == date {
		return state.Streak + 1
	}
	return 1
}
