package reminder

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/pondkeeper/pondkeeper/internal/clock"
	"github.com/pondkeeper/pondkeeper/internal/domain"
	"github.com/pondkeeper/pondkeeper/internal/logger"
	"github.com/pondkeeper/pondkeeper/internal/repository"
	"github.com/pondkeeper/pondkeeper/internal/utils"
)

// TaskSource reports the tracked tasks due for an account on a local date.
type TaskSource interface {
	DueTasks(ctx context.Context, accountID, date string) ([]domain.TaskItem, error)
}

// SweepResult summarizes one dispatch run.
type SweepResult struct {
	Evaluated int `json:"evaluated"`
	Notified  int `json:"notified"`
	Pruned    int `json:"pruned"`
	Skipped   int `json:"skipped"`
}

// Service defines the adaptive reminder operations.
type Service interface {
	// RecordActivity ingests one interaction hour (in the account's local
	// time) and recomputes the preferred reminder slots.
	RecordActivity(ctx context.Context, accountID string, hour int, timezone string) error

	// RegisterDevice enables reminders for the account and adds a push token.
	RegisterDevice(ctx context.Context, accountID, token, timezone string) error

	// EvaluateAndDispatch sweeps all notifiable accounts and sends due
	// reminders. Per-account failures are logged and skipped; the run stops
	// early when ctx expires.
	EvaluateAndDispatch(ctx context.Context, now time.Time) (*SweepResult, error)
}

type service struct {
	repo  repository.Account
	tasks TaskSource
	push  PushSender
	clock *clock.Resolver
	rnd   func() float64
}

// NewService creates a reminder service.
func NewService(repo repository.Account, tasks TaskSource, push PushSender, resolver *clock.Resolver) Service {
	return NewServiceWithRand(repo, tasks, push, resolver, utils.RandomFloat)
}

// NewServiceWithRand creates a reminder service with an injected random
// source for deterministic template selection in tests.
func NewServiceWithRand(repo repository.Account, tasks TaskSource, push PushSender, resolver *clock.Resolver, rnd func() float64) Service {
	return &service{repo: repo, tasks: tasks, push: push, clock: resolver, rnd: rnd}
}

func (s *service) RecordActivity(ctx context.Context, accountID string, hour int, timezone string) error {
	log := logger.FromContext(ctx)

	if hour < 0 || hour > 23 {
		return fmt.Errorf("%w: hour %d out of range", domain.ErrInvalidInput, hour)
	}

	acc, err := s.repo.Get(ctx, accountID)
	if err != nil {
		return fmt.Errorf(ErrMsgRecordActivityFailed, err)
	}

	prefs := acc.NotificationPrefs
	if timezone != "" {
		prefs.Timezone = timezone
	}
	prefs.ActivityHours = appendActivityHour(prefs.ActivityHours, hour)
	prefs.MorningSlot, prefs.EveningSlot = recomputeSlots(prefs.ActivityHours)

	if err := s.repo.UpdateNotificationPrefs(ctx, accountID, prefs); err != nil {
		return fmt.Errorf(ErrMsgRecordActivityFailed, err)
	}

	log.Info(LogMsgActivityRecorded, "account_id", accountID, "hour", hour,
		"morning_slot", prefs.MorningSlot, "evening_slot", prefs.EveningSlot)
	return nil
}

func (s *service) RegisterDevice(ctx context.Context, accountID, token, timezone string) error {
	if token == "" {
		return fmt.Errorf("%w: empty device token", domain.ErrInvalidInput)
	}

	acc, err := s.repo.Get(ctx, accountID)
	if err != nil {
		return fmt.Errorf(ErrMsgRegisterFailed, err)
	}

	prefs := acc.NotificationPrefs
	prefs.Enabled = true
	if timezone != "" {
		prefs.Timezone = timezone
	}
	prefs.DeviceTokens = utils.AddToSet(prefs.DeviceTokens, token)

	if err := s.repo.UpdateNotificationPrefs(ctx, accountID, prefs); err != nil {
		return fmt.Errorf(ErrMsgRegisterFailed, err)
	}
	return nil
}

func (s *service) EvaluateAndDispatch(ctx context.Context, now time.Time) (*SweepResult, error) {
	log := logger.FromContext(ctx)

	accounts, err := s.repo.ListNotifiable(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgSweepFailed, err)
	}
	log.Info(LogMsgSweepStarted, "accounts", len(accounts))

	result := &SweepResult{}
	for _, acc := range accounts {
		if ctx.Err() != nil {
			log.Warn(LogMsgSweepBudgetHit, "evaluated", result.Evaluated, "remaining", len(accounts)-result.Evaluated)
			break
		}
		result.Evaluated++

		if err := s.dispatchOne(ctx, acc, now, result); err != nil {
			// One account's failure never aborts the sweep
			log.Warn(LogMsgAccountSkipped, "account_id", acc.ID, "error", err)
			result.Skipped++
		}
	}

	log.Info(LogMsgSweepFinished, "evaluated", result.Evaluated, "notified", result.Notified, "pruned", result.Pruned)
	return result, nil
}

func (s *service) dispatchOne(ctx context.Context, acc *domain.Account, now time.Time, result *SweepResult) error {
	log := logger.FromContext(ctx)
	prefs := acc.NotificationPrefs

	hour := s.clock.LocalHour(prefs.Timezone, now)
	if hour != prefs.MorningSlot && hour != prefs.EveningSlot {
		return nil
	}

	if prefs.LastNotifiedAt != nil && now.Sub(*prefs.LastNotifiedAt) < domain.MinNotifyGap {
		return nil
	}

	incomplete, err := s.incompleteCount(ctx, acc.ID, s.clock.LocalDate(prefs.Timezone, now))
	if err != nil {
		return err
	}
	if incomplete == 0 {
		return nil
	}

	notification := Notification{
		Title: reminderTitle,
		Body:  pickMessage(s.rnd, incomplete),
		Data:  map[string]string{"incomplete": strconv.Itoa(incomplete)},
	}

	var invalid []string
	delivered := 0
	for _, token := range prefs.DeviceTokens {
		err := s.push.Send(ctx, token, notification)
		switch {
		case err == nil:
			delivered++
		case errors.Is(err, ErrTokenInvalid):
			invalid = append(invalid, token)
		default:
			// Transient: leave the token, the next sweep retries
			log.Warn("Push delivery failed", "account_id", acc.ID, "error", err)
		}
	}

	if len(invalid) > 0 {
		if err := s.repo.RemoveDeviceTokens(ctx, acc.ID, invalid); err != nil {
			return err
		}
		result.Pruned += len(invalid)
		log.Info(LogMsgTokensPruned, "account_id", acc.ID, "count", len(invalid))
	}

	if err := s.repo.SetLastNotified(ctx, acc.ID, now); err != nil {
		return err
	}
	result.Notified++
	log.Info(LogMsgReminderSent, "account_id", acc.ID, "hour", hour, "incomplete", incomplete, "delivered", delivered)
	return nil
}

// incompleteCount counts the due tasks still open on date.
func (s *service) incompleteCount(ctx context.Context, accountID, date string) (int, error) {
	tasks, err := s.tasks.DueTasks(ctx, accountID, date)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, t := range tasks {
		if !t.Completed && !t.Suppressed {
			n++
		}
	}
	return n, nil
}
