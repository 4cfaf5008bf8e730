package hunger

import (
	"context"
	"fmt"
	"time"

	"github.com/pondkeeper/pondkeeper/internal/domain"
	"github.com/pondkeeper/pondkeeper/internal/logger"
	"github.com/pondkeeper/pondkeeper/internal/metrics"
	"github.com/pondkeeper/pondkeeper/internal/repository"
)

// settleAttempts bounds the settle read/CAS loop. A lost CAS means a
// concurrent caller settled the same span; one retry picks up their write.
const settleAttempts = 2

// Service defines hunger settlement operations.
type Service interface {
	// Settle runs the decay computation at now and persists it. Safe to call
	// redundantly from concurrent readers; at-least-once semantics.
	Settle(ctx context.Context, accountID string, now time.Time) (*domain.Account, error)

	// Acknowledge clears the stolen-flies counter once the loss was shown
	// to the user. Idempotent.
	Acknowledge(ctx context.Context, accountID string) (*domain.Account, error)
}

type service struct {
	repo repository.Account
}

// NewService creates a hunger service.
func NewService(repo repository.Account) Service {
	return &service{repo: repo}
}

func (s *service) Settle(ctx context.Context, accountID string, now time.Time) (*domain.Account, error) {
	log := logger.FromContext(ctx)

	var acc *domain.Account
	for attempt := 0; attempt < settleAttempts; attempt++ {
		var err error
		acc, err = s.repo.Get(ctx, accountID)
		if err != nil {
			return nil, fmt.Errorf("failed to get account: %w", err)
		}

		settlement := Apply(acc, now)
		if !changed(acc, settlement) {
			return acc, nil
		}

		applied, err := s.repo.ApplySettlement(ctx, accountID, acc.LastHungerUpdate, settlement)
		if err != nil {
			return nil, fmt.Errorf("failed to apply settlement: %w", err)
		}
		if applied {
			if settlement.Penalties > 0 {
				log.Info(LogMsgPenaltyApplied,
					"account_id", accountID,
					"penalties", settlement.Penalties,
					"stolen", settlement.StolenFlies,
					"hunger", settlement.Hunger.String())
				metrics.PenaltiesApplied.Add(float64(settlement.Penalties))
				metrics.FliesStolen.Add(float64(settlement.StolenFlies))
			}
			acc.Hunger = settlement.Hunger
			acc.LastHungerUpdate = settlement.LastHungerUpdate
			acc.Balance -= settlement.StolenFlies
			if acc.Balance < 0 {
				acc.Balance = 0
			}
			acc.StolenFlies += settlement.StolenFlies
			return acc, nil
		}

		log.Debug(LogMsgSettleLostRace, "account_id", accountID, "attempt", attempt)
	}

	// A concurrent caller won every attempt; their settlement covers the
	// same elapsed time. Return the latest stored state.
	acc, err := s.repo.Get(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return acc, nil
}

func (s *service) Acknowledge(ctx context.Context, accountID string) (*domain.Account, error) {
	if err := s.repo.ClearStolenFlies(ctx, accountID); err != nil {
		return nil, fmt.Errorf("failed to clear stolen flies: %w", err)
	}
	acc, err := s.repo.Get(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return acc, nil
}
