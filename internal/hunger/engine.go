// Package hunger implements the decay engine: continuous time-based depletion
// of the frog's hunger counter with starvation-debt accrual and fly penalties.
package hunger

import (
	"time"

	"github.com/pondkeeper/pondkeeper/internal/domain"
)

// Apply computes the settlement for an account at instant now. Pure function;
// persistence happens separately under a compare-and-swap.
//
// Hunger is a debt-carrying leaky counter, not a clamp-to-zero gauge. Negative
// values are unresolved starvation debt. Each full PenaltyInterval of debt
// costs FliesPerPenalty flies (clamped to the balance) and is then credited
// back, so only a sub-interval remainder can stay negative after settlement.
// Debt a broke user cannot pay is still forgiven once its interval resolves.
func Apply(acc *domain.Account, now time.Time) domain.Settlement {
	hunger := acc.Hunger
	last := acc.LastHungerUpdate

	// Defensive normalization of inconsistent stored state
	if hunger > domain.MaxHunger {
		hunger = domain.MaxHunger
	}
	if last.IsZero() {
		last = now
	}

	elapsed := now.Sub(last)
	if elapsed <= 0 {
		// No time passed: only the clamp above applies, externally-added
		// hunger credit beyond the cap is trimmed.
		return domain.Settlement{Hunger: hunger, LastHungerUpdate: last}
	}

	hunger -= elapsed

	s := domain.Settlement{LastHungerUpdate: now}
	if hunger < 0 {
		deficit := -hunger
		penalties := int(deficit / domain.PenaltyInterval)
		if penalties > 0 {
			stolen := penalties * domain.FliesPerPenalty
			if stolen > acc.Balance {
				stolen = acc.Balance
			}
			s.Penalties = penalties
			s.StolenFlies = stolen
			hunger += time.Duration(penalties) * domain.PenaltyInterval
		}
	}

	s.Hunger = hunger
	return s
}

// changed reports whether the settlement would mutate persisted state.
func changed(acc *domain.Account, s domain.Settlement) bool {
	return s.Hunger != acc.Hunger ||
		!s.LastHungerUpdate.Equal(acc.LastHungerUpdate) ||
		s.StolenFlies > 0
}
