package domain

import "time"

// Settlement is the outcome of running the decay computation against an
// account at one instant. It is applied to storage as a single conditional
// write keyed on the account's previous LastHungerUpdate.
type Settlement struct {
	// Hunger is the new hunger value after depletion and debt repayment.
	Hunger time.Duration

	// LastHungerUpdate is the settlement instant.
	LastHungerUpdate time.Time

	// Penalties is the number of penalty intervals resolved by this settlement.
	Penalties int

	// StolenFlies is the currency actually withdrawn, clamped to the balance
	// observed at computation time.
	StolenFlies int
}
