package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Account errors
	ErrMsgAccountNotFound = "account not found"

	// Item errors
	ErrMsgUnknownItem = "unknown item"
	ErrMsgNotOwned    = "item not owned"

	// Economy errors
	ErrMsgInsufficientFunds     = "insufficient funds"
	ErrMsgInsufficientInventory = "insufficient inventory"
	ErrMsgInvalidTradeSet       = "invalid trade set"
	ErrMsgNoRewardAvailable     = "no reward available"
	ErrMsgSlotMismatch          = "item does not fit slot"

	// Milestone errors
	ErrMsgGiftLimitReached    = "daily gift limit reached"
	ErrMsgMilestoneNotReached = "milestone not reached"

	// Calendar errors
	ErrMsgWrongDay        = "wrong day"
	ErrMsgAlreadyClaimed  = "reward already claimed"
	ErrMsgNoRewardDefined = "no reward defined"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Account errors
	ErrAccountNotFound = errors.New(ErrMsgAccountNotFound)

	// Item errors
	ErrUnknownItem = errors.New(ErrMsgUnknownItem)
	ErrNotOwned    = errors.New(ErrMsgNotOwned)

	// Economy errors
	ErrInsufficientFunds     = errors.New(ErrMsgInsufficientFunds)
	ErrInsufficientInventory = errors.New(ErrMsgInsufficientInventory)
	ErrInvalidTradeSet       = errors.New(ErrMsgInvalidTradeSet)
	ErrSlotMismatch          = errors.New(ErrMsgSlotMismatch)

	// ErrNoRewardAvailable means a required catalog rarity pool is empty.
	// This is a configuration fault, not a user-correctable condition.
	ErrNoRewardAvailable = errors.New(ErrMsgNoRewardAvailable)

	// Milestone errors
	ErrGiftLimitReached    = errors.New(ErrMsgGiftLimitReached)
	ErrMilestoneNotReached = errors.New(ErrMsgMilestoneNotReached)

	// Calendar errors
	ErrWrongDay        = errors.New(ErrMsgWrongDay)
	ErrAlreadyClaimed  = errors.New(ErrMsgAlreadyClaimed)
	ErrNoRewardDefined = errors.New(ErrMsgNoRewardDefined)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
