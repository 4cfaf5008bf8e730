package calendar

// Error message constants
const (
	ErrMsgClaimFailed  = "failed to claim calendar reward: %w"
	ErrMsgStatusFailed = "failed to load calendar status: %w"
)

// Log message constants
const (
	LogMsgClaimCalled   = "Calendar claim requested"
	LogMsgDayClaimed    = "Calendar day claimed"
	LogMsgClaimLostRace = "Calendar claim lost conditional write, re-evaluating"
)

// claimAttempts bounds the claim read/CAS loop.
const claimAttempts = 2
