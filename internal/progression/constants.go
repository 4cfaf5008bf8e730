package progression

// Error message constants
const (
	ErrMsgClaimFailed        = "failed to claim milestone gift: %w"
	ErrMsgCompleteTaskFailed = "failed to record task completion: %w"
	ErrMsgGetSlotsFailed     = "failed to compute milestone slots: %w"
)

// Log message constants
const (
	LogMsgClaimCalled     = "Milestone claim requested"
	LogMsgGiftClaimed     = "Milestone gift claimed"
	LogMsgClaimLostRace   = "Milestone claim lost conditional write, re-evaluating"
	LogMsgTaskCompleted   = "Task completion recorded"
	LogMsgTaskDuplicate   = "Task completion already recorded, skipping"
	LogMsgBadGiftItem     = "Configured milestone gift item missing from catalog"
)

// claimAttempts bounds the claim read/CAS loop.
const claimAttempts = 3
