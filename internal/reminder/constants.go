package reminder

// Error message constants
const (
	ErrMsgRecordActivityFailed = "failed to record activity: %w"
	ErrMsgRegisterFailed       = "failed to register device: %w"
	ErrMsgSweepFailed          = "reminder sweep failed: %w"
)

// Log message constants
const (
	LogMsgActivityRecorded = "Activity hour recorded"
	LogMsgSweepStarted     = "Reminder sweep started"
	LogMsgSweepFinished    = "Reminder sweep finished"
	LogMsgSweepBudgetHit   = "Reminder sweep stopped early, budget exhausted"
	LogMsgAccountSkipped   = "Reminder sweep skipped account"
	LogMsgReminderSent     = "Reminder dispatched"
	LogMsgTokensPruned     = "Invalid device tokens pruned"
)
