package worker

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// ============================================================================
// Log Messages - Reminder Worker
// ============================================================================

// Log messages for reminder sweep operations
const (
	LogMsgReminderSweepStarting  = "Reminder sweep starting"
	LogMsgReminderSweepCompleted = "Reminder sweep completed"
	LogMsgReminderSweepFailed    = "Reminder sweep failed"
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
