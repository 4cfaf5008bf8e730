package hunger

// ==================== Log Messages ====================

const (
	LogMsgPenaltyApplied = "Starvation penalty applied"
	LogMsgSettleLostRace = "Settlement lost compare-and-swap, retrying"
)
