package postgres

// Error message constants
const (
	ErrMsgMarshalFailed  = "failed to marshal account state: %w"
	ErrMsgScanFailed     = "failed to scan account row: %w"
	ErrMsgQueryFailed    = "failed to query account: %w"
	ErrMsgUpdateFailed   = "failed to update account: %w"
	ErrMsgTxBeginFailed  = "failed to begin transaction: %w"
	ErrMsgTxCommitFailed = "failed to commit transaction: %w"
)

// accountColumns is the select list matching scanAccount's positional order.
const accountColumns = `account_id, username, balance, stolen_flies, hunger_ms,
	last_hunger_update, inventory, equipped, unseen_items, daily_stats,
	calendar_state, notification_prefs, created_at, updated_at`
