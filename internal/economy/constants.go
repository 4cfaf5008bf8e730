package economy

// MaxTransactionQuantity caps single purchase/sell quantities
const MaxTransactionQuantity = 100

// ==================== Error Messages ====================

// Formatted error messages for validation
const (
	ErrMsgInvalidQuantityFmt    = "invalid quantity: %d: %w"
	ErrMsgQuantityExceedsMaxFmt = "quantity %d exceeds maximum allowed (%d): %w"
)

// Storage operation error messages
const (
	ErrMsgPurchaseFailed = "failed to purchase item: %w"
	ErrMsgSellFailed     = "failed to sell item: %w"
	ErrMsgTradeUpFailed  = "failed to trade up items: %w"
	ErrMsgOpenGiftFailed = "failed to open gift: %w"
	ErrMsgEquipFailed    = "failed to equip item: %w"
	ErrMsgMarkSeenFailed = "failed to mark items seen: %w"
)

// ==================== Log Messages ====================

const (
	LogMsgPurchaseCalled = "Purchase called"
	LogMsgItemPurchased  = "Item purchased"
	LogMsgSellCalled     = "Sell called"
	LogMsgItemSold       = "Item sold"
	LogMsgTradeUpCalled  = "TradeUp called"
	LogMsgTradeUpDone    = "Trade-up completed"
	LogMsgOpenGiftCalled = "OpenGift called"
	LogMsgGiftOpened     = "Gift opened"
	LogMsgEquipCalled    = "Equip called"
)
