package push

import "time"

// Default configuration values
const (
	// DefaultURL is the default WebSocket URL for the notification relay
	DefaultURL = "ws://127.0.0.1:9097/"

	// DefaultReconnectDelay is the initial delay before attempting to reconnect
	DefaultReconnectDelay = 1 * time.Second

	// MaxReconnectDelay is the maximum delay between reconnection attempts
	MaxReconnectDelay = 30 * time.Second

	// ReconnectMultiplier is the multiplier for exponential backoff
	ReconnectMultiplier = 2.0

	// MaxConsecutiveFailures is the maximum number of connection attempts before giving up
	MaxConsecutiveFailures = 10

	// WriteTimeout is the timeout for writing messages
	WriteTimeout = 10 * time.Second

	// AckTimeout is how long Notify waits for the relay's delivery receipt
	AckTimeout = 5 * time.Second

	// ReadBufferSize is the WebSocket read buffer size
	ReadBufferSize = 4096

	// WriteBufferSize is the WebSocket write buffer size
	WriteBufferSize = 4096
)

// Request types for the relay WebSocket API
const (
	RequestNotify       = "Notify"
	RequestAuthenticate = "Authenticate"
)

// Response status values
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Error codes the relay reports in failed delivery receipts
const (
	ErrCodeUnknownToken = "unknown_token"
	ErrCodeExpiredToken = "expired_token"
)

// Log messages
const (
	LogMsgConnecting     = "Connecting to notification relay"
	LogMsgConnected      = "Connected to notification relay"
	LogMsgReconnecting   = "Reconnecting to notification relay"
	LogMsgAuthRequired   = "Notification relay requires authentication"
	LogMsgAuthSuccess    = "Notification relay authentication successful"
	LogMsgSendingNotify  = "Sending notification to relay"
	LogMsgNotifyFailed   = "Failed to send notification to relay"
	LogMsgReadError      = "Error reading from relay WebSocket"
	LogMsgClientStopped  = "Notification relay client stopped"
	LogMsgGivingUp       = "Relay connection failed too many times, entering dormant mode"
	LogMsgDormantRetry   = "Relay dormant, retrying connection due to pending notification"
	LogMsgConnRestored   = "Relay connection restored"
	LogMsgDormantWake    = "Relay waking from dormant mode"
	LogMsgNoInitialFrame = "No initial message from relay, proceeding assuming no auth required"
)
