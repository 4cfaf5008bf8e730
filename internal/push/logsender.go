package push

import (
	"context"
	"log/slog"

	"github.com/pondkeeper/pondkeeper/internal/reminder"
)

// LogSender is the stand-in sender used when no relay URL is configured.
// It logs each notification instead of delivering it, which keeps the
// reminder sweep exercisable in development without a running relay.
type LogSender struct{}

// NewLogSender creates a new log-only sender
func NewLogSender() *LogSender {
	return &LogSender{}
}

// Send implements reminder.PushSender by logging the notification
func (s *LogSender) Send(_ context.Context, token string, n reminder.Notification) error {
	slog.Info("Notification (relay not configured)",
		"token_prefix", tokenPrefix(token),
		"title", n.Title,
		"body", n.Body)
	return nil
}

// tokenPrefix truncates a device token for logging. Full tokens never hit
// the logs.
func tokenPrefix(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:8] + "..."
}
