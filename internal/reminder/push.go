package reminder

import (
	"context"
	"errors"
)

// ErrTokenInvalid is returned by a PushSender when the platform reports the
// device token as permanently dead. The token is pruned; transient delivery
// failures return any other error and leave the token alone.
var ErrTokenInvalid = errors.New("device token permanently invalid")

// Notification is one push message.
type Notification struct {
	Title string
	Body  string
	Data  map[string]string
}

// PushSender delivers push notifications to a single device token.
type PushSender interface {
	Send(ctx context.Context, token string, n Notification) error
}
