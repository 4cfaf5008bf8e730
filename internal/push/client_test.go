package push

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pondkeeper/pondkeeper/internal/reminder"
)

// TestClient_NewClient verifies that the client is initialized correctly
func TestClient_NewClient(t *testing.T) {
	client := NewClient("", "test_password")

	if client.url != DefaultURL {
		t.Errorf("Expected default URL %s, got %s", DefaultURL, client.url)
	}

	if client.password != "test_password" {
		t.Errorf("Expected password 'test_password', got %s", client.password)
	}

	if client.wakeup == nil {
		t.Error("Expected wakeup channel to be initialized")
	}

	if cap(client.wakeup) != 1 {
		t.Errorf("Expected wakeup channel buffer size 1, got %d", cap(client.wakeup))
	}

	if client.dormant {
		t.Error("Expected dormant to be false initially")
	}

	if client.responses == nil {
		t.Error("Expected responses map to be initialized")
	}
}

// TestClient_SendWhenDormant verifies wakeup is triggered when dormant
func TestClient_SendWhenDormant(t *testing.T) {
	client := NewClient("ws://localhost:9999/invalid", "")

	// Manually set client to dormant state
	client.mu.Lock()
	client.dormant = true
	client.mu.Unlock()

	err := client.Send(context.Background(), "token-1", reminder.Notification{Title: "test"})

	// Should return an error
	if err == nil {
		t.Fatal("Expected error from Send when dormant")
	}

	expectedErrMsg := "relay is dormant, reconnection triggered"
	if err.Error() != expectedErrMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedErrMsg, err.Error())
	}

	// Verify wakeup signal was sent
	select {
	case <-client.wakeup:
		// Good, wakeup was triggered
	case <-time.After(100 * time.Millisecond):
		t.Error("Expected wakeup signal to be sent")
	}
}

// TestClient_SendWhenNotConnected verifies error when not connected but not dormant
func TestClient_SendWhenNotConnected(t *testing.T) {
	client := NewClient("ws://localhost:9999/invalid", "")

	err := client.Send(context.Background(), "token-1", reminder.Notification{Title: "test"})

	if err == nil {
		t.Fatal("Expected error from Send when not connected")
	}

	expectedErrMsg := "not connected to notification relay"
	if err.Error() != expectedErrMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedErrMsg, err.Error())
	}
}

// TestClient_WakeupBuffered verifies multiple wakeup calls don't block
func TestClient_WakeupBuffered(t *testing.T) {
	client := NewClient("", "")

	client.mu.Lock()
	client.dormant = true
	client.mu.Unlock()

	// First call should send wakeup
	err1 := client.Send(context.Background(), "t1", reminder.Notification{})
	if err1 == nil {
		t.Fatal("Expected error from first Send")
	}

	// Second call should not block (buffered channel default case)
	err2 := client.Send(context.Background(), "t2", reminder.Notification{})
	if err2 == nil {
		t.Fatal("Expected error from second Send")
	}

	// Verify channel only has one signal
	select {
	case <-client.wakeup:
		// First signal
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Expected at least one wakeup signal")
	}

	// Should not have a second signal (channel was buffered)
	select {
	case <-client.wakeup:
		t.Error("Should not have multiple wakeup signals")
	case <-time.After(100 * time.Millisecond):
		// Good, no second signal
	}
}

// TestLogSender_Send verifies the fallback sender never fails
func TestLogSender_Send(t *testing.T) {
	sender := NewLogSender()

	err := sender.Send(context.Background(), "device-token-abcdef", reminder.Notification{
		Title: "Kermit misses you",
		Body:  "Your frog is getting hungry",
	})
	if err != nil {
		t.Errorf("Expected no error from LogSender, got %v", err)
	}
}

// TestTokenPrefix verifies tokens are truncated for logging
func TestTokenPrefix(t *testing.T) {
	if got := tokenPrefix("short"); got != "short" {
		t.Errorf("Expected 'short', got %s", got)
	}
	if got := tokenPrefix("a-very-long-device-token"); got != "a-very-l..." {
		t.Errorf("Expected 'a-very-l...', got %s", got)
	}
}

// TestGenerateAuthHash verifies the hash is deterministic and non-empty
func TestGenerateAuthHash(t *testing.T) {
	h1 := GenerateAuthHash("password", "salt", "challenge")
	h2 := GenerateAuthHash("password", "salt", "challenge")

	if h1 == "" {
		t.Fatal("Expected non-empty hash")
	}
	if h1 != h2 {
		t.Error("Expected hash to be deterministic")
	}
	if h3 := GenerateAuthHash("other", "salt", "challenge"); h3 == h1 {
		t.Error("Expected different passwords to produce different hashes")
	}
}

// TestConstants verifies backoff constants
func TestConstants(t *testing.T) {
	if MaxConsecutiveFailures != 10 {
		t.Errorf("MaxConsecutiveFailures should be 10, got %d", MaxConsecutiveFailures)
	}
	if DefaultReconnectDelay != 1*time.Second {
		t.Errorf("DefaultReconnectDelay should be 1s, got %v", DefaultReconnectDelay)
	}
	if MaxReconnectDelay != 30*time.Second {
		t.Errorf("MaxReconnectDelay should be 30s, got %v", MaxReconnectDelay)
	}
	if ReconnectMultiplier != 2.0 {
		t.Errorf("ReconnectMultiplier should be 2.0, got %v", ReconnectMultiplier)
	}
}

// TestClient_SendInvalidTokenMapping verifies relay error codes map to the
// sentinel error the reminder sweep prunes on.
func TestClient_SendInvalidTokenMapping(t *testing.T) {
	for _, code := range []string{ErrCodeUnknownToken, ErrCodeExpiredToken} {
		resp := &Response{Status: StatusError, Code: code, Error: "token is dead"}
		err := receiptToError(resp)
		if !errors.Is(err, reminder.ErrTokenInvalid) {
			t.Errorf("Expected code %s to map to ErrTokenInvalid, got %v", code, err)
		}
	}

	resp := &Response{Status: StatusError, Code: "rate_limited", Error: "slow down"}
	if err := receiptToError(resp); errors.Is(err, reminder.ErrTokenInvalid) {
		t.Error("Expected transient error code not to map to ErrTokenInvalid")
	}

	if err := receiptToError(&Response{Status: StatusOK}); err != nil {
		t.Errorf("Expected no error for ok receipt, got %v", err)
	}
}
