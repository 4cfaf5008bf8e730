package push

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/pondkeeper/pondkeeper/internal/reminder"
)

// Client manages the WebSocket connection to the notification relay. The
// relay fans reminders out to the user's registered devices and reports a
// per-token delivery receipt, which is how stale tokens get detected.
type Client struct {
	url      string
	password string
	conn     *websocket.Conn
	mu       sync.RWMutex
	shutdown chan struct{}
	wg       sync.WaitGroup

	// Connection state
	connected    bool
	reconnecting bool
	dormant      bool // Set to true after too many consecutive failures

	// Reconnection management
	wakeup chan struct{} // Used to trigger reconnection from dormant mode

	// Delivery receipts routed back to waiting Notify calls by request ID
	responses map[string]chan *Response
	respMu    sync.RWMutex
}

// Request is a relay WebSocket request
type Request struct {
	Request string            `json:"request"`
	ID      string            `json:"id"`
	Token   string            `json:"token,omitempty"`
	Title   string            `json:"title,omitempty"`
	Body    string            `json:"body,omitempty"`
	Data    map[string]string `json:"data,omitempty"`
}

// Response is a relay WebSocket response
type Response struct {
	Status string `json:"status"`
	ID     string `json:"id"`
	Code   string `json:"code,omitempty"`
	Error  string `json:"error,omitempty"`
}

// AuthChallenge is the authentication challenge the relay sends on connect
type AuthChallenge struct {
	Info struct {
		Authentication struct {
			Challenge string `json:"challenge"`
			Salt      string `json:"salt"`
		} `json:"authentication"`
	} `json:"info"`
}

// NewClient creates a new relay WebSocket client
func NewClient(url, password string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url:       url,
		password:  password,
		shutdown:  make(chan struct{}),
		wakeup:    make(chan struct{}, 1), // Buffered to avoid blocking
		responses: make(map[string]chan *Response),
	}
}

// Start begins the WebSocket connection with auto-reconnect
func (c *Client) Start(ctx context.Context) {
	c.wg.Add(1)
	go c.connectLoop(ctx)
}

// Stop gracefully shuts down the client
func (c *Client) Stop() {
	close(c.shutdown)
	c.wg.Wait()

	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
	}
	c.mu.Unlock()
}

// IsConnected returns whether the client is currently connected
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// Send implements reminder.PushSender. It delivers one notification to one
// device token and waits for the relay's receipt; a receipt naming a dead
// token is surfaced as reminder.ErrTokenInvalid so the sweep can prune it.
func (c *Client) Send(ctx context.Context, token string, n reminder.Notification) error {
	// If dormant, wake up and attempt reconnection
	c.mu.RLock()
	isDormant := c.dormant
	c.mu.RUnlock()

	if isDormant {
		slog.Debug(LogMsgDormantRetry)
		select {
		case c.wakeup <- struct{}{}:
		default:
			// Already waking up
		}
		return fmt.Errorf("relay is dormant, reconnection triggered")
	}

	if !c.IsConnected() {
		return fmt.Errorf("not connected to notification relay")
	}

	req := Request{
		Request: RequestNotify,
		ID:      uuid.New().String(),
		Token:   token,
		Title:   n.Title,
		Body:    n.Body,
		Data:    n.Data,
	}

	receipt := make(chan *Response, 1)
	c.respMu.Lock()
	c.responses[req.ID] = receipt
	c.respMu.Unlock()
	defer func() {
		c.respMu.Lock()
		delete(c.responses, req.ID)
		c.respMu.Unlock()
	}()

	slog.Debug(LogMsgSendingNotify, "title", n.Title)

	if err := c.sendRequest(req); err != nil {
		slog.Error(LogMsgNotifyFailed, "error", err)
		return err
	}

	select {
	case resp := <-receipt:
		return receiptToError(resp)
	case <-time.After(AckTimeout):
		return fmt.Errorf("timed out waiting for delivery receipt")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// receiptToError converts a delivery receipt into the error Send returns.
// Dead-token codes map to reminder.ErrTokenInvalid so the sweep prunes them.
func receiptToError(resp *Response) error {
	if resp.Status == StatusOK {
		return nil
	}
	if resp.Code == ErrCodeUnknownToken || resp.Code == ErrCodeExpiredToken {
		return fmt.Errorf("%w: %s", reminder.ErrTokenInvalid, resp.Error)
	}
	return fmt.Errorf("relay rejected notification: %s", resp.Error)
}

func (c *Client) connectLoop(ctx context.Context) {
	defer c.wg.Done()

	backoff := DefaultReconnectDelay
	consecutiveFailures := 0

	for {
		select {
		case <-c.shutdown:
			slog.Info(LogMsgClientStopped)
			return
		case <-ctx.Done():
			slog.Info(LogMsgClientStopped)
			return
		default:
		}

		err := c.connect(ctx)
		if err != nil {
			consecutiveFailures++
			c.setConnected(false)

			// Check if we should give up and enter dormant mode
			if consecutiveFailures >= MaxConsecutiveFailures {
				if stop := c.handleDormantMode(ctx, &consecutiveFailures, &backoff); stop {
					return
				}
				continue
			}

			// Only log first few failures and then periodically to avoid log spam
			if consecutiveFailures <= 3 || consecutiveFailures%100 == 0 {
				slog.Warn(LogMsgReconnecting,
					"error", err,
					"backoff", backoff,
					"consecutive_failures", consecutiveFailures)
			}

			select {
			case <-time.After(backoff):
				backoff = time.Duration(float64(backoff) * ReconnectMultiplier)
				if backoff > MaxReconnectDelay {
					backoff = MaxReconnectDelay
				}
			case <-c.shutdown:
				return
			case <-ctx.Done():
				return
			}
		} else {
			// Log reconnection success if we had failures
			if consecutiveFailures > 0 {
				slog.Info(LogMsgConnRestored, "after_failures", consecutiveFailures)
			}
			// Reset backoff and dormant state on successful connection
			backoff = DefaultReconnectDelay
			consecutiveFailures = 0
			c.mu.Lock()
			c.dormant = false
			c.mu.Unlock()
		}
	}
}

// handleDormantMode enters dormant mode after too many failures and waits for a wakeup signal
func (c *Client) handleDormantMode(ctx context.Context, consecutiveFailures *int, backoff *time.Duration) bool {
	c.mu.Lock()
	c.dormant = true
	c.mu.Unlock()

	slog.Warn(LogMsgGivingUp,
		"consecutive_failures", *consecutiveFailures,
		"max_allowed", MaxConsecutiveFailures)

	// Wait for wakeup signal or shutdown
	select {
	case <-c.wakeup:
		slog.Info(LogMsgDormantWake)
		c.mu.Lock()
		c.dormant = false
		c.mu.Unlock()
		// Reset counters for fresh retry
		*backoff = DefaultReconnectDelay
		*consecutiveFailures = 0
		return false
	case <-c.shutdown:
		return true
	case <-ctx.Done():
		return true
	}
}

func (c *Client) connect(ctx context.Context) error {
	slog.Info(LogMsgConnecting, "url", c.url)

	dialer := websocket.Dialer{
		ReadBufferSize:  ReadBufferSize,
		WriteBufferSize: WriteBufferSize,
	}

	conn, resp, err := dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("failed to connect: %w (status: %s, code: %d)", err, resp.Status, resp.StatusCode)
		}
		return fmt.Errorf("failed to connect: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	// Read initial message (may contain auth challenge)
	// Short timeout because a relay without auth configured sends nothing
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	_ = conn.SetReadDeadline(time.Time{}) // Reset deadline

	if err == nil {
		// Check if authentication is required
		var challenge AuthChallenge
		if err := json.Unmarshal(msg, &challenge); err == nil {
			if challenge.Info.Authentication.Challenge != "" {
				slog.Info(LogMsgAuthRequired)
				if err := c.authenticate(challenge); err != nil {
					conn.Close()
					return fmt.Errorf("authentication failed: %w", err)
				}
				slog.Info(LogMsgAuthSuccess)
			}
		}
	} else {
		slog.Debug(LogMsgNoInitialFrame, "error", err)
	}

	c.setConnected(true)
	slog.Info(LogMsgConnected, "url", c.url)

	// Start read loop
	return c.readLoop(ctx)
}

func (c *Client) authenticate(challenge AuthChallenge) error {
	if c.password == "" {
		return fmt.Errorf("password required but not configured")
	}

	authHash := GenerateAuthHash(
		c.password,
		challenge.Info.Authentication.Salt,
		challenge.Info.Authentication.Challenge,
	)

	authReq := struct {
		Request        string `json:"request"`
		ID             string `json:"id"`
		Authentication string `json:"authentication"`
	}{
		Request:        RequestAuthenticate,
		ID:             uuid.New().String(),
		Authentication: authHash,
	}

	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if err := conn.WriteJSON(authReq); err != nil {
		return fmt.Errorf("failed to send auth request: %w", err)
	}

	// Read auth response
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("failed to read auth response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(msg, &resp); err != nil {
		return fmt.Errorf("failed to parse auth response: %w", err)
	}

	if resp.Status != StatusOK {
		return fmt.Errorf("auth rejected: %s", resp.Error)
	}

	return nil
}

func (c *Client) readLoop(ctx context.Context) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	for {
		select {
		case <-c.shutdown:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			slog.Warn(LogMsgReadError, "error", err)
			return err
		}

		// Parse receipt and route to the waiting Notify call if any
		var resp Response
		if err := json.Unmarshal(msg, &resp); err != nil {
			continue // Ignore unparseable messages
		}

		if resp.ID != "" {
			c.respMu.RLock()
			ch, ok := c.responses[resp.ID]
			c.respMu.RUnlock()
			if ok {
				select {
				case ch <- &resp:
				default:
				}
			}
		}
	}
}

func (c *Client) sendRequest(req Request) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("no connection")
	}

	_ = conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
	return conn.WriteJSON(req)
}

func (c *Client) setConnected(connected bool) {
	c.mu.Lock()
	c.connected = connected
	c.reconnecting = !connected
	c.mu.Unlock()
}
