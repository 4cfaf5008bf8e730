// Package tasks provides the outbound client to the task tracker API. The
// reminder sweep asks it which tracked tasks are still due for an account
// on a local date.
package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pondkeeper/pondkeeper/internal/domain"
	"github.com/pondkeeper/pondkeeper/internal/logger"
)

const defaultTimeout = 10 * time.Second

// Client fetches due tasks from the task tracker over HTTP
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new task tracker client
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

type taskResponse struct {
	Tasks []struct {
		ID         string `json:"id"`
		Title      string `json:"title"`
		Completed  bool   `json:"completed"`
		Suppressed bool   `json:"suppressed"`
	} `json:"tasks"`
}

// DueTasks returns the tracked tasks due for an account on a local date
func (c *Client) DueTasks(ctx context.Context, accountID, date string) ([]domain.TaskItem, error) {
	log := logger.FromContext(ctx)

	endpoint := fmt.Sprintf("%s/api/v1/tasks?account_id=%s&date=%s",
		c.baseURL, url.QueryEscape(accountID), url.QueryEscape(date))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create task request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("task tracker returned status %d", resp.StatusCode)
	}

	var body taskResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode task response: %w", err)
	}

	items := make([]domain.TaskItem, 0, len(body.Tasks))
	for _, t := range body.Tasks {
		items = append(items, domain.TaskItem{
			ID:         t.ID,
			Title:      t.Title,
			Completed:  t.Completed,
			Suppressed: t.Suppressed,
		})
	}

	log.Debug("Fetched due tasks", "account_id", accountID, "date", date, "count", len(items))
	return items, nil
}

// EmptySource is the stand-in task source used when no tracker URL is
// configured. Reminders then fall back to generic nudges only.
type EmptySource struct{}

// DueTasks always reports no tasks
func (EmptySource) DueTasks(_ context.Context, _, _ string) ([]domain.TaskItem, error) {
	return nil, nil
}
