package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameItemsPurchased   = "items_purchased_total"
	MetricNameItemsSold        = "items_sold_total"
	MetricNameTradeUps         = "trade_ups_total"
	MetricNameGiftsOpened      = "gifts_opened_total"
	MetricNameTasksCompleted   = "tasks_completed_total"
	MetricNameMilestoneClaims  = "milestone_gifts_claimed_total"
	MetricNameCalendarClaims   = "calendar_days_claimed_total"
	MetricNameFliesEarned      = "flies_earned_total"
	MetricNameFliesSpent       = "flies_spent_total"
	MetricNameFliesStolen      = "flies_stolen_total"
	MetricNamePenaltiesApplied = "hunger_penalties_applied_total"
	MetricNameRemindersSent    = "reminders_sent_total"
	MetricNameTokensPruned     = "device_tokens_pruned_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextItemsPurchased   = "Total number of items purchased from the shop"
	HelpTextItemsSold        = "Total number of items sold back to the shop"
	HelpTextTradeUps         = "Total number of trade-ups performed"
	HelpTextGiftsOpened      = "Total number of gift containers opened"
	HelpTextTasksCompleted   = "Total number of task completions recorded"
	HelpTextMilestoneClaims  = "Total number of milestone gifts claimed"
	HelpTextCalendarClaims   = "Total number of calendar days claimed"
	HelpTextFliesEarned      = "Total flies credited to accounts"
	HelpTextFliesSpent       = "Total flies debited from accounts"
	HelpTextFliesStolen      = "Total flies removed by starvation penalties"
	HelpTextPenaltiesApplied = "Total starvation penalty intervals resolved"
	HelpTextRemindersSent    = "Total reminder notifications dispatched"
	HelpTextTokensPruned     = "Total device tokens pruned as permanently invalid"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelItem   = "item"
	LabelRarity = "rarity"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
