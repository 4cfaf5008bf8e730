package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Economy Metrics
var (
	ItemsPurchased = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsPurchased,
			Help: HelpTextItemsPurchased,
		},
		[]string{LabelItem},
	)

	ItemsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsSold,
			Help: HelpTextItemsSold,
		},
		[]string{LabelItem},
	)

	TradeUps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTradeUps,
			Help: HelpTextTradeUps,
		},
		[]string{LabelRarity},
	)

	GiftsOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGiftsOpened,
			Help: HelpTextGiftsOpened,
		},
		[]string{LabelRarity},
	)

	FliesEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameFliesEarned,
			Help: HelpTextFliesEarned,
		},
	)

	FliesSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameFliesSpent,
			Help: HelpTextFliesSpent,
		},
	)
)

// Hunger Metrics
var (
	PenaltiesApplied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePenaltiesApplied,
			Help: HelpTextPenaltiesApplied,
		},
	)

	FliesStolen = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameFliesStolen,
			Help: HelpTextFliesStolen,
		},
	)
)

// Progression & Calendar Metrics
var (
	TasksCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTasksCompleted,
			Help: HelpTextTasksCompleted,
		},
	)

	MilestoneClaims = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMilestoneClaims,
			Help: HelpTextMilestoneClaims,
		},
	)

	CalendarClaims = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCalendarClaims,
			Help: HelpTextCalendarClaims,
		},
	)
)

// Reminder Metrics
var (
	RemindersSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRemindersSent,
			Help: HelpTextRemindersSent,
		},
	)

	TokensPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTokensPruned,
			Help: HelpTextTokensPruned,
		},
	)
)
