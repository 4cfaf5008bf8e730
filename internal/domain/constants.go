package domain

import "time"

// Hunger engine tuning
const (
	// MaxHunger is the ceiling of the hunger counter: a fully fed frog.
	MaxHunger = 48 * time.Hour

	// PenaltyInterval is the span of unresolved starvation debt that costs
	// the user one fly.
	PenaltyInterval = 24 * time.Hour

	// FliesPerPenalty is the number of flies stolen per resolved penalty interval.
	FliesPerPenalty = 1

	// HungerPerTask is the hunger credit awarded for each completed task.
	HungerPerTask = 4 * time.Hour

	// FliesPerTask is the fly reward for each completed task.
	FliesPerTask = 1
)

// Milestone gift tuning
const (
	// MaxMilestoneGiftsPerDay caps milestone gift claims per calendar day.
	MaxMilestoneGiftsPerDay = 3

	// MilestoneSlotCount is the number of daily milestone gift slots.
	MilestoneSlotCount = 3
)

// Reminder scheduler tuning
const (
	// ActivityHoursCap bounds the activity-hour ring buffer.
	ActivityHoursCap = 50

	// MinNotifyGap is the minimum spacing between two reminders to one account.
	MinNotifyGap = 4 * time.Hour

	DefaultMorningSlot = 9
	DefaultEveningSlot = 18

	MorningWindowStart = 8
	MorningWindowEnd   = 13
	EveningWindowStart = 16
	EveningWindowEnd   = 21
)

// Date layouts used for lazy daily/monthly rollovers.
const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// TradeUpSetSize is the number of same-rarity items consumed by one trade-up.
const TradeUpSetSize = 10
