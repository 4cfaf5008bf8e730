package progression

import (
	"github.com/pondkeeper/pondkeeper/internal/domain"
	"github.com/pondkeeper/pondkeeper/internal/utils"
)

// SlotStatus is the lifecycle state of one daily milestone slot.
type SlotStatus string

const (
	StatusClaimed SlotStatus = "CLAIMED"
	StatusReady   SlotStatus = "READY"
	StatusPending SlotStatus = "PENDING"
	StatusLocked  SlotStatus = "LOCKED"
)

// Slot is one of the three daily milestone gift opportunities, derived purely
// from the day's counters.
type Slot struct {
	Index    int        `json:"index"`
	Status   SlotStatus `json:"status"`
	Target   int        `json:"target"`
	Unlocked bool       `json:"unlocked"`
}

// unlockThresholds gate each slot on the total number of tasks due today.
var unlockThresholds = [domain.MilestoneSlotCount]int{1, 3, 6}

// claimThresholds gate sequential claiming on tasks completed today.
var claimThresholds = [domain.MaxMilestoneGiftsPerDay]int{2, 4, 6}

// computeSlots derives the three milestone slots from today's task totals.
// total is the number of tasks due today, completed the number finished, and
// claimed how many gifts were already taken.
func computeSlots(total, completed, claimed int) []Slot {
	slots := make([]Slot, domain.MilestoneSlotCount)
	for i := range slots {
		unlocked := total >= unlockThresholds[i]
		target := slotTarget(i, total, unlocked)

		status := StatusLocked
		switch {
		case i < claimed:
			status = StatusClaimed
		case !unlocked:
			status = StatusLocked
		case completed >= target:
			status = StatusReady
		default:
			status = StatusPending
		}

		slots[i] = Slot{Index: i, Status: status, Target: target, Unlocked: unlocked}
	}
	return slots
}

// slotTarget computes the completion target for a slot. Locked slots carry a
// projected target so the client can show what the goal would be.
func slotTarget(index, total int, unlocked bool) int {
	switch index {
	case 0:
		if t := utils.RoundHalfUp(float64(total) / 3); t > 1 {
			return t
		}
		return 1
	case 1:
		if unlocked {
			return utils.RoundHalfUp(float64(total) * 0.66)
		}
		return 3
	default:
		if unlocked {
			return total
		}
		return 6
	}
}
