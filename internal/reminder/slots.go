package reminder

import (
	"github.com/pondkeeper/pondkeeper/internal/domain"
)

// recomputeSlots derives the preferred morning and evening reminder hours
// from the activity-hour history. Each window picks the hour with the highest
// observation count, ties going to the earliest hour; windows with no
// observations keep their defaults.
func recomputeSlots(hours []int) (morning, evening int) {
	var histogram [24]int
	for _, h := range hours {
		if h >= 0 && h < 24 {
			histogram[h]++
		}
	}

	morning = windowArgmax(histogram, domain.MorningWindowStart, domain.MorningWindowEnd, domain.DefaultMorningSlot)
	evening = windowArgmax(histogram, domain.EveningWindowStart, domain.EveningWindowEnd, domain.DefaultEveningSlot)
	return morning, evening
}

func windowArgmax(histogram [24]int, start, end, fallback int) int {
	best, bestCount := fallback, 0
	for h := start; h <= end; h++ {
		if histogram[h] > bestCount {
			best, bestCount = h, histogram[h]
		}
	}
	return best
}

// appendActivityHour pushes hour onto the capped ring, evicting the oldest
// entry past the cap.
func appendActivityHour(hours []int, hour int) []int {
	hours = append(hours, hour)
	if len(hours) > domain.ActivityHoursCap {
		hours = hours[len(hours)-domain.ActivityHoursCap:]
	}
	return hours
}
