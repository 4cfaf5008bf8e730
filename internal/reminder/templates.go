package reminder

import "fmt"

// reminderTitle is the fixed push title.
const reminderTitle = "Your frog is waiting"

// messageTemplates are the reminder body variants; %d is the number of tasks
// still open today.
var messageTemplates = []string{
	"You have %d tasks left today. Knock one out and feed your frog!",
	"%d tasks still open. Your frog could use a fly or two.",
	"Still %d to go today. A quick task keeps the pond happy.",
	"Ribbit! %d tasks are waiting for you.",
}

// pickMessage formats a uniformly random template with the open-task count.
func pickMessage(rnd func() float64, incomplete int) string {
	idx := int(rnd() * float64(len(messageTemplates)))
	if idx >= len(messageTemplates) {
		idx = len(messageTemplates) - 1
	}
	return fmt.Sprintf(messageTemplates[idx], incomplete)
}
