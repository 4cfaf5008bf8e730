package domain

// TaskItem is one tracked task as reported by the external task collaborator
// for a given local date.
type TaskItem struct {
	ID         string
	Title      string
	Completed  bool
	Suppressed bool
}
