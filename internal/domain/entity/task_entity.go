package entity

import "time"

// Task is a to-do item owned by exactly one user.
// UserID is set at creation and never changes.
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	DueDate     *time.Time
	Completed   bool
	CreatedAt   time.Time
}

// TaskFilter selects which tasks a list view shows.
type TaskFilter int

const (
	FilterAll TaskFilter = iota
	FilterPending
	FilterCompleted
)

func (f TaskFilter) String() string {
	switch f {
	case FilterPending:
		return "pending"
	case FilterCompleted:
		return "completed"
	default:
		return "all"
	}
}

// Matches reports whether t belongs in the filtered view.
func (f TaskFilter) Matches(t *Task) bool {
	switch f {
	case FilterPending:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}
