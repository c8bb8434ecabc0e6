package models

import "time"

// TaskStatus is derived from the due date at read time and never stored.
type TaskStatus string

const (
	TaskStatusDone       TaskStatus = "DONE"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
)

// Task is a single item owned by exactly one user and filed under exactly
// one category.
type Task struct {
	ID          string
	Title       string
	Description string
	DueDate     *time.Time
	CategoryID  string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Status derives the display status from the due date: DONE once the due
// date has passed, IN_PROGRESS otherwise. A due date equal to now has not
// passed yet.
func (t *Task) Status(now time.Time) TaskStatus {
	if t.DueDate != nil && t.DueDate.Before(now) {
		return TaskStatusDone
	}
	return TaskStatusInProgress
}
