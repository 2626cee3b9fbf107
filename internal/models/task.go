package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusToDo       TaskStatus = "TO_DO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusInReview   TaskStatus = "IN_REVIEW"
	TaskStatusDone       TaskStatus = "DONE"
)

// TaskStatuses lists the statuses in board order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{TaskStatusToDo, TaskStatusInProgress, TaskStatusInReview, TaskStatusDone}
}

// Valid reports whether s is one of the four enumerated statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusToDo, TaskStatusInProgress, TaskStatusInReview, TaskStatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
	TaskPriorityUrgent TaskPriority = "URGENT"
)

// Valid reports whether p is one of the enumerated priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// Task is a unit of project work tracked through the four kanban statuses.
// IDs are server-assigned; optimistic entries carry a negative placeholder ID
// until the create request is confirmed.
type Task struct {
	ID                int64        `json:"id"`
	ProjectID         int64        `json:"project_id"`
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	Notes             string       `json:"notes"`
	Status            TaskStatus   `json:"status"`
	Priority          TaskPriority `json:"priority"`
	EstimatedHours    *float64     `json:"estimated_hours"`
	ActualHours       *float64     `json:"actual_hours"`
	DueDate           *time.Time   `json:"due_date"`
	AssigneeUsername  string       `json:"assignee_username"`
	CreatedByUsername string       `json:"created_by_username"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// IsCompleted reports whether the task has reached DONE.
func (t *Task) IsCompleted() bool {
	return t.Status == TaskStatusDone
}

// IsOverdue reports whether the task has a due date strictly before today
// and is not DONE. The comparison is date-only; both dates are read in now's
// location so a due date carried in another zone cannot shift the day.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == TaskStatusDone {
		return false
	}
	due := truncateToDate(t.DueDate.In(now.Location()))
	today := truncateToDate(now)
	return due.Before(today)
}

// EstimatedOrZero returns the estimated hours, treating nil as 0.
func (t *Task) EstimatedOrZero() float64 {
	if t.EstimatedHours == nil {
		return 0
	}
	return *t.EstimatedHours
}

// ActualOrZero returns the actual hours, treating nil as 0.
func (t *Task) ActualOrZero() float64 {
	if t.ActualHours == nil {
		return 0
	}
	return *t.ActualHours
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// TaskHistoryEntry is one record of a task's append-only audit trail.
// The engine reads history but never writes it.
type TaskHistoryEntry struct {
	ID                int64     `json:"id"`
	TaskID            int64     `json:"task_id"`
	ChangedByUsername string    `json:"changed_by_username"`
	FieldName         string    `json:"field_name"`
	OldValue          string    `json:"old_value"`
	NewValue          string    `json:"new_value"`
	ChangedAt         time.Time `json:"changed_at"`
}
