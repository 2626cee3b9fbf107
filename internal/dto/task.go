package dto

import (
	"time"

	"github.com/talentforge/workspace/internal/models"
)

// TaskDTO is a task as the backend serializes it. The server computes
// is_overdue and is_completed itself; the model re-derives them locally, so
// they are accepted but not stored.
type TaskDTO struct {
	ID                int64               `json:"id"`
	ProjectID         int64               `json:"project_id"`
	Title             string              `json:"title"`
	Description       string              `json:"description"`
	Notes             string              `json:"notes"`
	Status            models.TaskStatus   `json:"status"`
	Priority          models.TaskPriority `json:"priority"`
	EstimatedHours    *float64            `json:"estimated_hours"`
	ActualHours       *float64            `json:"actual_hours"`
	DueDate           *time.Time          `json:"due_date"`
	AssigneeUsername  string              `json:"assignee_username"`
	CreatedByUsername string              `json:"created_by_username"`
	IsOverdue         bool                `json:"is_overdue"`
	IsCompleted       bool                `json:"is_completed"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// CreateTaskRequest is the body of POST /tasks/projects/{projectId}.
type CreateTaskRequest struct {
	Title            string              `json:"title"`
	Description      string              `json:"description,omitempty"`
	Notes            string              `json:"notes,omitempty"`
	Priority         models.TaskPriority `json:"priority"`
	DueDate          *time.Time          `json:"due_date,omitempty"`
	EstimatedHours   *float64            `json:"estimated_hours,omitempty"`
	AssigneeUsername string              `json:"assignee_username,omitempty"`
}

// UpdateTaskRequest is the body of PUT /tasks/{taskId}. Nil fields are left
// untouched by the server.
type UpdateTaskRequest struct {
	Title            *string              `json:"title,omitempty"`
	Description      *string              `json:"description,omitempty"`
	Notes            *string              `json:"notes,omitempty"`
	Priority         *models.TaskPriority `json:"priority,omitempty"`
	DueDate          *time.Time           `json:"due_date,omitempty"`
	ClearDueDate     bool                 `json:"clear_due_date,omitempty"`
	EstimatedHours   *float64             `json:"estimated_hours,omitempty"`
	ActualHours      *float64             `json:"actual_hours,omitempty"`
	AssigneeUsername *string              `json:"assignee_username,omitempty"`
}

// UpdateTaskStatusRequest is the body of PATCH /tasks/{taskId}/status.
type UpdateTaskStatusRequest struct {
	Status models.TaskStatus `json:"status"`
}

// TaskHistoryDTO is one audit-trail record from GET /tasks/{taskId}/history.
type TaskHistoryDTO struct {
	ID                int64     `json:"id"`
	TaskID            int64     `json:"task_id"`
	ChangedByUsername string    `json:"changed_by_username"`
	FieldName         string    `json:"field_name"`
	OldValue          string    `json:"old_value"`
	NewValue          string    `json:"new_value"`
	ChangedAt         time.Time `json:"changed_at"`
}

// TaskFromDTO converts a TaskDTO to the local Task model.
func TaskFromDTO(d TaskDTO) models.Task {
	return models.Task{
		ID:                d.ID,
		ProjectID:         d.ProjectID,
		Title:             d.Title,
		Description:       d.Description,
		Notes:             d.Notes,
		Status:            d.Status,
		Priority:          d.Priority,
		EstimatedHours:    d.EstimatedHours,
		ActualHours:       d.ActualHours,
		DueDate:           d.DueDate,
		AssigneeUsername:  d.AssigneeUsername,
		CreatedByUsername: d.CreatedByUsername,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

// TasksFromDTO converts a slice of TaskDTO to Task models.
func TasksFromDTO(dtos []TaskDTO) []models.Task {
	tasks := make([]models.Task, 0, len(dtos))
	for _, d := range dtos {
		tasks = append(tasks, TaskFromDTO(d))
	}
	return tasks
}

// HistoryFromDTO converts an audit-trail record to the local model.
func HistoryFromDTO(d TaskHistoryDTO) models.TaskHistoryEntry {
	return models.TaskHistoryEntry{
		ID:                d.ID,
		TaskID:            d.TaskID,
		ChangedByUsername: d.ChangedByUsername,
		FieldName:         d.FieldName,
		OldValue:          d.OldValue,
		NewValue:          d.NewValue,
		ChangedAt:         d.ChangedAt,
	}
}
