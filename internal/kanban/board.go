// Package kanban maps the task collection onto the four fixed board columns
// and turns drag-and-drop gestures and creation forms into mutation intents.
// It performs no requests itself; intents are consumed by the workspace.
package kanban

import (
	"time"

	apierrors "github.com/talentforge/workspace/internal/errors"
	"github.com/talentforge/workspace/internal/models"
	"github.com/talentforge/workspace/internal/tasks"
)

// ColumnSpec is the fixed presentation metadata of one board column.
type ColumnSpec struct {
	Status   models.TaskStatus
	Title    string
	Color    string
	Position int
}

// ColumnSpecs returns the four columns in board order.
func ColumnSpecs() []ColumnSpec {
	return []ColumnSpec{
		{Status: models.TaskStatusToDo, Title: "To Do", Color: "#60A5FA", Position: 1},
		{Status: models.TaskStatusInProgress, Title: "In Progress", Color: "#F59E0B", Position: 2},
		{Status: models.TaskStatusInReview, Title: "In Review", Color: "#A78BFA", Position: 3},
		{Status: models.TaskStatusDone, Title: "Done", Color: "#22C55E", Position: 4},
	}
}

// Column is one rendered board column.
type Column struct {
	ColumnSpec
	Tasks []models.Task
}

// Board groups tasks into the four columns, preserving collection order
// within each column.
func Board(taskList []models.Task) []Column {
	columns := make([]Column, 0, 4)
	for _, spec := range ColumnSpecs() {
		col := Column{ColumnSpec: spec}
		for _, t := range taskList {
			if t.Status == spec.Status {
				col.Tasks = append(col.Tasks, t)
			}
		}
		columns = append(columns, col)
	}
	return columns
}

// StatusChangeIntent is a requested column move, consumed by the workspace.
type StatusChangeIntent struct {
	TaskID int64
	From   models.TaskStatus
	To     models.TaskStatus
}

// Drop handles a drag-and-drop onto target. Dropping onto the task's current
// column is a no-op and returns nil; a target outside the four statuses fails.
func Drop(task models.Task, target models.TaskStatus) (*StatusChangeIntent, error) {
	if !target.Valid() {
		return nil, &apierrors.InvalidStatusError{Status: string(target)}
	}
	if task.Status == target {
		return nil, nil
	}
	return &StatusChangeIntent{TaskID: task.ID, From: task.Status, To: target}, nil
}

// CreateForm is the new-task form raised from the board.
type CreateForm struct {
	Title          string
	Description    string
	Notes          string
	Priority       models.TaskPriority
	DueDate        *time.Time
	EstimatedHours *float64
	Assignee       string
}

// CreateIntent converts a form into a repository create input. Priority
// defaults to MEDIUM; the assignee default (the project's counterpart role)
// is applied by the repository itself.
func CreateIntent(form CreateForm) tasks.CreateTaskInput {
	if form.Priority == "" {
		form.Priority = models.TaskPriorityMedium
	}
	return tasks.CreateTaskInput{
		Title:            form.Title,
		Description:      form.Description,
		Notes:            form.Notes,
		Priority:         form.Priority,
		DueDate:          form.DueDate,
		EstimatedHours:   form.EstimatedHours,
		AssigneeUsername: form.Assignee,
	}
}
