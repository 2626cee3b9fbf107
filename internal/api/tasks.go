package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/talentforge/workspace/internal/dto"
	"github.com/talentforge/workspace/internal/models"
)

// GetProject fetches a project by ID.
func (c *Client) GetProject(ctx context.Context, projectID int64) (*models.Project, error) {
	var payload dto.ProjectDTO
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%d", projectID), nil, &payload); err != nil {
		return nil, err
	}
	project := dto.ProjectFromDTO(payload)
	return &project, nil
}

// ListTasks fetches all tasks of a project.
func (c *Client) ListTasks(ctx context.Context, projectID int64) ([]models.Task, error) {
	var payload []dto.TaskDTO
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/projects/%d", projectID), nil, &payload); err != nil {
		return nil, err
	}
	return dto.TasksFromDTO(payload), nil
}

// CreateTask creates a task in a project and returns the server's
// authoritative record.
func (c *Client) CreateTask(ctx context.Context, projectID int64, req dto.CreateTaskRequest) (*models.Task, error) {
	var payload dto.TaskDTO
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/tasks/projects/%d", projectID), req, &payload); err != nil {
		return nil, err
	}
	task := dto.TaskFromDTO(payload)
	return &task, nil
}

// UpdateTaskStatus moves a task to a new status and returns the server's
// authoritative record.
func (c *Client) UpdateTaskStatus(ctx context.Context, taskID int64, status models.TaskStatus) (*models.Task, error) {
	req := dto.UpdateTaskStatusRequest{Status: status}
	var payload dto.TaskDTO
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/tasks/%d/status", taskID), req, &payload); err != nil {
		return nil, err
	}
	task := dto.TaskFromDTO(payload)
	return &task, nil
}

// UpdateTask applies a full update to a task and returns the server's
// authoritative record.
func (c *Client) UpdateTask(ctx context.Context, taskID int64, req dto.UpdateTaskRequest) (*models.Task, error) {
	var payload dto.TaskDTO
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", taskID), req, &payload); err != nil {
		return nil, err
	}
	task := dto.TaskFromDTO(payload)
	return &task, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", taskID), nil, nil)
}

// TaskHistory fetches the append-only audit trail of a task.
func (c *Client) TaskHistory(ctx context.Context, taskID int64) ([]models.TaskHistoryEntry, error) {
	var payload []dto.TaskHistoryDTO
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d/history", taskID), nil, &payload); err != nil {
		return nil, err
	}
	entries := make([]models.TaskHistoryEntry, 0, len(payload))
	for _, d := range payload {
		entries = append(entries, dto.HistoryFromDTO(d))
	}
	return entries, nil
}
