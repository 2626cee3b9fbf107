package tasks

import (
	"time"

	apierrors "github.com/talentforge/workspace/internal/errors"
	"github.com/talentforge/workspace/internal/models"
)

// ParseStatus validates a raw status value. The state machine is permissive:
// any of the four statuses may transition to any other, including backward
// (reopening a DONE task), so the only possible failure is a value outside
// the enumeration.
func ParseStatus(raw string) (models.TaskStatus, error) {
	status := models.TaskStatus(raw)
	if !status.Valid() {
		return "", &apierrors.InvalidStatusError{Status: raw}
	}
	return status, nil
}

// applyTransition moves a task to the target status and refreshes its
// modification timestamp. Callers have already validated the target.
func applyTransition(t *models.Task, target models.TaskStatus, now time.Time) {
	t.Status = target
	t.UpdatedAt = now
}
