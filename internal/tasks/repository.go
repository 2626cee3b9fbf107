package tasks

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/talentforge/workspace/internal/dto"
	apierrors "github.com/talentforge/workspace/internal/errors"
	"github.com/talentforge/workspace/internal/models"
	"github.com/talentforge/workspace/internal/progress"
)

// apiClient is the slice of the REST client the repository depends on.
type apiClient interface {
	ListTasks(ctx context.Context, projectID int64) ([]models.Task, error)
	CreateTask(ctx context.Context, projectID int64, req dto.CreateTaskRequest) (*models.Task, error)
	UpdateTaskStatus(ctx context.Context, taskID int64, status models.TaskStatus) (*models.Task, error)
	UpdateTask(ctx context.Context, taskID int64, req dto.UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID int64) error
	TaskHistory(ctx context.Context, taskID int64) ([]models.TaskHistoryEntry, error)
}

// Repository owns the in-memory task collection of one open project view and
// keeps it synchronized with the remote store. Every mutation is applied
// optimistically: the collection reflects the change before the request is
// confirmed, and rolls back to the last confirmed state when it fails.
//
// Mutations on the same task are tracked with a per-task generation counter
// so that only the latest intent's response is applied; a slow response to a
// superseded drag is dropped instead of overwriting newer state.
type Repository struct {
	client   apiClient
	project  *models.Project
	actor    string
	log      *logrus.Entry
	validate *validator.Validate

	mu          sync.Mutex
	tasks       []models.Task
	generations map[int64]uint64
	placeholder int64
	onChange    func()
}

// NewRepository creates a Repository for one project. actor is the signed-in
// username, recorded on optimistic creates until the server confirms.
func NewRepository(client apiClient, project *models.Project, actor string, logger *logrus.Logger) *Repository {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Repository{
		client:      client,
		project:     project,
		actor:       actor,
		log:         logger.WithFields(logrus.Fields{"component": "tasks", "project_id": project.ID}),
		validate:    validator.New(),
		generations: make(map[int64]uint64),
	}
}

// SetOnChange registers a callback invoked after every collection change,
// optimistic or confirmed. Presentation layers use it to recompute progress.
func (r *Repository) SetOnChange(fn func()) {
	r.mu.Lock()
	r.onChange = fn
	r.mu.Unlock()
}

// Load replaces the collection with the remote task list.
func (r *Repository) Load(ctx context.Context) error {
	tasks, err := r.client.ListTasks(ctx, r.project.ID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.tasks = tasks
	r.mu.Unlock()

	r.log.WithField("count", len(tasks)).Debug("loaded tasks")
	r.notify()
	return nil
}

// Tasks returns a copy of the current collection.
func (r *Repository) Tasks() []models.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

// Get returns the task with the given ID, if present.
func (r *Repository) Get(id int64) (models.Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexOf(id); i >= 0 {
		return r.tasks[i], true
	}
	return models.Task{}, false
}

// Progress computes the workspace progress from the current collection.
// After a rollback this reflects the rolled-back state, not the failed intent.
func (r *Repository) Progress() progress.Summary {
	return progress.Compute(r.Tasks(), r.project.Status)
}

// CreateTaskInput is the validated input of Create.
type CreateTaskInput struct {
	Title            string              `validate:"required"`
	Description      string
	Notes            string
	Priority         models.TaskPriority
	DueDate          *time.Time
	EstimatedHours   *float64            `validate:"omitempty,gte=0"`
	AssigneeUsername string
}

// Create validates the input, inserts an optimistic placeholder, and submits
// the create request. On success the server's authoritative record replaces
// the placeholder; on failure the placeholder is removed. A task created
// without an explicit assignee defaults to the project's assigned talent.
func (r *Repository) Create(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	if err := r.checkInput(input); err != nil {
		return nil, err
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, apierrors.NewValidationError("priority", fmt.Sprintf("unknown priority %q", input.Priority))
	}
	if input.AssigneeUsername == "" {
		input.AssigneeUsername = r.project.AssignedTalentUsername
	}

	now := time.Now()
	r.mu.Lock()
	r.placeholder--
	placeholderID := r.placeholder
	optimistic := models.Task{
		ID:                placeholderID,
		ProjectID:         r.project.ID,
		Title:             input.Title,
		Description:       input.Description,
		Notes:             input.Notes,
		Status:            models.TaskStatusToDo,
		Priority:          input.Priority,
		EstimatedHours:    input.EstimatedHours,
		DueDate:           input.DueDate,
		AssigneeUsername:  input.AssigneeUsername,
		CreatedByUsername: r.actor,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	r.tasks = append(r.tasks, optimistic)
	r.mu.Unlock()
	r.notify()

	confirmed, err := r.client.CreateTask(ctx, r.project.ID, dto.CreateTaskRequest{
		Title:            input.Title,
		Description:      input.Description,
		Notes:            input.Notes,
		Priority:         input.Priority,
		DueDate:          input.DueDate,
		EstimatedHours:   input.EstimatedHours,
		AssigneeUsername: input.AssigneeUsername,
	})

	r.mu.Lock()
	i := r.indexOf(placeholderID)
	if err != nil {
		if i >= 0 {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
		}
		r.mu.Unlock()
		r.notify()
		r.log.WithError(err).Warn("task create rejected, optimistic insert rolled back")
		return nil, err
	}
	if i >= 0 {
		r.tasks[i] = *confirmed
	} else {
		r.tasks = append(r.tasks, *confirmed)
	}
	r.mu.Unlock()
	r.notify()

	r.log.WithField("task_id", confirmed.ID).Debug("task created")
	return confirmed, nil
}

// UpdateStatus moves a task to a new column. The transition itself is always
// legal; only a target outside the four enumerated statuses fails, before any
// request goes out.
func (r *Repository) UpdateStatus(ctx context.Context, taskID int64, target models.TaskStatus) (*models.Task, error) {
	status, err := ParseStatus(string(target))
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	i := r.indexOf(taskID)
	if i < 0 {
		r.mu.Unlock()
		return nil, &apierrors.NotFoundError{Message: fmt.Sprintf("task %d not found", taskID)}
	}
	snapshot := r.tasks[i]
	gen := r.nextGeneration(taskID)
	applyTransition(&r.tasks[i], status, time.Now())
	r.mu.Unlock()
	r.notify()

	confirmed, err := r.client.UpdateTaskStatus(ctx, taskID, status)
	return r.reconcile(taskID, gen, snapshot, confirmed, err)
}

// UpdateTaskInput is the validated input of Update. Nil fields are left
// unchanged; ClearDueDate removes the due date.
type UpdateTaskInput struct {
	Title            *string              `validate:"omitempty,min=1"`
	Description      *string
	Notes            *string
	Priority         *models.TaskPriority
	DueDate          *time.Time
	ClearDueDate     bool
	EstimatedHours   *float64             `validate:"omitempty,gte=0"`
	ActualHours      *float64             `validate:"omitempty,gte=0"`
	AssigneeUsername *string
}

// Update applies a full update to a task, optimistically patching the local
// entry before the request is confirmed.
func (r *Repository) Update(ctx context.Context, taskID int64, input UpdateTaskInput) (*models.Task, error) {
	if err := r.checkInput(input); err != nil {
		return nil, err
	}
	if input.Priority != nil && !input.Priority.Valid() {
		return nil, apierrors.NewValidationError("priority", fmt.Sprintf("unknown priority %q", *input.Priority))
	}

	r.mu.Lock()
	i := r.indexOf(taskID)
	if i < 0 {
		r.mu.Unlock()
		return nil, &apierrors.NotFoundError{Message: fmt.Sprintf("task %d not found", taskID)}
	}
	snapshot := r.tasks[i]
	gen := r.nextGeneration(taskID)
	patchTask(&r.tasks[i], input, time.Now())
	r.mu.Unlock()
	r.notify()

	confirmed, err := r.client.UpdateTask(ctx, taskID, dto.UpdateTaskRequest{
		Title:            input.Title,
		Description:      input.Description,
		Notes:            input.Notes,
		Priority:         input.Priority,
		DueDate:          input.DueDate,
		ClearDueDate:     input.ClearDueDate,
		EstimatedHours:   input.EstimatedHours,
		ActualHours:      input.ActualHours,
		AssigneeUsername: input.AssigneeUsername,
	})
	return r.reconcile(taskID, gen, snapshot, confirmed, err)
}

// Delete removes a task. The local entry disappears immediately and is
// restored at its old position if the server rejects the request.
func (r *Repository) Delete(ctx context.Context, taskID int64) error {
	r.mu.Lock()
	i := r.indexOf(taskID)
	if i < 0 {
		r.mu.Unlock()
		return &apierrors.NotFoundError{Message: fmt.Sprintf("task %d not found", taskID)}
	}
	snapshot := r.tasks[i]
	position := i
	gen := r.nextGeneration(taskID)
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	r.mu.Unlock()
	r.notify()

	if err := r.client.DeleteTask(ctx, taskID); err != nil {
		r.mu.Lock()
		if r.generations[taskID] == gen && r.indexOf(taskID) < 0 {
			if position > len(r.tasks) {
				position = len(r.tasks)
			}
			r.tasks = append(r.tasks[:position], append([]models.Task{snapshot}, r.tasks[position:]...)...)
		}
		r.mu.Unlock()
		r.notify()
		r.log.WithError(err).WithField("task_id", taskID).Warn("task delete rejected, entry restored")
		return err
	}

	r.log.WithField("task_id", taskID).Debug("task deleted")
	return nil
}

// History fetches the task's append-only audit trail. The trail is read-only
// for this engine and never cached.
func (r *Repository) History(ctx context.Context, taskID int64) ([]models.TaskHistoryEntry, error) {
	return r.client.TaskHistory(ctx, taskID)
}

// reconcile applies the outcome of a mutation request. The confirmed record
// replaces the optimistic entry only while the mutation is still the latest
// intent for that task; on failure the snapshot is restored under the same
// condition.
func (r *Repository) reconcile(taskID int64, gen uint64, snapshot models.Task, confirmed *models.Task, err error) (*models.Task, error) {
	r.mu.Lock()
	stale := r.generations[taskID] != gen
	i := r.indexOf(taskID)
	switch {
	case stale || i < 0:
		// A newer intent owns the entry now; drop this response.
	case err != nil:
		r.tasks[i] = snapshot
	default:
		r.tasks[i] = *confirmed
	}
	r.mu.Unlock()
	r.notify()

	if err != nil {
		r.log.WithError(err).WithField("task_id", taskID).Warn("task mutation rejected, rolled back")
		return nil, err
	}
	if stale {
		r.log.WithField("task_id", taskID).Debug("dropped stale mutation response")
	}
	return confirmed, nil
}

func (r *Repository) indexOf(id int64) int {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Repository) nextGeneration(id int64) uint64 {
	r.generations[id]++
	return r.generations[id]
}

func (r *Repository) notify() {
	r.mu.Lock()
	fn := r.onChange
	r.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// checkInput runs struct validation and converts the first violation into a
// ValidationError so nothing malformed ever reaches the network.
func (r *Repository) checkInput(input any) error {
	err := r.validate.Struct(input)
	if err == nil {
		return nil
	}
	var violations validator.ValidationErrors
	if stderrors.As(err, &violations) && len(violations) > 0 {
		v := violations[0]
		switch v.Tag() {
		case "required", "min":
			return apierrors.NewValidationError(v.Field(), "must not be empty")
		case "gte":
			return apierrors.NewValidationError(v.Field(), "must not be negative")
		default:
			return apierrors.NewValidationError(v.Field(), fmt.Sprintf("failed %s validation", v.Tag()))
		}
	}
	return err
}

func patchTask(t *models.Task, input UpdateTaskInput, now time.Time) {
	if input.Title != nil {
		t.Title = *input.Title
	}
	if input.Description != nil {
		t.Description = *input.Description
	}
	if input.Notes != nil {
		t.Notes = *input.Notes
	}
	if input.Priority != nil {
		t.Priority = *input.Priority
	}
	if input.ClearDueDate {
		t.DueDate = nil
	} else if input.DueDate != nil {
		t.DueDate = input.DueDate
	}
	if input.EstimatedHours != nil {
		t.EstimatedHours = input.EstimatedHours
	}
	if input.ActualHours != nil {
		t.ActualHours = input.ActualHours
	}
	if input.AssigneeUsername != nil {
		t.AssigneeUsername = *input.AssigneeUsername
	}
	t.UpdatedAt = now
}
