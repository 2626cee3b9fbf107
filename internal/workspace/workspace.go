// Package workspace is the per-project façade: it loads tasks and files,
// derives the viewer's role, computes aggregate progress, and routes board
// intents to the task repository and file manager.
package workspace

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/talentforge/workspace/internal/api"
	"github.com/talentforge/workspace/internal/chat"
	"github.com/talentforge/workspace/internal/config"
	"github.com/talentforge/workspace/internal/files"
	"github.com/talentforge/workspace/internal/kanban"
	"github.com/talentforge/workspace/internal/models"
	"github.com/talentforge/workspace/internal/progress"
	"github.com/talentforge/workspace/internal/tasks"
)

// Role is the viewer's relationship to the project, derived from the project
// record, not asserted by the caller.
type Role string

const (
	RoleClient     Role = "client"
	RoleFreelancer Role = "freelancer"
	RoleObserver   Role = "observer"
)

// ErrClosed is returned by operations on a workspace after Close.
var ErrClosed = errors.New("workspace is closed")

// Workspace aggregates the task repository, file manager and chat transcript
// of one open project view. Two views of the same project (e.g. two browser
// tabs) are not coordinated; the remote store is last-writer-wins and each
// view converges on its next reload.
type Workspace struct {
	project  *models.Project
	role     Role
	username string
	tasks    *tasks.Repository
	files    *files.Manager
	chat     *chat.Log
	log      *logrus.Entry
	done     chan struct{}
}

// Open loads a project workspace. Tasks and files are fetched in parallel and
// the workspace is ready once both loads have settled; the loads race freely
// and neither depends on the other's completion order.
func Open(ctx context.Context, client *api.Client, cfg *config.Config, projectID int64, logger *logrus.Logger) (*Workspace, error) {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	project, err := client.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	sess := client.Session()
	role := deriveRole(project, sess.Username)

	w := &Workspace{
		project:  project,
		role:     role,
		username: sess.Username,
		tasks:    tasks.NewRepository(client, project, sess.Username, logger),
		files:    files.NewManager(client, projectID, sess.Username, role == RoleClient, cfg.MaxUploadMB, logger),
		chat:     chat.NewLog(),
		log: logger.WithFields(logrus.Fields{
			"component":  "workspace",
			"project_id": projectID,
			"role":       role,
		}),
		done: make(chan struct{}),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.tasks.Load(gctx) })
	g.Go(func() error { return w.files.Refresh(gctx) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	w.tasks.SetOnChange(func() {
		w.log.WithField("percentage", w.tasks.Progress().Percentage).Debug("progress recomputed")
	})

	w.log.Info("workspace ready")
	return w, nil
}

func deriveRole(project *models.Project, username string) Role {
	switch username {
	case project.ClientUsername:
		return RoleClient
	case project.AssignedTalentUsername:
		return RoleFreelancer
	default:
		return RoleObserver
	}
}

// Project returns the project this workspace wraps.
func (w *Workspace) Project() *models.Project {
	return w.project
}

// Role returns the viewer's derived role.
func (w *Workspace) Role() Role {
	return w.role
}

// Tasks returns the task repository.
func (w *Workspace) Tasks() *tasks.Repository {
	return w.tasks
}

// Files returns the file attachment manager.
func (w *Workspace) Files() *files.Manager {
	return w.files
}

// Chat returns the workspace transcript.
func (w *Workspace) Chat() *chat.Log {
	return w.chat
}

// Board groups the current task collection into the four kanban columns.
func (w *Workspace) Board() []kanban.Column {
	return kanban.Board(w.tasks.Tasks())
}

// Progress computes the current workspace progress.
func (w *Workspace) Progress() progress.Summary {
	return w.tasks.Progress()
}

// Efficiency returns the display band for the current progress.
func (w *Workspace) Efficiency() string {
	return progress.Efficiency(w.tasks.Progress())
}

// MoveTask applies a drop intent from the board. A nil intent (a drop onto
// the task's own column) is a no-op.
func (w *Workspace) MoveTask(ctx context.Context, intent *kanban.StatusChangeIntent) (*models.Task, error) {
	if err := w.open(); err != nil {
		return nil, err
	}
	if intent == nil {
		return nil, nil
	}
	return w.tasks.UpdateStatus(ctx, intent.TaskID, intent.To)
}

// CreateTask submits a board creation form.
func (w *Workspace) CreateTask(ctx context.Context, form kanban.CreateForm) (*models.Task, error) {
	if err := w.open(); err != nil {
		return nil, err
	}
	return w.tasks.Create(ctx, kanban.CreateIntent(form))
}

// DeleteTask removes a task.
func (w *Workspace) DeleteTask(ctx context.Context, taskID int64) error {
	if err := w.open(); err != nil {
		return err
	}
	return w.tasks.Delete(ctx, taskID)
}

// SendMessage appends an outgoing chat message under the viewer's role.
func (w *Workspace) SendMessage(content string, attachments ...models.FileAttachment) (models.ChatMessage, error) {
	if err := w.open(); err != nil {
		return models.ChatMessage{}, err
	}
	role := models.ChatRoleFreelancer
	if w.role == RoleClient {
		role = models.ChatRoleClient
	}
	return w.chat.Send(w.username, role, content, attachments...)
}

// Close marks the workspace as torn down. In-flight requests already sent to
// the remote store still complete there, but no new operation is accepted.
func (w *Workspace) Close() {
	select {
	case <-w.done:
	default:
		close(w.done)
		w.log.Debug("workspace closed")
	}
}

func (w *Workspace) open() error {
	select {
	case <-w.done:
		return ErrClosed
	default:
		return nil
	}
}
