package files

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	apierrors "github.com/talentforge/workspace/internal/errors"
	"github.com/talentforge/workspace/internal/models"
)

// fileClient is the slice of the REST client the manager depends on.
type fileClient interface {
	ListFiles(ctx context.Context, projectID int64) ([]models.FileAttachment, error)
	UploadFile(ctx context.Context, projectID int64, fileName, fileType string, size int64, content io.Reader, onProgress func(percent int)) (*models.FileAttachment, error)
	DownloadFile(ctx context.Context, storedFileName string) (io.ReadCloser, error)
	DeleteFile(ctx context.Context, fileID int64) error
}

// Manager handles the attachments of one project: uploads with progress
// reporting, downloads, deletion, and the cached list everything else is
// derived from. Validation happens before any network call.
type Manager struct {
	client    fileClient
	projectID int64
	username  string
	isClient  bool
	maxSizeMB int64
	log       *logrus.Entry

	mu    sync.Mutex
	files []models.FileAttachment
}

// NewManager creates a Manager. username is the signed-in user; isClient
// grants the project-owner deletion privilege.
func NewManager(client fileClient, projectID int64, username string, isClient bool, maxSizeMB int64, logger *logrus.Logger) *Manager {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	if maxSizeMB <= 0 {
		maxSizeMB = DefaultMaxSizeMB
	}
	return &Manager{
		client:    client,
		projectID: projectID,
		username:  username,
		isClient:  isClient,
		maxSizeMB: maxSizeMB,
		log:       logger.WithFields(logrus.Fields{"component": "files", "project_id": projectID}),
	}
}

// Refresh replaces the cached file list with the remote one.
func (m *Manager) Refresh(ctx context.Context) error {
	files, err := m.client.ListFiles(ctx, m.projectID)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.files = files
	m.mu.Unlock()
	return nil
}

// Files returns a copy of the cached file list.
func (m *Manager) Files() []models.FileAttachment {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.FileAttachment, len(m.files))
	copy(out, m.files)
	return out
}

// Upload describes a pending upload.
type Upload struct {
	FileName string
	FileType string
	Size     int64
	Content  io.Reader
}

// ProgressEvent is one step of an upload. Percent values only ever increase;
// the final event has Done set and carries either the persisted attachment or
// the error that terminated the upload.
type ProgressEvent struct {
	UploadID   string
	Percent    int
	Done       bool
	Attachment *models.FileAttachment
	Err        error
}

// StartUpload validates the file and, when it passes, streams it to the
// backend. Validation failure is returned synchronously and nothing is sent.
// Progress arrives on the returned channel, which is closed after the final
// event; on success the cached file list has already been refreshed so
// observers converge on authoritative state.
func (m *Manager) StartUpload(ctx context.Context, up Upload) (<-chan ProgressEvent, error) {
	if err := Validate(up.FileName, up.Size, up.FileType, m.maxSizeMB); err != nil {
		return nil, err
	}

	uploadID := uuid.NewString()
	events := make(chan ProgressEvent, 128)
	log := m.log.WithFields(logrus.Fields{"upload_id": uploadID, "file_name": up.FileName})

	go func() {
		defer close(events)

		attachment, err := m.client.UploadFile(ctx, m.projectID, up.FileName, up.FileType, up.Size, up.Content,
			func(percent int) {
				select {
				case events <- ProgressEvent{UploadID: uploadID, Percent: percent}:
				default:
					// A slow consumer loses intermediate ticks, never the final event.
				}
			})
		if err != nil {
			log.WithError(err).Warn("upload failed")
			events <- ProgressEvent{UploadID: uploadID, Done: true, Err: err}
			return
		}

		if err := m.Refresh(ctx); err != nil {
			log.WithError(err).Warn("file list refresh after upload failed")
		}
		log.Debug("upload complete")
		events <- ProgressEvent{UploadID: uploadID, Percent: 100, Done: true, Attachment: attachment}
	}()

	return events, nil
}

// Download retrieves stored file content into w. displayName is the
// user-facing name of the retrieval, used for reporting only.
func (m *Manager) Download(ctx context.Context, storedFileName, displayName string, w io.Writer) error {
	body, err := m.client.DownloadFile(ctx, storedFileName)
	if err != nil {
		return err
	}
	defer body.Close()

	if _, err := io.Copy(w, body); err != nil {
		return &apierrors.NetworkError{Err: err}
	}
	m.log.WithField("file_name", displayName).Debug("downloaded file")
	return nil
}

// Delete removes an attachment. Callers may delete a file when they hold the
// client role for the project or uploaded it themselves; anyone else is
// rejected before any request goes out. The server enforces the same rule
// authoritatively.
func (m *Manager) Delete(ctx context.Context, fileID int64) error {
	m.mu.Lock()
	var target *models.FileAttachment
	for i := range m.files {
		if m.files[i].ID == fileID {
			target = &m.files[i]
			break
		}
	}
	if target == nil {
		m.mu.Unlock()
		return &apierrors.NotFoundError{Message: fmt.Sprintf("file %d not found", fileID)}
	}
	if !m.isClient && target.UploaderUsername != m.username {
		m.mu.Unlock()
		return &apierrors.PermissionError{Message: "only the project client or the uploader can delete this file"}
	}
	m.mu.Unlock()

	if err := m.client.DeleteFile(ctx, fileID); err != nil {
		return err
	}

	m.mu.Lock()
	for i := range m.files {
		if m.files[i].ID == fileID {
			m.files = append(m.files[:i], m.files[i+1:]...)
			break
		}
	}
	m.mu.Unlock()
	m.log.WithField("file_id", fileID).Debug("deleted file")
	return nil
}

// CategoryStats aggregates one category of the cached list.
type CategoryStats struct {
	Count     int   `json:"count"`
	TotalSize int64 `json:"total_size"`
}

// Stats summarizes the cached file list. Everything is computed in memory;
// no request is made.
type Stats struct {
	Count      int                        `json:"count"`
	TotalSize  int64                      `json:"total_size"`
	ByCategory map[Category]CategoryStats `json:"by_category"`
}

// Stats computes grouped statistics over the cached file list.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := Stats{ByCategory: make(map[Category]CategoryStats)}
	for _, f := range m.files {
		stats.Count++
		stats.TotalSize += f.Size
		cat := Categorize(f.FileName, f.FileType)
		cs := stats.ByCategory[cat]
		cs.Count++
		cs.TotalSize += f.Size
		stats.ByCategory[cat] = cs
	}
	return stats
}
