package api

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/talentforge/workspace/internal/dto"
	apierrors "github.com/talentforge/workspace/internal/errors"
	"github.com/talentforge/workspace/internal/models"
)

// ListFiles fetches the attachments of a project. A 404 means the workspace
// has no file store yet (older projects) and is mapped to an empty list.
func (c *Client) ListFiles(ctx context.Context, projectID int64) ([]models.FileAttachment, error) {
	var payload []dto.FileAttachmentDTO
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%d/workspace/files", projectID), nil, &payload)
	if err != nil {
		var notFound *apierrors.NotFoundError
		if stderrors.As(err, &notFound) {
			return []models.FileAttachment{}, nil
		}
		return nil, err
	}
	return dto.FileAttachmentsFromDTO(payload), nil
}

// UploadFile uploads file content as a multipart request. onProgress, when
// non-nil, is called with a monotonically increasing percentage as the
// content is consumed; 100 is reported before the server's response arrives.
func (c *Client) UploadFile(ctx context.Context, projectID int64, fileName, fileType string, size int64, content io.Reader, onProgress func(percent int)) (*models.FileAttachment, error) {
	if err := c.session.Validate(time.Now()); err != nil {
		return nil, err
	}

	reader := &progressReader{r: content, total: size, onProgress: onProgress}

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)
	go func() {
		part, err := form.CreateFormFile("file", fileName)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, reader); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(form.Close())
	}()

	url := fmt.Sprintf("%s/projects/%d/workspace/files", c.baseURL, projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, pr)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.session.Token)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("X-File-Type", fileType)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &apierrors.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return nil, apierrors.FromResponse(resp.StatusCode, payload)
	}

	var payload dto.FileAttachmentDTO
	if err := decodeJSON(resp.Body, &payload); err != nil {
		return nil, err
	}
	attachment := dto.FileAttachmentFromDTO(payload)
	return &attachment, nil
}

// DownloadFile retrieves stored file content. The caller must close the
// returned reader.
func (c *Client) DownloadFile(ctx context.Context, storedFileName string) (io.ReadCloser, error) {
	if err := c.session.Validate(time.Now()); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/workspace/files/%s", c.baseURL, storedFileName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.session.Token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &apierrors.NetworkError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		resp.Body.Close()
		return nil, apierrors.FromResponse(resp.StatusCode, payload)
	}
	return resp.Body, nil
}

// DeleteFile deletes an attachment.
func (c *Client) DeleteFile(ctx context.Context, fileID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/workspace/files/%d", fileID), nil, nil)
}

// progressReader reports consumption of the wrapped reader as a percentage.
// Reported values only ever increase.
type progressReader struct {
	r          io.Reader
	total      int64
	read       int64
	lastPct    int
	onProgress func(percent int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if p.onProgress != nil && p.total > 0 {
		pct := int(p.read * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		if pct > p.lastPct {
			p.lastPct = pct
			p.onProgress(pct)
		}
	}
	return n, err
}
