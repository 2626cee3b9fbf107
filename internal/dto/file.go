package dto

import (
	"time"

	"github.com/talentforge/workspace/internal/models"
)

// FileAttachmentDTO is a workspace file as the backend serializes it.
type FileAttachmentDTO struct {
	ID               int64     `json:"id"`
	FileName         string    `json:"file_name"`
	StoredFileName   string    `json:"stored_file_name"`
	FileType         string    `json:"file_type"`
	Size             int64     `json:"size"`
	UploaderUsername string    `json:"uploader_username"`
	CreatedAt        time.Time `json:"created_at"`
}

// FileAttachmentFromDTO converts a FileAttachmentDTO to the local model.
func FileAttachmentFromDTO(d FileAttachmentDTO) models.FileAttachment {
	return models.FileAttachment{
		ID:               d.ID,
		FileName:         d.FileName,
		StoredFileName:   d.StoredFileName,
		FileType:         d.FileType,
		Size:             d.Size,
		UploaderUsername: d.UploaderUsername,
		CreatedAt:        d.CreatedAt,
	}
}

// FileAttachmentsFromDTO converts a slice of FileAttachmentDTO to models.
func FileAttachmentsFromDTO(dtos []FileAttachmentDTO) []models.FileAttachment {
	files := make([]models.FileAttachment, 0, len(dtos))
	for _, d := range dtos {
		files = append(files, FileAttachmentFromDTO(d))
	}
	return files
}
