package models

import "time"

// FileAttachment is a project file stored remotely. Attachments are immutable
// once uploaded; the only lifecycle operations are upload and delete.
type FileAttachment struct {
	ID               int64     `json:"id"`
	FileName         string    `json:"file_name"`
	StoredFileName   string    `json:"stored_file_name"`
	FileType         string    `json:"file_type"`
	Size             int64     `json:"size"`
	UploaderUsername string    `json:"uploader_username"`
	CreatedAt        time.Time `json:"created_at"`
}
