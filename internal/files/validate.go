package files

import (
	"fmt"
	"strings"

	apierrors "github.com/talentforge/workspace/internal/errors"
)

// DefaultMaxSizeMB is the upload size ceiling when no limit is configured.
const DefaultMaxSizeMB = 50

// allowedMIMEPrefixes match whole MIME families.
var allowedMIMEPrefixes = []string{
	"image/",
	"text/",
	"video/",
	"audio/",
}

// allowedMIMETypes match exact document and archive formats.
var allowedMIMETypes = map[string]bool{
	"application/pdf": true,

	// Word / Excel / PowerPoint
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         true,
	"application/vnd.ms-powerpoint":                                             true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,

	// Archives
	"application/zip":              true,
	"application/x-zip-compressed": true,
	"application/x-rar-compressed": true,
	"application/x-7z-compressed":  true,
	"application/gzip":             true,
	"application/x-tar":            true,
}

// Validate rejects a file before any network traffic: over the size limit, or
// a MIME type outside the allow-list. A nil return means the upload may
// proceed.
func Validate(fileName string, size int64, mimeType string, maxSizeMB int64) error {
	if maxSizeMB <= 0 {
		maxSizeMB = DefaultMaxSizeMB
	}
	if size > maxSizeMB*1048576 {
		return apierrors.NewValidationError("size",
			fmt.Sprintf("%s exceeds the maximum file size of %d MB", fileName, maxSizeMB))
	}
	if !allowedMIME(mimeType) {
		return apierrors.NewValidationError("file_type",
			fmt.Sprintf("file type %q is not allowed", mimeType))
	}
	return nil
}

func allowedMIME(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if allowedMIMETypes[mimeType] {
		return true
	}
	for _, prefix := range allowedMIMEPrefixes {
		if strings.HasPrefix(mimeType, prefix) {
			return true
		}
	}
	return false
}
