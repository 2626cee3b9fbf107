package files

import (
	"path/filepath"
	"strings"
)

// Category groups attachments for icon selection, filtering and statistics.
type Category string

const (
	CategoryImages    Category = "Images"
	CategoryDocuments Category = "Documents"
	CategoryArchives  Category = "Archives"
	CategoryVideos    Category = "Videos"
	CategoryAudio     Category = "Audio"
	CategoryOthers    Category = "Others"
)

var (
	imageExts = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
		".bmp": true, ".webp": true, ".ico": true, ".svg": true, ".tiff": true,
	}
	documentExts = map[string]bool{
		".pdf": true, ".doc": true, ".docx": true, ".xls": true,
		".xlsx": true, ".ppt": true, ".pptx": true, ".txt": true, ".md": true,
	}
	archiveExts = map[string]bool{
		".zip": true, ".rar": true, ".7z": true, ".tar": true, ".gz": true,
	}
	videoExts = map[string]bool{
		".mp4": true, ".avi": true, ".mkv": true, ".mov": true, ".webm": true,
	}
	audioExts = map[string]bool{
		".mp3": true, ".wav": true, ".ogg": true, ".m4a": true, ".flac": true,
	}
)

// Categorize classifies an attachment by MIME type, falling back to the file
// extension when the MIME type is missing or generic.
func Categorize(fileName, mimeType string) Category {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return CategoryImages
	case strings.HasPrefix(mimeType, "video/"):
		return CategoryVideos
	case strings.HasPrefix(mimeType, "audio/"):
		return CategoryAudio
	case mimeType == "application/pdf" || strings.HasPrefix(mimeType, "text/"):
		return CategoryDocuments
	case strings.Contains(mimeType, "zip") || strings.Contains(mimeType, "compressed") ||
		mimeType == "application/gzip" || mimeType == "application/x-tar":
		return CategoryArchives
	case strings.Contains(mimeType, "word") || strings.Contains(mimeType, "excel") ||
		strings.Contains(mimeType, "spreadsheet") || strings.Contains(mimeType, "powerpoint") ||
		strings.Contains(mimeType, "presentation"):
		return CategoryDocuments
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	switch {
	case imageExts[ext]:
		return CategoryImages
	case documentExts[ext]:
		return CategoryDocuments
	case archiveExts[ext]:
		return CategoryArchives
	case videoExts[ext]:
		return CategoryVideos
	case audioExts[ext]:
		return CategoryAudio
	default:
		return CategoryOthers
	}
}
