package upload

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"
)

// Content types the upload endpoint accepts. Everything else is
// rejected before it reaches the message lifecycle.
var allowedTypes = map[string]bool{
	"image/png":          true,
	"image/jpeg":         true,
	"image/jpg":          true,
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"audio/webm": true,
	"audio/mpeg": true,
	"audio/wav":  true,
}

// IsAllowed reports whether the declared content type is on the
// allow-list.
func IsAllowed(contentType string) bool {
	return allowedTypes[contentType]
}

// Classify buckets a content type by prefix: image/* and audio/* get
// their own types, everything else is a document.
func Classify(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image"):
		return "image"
	case strings.HasPrefix(contentType, "audio"):
		return "audio"
	default:
		return "document"
	}
}

// TargetName builds a collision-resistant filename for a stored
// upload, keeping the original extension.
func TargetName(header *multipart.FileHeader) string {
	return fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(header.Filename))
}

// PublicURL is the path a stored upload is served under.
func PublicURL(storedName string) string {
	return "/uploads/" + storedName
}
