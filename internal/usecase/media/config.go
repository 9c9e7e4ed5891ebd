package media

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/fhuszti/blog-media-go/internal/model"
)

const MaxFileSize = 10 * 1024 * 1024 // 10 MiB

const (
	MaxAltTextLen = 255
	MaxCaptionLen = 500
)

var AllowedMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"image/gif":       true,
	"application/pdf": true,
}

func IsMimeTypeAllowed(mimeType string) bool {
	return AllowedMimeTypes[mimeType]
}

func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}

func IsPdf(mimeType string) bool {
	return mimeType == "application/pdf"
}

var mimeExtensions = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"image/gif":       ".gif",
	"application/pdf": ".pdf",
}

func MimeTypeToExtension(mimeType string) (string, error) {
	ext, ok := mimeExtensions[mimeType]
	if !ok {
		return "", fmt.Errorf("no extension known for mime-type %q", mimeType)
	}
	return ext, nil
}

var folderUnsafe = regexp.MustCompile(`[^a-z0-9_-]+`)

// SanitizeFolder reduces free-text folder input to one safe path segment.
func SanitizeFolder(folder string) string {
	folder = strings.ToLower(strings.TrimSpace(folder))
	folder = folderUnsafe.ReplaceAllString(folder, "-")
	folder = strings.Trim(folder, "-")
	if folder == "" {
		return model.DefaultFolder
	}
	return folder
}

// GenerateFileName builds a collision-resistant, globally unique name from
// a timestamp plus a random identifier, keeping the extension implied by
// the MIME type.
func GenerateFileName(mimeType string, randomID func() string, now time.Time) (string, error) {
	ext, err := MimeTypeToExtension(mimeType)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d_%s%s", now.UnixMilli(), randomID(), ext), nil
}

// BaseNameWithoutExt strips path and extension from an uploaded file name.
func BaseNameWithoutExt(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
