package media

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fhuszti/blog-media-go/internal/model"
)

var (
	ErrMediaNotFound      = errors.New("media: not found")
	ErrDuplicateFileName  = errors.New("media: file name already exists")
	ErrInvalidMimeType    = errors.New("media: mime type not allowed")
	ErrFileTooLarge       = errors.New("media: file too large")
	ErrEmptyFile          = errors.New("media: empty file")
	ErrUnprocessableImage = errors.New("media: unprocessable image")

	ErrObjectNotFound     = errors.New("storage: object not found")
	ErrBucketNotFound     = errors.New("storage: bucket not found")
	ErrUnauthorized       = errors.New("storage: unauthorized")
	ErrStorageUnavailable = errors.New("storage: unavailable")
)

// InUseError blocks destructive operations on a referenced media and
// enumerates the owners holding references.
type InUseError struct {
	ID   string
	Refs []model.UsageRef
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("media %s is still referenced by %s", e.ID, formatRefs(e.Refs))
}

// BlockedMedia names one in-use member of a refused bulk deletion.
type BlockedMedia struct {
	ID       string           `json:"id"`
	FileName string           `json:"file_name"`
	Refs     []model.UsageRef `json:"refs"`
}

// BulkInUseError refuses a whole batch, listing every in-use member.
type BulkInUseError struct {
	Blocked []BlockedMedia
}

func (e *BulkInUseError) Error() string {
	names := make([]string, len(e.Blocked))
	for i, b := range e.Blocked {
		names[i] = b.FileName
	}
	return fmt.Sprintf("%d media(s) are still referenced: %s", len(e.Blocked), strings.Join(names, ", "))
}

func formatRefs(refs []model.UsageRef) string {
	parts := make([]string, len(refs))
	for i, r := range refs {
		parts[i] = r.Model + ":" + r.RefID
	}
	return strings.Join(parts, ", ")
}
