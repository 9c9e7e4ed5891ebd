package port

import (
	"context"
	"io"
)

// FileInfo represents metadata about a stored file.
type FileInfo struct {
	SizeBytes   int64
	ContentType string
}

// Storage defines file storage operations against the object store bucket.
type Storage interface {
	// InitBucket provisions the bucket idempotently: create if absent,
	// then apply a public-read policy on first creation only.
	InitBucket(ctx context.Context) error
	// SaveFile stores the object and returns its public URL.
	SaveFile(ctx context.Context, fileKey string, reader io.Reader, fileSize int64, contentType string) (string, error)
	GetFile(ctx context.Context, fileKey string) (io.ReadCloser, error)
	RemoveFile(ctx context.Context, fileKey string) error
	// FileExists distinguishes "object not found" (false, nil) from any
	// other error, which propagates.
	FileExists(ctx context.Context, fileKey string) (bool, error)
	StatFile(ctx context.Context, fileKey string) (FileInfo, error)
	// PublicURL is the address an object key is served under.
	PublicURL(fileKey string) string
	// BaseURL is the endpoint+bucket prefix all of this store's public
	// URLs share. Content URLs outside it belong to third parties.
	BaseURL() string
}
