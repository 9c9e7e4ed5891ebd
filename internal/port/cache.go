package port

import (
	"context"
	"time"
)

// Cache stores rendered media details and their ETags.
type Cache interface {
	GetMediaDetails(ctx context.Context, id string) ([]byte, error)
	SetMediaDetails(ctx context.Context, id string, raw []byte, ttl time.Duration) error
	GetEtagMediaDetails(ctx context.Context, id string) (string, error)
	SetEtagMediaDetails(ctx context.Context, id string, etag string, ttl time.Duration) error
	DeleteMediaDetails(ctx context.Context, id string) error
}
