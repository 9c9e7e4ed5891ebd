package cache

import (
	"context"
	"time"

	"github.com/fhuszti/blog-media-go/internal/port"
)

// NoopCache is wired in when no Redis address is configured; every read
// is a miss and every write succeeds silently.
type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetMediaDetails(ctx context.Context, id string) ([]byte, error) {
	return nil, nil // always cache miss
}

func (n *NoopCache) SetMediaDetails(ctx context.Context, id string, raw []byte, ttl time.Duration) error {
	return nil
}

func (n *NoopCache) GetEtagMediaDetails(ctx context.Context, id string) (string, error) {
	return "", nil
}

func (n *NoopCache) SetEtagMediaDetails(ctx context.Context, id string, etag string, ttl time.Duration) error {
	return nil
}

func (n *NoopCache) DeleteMediaDetails(ctx context.Context, id string) error { return nil }
