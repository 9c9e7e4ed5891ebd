package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"time"

	"github.com/fhuszti/blog-media-go/internal/port"
)

type httpRenderer struct {
	cache port.Cache
	ttl   time.Duration
}

// compile-time check: *httpRenderer must satisfy port.HTTPRenderer
var _ port.HTTPRenderer = (*httpRenderer)(nil)

// NewHTTPRenderer creates a renderer that serves media details from cache
// when possible and fills the cache on misses.
func NewHTTPRenderer(cache port.Cache, ttl time.Duration) port.HTTPRenderer {
	return &httpRenderer{cache: cache, ttl: ttl}
}

// RenderGetMedia fetches media details either from cache or from the
// wrapped use case. It returns the JSON encoded record and a quoted ETag
// derived from it.
func (r *httpRenderer) RenderGetMedia(ctx context.Context, getter port.MediaGetter, id string) ([]byte, string, error) {
	raw, err := r.cache.GetMediaDetails(ctx, id)
	etag, errEtag := r.cache.GetEtagMediaDetails(ctx, id)
	if err == nil && errEtag == nil && raw != nil && etag != "" {
		return raw, etag, nil
	}

	m, err := getter.GetMedia(ctx, id)
	if err != nil {
		return nil, "", err
	}

	raw, err = json.Marshal(m)
	if err != nil {
		return nil, "", fmt.Errorf("json marshal: %w", err)
	}

	etag = fmt.Sprintf("\"%08x\"", crc32.ChecksumIEEE(raw))
	if err := r.cache.SetMediaDetails(ctx, id, raw, r.ttl); err == nil {
		_ = r.cache.SetEtagMediaDetails(ctx, id, etag, r.ttl)
	}

	return raw, etag, nil
}
