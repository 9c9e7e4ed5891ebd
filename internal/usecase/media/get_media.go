package media

import (
	"context"

	"github.com/fhuszti/blog-media-go/internal/model"
	"github.com/fhuszti/blog-media-go/internal/port"
)

type getMediaSrv struct {
	repo port.MediaRepository
}

// compile-time check: *getMediaSrv must satisfy port.MediaGetter
var _ port.MediaGetter = (*getMediaSrv)(nil)

// NewMediaGetter constructs a port.MediaGetter implementation.
func NewMediaGetter(repo port.MediaRepository) port.MediaGetter {
	return &getMediaSrv{repo: repo}
}

// GetMedia returns a live record; soft-deleted records are invisible here
// like in every other default query.
func (s *getMediaSrv) GetMedia(ctx context.Context, id string) (*model.Media, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.IsDeleted() {
		return nil, ErrMediaNotFound
	}
	return m, nil
}
