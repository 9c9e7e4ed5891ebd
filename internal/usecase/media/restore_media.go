package media

import (
	"context"
	"log"

	"github.com/fhuszti/blog-media-go/internal/model"
	"github.com/fhuszti/blog-media-go/internal/port"
)

type restoreMediaSrv struct {
	repo  port.MediaRepository
	cache port.Cache
}

// compile-time check: *restoreMediaSrv must satisfy port.MediaRestorer
var _ port.MediaRestorer = (*restoreMediaSrv)(nil)

// NewMediaRestorer constructs a port.MediaRestorer implementation.
func NewMediaRestorer(repo port.MediaRepository, cache port.Cache) port.MediaRestorer {
	return &restoreMediaSrv{repo: repo, cache: cache}
}

// RestoreMedia clears the soft-delete timestamp. The stored bytes were
// removed at deletion time, so a restored record points at a URL the
// operator has to re-upload to; restore exists mainly to undo mistakes
// made moments earlier, before any purge.
func (s *restoreMediaSrv) RestoreMedia(ctx context.Context, id string) (*model.Media, error) {
	if err := s.repo.Restore(ctx, id); err != nil {
		return nil, err
	}

	if err := s.cache.DeleteMediaDetails(ctx, id); err != nil {
		log.Printf("failed deleting cache for media %q: %v", id, err)
	}

	return s.repo.GetByID(ctx, id)
}
