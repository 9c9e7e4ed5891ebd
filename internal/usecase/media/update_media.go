package media

import (
	"context"
	"log"

	"github.com/fhuszti/blog-media-go/internal/model"
	"github.com/fhuszti/blog-media-go/internal/port"
)

type updateMediaSrv struct {
	repo  port.MediaRepository
	cache port.Cache
}

// compile-time check: *updateMediaSrv must satisfy port.MediaUpdater
var _ port.MediaUpdater = (*updateMediaSrv)(nil)

// NewMediaUpdater constructs a port.MediaUpdater implementation.
func NewMediaUpdater(repo port.MediaRepository, cache port.Cache) port.MediaUpdater {
	return &updateMediaSrv{repo: repo, cache: cache}
}

// UpdateMedia edits alt text, caption and folder. Nil fields are left
// untouched; a new folder goes through the same sanitisation as uploads.
func (s *updateMediaSrv) UpdateMedia(ctx context.Context, in port.UpdateMediaInput) (*model.Media, error) {
	m, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if m.IsDeleted() {
		return nil, ErrMediaNotFound
	}

	if in.AltText != nil {
		m.AltText = clamp(*in.AltText, MaxAltTextLen)
	}
	if in.Caption != nil {
		m.Caption = clamp(*in.Caption, MaxCaptionLen)
	}
	if in.Folder != nil {
		m.Folder = SanitizeFolder(*in.Folder)
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}

	if err := s.cache.DeleteMediaDetails(ctx, m.ID); err != nil {
		log.Printf("failed deleting cache for media %q: %v", m.ID, err)
	}

	return m, nil
}
