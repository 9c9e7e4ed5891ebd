package media

import (
	"context"
	"log"

	"github.com/fhuszti/blog-media-go/internal/model"
	"github.com/fhuszti/blog-media-go/internal/port"
)

type deleteMediaSrv struct {
	repo  port.MediaRepository
	cache port.Cache
	strg  port.Storage
}

// Deleter covers single and batch deletion behind one service.
type Deleter interface {
	port.MediaDeleter
	port.BulkDeleter
}

// compile-time check: *deleteMediaSrv must satisfy Deleter
var _ Deleter = (*deleteMediaSrv)(nil)

// NewMediaDeleter constructs the guarded deletion service.
func NewMediaDeleter(repo port.MediaRepository, cache port.Cache, strg port.Storage) Deleter {
	return &deleteMediaSrv{repo: repo, cache: cache, strg: strg}
}

// DeleteMedia removes the stored bytes (thumbnail included) and
// soft-deletes the record. A media still referenced by any owner is
// refused before anything is touched.
func (s *deleteMediaSrv) DeleteMedia(ctx context.Context, id string) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m.IsDeleted() {
		return ErrMediaNotFound
	}
	if len(m.UsedIn) > 0 {
		return &InUseError{ID: m.ID, Refs: m.UsedIn}
	}

	return s.removeOne(ctx, m)
}

// BulkDeleteMedias deletes a batch. If any member is still in use the
// whole batch is refused and the blocking members are enumerated.
func (s *deleteMediaSrv) BulkDeleteMedias(ctx context.Context, ids []string) (*port.BulkDeleteOutput, error) {
	medias, err := s.repo.GetManyByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	var blocked []BlockedMedia
	for _, m := range medias {
		if len(m.UsedIn) > 0 {
			blocked = append(blocked, BlockedMedia{ID: m.ID, FileName: m.FileName, Refs: m.UsedIn})
		}
	}
	if len(blocked) > 0 {
		return nil, &BulkInUseError{Blocked: blocked}
	}

	out := &port.BulkDeleteOutput{Deleted: []string{}}
	for _, m := range medias {
		if err := s.removeOne(ctx, m); err != nil {
			// keep going; the member stays live and can be retried
			log.Printf("bulk delete: failed removing media %q: %v", m.ID, err)
			continue
		}
		out.Deleted = append(out.Deleted, m.ID)
	}
	return out, nil
}

func (s *deleteMediaSrv) removeOne(ctx context.Context, m *model.Media) error {
	if thumbKey := m.ThumbnailKey(); thumbKey != "" {
		if err := s.strg.RemoveFile(ctx, thumbKey); err != nil {
			log.Printf("failed to remove thumbnail %q: %v", thumbKey, err)
		}
	}

	if err := s.strg.RemoveFile(ctx, m.ObjectKey); err != nil {
		return err
	}

	// conditional on the usage list still being empty, in case a
	// reference raced in since the guard check
	if err := s.repo.SoftDelete(ctx, m.ID); err != nil {
		return err
	}

	if err := s.cache.DeleteMediaDetails(ctx, m.ID); err != nil {
		log.Printf("failed deleting cache for media %q: %v", m.ID, err)
	}

	return nil
}
