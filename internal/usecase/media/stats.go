package media

import (
	"context"

	"github.com/fhuszti/blog-media-go/internal/model"
	"github.com/fhuszti/blog-media-go/internal/port"
)

type statsSrv struct {
	repo port.MediaRepository
}

// compile-time check: *statsSrv must satisfy port.StatsGetter
var _ port.StatsGetter = (*statsSrv)(nil)

// NewStatsGetter constructs a port.StatsGetter implementation.
func NewStatsGetter(repo port.MediaRepository) port.StatsGetter {
	return &statsSrv{repo: repo}
}

func (s *statsSrv) GetStorageStats(ctx context.Context) (*model.StorageStats, error) {
	return s.repo.StorageStats(ctx)
}

func (s *statsSrv) GetFolderStats(ctx context.Context) ([]model.FolderStats, error) {
	return s.repo.FolderStats(ctx)
}
