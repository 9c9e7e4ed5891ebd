package media

import (
	"context"

	"github.com/fhuszti/blog-media-go/internal/port"
)

type listMediasSrv struct {
	repo port.MediaRepository
}

// compile-time check: *listMediasSrv must satisfy port.MediaLister
var _ port.MediaLister = (*listMediasSrv)(nil)

// NewMediaLister constructs a port.MediaLister implementation.
func NewMediaLister(repo port.MediaRepository) port.MediaLister {
	return &listMediasSrv{repo: repo}
}

func (s *listMediasSrv) ListMedias(ctx context.Context, in port.ListMediasInput) (*port.ListMediasOutput, error) {
	filter := port.ListFilter{
		Folder:     SanitizeFolderFilter(in.Folder),
		MimePrefix: in.MimePrefix,
		Search:     in.Search,
		Deleted:    in.Deleted,
	}
	opts := port.ListOptions{
		Page:     in.Page,
		Limit:    in.Limit,
		SortBy:   in.SortBy,
		SortDesc: in.SortDesc,
	}

	items, total, err := s.repo.List(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	page, limit := opts.Page, opts.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}

	return &port.ListMediasOutput{
		Items: items,
		Pagination: port.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// SanitizeFolderFilter normalises a folder filter the same way upload
// sanitises folders, but keeps "no filter" distinct from the default
// folder.
func SanitizeFolderFilter(folder string) string {
	if folder == "" {
		return ""
	}
	return SanitizeFolder(folder)
}
