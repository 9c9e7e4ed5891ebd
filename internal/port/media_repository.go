package port

import (
	"context"

	"github.com/fhuszti/blog-media-go/internal/model"
)

// DeletedFilter selects how soft-deleted records participate in queries.
type DeletedFilter int

const (
	// DeletedExclude is the default: soft-deleted records are invisible.
	DeletedExclude DeletedFilter = iota
	// DeletedOnly returns soft-deleted records exclusively.
	DeletedOnly
	// DeletedInclude returns live and soft-deleted records alike.
	DeletedInclude
)

// ListFilter narrows a registry listing.
type ListFilter struct {
	Folder     string
	MimePrefix string
	Search     string
	Deleted    DeletedFilter
}

// ListOptions controls pagination and ordering.
type ListOptions struct {
	Page     int
	Limit    int
	SortBy   string
	SortDesc bool
}

// MediaRepository defines persistence operations for media records.
type MediaRepository interface {
	Create(ctx context.Context, media *model.Media) error
	Update(ctx context.Context, media *model.Media) error
	GetByID(ctx context.Context, id string) (*model.Media, error)
	// GetByURL resolves a stored public URL to its live media record.
	GetByURL(ctx context.Context, url string) (*model.Media, error)
	// GetManyByIDs returns the live records among ids; missing ids are
	// simply absent from the result.
	GetManyByIDs(ctx context.Context, ids []string) ([]*model.Media, error)
	List(ctx context.Context, filter ListFilter, opts ListOptions) ([]*model.Media, int64, error)
	// SoftDelete marks the record deleted, conditional on an empty usage
	// list at the time the update applies.
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	// AddUsage registers a reference atomically; registering a reference
	// already present is a no-op. Soft-deleted records accept no usage.
	AddUsage(ctx context.Context, id string, ref model.UsageRef) error
	// RemoveUsage unregisters a reference atomically; removing an absent
	// reference is a no-op.
	RemoveUsage(ctx context.Context, id string, ref model.UsageRef) error
	StorageStats(ctx context.Context) (*model.StorageStats, error)
	FolderStats(ctx context.Context) ([]model.FolderStats, error)
	// FindOrphans returns live records no owner references.
	FindOrphans(ctx context.Context) ([]*model.Media, error)
	// FindCountMismatches returns live records whose denormalised usage
	// count disagrees with their usage list.
	FindCountMismatches(ctx context.Context) ([]*model.Media, error)
}
