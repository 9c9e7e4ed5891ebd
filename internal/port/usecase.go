package port

import (
	"context"
	"time"

	"github.com/fhuszti/blog-media-go/internal/model"
)

// MediaUploader ingests a file, runs it through the transform stage and
// registers the resulting asset.
type MediaUploader interface {
	UploadMedia(ctx context.Context, in UploadMediaInput) (*model.Media, error)
}
type UploadMediaInput struct {
	FileName   string
	MimeType   string
	Data       []byte
	Folder     string
	AltText    string
	Caption    string
	UploadedBy string
}

// MediaGetter retrieves one media record.
type MediaGetter interface {
	GetMedia(ctx context.Context, id string) (*model.Media, error)
}

// MediaLister queries the registry with filters and pagination.
type MediaLister interface {
	ListMedias(ctx context.Context, in ListMediasInput) (*ListMediasOutput, error)
}
type ListMediasInput struct {
	Folder     string
	MimePrefix string
	Search     string
	Deleted    DeletedFilter
	Page       int
	Limit      int
	SortBy     string
	SortDesc   bool
}
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}
type ListMediasOutput struct {
	Items      []*model.Media `json:"items"`
	Pagination Pagination     `json:"pagination"`
}

// MediaUpdater edits presentation metadata. Nil fields are left untouched.
type MediaUpdater interface {
	UpdateMedia(ctx context.Context, in UpdateMediaInput) (*model.Media, error)
}
type UpdateMediaInput struct {
	ID      string
	AltText *string
	Caption *string
	Folder  *string
}

// MediaDeleter removes the bytes of an unreferenced media and soft-deletes
// its record.
type MediaDeleter interface {
	DeleteMedia(ctx context.Context, id string) error
}

// BulkDeleter deletes a batch, refusing it whole when any member is in use.
type BulkDeleter interface {
	BulkDeleteMedias(ctx context.Context, ids []string) (*BulkDeleteOutput, error)
}
type BulkDeleteOutput struct {
	Deleted []string `json:"deleted"`
}

// MediaRestorer clears a soft-delete timestamp.
type MediaRestorer interface {
	RestoreMedia(ctx context.Context, id string) (*model.Media, error)
}

// StatsGetter serves the aggregate reporting endpoints.
type StatsGetter interface {
	GetStorageStats(ctx context.Context) (*model.StorageStats, error)
	GetFolderStats(ctx context.Context) ([]model.FolderStats, error)
}

// ContentResolver turns rich-text content into the ids of the live assets
// it embeds.
type ContentResolver interface {
	ExtractAssetIDs(ctx context.Context, content string) ([]string, error)
}

// OwnerRef identifies a content owner (a post, a page...) on the side of
// the calling service.
type OwnerRef struct {
	Model string `json:"model"`
	RefID string `json:"ref_id"`
}

// UsageTracker reconciles media usage lists with owner lifecycle events.
type UsageTracker interface {
	OwnerCreated(ctx context.Context, in OwnerCreatedInput) error
	OwnerUpdated(ctx context.Context, in OwnerUpdatedInput) error
	OwnerDeleted(ctx context.Context, in OwnerDeletedInput) error
}
type OwnerCreatedInput struct {
	Owner      OwnerRef
	Content    string
	FeaturedID string
}
type OwnerUpdatedInput struct {
	Owner         OwnerRef
	OldContent    string
	NewContent    string
	OldFeaturedID string
	NewFeaturedID string
}
type OwnerDeletedInput struct {
	Owner      OwnerRef
	Content    string
	FeaturedID string
}

// UsageHealthScanner reports drift between usage lists and reality.
type UsageHealthScanner interface {
	ScanUsageHealth(ctx context.Context) (*UsageHealthReport, error)
}
type UsageHealthEntry struct {
	ID         string           `json:"id"`
	FileName   string           `json:"file_name"`
	UsageCount int              `json:"usage_count"`
	UsedIn     []model.UsageRef `json:"used_in,omitempty"`
}
type UsageHealthReport struct {
	ScannedAt       time.Time          `json:"scanned_at"`
	Orphans         []UsageHealthEntry `json:"orphans"`
	CountMismatches []UsageHealthEntry `json:"count_mismatches"`
}

// HTTPRenderer mediates between HTTP handlers and the media getter,
// adding caching and ETag support.
type HTTPRenderer interface {
	RenderGetMedia(ctx context.Context, getter MediaGetter, id string) ([]byte, string, error)
}
