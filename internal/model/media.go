package model

import (
	"path"
	"strings"
	"time"
)

// Media categories, derived from the MIME type at upload time.
const (
	CategoryImage    = "image"
	CategoryDocument = "document"
	CategoryVideo    = "video"
	CategoryAudio    = "audio"
	CategoryOther    = "other"
)

// DefaultFolder is used when no folder is given or sanitisation leaves
// nothing usable.
const DefaultFolder = "uncategorized"

// UsageRef records one owner's reference to a media.
type UsageRef struct {
	Model string `bson:"model" json:"model"`
	RefID string `bson:"ref_id" json:"ref_id"`
}

// Media is one uploaded asset and everything the registry knows about it.
type Media struct {
	ID           string    `bson:"_id" json:"id"`
	FileName     string    `bson:"file_name" json:"file_name"`
	OriginalName string    `bson:"original_name" json:"original_name"`
	ObjectKey    string    `bson:"object_key" json:"object_key"`
	URL          string    `bson:"url" json:"url"`
	ThumbnailURL string    `bson:"thumbnail_url,omitempty" json:"thumbnail_url,omitempty"`
	MimeType     string    `bson:"mime_type" json:"mime_type"`
	SizeBytes    int64     `bson:"size_bytes" json:"size_bytes"`
	Category     string    `bson:"category" json:"category"`
	Folder       string    `bson:"folder" json:"folder"`
	AltText      string    `bson:"alt_text,omitempty" json:"alt_text,omitempty"`
	Caption      string    `bson:"caption,omitempty" json:"caption,omitempty"`
	Metadata     Metadata  `bson:"metadata,omitempty" json:"metadata,omitempty"`
	UsedIn       []UsageRef `bson:"used_in" json:"used_in"`
	UsageCount   int       `bson:"usage_count" json:"usage_count"`
	UploadedBy   string    `bson:"uploaded_by,omitempty" json:"uploaded_by,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
	DeletedAt    *time.Time `bson:"deleted_at" json:"deleted_at,omitempty"`
}

// IsDeleted reports whether the media has been soft-deleted.
func (m *Media) IsDeleted() bool {
	return m.DeletedAt != nil
}

// ThumbnailKey derives the object key of the thumbnail from the key the
// original was stored under. The folder segment is the one in effect at
// upload time; later folder edits are metadata only and do not move bytes.
func (m *Media) ThumbnailKey() string {
	if m.ThumbnailURL == "" {
		return ""
	}
	return path.Join(path.Dir(m.ObjectKey), "thumbnails", m.FileName)
}

// CategoryFromMime maps a MIME type onto the coarse categories the stats
// endpoints break down by.
func CategoryFromMime(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return CategoryImage
	case strings.HasPrefix(mimeType, "video/"):
		return CategoryVideo
	case strings.HasPrefix(mimeType, "audio/"):
		return CategoryAudio
	case mimeType == "application/pdf",
		strings.HasPrefix(mimeType, "text/"),
		strings.HasPrefix(mimeType, "application/msword"),
		strings.HasPrefix(mimeType, "application/vnd.openxmlformats-officedocument"):
		return CategoryDocument
	default:
		return CategoryOther
	}
}
