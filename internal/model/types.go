package model

// Metadata carries processing results attached to a media record.
type Metadata struct {
	// image-specific
	Width            int     `bson:"width,omitempty" json:"width,omitempty"`
	Height           int     `bson:"height,omitempty" json:"height,omitempty"`
	Format           string  `bson:"format,omitempty" json:"format,omitempty"`
	IsOptimized      bool    `bson:"is_optimized,omitempty" json:"is_optimized,omitempty"`
	OriginalSize     int64   `bson:"original_size,omitempty" json:"original_size,omitempty"`
	OptimizedSize    int64   `bson:"optimized_size,omitempty" json:"optimized_size,omitempty"`
	CompressionRatio float64 `bson:"compression_ratio,omitempty" json:"compression_ratio,omitempty"`

	// pdf-specific
	PageCount int `bson:"page_count,omitempty" json:"page_count,omitempty"`
}

// StorageStats aggregates the non-deleted part of the registry.
type StorageStats struct {
	TotalCount        int64 `bson:"total_count" json:"total_count"`
	TotalSizeBytes    int64 `bson:"total_size_bytes" json:"total_size_bytes"`
	ImageCount        int64 `bson:"image_count" json:"image_count"`
	ImageSizeBytes    int64 `bson:"image_size_bytes" json:"image_size_bytes"`
	DocumentCount     int64 `bson:"document_count" json:"document_count"`
	DocumentSizeBytes int64 `bson:"document_size_bytes" json:"document_size_bytes"`
}

// FolderStats is the per-folder breakdown of count and byte totals.
type FolderStats struct {
	Folder    string `bson:"_id" json:"folder"`
	Count     int64  `bson:"count" json:"count"`
	SizeBytes int64  `bson:"size_bytes" json:"size_bytes"`
}
