package port

// ImageOptions bound the optimised rendition of an uploaded image.
type ImageOptions struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
}

// ImageResult is the outcome of the image transform stage.
type ImageResult struct {
	Data             []byte
	Width            int
	Height           int
	Format           string
	IsOptimized      bool
	OriginalSize     int64
	OptimizedSize    int64
	CompressionRatio float64
}

// FileOptimiser reduces file sizes and derives thumbnail variants.
type FileOptimiser interface {
	// OptimiseImage decodes, resizes within opts' bounding box and
	// re-encodes per detected format. Undecodable input surfaces a
	// distinct unprocessable error.
	OptimiseImage(data []byte, opts ImageOptions) (*ImageResult, error)
	// Thumbnail produces a fixed-size centered cover-crop, always
	// encoded as JPEG regardless of source format.
	Thumbnail(data []byte) ([]byte, error)
	// OptimisePDF losslessly rewrites a PDF and reports its page count.
	OptimisePDF(data []byte) ([]byte, int, error)
}
