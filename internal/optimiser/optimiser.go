package optimiser

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"math"
	"os"

	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"
	"github.com/fhuszti/blog-media-go/internal/port"
	"github.com/fhuszti/blog-media-go/internal/usecase/media"
	"github.com/ledongthuc/pdf"
)

// Transform defaults. The bounding box never upscales; quality applies to
// lossy output formats only.
const (
	DefaultMaxWidth  = 1920
	DefaultMaxHeight = 1920
	DefaultQuality   = 85

	ThumbnailWidth   = 300
	ThumbnailHeight  = 300
	ThumbnailQuality = 80
)

type FileOptimiser struct {
	webpEnc WebPEncoder
	pdfOpt  PDFOptimizer
}

// compile-time check: *FileOptimiser must satisfy port.FileOptimiser
var _ port.FileOptimiser = (*FileOptimiser)(nil)

func NewFileOptimiser(webpEnc WebPEncoder, pdfOpt PDFOptimizer) *FileOptimiser {
	log.Println("initialising optimiser...")
	return &FileOptimiser{
		webpEnc: webpEnc,
		pdfOpt:  pdfOpt,
	}
}

// OptimiseImage decodes the input, fits it inside the bounding box and
// re-encodes it per detected format:
//   - JPEG: re-encoded at the given quality.
//   - PNG: maximum lossless compression.
//   - WEBP: lossy at the given quality.
//   - GIF: passed through untouched, so animations survive.
//   - anything else decodable: converted to JPEG.
//
// Undecodable input surfaces ErrUnprocessableImage; the caller aborts the
// upload rather than storing a broken asset.
func (o *FileOptimiser) OptimiseImage(data []byte, opts port.ImageOptions) (*port.ImageResult, error) {
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = DefaultMaxWidth
	}
	if opts.MaxHeight <= 0 {
		opts.MaxHeight = DefaultMaxHeight
	}
	if opts.Quality <= 0 {
		opts.Quality = DefaultQuality
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", media.ErrUnprocessableImage, err)
	}

	if format == "gif" {
		// re-encoding would flatten animated GIFs to their first frame
		return &port.ImageResult{
			Data:          data,
			Width:         cfg.Width,
			Height:        cfg.Height,
			Format:        "gif",
			IsOptimized:   false,
			OriginalSize:  int64(len(data)),
			OptimizedSize: int64(len(data)),
		}, nil
	}

	img, _, err := o.webpEnc.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", media.ErrUnprocessableImage, err)
	}

	if cfg.Width > opts.MaxWidth || cfg.Height > opts.MaxHeight {
		img = imaging.Fit(img, opts.MaxWidth, opts.MaxHeight, imaging.Lanczos)
	}

	buf := &bytes.Buffer{}
	outFormat := format
	switch format {
	case "jpeg":
		err = jpeg.Encode(buf, img, &jpeg.Options{Quality: opts.Quality})
	case "png":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		err = enc.Encode(buf, img)
	case "webp":
		err = o.webpEnc.Encode(img, opts.Quality, buf)
	default:
		outFormat = "jpeg"
		err = jpeg.Encode(buf, img, &jpeg.Options{Quality: opts.Quality})
	}
	if err != nil {
		return nil, fmt.Errorf("optimiser: failed to encode %s: %w", outFormat, err)
	}

	bounds := img.Bounds()
	origSize := int64(len(data))
	optSize := int64(buf.Len())
	return &port.ImageResult{
		Data:             buf.Bytes(),
		Width:            bounds.Dx(),
		Height:           bounds.Dy(),
		Format:           outFormat,
		IsOptimized:      true,
		OriginalSize:     origSize,
		OptimizedSize:    optSize,
		CompressionRatio: compressionRatio(origSize, optSize),
	}, nil
}

// Thumbnail renders a fixed-size centered cover-crop, always JPEG whatever
// the source format. Animated sources keep their first frame only.
func (o *FileOptimiser) Thumbnail(data []byte) ([]byte, error) {
	img, _, err := o.webpEnc.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", media.ErrUnprocessableImage, err)
	}

	thumb := imaging.Fill(img, ThumbnailWidth, ThumbnailHeight, imaging.Center, imaging.Lanczos)

	buf := &bytes.Buffer{}
	if err := jpeg.Encode(buf, thumb, &jpeg.Options{Quality: ThumbnailQuality}); err != nil {
		return nil, fmt.Errorf("optimiser: failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// OptimisePDF losslessly rewrites the PDF through pdfcpu and reports its
// page count.
func (o *FileOptimiser) OptimisePDF(data []byte) ([]byte, int, error) {
	inFile, err := os.CreateTemp("", "pdf_in_*.pdf")
	if err != nil {
		return nil, 0, fmt.Errorf("optimiser: could not create temp input PDF: %w", err)
	}
	defer removeTemp(inFile.Name())

	if _, err := io.Copy(inFile, bytes.NewReader(data)); err != nil {
		_ = inFile.Close()
		return nil, 0, fmt.Errorf("optimiser: failed to write temp input PDF: %w", err)
	}
	_ = inFile.Close()

	outFile, err := os.CreateTemp("", "pdf_out_*.pdf")
	if err != nil {
		return nil, 0, fmt.Errorf("optimiser: could not create temp output PDF: %w", err)
	}
	_ = outFile.Close()
	defer removeTemp(outFile.Name())

	if err := o.pdfOpt.OptimizeFile(inFile.Name(), outFile.Name()); err != nil {
		return nil, 0, fmt.Errorf("optimiser: pdfcpu optimization failed: %w", err)
	}

	out, err := os.ReadFile(outFile.Name())
	if err != nil {
		return nil, 0, fmt.Errorf("optimiser: failed to read optimized PDF: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(out), int64(len(out)))
	if err != nil {
		return nil, 0, fmt.Errorf("optimiser: error opening pdf reader: %w", err)
	}

	return out, reader.NumPage(), nil
}

func removeTemp(name string) {
	if err := os.Remove(name); err != nil {
		log.Printf("failed to remove temp file %q: %v", name, err)
	}
}

func compressionRatio(originalSize, optimizedSize int64) float64 {
	if originalSize == 0 {
		return 0
	}
	ratio := float64(originalSize-optimizedSize) / float64(originalSize) * 100
	return math.Round(ratio*100) / 100
}
