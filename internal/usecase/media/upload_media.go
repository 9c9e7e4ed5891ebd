package media

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path"
	"time"
	"unicode/utf8"

	"github.com/fhuszti/blog-media-go/internal/model"
	"github.com/fhuszti/blog-media-go/internal/port"
	"github.com/fhuszti/blog-media-go/internal/uuid"
)

type uploadMediaSrv struct {
	repo  port.MediaRepository
	strg  port.Storage
	opt   port.FileOptimiser
	genID uuid.Gen
}

// compile-time check: *uploadMediaSrv must satisfy port.MediaUploader
var _ port.MediaUploader = (*uploadMediaSrv)(nil)

// NewMediaUploader constructs the upload pipeline: validate, transform,
// store bytes, register the record.
func NewMediaUploader(repo port.MediaRepository, strg port.Storage, opt port.FileOptimiser, genID uuid.Gen) port.MediaUploader {
	return &uploadMediaSrv{repo: repo, strg: strg, opt: opt, genID: genID}
}

func (s *uploadMediaSrv) UploadMedia(ctx context.Context, in port.UploadMediaInput) (*model.Media, error) {
	if len(in.Data) == 0 {
		return nil, ErrEmptyFile
	}
	if int64(len(in.Data)) > MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, len(in.Data), MaxFileSize)
	}
	if !IsMimeTypeAllowed(in.MimeType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMimeType, in.MimeType)
	}

	folder := SanitizeFolder(in.Folder)
	fileName, err := GenerateFileName(in.MimeType, uuid.Short, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	objectKey := path.Join(folder, fileName)

	data := in.Data
	var metadata model.Metadata
	var thumbData []byte

	switch {
	case IsImage(in.MimeType):
		res, err := s.opt.OptimiseImage(in.Data, port.ImageOptions{})
		if err != nil {
			// a broken image never becomes an asset
			return nil, err
		}
		data = res.Data
		metadata = model.Metadata{
			Width:            res.Width,
			Height:           res.Height,
			Format:           res.Format,
			IsOptimized:      res.IsOptimized,
			OriginalSize:     res.OriginalSize,
			OptimizedSize:    res.OptimizedSize,
			CompressionRatio: res.CompressionRatio,
		}
		if thumb, err := s.opt.Thumbnail(in.Data); err != nil {
			log.Printf("thumbnail generation failed for %q: %v", in.FileName, err)
		} else {
			thumbData = thumb
		}
	case IsPdf(in.MimeType):
		if out, pages, err := s.opt.OptimisePDF(in.Data); err != nil {
			log.Printf("pdf optimisation failed for %q, keeping original bytes: %v", in.FileName, err)
		} else {
			data = out
			metadata.PageCount = pages
		}
	}

	url, err := s.strg.SaveFile(ctx, objectKey, bytes.NewReader(data), int64(len(data)), in.MimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to store file %q: %w", objectKey, err)
	}

	var thumbURL string
	if thumbData != nil {
		thumbKey := path.Join(folder, "thumbnails", fileName)
		u, err := s.strg.SaveFile(ctx, thumbKey, bytes.NewReader(thumbData), int64(len(thumbData)), "image/jpeg")
		if err != nil {
			log.Printf("failed to store thumbnail %q: %v", thumbKey, err)
		} else {
			thumbURL = u
		}
	}

	m := &model.Media{
		ID:           s.genID(),
		FileName:     fileName,
		OriginalName: in.FileName,
		ObjectKey:    objectKey,
		URL:          url,
		ThumbnailURL: thumbURL,
		MimeType:     in.MimeType,
		SizeBytes:    int64(len(data)),
		Category:     model.CategoryFromMime(in.MimeType),
		Folder:       folder,
		AltText:      clamp(in.AltText, MaxAltTextLen),
		Caption:      clamp(in.Caption, MaxCaptionLen),
		Metadata:     metadata,
		UsedIn:       []model.UsageRef{},
		UploadedBy:   in.UploadedBy,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		// the stored bytes are now an orphan; the health scan reports
		// those, it is not a reason to fail differently here
		log.Printf("registry create failed after storing %q: %v", objectKey, err)
		return nil, err
	}

	return m, nil
}

// clamp truncates s to at most max bytes without splitting a multi-byte
// rune, so clamped values stay valid UTF-8.
func clamp(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
