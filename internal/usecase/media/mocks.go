package media

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/fhuszti/blog-media-go/internal/model"
	"github.com/fhuszti/blog-media-go/internal/port"
)

type mockRepo struct {
	mediaRecord *model.Media
	medias      []*model.Media
	total       int64

	getErr        error
	getByURLErr   error
	createErr     error
	updateErr     error
	softDeleteErr error
	restoreErr    error
	listErr       error

	created        *model.Media
	updated        *model.Media
	softDeletedIDs []string
	restoredIDs    []string
	addedUsages    []model.UsageRef
	removedUsages  []model.UsageRef
}

func (m *mockRepo) Create(ctx context.Context, media *model.Media) error {
	m.created = media
	return m.createErr
}
func (m *mockRepo) Update(ctx context.Context, media *model.Media) error {
	m.updated = media
	return m.updateErr
}
func (m *mockRepo) GetByID(ctx context.Context, id string) (*model.Media, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.mediaRecord == nil {
		return nil, ErrMediaNotFound
	}
	return m.mediaRecord, nil
}
func (m *mockRepo) GetByURL(ctx context.Context, url string) (*model.Media, error) {
	if m.getByURLErr != nil {
		return nil, m.getByURLErr
	}
	if m.mediaRecord == nil {
		return nil, ErrMediaNotFound
	}
	return m.mediaRecord, nil
}
func (m *mockRepo) GetManyByIDs(ctx context.Context, ids []string) ([]*model.Media, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.medias, nil
}
func (m *mockRepo) List(ctx context.Context, filter port.ListFilter, opts port.ListOptions) ([]*model.Media, int64, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	return m.medias, m.total, nil
}
func (m *mockRepo) SoftDelete(ctx context.Context, id string) error {
	if m.softDeleteErr != nil {
		return m.softDeleteErr
	}
	m.softDeletedIDs = append(m.softDeletedIDs, id)
	return nil
}
func (m *mockRepo) Restore(ctx context.Context, id string) error {
	if m.restoreErr != nil {
		return m.restoreErr
	}
	m.restoredIDs = append(m.restoredIDs, id)
	return nil
}
func (m *mockRepo) AddUsage(ctx context.Context, id string, ref model.UsageRef) error {
	m.addedUsages = append(m.addedUsages, ref)
	return nil
}
func (m *mockRepo) RemoveUsage(ctx context.Context, id string, ref model.UsageRef) error {
	m.removedUsages = append(m.removedUsages, ref)
	return nil
}
func (m *mockRepo) StorageStats(ctx context.Context) (*model.StorageStats, error) {
	return &model.StorageStats{}, nil
}
func (m *mockRepo) FolderStats(ctx context.Context) ([]model.FolderStats, error) {
	return nil, nil
}
func (m *mockRepo) FindOrphans(ctx context.Context) ([]*model.Media, error) {
	return m.medias, nil
}
func (m *mockRepo) FindCountMismatches(ctx context.Context) ([]*model.Media, error) {
	return nil, nil
}

type mockStorage struct {
	saveErr        error
	thumbSaveErr   error
	removeErr      error
	thumbRemoveErr error

	savedKeys   []string
	savedTypes  []string
	removedKeys []string
}

func (s *mockStorage) InitBucket(ctx context.Context) error { return nil }
func (s *mockStorage) SaveFile(ctx context.Context, fileKey string, reader io.Reader, fileSize int64, contentType string) (string, error) {
	if strings.Contains(fileKey, "/thumbnails/") && s.thumbSaveErr != nil {
		return "", s.thumbSaveErr
	}
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.savedKeys = append(s.savedKeys, fileKey)
	s.savedTypes = append(s.savedTypes, contentType)
	return s.PublicURL(fileKey), nil
}
func (s *mockStorage) GetFile(ctx context.Context, fileKey string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}
func (s *mockStorage) RemoveFile(ctx context.Context, fileKey string) error {
	if strings.Contains(fileKey, "/thumbnails/") && s.thumbRemoveErr != nil {
		return s.thumbRemoveErr
	}
	if s.removeErr != nil {
		return s.removeErr
	}
	s.removedKeys = append(s.removedKeys, fileKey)
	return nil
}
func (s *mockStorage) FileExists(ctx context.Context, fileKey string) (bool, error) {
	return true, nil
}
func (s *mockStorage) StatFile(ctx context.Context, fileKey string) (port.FileInfo, error) {
	return port.FileInfo{}, nil
}
func (s *mockStorage) PublicURL(fileKey string) string {
	return "http://localhost:9000/blog-media/" + fileKey
}
func (s *mockStorage) BaseURL() string {
	return "http://localhost:9000/blog-media"
}

type mockOptimiser struct {
	imgResult *port.ImageResult
	imgErr    error
	thumbData []byte
	thumbErr  error
	pdfData   []byte
	pdfPages  int
	pdfErr    error

	optimiseCalled  bool
	thumbnailCalled bool
	pdfCalled       bool
}

func (o *mockOptimiser) OptimiseImage(data []byte, opts port.ImageOptions) (*port.ImageResult, error) {
	o.optimiseCalled = true
	if o.imgErr != nil {
		return nil, o.imgErr
	}
	if o.imgResult != nil {
		return o.imgResult, nil
	}
	return &port.ImageResult{Data: data, IsOptimized: true, OriginalSize: int64(len(data)), OptimizedSize: int64(len(data))}, nil
}
func (o *mockOptimiser) Thumbnail(data []byte) ([]byte, error) {
	o.thumbnailCalled = true
	if o.thumbErr != nil {
		return nil, o.thumbErr
	}
	if o.thumbData != nil {
		return o.thumbData, nil
	}
	return []byte("thumb"), nil
}
func (o *mockOptimiser) OptimisePDF(data []byte) ([]byte, int, error) {
	o.pdfCalled = true
	if o.pdfErr != nil {
		return nil, 0, o.pdfErr
	}
	if o.pdfData != nil {
		return o.pdfData, o.pdfPages, nil
	}
	return data, o.pdfPages, nil
}

type mockCache struct {
	delErr         error
	delMediaCalled bool
}

func (c *mockCache) GetMediaDetails(ctx context.Context, id string) ([]byte, error) {
	return nil, nil
}
func (c *mockCache) SetMediaDetails(ctx context.Context, id string, raw []byte, ttl time.Duration) error {
	return nil
}
func (c *mockCache) GetEtagMediaDetails(ctx context.Context, id string) (string, error) {
	return "", nil
}
func (c *mockCache) SetEtagMediaDetails(ctx context.Context, id string, etag string, ttl time.Duration) error {
	return nil
}
func (c *mockCache) DeleteMediaDetails(ctx context.Context, id string) error {
	c.delMediaCalled = true
	return c.delErr
}
