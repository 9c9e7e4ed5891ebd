package media

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fhuszti/blog-media-go/internal/model"
	"github.com/fhuszti/blog-media-go/internal/port"
)

func TestGetMediaSuccess(t *testing.T) {
	srv := NewMediaGetter(&mockRepo{mediaRecord: liveMedia("id-1")})

	m, err := srv.GetMedia(context.Background(), "id-1")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if m.ID != "id-1" {
		t.Errorf("expected id-1, got %q", m.ID)
	}
}

func TestGetMediaNotFound(t *testing.T) {
	srv := NewMediaGetter(&mockRepo{})

	_, err := srv.GetMedia(context.Background(), "nope")
	if !errors.Is(err, ErrMediaNotFound) {
		t.Fatalf("expected ErrMediaNotFound, got %v", err)
	}
}

func TestGetMediaDeletedInvisible(t *testing.T) {
	now := time.Now().UTC()
	m := liveMedia("id-1")
	m.DeletedAt = &now
	srv := NewMediaGetter(&mockRepo{mediaRecord: m})

	_, err := srv.GetMedia(context.Background(), "id-1")
	if !errors.Is(err, ErrMediaNotFound) {
		t.Fatalf("expected ErrMediaNotFound for a soft-deleted record, got %v", err)
	}
}

func TestListMediasPagination(t *testing.T) {
	repo := &mockRepo{
		medias: []*model.Media{liveMedia("id-1"), liveMedia("id-2")},
		total:  45,
	}
	srv := NewMediaLister(repo)

	out, err := srv.ListMedias(context.Background(), port.ListMediasInput{Page: 2, Limit: 20})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if out.Pagination.Page != 2 || out.Pagination.Limit != 20 {
		t.Errorf("expected page 2 limit 20, got %+v", out.Pagination)
	}
	if out.Pagination.Total != 45 || out.Pagination.TotalPages != 3 {
		t.Errorf("expected total 45 across 3 pages, got %+v", out.Pagination)
	}
	if len(out.Items) != 2 {
		t.Errorf("expected the repository page returned, got %d items", len(out.Items))
	}
}

func TestListMediasDefaultsPagination(t *testing.T) {
	srv := NewMediaLister(&mockRepo{total: 5})

	out, err := srv.ListMedias(context.Background(), port.ListMediasInput{Page: 0, Limit: 500})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if out.Pagination.Page != 1 || out.Pagination.Limit != 20 {
		t.Errorf("expected defaults applied, got %+v", out.Pagination)
	}
	if out.Pagination.TotalPages != 1 {
		t.Errorf("expected one page for 5 records, got %d", out.Pagination.TotalPages)
	}
}

func TestRestoreMedia(t *testing.T) {
	repo := &mockRepo{mediaRecord: liveMedia("id-1")}
	cache := &mockCache{}
	srv := NewMediaRestorer(repo, cache)

	m, err := srv.RestoreMedia(context.Background(), "id-1")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(repo.restoredIDs) != 1 || repo.restoredIDs[0] != "id-1" {
		t.Errorf("expected the record restored, got %v", repo.restoredIDs)
	}
	if !cache.delMediaCalled {
		t.Error("expected cache invalidation after restore")
	}
	if m == nil || m.ID != "id-1" {
		t.Errorf("expected the fresh record returned, got %+v", m)
	}
}

func TestRestoreMediaNotFound(t *testing.T) {
	srv := NewMediaRestorer(&mockRepo{restoreErr: ErrMediaNotFound}, &mockCache{})

	_, err := srv.RestoreMedia(context.Background(), "nope")
	if !errors.Is(err, ErrMediaNotFound) {
		t.Fatalf("expected ErrMediaNotFound, got %v", err)
	}
}
