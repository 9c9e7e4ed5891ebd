package media

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fhuszti/blog-media-go/internal/model"
)

func liveMedia(id string) *model.Media {
	return &model.Media{
		ID:           id,
		FileName:     "171000_abc.jpg",
		ObjectKey:    "uncategorized/171000_abc.jpg",
		URL:          "http://localhost:9000/blog-media/uncategorized/171000_abc.jpg",
		ThumbnailURL: "http://localhost:9000/blog-media/uncategorized/thumbnails/171000_abc.jpg",
		MimeType:     "image/jpeg",
		UsedIn:       []model.UsageRef{},
	}
}

func TestDeleteMediaNotFound(t *testing.T) {
	repo := &mockRepo{}
	srv := NewMediaDeleter(repo, &mockCache{}, &mockStorage{})

	err := srv.DeleteMedia(context.Background(), "nope")
	if !errors.Is(err, ErrMediaNotFound) {
		t.Fatalf("expected ErrMediaNotFound, got %v", err)
	}
}

func TestDeleteMediaAlreadyDeleted(t *testing.T) {
	now := time.Now().UTC()
	m := liveMedia("id-1")
	m.DeletedAt = &now
	repo := &mockRepo{mediaRecord: m}
	srv := NewMediaDeleter(repo, &mockCache{}, &mockStorage{})

	err := srv.DeleteMedia(context.Background(), "id-1")
	if !errors.Is(err, ErrMediaNotFound) {
		t.Fatalf("expected ErrMediaNotFound for a soft-deleted record, got %v", err)
	}
}

func TestDeleteMediaRefusedWhileInUse(t *testing.T) {
	m := liveMedia("id-1")
	m.UsedIn = []model.UsageRef{
		{Model: "posts", RefID: "post-7"},
		{Model: "pages", RefID: "page-2"},
	}
	m.UsageCount = 2
	repo := &mockRepo{mediaRecord: m}
	strg := &mockStorage{}
	srv := NewMediaDeleter(repo, &mockCache{}, strg)

	err := srv.DeleteMedia(context.Background(), "id-1")
	var inUse *InUseError
	if !errors.As(err, &inUse) {
		t.Fatalf("expected InUseError, got %v", err)
	}
	if len(inUse.Refs) != 2 || inUse.Refs[0].Model != "posts" {
		t.Errorf("expected the blocking owners enumerated, got %v", inUse.Refs)
	}
	if len(strg.removedKeys) != 0 {
		t.Errorf("nothing must be removed while referenced, removed %v", strg.removedKeys)
	}
	if len(repo.softDeletedIDs) != 0 {
		t.Errorf("record must stay live, soft-deleted %v", repo.softDeletedIDs)
	}
}

func TestDeleteMediaSuccess(t *testing.T) {
	m := liveMedia("id-1")
	repo := &mockRepo{mediaRecord: m}
	strg := &mockStorage{}
	cache := &mockCache{}
	srv := NewMediaDeleter(repo, cache, strg)

	if err := srv.DeleteMedia(context.Background(), "id-1"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(strg.removedKeys) != 2 {
		t.Fatalf("expected thumbnail and main object removed, got %v", strg.removedKeys)
	}
	if strg.removedKeys[0] != "uncategorized/thumbnails/171000_abc.jpg" {
		t.Errorf("expected thumbnail removed first, got %q", strg.removedKeys[0])
	}
	if strg.removedKeys[1] != m.ObjectKey {
		t.Errorf("expected main object removed, got %q", strg.removedKeys[1])
	}
	if len(repo.softDeletedIDs) != 1 || repo.softDeletedIDs[0] != "id-1" {
		t.Errorf("expected soft delete of id-1, got %v", repo.softDeletedIDs)
	}
	if !cache.delMediaCalled {
		t.Error("expected cache invalidation")
	}
}

func TestDeleteMediaWithoutThumbnail(t *testing.T) {
	m := liveMedia("id-1")
	m.ThumbnailURL = ""
	repo := &mockRepo{mediaRecord: m}
	strg := &mockStorage{}
	srv := NewMediaDeleter(repo, &mockCache{}, strg)

	if err := srv.DeleteMedia(context.Background(), "id-1"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(strg.removedKeys) != 1 || strg.removedKeys[0] != m.ObjectKey {
		t.Errorf("expected only the main object removed, got %v", strg.removedKeys)
	}
}

func TestDeleteMediaThumbnailRemovalIsBestEffort(t *testing.T) {
	m := liveMedia("id-1")
	repo := &mockRepo{mediaRecord: m}
	strg := &mockStorage{thumbRemoveErr: errors.New("minio hiccup")}
	srv := NewMediaDeleter(repo, &mockCache{}, strg)

	if err := srv.DeleteMedia(context.Background(), "id-1"); err != nil {
		t.Fatalf("expected success despite thumbnail removal failure, got %v", err)
	}
	if len(repo.softDeletedIDs) != 1 {
		t.Errorf("expected the record soft-deleted, got %v", repo.softDeletedIDs)
	}
}

func TestDeleteMediaMainRemovalFailureAborts(t *testing.T) {
	m := liveMedia("id-1")
	m.ThumbnailURL = ""
	repo := &mockRepo{mediaRecord: m}
	strg := &mockStorage{removeErr: ErrStorageUnavailable}
	srv := NewMediaDeleter(repo, &mockCache{}, strg)

	err := srv.DeleteMedia(context.Background(), "id-1")
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected the storage error surfaced, got %v", err)
	}
	if len(repo.softDeletedIDs) != 0 {
		t.Errorf("record must stay live when its bytes could not be removed, got %v", repo.softDeletedIDs)
	}
}

func TestBulkDeleteRefusedWholeWhenAnyInUse(t *testing.T) {
	a := liveMedia("id-a")
	b := liveMedia("id-b")
	b.FileName = "171001_def.png"
	b.ObjectKey = "uncategorized/171001_def.png"
	b.UsedIn = []model.UsageRef{{Model: "posts", RefID: "post-9"}}
	b.UsageCount = 1
	repo := &mockRepo{medias: []*model.Media{a, b}}
	strg := &mockStorage{}
	srv := NewMediaDeleter(repo, &mockCache{}, strg)

	_, err := srv.BulkDeleteMedias(context.Background(), []string{"id-a", "id-b"})
	var bulk *BulkInUseError
	if !errors.As(err, &bulk) {
		t.Fatalf("expected BulkInUseError, got %v", err)
	}
	if len(bulk.Blocked) != 1 || bulk.Blocked[0].ID != "id-b" {
		t.Errorf("expected id-b enumerated as blocking, got %+v", bulk.Blocked)
	}
	if len(strg.removedKeys) != 0 {
		t.Errorf("the whole batch must be refused, removed %v", strg.removedKeys)
	}
	if len(repo.softDeletedIDs) != 0 {
		t.Errorf("no member may be soft-deleted, got %v", repo.softDeletedIDs)
	}
}

func TestBulkDeleteSuccess(t *testing.T) {
	a := liveMedia("id-a")
	b := liveMedia("id-b")
	b.FileName = "171001_def.png"
	b.ObjectKey = "uncategorized/171001_def.png"
	b.ThumbnailURL = ""
	repo := &mockRepo{medias: []*model.Media{a, b}}
	srv := NewMediaDeleter(repo, &mockCache{}, &mockStorage{})

	out, err := srv.BulkDeleteMedias(context.Background(), []string{"id-a", "id-b", "id-gone"})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(out.Deleted) != 2 {
		t.Fatalf("expected both live members deleted, got %v", out.Deleted)
	}
	if len(repo.softDeletedIDs) != 2 {
		t.Errorf("expected two soft deletes, got %v", repo.softDeletedIDs)
	}
}
