package media

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fhuszti/blog-media-go/internal/port"
)

func strPtr(s string) *string { return &s }

func TestUpdateMediaNilFieldsUntouched(t *testing.T) {
	m := liveMedia("id-1")
	m.AltText = "keep me"
	m.Caption = "me too"
	m.Folder = "pets"
	repo := &mockRepo{mediaRecord: m}
	srv := NewMediaUpdater(repo, &mockCache{})

	out, err := srv.UpdateMedia(context.Background(), port.UpdateMediaInput{
		ID:      "id-1",
		Caption: strPtr("new caption"),
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if out.AltText != "keep me" || out.Folder != "pets" {
		t.Errorf("nil fields must stay untouched, got alt=%q folder=%q", out.AltText, out.Folder)
	}
	if out.Caption != "new caption" {
		t.Errorf("expected caption updated, got %q", out.Caption)
	}
	if repo.updated == nil {
		t.Error("expected the record persisted")
	}
}

func TestUpdateMediaSanitisesFolderAndClamps(t *testing.T) {
	repo := &mockRepo{mediaRecord: liveMedia("id-1")}
	srv := NewMediaUpdater(repo, &mockCache{})

	out, err := srv.UpdateMedia(context.Background(), port.UpdateMediaInput{
		ID:      "id-1",
		Folder:  strPtr("  Summer Pics!  "),
		AltText: strPtr(strings.Repeat("a", MaxAltTextLen+10)),
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if out.Folder != "summer-pics" {
		t.Errorf("expected sanitised folder, got %q", out.Folder)
	}
	if len(out.AltText) != MaxAltTextLen {
		t.Errorf("expected alt text clamped, got len %d", len(out.AltText))
	}
}

func TestUpdateMediaEmptyFolderFallsBackToDefault(t *testing.T) {
	repo := &mockRepo{mediaRecord: liveMedia("id-1")}
	srv := NewMediaUpdater(repo, &mockCache{})

	out, err := srv.UpdateMedia(context.Background(), port.UpdateMediaInput{
		ID:     "id-1",
		Folder: strPtr("   "),
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if out.Folder != "uncategorized" {
		t.Errorf("expected the default folder, got %q", out.Folder)
	}
}

func TestUpdateMediaDeletedNotFound(t *testing.T) {
	now := time.Now().UTC()
	m := liveMedia("id-1")
	m.DeletedAt = &now
	srv := NewMediaUpdater(&mockRepo{mediaRecord: m}, &mockCache{})

	_, err := srv.UpdateMedia(context.Background(), port.UpdateMediaInput{ID: "id-1"})
	if !errors.Is(err, ErrMediaNotFound) {
		t.Fatalf("expected ErrMediaNotFound, got %v", err)
	}
}

func TestUpdateMediaInvalidatesCache(t *testing.T) {
	cache := &mockCache{}
	srv := NewMediaUpdater(&mockRepo{mediaRecord: liveMedia("id-1")}, cache)

	_, err := srv.UpdateMedia(context.Background(), port.UpdateMediaInput{
		ID:      "id-1",
		AltText: strPtr("fresh"),
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !cache.delMediaCalled {
		t.Error("expected cache invalidation after update")
	}
}

func TestUpdateMediaCacheFailureIsBestEffort(t *testing.T) {
	cache := &mockCache{delErr: errors.New("redis down")}
	srv := NewMediaUpdater(&mockRepo{mediaRecord: liveMedia("id-1")}, cache)

	_, err := srv.UpdateMedia(context.Background(), port.UpdateMediaInput{
		ID:      "id-1",
		AltText: strPtr("fresh"),
	})
	if err != nil {
		t.Fatalf("expected success despite cache failure, got %v", err)
	}
}
