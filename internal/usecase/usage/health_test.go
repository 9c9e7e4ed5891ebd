package usage

import (
	"context"
	"errors"
	"testing"

	"github.com/fhuszti/blog-media-go/internal/model"
	"github.com/fhuszti/blog-media-go/internal/port"
)

type scanRepo struct {
	port.MediaRepository

	orphans     []*model.Media
	mismatches  []*model.Media
	orphanErr   error
	mismatchErr error
}

func (r *scanRepo) FindOrphans(ctx context.Context) ([]*model.Media, error) {
	return r.orphans, r.orphanErr
}

func (r *scanRepo) FindCountMismatches(ctx context.Context) ([]*model.Media, error) {
	return r.mismatches, r.mismatchErr
}

func TestScanUsageHealth(t *testing.T) {
	repo := &scanRepo{
		orphans: []*model.Media{
			{ID: "id-a", FileName: "a.jpg", UsageCount: 0},
		},
		mismatches: []*model.Media{
			{ID: "id-b", FileName: "b.jpg", UsageCount: 3, UsedIn: []model.UsageRef{{Model: "posts", RefID: "post-1"}}},
		},
	}
	srv := NewHealthScanner(repo)

	report, err := srv.ScanUsageHealth(context.Background())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if report.ScannedAt.IsZero() {
		t.Error("expected a scan timestamp")
	}
	if len(report.Orphans) != 1 || report.Orphans[0].ID != "id-a" {
		t.Errorf("unexpected orphans %+v", report.Orphans)
	}
	if len(report.CountMismatches) != 1 || report.CountMismatches[0].UsageCount != 3 {
		t.Errorf("unexpected mismatches %+v", report.CountMismatches)
	}
	if len(report.CountMismatches[0].UsedIn) != 1 {
		t.Errorf("expected the usage list carried for diagnosis, got %+v", report.CountMismatches[0].UsedIn)
	}
}

func TestScanUsageHealthEmpty(t *testing.T) {
	srv := NewHealthScanner(&scanRepo{})

	report, err := srv.ScanUsageHealth(context.Background())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(report.Orphans) != 0 || len(report.CountMismatches) != 0 {
		t.Errorf("expected an empty report, got %+v", report)
	}
}

func TestScanUsageHealthRepoErrors(t *testing.T) {
	boom := errors.New("mongo down")

	if _, err := NewHealthScanner(&scanRepo{orphanErr: boom}).ScanUsageHealth(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected the orphan scan error surfaced, got %v", err)
	}
	if _, err := NewHealthScanner(&scanRepo{mismatchErr: boom}).ScanUsageHealth(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected the mismatch scan error surfaced, got %v", err)
	}
}
