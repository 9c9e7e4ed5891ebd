package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/fhuszti/blog-media-go/internal/model"
	"github.com/fhuszti/blog-media-go/internal/port"
)

type healthSrv struct {
	repo port.MediaRepository
}

// compile-time check: *healthSrv must satisfy port.UsageHealthScanner
var _ port.UsageHealthScanner = (*healthSrv)(nil)

// NewHealthScanner constructs the usage drift reporter.
func NewHealthScanner(repo port.MediaRepository) port.UsageHealthScanner {
	return &healthSrv{repo: repo}
}

// ScanUsageHealth reports live assets nothing references (deletion
// candidates) and assets whose denormalised counter disagrees with their
// usage list. The scan only reports; it never mutates.
func (s *healthSrv) ScanUsageHealth(ctx context.Context) (*port.UsageHealthReport, error) {
	orphans, err := s.repo.FindOrphans(ctx)
	if err != nil {
		return nil, fmt.Errorf("scanning for orphans: %w", err)
	}
	mismatches, err := s.repo.FindCountMismatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("scanning for count mismatches: %w", err)
	}

	report := &port.UsageHealthReport{
		ScannedAt:       time.Now().UTC(),
		Orphans:         toEntries(orphans),
		CountMismatches: toEntries(mismatches),
	}
	return report, nil
}

func toEntries(medias []*model.Media) []port.UsageHealthEntry {
	entries := make([]port.UsageHealthEntry, 0, len(medias))
	for _, m := range medias {
		entries = append(entries, port.UsageHealthEntry{
			ID:         m.ID,
			FileName:   m.FileName,
			UsageCount: m.UsageCount,
			UsedIn:     m.UsedIn,
		})
	}
	return entries
}
