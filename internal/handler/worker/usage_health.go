package worker

import (
	"context"
	"encoding/json"
	"log"

	"github.com/fhuszti/blog-media-go/internal/port"
	"github.com/fhuszti/blog-media-go/internal/task"
)

// UsageHealthScanHandler handles a usage-health-scan task: it runs the
// scanner and logs the report. Drift is reported, never repaired here.
func UsageHealthScanHandler(ctx context.Context, p task.UsageHealthScanPayload, svc port.UsageHealthScanner) error {
	report, err := svc.ScanUsageHealth(ctx)
	if err != nil {
		log.Printf("❌  Usage health scan failed: %v", err)
		return err
	}

	if len(report.Orphans) == 0 && len(report.CountMismatches) == 0 {
		log.Printf("✅  Usage health scan clean (requested at %s)", p.RequestedAt.Format("2006-01-02 15:04:05"))
		return nil
	}

	raw, err := json.Marshal(report)
	if err != nil {
		log.Printf("❌  Could not encode usage health report: %v", err)
		return err
	}
	log.Printf("⚠️  Usage health scan found %d orphan(s) and %d count mismatch(es): %s",
		len(report.Orphans), len(report.CountMismatches), raw)
	return nil
}
