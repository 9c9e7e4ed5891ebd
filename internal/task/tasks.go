package task

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const TypeUsageHealthScan = "usage:health_scan"

type UsageHealthScanPayload struct {
	RequestedAt time.Time `json:"requested_at"`
}

// NewUsageHealthScanTask creates an Asynq task asking the worker to scan
// every media's usage bookkeeping for drift.
func NewUsageHealthScanTask(requestedAt time.Time) (*asynq.Task, error) {
	p := UsageHealthScanPayload{RequestedAt: requestedAt}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal usage-health-scan payload: %w", err)
	}
	return asynq.NewTask(TypeUsageHealthScan, data), nil
}

// ParseUsageHealthScanPayload parses the task payload to UsageHealthScanPayload.
func ParseUsageHealthScanPayload(t *asynq.Task) (UsageHealthScanPayload, error) {
	var p UsageHealthScanPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return UsageHealthScanPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}
