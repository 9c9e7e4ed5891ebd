package task

import (
	"context"

	"github.com/fhuszti/blog-media-go/internal/port"
)

// NoopDispatcher is wired in when no Redis address is configured; scans
// can still be run synchronously through the worker binary.
type NoopDispatcher struct{}

var _ port.TaskDispatcher = (*NoopDispatcher)(nil)

func NewNoopDispatcher() *NoopDispatcher { return &NoopDispatcher{} }

func (d *NoopDispatcher) EnqueueUsageHealthScan(ctx context.Context) error {
	return nil
}
