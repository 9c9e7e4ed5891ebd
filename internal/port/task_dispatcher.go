package port

import "context"

// TaskDispatcher enqueues background work for the worker process.
type TaskDispatcher interface {
	EnqueueUsageHealthScan(ctx context.Context) error
}
