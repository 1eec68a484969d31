package media

import "context"

type Repository interface {
	EnqueueCleanup(ctx context.Context, items []Cleanup) error
	// DueCleanups returns up to limit pending items with fewer than
	// maxAttempts attempts, oldest first.
	DueCleanups(ctx context.Context, limit, maxAttempts int) ([]Cleanup, error)
	DeleteCleanups(ctx context.Context, ids []string) error
	RecordCleanupFailure(ctx context.Context, id, lastError string) error
	// DropExhausted removes items that reached maxAttempts.
	DropExhausted(ctx context.Context, maxAttempts int) (int64, error)
}
