package jobs

import (
	"context"
	"time"
)

// Repo persists jobs. All reads and writes are scoped to a single user.
type Repo interface {
	Create(ctx context.Context, job Job) (Job, error)
	ListByUser(ctx context.Context, userID string) ([]Job, error)
	GetByID(ctx context.Context, userID, jobID string) (Job, error)
	Update(ctx context.Context, userID, jobID string, fields UpdateFields) (Job, error)
	Delete(ctx context.Context, userID, jobID string) error
	ListFollowUpsDue(ctx context.Context, userID string, from, to time.Time) ([]Job, error)
}
