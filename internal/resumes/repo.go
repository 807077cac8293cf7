package resumes

import "context"

// Repo persists resume versions. InsertVersion assigns the next version
// number and moves the latest flag in one atomic step.
type Repo interface {
	InsertVersion(ctx context.Context, userID string, content Content, aiGenerated bool) (Resume, error)
	ListByUser(ctx context.Context, userID string) ([]Resume, error)
	GetByID(ctx context.Context, userID, resumeID string) (Resume, error)
	LatestByUser(ctx context.Context, userID string) (Resume, error)
}
