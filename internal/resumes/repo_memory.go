package resumes

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory resume repository. The mutex serializes
// version allocation, matching the database's unique constraint.
type MemoryRepo struct {
	resumes map[string]Resume
	mu      sync.Mutex
}

var _ Repo = (*MemoryRepo)(nil)

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{resumes: make(map[string]Resume)}
}

func (r *MemoryRepo) InsertVersion(_ context.Context, userID string, content Content, aiGenerated bool) (Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	maxVersion := 0
	for id, existing := range r.resumes {
		if existing.UserID != userID {
			continue
		}
		if existing.Version > maxVersion {
			maxVersion = existing.Version
		}
		if existing.IsLatest {
			existing.IsLatest = false
			r.resumes[id] = existing
		}
	}

	resume := Resume{
		ID:            uuid.NewString(),
		UserID:        userID,
		Version:       maxVersion + 1,
		Content:       content,
		IsAIGenerated: aiGenerated,
		IsLatest:      true,
		CreatedAt:     time.Now().UTC(),
	}
	r.resumes[resume.ID] = resume
	return resume, nil
}

func (r *MemoryRepo) ListByUser(_ context.Context, userID string) ([]Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Resume, 0)
	for _, resume := range r.resumes {
		if resume.UserID == userID {
			out = append(out, resume)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Version > out[j].Version
	})
	return out, nil
}

func (r *MemoryRepo) GetByID(_ context.Context, userID, resumeID string) (Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	resume, ok := r.resumes[resumeID]
	if !ok || resume.UserID != userID {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

func (r *MemoryRepo) LatestByUser(_ context.Context, userID string) (Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, resume := range r.resumes {
		if resume.UserID == userID && resume.IsLatest {
			return resume, nil
		}
	}
	return Resume{}, ErrNoVersions
}
