package jobs

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory job repository used in tests and local
// development when no database is configured.
type MemoryRepo struct {
	jobs map[string]Job
	mu   sync.RWMutex
}

var _ Repo = (*MemoryRepo)(nil)

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{jobs: make(map[string]Job)}
}

func (r *MemoryRepo) Create(_ context.Context, job Job) (Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	r.jobs[job.ID] = job
	return job, nil
}

func (r *MemoryRepo) ListByUser(_ context.Context, userID string) ([]Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Job, 0)
	for _, job := range r.jobs {
		if job.UserID == userID {
			out = append(out, job)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) GetByID(_ context.Context, userID, jobID string) (Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[jobID]
	if !ok || job.UserID != userID {
		return Job{}, ErrNotFound
	}
	return job, nil
}

func (r *MemoryRepo) Update(_ context.Context, userID, jobID string, fields UpdateFields) (Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobID]
	if !ok || job.UserID != userID {
		return Job{}, ErrNotFound
	}
	if fields.JobDescription != nil {
		job.JobDescription = *fields.JobDescription
	}
	if fields.CoverLetter != nil {
		job.CoverLetter = *fields.CoverLetter
	}
	if fields.Status != nil {
		job.Status = *fields.Status
	}
	if fields.ClearFollowUp {
		job.FollowUpDate = nil
	} else if fields.FollowUpDate != nil {
		t := *fields.FollowUpDate
		job.FollowUpDate = &t
	}
	r.jobs[jobID] = job
	return job, nil
}

func (r *MemoryRepo) Delete(_ context.Context, userID, jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobID]
	if !ok || job.UserID != userID {
		return ErrNotFound
	}
	delete(r.jobs, jobID)
	return nil
}

func (r *MemoryRepo) ListFollowUpsDue(_ context.Context, userID string, from, to time.Time) ([]Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Job, 0)
	for _, job := range r.jobs {
		if job.UserID != userID || job.FollowUpDate == nil {
			continue
		}
		d := *job.FollowUpDate
		if (d.Equal(from) || d.After(from)) && d.Before(to) {
			out = append(out, job)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].FollowUpDate.Before(*out[j].FollowUpDate)
	})
	return out, nil
}
