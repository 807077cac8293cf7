package jobs

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomlhennessy/job-tracker/internal/shared/cache"
	"github.com/tomlhennessy/job-tracker/internal/shared/telemetry"
)

const (
	listCacheKeyPrefix = "jobs:"
	listCacheTTL       = 10 * time.Minute
)

// Service owns job business rules and the per-user list cache. Reads go
// through the cache; every mutation invalidates the owning user's entry
// after the write commits.
type Service struct {
	repo  Repo
	cache cache.Cache
}

func NewService(repo Repo, c cache.Cache) *Service {
	return &Service{repo: repo, cache: c}
}

// CreateInput carries the fields accepted when creating a job.
type CreateInput struct {
	Company        string
	Position       string
	Status         string
	JobDescription string
	CoverLetter    string
	FollowUpDate   *time.Time
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Job, error) {
	in.Company = strings.TrimSpace(in.Company)
	in.Position = strings.TrimSpace(in.Position)
	if in.Company == "" || in.Position == "" {
		return Job{}, ErrInvalidInput
	}
	if in.Status == "" {
		in.Status = StatusApplied
	}
	if !ValidStatus(in.Status) {
		return Job{}, ErrInvalidInput
	}

	job, err := s.repo.Create(ctx, Job{
		ID:             uuid.NewString(),
		UserID:         userID,
		Company:        in.Company,
		Position:       in.Position,
		Status:         in.Status,
		JobDescription: in.JobDescription,
		CoverLetter:    in.CoverLetter,
		FollowUpDate:   in.FollowUpDate,
	})
	if err != nil {
		return Job{}, err
	}

	s.invalidate(ctx, userID)
	return job, nil
}

// List returns the user's jobs, newest first. The cached entry is
// served when present; a miss reads the store and primes the cache,
// including for an empty result.
func (s *Service) List(ctx context.Context, userID string) ([]Job, error) {
	key := listCacheKey(userID)

	var cached []Job
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		telemetry.Warn("jobs.cache_read_failed", map[string]any{"error": err.Error()})
	}
	if hit {
		return cached, nil
	}

	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetJSON(ctx, key, list, listCacheTTL); err != nil {
		telemetry.Warn("jobs.cache_write_failed", map[string]any{"error": err.Error()})
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, userID, jobID string) (Job, error) {
	if jobID == "" {
		return Job{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, userID, jobID)
}

func (s *Service) Update(ctx context.Context, userID, jobID string, fields UpdateFields) (Job, error) {
	if jobID == "" {
		return Job{}, ErrInvalidInput
	}
	if fields.Status != nil && !ValidStatus(*fields.Status) {
		return Job{}, ErrInvalidInput
	}

	job, err := s.repo.Update(ctx, userID, jobID, fields)
	if err != nil {
		return Job{}, err
	}

	s.invalidate(ctx, userID)
	return job, nil
}

func (s *Service) Delete(ctx context.Context, userID, jobID string) error {
	if jobID == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, userID, jobID); err != nil {
		return err
	}

	s.invalidate(ctx, userID)
	return nil
}

// FollowUpsDue returns the user's jobs whose follow-up date falls in
// [from, to).
func (s *Service) FollowUpsDue(ctx context.Context, userID string, from, to time.Time) ([]Job, error) {
	return s.repo.ListFollowUpsDue(ctx, userID, from, to)
}

// invalidate drops the user's cached job list. A failed delete is
// logged rather than surfaced; the entry still expires with its TTL.
func (s *Service) invalidate(ctx context.Context, userID string) {
	if err := s.cache.Delete(ctx, listCacheKey(userID)); err != nil {
		telemetry.Warn("jobs.cache_invalidate_failed", map[string]any{
			"userId": userID,
			"error":  err.Error(),
		})
	}
}

func listCacheKey(userID string) string {
	return listCacheKeyPrefix + userID
}
