// Package assist exposes the AI writing helpers: cover letters and
// follow-up suggestions.
package assist

import (
	"context"
	"strings"
	"time"

	"github.com/tomlhennessy/job-tracker/internal/jobs"
	"github.com/tomlhennessy/job-tracker/internal/llm"
	"github.com/tomlhennessy/job-tracker/internal/shared/cache"
	"github.com/tomlhennessy/job-tracker/internal/shared/telemetry"
)

const (
	followUpCacheKeyPrefix = "followup:"
	followUpCacheTTL       = 24 * time.Hour

	completeTimeout = 30 * time.Second
)

// Service drives the AI assistance features.
type Service struct {
	jobs  *jobs.Service
	cache cache.Cache
	llm   llm.Client
}

func NewService(jobSvc *jobs.Service, c cache.Cache, client llm.Client) *Service {
	return &Service{jobs: jobSvc, cache: c, llm: client}
}

// CoverLetter drafts a cover letter from the user's CV text and a job
// description.
func (s *Service) CoverLetter(ctx context.Context, cv, jobDescription string) (string, error) {
	cv = strings.TrimSpace(cv)
	jobDescription = strings.TrimSpace(jobDescription)
	if cv == "" || jobDescription == "" {
		return "", ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, completeTimeout)
	defer cancel()

	letter, err := s.llm.Complete(ctx, llm.CoverLetterPrompt(cv, jobDescription))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(letter), nil
}

// FollowUpSuggestions asks the model when the user should chase their
// open applications. Suggestions are cached for a day per user.
func (s *Service) FollowUpSuggestions(ctx context.Context, userID string) ([]string, error) {
	key := followUpCacheKeyPrefix + userID

	var cached []string
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		telemetry.Warn("assist.cache_read_failed", map[string]any{"error": err.Error()})
	}
	if hit {
		return cached, nil
	}

	list, err := s.jobs.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return []string{}, nil
	}

	descriptions := make([]string, 0, len(list))
	for _, job := range list {
		desc := job.Company + " / " + job.Position + " (" + job.Status + ")"
		if job.JobDescription != "" {
			desc += ": " + job.JobDescription
		}
		descriptions = append(descriptions, desc)
	}

	ctx, cancel := context.WithTimeout(ctx, completeTimeout)
	defer cancel()

	reply, err := s.llm.Complete(ctx, llm.FollowUpPrompt(descriptions))
	if err != nil {
		return nil, err
	}

	suggestions := splitLines(reply)
	if err := s.cache.SetJSON(ctx, key, suggestions, followUpCacheTTL); err != nil {
		telemetry.Warn("assist.cache_write_failed", map[string]any{"error": err.Error()})
	}
	return suggestions, nil
}

func splitLines(reply string) []string {
	out := make([]string, 0)
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-*0123456789. "))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
