package resumes

import (
	"context"
	"strings"
	"time"

	"github.com/tomlhennessy/job-tracker/internal/llm"
	"github.com/tomlhennessy/job-tracker/internal/shared/cache"
	"github.com/tomlhennessy/job-tracker/internal/shared/telemetry"
)

const (
	listCacheKeyPrefix = "resumes:"
	listCacheTTL       = 10 * time.Minute

	generateTimeout = 30 * time.Second
)

// Service owns resume versioning. Saving always appends a new version;
// history is never rewritten. The per-user version list is cached and
// invalidated after every write.
type Service struct {
	repo  Repo
	cache cache.Cache
	llm   llm.Client
}

func NewService(repo Repo, c cache.Cache, client llm.Client) *Service {
	return &Service{repo: repo, cache: c, llm: client}
}

// ListVersions returns all of the user's resume versions, newest first.
func (s *Service) ListVersions(ctx context.Context, userID string) ([]Resume, error) {
	key := listCacheKey(userID)

	var cached []Resume
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		telemetry.Warn("resumes.cache_read_failed", map[string]any{"error": err.Error()})
	}
	if hit {
		return cached, nil
	}

	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetJSON(ctx, key, list, listCacheTTL); err != nil {
		telemetry.Warn("resumes.cache_write_failed", map[string]any{"error": err.Error()})
	}
	return list, nil
}

// Latest returns the version flagged as current for the user.
func (s *Service) Latest(ctx context.Context, userID string) (Resume, error) {
	return s.repo.LatestByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, resumeID string) (Resume, error) {
	if resumeID == "" {
		return Resume{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, userID, resumeID)
}

// SaveVersion appends a new version holding content and flags it as
// latest.
func (s *Service) SaveVersion(ctx context.Context, userID string, content Content) (Resume, error) {
	if strings.TrimSpace(content.Name) == "" {
		return Resume{}, ErrInvalidContent
	}

	resume, err := s.repo.InsertVersion(ctx, userID, content, false)
	if err != nil {
		return Resume{}, err
	}

	s.invalidate(ctx, userID)
	return resume, nil
}

// UpdateContent records edited content for an existing version. History
// stays immutable: the edit lands as a fresh version rather than a
// rewrite of the addressed row.
func (s *Service) UpdateContent(ctx context.Context, userID, resumeID string, content Content) (Resume, error) {
	if resumeID == "" {
		return Resume{}, ErrInvalidInput
	}
	if strings.TrimSpace(content.Name) == "" {
		return Resume{}, ErrInvalidContent
	}

	// Ownership check; also rejects unknown ids.
	if _, err := s.repo.GetByID(ctx, userID, resumeID); err != nil {
		return Resume{}, err
	}

	resume, err := s.repo.InsertVersion(ctx, userID, content, false)
	if err != nil {
		return Resume{}, err
	}

	s.invalidate(ctx, userID)
	return resume, nil
}

// GenerateWithAI turns raw resume text into structured content via the
// language model and saves the result as a new version. A response the
// model returns in an unusable shape maps to ErrBadAIResponse and
// leaves the version history untouched.
func (s *Service) GenerateWithAI(ctx context.Context, userID, rawText string) (Resume, error) {
	rawText = strings.TrimSpace(rawText)
	if rawText == "" {
		return Resume{}, ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	reply, err := s.llm.Complete(ctx, llm.EnhanceResumePrompt(rawText))
	if err != nil {
		return Resume{}, err
	}

	content, err := ParseContent([]byte(stripCodeFences(reply)))
	if err != nil {
		telemetry.Warn("resumes.ai_response_unparseable", map[string]any{"error": err.Error()})
		return Resume{}, ErrBadAIResponse
	}

	resume, err := s.repo.InsertVersion(ctx, userID, content, true)
	if err != nil {
		return Resume{}, err
	}

	s.invalidate(ctx, userID)
	// Re-prime the list so the next read is served from cache.
	if _, err := s.ListVersions(ctx, userID); err != nil {
		telemetry.Warn("resumes.cache_reprime_failed", map[string]any{"error": err.Error()})
	}
	return resume, nil
}

func (s *Service) invalidate(ctx context.Context, userID string) {
	if err := s.cache.Delete(ctx, listCacheKey(userID)); err != nil {
		telemetry.Warn("resumes.cache_invalidate_failed", map[string]any{
			"userId": userID,
			"error":  err.Error(),
		})
	}
}

func listCacheKey(userID string) string {
	return listCacheKeyPrefix + userID
}

// stripCodeFences unwraps a reply the model wrapped in a markdown code
// block.
func stripCodeFences(reply string) string {
	trimmed := strings.TrimSpace(reply)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
