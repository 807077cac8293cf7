package resumes

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomlhennessy/job-tracker/internal/shared/cache"
)

type fakeLLM struct {
	mu      sync.Mutex
	reply   string
	err     error
	calls   int
	prompts []string
}

func (f *fakeLLM) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func newTestService(client *fakeLLM) *Service {
	if client == nil {
		client = &fakeLLM{}
	}
	return NewService(NewMemoryRepo(), cache.NewMemory(), client)
}

func TestSaveVersionAssignsSequentialVersions(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	first, err := svc.SaveVersion(ctx, "u1", Content{Name: "Jane Doe"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Version)
	assert.True(t, first.IsLatest)

	second, err := svc.SaveVersion(ctx, "u1", Content{Name: "Jane Doe", Summary: "updated"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Version)
	assert.True(t, second.IsLatest)

	latest, err := svc.Latest(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)

	list, err := svc.ListVersions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 2, list[0].Version)
	assert.False(t, list[1].IsLatest)
}

func TestConcurrentSavesKeepVersionsUnique(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	const writers = 16
	var wg sync.WaitGroup
	results := make(chan Resume, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resume, err := svc.SaveVersion(ctx, "u1", Content{Name: "Jane Doe"})
			if err == nil {
				results <- resume
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int]bool)
	for resume := range results {
		assert.False(t, seen[resume.Version], "duplicate version %d", resume.Version)
		seen[resume.Version] = true
	}
	assert.Len(t, seen, writers)

	list, err := svc.ListVersions(ctx, "u1")
	require.NoError(t, err)
	latestCount := 0
	for _, resume := range list {
		if resume.IsLatest {
			latestCount++
		}
	}
	assert.Equal(t, 1, latestCount, "exactly one version must be flagged latest")
}

func TestUpdateContentCreatesNewVersion(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	first, err := svc.SaveVersion(ctx, "u1", Content{Name: "Jane Doe"})
	require.NoError(t, err)

	updated, err := svc.UpdateContent(ctx, "u1", first.ID, Content{Name: "Jane Doe", Summary: "edited"})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)

	// The original version is untouched.
	original, err := svc.Get(ctx, "u1", first.ID)
	require.NoError(t, err)
	assert.Empty(t, original.Content.Summary)
	assert.False(t, original.IsLatest)
}

func TestUpdateContentRejectsOtherUsersResume(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	first, err := svc.SaveVersion(ctx, "u1", Content{Name: "Jane Doe"})
	require.NoError(t, err)

	_, err = svc.UpdateContent(ctx, "u2", first.ID, Content{Name: "Mallory"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGenerateWithAISavesParsedContent(t *testing.T) {
	client := &fakeLLM{reply: "```json\n{\"name\":\"Jane Doe\",\"skills\":[\"Go\"]}\n```"}
	svc := newTestService(client)
	ctx := context.Background()

	resume, err := svc.GenerateWithAI(ctx, "u1", "jane doe, engineer, go")
	require.NoError(t, err)
	assert.True(t, resume.IsAIGenerated)
	assert.Equal(t, "Jane Doe", resume.Content.Name)
	assert.Equal(t, []string{"Go"}, resume.Content.Skills)
	assert.Equal(t, 1, client.calls)
}

func TestGenerateWithAIReprimesListCache(t *testing.T) {
	client := &fakeLLM{reply: `{"name":"Jane Doe"}`}
	mem := cache.NewMemory()
	svc := NewService(NewMemoryRepo(), mem, client)
	ctx := context.Background()

	resume, err := svc.GenerateWithAI(ctx, "u1", "jane doe, engineer")
	require.NoError(t, err)

	var cached []Resume
	hit, err := mem.GetJSON(ctx, "resumes:u1", &cached)
	require.NoError(t, err)
	require.True(t, hit, "generation should leave a fresh cached list behind")
	require.Len(t, cached, 1)
	assert.Equal(t, resume.ID, cached[0].ID)
}

func TestGenerateWithAIBadResponseLeavesHistoryUntouched(t *testing.T) {
	client := &fakeLLM{reply: "I'm sorry, I can't produce JSON today."}
	svc := newTestService(client)
	ctx := context.Background()

	_, err := svc.GenerateWithAI(ctx, "u1", "some resume text")
	assert.ErrorIs(t, err, ErrBadAIResponse)

	list, err := svc.ListVersions(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGenerateWithAIRequiresText(t *testing.T) {
	client := &fakeLLM{}
	svc := newTestService(client)

	_, err := svc.GenerateWithAI(context.Background(), "u1", "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, client.calls)
}

func TestListVersionsCachesEmptyResult(t *testing.T) {
	repo := NewMemoryRepo()
	mem := cache.NewMemory()
	svc := NewService(repo, mem, &fakeLLM{})
	ctx := context.Background()

	list, err := svc.ListVersions(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)

	var cached []Resume
	hit, err := mem.GetJSON(ctx, "resumes:u1", &cached)
	require.NoError(t, err)
	assert.True(t, hit, "empty result should still prime the cache")
}

// brokenCache fails every operation, standing in for an unreachable Redis.
type brokenCache struct{}

func (brokenCache) GetJSON(context.Context, string, any) (bool, error) {
	return false, errors.New("cache down")
}

func (brokenCache) SetJSON(context.Context, string, any, time.Duration) error {
	return errors.New("cache down")
}

func (brokenCache) Delete(context.Context, string) error {
	return errors.New("cache down")
}

func TestListVersionsSurvivesBrokenCache(t *testing.T) {
	svc := NewService(NewMemoryRepo(), brokenCache{}, &fakeLLM{})
	ctx := context.Background()

	saved, err := svc.SaveVersion(ctx, "u1", Content{Name: "Jane Doe"})
	require.NoError(t, err, "writes must not surface cache failures")

	list, err := svc.ListVersions(ctx, "u1")
	require.NoError(t, err, "reads must fall through to the store")
	require.Len(t, list, 1)
	assert.Equal(t, saved.ID, list[0].ID)
}

func TestSaveVersionInvalidatesCachedList(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	_, err := svc.ListVersions(ctx, "u1")
	require.NoError(t, err)

	_, err = svc.SaveVersion(ctx, "u1", Content{Name: "Jane Doe"})
	require.NoError(t, err)

	list, err := svc.ListVersions(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
