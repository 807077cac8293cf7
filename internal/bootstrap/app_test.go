package bootstrap

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tomlhennessy/job-tracker/internal/shared/config"
)

func buildTestApp(t *testing.T) *App {
	t.Helper()
	app, err := Build(config.Config{
		Env:       "dev",
		JWTSecret: "test-secret",
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return app
}

func doJSON(t *testing.T, app *App, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, app *App) string {
	t.Helper()
	rec := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    "jane@example.com",
		"password": "s3cret-password",
		"name":     "Jane Doe",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	return resp.Token
}

func TestHealthIsPublic(t *testing.T) {
	app := buildTestApp(t)

	rec := doJSON(t, app, http.MethodGet, "/api/v1/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health status %d", rec.Code)
	}
}

func TestJobsRequireAuth(t *testing.T) {
	app := buildTestApp(t)

	rec := doJSON(t, app, http.MethodGet, "/api/v1/jobs", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestJobLifecycleOverHTTP(t *testing.T) {
	app := buildTestApp(t)
	token := registerAndLogin(t, app)

	rec := doJSON(t, app, http.MethodPost, "/api/v1/jobs", token, map[string]string{
		"company":  "Acme",
		"position": "Engineer",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create job status %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Job struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"job"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.Job.Status != "applied" {
		t.Fatalf("expected default status applied, got %q", created.Job.Status)
	}

	rec = doJSON(t, app, http.MethodGet, "/api/v1/jobs", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list jobs status %d: %s", rec.Code, rec.Body.String())
	}
	var listed struct {
		Jobs []struct {
			ID string `json:"id"`
		} `json:"jobs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(listed.Jobs) != 1 || listed.Jobs[0].ID != created.Job.ID {
		t.Fatalf("expected created job in list, got %+v", listed.Jobs)
	}

	rec = doJSON(t, app, http.MethodPut, "/api/v1/jobs/"+created.Job.ID, token, map[string]string{
		"status": "interview",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update job status %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, app, http.MethodDelete, "/api/v1/jobs/"+created.Job.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete job status %d: %s", rec.Code, rec.Body.String())
	}
}

func TestResumeVersioningOverHTTP(t *testing.T) {
	app := buildTestApp(t)
	token := registerAndLogin(t, app)

	save := func(summary string) {
		rec := doJSON(t, app, http.MethodPost, "/api/v1/resumes", token, map[string]any{
			"content": map[string]any{"name": "Jane Doe", "summary": summary},
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("save resume status %d: %s", rec.Code, rec.Body.String())
		}
	}
	save("first draft")
	save("second draft")

	rec := doJSON(t, app, http.MethodGet, "/api/v1/resumes/latest", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("latest resume status %d: %s", rec.Code, rec.Body.String())
	}
	var latest struct {
		Resume struct {
			Version int  `json:"version"`
			Latest  bool `json:"isLatest"`
			Content struct {
				Summary string `json:"summary"`
			} `json:"content"`
		} `json:"resume"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &latest); err != nil {
		t.Fatalf("decode latest response: %v", err)
	}
	if latest.Resume.Version != 2 || !latest.Resume.Latest || latest.Resume.Content.Summary != "second draft" {
		t.Fatalf("unexpected latest resume: %+v", latest.Resume)
	}
}

func TestUnknownLLMProviderDisablesAI(t *testing.T) {
	app, err := Build(config.Config{
		Env:          "dev",
		JWTSecret:    "test-secret",
		LLMProvider:  "anthropic",
		OpenAIAPIKey: "sk-unused",
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	token := registerAndLogin(t, app)

	rec := doJSON(t, app, http.MethodPost, "/api/v1/resumes/generate", token, map[string]string{
		"text": "jane doe, engineer",
	})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 for unsupported provider, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGenerateUnavailableWithoutAPIKey(t *testing.T) {
	app := buildTestApp(t)
	token := registerAndLogin(t, app)

	rec := doJSON(t, app, http.MethodPost, "/api/v1/resumes/generate", token, map[string]string{
		"text": "jane doe, engineer",
	})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without AI configured, got %d: %s", rec.Code, rec.Body.String())
	}
}
