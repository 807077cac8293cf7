// Package bootstrap wires configuration, storage, cache, and services
// into a runnable application.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tomlhennessy/job-tracker/internal/assist"
	googleauth "github.com/tomlhennessy/job-tracker/internal/auth"
	"github.com/tomlhennessy/job-tracker/internal/jobs"
	"github.com/tomlhennessy/job-tracker/internal/llm"
	openai "github.com/tomlhennessy/job-tracker/internal/llm/openai"
	"github.com/tomlhennessy/job-tracker/internal/reminders"
	"github.com/tomlhennessy/job-tracker/internal/resumes"
	"github.com/tomlhennessy/job-tracker/internal/shared/auth"
	"github.com/tomlhennessy/job-tracker/internal/shared/cache"
	"github.com/tomlhennessy/job-tracker/internal/shared/config"
	"github.com/tomlhennessy/job-tracker/internal/shared/server"
	"github.com/tomlhennessy/job-tracker/internal/shared/storage/db"
	"github.com/tomlhennessy/job-tracker/internal/users"
)

// App holds the wired application.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Cache  cache.Cache
	Tokens *auth.TokenService

	UsersService     *users.Service
	JobsService      *jobs.Service
	ResumesService   *resumes.Service
	AssistService    *assist.Service
	RemindersService *reminders.Service
}

// Build prepares all dependencies and the HTTP router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if sqlDB != nil {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	appCache := buildCache(cfg)
	llmClient := buildLLM(cfg)
	mailer := buildMailer(cfg)
	tokens := auth.NewTokenService(cfg.JWTSecret, 24*time.Hour)

	var (
		userRepo   users.Repo
		jobRepo    jobs.Repo
		resumeRepo resumes.Repo
	)
	if sqlDB != nil {
		userRepo = &users.PGRepo{DB: sqlDB}
		jobRepo = jobs.NewPGRepo(sqlDB)
		resumeRepo = resumes.NewPGRepo(sqlDB)
	} else {
		userRepo = users.NewMemoryRepo()
		jobRepo = jobs.NewMemoryRepo()
		resumeRepo = resumes.NewMemoryRepo()
	}

	userSvc := users.NewService(userRepo)
	jobSvc := jobs.NewService(jobRepo, appCache)
	resumeSvc := resumes.NewService(resumeRepo, appCache, llmClient)
	assistSvc := assist.NewService(jobSvc, appCache, llmClient)
	reminderSvc := reminders.NewService(jobSvc, mailer)

	googleAuth := googleauth.NewGoogleService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		cfg.UIRedirectURL,
		userSvc,
		tokens,
	)

	app := &App{
		Config:           cfg,
		DB:               sqlDB,
		Cache:            appCache,
		Tokens:           tokens,
		UsersService:     userSvc,
		JobsService:      jobSvc,
		ResumesService:   resumeSvc,
		AssistService:    assistSvc,
		RemindersService: reminderSvc,
	}

	app.Router = server.NewEngine(server.Deps{
		Config: cfg,
		Tokens: tokens,
		Handlers: []server.RouteRegistrar{
			users.NewHandler(userSvc, tokens),
			googleAuth,
			jobs.NewHandler(jobSvc),
			resumes.NewHandler(resumeSvc),
			assist.NewHandler(assistSvc),
			reminders.NewHandler(reminderSvc),
		},
		Healthy: app.health,
	})

	return app, nil
}

func (a *App) health() map[string]any {
	status := map[string]any{
		"status": "ok",
		"env":    a.Config.Env,
	}
	if a.DB == nil {
		status["db"] = "memory"
	} else {
		status["db"] = "postgres"
	}
	return status
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildCache(cfg config.Config) cache.Cache {
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		log.Printf("bootstrap: REDIS_ADDR empty; using in-memory cache")
		return cache.NewMemory()
	}
	return cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
}

func buildLLM(cfg config.Config) llm.Client {
	switch strings.ToLower(strings.TrimSpace(cfg.LLMProvider)) {
	case "", "openai":
	default:
		log.Printf("bootstrap: unknown LLM_PROVIDER %q; AI features disabled", cfg.LLMProvider)
		return llm.PlaceholderClient{}
	}
	if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
		log.Printf("bootstrap: OPENAI_API_KEY empty; AI features disabled")
		return llm.PlaceholderClient{}
	}
	client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
	if err != nil {
		log.Printf("bootstrap: openai client unavailable; AI features disabled: %v", err)
		return llm.PlaceholderClient{}
	}
	return client
}

func buildMailer(cfg config.Config) reminders.Mailer {
	if strings.TrimSpace(cfg.SendGridAPIKey) == "" {
		log.Printf("bootstrap: SENDGRID_API_KEY empty; reminders will be logged")
		return reminders.LogMailer{}
	}
	return reminders.NewSendGridMailer(cfg.SendGridAPIKey, cfg.MailFrom)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
