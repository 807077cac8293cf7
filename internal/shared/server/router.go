// Package server assembles the gin engine from the feature handlers.
package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tomlhennessy/job-tracker/internal/shared/auth"
	"github.com/tomlhennessy/job-tracker/internal/shared/config"
	"github.com/tomlhennessy/job-tracker/internal/shared/server/middleware"
)

// RouteRegistrar attaches a feature's routes to the API group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Deps carries everything the router needs.
type Deps struct {
	Config   config.Config
	Tokens   *auth.TokenService
	Handlers []RouteRegistrar
	Healthy  func() map[string]any
}

// NewEngine builds the gin engine with middleware and routes wired.
func NewEngine(deps Deps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Tokens),
		middleware.RateLimit(rateLimits()),
	)

	api := engine.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		status := map[string]any{"status": "ok"}
		if deps.Healthy != nil {
			status = deps.Healthy()
		}
		c.JSON(http.StatusOK, status)
	})

	for _, h := range deps.Handlers {
		h.RegisterRoutes(api)
	}
	return engine
}

// rateLimits gives the AI endpoints a tighter budget than plain CRUD.
func rateLimits() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"AI":      {Rate: 0.2, Burst: 3},
			"DEFAULT": {Rate: 10, Burst: 30},
		},
		GroupFor: func(c *gin.Context) string {
			path := c.Request.URL.Path
			if strings.Contains(path, "/ai/") ||
				strings.HasSuffix(path, "/resumes/generate") ||
				strings.HasSuffix(path, "/jobs/followups") {
				return "AI"
			}
			return "DEFAULT"
		},
	}
}

// Addr returns a normalized listen address for the given port.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
