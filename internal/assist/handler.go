package assist

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tomlhennessy/job-tracker/internal/llm"
	"github.com/tomlhennessy/job-tracker/internal/shared/server/middleware"
	"github.com/tomlhennessy/job-tracker/internal/shared/server/respond"
)

// Handler serves the AI assistance routes.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ai/cover-letter", h.coverLetter)
	rg.GET("/jobs/followups", h.followUps)
}

type coverLetterRequest struct {
	CV             string `json:"cv"`
	JobDescription string `json:"jobDescription"`
}

func (h *Handler) coverLetter(c *gin.Context) {
	var req coverLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
		return
	}

	letter, err := h.Svc.CoverLetter(c.Request.Context(), req.CV, req.JobDescription)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "cv and jobDescription are required", nil)
		case errors.Is(err, llm.ErrNotConfigured):
			respond.Error(c, http.StatusServiceUnavailable, "ai_not_configured", "AI assistance is not configured", nil)
		default:
			respond.Error(c, http.StatusBadGateway, "ai_failed", "failed to draft cover letter", nil)
		}
		return
	}
	respond.OK(c, gin.H{"coverLetter": letter})
}

func (h *Handler) followUps(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	suggestions, err := h.Svc.FollowUpSuggestions(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			respond.Error(c, http.StatusServiceUnavailable, "ai_not_configured", "AI assistance is not configured", nil)
			return
		}
		respond.Error(c, http.StatusBadGateway, "ai_failed", "failed to suggest follow-ups", nil)
		return
	}
	respond.OK(c, gin.H{"suggestions": suggestions})
}
