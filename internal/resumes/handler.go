package resumes

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tomlhennessy/job-tracker/internal/extract"
	"github.com/tomlhennessy/job-tracker/internal/llm"
	"github.com/tomlhennessy/job-tracker/internal/shared/server/middleware"
	"github.com/tomlhennessy/job-tracker/internal/shared/server/respond"
)

const maxUploadBytes = 10 << 20

// Handler serves the resume version routes.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resumes", h.list)
	rg.POST("/resumes", h.save)
	rg.GET("/resumes/latest", h.latest)
	rg.GET("/resumes/:id", h.get)
	rg.PUT("/resumes/:id", h.update)
	rg.POST("/resumes/generate", h.generate)
	rg.POST("/resumes/extract", h.extract)
}

type saveResumeRequest struct {
	Content Content `json:"content"`
}

type generateResumeRequest struct {
	Text string `json:"text"`
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	list, err := h.Svc.ListVersions(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list resumes", nil)
		return
	}
	respond.OK(c, gin.H{"resumes": list})
}

func (h *Handler) save(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req saveResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
		return
	}

	resume, err := h.Svc.SaveVersion(c.Request.Context(), userID, req.Content)
	if err != nil {
		if errors.Is(err, ErrInvalidContent) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "resume content requires a name", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save resume", nil)
		return
	}
	respond.Created(c, gin.H{"resume": resume})
}

func (h *Handler) latest(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	resume, err := h.Svc.Latest(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNoVersions) {
			respond.Error(c, http.StatusNotFound, "not_found", "no resume versions yet", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load resume", nil)
		return
	}
	respond.OK(c, gin.H{"resume": resume})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	resume, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load resume", nil)
		return
	}
	respond.OK(c, gin.H{"resume": resume})
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req saveResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
		return
	}

	resume, err := h.Svc.UpdateContent(c.Request.Context(), userID, c.Param("id"), req.Content)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, ErrInvalidContent):
			respond.Error(c, http.StatusBadRequest, "validation_error", "resume content requires a name", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update resume", nil)
		}
		return
	}
	respond.OK(c, gin.H{"resume": resume})
}

func (h *Handler) generate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req generateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
		return
	}

	resume, err := h.Svc.GenerateWithAI(c.Request.Context(), userID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "text is required", nil)
		case errors.Is(err, ErrBadAIResponse):
			respond.Error(c, http.StatusBadGateway, "ai_response_invalid", "model returned unusable content, try again", nil)
		case errors.Is(err, llm.ErrNotConfigured):
			respond.Error(c, http.StatusServiceUnavailable, "ai_not_configured", "AI generation is not configured", nil)
		default:
			respond.Error(c, http.StatusBadGateway, "ai_failed", "failed to generate resume", nil)
		}
		return
	}
	respond.Created(c, gin.H{"resume": resume})
}

func (h *Handler) extract(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "file is required", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "failed to read file", nil)
		return
	}
	if len(data) > maxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds 10MB limit", nil)
		return
	}

	text, err := extract.Text(c.Request.Context(), data, header.Header.Get("Content-Type"), header.Filename)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedType) {
			respond.Error(c, http.StatusBadRequest, "unsupported_type", "only PDF and DOCX files are supported", nil)
			return
		}
		respond.Error(c, http.StatusUnprocessableEntity, "extract_failed", "failed to extract text from file", nil)
		return
	}
	respond.OK(c, gin.H{"text": text})
}
