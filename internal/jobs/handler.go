package jobs

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tomlhennessy/job-tracker/internal/shared/server/middleware"
	"github.com/tomlhennessy/job-tracker/internal/shared/server/respond"
)

// Handler serves the job CRUD routes.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs", h.list)
	rg.POST("/jobs", h.create)
	rg.GET("/jobs/:id", h.get)
	rg.PUT("/jobs/:id", h.update)
	rg.DELETE("/jobs/:id", h.remove)
}

type createJobRequest struct {
	Company        string `json:"company"`
	Position       string `json:"position"`
	Status         string `json:"status"`
	JobDescription string `json:"jobDescription"`
	CoverLetter    string `json:"coverLetter"`
	FollowUpDate   string `json:"followUpDate"`
}

type updateJobRequest struct {
	JobDescription *string `json:"jobDescription"`
	CoverLetter    *string `json:"coverLetter"`
	Status         *string `json:"status"`
	FollowUpDate   *string `json:"followUpDate"`
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	list, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list jobs", nil)
		return
	}
	respond.OK(c, gin.H{"jobs": list})
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
		return
	}

	followUp, err := parseFollowUpDate(req.FollowUpDate)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid followUpDate", nil)
		return
	}

	job, err := h.Svc.Create(c.Request.Context(), userID, CreateInput{
		Company:        req.Company,
		Position:       req.Position,
		Status:         req.Status,
		JobDescription: req.JobDescription,
		CoverLetter:    req.CoverLetter,
		FollowUpDate:   followUp,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "company and position are required and status must be valid", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create job", nil)
		return
	}
	respond.Created(c, gin.H{"job": job})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	job, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load job", nil)
		return
	}
	respond.OK(c, gin.H{"job": job})
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req updateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
		return
	}

	fields := UpdateFields{
		JobDescription: req.JobDescription,
		CoverLetter:    req.CoverLetter,
		Status:         req.Status,
	}
	if req.FollowUpDate != nil {
		if *req.FollowUpDate == "" {
			fields.ClearFollowUp = true
		} else {
			t, err := parseFollowUpDate(*req.FollowUpDate)
			if err != nil {
				respond.Error(c, http.StatusBadRequest, "validation_error", "invalid followUpDate", nil)
				return
			}
			fields.FollowUpDate = t
		}
	}

	job, err := h.Svc.Update(c.Request.Context(), userID, c.Param("id"), fields)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid update", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update job", nil)
		}
		return
	}
	respond.OK(c, gin.H{"job": job})
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete job", nil)
		return
	}
	respond.OK(c, gin.H{"deleted": true})
}

// parseFollowUpDate accepts RFC 3339 timestamps and bare dates.
func parseFollowUpDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
