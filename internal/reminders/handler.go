package reminders

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tomlhennessy/job-tracker/internal/shared/server/middleware"
	"github.com/tomlhennessy/job-tracker/internal/shared/server/respond"
)

// Handler serves the reminder trigger route.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reminders", h.send)
}

func (h *Handler) send(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	email := middleware.UserEmailFromContext(c)
	if email == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "account has no email address", nil)
		return
	}

	sent, err := h.Svc.SendDue(c.Request.Context(), userID, email)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to send reminders", nil)
		return
	}
	respond.OK(c, gin.H{"sent": sent})
}
