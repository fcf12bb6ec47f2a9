package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"proposal-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches dashboard routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/user-dashboard/:uid", h.get)
}

func (h *Handler) get(c *gin.Context) {
	uid := c.Param("uid")
	if uid == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "uid is required", nil)
		return
	}

	counters, err := h.Svc.Get(c.Request.Context(), uid)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch dashboard", nil)
		return
	}
	respond.OK(c, counters)
}
