package proposals

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"proposal-backend/internal/shared/server/middleware"
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

// RegisterRoutes attaches proposal routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/query", h.query)
	rg.GET("/search-history/:uid", h.history)
	rg.GET("/proposal/:id", h.get)
	rg.DELETE("/proposal/:id", h.delete)
}

type queryRequest struct {
	SearchString string  `json:"search_string"`
	Location     string  `json:"location"`
	Budget       float64 `json:"budget"`
	ProposalID   string  `json:"proposal_id"`
}

func (h *Handler) query(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.SearchString == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "search_string is required", nil)
		return
	}

	payload, err := h.Svc.Resolve(c.Request.Context(), userID, req.SearchString, req.Location, req.Budget, req.ProposalID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrUnparseableModel):
			respond.Error(c, http.StatusInternalServerError, "generation_failed", "model returned unparseable output", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "generation_failed", "failed to generate proposal", nil)
		}
		return
	}

	// Model-declared infeasibility payloads ride the success path.
	respond.OK(c, payload)
}

func (h *Handler) history(c *gin.Context) {
	uid := c.Param("uid")
	if uid == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "uid is required", nil)
		return
	}

	entries, err := h.Svc.History(c.Request.Context(), uid)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list search history", nil)
		return
	}
	if entries == nil {
		entries = []HistoryEntry{}
	}
	respond.OK(c, entries)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	id := c.Param("id")
	c.Set("proposalId", id)

	p, err := h.Svc.Get(c.Request.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "proposal not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch proposal", nil)
		}
		return
	}

	respond.OK(c, p.Payload)
}

func (h *Handler) delete(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	id := c.Param("id")
	c.Set("proposalId", id)

	if err := h.Svc.Delete(c.Request.Context(), userID, id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "proposal not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete proposal", nil)
		}
		return
	}

	respond.OK(c, gin.H{"deleted": true})
}
