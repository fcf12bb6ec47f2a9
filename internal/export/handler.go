package export

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"proposal-backend/internal/shared/server/respond"
)

// Handler exposes PDF export over HTTP.
type Handler struct {
	Renderer Renderer
}

// NewHandler constructs a Handler.
func NewHandler(renderer Renderer) *Handler {
	return &Handler{Renderer: renderer}
}

// RegisterRoutes attaches the export route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/download-pdf", h.downloadPDF)
}

func (h *Handler) downloadPDF(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if len(payload) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "proposal payload is required", nil)
		return
	}

	html, err := RenderHTML(payload)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "render_failed", "failed to render proposal", nil)
		return
	}

	pdf, err := h.Renderer.RenderPDF(c.Request.Context(), html)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "render_failed", "failed to render pdf", nil)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="proposal.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
