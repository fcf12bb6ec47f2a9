package server

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	googleauth "proposal-backend/internal/auth"
	"proposal-backend/internal/dashboard"
	"proposal-backend/internal/documents"
	"proposal-backend/internal/export"
	"proposal-backend/internal/proposals"
	"proposal-backend/internal/shared/config"
	"proposal-backend/internal/shared/server/middleware"
	"proposal-backend/internal/shared/server/respond"
)

// RouterDeps collects the handlers the router mounts.
type RouterDeps struct {
	Config           config.Config
	ProposalHandler  *proposals.Handler
	DocumentHandler  *documents.Handler
	DashboardHandler *dashboard.Handler
	ExportHandler    *export.Handler
	GoogleAuth       *googleauth.GoogleService
}

// NewRouter builds the gin engine with middleware and routes registered.
// The liveness probe and the OAuth endpoints stay open; everything else
// sits behind bearer auth.
func NewRouter(deps RouterDeps) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		cors.New(cors.Config{
			AllowOrigins:     deps.Config.CORSAllowOrigin,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Authorization", "Content-Type", "X-Guest-Id"},
			AllowCredentials: true,
		}),
	)

	r.GET("/", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"isRunning": true})
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(r.Group("/"))
	}

	protected := r.Group("/")
	protected.Use(middleware.Auth())

	if deps.ProposalHandler != nil {
		deps.ProposalHandler.RegisterRoutes(protected)
	}
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(protected)
	}
	if deps.DashboardHandler != nil {
		deps.DashboardHandler.RegisterRoutes(protected)
	}
	if deps.ExportHandler != nil {
		deps.ExportHandler.RegisterRoutes(protected)
	}

	return r
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
