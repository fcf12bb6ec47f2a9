package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "proposal-backend/internal/auth"
	"proposal-backend/internal/dashboard"
	"proposal-backend/internal/documents"
	"proposal-backend/internal/export"
	"proposal-backend/internal/llm"
	openai "proposal-backend/internal/llm/openai"
	"proposal-backend/internal/proposals"
	"proposal-backend/internal/shared/config"
	"proposal-backend/internal/shared/server"
	"proposal-backend/internal/shared/storage/db"
	"proposal-backend/internal/shared/storage/object"
	localstore "proposal-backend/internal/shared/storage/object/local"
	s3store "proposal-backend/internal/shared/storage/object/s3"
	"proposal-backend/internal/users"
)

var errRequiredDatabase = errors.New("DATABASE_URL is required")

// App holds shared dependencies built at process start.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	ProposalsRepo proposals.Repo
	DocumentsRepo documents.DocumentsRepo
	UsersRepo     users.Repo

	ProposalsService *proposals.Service
	DocumentsService *documents.Service
	DashboardService *dashboard.Service
	UsersService     *users.Service

	ProposalHandler  *proposals.Handler
	DocumentHandler  *documents.Handler
	DashboardHandler *dashboard.Handler
	ExportHandler    *export.Handler
	GoogleAuth       *googleauth.GoogleService
}

// Build prepares all shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}
	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		ProposalHandler:  app.ProposalHandler,
		DocumentHandler:  app.DocumentHandler,
		DashboardHandler: app.DashboardHandler,
		ExportHandler:    app.ExportHandler,
		GoogleAuth:       app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, errRequiredDatabase
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

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) error {
	var proposalsRepo proposals.Repo
	var documentsRepo documents.DocumentsRepo
	var usersRepo users.Repo
	var dashboardSvc *dashboard.Service

	if app.DB != nil {
		proposalsRepo = &proposals.PGRepo{DB: app.DB}
		documentsRepo = &documents.PGRepo{DB: app.DB}
		usersRepo = &users.PGRepo{DB: app.DB}
		dashboardSvc = dashboard.NewPostgresService(dashboard.NewPGStore(app.DB))
	} else {
		proposalsRepo = proposals.NewMemoryRepo()
		documentsRepo = documents.NewMemoryRepo()
		usersRepo = users.NewMemoryRepo()
		dashboardSvc = dashboard.NewService()
	}

	llmClient := llm.Client(llm.PlaceholderClient{})
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		openaiClient, err := openai.NewClient(apiKey, app.Config.LLMModel, app.Config.LLMTimeoutSeconds)
		if err != nil {
			return err
		}
		llmClient = openaiClient
	}

	proposalsSvc := &proposals.Service{
		Repo:     proposalsRepo,
		LLM:      llmClient,
		Counters: dashboardSvc,
	}

	documentsSvc := &documents.Service{
		Store:          app.Store,
		Repo:           documentsRepo,
		Counters:       dashboardSvc,
		LLM:            llmClient,
		Proposals:      proposalsSvc,
		ChunkWordLimit: app.Config.ChunkWordLimit,
	}

	usersSvc := users.NewService(usersRepo)

	app.ProposalsRepo = proposalsRepo
	app.DocumentsRepo = documentsRepo
	app.UsersRepo = usersRepo
	app.ProposalsService = proposalsSvc
	app.DocumentsService = documentsSvc
	app.DashboardService = dashboardSvc
	app.UsersService = usersSvc
	app.ProposalHandler = proposals.NewHandler(proposalsSvc)
	app.DocumentHandler = documents.NewHandler(documentsSvc)
	app.DashboardHandler = dashboard.NewHandler(dashboardSvc)
	app.ExportHandler = export.NewHandler(export.ChromeRenderer{})
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		usersSvc,
	)

	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
