package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/architech-backend/internal/api"
	aiapi "github.com/futig/architech-backend/internal/api/ai"
	guideapi "github.com/futig/architech-backend/internal/api/guide"
	ideaapi "github.com/futig/architech-backend/internal/api/idea"
	interviewapi "github.com/futig/architech-backend/internal/api/interview"
	"github.com/futig/architech-backend/internal/config"
	"github.com/futig/architech-backend/internal/pkg/formatter"
	pkglogger "github.com/futig/architech-backend/internal/pkg/logger"
	"github.com/futig/architech-backend/internal/pkg/validator"
	"github.com/futig/architech-backend/internal/repository"
	"github.com/futig/architech-backend/internal/usecase/editor"
	"github.com/futig/architech-backend/internal/usecase/guide"
	"github.com/futig/architech-backend/internal/usecase/idea"
	"github.com/futig/architech-backend/internal/usecase/interview"
	"go.uber.org/zap"
)

// Build loads configuration for the environment and wires the HTTP
// application.
func Build(environment string) (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig(environment)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := pkglogger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations", zap.String("source", cfg.MigrationsPath))
	if err := repository.RunMigrations(cfg.MigrationsPath, cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize repositories
	interviewRepo := repository.NewInterviewPostgres(db)
	ideaRepo := repository.NewIdeaPostgres(db)
	guideRepo := repository.NewGuidePostgres(db)
	logger.Info("Repositories initialized")

	// Initialize LLM connector (with mock support)
	llmConnector, closeLLM, err := setupLLM(ctx, cfg, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("setup llm connector: %w", err)
	}

	// Initialize use cases
	interviewUC := interview.NewUsecase(
		interviewRepo,
		llmConnector,
		cfg.LLMConnectorCfg.InterviewModelOrDefault(),
		logger,
	)
	ideaUC := idea.NewUsecase(ideaRepo, llmConnector, formatter.NewFactory(), logger)
	guideUC := guide.NewUsecase(guideRepo, llmConnector, logger)
	editorUC := editor.NewUsecase(llmConnector, logger)
	logger.Info("Use cases initialized")

	// Setup API handlers
	requestValidator := validator.New()
	handlers := api.Handlers{
		Interview: interviewapi.NewHandler(interviewUC, requestValidator),
		Idea:      ideaapi.NewHandler(ideaUC, requestValidator),
		Guide:     guideapi.NewHandler(guideUC, requestValidator),
		AI:        aiapi.NewHandler(editorUC, requestValidator),
	}
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(cfg, handlers, logger)
	logger.Info("HTTP router configured")

	// WriteTimeout stays above the router deadline
	server := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.ServerRequestTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server:          server,
		db:              db,
		closeLLM:        closeLLM,
		shutdownTimeout: cfg.ServerShutdownTimeout,
		logger:          logger,
	}, nil
}

// Migrate applies (steps == 0) or rolls back (steps > 0) migrations
// without starting the server.
func Migrate(environment string, steps int) error {
	cfg, err := config.LoadConfig(environment)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := pkglogger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if steps > 0 {
		logger.Info("Rolling back database migrations", zap.Int("steps", steps))
		return repository.RollbackMigrations(cfg.MigrationsPath, cfg.DatabaseURL, steps)
	}

	logger.Info("Applying database migrations", zap.String("source", cfg.MigrationsPath))
	return repository.RunMigrations(cfg.MigrationsPath, cfg.DatabaseURL)
}
