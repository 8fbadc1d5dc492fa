package api

import (
	"net/http"

	aiapi "github.com/futig/architech-backend/internal/api/ai"
	"github.com/futig/architech-backend/internal/api/docs"
	guideapi "github.com/futig/architech-backend/internal/api/guide"
	ideaapi "github.com/futig/architech-backend/internal/api/idea"
	interviewapi "github.com/futig/architech-backend/internal/api/interview"
	"github.com/futig/architech-backend/internal/api/middleware"
	"github.com/futig/architech-backend/internal/config"
	"github.com/futig/architech-backend/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers mounted by SetupRouter
type Handlers struct {
	Interview *interviewapi.Handler
	Idea      *ideaapi.Handler
	Guide     *guideapi.Handler
	AI        *aiapi.Handler
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(cfg *config.Config, handlers Handlers, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                         // Recover from panics
	r.Use(chimiddleware.RequestID)                         // Add request ID
	r.Use(middleware.Logger(logger))                       // Log requests
	r.Use(middleware.CORS(cfg.CORS))                       // Handle CORS
	r.Use(chimiddleware.Timeout(cfg.ServerRequestTimeout)) // Request deadline

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]string{"message": "ArchiTech API is running"})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]string{"status": "healthy"})
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	interviewapi.RegisterRoutes(r, handlers.Interview)
	ideaapi.RegisterRoutes(r, handlers.Idea)
	guideapi.RegisterRoutes(r, handlers.Guide)
	aiapi.RegisterRoutes(r, handlers.AI)

	return r
}
