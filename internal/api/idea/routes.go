package idea

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers idea routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/idea", func(r chi.Router) {
		r.Post("/generate-list", h.GenerateIdeas)
		r.Post("/generate-blueprint", h.GenerateBlueprint)
		r.Post("/generate-database-schema", h.GenerateDatabaseSchema)
		r.Post("/generate-flowchart", h.GenerateFlowchart)
		r.Get("/flowchart/{projectId}", h.GetFlowchart)
		r.Get("/{projectId}/blueprint", h.ExportBlueprint)
	})
}
