package guide

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers guide routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/guide", func(r chi.Router) {
		r.Post("/generate/{projectId}", h.GenerateGuide)
		r.Post("/progress", h.UpdateProgress)
		r.Get("/{projectId}", h.GetGuide)
	})
}
