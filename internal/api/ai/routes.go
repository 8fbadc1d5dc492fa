package ai

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers AI editor routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/ai", func(r chi.Router) {
		r.Post("/chat", h.Chat)
		r.Post("/editor-completion", h.EditorCompletion)
	})
}
