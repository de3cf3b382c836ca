package hotel

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the hotel router. managerOnly guards the image management
// endpoints.
func (h *Handler) Routes(authMiddleware, managerOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Public routes
	r.Get("/", h.List)
	r.Get("/search", h.Search)
	r.Get("/{id}", h.Get)

	// Management routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(managerOnly)
		r.Post("/{id}/images/presign", h.PresignImage)
		r.Post("/{id}/images/confirm", h.ConfirmImage)
	})

	return r
}
