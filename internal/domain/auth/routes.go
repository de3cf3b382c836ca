package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/login-url", h.LoginURL)
	r.Post("/refresh", h.Refresh)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/me", h.Me)
		r.Delete("/session", h.Logout)
	})

	return r
}
