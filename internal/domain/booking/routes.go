package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the booking router. optionalAuth attributes guest-capable
// endpoints to an account when a token is present; authMiddleware protects
// the account-only endpoints.
func (h *Handler) Routes(authMiddleware, optionalAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Guest-capable routes
	r.Group(func(r chi.Router) {
		r.Use(optionalAuth)
		r.Post("/", h.Create)
		r.Post("/calculate-price", h.CalculatePrice)
		r.Get("/search/{bookingNumber}", h.GetByNumber)
	})

	// Account-only routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/my-bookings", h.List)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}/cancel", h.Cancel)
		r.Post("/{id}/send-confirmation", h.ResendConfirmation)
	})

	return r
}
