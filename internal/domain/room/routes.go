package room

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the room router. All room endpoints are public.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/hotel/{id}", h.ListByHotel)
	r.Get("/hotel/{id}/availability", h.Availability)
	r.Get("/calculate-price", h.CalculatePrice)
	r.Get("/{id}", h.Get)

	return r
}
