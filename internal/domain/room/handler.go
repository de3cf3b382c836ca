package room

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fala-hotels/fala-api/internal/domain/booking"
	"github.com/fala-hotels/fala-api/internal/pkg/dateutil"
	"github.com/fala-hotels/fala-api/internal/pkg/errorhandler"
	"github.com/fala-hotels/fala-api/internal/pkg/response"
)

// Handler handles room HTTP requests
type Handler struct {
	repo *Repository
}

// NewHandler creates a new room handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// ListByHotel handles GET /api/v1/rooms/hotel/{id}
func (h *Handler) ListByHotel(w http.ResponseWriter, r *http.Request) {
	hotelID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w, errorhandler.UserMessage(http.StatusNotFound))
		return
	}

	rooms, err := h.repo.ListByHotel(r.Context(), hotelID)
	if err != nil {
		errorhandler.LogDatabaseError(r.Context(), "rooms.list", err)
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "", err)
		return
	}

	response.OK(w, ToResponses(rooms))
}

// Availability handles GET /api/v1/rooms/hotel/{id}/availability
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	hotelID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w, errorhandler.UserMessage(http.StatusNotFound))
		return
	}

	q := r.URL.Query()
	checkIn := dateutil.NormalizeDate(q.Get("checkIn"))
	checkOut := dateutil.NormalizeDate(q.Get("checkOut"))
	if checkIn == "" || checkOut == "" || dateutil.DiffInNights(checkIn, checkOut) <= 0 {
		response.BadRequest(w, errorhandler.UserMessage(http.StatusBadRequest))
		return
	}

	guests, _ := strconv.Atoi(q.Get("guests"))
	if guests < booking.MinGuests {
		guests = booking.MinGuests
	}
	if guests > booking.MaxGuests {
		response.BadRequest(w, errorhandler.UserMessage(http.StatusBadRequest))
		return
	}

	rooms, err := h.repo.ListAvailable(r.Context(), hotelID,
		dateutil.ToDateOnlyString(checkIn), dateutil.ToDateOnlyString(checkOut), guests)
	if err != nil {
		errorhandler.LogDatabaseError(r.Context(), "rooms.availability", err)
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "", err)
		return
	}

	response.OK(w, ToResponses(rooms))
}

// Get handles GET /api/v1/rooms/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w, errorhandler.UserMessage(http.StatusNotFound))
		return
	}

	room, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		errorhandler.LogDatabaseError(r.Context(), "rooms.get", err)
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "", err)
		return
	}
	if room == nil {
		response.NotFound(w, errorhandler.UserMessage(http.StatusNotFound))
		return
	}

	response.OK(w, ToResponse(room))
}

// CalculatePrice handles GET /api/v1/rooms/calculate-price
// Query: roomId, checkIn, checkOut.
func (h *Handler) CalculatePrice(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	roomID, err := uuid.Parse(q.Get("roomId"))
	if err != nil {
		response.NotFound(w, errorhandler.UserMessage(http.StatusNotFound))
		return
	}

	checkIn := dateutil.NormalizeDate(q.Get("checkIn"))
	checkOut := dateutil.NormalizeDate(q.Get("checkOut"))
	nights := dateutil.DiffInNights(checkIn, checkOut)
	if checkIn == "" || checkOut == "" || nights <= 0 {
		response.BadRequest(w, errorhandler.UserMessage(http.StatusBadRequest))
		return
	}

	room, err := h.repo.GetByID(r.Context(), roomID)
	if err != nil {
		errorhandler.LogDatabaseError(r.Context(), "rooms.calculate_price", err)
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "", err)
		return
	}
	if room == nil {
		response.NotFound(w, errorhandler.UserMessage(http.StatusNotFound))
		return
	}

	price := booking.ComputePrice(room.PricePerNight, nights)
	response.OK(w, price)
}
