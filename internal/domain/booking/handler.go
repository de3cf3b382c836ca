package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fala-hotels/fala-api/internal/middleware"
	"github.com/fala-hotels/fala-api/internal/pkg/errorhandler"
	"github.com/fala-hotels/fala-api/internal/pkg/response"
	"github.com/fala-hotels/fala-api/internal/pkg/validator"
)

// Handler handles booking HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates a new booking handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /api/v1/bookings
// Works for guests and signed-in users; a valid bearer token attributes the
// booking to the account.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, errorhandler.UserMessage(http.StatusBadRequest))
		return
	}

	var userID *uuid.UUID
	if id := middleware.GetUserID(r.Context()); id != uuid.Nil {
		userID = &id
	}

	booking, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	response.Created(w, booking)
}

// Get handles GET /api/v1/bookings/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, errorhandler.UserMessage(http.StatusUnauthorized))
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w, "Booking not found.")
		return
	}

	booking, err := h.service.GetByID(r.Context(), userID, id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	response.OK(w, booking)
}

// GetByNumber handles GET /api/v1/bookings/search/{bookingNumber}
// Guest bookings additionally require the guest email as a query parameter.
func (h *Handler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "bookingNumber")
	email := r.URL.Query().Get("email")

	var userID *uuid.UUID
	if id := middleware.GetUserID(r.Context()); id != uuid.Nil {
		userID = &id
	}

	booking, err := h.service.GetByNumber(r.Context(), number, email, userID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	response.OK(w, booking)
}

// List handles GET /api/v1/bookings/my-bookings
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, errorhandler.UserMessage(http.StatusUnauthorized))
		return
	}

	params, fieldErrors := parseListParams(r)
	if len(fieldErrors) > 0 {
		errorhandler.HandleValidationErrors(r.Context(), w, fieldErrors)
		return
	}
	bookings, total, err := h.service.List(r.Context(), userID, params)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	totalPages := (total + params.Limit - 1) / params.Limit
	response.Bookings(w, bookings, response.Pagination{
		Total:      total,
		Page:       params.Page,
		TotalPages: totalPages,
		Limit:      params.Limit,
	})
}

// Cancel handles PATCH /api/v1/bookings/{id}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, errorhandler.UserMessage(http.StatusUnauthorized))
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w, "Booking not found.")
		return
	}

	var req CancelBookingRequest
	if r.ContentLength > 0 {
		if err := response.DecodeJSON(r.Body, &req); err != nil {
			response.BadRequest(w, errorhandler.UserMessage(http.StatusBadRequest))
			return
		}
	}

	booking, quote, err := h.service.Cancel(r.Context(), userID, id, req.CancellationReason)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"booking": booking,
		"refund":  quote,
	})
}

// ResendConfirmation handles POST /api/v1/bookings/{id}/send-confirmation
func (h *Handler) ResendConfirmation(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, errorhandler.UserMessage(http.StatusUnauthorized))
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w, "Booking not found.")
		return
	}

	if err := h.service.ResendConfirmation(r.Context(), userID, id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	response.OKWithMessage(w, nil, "Confirmation email sent.")
}

// CalculatePrice handles POST /api/v1/bookings/calculate-price
func (h *Handler) CalculatePrice(w http.ResponseWriter, r *http.Request) {
	var req PriceRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, errorhandler.UserMessage(http.StatusBadRequest))
		return
	}

	price, err := h.service.CalculatePrice(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	response.OK(w, price)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]response.FieldError, len(verrs))
		for i, fe := range verrs {
			fields[i] = response.FieldError{Field: fe.Field, Message: fe.Message, Code: fe.Code}
		}
		errorhandler.HandleValidationErrors(r.Context(), w, fields)
		return
	}

	switch {
	case errors.Is(err, ErrBookingNotFound):
		errorhandler.HandleError(r.Context(), w, http.StatusNotFound, "Booking not found.", err)
	case errors.Is(err, ErrHotelNotFound), errors.Is(err, ErrRoomNotFound):
		errorhandler.HandleError(r.Context(), w, http.StatusNotFound, "", err)
	case errors.Is(err, ErrNotBookingOwner):
		errorhandler.HandleError(r.Context(), w, http.StatusForbidden, "", err)
	case errors.Is(err, ErrRoomNotAvailable):
		errorhandler.HandleError(r.Context(), w, http.StatusConflict, "", err)
	case errors.Is(err, ErrCannotCancel):
		errorhandler.HandleError(r.Context(), w, http.StatusBadRequest, "This booking can no longer be cancelled.", err)
	case errors.Is(err, ErrCannotResend):
		errorhandler.HandleError(r.Context(), w, http.StatusBadRequest, "A confirmation cannot be re-sent for this booking.", err)
	default:
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "", err)
	}
}

type listQuery struct {
	Status        string `json:"status" validate:"booking_status"`
	PaymentStatus string `json:"paymentStatus" validate:"payment_status"`
	DateFrom      string `json:"dateFrom" validate:"omitempty,date_only"`
	DateTo        string `json:"dateTo" validate:"omitempty,date_only"`
}

func parseListParams(r *http.Request) (ListParams, []response.FieldError) {
	q := r.URL.Query()

	filters := listQuery{
		Status:        q.Get("status"),
		PaymentStatus: q.Get("paymentStatus"),
		DateFrom:      q.Get("dateFrom"),
		DateTo:        q.Get("dateTo"),
	}
	if errs := validator.Validate(filters); len(errs) > 0 {
		fieldErrors := make([]response.FieldError, 0, len(errs))
		for field, message := range errs {
			fieldErrors = append(fieldErrors, response.FieldError{
				Field:   field,
				Message: message,
				Code:    "INVALID_FILTER",
			})
		}
		return ListParams{}, fieldErrors
	}

	page, _ := strconv.Atoi(q.Get("page"))
	if page <= 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	return ListParams{
		Status:        Status(filters.Status),
		PaymentStatus: PaymentStatus(filters.PaymentStatus),
		BookingNumber: q.Get("bookingNumber"),
		DateFrom:      filters.DateFrom,
		DateTo:        filters.DateTo,
		Page:          page,
		Limit:         limit,
	}, nil
}
