package errorhandler

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/fala-hotels/fala-api/internal/middleware"
	"github.com/fala-hotels/fala-api/internal/pkg/response"
)

// UserMessage maps an HTTP status code to the user-facing message for it.
// Unmapped codes fall back to a generic retry message; raw technical errors
// never reach clients.
func UserMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Invalid booking data. Please check the information entered."
	case http.StatusUnauthorized:
		return "Session expired. Please sign in again."
	case http.StatusForbidden:
		return "You do not have permission to perform this action."
	case http.StatusNotFound:
		return "Hotel or room not found."
	case http.StatusConflict:
		return "The room is not available for the selected dates."
	case http.StatusUnprocessableEntity:
		return "Booking data is incomplete or invalid."
	case http.StatusInternalServerError:
		return "Internal server error. Please try again later."
	default:
		return "Error processing the request. Please try again."
	}
}

// HandleError logs the error with request context and sends the mapped
// user-facing message. Pass message == "" to use the default for the status.
func HandleError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if message == "" {
		message = UserMessage(status)
	}

	event := log.Error().
		Str("request_id", middleware.GetRequestID(ctx)).
		Int("status_code", status).
		Str("user_message", message)
	if err != nil {
		event.Err(err)
	}
	event.Msg("Request error")

	response.Error(w, status, message)
}

// HandleValidationErrors logs field-level failures and sends a 422 with the
// error list. These never involve network I/O.
func HandleValidationErrors(ctx context.Context, w http.ResponseWriter, errs []response.FieldError) {
	log.Warn().
		Str("request_id", middleware.GetRequestID(ctx)).
		Int("field_errors", len(errs)).
		Msg("Validation error")

	response.ValidationError(w, errs)
}

// LogDatabaseError logs database errors with context
func LogDatabaseError(ctx context.Context, operation string, err error) {
	log.Error().
		Str("request_id", middleware.GetRequestID(ctx)).
		Str("operation", operation).
		Err(err).
		Msg("Database error")
}

// LogExternalServiceError logs errors from identity-provider or other
// external HTTP calls
func LogExternalServiceError(ctx context.Context, service, endpoint string, err error) {
	log.Error().
		Str("request_id", middleware.GetRequestID(ctx)).
		Str("external_service", service).
		Str("endpoint", endpoint).
		Err(err).
		Msg("External service error")
}
