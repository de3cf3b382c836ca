package booking

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/fala-hotels/fala-api/internal/pkg/dateutil"
)

// FieldError describes one rejected field of a submission payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ValidationErrors is the full set of pre-flight rejections for a payload.
// None of these checks perform network I/O.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(msgs, ", ")
}

// NormalizedPayload is the cleaned submission produced by a successful
// validation: trimmed strings, lower-cased email, phone stripped of
// separators and country prefix, dates as YYYY-MM-DD.
type NormalizedPayload struct {
	HotelID         uuid.UUID
	RoomID          uuid.UUID
	CheckInDate     string
	CheckOutDate    string
	Nights          int
	NumberOfGuests  int
	FirstName       string
	LastName        string
	Phone           string
	Email           string
	SpecialRequests string
}

// Email must look like local@domain.tld with at least one dot in the domain.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s.]+(\.[^@\s.]+)+$`)

var phoneStrip = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// ValidateCreate checks a booking submission before anything is sent further
// and returns the normalized payload, or the list of field errors.
func ValidateCreate(req *CreateBookingRequest) (*NormalizedPayload, ValidationErrors) {
	var errs ValidationErrors
	reject := func(field, message, code string) {
		errs = append(errs, FieldError{Field: field, Message: message, Code: code})
	}

	hotelID, err := parseRef(req.HotelID)
	if strings.TrimSpace(req.HotelID) == "" {
		reject("hotelId", "A hotel must be selected", "REQUIRED")
	} else if err != nil {
		reject("hotelId", "Hotel reference is not valid", "INVALID_REFERENCE")
	}
	roomID, err := parseRef(req.RoomID)
	if strings.TrimSpace(req.RoomID) == "" {
		reject("roomId", "A room must be selected", "REQUIRED")
	} else if err != nil {
		reject("roomId", "Room reference is not valid", "INVALID_REFERENCE")
	}

	checkIn := dateutil.NormalizeDate(req.CheckInDate)
	checkOut := dateutil.NormalizeDate(req.CheckOutDate)
	switch {
	case strings.TrimSpace(req.CheckInDate) == "":
		reject("checkInDate", "Check-in date is required", "REQUIRED")
	case checkIn == "":
		reject("checkInDate", "Check-in date is not a valid date", "INVALID_DATE")
	}
	switch {
	case strings.TrimSpace(req.CheckOutDate) == "":
		reject("checkOutDate", "Check-out date is required", "REQUIRED")
	case checkOut == "":
		reject("checkOutDate", "Check-out date is not a valid date", "INVALID_DATE")
	}

	nights := 0
	if checkIn != "" && checkOut != "" {
		nights = dateutil.DiffInNights(checkIn, checkOut)
		if nights <= 0 {
			reject("checkOutDate", "Check-out must be after check-in", "DATE_ORDER")
		}
	}

	if req.NumberOfGuests < MinGuests || req.NumberOfGuests > MaxGuests {
		reject("numberOfGuests", "Number of guests must be between 1 and 8", "OUT_OF_RANGE")
	}

	firstName := strings.TrimSpace(req.GuestInfo.FirstName)
	if firstName == "" {
		reject("firstName", "First name is required", "REQUIRED")
	}
	lastName := strings.TrimSpace(req.GuestInfo.LastName)
	if lastName == "" {
		reject("lastName", "Last name is required", "REQUIRED")
	}

	email := strings.ToLower(strings.TrimSpace(req.GuestInfo.Email))
	if email == "" {
		reject("email", "Email is required", "REQUIRED")
	} else if !emailPattern.MatchString(email) {
		reject("email", "Email address is not valid", "INVALID_EMAIL")
	}

	phone := normalizePhone(req.GuestInfo.Phone)
	if phone == "" {
		reject("phone", "Phone number is required", "REQUIRED")
	}

	specialRequests := strings.TrimSpace(req.SpecialRequests)
	if len(specialRequests) > MaxSpecialRequestsLen {
		reject("specialRequests", "Special requests must be at most 500 characters", "TOO_LONG")
	}

	if errs != nil {
		return nil, errs
	}

	return &NormalizedPayload{
		HotelID:         hotelID,
		RoomID:          roomID,
		CheckInDate:     dateutil.ToDateOnlyString(checkIn),
		CheckOutDate:    dateutil.ToDateOnlyString(checkOut),
		Nights:          nights,
		NumberOfGuests:  req.NumberOfGuests,
		FirstName:       firstName,
		LastName:        lastName,
		Phone:           phone,
		Email:           email,
		SpecialRequests: specialRequests,
	}, nil
}

func parseRef(s string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(s))
}

// normalizePhone strips separators and a leading +57/57 country prefix.
func normalizePhone(raw string) string {
	p := phoneStrip.Replace(strings.TrimSpace(raw))
	if strings.HasPrefix(p, "+57") {
		p = p[3:]
	} else if strings.HasPrefix(p, "57") && len(p) >= 11 {
		p = p[2:]
	}
	return p
}
