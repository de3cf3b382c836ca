package booking

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status represents the booking lifecycle state
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
)

// IsTerminal reports whether no further transition is possible from s.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusNoShow
}

// IsValid reports whether s is a known booking status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

// Guest count bounds for a single room booking.
const (
	MinGuests = 1
	MaxGuests = 8
)

// MaxSpecialRequestsLen caps the optional special-requests note.
const MaxSpecialRequestsLen = 500

// Booking represents one reservation of a room for a date range by a guest.
// Check-in and check-out are stored as UTC-noon instants; checkout is always
// strictly after checkin. The server owns id, bookingNumber, status and both
// timestamps.
type Booking struct {
	ID            uuid.UUID     `db:"id"`
	BookingNumber string        `db:"booking_number"`
	UserID        uuid.NullUUID `db:"user_id"`

	GuestFirstName string `db:"guest_first_name"`
	GuestLastName  string `db:"guest_last_name"`
	GuestPhone     string `db:"guest_phone"`
	GuestEmail     string `db:"guest_email"`

	HotelID         uuid.UUID      `db:"hotel_id"`
	RoomID          uuid.UUID      `db:"room_id"`
	CheckInDate     time.Time      `db:"check_in_date"`
	CheckOutDate    time.Time      `db:"check_out_date"`
	NumberOfNights  int            `db:"number_of_nights"`
	NumberOfGuests  int            `db:"number_of_guests"`
	SpecialRequests sql.NullString `db:"special_requests"`

	RoomRate float64 `db:"room_rate"`
	Taxes    float64 `db:"taxes"`
	Fees     float64 `db:"fees"`
	Total    float64 `db:"total"`

	Status Status `db:"status"`

	PaymentStatus        sql.NullString `db:"payment_status"`
	PaymentMethod        sql.NullString `db:"payment_method"`
	PaymentTransactionID sql.NullString `db:"payment_transaction_id"`
	PaymentPaidAt        sql.NullTime   `db:"payment_paid_at"`

	CancelledAt        sql.NullTime    `db:"cancelled_at"`
	CancellationReason sql.NullString  `db:"cancellation_reason"`
	RefundAmount       sql.NullFloat64 `db:"refund_amount"`
	RefundedAt         sql.NullTime    `db:"refunded_at"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// PriceBreakdown is the authoritative server-side price of a stay.
// All components are non-negative.
type PriceBreakdown struct {
	PricePerNight  float64 `json:"pricePerNight"`
	NumberOfNights int     `json:"numberOfNights"`
	Subtotal       float64 `json:"subtotal"`
	Taxes          float64 `json:"taxes"`
	Fees           float64 `json:"fees"`
	Total          float64 `json:"total"`
}

// Tax and service-fee rates applied on top of the room subtotal.
const (
	TaxRate        = 0.19
	ServiceFeeRate = 0.05
)

// ComputePrice builds the authoritative price for a stay. Client-side
// estimates are advisory only and reconciled against this before a booking
// is accepted.
func ComputePrice(pricePerNight float64, nights int) PriceBreakdown {
	if nights < 0 {
		nights = 0
	}
	subtotal := pricePerNight * float64(nights)
	taxes := subtotal * TaxRate
	fees := subtotal * ServiceFeeRate
	return PriceBreakdown{
		PricePerNight:  pricePerNight,
		NumberOfNights: nights,
		Subtotal:       subtotal,
		Taxes:          taxes,
		Fees:           fees,
		Total:          subtotal + taxes + fees,
	}
}
