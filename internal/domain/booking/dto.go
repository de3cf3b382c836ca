package booking

import (
	"time"

	"github.com/google/uuid"
)

// GuestInfo carries the contact details of the booking guest.
type GuestInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// CreateBookingRequest is the submission payload from the web client.
// TotalPrice is the client's advisory estimate; the server recomputes the
// authoritative price before accepting the booking.
type CreateBookingRequest struct {
	GuestInfo       GuestInfo `json:"guestInfo"`
	HotelID         string    `json:"hotelId"`
	RoomID          string    `json:"roomId"`
	CheckInDate     string    `json:"checkInDate"`
	CheckOutDate    string    `json:"checkOutDate"`
	NumberOfGuests  int       `json:"numberOfGuests"`
	SpecialRequests string    `json:"specialRequests,omitempty"`
	TotalPrice      float64   `json:"totalPrice,omitempty"`
	Source          string    `json:"source,omitempty"`
}

// CancelBookingRequest carries the optional cancellation reason.
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason,omitempty"`
}

// PriceRequest asks for an authoritative quote without creating a booking.
type PriceRequest struct {
	HotelID        string `json:"hotelId"`
	RoomID         string `json:"roomId"`
	CheckInDate    string `json:"checkInDate"`
	CheckOutDate   string `json:"checkOutDate"`
	NumberOfGuests int    `json:"numberOfGuests"`
}

// ListParams are the my-bookings query filters.
type ListParams struct {
	Status        Status
	PaymentStatus PaymentStatus
	BookingNumber string
	DateFrom      string
	DateTo        string
	Page          int
	Limit         int
}

// IsDefault reports whether the params describe the unfiltered first page,
// the only shape served from the booking-list cache.
func (p ListParams) IsDefault() bool {
	return p.Status == "" && p.PaymentStatus == "" && p.BookingNumber == "" &&
		p.DateFrom == "" && p.DateTo == "" && p.Page <= 1
}

// PaymentInfo is the optional payment block of a booking response.
type PaymentInfo struct {
	Status        PaymentStatus `json:"status"`
	Method        string        `json:"method,omitempty"`
	TransactionID string        `json:"transactionId,omitempty"`
	PaidAt        *time.Time    `json:"paidAt,omitempty"`
}

// CancellationInfo is present only on cancelled bookings.
type CancellationInfo struct {
	CancelledAt  time.Time  `json:"cancelledAt"`
	Reason       string     `json:"reason"`
	RefundAmount float64    `json:"refundAmount"`
	RefundedAt   *time.Time `json:"refundedAt,omitempty"`
}

// BookingResponse is the API shape of one reservation.
type BookingResponse struct {
	ID              uuid.UUID         `json:"id"`
	BookingNumber   string            `json:"bookingNumber"`
	UserID          *uuid.UUID        `json:"userId,omitempty"`
	GuestInfo       GuestInfo         `json:"guestInfo"`
	HotelID         uuid.UUID         `json:"hotelId"`
	RoomID          uuid.UUID         `json:"roomId"`
	CheckInDate     string            `json:"checkInDate"`
	CheckOutDate    string            `json:"checkOutDate"`
	NumberOfNights  int               `json:"numberOfNights"`
	NumberOfGuests  int               `json:"numberOfGuests"`
	SpecialRequests string            `json:"specialRequests,omitempty"`
	PriceBreakdown  PriceBreakdown    `json:"priceBreakdown"`
	Status          Status            `json:"status"`
	Payment         *PaymentInfo      `json:"payment,omitempty"`
	Cancellation    *CancellationInfo `json:"cancellation,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// ToResponse converts a stored booking into its API shape.
func ToResponse(b *Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:            b.ID,
		BookingNumber: b.BookingNumber,
		GuestInfo: GuestInfo{
			FirstName: b.GuestFirstName,
			LastName:  b.GuestLastName,
			Phone:     b.GuestPhone,
			Email:     b.GuestEmail,
		},
		HotelID:        b.HotelID,
		RoomID:         b.RoomID,
		CheckInDate:    b.CheckInDate.UTC().Format("2006-01-02"),
		CheckOutDate:   b.CheckOutDate.UTC().Format("2006-01-02"),
		NumberOfNights: b.NumberOfNights,
		NumberOfGuests: b.NumberOfGuests,
		PriceBreakdown: PriceBreakdown{
			PricePerNight:  perNight(b.RoomRate, b.NumberOfNights),
			NumberOfNights: b.NumberOfNights,
			Subtotal:       b.RoomRate,
			Taxes:          b.Taxes,
			Fees:           b.Fees,
			Total:          b.Total,
		},
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}

	if b.UserID.Valid {
		id := b.UserID.UUID
		resp.UserID = &id
	}
	if b.SpecialRequests.Valid {
		resp.SpecialRequests = b.SpecialRequests.String
	}

	if b.PaymentStatus.Valid {
		payment := &PaymentInfo{Status: PaymentStatus(b.PaymentStatus.String)}
		if b.PaymentMethod.Valid {
			payment.Method = b.PaymentMethod.String
		}
		if b.PaymentTransactionID.Valid {
			payment.TransactionID = b.PaymentTransactionID.String
		}
		if b.PaymentPaidAt.Valid {
			t := b.PaymentPaidAt.Time
			payment.PaidAt = &t
		}
		resp.Payment = payment
	}

	if b.Status == StatusCancelled && b.CancelledAt.Valid {
		cancellation := &CancellationInfo{
			CancelledAt:  b.CancelledAt.Time,
			Reason:       b.CancellationReason.String,
			RefundAmount: b.RefundAmount.Float64,
		}
		if b.RefundedAt.Valid {
			t := b.RefundedAt.Time
			cancellation.RefundedAt = &t
		}
		resp.Cancellation = cancellation
	}

	return resp
}

// ToResponses converts a booking slice into API shapes.
func ToResponses(bookings []Booking) []*BookingResponse {
	out := make([]*BookingResponse, len(bookings))
	for i := range bookings {
		out[i] = ToResponse(&bookings[i])
	}
	return out
}

func perNight(subtotal float64, nights int) float64 {
	if nights <= 0 {
		return subtotal
	}
	return subtotal / float64(nights)
}
