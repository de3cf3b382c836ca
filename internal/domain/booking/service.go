package booking

import (
	"context"
	"database/sql"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fala-hotels/fala-api/internal/pkg/dateutil"
	"github.com/fala-hotels/fala-api/internal/pkg/metrics"
)

// RoomInfo is the room snapshot the booking flow needs from the room domain.
type RoomInfo struct {
	ID            uuid.UUID
	HotelID       uuid.UUID
	Name          string
	Type          string
	PricePerNight float64
	MaxGuests     int
	IsActive      bool
}

// RoomProvider resolves rooms for availability and pricing.
type RoomProvider interface {
	GetRoomInfo(ctx context.Context, roomID uuid.UUID) (*RoomInfo, error)
}

// Mailer sends booking lifecycle emails.
type Mailer interface {
	SendBookingConfirmation(ctx context.Context, b *Booking) error
	SendBookingCancellation(ctx context.Context, b *Booking, quote RefundQuote) error
}

// Store is the persistence surface the service needs. Satisfied by
// *Repository; an interface for mocking in tests.
type Store interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByNumber(ctx context.Context, number string) (*Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params ListParams) ([]Booking, int, error)
	HasDateConflict(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (bool, error)
	Cancel(ctx context.Context, id uuid.UUID, reason string, refundAmount float64, refunded bool) error
}

// Service handles booking business logic
type Service struct {
	repo   Store
	rooms  RoomProvider
	cache  *Cache
	mailer Mailer
}

// NewService creates a new booking service. cache and mailer may be nil.
func NewService(repo Store, rooms RoomProvider, cache *Cache, mailer Mailer) *Service {
	return &Service{
		repo:   repo,
		rooms:  rooms,
		cache:  cache,
		mailer: mailer,
	}
}

// Create validates and persists a new booking. The price is always recomputed
// server-side; a client TotalPrice that disagrees is logged and ignored.
func (s *Service) Create(ctx context.Context, userID *uuid.UUID, req *CreateBookingRequest) (*BookingResponse, error) {
	payload, verrs := ValidateCreate(req)
	if len(verrs) > 0 {
		return nil, verrs
	}

	room, err := s.rooms.GetRoomInfo(ctx, payload.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil || !room.IsActive {
		return nil, ErrRoomNotFound
	}
	if room.HotelID != payload.HotelID {
		return nil, ErrHotelNotFound
	}
	if room.MaxGuests > 0 && payload.NumberOfGuests > room.MaxGuests {
		return nil, ValidationErrors{{
			Field:   "numberOfGuests",
			Message: "The room does not fit that many guests",
			Code:    "OUT_OF_RANGE",
		}}
	}

	checkIn, _ := time.Parse(time.RFC3339, dateutil.NormalizeDate(payload.CheckInDate))
	checkOut, _ := time.Parse(time.RFC3339, dateutil.NormalizeDate(payload.CheckOutDate))

	conflict, err := s.repo.HasDateConflict(ctx, room.ID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrRoomNotAvailable
	}

	price := ComputePrice(room.PricePerNight, payload.Nights)
	if req.TotalPrice > 0 && math.Abs(req.TotalPrice-price.Total) > 0.01 {
		log.Warn().
			Float64("client_total", req.TotalPrice).
			Float64("server_total", price.Total).
			Str("room_id", room.ID.String()).
			Msg("client price estimate diverged, using server price")
	}

	now := time.Now().UTC()
	b := &Booking{
		ID:             uuid.New(),
		BookingNumber:  GenerateBookingNumber(),
		GuestFirstName: payload.FirstName,
		GuestLastName:  payload.LastName,
		GuestPhone:     payload.Phone,
		GuestEmail:     payload.Email,
		HotelID:        payload.HotelID,
		RoomID:         room.ID,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		NumberOfNights: payload.Nights,
		NumberOfGuests: payload.NumberOfGuests,
		RoomRate:       price.Subtotal,
		Taxes:          price.Taxes,
		Fees:           price.Fees,
		Total:          price.Total,
		Status:         StatusPending,
		PaymentStatus:  sql.NullString{String: string(PaymentPending), Valid: true},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if userID != nil {
		b.UserID = uuid.NullUUID{UUID: *userID, Valid: true}
	}
	if payload.SpecialRequests != "" {
		b.SpecialRequests = sql.NullString{String: payload.SpecialRequests, Valid: true}
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	metrics.IncBookingCreated()
	log.Info().
		Str("booking_number", b.BookingNumber).
		Str("room_id", room.ID.String()).
		Int("nights", b.NumberOfNights).
		Msg("booking created")

	if s.mailer != nil {
		booking := *b
		go func() {
			bgCtx := context.Background()
			if err := s.mailer.SendBookingConfirmation(bgCtx, &booking); err != nil {
				log.Error().Err(err).Str("booking_number", booking.BookingNumber).Msg("confirmation email failed")
			}
		}()
	}

	if userID != nil {
		s.refreshListCache(ctx, *userID)
	}

	return ToResponse(b), nil
}

// GetByID returns one of the caller's bookings
func (s *Service) GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*BookingResponse, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	if !s.owns(b, userID) {
		return nil, ErrNotBookingOwner
	}
	return ToResponse(b), nil
}

// GetByNumber looks a booking up by its public number. Guest bookings require
// the matching guest email; account bookings require the owning user.
func (s *Service) GetByNumber(ctx context.Context, number, email string, userID *uuid.UUID) (*BookingResponse, error) {
	b, err := s.repo.GetByNumber(ctx, strings.ToUpper(strings.TrimSpace(number)))
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	if b.UserID.Valid {
		if userID == nil || *userID != b.UserID.UUID {
			return nil, ErrNotBookingOwner
		}
	} else if !strings.EqualFold(strings.TrimSpace(email), b.GuestEmail) {
		return nil, ErrBookingNotFound
	}
	return ToResponse(b), nil
}

// List returns the caller's bookings with pagination. The unfiltered first
// page is served from cache when available.
func (s *Service) List(ctx context.Context, userID uuid.UUID, params ListParams) ([]*BookingResponse, int, error) {
	if params.IsDefault() {
		if bookings, total, ok := s.cache.GetList(ctx, userID); ok {
			return ToResponses(bookings), total, nil
		}
	}

	bookings, total, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, 0, err
	}

	if params.IsDefault() {
		s.cache.SetList(ctx, userID, bookings, total)
	}
	return ToResponses(bookings), total, nil
}

// Cancel cancels a booking and computes the refund per the cancellation
// policy tiers. Only pending or confirmed bookings with a future check-in
// can be cancelled.
func (s *Service) Cancel(ctx context.Context, userID uuid.UUID, id uuid.UUID, reason string) (*BookingResponse, *RefundQuote, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if b == nil {
		return nil, nil, ErrBookingNotFound
	}
	if !s.owns(b, userID) {
		return nil, nil, ErrNotBookingOwner
	}

	now := time.Now().UTC()
	if !CanCancel(b, now) {
		return nil, nil, ErrCannotCancel
	}

	paid := b.PaymentStatus.Valid && b.PaymentStatus.String == string(PaymentPaid)
	totalPaid := 0.0
	if paid {
		totalPaid = b.Total
	}
	quote := ComputeRefund(totalPaid, b.CheckInDate, now)

	refunded := paid && quote.NetRefund > 0
	if err := s.repo.Cancel(ctx, id, reason, quote.NetRefund, refunded); err != nil {
		return nil, nil, err
	}

	metrics.IncBookingCancelled(quote.NetRefund)
	log.Info().
		Str("booking_number", b.BookingNumber).
		Int("days_until_check_in", quote.DaysUntilCheckIn).
		Float64("net_refund", quote.NetRefund).
		Msg("booking cancelled")

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if s.mailer != nil {
		booking := *updated
		q := quote
		go func() {
			bgCtx := context.Background()
			if err := s.mailer.SendBookingCancellation(bgCtx, &booking, q); err != nil {
				log.Error().Err(err).Str("booking_number", booking.BookingNumber).Msg("cancellation email failed")
			}
		}()
	}

	s.refreshListCache(ctx, userID)

	return ToResponse(updated), &quote, nil
}

// ResendConfirmation re-sends the confirmation email for an active booking
func (s *Service) ResendConfirmation(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrBookingNotFound
	}
	if !s.owns(b, userID) {
		return ErrNotBookingOwner
	}
	if !CanResendConfirmation(b) {
		return ErrCannotResend
	}
	if s.mailer == nil {
		return nil
	}
	return s.mailer.SendBookingConfirmation(ctx, b)
}

// CalculatePrice returns the authoritative price for a prospective stay
// without creating a booking.
func (s *Service) CalculatePrice(ctx context.Context, req *PriceRequest) (*PriceBreakdown, error) {
	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return nil, ErrRoomNotFound
	}
	hotelID, err := uuid.Parse(req.HotelID)
	if err != nil {
		return nil, ErrHotelNotFound
	}

	checkIn := dateutil.NormalizeDate(req.CheckInDate)
	checkOut := dateutil.NormalizeDate(req.CheckOutDate)
	if checkIn == "" || checkOut == "" {
		return nil, ValidationErrors{{Field: "checkInDate", Message: "Dates are not valid", Code: "INVALID_DATE"}}
	}
	nights := dateutil.DiffInNights(checkIn, checkOut)
	if nights <= 0 {
		return nil, ValidationErrors{{Field: "checkOutDate", Message: "Check-out must be after check-in", Code: "DATE_ORDER"}}
	}

	room, err := s.rooms.GetRoomInfo(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil || !room.IsActive {
		return nil, ErrRoomNotFound
	}
	if room.HotelID != hotelID {
		return nil, ErrHotelNotFound
	}

	price := ComputePrice(room.PricePerNight, nights)
	return &price, nil
}

func (s *Service) owns(b *Booking, userID uuid.UUID) bool {
	return b.UserID.Valid && b.UserID.UUID == userID
}

// refreshListCache re-warms the cached default list after a write so the
// user's next "my bookings" read reflects the change immediately.
func (s *Service) refreshListCache(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	bookings, total, err := s.repo.ListByUser(ctx, userID, ListParams{Page: 1, Limit: 10})
	if err != nil {
		s.cache.Invalidate(ctx, userID)
		return
	}
	s.cache.SetList(ctx, userID, bookings, total)
}
