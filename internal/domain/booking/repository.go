package booking

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository handles booking database operations
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new booking repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new booking
func (r *Repository) Create(ctx context.Context, b *Booking) error {
	query := `
		INSERT INTO bookings (
			id, booking_number, user_id,
			guest_first_name, guest_last_name, guest_phone, guest_email,
			hotel_id, room_id, check_in_date, check_out_date,
			number_of_nights, number_of_guests, special_requests,
			room_rate, taxes, fees, total,
			status, payment_status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22
		)
	`
	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.BookingNumber,
		b.UserID,
		b.GuestFirstName,
		b.GuestLastName,
		b.GuestPhone,
		b.GuestEmail,
		b.HotelID,
		b.RoomID,
		b.CheckInDate,
		b.CheckOutDate,
		b.NumberOfNights,
		b.NumberOfGuests,
		b.SpecialRequests,
		b.RoomRate,
		b.Taxes,
		b.Fees,
		b.Total,
		b.Status,
		b.PaymentStatus,
		b.CreatedAt,
		b.UpdatedAt,
	)
	return err
}

// GetByID returns a booking by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	query := `SELECT * FROM bookings WHERE id = $1`
	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &b, err
}

// GetByNumber returns a booking by its public booking number
func (r *Repository) GetByNumber(ctx context.Context, number string) (*Booking, error) {
	query := `SELECT * FROM bookings WHERE booking_number = $1`
	var b Booking
	err := r.db.GetContext(ctx, &b, query, number)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &b, err
}

// ListByUser returns a user's bookings, newest first, with the total count
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, params ListParams) ([]Booking, int, error) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{userID}
	argIndex := 2

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, params.Status)
		argIndex++
	}
	if params.PaymentStatus != "" {
		conditions = append(conditions, fmt.Sprintf("payment_status = $%d", argIndex))
		args = append(args, params.PaymentStatus)
		argIndex++
	}
	if params.BookingNumber != "" {
		conditions = append(conditions, fmt.Sprintf("booking_number ILIKE $%d", argIndex))
		args = append(args, "%"+params.BookingNumber+"%")
		argIndex++
	}
	if params.DateFrom != "" {
		conditions = append(conditions, fmt.Sprintf("check_in_date >= $%d", argIndex))
		args = append(args, params.DateFrom)
		argIndex++
	}
	if params.DateTo != "" {
		conditions = append(conditions, fmt.Sprintf("check_in_date <= $%d", argIndex))
		args = append(args, params.DateTo)
		argIndex++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	countQ := fmt.Sprintf("SELECT COUNT(*) FROM bookings %s", where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQ, args...); err != nil {
		return nil, 0, err
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(`
		SELECT * FROM bookings %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argIndex, argIndex+1)
	args = append(args, limit, offset)

	var bookings []Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// HasDateConflict reports whether the room already holds an active booking
// overlapping [checkIn, checkOut). Cancelled and no-show bookings do not block.
func (r *Repository) HasDateConflict(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE room_id = $1
			  AND status IN ('pending', 'confirmed')
			  AND check_in_date < $3
			  AND check_out_date > $2
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, roomID, checkIn, checkOut)
	return exists, err
}

// Cancel marks a booking cancelled and records the refund outcome
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID, reason string, refundAmount float64, refunded bool) error {
	query := `
		UPDATE bookings SET
			status = 'cancelled',
			cancelled_at = NOW(),
			cancellation_reason = $2,
			refund_amount = $3,
			refunded_at = CASE WHEN $4 THEN NOW() ELSE NULL END,
			payment_status = CASE WHEN $4 THEN 'refunded' ELSE payment_status END,
			updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, id, reason, refundAmount, refunded)
	return err
}

// ConfirmPaid promotes pending bookings whose payment settled to confirmed
// and returns how many rows changed
func (r *Repository) ConfirmPaid(ctx context.Context) (int64, error) {
	query := `
		UPDATE bookings SET status = 'confirmed', updated_at = NOW()
		WHERE status = 'pending' AND payment_status = 'paid'`
	res, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CompletePastStays moves confirmed bookings whose stay has ended to completed
// and returns how many rows changed
func (r *Repository) CompletePastStays(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE bookings SET status = 'completed', updated_at = NOW()
		WHERE status = 'confirmed' AND check_out_date <= $1
	`
	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// MarkNoShows flags confirmed bookings whose check-in passed without payment
// and returns how many rows changed
func (r *Repository) MarkNoShows(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE bookings SET status = 'no_show', updated_at = NOW()
		WHERE status = 'confirmed'
		  AND check_in_date <= $1
		  AND check_out_date > $1
		  AND (payment_status IS NULL OR payment_status = 'pending')
	`
	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
