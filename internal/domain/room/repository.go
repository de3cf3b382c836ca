package room

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository handles room database operations
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new room repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// GetByID returns a room by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	query := `SELECT * FROM rooms WHERE id = $1 AND is_active = true`
	var room Room
	err := r.db.GetContext(ctx, &room, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &room, err
}

// ListByHotel returns active rooms of a hotel, cheapest first
func (r *Repository) ListByHotel(ctx context.Context, hotelID uuid.UUID) ([]Room, error) {
	query := `
		SELECT * FROM rooms
		WHERE hotel_id = $1 AND is_active = true
		ORDER BY price_per_night ASC, name ASC
	`
	var rooms []Room
	err := r.db.SelectContext(ctx, &rooms, query, hotelID)
	return rooms, err
}

// ListAvailable returns rooms of a hotel free of conflicting bookings for
// [checkIn, checkOut) with capacity for the guest count
func (r *Repository) ListAvailable(ctx context.Context, hotelID uuid.UUID, checkIn, checkOut string, guests int) ([]Room, error) {
	query := `
		SELECT * FROM rooms r
		WHERE r.hotel_id = $1
		  AND r.is_active = true
		  AND r.max_guests >= $4
		  AND NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.room_id = r.id
			  AND b.status IN ('pending', 'confirmed')
			  AND b.check_in_date < $3
			  AND b.check_out_date > $2
		  )
		ORDER BY r.price_per_night ASC, r.name ASC
	`
	var rooms []Room
	err := r.db.SelectContext(ctx, &rooms, query, hotelID, checkIn, checkOut, guests)
	return rooms, err
}
