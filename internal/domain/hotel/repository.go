package hotel

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SearchFilter narrows the hotel search
type SearchFilter struct {
	Destination string
	CheckIn     string
	CheckOut    string
	Guests      int
	MinPrice    float64
	MaxPrice    float64
}

// Repository handles hotel database operations
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new hotel repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// GetByID returns a hotel by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Hotel, error) {
	query := `SELECT * FROM hotels WHERE id = $1 AND is_active = true`
	var h Hotel
	err := r.db.GetContext(ctx, &h, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &h, err
}

// List returns active hotels ordered by rating with the total count
func (r *Repository) List(ctx context.Context, page, limit int) ([]Hotel, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM hotels WHERE is_active = true`); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM hotels WHERE is_active = true
		ORDER BY rating DESC, name ASC
		LIMIT $1 OFFSET $2
	`
	var hotels []Hotel
	if err := r.db.SelectContext(ctx, &hotels, query, limit, (page-1)*limit); err != nil {
		return nil, 0, err
	}
	return hotels, total, nil
}

// Search returns hotels matching the filter. When a date range is given,
// only hotels with at least one room free of conflicting bookings for the
// whole range are returned.
func (r *Repository) Search(ctx context.Context, filter SearchFilter, page, limit int) ([]Hotel, int, error) {
	conditions := []string{"h.is_active = true"}
	args := []interface{}{}
	argIndex := 1

	if filter.Destination != "" {
		conditions = append(conditions, fmt.Sprintf("(h.city ILIKE $%d OR h.country ILIKE $%d OR h.name ILIKE $%d)", argIndex, argIndex, argIndex))
		args = append(args, "%"+filter.Destination+"%")
		argIndex++
	}
	if filter.MinPrice > 0 {
		conditions = append(conditions, fmt.Sprintf("h.min_price >= $%d", argIndex))
		args = append(args, filter.MinPrice)
		argIndex++
	}
	if filter.MaxPrice > 0 {
		conditions = append(conditions, fmt.Sprintf("h.min_price <= $%d", argIndex))
		args = append(args, filter.MaxPrice)
		argIndex++
	}

	roomConditions := []string{"r.hotel_id = h.id", "r.is_active = true"}
	if filter.Guests > 0 {
		roomConditions = append(roomConditions, fmt.Sprintf("r.max_guests >= $%d", argIndex))
		args = append(args, filter.Guests)
		argIndex++
	}
	if filter.CheckIn != "" && filter.CheckOut != "" {
		roomConditions = append(roomConditions, fmt.Sprintf(`NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.room_id = r.id
			  AND b.status IN ('pending', 'confirmed')
			  AND b.check_in_date < $%d
			  AND b.check_out_date > $%d
		)`, argIndex+1, argIndex))
		args = append(args, filter.CheckIn, filter.CheckOut)
		argIndex += 2
	}
	conditions = append(conditions, fmt.Sprintf("EXISTS (SELECT 1 FROM rooms r WHERE %s)", strings.Join(roomConditions, " AND ")))

	where := "WHERE " + strings.Join(conditions, " AND ")

	countQ := fmt.Sprintf("SELECT COUNT(*) FROM hotels h %s", where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQ, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT h.* FROM hotels h %s
		ORDER BY h.rating DESC, h.name ASC
		LIMIT $%d OFFSET $%d
	`, where, argIndex, argIndex+1)
	args = append(args, limit, (page-1)*limit)

	var hotels []Hotel
	if err := r.db.SelectContext(ctx, &hotels, query, args...); err != nil {
		return nil, 0, err
	}
	return hotels, total, nil
}

// AppendImageURL attaches a stored image to a hotel
func (r *Repository) AppendImageURL(ctx context.Context, id uuid.UUID, url string) error {
	query := `
		UPDATE hotels SET image_urls = array_append(image_urls, $2), updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, id, url)
	return err
}

// CreateImage registers a confirmed original for thumbnail processing
func (r *Repository) CreateImage(ctx context.Context, img *Image) error {
	query := `
		INSERT INTO hotel_images (id, hotel_id, object_key, process_status, process_attempts, created_at)
		VALUES ($1, $2, $3, 'pending', 0, NOW())
	`
	_, err := r.db.ExecContext(ctx, query, img.ID, img.HotelID, img.Key)
	return err
}

// ClaimNextImage atomically claims the oldest unprocessed image. Returns
// (nil, false, nil) when nothing is pending.
func (r *Repository) ClaimNextImage(ctx context.Context, maxAttempts int) (*Image, bool, error) {
	var img Image
	err := r.db.GetContext(ctx, &img, `
		SELECT * FROM hotel_images
		WHERE process_status IN ('pending', 'failed')
		  AND process_attempts < $1
		ORDER BY created_at ASC
		LIMIT 1
	`, maxAttempts)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE hotel_images
		SET process_status = 'processing',
		    process_attempts = process_attempts + 1,
		    process_error = NULL
		WHERE id = $1
		  AND process_status IN ('pending', 'failed')
		  AND process_attempts < $2
	`, img.ID, maxAttempts)
	if err != nil {
		return nil, false, err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return nil, false, nil
	}
	return &img, true, nil
}

// MarkImageDone records a finished thumbnail run
func (r *Repository) MarkImageDone(ctx context.Context, id uuid.UUID, width, height int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE hotel_images
		SET process_status = 'done',
		    processed_at = NOW(),
		    width = $2,
		    height = $3,
		    process_error = NULL
		WHERE id = $1
	`, id, width, height)
	return err
}

// MarkImageFailed records a failed thumbnail run
func (r *Repository) MarkImageFailed(ctx context.Context, id uuid.UUID, msg string) error {
	if len(msg) > 2000 {
		msg = msg[:2000]
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE hotel_images
		SET process_status = 'failed',
		    process_error = $2
		WHERE id = $1
	`, id, msg)
	return err
}
