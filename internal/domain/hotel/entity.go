package hotel

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Hotel represents a bookable property
type Hotel struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	Name         string         `db:"name" json:"name"`
	Description  sql.NullString `db:"description" json:"-"`
	Address      string         `db:"address" json:"address"`
	City         string         `db:"city" json:"city"`
	Country      string         `db:"country" json:"country"`
	Stars        int            `db:"stars" json:"stars"`
	Rating       float64        `db:"rating" json:"rating"`
	ReviewCount  int            `db:"review_count" json:"reviewCount"`
	Amenities    pq.StringArray `db:"amenities" json:"amenities"`
	ImageURLs    pq.StringArray `db:"image_urls" json:"imageUrls"`
	CheckInTime  string         `db:"check_in_time" json:"checkInTime"`
	CheckOutTime string         `db:"check_out_time" json:"checkOutTime"`
	MinPrice     float64        `db:"min_price" json:"minPricePerNight"`
	IsActive     bool           `db:"is_active" json:"-"`
	CreatedAt    time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updatedAt"`
}

// Image is one uploaded hotel image awaiting or finished thumbnail
// processing. Originals land via presigned upload; the worker claims rows
// with process_status pending or failed.
type Image struct {
	ID              uuid.UUID      `db:"id"`
	HotelID         uuid.UUID      `db:"hotel_id"`
	Key             string         `db:"object_key"`
	ProcessStatus   string         `db:"process_status"`
	ProcessAttempts int            `db:"process_attempts"`
	ProcessError    sql.NullString `db:"process_error"`
	Width           sql.NullInt64  `db:"width"`
	Height          sql.NullInt64  `db:"height"`
	CreatedAt       time.Time      `db:"created_at"`
	ProcessedAt     sql.NullTime   `db:"processed_at"`
}

// Response is the API shape of a hotel
type Response struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	Country      string    `json:"country"`
	Stars        int       `json:"stars"`
	Rating       float64   `json:"rating"`
	ReviewCount  int       `json:"reviewCount"`
	Amenities    []string  `json:"amenities"`
	ImageURLs    []string  `json:"imageUrls"`
	CheckInTime  string    `json:"checkInTime"`
	CheckOutTime string    `json:"checkOutTime"`
	MinPrice     float64   `json:"minPricePerNight"`
}

// ToResponse converts a hotel into its API shape
func ToResponse(h *Hotel) *Response {
	resp := &Response{
		ID:           h.ID,
		Name:         h.Name,
		Address:      h.Address,
		City:         h.City,
		Country:      h.Country,
		Stars:        h.Stars,
		Rating:       h.Rating,
		ReviewCount:  h.ReviewCount,
		Amenities:    h.Amenities,
		ImageURLs:    h.ImageURLs,
		CheckInTime:  h.CheckInTime,
		CheckOutTime: h.CheckOutTime,
		MinPrice:     h.MinPrice,
	}
	if h.Description.Valid {
		resp.Description = h.Description.String
	}
	if resp.Amenities == nil {
		resp.Amenities = []string{}
	}
	if resp.ImageURLs == nil {
		resp.ImageURLs = []string{}
	}
	return resp
}

// ToResponses converts a hotel slice into API shapes
func ToResponses(hotels []Hotel) []*Response {
	out := make([]*Response, len(hotels))
	for i := range hotels {
		out[i] = ToResponse(&hotels[i])
	}
	return out
}
