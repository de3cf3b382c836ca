package room

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Type is the room category
type Type string

const (
	TypeSingle1  Type = "single-1"
	TypeSingle2  Type = "single-2"
	TypeSingle3  Type = "single-3"
	TypeSuite    Type = "suite"
	TypeSuiteKid Type = "suite-kid"
)

// IsValid reports whether t is a known room type.
func (t Type) IsValid() bool {
	switch t {
	case TypeSingle1, TypeSingle2, TypeSingle3, TypeSuite, TypeSuiteKid:
		return true
	}
	return false
}

// Room represents one bookable room of a hotel
type Room struct {
	ID            uuid.UUID      `db:"id"`
	HotelID       uuid.UUID      `db:"hotel_id"`
	Name          string         `db:"name"`
	Type          Type           `db:"room_type"`
	Description   sql.NullString `db:"description"`
	PricePerNight float64        `db:"price_per_night"`
	MaxGuests     int            `db:"max_guests"`
	SizeM2        sql.NullInt64  `db:"size_m2"`
	BedDetails    sql.NullString `db:"bed_details"`
	Amenities     pq.StringArray `db:"amenities"`
	ImageURLs     pq.StringArray `db:"image_urls"`
	IsActive      bool           `db:"is_active"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// Response is the API shape of a room
type Response struct {
	ID            uuid.UUID `json:"id"`
	HotelID       uuid.UUID `json:"hotelId"`
	Name          string    `json:"name"`
	Type          Type      `json:"type"`
	Description   string    `json:"description,omitempty"`
	PricePerNight float64   `json:"pricePerNight"`
	MaxGuests     int       `json:"maxGuests"`
	SizeM2        int       `json:"sizeM2,omitempty"`
	BedDetails    string    `json:"bedDetails,omitempty"`
	Amenities     []string  `json:"amenities"`
	ImageURLs     []string  `json:"imageUrls"`
}

// ToResponse converts a room into its API shape
func ToResponse(r *Room) *Response {
	resp := &Response{
		ID:            r.ID,
		HotelID:       r.HotelID,
		Name:          r.Name,
		Type:          r.Type,
		PricePerNight: r.PricePerNight,
		MaxGuests:     r.MaxGuests,
		Amenities:     r.Amenities,
		ImageURLs:     r.ImageURLs,
	}
	if r.Description.Valid {
		resp.Description = r.Description.String
	}
	if r.SizeM2.Valid {
		resp.SizeM2 = int(r.SizeM2.Int64)
	}
	if r.BedDetails.Valid {
		resp.BedDetails = r.BedDetails.String
	}
	if resp.Amenities == nil {
		resp.Amenities = []string{}
	}
	if resp.ImageURLs == nil {
		resp.ImageURLs = []string{}
	}
	return resp
}

// ToResponses converts a room slice into API shapes
func ToResponses(rooms []Room) []*Response {
	out := make([]*Response, len(rooms))
	for i := range rooms {
		out[i] = ToResponse(&rooms[i])
	}
	return out
}
