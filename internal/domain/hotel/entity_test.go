package hotel

import (
	"database/sql"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

func TestToResponse(t *testing.T) {
	h := &Hotel{
		ID:          uuid.New(),
		Name:        "Hotel Fala Cartagena",
		Description: sql.NullString{String: "Frente a la bahía", Valid: true},
		City:        "Cartagena",
		Country:     "Colombia",
		Stars:       5,
		Rating:      4.7,
		ReviewCount: 208,
		Amenities:   pq.StringArray{"wifi", "pool"},
		MinPrice:    320000,
	}

	resp := ToResponse(h)

	if resp.Description != "Frente a la bahía" {
		t.Errorf("description = %q", resp.Description)
	}
	if len(resp.Amenities) != 2 {
		t.Errorf("amenities = %v", resp.Amenities)
	}
	if resp.ImageURLs == nil {
		t.Error("nil image urls must map to an empty array")
	}
}

func TestToResponseJSONShape(t *testing.T) {
	h := &Hotel{ID: uuid.New(), Name: "Hotel Fala Bogotá", City: "Bogotá", Country: "Colombia", MinPrice: 180000}

	raw, err := json.Marshal(ToResponse(h))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)

	if !strings.Contains(body, `"minPricePerNight":180000`) {
		t.Errorf("minPricePerNight missing: %s", body)
	}
	if !strings.Contains(body, `"imageUrls":[]`) {
		t.Errorf("imageUrls should render as []: %s", body)
	}
}
