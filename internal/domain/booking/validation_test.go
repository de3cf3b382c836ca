package booking

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func validCreateRequest() *CreateBookingRequest {
	return &CreateBookingRequest{
		GuestInfo: GuestInfo{
			FirstName: "María",
			LastName:  "Gómez",
			Phone:     "+57 300 123 4567",
			Email:     "Maria.Gomez@Example.com",
		},
		HotelID:        "a2f1c9e0-5b7d-4c3a-9e8f-1d2c3b4a5f6e",
		RoomID:         "b3e2d0f1-6c8e-5d4b-af9e-2e3d4c5b6a7f",
		CheckInDate:    "2026-04-10",
		CheckOutDate:   "2026-04-13",
		NumberOfGuests: 2,
	}
}

func findError(errs ValidationErrors, field string) *FieldError {
	for i := range errs {
		if errs[i].Field == field {
			return &errs[i]
		}
	}
	return nil
}

func TestValidateCreate_Valid(t *testing.T) {
	payload, errs := ValidateCreate(validCreateRequest())
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if payload.Nights != 3 {
		t.Fatalf("nights: got %d, want 3", payload.Nights)
	}
	if payload.Email != "maria.gomez@example.com" {
		t.Fatalf("email not lower-cased: %s", payload.Email)
	}
	if payload.Phone != "3001234567" {
		t.Fatalf("phone not normalized: %s", payload.Phone)
	}
	if payload.CheckInDate != "2026-04-10" || payload.CheckOutDate != "2026-04-13" {
		t.Fatalf("dates not normalized: %s / %s", payload.CheckInDate, payload.CheckOutDate)
	}
	if payload.HotelID == uuid.Nil || payload.RoomID == uuid.Nil {
		t.Fatal("references not parsed")
	}
}

func TestValidateCreate_CheckOutEqualsCheckIn(t *testing.T) {
	req := validCreateRequest()
	req.CheckOutDate = req.CheckInDate

	_, errs := ValidateCreate(req)
	fe := findError(errs, "checkOutDate")
	if fe == nil {
		t.Fatal("expected checkOutDate error")
	}
	if fe.Code != "DATE_ORDER" {
		t.Fatalf("code: got %s, want DATE_ORDER", fe.Code)
	}
}

func TestValidateCreate_OneNightAccepted(t *testing.T) {
	req := validCreateRequest()
	req.CheckInDate = "2026-04-10"
	req.CheckOutDate = "2026-04-11"

	payload, errs := ValidateCreate(req)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if payload.Nights != 1 {
		t.Fatalf("nights: got %d, want 1", payload.Nights)
	}
}

func TestValidateCreate_GuestBounds(t *testing.T) {
	req := validCreateRequest()
	req.NumberOfGuests = 9
	if _, errs := ValidateCreate(req); findError(errs, "numberOfGuests") == nil {
		t.Fatal("9 guests should be rejected")
	}

	req.NumberOfGuests = 0
	if _, errs := ValidateCreate(req); findError(errs, "numberOfGuests") == nil {
		t.Fatal("0 guests should be rejected")
	}

	req.NumberOfGuests = 8
	if _, errs := ValidateCreate(req); findError(errs, "numberOfGuests") != nil {
		t.Fatal("8 guests should be accepted")
	}
	req.NumberOfGuests = 1
	if _, errs := ValidateCreate(req); findError(errs, "numberOfGuests") != nil {
		t.Fatal("1 guest should be accepted")
	}
}

func TestValidateCreate_MissingFields(t *testing.T) {
	_, errs := ValidateCreate(&CreateBookingRequest{NumberOfGuests: 2})

	for _, field := range []string{"hotelId", "roomId", "checkInDate", "checkOutDate", "firstName", "lastName", "email", "phone"} {
		fe := findError(errs, field)
		if fe == nil {
			t.Fatalf("expected error for %s", field)
		}
		if fe.Code != "REQUIRED" {
			t.Fatalf("%s code: got %s, want REQUIRED", field, fe.Code)
		}
	}
}

func TestValidateCreate_BadReferences(t *testing.T) {
	req := validCreateRequest()
	req.HotelID = "hotel-1"
	req.RoomID = "not-a-uuid"

	_, errs := ValidateCreate(req)
	if fe := findError(errs, "hotelId"); fe == nil || fe.Code != "INVALID_REFERENCE" {
		t.Fatalf("hotelId: got %+v, want INVALID_REFERENCE", fe)
	}
	if fe := findError(errs, "roomId"); fe == nil || fe.Code != "INVALID_REFERENCE" {
		t.Fatalf("roomId: got %+v, want INVALID_REFERENCE", fe)
	}
}

func TestValidateCreate_BadDates(t *testing.T) {
	req := validCreateRequest()
	req.CheckInDate = "10/04/2026"

	_, errs := ValidateCreate(req)
	if fe := findError(errs, "checkInDate"); fe == nil || fe.Code != "INVALID_DATE" {
		t.Fatalf("checkInDate: got %+v, want INVALID_DATE", fe)
	}
}

func TestValidateCreate_Email(t *testing.T) {
	bad := []string{"plainaddress", "missing@tld", "two@@example.com", "spaces in@example.com"}
	for _, email := range bad {
		req := validCreateRequest()
		req.GuestInfo.Email = email
		if _, errs := ValidateCreate(req); findError(errs, "email") == nil {
			t.Fatalf("%q should be rejected", email)
		}
	}

	req := validCreateRequest()
	req.GuestInfo.Email = "ok@mail.co.uk"
	if _, errs := ValidateCreate(req); findError(errs, "email") != nil {
		t.Fatal("valid email rejected")
	}
}

func TestValidateCreate_SpecialRequestsLimit(t *testing.T) {
	req := validCreateRequest()
	req.SpecialRequests = strings.Repeat("a", 501)
	if _, errs := ValidateCreate(req); findError(errs, "specialRequests") == nil {
		t.Fatal("501 characters should be rejected")
	}

	req.SpecialRequests = strings.Repeat("a", 500)
	if _, errs := ValidateCreate(req); findError(errs, "specialRequests") != nil {
		t.Fatal("500 characters should be accepted")
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+57 300 123 4567", "3001234567"},
		{"573001234567", "3001234567"},
		{"(300) 123-4567", "3001234567"},
		{"3001234567", "3001234567"},
		// short numbers beginning with 57 keep their digits
		{"5712345", "5712345"},
	}
	for _, tt := range tests {
		if got := normalizePhone(tt.in); got != tt.want {
			t.Fatalf("normalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
