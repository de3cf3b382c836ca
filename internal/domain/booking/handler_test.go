package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fala-hotels/fala-api/internal/middleware"
)

func futureCheckIn(days int) time.Time {
	return time.Now().UTC().Add(time.Duration(days) * 24 * time.Hour)
}

func stubAuth(userID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID != uuid.Nil {
				ctx := context.WithValue(r.Context(), middleware.UserIDKey, userID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func newTestRouter(store *fakeStore, userID uuid.UUID) http.Handler {
	svc := NewService(store, &fakeRooms{room: testRoom()}, nil, &fakeMailer{})
	h := NewHandler(svc)
	return h.Routes(stubAuth(userID), stubAuth(userID))
}

func postJSON(t *testing.T, router http.Handler, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshaling request: %v", err)
	}
	r := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestCreateBookingEndpoint(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(store, uuid.Nil)

	w := postJSON(t, router, "/", validCreateRequest())

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			BookingNumber string `json:"bookingNumber"`
			Status        string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if !resp.Success {
		t.Error("success = false, want true")
	}
	if len(resp.Data.BookingNumber) != 14 || resp.Data.BookingNumber[:2] != "RF" {
		t.Errorf("bookingNumber = %q", resp.Data.BookingNumber)
	}
	if resp.Data.Status != string(StatusPending) {
		t.Errorf("status = %q, want pending", resp.Data.Status)
	}
}

func TestCreateBookingEndpointValidation(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(store, uuid.Nil)

	req := validCreateRequest()
	req.CheckOutDate = req.CheckInDate

	w := postJSON(t, router, "/", req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422, body: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Errors []struct {
			Field string `json:"field"`
			Code  string `json:"code"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(resp.Errors) == 0 {
		t.Fatal("expected field errors in response")
	}
}

func TestListBookingsEndpoint(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()
	b := paidBooking(userID, futureCheckIn(20))
	store.bookings[b.ID] = b
	router := newTestRouter(store, userID)

	r := httptest.NewRequest(http.MethodGet, "/my-bookings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Bookings   []json.RawMessage `json:"bookings"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(resp.Bookings) != 1 || resp.Pagination.Total != 1 {
		t.Errorf("got %d bookings, total %d, want 1/1", len(resp.Bookings), resp.Pagination.Total)
	}
}

func TestListBookingsRejectsBadFilter(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(store, uuid.New())

	r := httptest.NewRequest(http.MethodGet, "/my-bookings?status=bogus", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422, body: %s", w.Code, w.Body.String())
	}
}

func TestListBookingsRequiresAuth(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(store, uuid.Nil)

	r := httptest.NewRequest(http.MethodGet, "/my-bookings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestSearchByNumberEndpoint(t *testing.T) {
	store := newFakeStore()
	b := paidBooking(uuid.UUID{}, futureCheckIn(20))
	b.UserID = uuid.NullUUID{}
	b.GuestEmail = "ana@example.com"
	store.bookings[b.ID] = b
	router := newTestRouter(store, uuid.Nil)

	r := httptest.NewRequest(http.MethodGet, "/search/"+b.BookingNumber+"?email="+b.GuestEmail, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	r = httptest.NewRequest(http.MethodGet, "/search/"+b.BookingNumber+"?email=other@example.com", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for wrong email", w.Code)
	}
}

func TestCancelEndpointRequiresAuth(t *testing.T) {
	store := newFakeStore()
	b := paidBooking(uuid.New(), futureCheckIn(20))
	store.bookings[b.ID] = b
	router := newTestRouter(store, uuid.Nil)

	r := httptest.NewRequest(http.MethodPatch, "/"+b.ID.String()+"/cancel", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
