package booking

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeStore struct {
	bookings     map[uuid.UUID]*Booking
	conflict     bool
	created      *Booking
	cancelCalled bool
	cancelRefund float64
	cancelPaid   bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{bookings: make(map[uuid.UUID]*Booking)}
}

func (f *fakeStore) Create(ctx context.Context, b *Booking) error {
	f.created = b
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return f.bookings[id], nil
}

func (f *fakeStore) GetByNumber(ctx context.Context, number string) (*Booking, error) {
	for _, b := range f.bookings {
		if b.BookingNumber == number {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListByUser(ctx context.Context, userID uuid.UUID, params ListParams) ([]Booking, int, error) {
	var out []Booking
	for _, b := range f.bookings {
		if b.UserID.Valid && b.UserID.UUID == userID {
			out = append(out, *b)
		}
	}
	return out, len(out), nil
}

func (f *fakeStore) HasDateConflict(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (bool, error) {
	return f.conflict, nil
}

func (f *fakeStore) Cancel(ctx context.Context, id uuid.UUID, reason string, refundAmount float64, refunded bool) error {
	f.cancelCalled = true
	f.cancelRefund = refundAmount
	f.cancelPaid = refunded
	b := f.bookings[id]
	b.Status = StatusCancelled
	b.CancelledAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
	b.CancellationReason = sql.NullString{String: reason, Valid: true}
	b.RefundAmount = sql.NullFloat64{Float64: refundAmount, Valid: true}
	if refunded {
		b.RefundedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
		b.PaymentStatus = sql.NullString{String: string(PaymentRefunded), Valid: true}
	}
	return nil
}

type fakeRooms struct {
	room *RoomInfo
}

func (f *fakeRooms) GetRoomInfo(ctx context.Context, roomID uuid.UUID) (*RoomInfo, error) {
	if f.room != nil && f.room.ID == roomID {
		return f.room, nil
	}
	return nil, nil
}

type fakeMailer struct {
	confirmations int
	cancellations int
	err           error
}

func (f *fakeMailer) SendBookingConfirmation(ctx context.Context, b *Booking) error {
	f.confirmations++
	return f.err
}

func (f *fakeMailer) SendBookingCancellation(ctx context.Context, b *Booking, quote RefundQuote) error {
	f.cancellations++
	return f.err
}

func testRoom() *RoomInfo {
	return &RoomInfo{
		ID:            uuid.MustParse("b3e2d0f1-6c8e-5d4b-af9e-2e3d4c5b6a7f"),
		HotelID:       uuid.MustParse("a2f1c9e0-5b7d-4c3a-9e8f-1d2c3b4a5f6e"),
		Name:          "Suite 301",
		Type:          "suite",
		PricePerNight: 200000,
		MaxGuests:     4,
		IsActive:      true,
	}
}

func TestServiceCreate(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeRooms{room: testRoom()}, nil, nil)

	userID := uuid.New()
	resp, err := svc.Create(context.Background(), &userID, validCreateRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.created == nil {
		t.Fatal("booking was not persisted")
	}
	if resp.Status != StatusPending {
		t.Fatalf("status: got %s, want pending", resp.Status)
	}
	if resp.BookingNumber[:2] != "RF" {
		t.Fatalf("booking number: got %s", resp.BookingNumber)
	}
	if resp.UserID == nil || *resp.UserID != userID {
		t.Fatal("booking not attributed to user")
	}

	// 3 nights at 200000: subtotal 600000, 19% taxes, 5% fee
	pb := resp.PriceBreakdown
	if !approxEq(pb.Subtotal, 600000) || !approxEq(pb.Taxes, 114000) || !approxEq(pb.Fees, 30000) || !approxEq(pb.Total, 744000) {
		t.Fatalf("unexpected price breakdown: %+v", pb)
	}
}

func TestServiceCreate_IgnoresClientPrice(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeRooms{room: testRoom()}, nil, nil)

	req := validCreateRequest()
	req.TotalPrice = 1

	resp, err := svc.Create(context.Background(), nil, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approxEq(resp.PriceBreakdown.Total, 744000) {
		t.Fatalf("server price not authoritative: %+v", resp.PriceBreakdown)
	}
}

func TestServiceCreate_GuestWithoutAccount(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeRooms{room: testRoom()}, nil, nil)

	resp, err := svc.Create(context.Background(), nil, validCreateRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.UserID != nil {
		t.Fatal("guest booking should have no user")
	}
}

func TestServiceCreate_RoomConflict(t *testing.T) {
	store := newFakeStore()
	store.conflict = true
	svc := NewService(store, &fakeRooms{room: testRoom()}, nil, nil)

	_, err := svc.Create(context.Background(), nil, validCreateRequest())
	if !errors.Is(err, ErrRoomNotAvailable) {
		t.Fatalf("got %v, want ErrRoomNotAvailable", err)
	}
}

func TestServiceCreate_UnknownRoom(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeRooms{}, nil, nil)

	_, err := svc.Create(context.Background(), nil, validCreateRequest())
	if !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("got %v, want ErrRoomNotFound", err)
	}
}

func TestServiceCreate_HotelMismatch(t *testing.T) {
	room := testRoom()
	room.HotelID = uuid.New()
	svc := NewService(newFakeStore(), &fakeRooms{room: room}, nil, nil)

	_, err := svc.Create(context.Background(), nil, validCreateRequest())
	if !errors.Is(err, ErrHotelNotFound) {
		t.Fatalf("got %v, want ErrHotelNotFound", err)
	}
}

func TestServiceCreate_RoomCapacity(t *testing.T) {
	room := testRoom()
	room.MaxGuests = 2
	svc := NewService(newFakeStore(), &fakeRooms{room: room}, nil, nil)

	req := validCreateRequest()
	req.NumberOfGuests = 3

	_, err := svc.Create(context.Background(), nil, req)
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("got %v, want validation errors", err)
	}
	if findError(verrs, "numberOfGuests") == nil {
		t.Fatalf("expected numberOfGuests error, got %v", verrs)
	}
}

func TestServiceCreate_ValidationFailure(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeRooms{room: testRoom()}, nil, nil)

	req := validCreateRequest()
	req.GuestInfo.Email = "not-an-email"

	_, err := svc.Create(context.Background(), nil, req)
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("got %v, want validation errors", err)
	}
	if store.created != nil {
		t.Fatal("invalid booking must not be persisted")
	}
}

func paidBooking(userID uuid.UUID, checkIn time.Time) *Booking {
	return &Booking{
		ID:            uuid.New(),
		BookingNumber: "RF12345678ABCD",
		UserID:        uuid.NullUUID{UUID: userID, Valid: true},
		CheckInDate:   checkIn,
		CheckOutDate:  checkIn.Add(3 * 24 * time.Hour),
		Status:        StatusConfirmed,
		Total:         1000000,
		PaymentStatus: sql.NullString{String: string(PaymentPaid), Valid: true},
	}
}

func TestServiceCancel_PaidRefund(t *testing.T) {
	userID := uuid.New()
	checkIn := time.Now().UTC().Add(20 * 24 * time.Hour)
	b := paidBooking(userID, checkIn)

	store := newFakeStore()
	store.bookings[b.ID] = b
	svc := NewService(store, &fakeRooms{room: testRoom()}, nil, nil)

	resp, quote, err := svc.Cancel(context.Background(), userID, b.ID, "plans changed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.RefundPercent != 80 {
		t.Fatalf("percent: got %d, want 80", quote.RefundPercent)
	}
	if !approxEq(quote.NetRefund, 700000) {
		t.Fatalf("net refund: got %f, want 700000", quote.NetRefund)
	}
	if !store.cancelCalled || !store.cancelPaid {
		t.Fatal("expected a refunded cancellation")
	}
	if resp.Status != StatusCancelled {
		t.Fatalf("status: got %s, want cancelled", resp.Status)
	}
	if resp.Cancellation == nil || !approxEq(resp.Cancellation.RefundAmount, 700000) {
		t.Fatalf("cancellation block: %+v", resp.Cancellation)
	}
}

func TestServiceCancel_UnpaidNoRefund(t *testing.T) {
	userID := uuid.New()
	b := paidBooking(userID, time.Now().UTC().Add(20*24*time.Hour))
	b.PaymentStatus = sql.NullString{String: string(PaymentPending), Valid: true}

	store := newFakeStore()
	store.bookings[b.ID] = b
	svc := NewService(store, &fakeRooms{room: testRoom()}, nil, nil)

	_, quote, err := svc.Cancel(context.Background(), userID, b.ID, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.NetRefund != 0 {
		t.Fatalf("net refund for unpaid booking: got %f, want 0", quote.NetRefund)
	}
	if store.cancelPaid {
		t.Fatal("unpaid cancellation must not be marked refunded")
	}
}

func TestServiceCancel_NotOwner(t *testing.T) {
	owner := uuid.New()
	b := paidBooking(owner, time.Now().UTC().Add(20*24*time.Hour))

	store := newFakeStore()
	store.bookings[b.ID] = b
	svc := NewService(store, &fakeRooms{room: testRoom()}, nil, nil)

	_, _, err := svc.Cancel(context.Background(), uuid.New(), b.ID, "")
	if !errors.Is(err, ErrNotBookingOwner) {
		t.Fatalf("got %v, want ErrNotBookingOwner", err)
	}
	if store.cancelCalled {
		t.Fatal("cancel must not run for non-owner")
	}
}

func TestServiceCancel_TerminalStatus(t *testing.T) {
	userID := uuid.New()
	b := paidBooking(userID, time.Now().UTC().Add(20*24*time.Hour))
	b.Status = StatusCancelled

	store := newFakeStore()
	store.bookings[b.ID] = b
	svc := NewService(store, &fakeRooms{room: testRoom()}, nil, nil)

	_, _, err := svc.Cancel(context.Background(), userID, b.ID, "")
	if !errors.Is(err, ErrCannotCancel) {
		t.Fatalf("got %v, want ErrCannotCancel", err)
	}
}

func TestServiceCancel_CheckInToday(t *testing.T) {
	userID := uuid.New()
	b := paidBooking(userID, time.Now().UTC())

	store := newFakeStore()
	store.bookings[b.ID] = b
	svc := NewService(store, &fakeRooms{room: testRoom()}, nil, nil)

	_, _, err := svc.Cancel(context.Background(), userID, b.ID, "")
	if !errors.Is(err, ErrCannotCancel) {
		t.Fatalf("got %v, want ErrCannotCancel", err)
	}
}

func TestServiceGetByNumber(t *testing.T) {
	b := &Booking{
		ID:            uuid.New(),
		BookingNumber: "RF12345678ABCD",
		GuestEmail:    "maria.gomez@example.com",
		Status:        StatusConfirmed,
		CheckInDate:   time.Now().UTC(),
		CheckOutDate:  time.Now().UTC().Add(24 * time.Hour),
	}
	store := newFakeStore()
	store.bookings[b.ID] = b
	svc := NewService(store, &fakeRooms{room: testRoom()}, nil, nil)
	ctx := context.Background()

	got, err := svc.GetByNumber(ctx, "rf12345678abcd", "Maria.Gomez@example.com", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.BookingNumber != b.BookingNumber {
		t.Fatalf("got %s", got.BookingNumber)
	}

	if _, err := svc.GetByNumber(ctx, "RF12345678ABCD", "other@example.com", nil); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("wrong email: got %v, want ErrBookingNotFound", err)
	}

	if _, err := svc.GetByNumber(ctx, "RF00000000XXXX", "maria.gomez@example.com", nil); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("unknown number: got %v, want ErrBookingNotFound", err)
	}
}

func TestServiceGetByNumber_AccountBooking(t *testing.T) {
	owner := uuid.New()
	b := paidBooking(owner, time.Now().UTC().Add(24*time.Hour))

	store := newFakeStore()
	store.bookings[b.ID] = b
	svc := NewService(store, &fakeRooms{room: testRoom()}, nil, nil)
	ctx := context.Background()

	if _, err := svc.GetByNumber(ctx, b.BookingNumber, "", &owner); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}

	stranger := uuid.New()
	if _, err := svc.GetByNumber(ctx, b.BookingNumber, "", &stranger); !errors.Is(err, ErrNotBookingOwner) {
		t.Fatalf("got %v, want ErrNotBookingOwner", err)
	}
	if _, err := svc.GetByNumber(ctx, b.BookingNumber, "", nil); !errors.Is(err, ErrNotBookingOwner) {
		t.Fatalf("anonymous: got %v, want ErrNotBookingOwner", err)
	}
}

func TestServiceResendConfirmation(t *testing.T) {
	userID := uuid.New()
	b := paidBooking(userID, time.Now().UTC().Add(5*24*time.Hour))

	store := newFakeStore()
	store.bookings[b.ID] = b
	mailer := &fakeMailer{}
	svc := NewService(store, &fakeRooms{room: testRoom()}, nil, mailer)
	ctx := context.Background()

	if err := svc.ResendConfirmation(ctx, userID, b.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mailer.confirmations != 1 {
		t.Fatalf("confirmations sent: got %d, want 1", mailer.confirmations)
	}

	b.Status = StatusCompleted
	if err := svc.ResendConfirmation(ctx, userID, b.ID); !errors.Is(err, ErrCannotResend) {
		t.Fatalf("got %v, want ErrCannotResend", err)
	}
}

func TestServiceCalculatePrice(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeRooms{room: testRoom()}, nil, nil)
	ctx := context.Background()

	price, err := svc.CalculatePrice(ctx, &PriceRequest{
		HotelID:      "a2f1c9e0-5b7d-4c3a-9e8f-1d2c3b4a5f6e",
		RoomID:       "b3e2d0f1-6c8e-5d4b-af9e-2e3d4c5b6a7f",
		CheckInDate:  "2026-04-10",
		CheckOutDate: "2026-04-12",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price.NumberOfNights != 2 || !approxEq(price.Total, 496000) {
		t.Fatalf("unexpected price: %+v", price)
	}

	_, err = svc.CalculatePrice(ctx, &PriceRequest{
		HotelID:      "a2f1c9e0-5b7d-4c3a-9e8f-1d2c3b4a5f6e",
		RoomID:       "b3e2d0f1-6c8e-5d4b-af9e-2e3d4c5b6a7f",
		CheckInDate:  "2026-04-12",
		CheckOutDate: "2026-04-12",
	})
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("got %v, want validation errors", err)
	}
}
