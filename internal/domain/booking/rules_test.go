package booking

import (
	"testing"
	"time"
)

func bookingWith(status Status, checkIn, checkOut time.Time) *Booking {
	return &Booking{Status: status, CheckInDate: checkIn, CheckOutDate: checkOut}
}

func TestCanCancel(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	tomorrow := now.Add(24 * time.Hour)
	nextWeek := now.Add(7 * 24 * time.Hour)

	tests := []struct {
		name    string
		booking *Booking
		want    bool
	}{
		{"pending, check-in tomorrow", bookingWith(StatusPending, tomorrow, nextWeek), true},
		{"confirmed, check-in next week", bookingWith(StatusConfirmed, nextWeek, nextWeek.Add(48*time.Hour)), true},
		{"cancelled is terminal", bookingWith(StatusCancelled, nextWeek, nextWeek.Add(24*time.Hour)), false},
		{"completed is terminal", bookingWith(StatusCompleted, nextWeek, nextWeek.Add(24*time.Hour)), false},
		{"no-show is terminal", bookingWith(StatusNoShow, nextWeek, nextWeek.Add(24*time.Hour)), false},
		{"check-in is today", bookingWith(StatusConfirmed, now.Add(2*time.Hour), tomorrow), false},
		{"check-in already passed", bookingWith(StatusConfirmed, now.Add(-24*time.Hour), tomorrow), false},
		{"nil booking", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanCancel(tt.booking, now); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanResendConfirmation(t *testing.T) {
	now := time.Now().UTC()
	if !CanResendConfirmation(bookingWith(StatusPending, now, now)) {
		t.Fatal("expected true for pending")
	}
	if !CanResendConfirmation(bookingWith(StatusConfirmed, now, now)) {
		t.Fatal("expected true for confirmed")
	}
	for _, status := range []Status{StatusCancelled, StatusCompleted, StatusNoShow} {
		if CanResendConfirmation(bookingWith(status, now, now)) {
			t.Fatalf("expected false for %s", status)
		}
	}
	if CanResendConfirmation(nil) {
		t.Fatal("expected false for nil booking")
	}
}

func TestIsUpcoming(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	in3 := now.Add(3 * 24 * time.Hour)
	if !IsUpcoming(bookingWith(StatusConfirmed, in3, in3.Add(48*time.Hour)), now) {
		t.Fatal("confirmed stay in 3 days should be upcoming")
	}

	in10 := now.Add(10 * 24 * time.Hour)
	if IsUpcoming(bookingWith(StatusConfirmed, in10, in10.Add(24*time.Hour)), now) {
		t.Fatal("stay in 10 days is not upcoming")
	}

	if IsUpcoming(bookingWith(StatusPending, in3, in3.Add(24*time.Hour)), now) {
		t.Fatal("pending stays are not upcoming")
	}
}

func TestIsPast(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	ended := bookingWith(StatusCompleted, now.Add(-5*24*time.Hour), now.Add(-3*24*time.Hour))
	if !IsPast(ended, now) {
		t.Fatal("stay that ended should be past")
	}

	ongoing := bookingWith(StatusConfirmed, now.Add(-24*time.Hour), now.Add(24*time.Hour))
	if IsPast(ongoing, now) {
		t.Fatal("ongoing stay is not past")
	}
}

func TestStatusIsTerminal(t *testing.T) {
	terminal := []Status{StatusCancelled, StatusCompleted, StatusNoShow}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Fatalf("%s should be terminal", s)
		}
	}
	for _, s := range []Status{StatusPending, StatusConfirmed} {
		if s.IsTerminal() {
			t.Fatalf("%s should not be terminal", s)
		}
	}
}
