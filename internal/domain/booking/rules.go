package booking

import (
	"time"

	"github.com/fala-hotels/fala-api/internal/pkg/dateutil"
)

// CanCancel reports whether a guest may still cancel the booking: only
// pending or confirmed bookings, and only while check-in day (at midnight)
// is strictly after today (at midnight). Terminal statuses are never
// cancellable.
func CanCancel(b *Booking, now time.Time) bool {
	if b == nil {
		return false
	}
	if b.Status != StatusPending && b.Status != StatusConfirmed {
		return false
	}
	return dateutil.StartOfDay(b.CheckInDate).After(dateutil.StartOfDay(now))
}

// CanResendConfirmation reports whether the confirmation email may be resent.
func CanResendConfirmation(b *Booking) bool {
	if b == nil {
		return false
	}
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsUpcoming reports whether the booking is a confirmed stay starting within
// the next 7 days.
func IsUpcoming(b *Booking, now time.Time) bool {
	if b == nil || b.Status != StatusConfirmed {
		return false
	}
	days := dateutil.DaysUntil(b.CheckInDate, now)
	return days >= 0 && days <= 7
}

// IsPast reports whether the stay has already ended.
func IsPast(b *Booking, now time.Time) bool {
	if b == nil {
		return false
	}
	return b.CheckOutDate.Before(now)
}
