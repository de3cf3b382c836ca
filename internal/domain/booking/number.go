package booking

import (
	"crypto/rand"
	"fmt"
	"time"
)

const numberSuffixCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateBookingNumber produces a human-readable reservation number:
// "RF" + the last 8 digits of the current unix-milli timestamp + 4 random
// uppercase alphanumerics. The timestamp part keeps numbers roughly sortable;
// the random suffix disambiguates bookings created in the same millisecond.
func GenerateBookingNumber() string {
	return generateBookingNumber(time.Now())
}

func generateBookingNumber(now time.Time) string {
	millis := fmt.Sprintf("%d", now.UnixMilli())
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}

	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// fixed suffix rather than aborting booking creation
		copy(suffix, "0000")
	}
	for i := range suffix {
		suffix[i] = numberSuffixCharset[int(suffix[i])%len(numberSuffixCharset)]
	}

	return "RF" + millis + string(suffix)
}
