package booking

import (
	"time"

	"github.com/fala-hotels/fala-api/internal/pkg/dateutil"
)

// RefundQuote is the outcome of applying the cancellation policy to a paid
// total. RefundAmount is derived from the policy, never stored independently
// of the computation that produced it.
type RefundQuote struct {
	DaysUntilCheckIn int     `json:"daysUntilCheckIn"`
	RefundPercent    int     `json:"refundPercent"`
	RefundAmount     float64 `json:"refundAmount"`
	CancellationFee  float64 `json:"cancellationFee"`
	NetRefund        float64 `json:"netRefund"`
}

// ComputeRefund applies the tiered cancellation policy. Tiers are keyed by
// ceil(checkIn - now) in days, lower bound inclusive:
//
//	>= 30       100% refund, no fee
//	15 .. 29     80% refund, 10% administrative fee
//	 7 .. 14     50% refund, 15% administrative fee
//	 1 ..  6     25% refund, 20% administrative fee
//	<= 0          no refund, no fee
//
// Deterministic and side-effect free: identical inputs always yield identical
// outputs. A negative net refund would mean a misconfigured table, so it is
// clamped to zero.
func ComputeRefund(totalPaid float64, checkIn, now time.Time) RefundQuote {
	days := dateutil.DaysUntil(checkIn, now)

	var percent int
	var fee float64

	switch {
	case days >= 30:
		percent, fee = 100, 0
	case days >= 15:
		percent, fee = 80, totalPaid*0.10
	case days >= 7:
		percent, fee = 50, totalPaid*0.15
	case days >= 1:
		percent, fee = 25, totalPaid*0.20
	default:
		percent, fee = 0, 0
	}

	refund := totalPaid * float64(percent) / 100
	net := refund - fee
	if net < 0 {
		net = 0
	}

	return RefundQuote{
		DaysUntilCheckIn: days,
		RefundPercent:    percent,
		RefundAmount:     refund,
		CancellationFee:  fee,
		NetRefund:        net,
	}
}
