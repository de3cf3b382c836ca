package booking

import (
	"math"
	"testing"
	"time"
)

var refundNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func checkInAfterDays(days int) time.Time {
	return refundNow.Add(time.Duration(days) * 24 * time.Hour)
}

func approxEq(a, b float64) bool {
	return math.Abs(a-b) < 0.000001
}

func TestComputeRefund_Tiers(t *testing.T) {
	total := 1000000.0

	tests := []struct {
		name      string
		days      int
		percent   int
		refund    float64
		fee       float64
		netRefund float64
	}{
		{"45 days out, full refund", 45, 100, 1000000, 0, 1000000},
		{"exactly 30 days", 30, 100, 1000000, 0, 1000000},
		{"29 days falls to 80%", 29, 80, 800000, 100000, 700000},
		{"20 days out", 20, 80, 800000, 100000, 700000},
		{"exactly 15 days", 15, 80, 800000, 100000, 700000},
		{"14 days falls to 50%", 14, 50, 500000, 150000, 350000},
		{"10 days out", 10, 50, 500000, 150000, 350000},
		{"exactly 7 days", 7, 50, 500000, 150000, 350000},
		{"6 days falls to 25%", 6, 25, 250000, 200000, 50000},
		{"3 days out", 3, 25, 250000, 200000, 50000},
		{"exactly 1 day", 1, 25, 250000, 200000, 50000},
		{"check-in today", 0, 0, 0, 0, 0},
		{"check-in already passed", -1, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ComputeRefund(total, checkInAfterDays(tt.days), refundNow)
			if q.DaysUntilCheckIn != tt.days {
				t.Fatalf("days: got %d, want %d", q.DaysUntilCheckIn, tt.days)
			}
			if q.RefundPercent != tt.percent {
				t.Fatalf("percent: got %d, want %d", q.RefundPercent, tt.percent)
			}
			if !approxEq(q.RefundAmount, tt.refund) {
				t.Fatalf("refund: got %f, want %f", q.RefundAmount, tt.refund)
			}
			if !approxEq(q.CancellationFee, tt.fee) {
				t.Fatalf("fee: got %f, want %f", q.CancellationFee, tt.fee)
			}
			if !approxEq(q.NetRefund, tt.netRefund) {
				t.Fatalf("net: got %f, want %f", q.NetRefund, tt.netRefund)
			}
		})
	}
}

func TestComputeRefund_PartialDayRoundsUp(t *testing.T) {
	// 14 days and 12 hours ahead counts as 15 days, so the 80% tier applies
	checkIn := refundNow.Add(14*24*time.Hour + 12*time.Hour)
	q := ComputeRefund(1000000, checkIn, refundNow)
	if q.DaysUntilCheckIn != 15 {
		t.Fatalf("days: got %d, want 15", q.DaysUntilCheckIn)
	}
	if q.RefundPercent != 80 {
		t.Fatalf("percent: got %d, want 80", q.RefundPercent)
	}
}

func TestComputeRefund_Deterministic(t *testing.T) {
	checkIn := checkInAfterDays(10)
	a := ComputeRefund(500000, checkIn, refundNow)
	b := ComputeRefund(500000, checkIn, refundNow)
	if a != b {
		t.Fatalf("identical inputs gave different quotes: %+v vs %+v", a, b)
	}
}

func TestComputeRefund_NetNeverNegative(t *testing.T) {
	for days := -5; days <= 40; days++ {
		q := ComputeRefund(1000000, checkInAfterDays(days), refundNow)
		if q.NetRefund < 0 {
			t.Fatalf("negative net refund at %d days: %f", days, q.NetRefund)
		}
		if q.NetRefund > 1000000 {
			t.Fatalf("net refund exceeds paid total at %d days: %f", days, q.NetRefund)
		}
	}
}

func TestComputeRefund_ZeroPaid(t *testing.T) {
	q := ComputeRefund(0, checkInAfterDays(45), refundNow)
	if q.NetRefund != 0 || q.RefundAmount != 0 || q.CancellationFee != 0 {
		t.Fatalf("unexpected quote for zero paid total: %+v", q)
	}
	if q.RefundPercent != 100 {
		t.Fatalf("percent: got %d, want 100", q.RefundPercent)
	}
}
