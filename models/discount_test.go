package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDiscountAmount(t *testing.T) {
	hemat10 := DiscountCode{Code: "HEMAT10", Percent: 10}
	hemat20 := DiscountCode{Code: "HEMAT20", Percent: 20}

	assert.Equal(t, int64(12900), hemat10.Amount(129000))
	assert.Equal(t, int64(25800), hemat20.Amount(129000))
	assert.Equal(t, int64(9900), hemat10.Amount(99000))

	// IDR amounts round down.
	assert.Equal(t, int64(9), hemat10.Amount(99))
}

func TestDiscountUsable(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	two := 2

	tests := []struct {
		name     string
		discount DiscountCode
		usable   bool
	}{
		{"NoRestrictions", DiscountCode{Percent: 10}, true},
		{"InsideWindow", DiscountCode{Percent: 10, ValidFrom: &past, ValidUntil: &future}, true},
		{"NotYetValid", DiscountCode{Percent: 10, ValidFrom: &future}, false},
		{"Expired", DiscountCode{Percent: 10, ValidUntil: &past}, false},
		{"UnderUsageCap", DiscountCode{Percent: 10, MaxUses: &two, UsedCount: 1}, true},
		{"UsageCapReached", DiscountCode{Percent: 10, MaxUses: &two, UsedCount: 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.usable, tt.discount.Usable(now))
		})
	}
}

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	t.Run("PendingBeforeDeadline", func(t *testing.T) {
		order := Order{PaymentStatus: PaymentPending, PaymentDeadline: now.Add(time.Hour)}
		assert.Equal(t, PaymentPending, order.EffectiveStatus(now))
	})

	t.Run("PendingPastDeadline", func(t *testing.T) {
		order := Order{PaymentStatus: PaymentPending, PaymentDeadline: now.Add(-time.Hour)}
		assert.Equal(t, PaymentExpired, order.EffectiveStatus(now))
	})

	t.Run("PaidNeverExpires", func(t *testing.T) {
		order := Order{PaymentStatus: PaymentPaid, PaymentDeadline: now.Add(-time.Hour)}
		assert.Equal(t, PaymentPaid, order.EffectiveStatus(now))
	})

	t.Run("InProgressNeverExpires", func(t *testing.T) {
		order := Order{PaymentStatus: PaymentInProgress, PaymentDeadline: now.Add(-time.Hour)}
		assert.Equal(t, PaymentInProgress, order.EffectiveStatus(now))
	})
}

func TestPaymentStatusIsValid(t *testing.T) {
	for _, status := range []PaymentStatus{
		PaymentPending, PaymentInProgress, PaymentPaid, PaymentExpired, PaymentCancelled,
	} {
		assert.True(t, status.IsValid(), status)
	}

	assert.False(t, PaymentStatus("refunded").IsValid())
	assert.False(t, PaymentStatus("").IsValid())
}
