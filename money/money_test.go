package money

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDollars(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{3000, "$30.00"},
		{2800, "$28.00"},
		{0, "$0.00"},
		{5, "$0.05"},
		{123456, "$1,234.56"},
		{100000000, "$1,000,000.00"},
		{-500, "$5.00"}, // unsigned form drops the sign
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Dollars(tt.cents), "cents=%d", tt.cents)
	}
}

func TestSignedDollars(t *testing.T) {
	assert.Equal(t, "+$12.34", SignedDollars(1234))
	assert.Equal(t, "-$5.00", SignedDollars(-500))
	assert.Equal(t, "-$2.00", SignedDollars(-200))
	assert.Equal(t, "+$0.00", SignedDollars(0))
}

func TestPnl(t *testing.T) {
	assert.Equal(t, "+$12.50", Pnl(decimal.NewFromFloat(12.5)))
	assert.Equal(t, "-$3.25", Pnl(decimal.NewFromFloat(-3.25)))
	assert.Equal(t, "+$0.00", Pnl(decimal.Zero))
	assert.Equal(t, "+$1,234.50", Pnl(decimal.NewFromFloat(1234.5)))
}

func TestSigns(t *testing.T) {
	assert.Equal(t, Gain, SignOf(decimal.NewFromFloat(12.5)))
	assert.Equal(t, Loss, SignOf(decimal.NewFromFloat(-0.01)))
	assert.Equal(t, Flat, SignOf(decimal.Zero))

	assert.Equal(t, Gain, SignOfCents(1))
	assert.Equal(t, Loss, SignOfCents(-1))
	assert.Equal(t, Flat, SignOfCents(0))
}

func TestTimestamp(t *testing.T) {
	t.Run("fractional seconds", func(t *testing.T) {
		out := Timestamp("2025-06-01T10:00:00.123456Z")
		assert.NotEqual(t, "2025-06-01T10:00:00.123456Z", out)
		assert.NotEmpty(t, out)
	})

	t.Run("whole seconds", func(t *testing.T) {
		out := Timestamp("2025-06-01T10:00:00Z")
		assert.NotEqual(t, "2025-06-01T10:00:00Z", out)
	})

	t.Run("unparsable falls back to the raw string", func(t *testing.T) {
		assert.Equal(t, "yesterday-ish", Timestamp("yesterday-ish"))
	})
}

func TestRelativeTime(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "just now", RelativeTime(now))
	assert.Equal(t, "30s ago", RelativeTime(now.Add(-30*time.Second)))
	assert.Equal(t, "2m ago", RelativeTime(now.Add(-2*time.Minute)))
	assert.Equal(t, "3h ago", RelativeTime(now.Add(-3*time.Hour)))
}
