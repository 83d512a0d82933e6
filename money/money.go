// Package money formats server amounts for display. Reads arrive as
// integer cents, bot P&L as decimal dollars; the two units meet only here,
// never on the wire.
package money

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Sign classifies an amount for gain/flat/loss styling.
type Sign int

const (
	Flat Sign = iota
	Gain
	Loss
)

// Dollars formats cents as "$1,234.56". The sign is dropped; use
// SignedDollars when direction matters.
func Dollars(cents int64) string {
	return "$" + group(decimal.NewFromInt(abs(cents)).Div(hundred).StringFixed(2))
}

// SignedDollars formats cents as "+$12.34" or "-$5.00". Zero shows as a
// gain, matching the dashboard's "nothing lost" reading.
func SignedDollars(cents int64) string {
	sign := "+"
	if cents < 0 {
		sign = "-"
	}
	return sign + Dollars(cents)
}

// Pnl formats a decimal dollar amount as "+$12.50" / "-$3.25".
func Pnl(v decimal.Decimal) string {
	sign := "+"
	if v.IsNegative() {
		sign = "-"
	}
	return sign + "$" + group(v.Abs().StringFixed(2))
}

// SignOf classifies a decimal dollar amount.
func SignOf(v decimal.Decimal) Sign {
	switch {
	case v.IsPositive():
		return Gain
	case v.IsNegative():
		return Loss
	default:
		return Flat
	}
}

// SignOfCents classifies a cent amount.
func SignOfCents(cents int64) Sign {
	switch {
	case cents > 0:
		return Gain
	case cents < 0:
		return Loss
	default:
		return Flat
	}
}

// Timestamp renders a server ISO-8601 timestamp in local time, falling back
// to the raw string when it doesn't parse.
func Timestamp(iso string) string {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.Local().Format("01/02/06 3:04:05 PM")
		}
	}
	return iso
}

// RelativeTime renders "just now", "5s ago", "2m ago", "3h ago".
func RelativeTime(t time.Time) string {
	seconds := int(time.Since(t).Seconds())
	switch {
	case seconds < 5:
		return "just now"
	case seconds < 60:
		return fmt.Sprintf("%ds ago", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", seconds/60)
	default:
		return fmt.Sprintf("%dh ago", seconds/3600)
	}
}

// group inserts thousands separators into a fixed-point decimal string.
func group(s string) string {
	intPart, frac, _ := strings.Cut(s, ".")
	if len(intPart) <= 3 {
		return intPart + "." + frac
	}
	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String() + "." + frac
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
