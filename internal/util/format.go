package util

import (
	"fmt"
	"math"
	"strings"
)

// RoundHalfUp rounds v half away from zero at the given number of
// decimal digits.
func RoundHalfUp(v float64, digits int) float64 {
	if digits < 0 {
		return v
	}
	scale := math.Pow10(digits)
	x := v * scale
	if x >= 0 {
		return math.Floor(x+0.5) / scale
	}
	return -math.Floor(-x+0.5) / scale
}

// FormatPercent renders an already-percent value with an explicit sign,
// e.g. "+10.00%".
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, value)
}

// FormatCurrency renders an amount with thousands separators and two
// decimals, e.g. "8,908.00".
func FormatCurrency(value float64) string {
	s := fmt.Sprintf("%.2f", math.Abs(value))
	parts := strings.SplitN(s, ".", 2)
	whole := parts[0]

	var b strings.Builder
	if value < 0 {
		b.WriteByte('-')
	}
	lead := len(whole) % 3
	if lead > 0 {
		b.WriteString(whole[:lead])
		if len(whole) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(whole); i += 3 {
		b.WriteString(whole[i : i+3])
		if i+3 < len(whole) {
			b.WriteByte(',')
		}
	}
	b.WriteByte('.')
	b.WriteString(parts[1])
	return b.String()
}
