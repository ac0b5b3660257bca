package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/model"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeLabel lowercases a cell label and collapses all whitespace so
// matching is case- and whitespace-insensitive.
func NormalizeLabel(label string) string {
	label = strings.TrimSpace(strings.ToLower(label))
	label = strings.ReplaceAll(label, "\n", " ")
	label = strings.ReplaceAll(label, "\r", " ")
	label = strings.ReplaceAll(label, "\t", " ")
	label = strings.Trim(label, ":")
	return whitespaceRe.ReplaceAllString(label, " ")
}

// ContainsAny reports whether text contains any of the keywords.
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// ParseAmount parses a money cell, tolerating thousands separators,
// currency signs and accounting-style parentheses for negatives.
func ParseAmount(value string) (float64, bool) {
	v := strings.TrimSpace(value)
	if v == "" || v == "-" {
		return 0, false
	}
	negative := false
	if strings.HasPrefix(v, "(") && strings.HasSuffix(v, ")") {
		negative = true
		v = v[1 : len(v)-1]
	}
	v = strings.ReplaceAll(v, ",", "")
	v = strings.TrimPrefix(v, "$")
	v = strings.TrimPrefix(v, "€")
	v = strings.TrimPrefix(v, "£")
	v = strings.TrimSpace(v)
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		f = -f
	}
	return f, true
}

// ParseCount parses an integer cell, tolerating a trailing decimal part
// the POS export sometimes emits ("57.0").
func ParseCount(value string) (int, bool) {
	f, ok := ParseAmount(value)
	if !ok {
		return 0, false
	}
	return int(f + 0.5), true
}

// dateFormats are the textual date layouts the exports have been seen to
// use, tried in order.
var dateFormats = []string{
	"01/02/2006",
	"1/2/2006",
	"2006-01-02",
	"01-02-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	"Mon 01/02/2006",
	"Monday, January 2, 2006",
	"01/02/06",
}

// excelEpoch is day zero of the 1900 date system used by xlsx files.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseDate parses a date cell from any recognized textual format, or
// from an Excel serial number when the cell came through unformatted.
func ParseDate(value string) (time.Time, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, v); err == nil {
			return model.Midnight(t), true
		}
	}
	// Serial dates: plausible values cover 1955-2173, which keeps plain
	// amounts from being misread as dates.
	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		if serial > 20000 && serial < 100000 {
			return model.Midnight(excelEpoch.AddDate(0, 0, int(serial))), true
		}
	}
	return time.Time{}, false
}

// slotTimeFormats are the clock layouts slot labels appear in.
var slotTimeFormats = []string{
	"3:04:05PM",
	"3:04PM",
	"3:04 PM",
	"15:04",
}

// ParseSlotTime parses a slot label into its clock time. Range labels
// ("9:00 AM - 9:15 AM") resolve to their start time.
func ParseSlotTime(label string) (hour, minute int, ok bool) {
	v := strings.TrimSpace(label)
	if v == "" {
		return 0, 0, false
	}
	if idx := strings.Index(v, " - "); idx >= 0 {
		v = strings.TrimSpace(v[:idx])
	}
	upper := strings.ToUpper(v)
	for _, layout := range slotTimeFormats {
		if t, err := time.Parse(layout, upper); err == nil {
			return t.Hour(), t.Minute(), true
		}
	}
	return 0, 0, false
}

// SlotIndexFromLabel maps a slot label to its canonical series index.
func SlotIndexFromLabel(label string) (int, bool) {
	hour, minute, ok := ParseSlotTime(label)
	if !ok {
		return 0, false
	}
	return model.SlotIndexAt(hour, minute)
}

// firstNonEmpty returns the first non-blank cell of a row and its index.
func firstNonEmpty(row []string) (string, int) {
	for i, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return strings.TrimSpace(cell), i
		}
	}
	return "", -1
}

// nextAmount scans a row after column from for the first parseable amount.
func nextAmount(row []string, from int) (float64, bool) {
	for i := from + 1; i < len(row); i++ {
		if f, ok := ParseAmount(row[i]); ok {
			return f, true
		}
	}
	return 0, false
}

// findColumn locates a header column by contains-matching the patterns
// in preference order, skipping already-claimed columns.
func findColumn(header []string, patterns []string, claimed ...int) int {
	taken := make(map[int]bool, len(claimed))
	for _, c := range claimed {
		if c >= 0 {
			taken[c] = true
		}
	}
	for _, pattern := range patterns {
		for i, cell := range header {
			if taken[i] {
				continue
			}
			if strings.Contains(NormalizeLabel(cell), pattern) {
				return i
			}
		}
	}
	return -1
}
