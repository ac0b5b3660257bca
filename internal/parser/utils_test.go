package parser

import "testing"

func TestNormalizeLabel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"  Gross Sales  Before   Discounts ", "gross sales before discounts"},
		{"Total\tDiscounts\n", "total discounts"},
		{"Date:", "date"},
		{"TIME_SLOTS", "time_slots"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeLabel(c.in); got != c.want {
			t.Fatalf("NormalizeLabel(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1,234.50", 1234.50, true},
		{"$1,234.50", 1234.50, true},
		{" 42 ", 42, true},
		{"(15.25)", -15.25, true},
		{"-", 0, false},
		{"", 0, false},
		{"lunch", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseAmount(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("ParseAmount(%q) = %v,%v want %v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestParseDate_Formats(t *testing.T) {
	t.Parallel()

	cases := []string{
		"05/02/2024",
		"5/2/2024",
		"2024-05-02",
		"May 2, 2024",
		"2 May 2024",
		"02-May-2024",
	}
	for _, c := range cases {
		d, ok := ParseDate(c)
		if !ok {
			t.Fatalf("ParseDate(%q) failed", c)
		}
		if d.Format("2006-01-02") != "2024-05-02" {
			t.Fatalf("ParseDate(%q) = %s", c, d.Format("2006-01-02"))
		}
	}

	// excel serial for 2024-05-02
	d, ok := ParseDate("45414")
	if !ok || d.Format("2006-01-02") != "2024-05-02" {
		t.Fatalf("serial date: %v ok=%v", d, ok)
	}

	if _, ok := ParseDate("1234.50"); ok {
		t.Fatalf("amount accepted as date")
	}
	if _, ok := ParseDate("banana"); ok {
		t.Fatalf("junk accepted as date")
	}
}

func TestParseSlotTime_Forms(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in           string
		hour, minute int
	}{
		{"9:00 AM", 9, 0},
		{"9:15AM", 9, 15},
		{"11:45:00AM", 11, 45},
		{"1:30 PM", 13, 30},
		{"8:15 PM", 20, 15},
		{"9:00 AM - 9:15 AM", 9, 0},
		{"12:15 PM", 12, 15},
		{"09:00", 9, 0},
	}
	for _, c := range cases {
		h, m, ok := ParseSlotTime(c.in)
		if !ok {
			t.Fatalf("ParseSlotTime(%q) failed", c.in)
		}
		if h != c.hour || m != c.minute {
			t.Fatalf("ParseSlotTime(%q) = %d:%02d", c.in, h, m)
		}
	}

	if _, _, ok := ParseSlotTime("banana"); ok {
		t.Fatalf("junk accepted as slot time")
	}
}

func TestSlotIndexFromLabel(t *testing.T) {
	t.Parallel()

	idx, ok := SlotIndexFromLabel("9:00 AM")
	if !ok || idx != 0 {
		t.Fatalf("9:00 AM -> %d,%v", idx, ok)
	}
	idx, ok = SlotIndexFromLabel("8:15 PM")
	if !ok || idx != 45 {
		t.Fatalf("8:15 PM -> %d,%v", idx, ok)
	}
	if _, ok := SlotIndexFromLabel("8:30 PM"); ok {
		t.Fatalf("8:30 PM accepted, past last interval start")
	}
	if _, ok := SlotIndexFromLabel("8:45 AM"); ok {
		t.Fatalf("8:45 AM accepted, before opening")
	}
	if _, ok := SlotIndexFromLabel("9:07 PM"); ok {
		t.Fatalf("off-grid time accepted")
	}
}
