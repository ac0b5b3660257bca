package model

import (
	"testing"
	"time"
)

func TestSlotLabels_CoverTradingDay(t *testing.T) {
	t.Parallel()

	if got := SlotLabel(0); got != "9:00 AM" {
		t.Fatalf("first slot label: %q", got)
	}
	if got := SlotLabel(SlotCount - 1); got != "8:15 PM" {
		t.Fatalf("last slot label: %q", got)
	}
	if got := SlotLabel(13); got != "12:15 PM" {
		t.Fatalf("midday slot label: %q", got)
	}
}

func TestSlotIndexAt_RoundTrip(t *testing.T) {
	t.Parallel()

	for i := 0; i < SlotCount; i++ {
		m := SlotMinute(i)
		idx, ok := SlotIndexAt(m/60, m%60)
		if !ok {
			t.Fatalf("slot %d (%s) rejected", i, SlotLabel(i))
		}
		if idx != i {
			t.Fatalf("slot %d mapped to %d", i, idx)
		}
	}
}

func TestSlotIndexAt_RejectsOutsideWindow(t *testing.T) {
	t.Parallel()

	cases := []struct {
		hour, minute int
	}{
		{8, 45},  // before opening
		{20, 30}, // after last interval start
		{21, 0},
		{9, 7}, // off-grid
	}
	for _, c := range cases {
		if _, ok := SlotIndexAt(c.hour, c.minute); ok {
			t.Fatalf("%02d:%02d accepted", c.hour, c.minute)
		}
	}
}

func TestSlotSeries_AddAndTotals(t *testing.T) {
	t.Parallel()

	var a, b SlotSeries
	a[0] = Slot{Sales: 10, Transactions: 2}
	a[45] = Slot{Sales: 5, Transactions: 1}
	b[0] = Slot{Sales: 2.5, Transactions: 1}

	sum := a.Add(b)
	if sum[0].Sales != 12.5 || sum[0].Transactions != 3 {
		t.Fatalf("slot 0 sum: %+v", sum[0])
	}
	if sum[45].Sales != 5 {
		t.Fatalf("slot 45 sum: %+v", sum[45])
	}
	if got := sum.TotalSales(); got != 17.5 {
		t.Fatalf("total sales: %v", got)
	}
	if got := sum.TotalTransactions(); got != 4 {
		t.Fatalf("total transactions: %d", got)
	}
	// operands untouched
	if a[0].Sales != 10 || b[0].Sales != 2.5 {
		t.Fatalf("Add mutated its operands: a=%+v b=%+v", a[0], b[0])
	}
}

func TestDailyRecord_DerivedMetrics(t *testing.T) {
	t.Parallel()

	d := NewDailyRecord(time.Date(2024, time.May, 2, 13, 30, 0, 0, time.Local), SourcePOS)
	if d.DayLabel != "Thursday" {
		t.Fatalf("day label: %q", d.DayLabel)
	}
	if d.Key() != "2024-05-02" {
		t.Fatalf("key: %q", d.Key())
	}
	if got := d.AverageTicket(); got != 0 {
		t.Fatalf("average ticket with no transactions: %v", got)
	}
	d.GrossBefore = 1050
	d.Discounts = 50
	d.GrossAfter = 1000
	d.Transactions = 40
	if got := d.AverageTicket(); got != 25 {
		t.Fatalf("average ticket: %v", got)
	}
	if got := d.DiscountRate(); got < 4.76 || got > 4.77 {
		t.Fatalf("discount rate: %v", got)
	}
}
