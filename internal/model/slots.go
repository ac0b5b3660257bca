package model

import (
	"fmt"
	"time"
)

// SlotCount is the fixed number of 15-minute intervals in a trading day,
// covering 09:00 through 20:30.
const SlotCount = 46

// slotOpenMinute is the minute-of-day of the first interval start (09:00).
const slotOpenMinute = 9 * 60

// Slot holds the sales amount and transaction count of one 15-minute interval.
type Slot struct {
	Sales        float64 `json:"sales"`
	Transactions int     `json:"transactions"`
}

// SlotSeries is the fixed chronological sequence of the day's intervals.
// Index 0 is the 09:00 interval, index 45 the 20:15 interval.
type SlotSeries [SlotCount]Slot

// SlotMinute returns the start minute-of-day of slot i.
func SlotMinute(i int) int {
	return slotOpenMinute + 15*i
}

// SlotLabel returns the canonical textual label of slot i, e.g. "9:00 AM".
func SlotLabel(i int) string {
	m := SlotMinute(i)
	t := time.Date(2000, time.January, 1, m/60, m%60, 0, 0, time.UTC)
	return t.Format("3:04 PM")
}

// SlotIndexAt maps a clock time to its slot index. The second return is
// false when the time falls outside the 09:00-20:30 trading window or is
// not on a 15-minute boundary.
func SlotIndexAt(hour, minute int) (int, bool) {
	m := hour*60 + minute
	if m < slotOpenMinute || minute%15 != 0 {
		return 0, false
	}
	i := (m - slotOpenMinute) / 15
	if i >= SlotCount {
		return 0, false
	}
	return i, true
}

// Add returns the index-wise sum of two series.
func (s SlotSeries) Add(other SlotSeries) SlotSeries {
	for i := range s {
		s[i].Sales += other[i].Sales
		s[i].Transactions += other[i].Transactions
	}
	return s
}

// TotalSales sums the sales amounts of all slots.
func (s SlotSeries) TotalSales() float64 {
	var total float64
	for i := range s {
		total += s[i].Sales
	}
	return total
}

// TotalTransactions sums the transaction counts of all slots.
func (s SlotSeries) TotalTransactions() int {
	var total int
	for i := range s {
		total += s[i].Transactions
	}
	return total
}

// String renders the series span for diagnostics.
func (s SlotSeries) String() string {
	return fmt.Sprintf("slots[%s-%s]", SlotLabel(0), SlotLabel(SlotCount-1))
}
