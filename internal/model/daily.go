package model

import "time"

// Source identifies which export a record came from.
type Source string

const (
	SourcePOS    Source = "pos"
	SourceOnline Source = "online"
	SourceMerged Source = "merged"
)

// DateKey is the canonical map/store key format for calendar dates.
const DateKey = "2006-01-02"

// PaymentBreakdown splits a day's takings by settlement method.
type PaymentBreakdown struct {
	Card float64 `json:"card"`
	Cash float64 `json:"cash"`
	Tax  float64 `json:"tax"`
}

// Add returns the field-wise sum of two breakdowns.
func (p PaymentBreakdown) Add(other PaymentBreakdown) PaymentBreakdown {
	p.Card += other.Card
	p.Cash += other.Cash
	p.Tax += other.Tax
	return p
}

// DailyRecord is the canonical per-day shape both sources normalize into.
// Instances are produced once by parsing/merging and treated as immutable
// by downstream aggregation.
type DailyRecord struct {
	Date         time.Time        `json:"date"`
	DayLabel     string           `json:"dayLabel"`
	GrossBefore  float64          `json:"grossBefore"`
	Discounts    float64          `json:"discounts"`
	GrossAfter   float64          `json:"grossAfter"`
	NetVAT       float64          `json:"netVat"`
	Transactions int              `json:"transactions"`
	Payments     PaymentBreakdown `json:"payments"`
	Slots        SlotSeries       `json:"slots"`
	Source       Source           `json:"source"`
}

// NewDailyRecord creates a zero-filled record for the given date with the
// day-of-week label derived from it.
func NewDailyRecord(date time.Time, source Source) *DailyRecord {
	d := Midnight(date)
	return &DailyRecord{
		Date:     d,
		DayLabel: d.Weekday().String(),
		Source:   source,
	}
}

// Key returns the record's canonical date key (YYYY-MM-DD).
func (d *DailyRecord) Key() string {
	return d.Date.Format(DateKey)
}

// AverageTicket is gross after discounts per transaction; zero when the
// day has no transactions.
func (d *DailyRecord) AverageTicket() float64 {
	if d.Transactions <= 0 {
		return 0
	}
	return d.GrossAfter / float64(d.Transactions)
}

// DiscountRate is discounts as a percentage of gross before discounts;
// zero when gross before is zero.
func (d *DailyRecord) DiscountRate() float64 {
	if d.GrossBefore == 0 {
		return 0
	}
	return d.Discounts / d.GrossBefore * 100
}

// Midnight normalizes a timestamp to its calendar date in UTC. All record
// dates pass through this so map keys and comparisons stay stable.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
