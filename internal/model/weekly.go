package model

import "time"

// WeekStartDay is the weekday every sales week begins on. The business
// accounting cycle runs Thursday through the following Wednesday.
const WeekStartDay = time.Thursday

// ManualInputs are the two per-week scalars the source exports never
// carry; they arrive from the operator before commission computation.
type ManualInputs struct {
	CardSales    float64 `json:"cardSales" validate:"gte=0"`
	TaxCollected float64 `json:"taxCollected" validate:"gte=0"`
}

// WeeklyRecord aggregates the unified daily records of one sales week.
// It is derived data, recomputed whenever the daily set or the manual
// inputs change, and never persisted.
type WeeklyRecord struct {
	WeekStart time.Time `json:"weekStart"`
	WeekEnd   time.Time `json:"weekEnd"`
	Label     string    `json:"label"`  // e.g. "W05 (Feb 01)"
	Number    int       `json:"number"` // Thursday-week number within Year
	Year      int       `json:"year"`

	Days    int  `json:"days"` // member days present in the dataset
	Partial bool `json:"partial"`

	GrossBefore  float64          `json:"grossBefore"`
	Discounts    float64          `json:"discounts"`
	GrossAfter   float64          `json:"grossAfter"`
	NetVAT       float64          `json:"netVat"`
	Transactions int              `json:"transactions"`
	Payments     PaymentBreakdown `json:"payments"`
	Slots        SlotSeries       `json:"slots"`

	// InvoiceID is the week-end date as a 6-digit month-day-year code.
	InvoiceID string `json:"invoiceId"`

	// GrowthPct is week-over-week growth of gross after discounts, in
	// per cent. Nil means not applicable: first week in the dataset, a
	// zero prior-week total, or a growth-excluded partial neighbour.
	GrowthPct *float64 `json:"growthPct"`

	// Manual is nil until the operator supplies the week's inputs.
	Manual *ManualInputs `json:"manual,omitempty"`
}

// StartKey returns the canonical week-start key (YYYY-MM-DD).
func (w *WeeklyRecord) StartKey() string {
	return w.WeekStart.Format(DateKey)
}

// AverageTicket is the week's gross after discounts per transaction.
func (w *WeeklyRecord) AverageTicket() float64 {
	if w.Transactions <= 0 {
		return 0
	}
	return w.GrossAfter / float64(w.Transactions)
}
