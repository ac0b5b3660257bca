// Package week partitions unified daily records into Thursday-to-
// Wednesday sales weeks and derives week-level sums and growth.
package week

import (
	"fmt"
	"sort"
	"time"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/model"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/util"
)

// Policy controls how partial weeks participate in week-over-week
// growth: when false a partial week neither reports growth nor serves
// as the prior-week baseline.
type Policy struct {
	PartialWeekGrowth bool
}

// DefaultPolicy includes partial weeks in growth chains, flagged.
func DefaultPolicy() Policy {
	return Policy{PartialWeekGrowth: true}
}

// Start returns the Thursday that opens the sales week containing date.
func Start(date time.Time) time.Time {
	d := model.Midnight(date)
	offset := (int(d.Weekday()) - int(model.WeekStartDay) + 7) % 7
	return d.AddDate(0, 0, -offset)
}

// End returns the Wednesday that closes the sales week containing date.
func End(date time.Time) time.Time {
	return Start(date).AddDate(0, 0, 6)
}

// InvoiceID renders a week-end date as the 6-digit month-day-year code
// used on partner invoices.
func InvoiceID(weekEnd time.Time) string {
	return weekEnd.Format("010206")
}

// Numbering assigns a week its accounting number: weeks count from the
// first Thursday of the week-start's year. A start preceding its year's
// first Thursday belongs to the previous year as week 52.
func Numbering(weekStart time.Time) (year, number int) {
	start := model.Midnight(weekStart)
	year = start.Year()
	first := firstThursday(year)
	if start.Before(first) {
		return year - 1, 52
	}
	days := int(start.Sub(first).Hours() / 24)
	return year, days/7 + 1
}

// Label renders the dashboard label of a week, e.g. "W18 (May 02)".
func Label(weekStart time.Time) string {
	_, number := Numbering(weekStart)
	return fmt.Sprintf("W%02d (%s)", number, weekStart.Format("Jan 02"))
}

func firstThursday(year int) time.Time {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(model.WeekStartDay) - int(jan1.Weekday()) + 7) % 7
	return jan1.AddDate(0, 0, offset)
}

// Aggregate partitions the unified daily collection into weekly records
// in chronological order. Sums reflect only the days present; weeks with
// fewer than seven member days are flagged partial, never padded.
// Week-over-week growth compares each week's gross after discounts with
// the chronologically previous week in the dataset; it is nil for the
// first week, for a zero prior total, and for growth-excluded partial
// neighbours.
func Aggregate(records map[string]*model.DailyRecord, policy Policy) []*model.WeeklyRecord {
	byStart := make(map[string]*model.WeeklyRecord)
	for _, record := range records {
		start := Start(record.Date)
		key := start.Format(model.DateKey)
		w := byStart[key]
		if w == nil {
			end := start.AddDate(0, 0, 6)
			year, number := Numbering(start)
			w = &model.WeeklyRecord{
				WeekStart: start,
				WeekEnd:   end,
				Label:     Label(start),
				Number:    number,
				Year:      year,
				InvoiceID: InvoiceID(end),
			}
			byStart[key] = w
		}
		w.Days++
		w.GrossBefore += record.GrossBefore
		w.Discounts += record.Discounts
		w.GrossAfter += record.GrossAfter
		w.NetVAT += record.NetVAT
		w.Transactions += record.Transactions
		w.Payments = w.Payments.Add(record.Payments)
		w.Slots = w.Slots.Add(record.Slots)
	}

	weeks := make([]*model.WeeklyRecord, 0, len(byStart))
	for _, w := range byStart {
		w.Partial = w.Days < 7
		weeks = append(weeks, w)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].WeekStart.Before(weeks[j].WeekStart) })

	for i, w := range weeks {
		if i == 0 {
			continue
		}
		prev := weeks[i-1]
		if prev.GrossAfter == 0 {
			continue
		}
		if !policy.PartialWeekGrowth && (w.Partial || prev.Partial) {
			continue
		}
		growth := util.RoundHalfUp((w.GrossAfter/prev.GrossAfter-1)*100, 2)
		w.GrowthPct = &growth
	}

	return weeks
}

// AttachManual binds stored manual inputs to their weeks by start date.
func AttachManual(weeks []*model.WeeklyRecord, manual map[string]model.ManualInputs) {
	for _, w := range weeks {
		if m, ok := manual[w.StartKey()]; ok {
			in := m
			w.Manual = &in
		}
	}
}
