// Package stats derives read-only intraday and day-of-week views from
// the unified daily records: per-slot aggregates with a peak/slow
// classification, and weekday aggregates over the Thursday-first
// accounting cycle.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/model"
)

// Class marks where a slot sits in the intraday sales distribution.
type Class string

const (
	ClassPeak   Class = "peak"
	ClassSlow   Class = "slow"
	ClassNormal Class = "normal"
)

// Fractions configure the quantile split: slots at or above the
// (1 - Peak) sales quantile are peak, at or below the Slow quantile are
// slow. Defaults are the top 10% and bottom 20%.
type Fractions struct {
	Peak float64
	Slow float64
}

// DefaultFractions returns the stated quantile defaults.
func DefaultFractions() Fractions {
	return Fractions{Peak: 0.10, Slow: 0.20}
}

// SlotStat aggregates one 15-minute slot across a set of days.
type SlotStat struct {
	Index        int     `json:"index"`
	Label        string  `json:"label"`
	Days         int     `json:"days"`
	TotalSales   float64 `json:"totalSales"`
	MeanSales    float64 `json:"meanSales"`
	MaxSales     float64 `json:"maxSales"`
	MinSales     float64 `json:"minSales"`
	StdDev       float64 `json:"stdDev"` // sample, N-1
	CV           float64 `json:"cv"`     // stddev / mean
	Transactions int     `json:"transactions"`
	MeanTxns     float64 `json:"meanTransactions"`
	AvgTicket    float64 `json:"avgTicket"`
	Class        Class   `json:"class"`
}

// Slots computes the per-slot aggregates over the given records and
// classifies each slot against the quantile thresholds. The result
// always has exactly 46 entries in chronological order; with no input
// days every entry is zero and classified normal.
func Slots(records map[string]*model.DailyRecord, fractions Fractions) []SlotStat {
	out := make([]SlotStat, model.SlotCount)
	days := len(records)

	for i := range out {
		out[i] = SlotStat{Index: i, Label: model.SlotLabel(i), Days: days, Class: ClassNormal}
	}
	if days == 0 {
		return out
	}

	perSlot := make([][]float64, model.SlotCount)
	for _, record := range records {
		for i := range record.Slots {
			slot := record.Slots[i]
			perSlot[i] = append(perSlot[i], slot.Sales)
			out[i].TotalSales += slot.Sales
			out[i].Transactions += slot.Transactions
		}
	}

	for i := range out {
		values := perSlot[i]
		out[i].MeanSales = out[i].TotalSales / float64(days)
		out[i].MaxSales = maxOf(values)
		out[i].MinSales = minOf(values)
		out[i].StdDev = sampleStdDev(values, out[i].MeanSales)
		if out[i].MeanSales != 0 {
			out[i].CV = out[i].StdDev / out[i].MeanSales
		}
		out[i].MeanTxns = float64(out[i].Transactions) / float64(days)
		if out[i].Transactions > 0 {
			out[i].AvgTicket = out[i].TotalSales / float64(out[i].Transactions)
		}
	}

	classify(out, fractions)
	return out
}

// classify assigns peak/slow against the quantile thresholds of the
// per-slot mean sales. Peak wins when a flat distribution makes both
// thresholds coincide.
func classify(slots []SlotStat, fractions Fractions) {
	means := make([]float64, len(slots))
	for i, s := range slots {
		means[i] = s.MeanSales
	}
	sort.Float64s(means)

	peakAt := quantile(means, 1-clampFraction(fractions.Peak))
	slowAt := quantile(means, clampFraction(fractions.Slow))

	for i := range slots {
		switch {
		case slots[i].MeanSales >= peakAt:
			slots[i].Class = ClassPeak
		case slots[i].MeanSales <= slowAt:
			slots[i].Class = ClassSlow
		}
	}
}

// WeekdayStat aggregates the unified records of one day of the week.
type WeekdayStat struct {
	Weekday      string  `json:"weekday"`
	Days         int     `json:"days"`
	TotalSales   float64 `json:"totalSales"`
	MeanSales    float64 `json:"meanSales"`
	Transactions int     `json:"transactions"`
	AvgTicket    float64 `json:"avgTicket"`
}

// Weekdays aggregates gross after discounts and transactions per day of
// the week. Entries follow the accounting cycle, Thursday first, and
// cover all seven weekdays even when no record falls on one.
func Weekdays(records map[string]*model.DailyRecord) []WeekdayStat {
	byDay := make(map[time.Weekday]*WeekdayStat, 7)
	out := make([]WeekdayStat, 0, 7)
	for i := 0; i < 7; i++ {
		day := time.Weekday((int(model.WeekStartDay) + i) % 7)
		out = append(out, WeekdayStat{Weekday: day.String()})
		byDay[day] = &out[len(out)-1]
	}

	for _, record := range records {
		stat := byDay[record.Date.Weekday()]
		stat.Days++
		stat.TotalSales += record.GrossAfter
		stat.Transactions += record.Transactions
	}

	for i := range out {
		if out[i].Days > 0 {
			out[i].MeanSales = out[i].TotalSales / float64(out[i].Days)
		}
		if out[i].Transactions > 0 {
			out[i].AvgTicket = out[i].TotalSales / float64(out[i].Transactions)
		}
	}
	return out
}

// quantile interpolates linearly between the two nearest ranks of an
// ascending-sorted sample.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// sampleStdDev is the N-1 standard deviation; zero for fewer than two
// observations.
func sampleStdDev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

func clampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
