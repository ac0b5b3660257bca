// Package merge unifies the per-source daily collections into one
// dataset keyed by date. Merging is field-wise summation: associative,
// commutative, and incapable of dropping a date present in any source.
package merge

import (
	"sort"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/model"
)

// Combine returns the field-wise sum of two records for the same date.
// Totals, payment splits and slot series are summed index-wise; the
// operands are left untouched.
func Combine(a, b *model.DailyRecord) *model.DailyRecord {
	out := *a
	out.GrossBefore += b.GrossBefore
	out.Discounts += b.Discounts
	out.GrossAfter += b.GrossAfter
	out.NetVAT += b.NetVAT
	out.Transactions += b.Transactions
	out.Payments = a.Payments.Add(b.Payments)
	out.Slots = a.Slots.Add(b.Slots)
	if a.Source != b.Source {
		out.Source = model.SourceMerged
	}
	return &out
}

// Merge unifies any number of per-source collections. A date present in
// several sources gets its fields summed; a date present in one source
// is carried through unchanged. No date is ever dropped.
func Merge(sources ...map[string]*model.DailyRecord) map[string]*model.DailyRecord {
	unified := make(map[string]*model.DailyRecord)
	for _, source := range sources {
		for key, record := range source {
			if existing, ok := unified[key]; ok {
				unified[key] = Combine(existing, record)
				continue
			}
			clone := *record
			unified[key] = &clone
		}
	}
	return unified
}

// SortedDates returns the collection's date keys in ascending calendar
// order. Keys are ISO formatted, so string order is date order.
func SortedDates(records map[string]*model.DailyRecord) []string {
	keys := make([]string, 0, len(records))
	for key := range records {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Sorted returns the records in ascending date order for presentation.
func Sorted(records map[string]*model.DailyRecord) []*model.DailyRecord {
	out := make([]*model.DailyRecord, 0, len(records))
	for _, key := range SortedDates(records) {
		out = append(out, records[key])
	}
	return out
}
