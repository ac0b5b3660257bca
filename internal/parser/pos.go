package parser

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/model"
)

// Normalized labels that open the slot block of a POS day sheet.
var slotHeaderLabels = []string{"time_slots", "time slots", "timeslots"}

// Column patterns for the slot table, tried in preference order.
var (
	slotSalesPatterns = []string{"sales net vat", "after discount", "sales"}
	slotTxnPatterns   = []string{"transaction", "checks", "count"}
)

// POSParser normalizes POS day sheets: a date banner, a financial control
// section of labelled figures, a payment block and a 15-minute slot table.
type POSParser struct {
	file       *excelize.File
	recognizer *SheetRecognizer
}

// NewPOSParser creates a parser over an opened workbook.
func NewPOSParser(file *excelize.File) *POSParser {
	return &POSParser{
		file:       file,
		recognizer: NewSheetRecognizer(),
	}
}

// ParseSheet normalizes one sheet into a DailyRecord. Field-level issues
// are returned as warnings with the field zero-filled; only an
// unusable sheet (wrong type, unreadable, no recognizable date) yields an
// error.
func (p *POSParser) ParseSheet(sheetName string) (*model.DailyRecord, []string, error) {
	rows, err := p.file.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %s: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, nil, &model.ParseError{Sheet: sheetName, Reason: "sheet is empty"}
	}

	if result := p.recognizer.Recognize(sheetName, rows); result.SheetType != SheetTypePOSDay {
		return nil, nil, fmt.Errorf("sheet %s is not a POS day sheet", sheetName)
	}

	date, ok := findSheetDate(rows)
	if !ok {
		return nil, nil, &model.ParseError{Sheet: sheetName, Reason: "no recognizable date"}
	}

	record := model.NewDailyRecord(date, model.SourcePOS)
	var warnings []string

	warnings = append(warnings, p.scanFields(sheetName, rows, record)...)
	warnings = append(warnings, p.parseSlots(sheetName, rows, record)...)

	return record, warnings, nil
}

// findSheetDate locates the sheet's date: a "Date" label row first, then
// any parseable date cell in the banner region.
func findSheetDate(rows [][]string) (time.Time, bool) {
	for _, row := range rows {
		label, idx := firstNonEmpty(row)
		if idx < 0 {
			continue
		}
		norm := NormalizeLabel(label)
		if norm == "date" || strings.HasPrefix(norm, "date:") || strings.HasPrefix(norm, "date ") {
			for i := idx + 1; i < len(row); i++ {
				if d, ok := ParseDate(row[i]); ok {
					return d, true
				}
			}
			// "Date: 05/02/2024" in a single cell
			if colon := strings.Index(label, ":"); colon >= 0 {
				if d, ok := ParseDate(label[colon+1:]); ok {
					return d, true
				}
			}
		}
	}
	limit := len(rows)
	if limit > 8 {
		limit = 8
	}
	for _, row := range rows[:limit] {
		for _, cell := range row {
			if d, ok := ParseDate(cell); ok {
				return d, true
			}
		}
	}
	return time.Time{}, false
}

// scanFields reads the labelled figures of the financial control and
// payment blocks against the enumerated POS schema. Absent required
// fields are zero-filled with a warning; the gross identity is
// reconciled from whichever two of the three figures are present.
func (p *POSParser) scanFields(sheetName string, rows [][]string, record *model.DailyRecord) []string {
	lookup := schemaLookup(posFieldSchema)

	start := 0
	end := len(rows)
	for i, row := range rows {
		label, idx := firstNonEmpty(row)
		if idx < 0 {
			continue
		}
		norm := NormalizeLabel(label)
		if strings.Contains(norm, "run financial control report") {
			start = i + 1
		}
		if containsVariant(norm, slotHeaderLabels) && i < end {
			end = i
		}
	}

	var warnings []string
	seen := make(map[FieldKey]bool)
	for _, row := range rows[start:end] {
		label, idx := firstNonEmpty(row)
		if idx < 0 {
			continue
		}
		key, ok := lookup[NormalizeLabel(label)]
		if !ok || seen[key] {
			continue
		}
		value, vok := nextAmount(row, idx)
		if !vok {
			warnings = append(warnings, fmt.Sprintf("sheet %s: field %q has no numeric value, treated as zero", sheetName, label))
			seen[key] = true
			continue
		}
		seen[key] = true
		switch key {
		case FieldGrossBefore:
			record.GrossBefore = value
		case FieldDiscounts:
			record.Discounts = value
		case FieldGrossAfter:
			record.GrossAfter = value
		case FieldNetVAT:
			record.NetVAT = value
		case FieldTransactions:
			record.Transactions = int(value + 0.5)
		case FieldCard:
			record.Payments.Card = value
		case FieldCash:
			record.Payments.Cash = value
		case FieldTax:
			record.Payments.Tax = value
		}
	}

	for _, spec := range posFieldSchema {
		if spec.Required && !seen[spec.Key] {
			warnings = append(warnings, (&model.MissingFieldError{Sheet: sheetName, Field: spec.Labels[0]}).Error())
		}
	}

	// Reconstruct whichever leg of gross_after = gross_before - discounts
	// the sheet left out; flag the sheet when all three disagree.
	switch {
	case seen[FieldGrossBefore] && seen[FieldDiscounts] && !seen[FieldGrossAfter]:
		record.GrossAfter = record.GrossBefore - record.Discounts
	case seen[FieldGrossAfter] && seen[FieldDiscounts] && !seen[FieldGrossBefore]:
		record.GrossBefore = record.GrossAfter + record.Discounts
	case seen[FieldGrossBefore] && seen[FieldGrossAfter] && !seen[FieldDiscounts]:
		record.Discounts = record.GrossBefore - record.GrossAfter
	case seen[FieldGrossBefore] && seen[FieldGrossAfter] && seen[FieldDiscounts]:
		if math.Abs(record.GrossBefore-record.Discounts-record.GrossAfter) > 0.01 {
			warnings = append(warnings, fmt.Sprintf(
				"sheet %s: gross figures disagree (before=%.2f discounts=%.2f after=%.2f)",
				sheetName, record.GrossBefore, record.Discounts, record.GrossAfter))
		}
	}

	return warnings
}

// parseSlots reads the 46-row slot table. Rows whose time label is not
// one of the canonical slots are ignored with a warning; the trailing
// Total row ends the table.
func (p *POSParser) parseSlots(sheetName string, rows [][]string, record *model.DailyRecord) []string {
	headerIdx := -1
	labelCol := -1
	for i, row := range rows {
		label, idx := firstNonEmpty(row)
		if idx < 0 {
			continue
		}
		if containsVariant(NormalizeLabel(label), slotHeaderLabels) {
			headerIdx = i
			labelCol = idx
			break
		}
	}
	if headerIdx < 0 {
		return []string{fmt.Sprintf("sheet %s: no time-slot block found", sheetName)}
	}

	header := rows[headerIdx]
	salesCol := findColumn(header, slotSalesPatterns, labelCol)
	txnCol := findColumn(header, slotTxnPatterns, labelCol, salesCol)
	if salesCol < 0 {
		return []string{fmt.Sprintf("sheet %s: slot table has no sales column", sheetName)}
	}

	var warnings []string
	for _, row := range rows[headerIdx+1:] {
		label, idx := firstNonEmpty(row)
		if idx < 0 {
			continue
		}
		if NormalizeLabel(label) == "total" {
			break
		}
		slotIdx, ok := SlotIndexFromLabel(label)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("sheet %s: slot label %q outside the 09:00-20:30 grid, ignored", sheetName, label))
			continue
		}
		var slot model.Slot
		if salesCol < len(row) {
			if v, ok := ParseAmount(row[salesCol]); ok {
				slot.Sales = v
			}
		}
		if txnCol >= 0 && txnCol < len(row) {
			if v, ok := ParseCount(row[txnCol]); ok {
				slot.Transactions = v
			}
		}
		record.Slots[slotIdx] = slot
	}

	return warnings
}
