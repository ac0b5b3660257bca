package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/model"
)

// Header patterns of the order table, tried in preference order.
var (
	onlineGrossPatterns  = []string{"gross sales", "order total", "total sales", "gross", "sales", "amount"}
	onlineOrdersPatterns = []string{"orders", "order count", "transactions", "qty"}
)

// OnlineParser normalizes online-ordering sheets. The platform exports
// either a table of order-level rows (date, order total, discount) or a
// per-day banner of totals; both carry gross after discounts and no
// payment split or slot data.
type OnlineParser struct {
	file       *excelize.File
	recognizer *SheetRecognizer
}

// NewOnlineParser creates a parser over an opened workbook.
func NewOnlineParser(file *excelize.File) *OnlineParser {
	return &OnlineParser{
		file:       file,
		recognizer: NewSheetRecognizer(),
	}
}

// ParseSheet normalizes one sheet into one DailyRecord per distinct date
// found. Rows with unparseable dates are skipped with a warning.
func (p *OnlineParser) ParseSheet(sheetName string) ([]*model.DailyRecord, []string, error) {
	rows, err := p.file.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %s: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, nil, &model.ParseError{Sheet: sheetName, Reason: "sheet is empty"}
	}

	if result := p.recognizer.Recognize(sheetName, rows); result.SheetType != SheetTypeOnline {
		return nil, nil, fmt.Errorf("sheet %s is not an online-ordering sheet", sheetName)
	}

	if headerIdx, cols, ok := findOrderTable(rows); ok {
		return p.parseOrderRows(sheetName, rows, headerIdx, cols)
	}
	return p.parseBanner(sheetName, rows)
}

// orderColumns are the resolved column indexes of the order table. Only
// the date and gross columns are mandatory; -1 marks an absent column.
type orderColumns struct {
	date     int
	gross    int
	discount int
	orders   int
}

// findOrderTable locates the order table's header row and columns.
func findOrderTable(rows [][]string) (int, orderColumns, bool) {
	for i, row := range rows {
		cols := orderColumns{date: -1, gross: -1, discount: -1, orders: -1}
		for j, cell := range row {
			norm := NormalizeLabel(cell)
			if norm == "" {
				continue
			}
			if cols.date < 0 && strings.Contains(norm, "date") {
				cols.date = j
			}
			if cols.discount < 0 && strings.Contains(norm, "discount") {
				cols.discount = j
			}
		}
		if cols.date < 0 {
			continue
		}
		cols.gross = findColumn(row, onlineGrossPatterns, cols.date, cols.discount)
		cols.orders = findColumn(row, onlineOrdersPatterns, cols.date, cols.discount, cols.gross)
		if cols.gross >= 0 {
			return i, cols, true
		}
	}
	return 0, orderColumns{}, false
}

// parseOrderRows folds order-level rows into per-date records.
func (p *OnlineParser) parseOrderRows(sheetName string, rows [][]string, headerIdx int, cols orderColumns) ([]*model.DailyRecord, []string, error) {
	byDate := make(map[string]*model.DailyRecord)
	var warnings []string

	for i, row := range rows[headerIdx+1:] {
		label, idx := firstNonEmpty(row)
		if idx < 0 {
			continue
		}
		if NormalizeLabel(label) == "total" {
			break
		}
		var dateCell string
		if cols.date < len(row) {
			dateCell = row[cols.date]
		}
		date, ok := ParseDate(dateCell)
		if !ok {
			rowNo := headerIdx + i + 2
			warnings = append(warnings, (&model.ParseError{
				Sheet: sheetName, Row: rowNo, Value: dateCell, Reason: "unrecognized date, row skipped",
			}).Error())
			continue
		}

		key := date.Format(model.DateKey)
		record := byDate[key]
		if record == nil {
			record = model.NewDailyRecord(date, model.SourceOnline)
			byDate[key] = record
		}
		if cols.gross < len(row) {
			if v, ok := ParseAmount(row[cols.gross]); ok {
				record.GrossAfter += v
			}
		}
		if cols.discount >= 0 && cols.discount < len(row) {
			if v, ok := ParseAmount(row[cols.discount]); ok {
				record.Discounts += v
			}
		}
		if cols.orders >= 0 && cols.orders < len(row) {
			if v, ok := ParseCount(row[cols.orders]); ok {
				record.Transactions += v
				continue
			}
		}
		record.Transactions++
	}

	records := make([]*model.DailyRecord, 0, len(byDate))
	for _, record := range byDate {
		// The platform reports the charged amount, i.e. net of discounts.
		record.GrossBefore = record.GrossAfter + record.Discounts
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })

	return records, warnings, nil
}

// parseBanner reads a per-day sheet of labelled totals.
func (p *OnlineParser) parseBanner(sheetName string, rows [][]string) ([]*model.DailyRecord, []string, error) {
	date, ok := findSheetDate(rows)
	if !ok {
		return nil, nil, &model.ParseError{Sheet: sheetName, Reason: "no recognizable date"}
	}

	record := model.NewDailyRecord(date, model.SourceOnline)
	lookup := schemaLookup(onlineFieldSchema)
	seen := make(map[FieldKey]bool)
	var warnings []string

	for _, row := range rows {
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
		case FieldGrossAfter:
			record.GrossAfter = value
		case FieldDiscounts:
			record.Discounts = value
		case FieldTransactions:
			record.Transactions = int(value + 0.5)
		}
	}

	for _, spec := range onlineFieldSchema {
		if spec.Required && !seen[spec.Key] {
			warnings = append(warnings, (&model.MissingFieldError{Sheet: sheetName, Field: spec.Labels[0]}).Error())
		}
	}

	record.GrossBefore = record.GrossAfter + record.Discounts
	return []*model.DailyRecord{record}, warnings, nil
}
