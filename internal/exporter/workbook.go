package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/merge"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/model"
)

// Day sheet layout, fixed order: banner and date header, financial
// control block, payment summary block, then the 46-row slot table
// with a trailing Total row. The slot table keeps the input labels so
// an exported workbook parses back in unchanged.
const (
	slotHeaderRow = 18
	firstSlotRow  = 19
)

// BuildWorkbook renders the unified daily collection as a workbook:
// a Summary sheet with the daily table, then one sheet per calendar
// day in ascending date order.
func BuildWorkbook(records map[string]*model.DailyRecord) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	sorted := merge.Sorted(records)

	if err := writeSummarySheet(f, sorted, headerStyle); err != nil {
		return nil, err
	}

	for _, record := range sorted {
		if err := writeDaySheet(f, record, headerStyle); err != nil {
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeSummarySheet(f *excelize.File, records []*model.DailyRecord, headerStyle int) error {
	sheet := "Summary"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Date", "Day", "Gross Before", "Discounts", "Gross After", "Net VAT",
		"Transactions", "Avg Ticket", "Discount Rate %",
		"Credit Card", "Cash", "Tax", "Source",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetRowStyle(sheet, 1, 1, headerStyle)

	for i, r := range records {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.Key())
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.DayLabel)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.GrossBefore)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.Discounts)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.GrossAfter)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.NetVAT)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.Transactions)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.AverageTicket())
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), r.DiscountRate())
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), r.Payments.Card)
		f.SetCellValue(sheet, fmt.Sprintf("K%d", row), r.Payments.Cash)
		f.SetCellValue(sheet, fmt.Sprintf("L%d", row), r.Payments.Tax)
		f.SetCellValue(sheet, fmt.Sprintf("M%d", row), string(r.Source))
	}

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "B", 12)
	f.SetColWidth(sheet, "C", "L", 14)

	return nil
}

func writeDaySheet(f *excelize.File, record *model.DailyRecord, headerStyle int) error {
	sheet := record.Key()
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	f.SetCellValue(sheet, "A1", "Sodexo Nikos")
	f.SetCellValue(sheet, "A2", "Date")
	f.SetCellValue(sheet, "B2", record.Key())
	f.SetCellValue(sheet, "A3", "Day")
	f.SetCellValue(sheet, "B3", record.DayLabel)

	f.SetCellValue(sheet, "A5", "Run Financial Control Report")
	control := []struct {
		label string
		value interface{}
	}{
		{"Gross Sales Before Discounts", record.GrossBefore},
		{"Total Discounts", record.Discounts},
		{"Gross Sales After Discounts", record.GrossAfter},
		{"Sales Net VAT", record.NetVAT},
		{"Transactions", record.Transactions},
		{"Average Ticket", record.AverageTicket()},
		{"Discount Rate %", record.DiscountRate()},
	}
	for i, field := range control {
		row := 6 + i
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), field.label)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), field.value)
	}

	f.SetCellValue(sheet, "A13", "Payment Summary")
	payments := []struct {
		label string
		value float64
	}{
		{"Credit Card", record.Payments.Card},
		{"Cash", record.Payments.Cash},
		{"Tax", record.Payments.Tax},
	}
	for i, field := range payments {
		row := 14 + i
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), field.label)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), field.value)
	}

	f.SetCellValue(sheet, fmt.Sprintf("A%d", slotHeaderRow), "Time_slots")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", slotHeaderRow), "Sales Net VAT")
	f.SetCellValue(sheet, fmt.Sprintf("C%d", slotHeaderRow), "Transactions")
	f.SetRowStyle(sheet, slotHeaderRow, slotHeaderRow, headerStyle)

	for i := 0; i < model.SlotCount; i++ {
		row := firstSlotRow + i
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), model.SlotLabel(i))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), record.Slots[i].Sales)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), record.Slots[i].Transactions)
	}

	totalRow := firstSlotRow + model.SlotCount
	f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", totalRow), record.Slots.TotalSales())
	f.SetCellValue(sheet, fmt.Sprintf("C%d", totalRow), record.Slots.TotalTransactions())

	f.SetColWidth(sheet, "A", "A", 28)
	f.SetColWidth(sheet, "B", "C", 16)

	return nil
}
