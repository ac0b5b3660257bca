package parser

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

// setRow writes one fixture row starting at column A.
func setRow(t *testing.T, f *excelize.File, sheet string, row int, values ...interface{}) {
	t.Helper()
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			t.Fatalf("set cell %s: %v", cell, err)
		}
	}
}

// buildPOSDaySheet writes a full POS day sheet: banner, financial control
// section, payment figures, day-part table and slot block.
func buildPOSDaySheet(t *testing.T, f *excelize.File, sheet, date string) {
	t.Helper()
	if _, err := f.NewSheet(sheet); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	setRow(t, f, sheet, 1, "Sodexo Nikos")
	setRow(t, f, sheet, 2, "Date", date)
	setRow(t, f, sheet, 3, "Day", "Thursday")
	setRow(t, f, sheet, 5, "Run Financial Control Report")
	setRow(t, f, sheet, 6, "Gross Sales Before Discounts", 1050.0)
	setRow(t, f, sheet, 7, "Total Discounts", 50.0)
	setRow(t, f, sheet, 8, "Gross Sales After Discounts", 1000.0)
	setRow(t, f, sheet, 9, "Sales Net VAT", 920.0)
	setRow(t, f, sheet, 10, "Transactions", 40)
	setRow(t, f, sheet, 11, "Credit Card", 900.0)
	setRow(t, f, sheet, 12, "Cash", 100.0)
	setRow(t, f, sheet, 13, "Tax", 80.0)
	setRow(t, f, sheet, 14, "Day Part Summary")
	setRow(t, f, sheet, 15, "Lunch", 600.0)
	setRow(t, f, sheet, 16, "Dinner", 400.0)
	setRow(t, f, sheet, 18, "Time_slots", "Sales Net VAT", "Transactions")
	setRow(t, f, sheet, 19, "9:00 AM", 500.0, 20)
	setRow(t, f, sheet, 20, "9:15 AM", 300.0, 12)
	setRow(t, f, sheet, 21, "1:30 PM", 200.0, 8)
	setRow(t, f, sheet, 22, "9:07 PM", 55.0, 1)
	setRow(t, f, sheet, 23, "Total", 1000.0, 40)
}

// buildOnlineOrderSheet writes an order-level online table covering two
// dates plus one row with an unparseable date.
func buildOnlineOrderSheet(t *testing.T, f *excelize.File, sheet string) {
	t.Helper()
	if _, err := f.NewSheet(sheet); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	setRow(t, f, sheet, 1, "Online Orders Report")
	setRow(t, f, sheet, 2, "Date", "Order Total", "Discount", "Order ID")
	setRow(t, f, sheet, 3, "05/02/2024", 45.50, 2.00, "A-1001")
	setRow(t, f, sheet, 4, "05/02/2024", 30.00, 0.0, "A-1002")
	setRow(t, f, sheet, 5, "05/03/2024", 25.00, 1.50, "A-1003")
	setRow(t, f, sheet, 6, "not-a-date", 10.00, 0.0, "A-1004")
}
