package exporter

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/model"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/util"
)

// BuildStatement renders one week's commission report as a printable
// settlement statement. The line order mirrors the computation so the
// document can be checked against the numbers by hand.
func BuildStatement(report *model.CommissionReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Sodexo Nikos", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, "Weekly Commission Statement", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	meta := func(label, value string) {
		pdf.CellFormat(45, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
	}
	meta("Invoice ID", report.InvoiceID)
	meta("Week", report.WeekLabel)
	meta("Period", fmt.Sprintf("%s to %s",
		report.WeekStart.Format("Jan 2, 2006"), report.WeekEnd.Format("Jan 2, 2006")))
	meta("Partner", report.Partner)
	meta("Operator", report.Operator)
	if report.Partial {
		meta("Note", "Partial week, fewer than seven days of data")
	}
	pdf.Ln(4)

	section := func(title string) {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 8, title, "B", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
	}
	row := func(label, value string) {
		pdf.CellFormat(110, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, value, "", 1, "R", false, 0, "")
	}
	pct := func(v float64) string {
		return fmt.Sprintf("%.2f%%", v*100)
	}

	section("Sales")
	row("Gross sales after discounts", util.FormatCurrency(report.GrossAfter))
	row("Total discounts", util.FormatCurrency(report.Discounts))
	row("Gross sales before discounts", util.FormatCurrency(report.GrossBefore))
	row("Card sales (reported)", util.FormatCurrency(report.ManualCardSales))
	row("Tax collected (reported)", util.FormatCurrency(report.ManualTaxCollected))
	pdf.Ln(2)

	section("Fees and base")
	row(fmt.Sprintf("Card processing fee (%s of card sales)", pct(report.CardFeeRate)),
		util.FormatCurrency(report.CardFee))
	row("Commissionable base", util.FormatCurrency(report.CommissionableBase))
	pdf.Ln(2)

	section(report.Partner)
	row(fmt.Sprintf("Commission (%s of base)", pct(report.CommissionRate)),
		util.FormatCurrency(report.PartnerCommission))
	row("Net due after discounts deducted", util.FormatCurrency(report.PartnerNet))
	pdf.Ln(2)

	section(report.Operator)
	row("Retained after commission", util.FormatCurrency(report.OperatorCommission))
	row("Cash owed", util.FormatCurrency(report.CashOwed))
	row("Tax collected added back", util.FormatCurrency(report.ManualTaxCollected))
	pdf.SetFont("Arial", "B", 10)
	row("Total", util.FormatCurrency(report.OperatorTotal))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
