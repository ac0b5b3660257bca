package exporter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/model"
)

// The CSV shapes are flat tables for downstream consumption. Rows
// follow the input order, so sorted input yields deterministic output.

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func rate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteDailyCSV renders the unified daily table.
func WriteDailyCSV(w io.Writer, records []*model.DailyRecord) error {
	cw := csv.NewWriter(w)

	header := []string{
		"date", "day", "gross_before", "discounts", "gross_after", "net_vat",
		"transactions", "avg_ticket", "discount_rate_pct",
		"card", "cash", "tax", "source",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Key(),
			r.DayLabel,
			money(r.GrossBefore),
			money(r.Discounts),
			money(r.GrossAfter),
			money(r.NetVAT),
			strconv.Itoa(r.Transactions),
			money(r.AverageTicket()),
			money(r.DiscountRate()),
			money(r.Payments.Card),
			money(r.Payments.Cash),
			money(r.Payments.Tax),
			string(r.Source),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteWeeklyCSV renders the weekly aggregate table. Growth is empty,
// not zero, for weeks where it does not apply.
func WriteWeeklyCSV(w io.Writer, weeks []*model.WeeklyRecord) error {
	cw := csv.NewWriter(w)

	header := []string{
		"week_start", "week_end", "label", "invoice_id", "days", "partial",
		"gross_before", "discounts", "gross_after", "net_vat",
		"transactions", "avg_ticket", "growth_pct",
		"card", "cash", "tax",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, week := range weeks {
		growth := ""
		if week.GrowthPct != nil {
			growth = money(*week.GrowthPct)
		}
		row := []string{
			week.StartKey(),
			week.WeekEnd.Format(model.DateKey),
			week.Label,
			week.InvoiceID,
			strconv.Itoa(week.Days),
			strconv.FormatBool(week.Partial),
			money(week.GrossBefore),
			money(week.Discounts),
			money(week.GrossAfter),
			money(week.NetVAT),
			strconv.Itoa(week.Transactions),
			money(week.AverageTicket()),
			growth,
			money(week.Payments.Card),
			money(week.Payments.Cash),
			money(week.Payments.Tax),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCommissionCSV renders the per-week commission reports.
func WriteCommissionCSV(w io.Writer, reports []*model.CommissionReport) error {
	cw := csv.NewWriter(w)

	header := []string{
		"week_start", "week_end", "label", "invoice_id", "partial",
		"partner", "operator",
		"commission_rate", "card_fee_rate", "tax_rate",
		"manual_card_sales", "manual_tax_collected",
		"gross_after", "discounts", "gross_before",
		"card_fee", "commissionable_base",
		"partner_commission", "partner_net",
		"operator_commission", "cash_owed", "operator_total",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range reports {
		row := []string{
			r.WeekStart.Format(model.DateKey),
			r.WeekEnd.Format(model.DateKey),
			r.WeekLabel,
			r.InvoiceID,
			strconv.FormatBool(r.Partial),
			r.Partner,
			r.Operator,
			rate(r.CommissionRate),
			rate(r.CardFeeRate),
			rate(r.TaxRate),
			money(r.ManualCardSales),
			money(r.ManualTaxCollected),
			money(r.GrossAfter),
			money(r.Discounts),
			money(r.GrossBefore),
			money(r.CardFee),
			money(r.CommissionableBase),
			money(r.PartnerCommission),
			money(r.PartnerNet),
			money(r.OperatorCommission),
			money(r.CashOwed),
			money(r.OperatorTotal),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
