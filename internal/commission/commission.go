// Package commission computes the weekly profit split between the
// partner and the operator. The calculation is a pure function of one
// weekly record, the rate parameters and the operator's manual inputs;
// reports are recomputed on demand and never stored.
package commission

import (
	"github.com/shopspring/decimal"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/model"
)

// Policy resolves the open business questions of the split. The
// operation is assumed card-only by default, which fixes cash owed at
// zero; turning the assumption off deducts the week's recorded cash
// takings from the operator's side instead.
type Policy struct {
	AssumeCardOnly bool
}

// DefaultPolicy keeps the card-only assumption on.
func DefaultPolicy() Policy {
	return Policy{AssumeCardOnly: true}
}

// Compute derives the commission report for one week. The formula runs
// in fixed order on decimal arithmetic and every intermediate is
// retained in the report:
//
//	gross_before = gross_after + discounts
//	card_fee     = manual_card_sales x card_fee_rate
//	base         = gross_before - card_fee
//	partner      = base x commission_rate, net of discounts
//	operator     = base x (1 - commission_rate)
//	total        = operator - cash_owed + manual_tax_collected
//
// Discounts are deducted from the partner's share only. Rates are
// validated first (ValidationError); a week without manual inputs
// yields a MissingInputError and leaves other weeks unaffected.
func Compute(week *model.WeeklyRecord, rates Rates, policy Policy) (*model.CommissionReport, error) {
	if err := rates.Validate(); err != nil {
		return nil, err
	}
	if week.Manual == nil {
		return nil, &model.MissingInputError{WeekStart: week.WeekStart, Field: "card sales"}
	}

	grossAfter := decimal.NewFromFloat(week.GrossAfter)
	discounts := decimal.NewFromFloat(week.Discounts)
	grossBefore := grossAfter.Add(discounts)

	cardFee := decimal.NewFromFloat(week.Manual.CardSales).
		Mul(decimal.NewFromFloat(rates.CardFee))
	base := grossBefore.Sub(cardFee)

	rate := decimal.NewFromFloat(rates.Commission)
	partner := base.Mul(rate)
	partnerNet := partner.Sub(discounts)

	operator := base.Mul(decimal.NewFromInt(1).Sub(rate))

	cashOwed := decimal.Zero
	if !policy.AssumeCardOnly {
		cashOwed = decimal.NewFromFloat(week.Payments.Cash)
	}
	operatorTotal := operator.Sub(cashOwed).
		Add(decimal.NewFromFloat(week.Manual.TaxCollected))

	return &model.CommissionReport{
		WeekStart: week.WeekStart,
		WeekEnd:   week.WeekEnd,
		WeekLabel: week.Label,
		InvoiceID: week.InvoiceID,
		Partial:   week.Partial,

		Partner:  model.PartnerName,
		Operator: model.OperatorName,

		CommissionRate: rates.Commission,
		CardFeeRate:    rates.CardFee,
		TaxRate:        rates.Tax,

		ManualCardSales:    week.Manual.CardSales,
		ManualTaxCollected: week.Manual.TaxCollected,

		GrossAfter:  round2(grossAfter),
		Discounts:   round2(discounts),
		GrossBefore: round2(grossBefore),

		CardFee:            round2(cardFee),
		CommissionableBase: round2(base),

		PartnerCommission: round2(partner),
		PartnerNet:        round2(partnerNet),

		OperatorCommission: round2(operator),
		CashOwed:           round2(cashOwed),
		OperatorTotal:      round2(operatorTotal),
	}, nil
}

// round2 rounds half away from zero to two decimals at the report
// boundary; intermediates stay exact.
func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
