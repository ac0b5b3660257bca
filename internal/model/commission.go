package model

import "time"

// Default party names used on commission reports and statements.
const (
	PartnerName  = "Aramark"
	OperatorName = "Niko"
)

// CommissionReport is the stateless profit-split view over one weekly
// record. Every intermediate of the fixed formula is retained so the
// report can be audited line by line. It has no independent lifecycle:
// recomputed on demand, never stored.
type CommissionReport struct {
	WeekStart time.Time `json:"weekStart"`
	WeekEnd   time.Time `json:"weekEnd"`
	WeekLabel string    `json:"weekLabel"`
	InvoiceID string    `json:"invoiceId"`
	Partial   bool      `json:"partial"`

	Partner  string `json:"partner"`
	Operator string `json:"operator"`

	CommissionRate float64 `json:"commissionRate"`
	CardFeeRate    float64 `json:"cardFeeRate"`
	TaxRate        float64 `json:"taxRate"`

	ManualCardSales    float64 `json:"manualCardSales"`
	ManualTaxCollected float64 `json:"manualTaxCollected"`

	GrossAfter  float64 `json:"grossAfter"`
	Discounts   float64 `json:"discounts"`
	GrossBefore float64 `json:"grossBefore"`

	CardFee            float64 `json:"cardFee"`
	CommissionableBase float64 `json:"commissionableBase"`

	PartnerCommission float64 `json:"partnerCommission"`
	PartnerNet        float64 `json:"partnerNet"`

	OperatorCommission float64 `json:"operatorCommission"`
	CashOwed           float64 `json:"cashOwed"`
	OperatorTotal      float64 `json:"operatorTotal"`
}
