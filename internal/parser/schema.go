package parser

// FieldKey identifies one canonical figure of the per-day record.
type FieldKey string

const (
	FieldGrossBefore  FieldKey = "gross_before"
	FieldDiscounts    FieldKey = "discounts"
	FieldGrossAfter   FieldKey = "gross_after"
	FieldNetVAT       FieldKey = "net_vat"
	FieldTransactions FieldKey = "transactions"
	FieldCard         FieldKey = "card"
	FieldCash         FieldKey = "cash"
	FieldTax          FieldKey = "tax"
)

// FieldSpec declares one labelled figure a source sheet may carry: the
// canonical key, the label variants it appears under (matched after
// NormalizeLabel), and whether its absence is worth a warning. The per
// source schemas below are the single place field lookups are defined;
// parsing validates against them once and downstream stages only ever
// see the typed record.
type FieldSpec struct {
	Key      FieldKey
	Labels   []string
	Required bool
}

// posFieldSchema enumerates the financial-control and payment figures of
// a POS day sheet.
var posFieldSchema = []FieldSpec{
	{
		Key:      FieldGrossBefore,
		Labels:   []string{"gross sales before discounts", "gross sales before discount", "gross before discounts"},
		Required: true,
	},
	{
		Key:      FieldDiscounts,
		Labels:   []string{"total discounts", "total discount", "discounts"},
		Required: true,
	},
	{
		Key:      FieldGrossAfter,
		Labels:   []string{"gross sales after discounts", "gross sales after discount", "gross after discounts"},
		Required: true,
	},
	{
		Key:      FieldNetVAT,
		Labels:   []string{"sales net vat", "net vat", "sales net of vat"},
		Required: false,
	},
	{
		Key:      FieldTransactions,
		Labels:   []string{"transactions", "transaction count", "checks", "check count", "customer count"},
		Required: true,
	},
	{
		Key:      FieldCard,
		Labels:   []string{"credit card", "credit cards", "credit card sales", "card"},
		Required: false,
	},
	{
		Key:      FieldCash,
		Labels:   []string{"cash", "cash sales"},
		Required: false,
	},
	{
		Key:      FieldTax,
		Labels:   []string{"tax", "total tax", "tax amount", "vat"},
		Required: false,
	},
}

// onlineFieldSchema enumerates the figures of an online-ordering sheet.
// The gross figure is the amount actually charged, i.e. after discounts.
var onlineFieldSchema = []FieldSpec{
	{
		Key:      FieldGrossAfter,
		Labels:   []string{"gross sales", "total sales", "gross sales after discounts", "sales", "order total"},
		Required: true,
	},
	{
		Key:      FieldDiscounts,
		Labels:   []string{"discounts", "total discounts", "discount", "discount amount"},
		Required: true,
	},
	{
		Key:      FieldTransactions,
		Labels:   []string{"orders", "total orders", "order count", "transactions"},
		Required: true,
	},
}

// schemaLookup indexes a schema by normalized label for exact matching.
func schemaLookup(schema []FieldSpec) map[string]FieldKey {
	lookup := make(map[string]FieldKey)
	for _, spec := range schema {
		for _, label := range spec.Labels {
			lookup[label] = spec.Key
		}
	}
	return lookup
}
