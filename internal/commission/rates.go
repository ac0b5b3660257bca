package commission

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/model"
)

// Rates are the three configurable fractions of the split formula. Each
// must lie in the closed range [0, 1]; anything else is rejected before
// arithmetic runs.
type Rates struct {
	Commission float64 `json:"commissionRate" validate:"gte=0,lte=1"`
	CardFee    float64 `json:"cardFeeRate" validate:"gte=0,lte=1"`
	Tax        float64 `json:"taxRate" validate:"gte=0,lte=1"`
}

// DefaultRates are the stated business defaults: 20% commission, 3%
// card fee, 8% tax.
func DefaultRates() Rates {
	return Rates{
		Commission: 0.20,
		CardFee:    0.03,
		Tax:        0.08,
	}
}

var validate = validator.New()

// rateParams maps struct fields to the parameter names surfaced in
// validation errors.
var rateParams = map[string]string{
	"Commission": "commission_rate",
	"CardFee":    "card_fee_rate",
	"Tax":        "tax_rate",
}

// Validate rejects out-of-range rates. The returned error is a
// model.ValidationError naming the first offending parameter.
func (r Rates) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		f := fields[0]
		value, _ := f.Value().(float64)
		return &model.ValidationError{
			Param:  rateParams[f.StructField()],
			Value:  value,
			Reason: "rate must be within [0, 1]",
		}
	}
	return err
}
