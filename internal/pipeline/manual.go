package pipeline

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/model"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/week"
)

// manualEntry is one week's table in the manual-inputs file:
//
//	["2025-02-06"]
//	card_sales = 6000.0
//	tax_collected = 450.0
type manualEntry struct {
	CardSales    float64 `toml:"card_sales" validate:"gte=0"`
	TaxCollected float64 `toml:"tax_collected" validate:"gte=0"`
}

var validate = validator.New()

// LoadManualInputs reads per-week manual scalars from a TOML file keyed
// by date. Keys that fall mid-week resolve to their week's Thursday.
func LoadManualInputs(path string) (map[string]model.ManualInputs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &model.FileAccessError{Path: path, Op: "read", Err: err}
	}

	var raw map[string]manualEntry
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse manual inputs %s: %w", path, err)
	}

	out := make(map[string]model.ManualInputs, len(raw))
	for key, entry := range raw {
		date, err := time.Parse(model.DateKey, key)
		if err != nil {
			return nil, fmt.Errorf("manual inputs %s: week key %q is not a date", path, key)
		}
		if err := validate.Struct(entry); err != nil {
			return nil, &model.ValidationError{
				Param:  "manual." + key,
				Value:  entry.CardSales,
				Reason: "card sales and tax collected must be non-negative",
			}
		}
		out[week.Start(date).Format(model.DateKey)] = model.ManualInputs{
			CardSales:    entry.CardSales,
			TaxCollected: entry.TaxCollected,
		}
	}
	return out, nil
}
