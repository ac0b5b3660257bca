package store

import (
	"database/sql"
	"fmt"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/model"
)

// UpsertManualInputs stores the operator-entered figures for the week
// starting at weekStart (YYYY-MM-DD, a Thursday).
func (s *Store) UpsertManualInputs(weekStart string, inputs model.ManualInputs) error {
	_, err := s.db.Exec(`
		INSERT INTO manual_inputs (week_start, card_sales, tax_collected)
		VALUES (?, ?, ?)
		ON CONFLICT(week_start) DO UPDATE SET
			card_sales = excluded.card_sales,
			tax_collected = excluded.tax_collected,
			updated_at = CURRENT_TIMESTAMP
	`, weekStart, inputs.CardSales, inputs.TaxCollected)
	if err != nil {
		return fmt.Errorf("failed to upsert manual inputs: %w", err)
	}
	return nil
}

// GetManualInputs returns the stored figures for one week, or nil when
// none have been entered.
func (s *Store) GetManualInputs(weekStart string) (*model.ManualInputs, error) {
	var inputs model.ManualInputs
	err := s.db.QueryRow(`
		SELECT card_sales, tax_collected FROM manual_inputs WHERE week_start = ?
	`, weekStart).Scan(&inputs.CardSales, &inputs.TaxCollected)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query manual inputs: %w", err)
	}
	return &inputs, nil
}

// AllManualInputs returns every stored week's figures keyed by week
// start.
func (s *Store) AllManualInputs() (map[string]model.ManualInputs, error) {
	rows, err := s.db.Query("SELECT week_start, card_sales, tax_collected FROM manual_inputs")
	if err != nil {
		return nil, fmt.Errorf("failed to query manual inputs: %w", err)
	}
	defer rows.Close()

	out := make(map[string]model.ManualInputs)
	for rows.Next() {
		var weekStart string
		var inputs model.ManualInputs
		if err := rows.Scan(&weekStart, &inputs.CardSales, &inputs.TaxCollected); err != nil {
			return nil, fmt.Errorf("failed to scan manual inputs: %w", err)
		}
		out[weekStart] = inputs
	}

	return out, rows.Err()
}

// DeleteManualInputs removes one week's figures.
func (s *Store) DeleteManualInputs(weekStart string) error {
	_, err := s.db.Exec("DELETE FROM manual_inputs WHERE week_start = ?", weekStart)
	if err != nil {
		return fmt.Errorf("failed to delete manual inputs: %w", err)
	}
	return nil
}
