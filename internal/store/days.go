package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/model"
)

// UpsertDays replaces the stored rows for each record's (date, source)
// pair inside one transaction. Slots with no activity are not stored.
func (s *Store) UpsertDays(records []*model.DailyRecord, sourceSheet, sourceFile string) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	delDay, err := tx.Prepare("DELETE FROM source_days WHERE date = ? AND source = ?")
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer delDay.Close()

	delSlots, err := tx.Prepare("DELETE FROM source_slots WHERE date = ? AND source = ?")
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer delSlots.Close()

	insDay, err := tx.Prepare(`
		INSERT INTO source_days (
			date, source, day_label,
			gross_before, discounts, gross_after, net_vat,
			transactions, card, cash, tax,
			source_sheet, source_file
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer insDay.Close()

	insSlot, err := tx.Prepare(`
		INSERT INTO source_slots (date, source, slot_index, sales, transactions)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer insSlot.Close()

	for _, r := range records {
		date := r.Key()
		source := string(r.Source)

		if _, err := delDay.Exec(date, source); err != nil {
			return fmt.Errorf("failed to delete day row: %w", err)
		}
		if _, err := delSlots.Exec(date, source); err != nil {
			return fmt.Errorf("failed to delete slot rows: %w", err)
		}

		_, err := insDay.Exec(
			date, source, r.DayLabel,
			r.GrossBefore, r.Discounts, r.GrossAfter, r.NetVAT,
			r.Transactions, r.Payments.Card, r.Payments.Cash, r.Payments.Tax,
			sourceSheet, sourceFile,
		)
		if err != nil {
			return fmt.Errorf("failed to insert day row: %w", err)
		}

		for i := range r.Slots {
			slot := r.Slots[i]
			if slot.Sales == 0 && slot.Transactions == 0 {
				continue
			}
			if _, err := insSlot.Exec(date, source, i, slot.Sales, slot.Transactions); err != nil {
				return fmt.Errorf("failed to insert slot row: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DayQueryOptions filters stored daily records. Nil fields are ignored;
// From/To are inclusive YYYY-MM-DD bounds.
type DayQueryOptions struct {
	From   *string
	To     *string
	Source *string
	Limit  int
	Offset int
}

// GetDays returns stored daily records matching the options, ordered by
// date then source, with their slot series attached.
func (s *Store) GetDays(opts DayQueryOptions) ([]*model.DailyRecord, error) {
	query := "SELECT date, source, day_label, gross_before, discounts, gross_after, net_vat, transactions, card, cash, tax FROM source_days WHERE 1=1"
	args := []interface{}{}

	if opts.From != nil {
		query += " AND date >= ?"
		args = append(args, *opts.From)
	}
	if opts.To != nil {
		query += " AND date <= ?"
		args = append(args, *opts.To)
	}
	if opts.Source != nil {
		query += " AND source = ?"
		args = append(args, *opts.Source)
	}

	query += " ORDER BY date, source"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	records, index, err := s.scanDayRows(rows)
	if err != nil {
		return nil, err
	}
	rows.Close()

	if err := s.attachSlots(opts, index); err != nil {
		return nil, err
	}

	return records, nil
}

// CountDays counts stored daily records matching the options.
func (s *Store) CountDays(opts DayQueryOptions) (int, error) {
	query := "SELECT COUNT(*) FROM source_days WHERE 1=1"
	args := []interface{}{}

	if opts.From != nil {
		query += " AND date >= ?"
		args = append(args, *opts.From)
	}
	if opts.To != nil {
		query += " AND date <= ?"
		args = append(args, *opts.To)
	}
	if opts.Source != nil {
		query += " AND source = ?"
		args = append(args, *opts.Source)
	}

	var count int
	if err := s.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count: %w", err)
	}

	return count, nil
}

// DateRange returns the earliest and latest stored dates, or empty
// strings when no data is stored.
func (s *Store) DateRange() (string, string, error) {
	var min, max sql.NullString
	err := s.db.QueryRow("SELECT MIN(date), MAX(date) FROM source_days").Scan(&min, &max)
	if err != nil {
		return "", "", fmt.Errorf("failed to query date range: %w", err)
	}
	return min.String, max.String, nil
}

// DeleteDaysBySource removes all rows of one source, slots included.
func (s *Store) DeleteDaysBySource(source string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM source_days WHERE source = ?", source); err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM source_slots WHERE source = ?", source); err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}

	return tx.Commit()
}

func (s *Store) scanDayRows(rows *sql.Rows) ([]*model.DailyRecord, map[string]*model.DailyRecord, error) {
	var results []*model.DailyRecord
	index := make(map[string]*model.DailyRecord)

	for rows.Next() {
		var dateStr, source string
		r := &model.DailyRecord{}
		err := rows.Scan(
			&dateStr, &source, &r.DayLabel,
			&r.GrossBefore, &r.Discounts, &r.GrossAfter, &r.NetVAT,
			&r.Transactions, &r.Payments.Card, &r.Payments.Cash, &r.Payments.Tax,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan row: %w", err)
		}

		date, err := time.Parse(model.DateKey, dateStr)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse stored date %q: %w", dateStr, err)
		}
		r.Date = model.Midnight(date)
		r.Source = model.Source(source)

		results = append(results, r)
		index[dateStr+"|"+source] = r
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("rows error: %w", err)
	}

	return results, index, nil
}

// attachSlots loads slot rows in one query and fills them into the
// scanned records.
func (s *Store) attachSlots(opts DayQueryOptions, index map[string]*model.DailyRecord) error {
	if len(index) == 0 {
		return nil
	}

	query := "SELECT date, source, slot_index, sales, transactions FROM source_slots WHERE 1=1"
	args := []interface{}{}

	if opts.From != nil {
		query += " AND date >= ?"
		args = append(args, *opts.From)
	}
	if opts.To != nil {
		query += " AND date <= ?"
		args = append(args, *opts.To)
	}
	if opts.Source != nil {
		query += " AND source = ?"
		args = append(args, *opts.Source)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return fmt.Errorf("failed to query slots: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var dateStr, source string
		var idx int
		var sales float64
		var transactions int
		if err := rows.Scan(&dateStr, &source, &idx, &sales, &transactions); err != nil {
			return fmt.Errorf("failed to scan slot row: %w", err)
		}

		r, ok := index[dateStr+"|"+source]
		if !ok || idx < 0 || idx >= model.SlotCount {
			continue
		}
		r.Slots[idx].Sales = sales
		r.Slots[idx].Transactions = transactions
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows error: %w", err)
	}

	return nil
}
