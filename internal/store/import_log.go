package store

import (
	"database/sql"
	"fmt"
)

// ImportLog is one workbook import, as recorded for the status view.
type ImportLog struct {
	ID             int64  `json:"id"`
	Filename       string `json:"filename"`
	TotalSheets    int    `json:"totalSheets"`
	ImportedSheets int    `json:"importedSheets"`
	SkippedSheets  int    `json:"skippedSheets"`
	ErrorSheets    int    `json:"errorSheets"`
	Days           int    `json:"days"`
	Status         string `json:"status"`
	ErrorMessage   string `json:"errorMessage,omitempty"`
	StartedAt      string `json:"startedAt"`
	CompletedAt    string `json:"completedAt,omitempty"`
}

// CreateImportLog records the start of an import and returns its id.
func (s *Store) CreateImportLog(filename, filePath string, fileSize int64, fileHash string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO import_logs (filename, file_path, file_size, file_hash, status)
		VALUES (?, ?, ?, ?, 'processing')
	`, filename, filePath, fileSize, fileHash)
	if err != nil {
		return 0, fmt.Errorf("failed to create import log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get import log id: %w", err)
	}
	return id, nil
}

// UpdateImportLog records the outcome of an import.
func (s *Store) UpdateImportLog(id int64, totalSheets, importedSheets, skippedSheets, errorSheets, days int, status, errorMessage string) error {
	_, err := s.db.Exec(`
		UPDATE import_logs SET
			total_sheets = ?,
			imported_sheets = ?,
			skipped_sheets = ?,
			error_sheets = ?,
			days = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, totalSheets, importedSheets, skippedSheets, errorSheets, days, status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to update import log: %w", err)
	}
	return nil
}

// LastImportLog returns the most recent import, or nil when none exist.
func (s *Store) LastImportLog() (*ImportLog, error) {
	row := s.db.QueryRow(`
		SELECT id, filename, total_sheets, imported_sheets, skipped_sheets,
			error_sheets, days, status, error_message,
			started_at, COALESCE(completed_at, '')
		FROM import_logs
		ORDER BY id DESC
		LIMIT 1
	`)

	log := &ImportLog{}
	err := row.Scan(
		&log.ID, &log.Filename, &log.TotalSheets, &log.ImportedSheets,
		&log.SkippedSheets, &log.ErrorSheets, &log.Days, &log.Status,
		&log.ErrorMessage, &log.StartedAt, &log.CompletedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query import log: %w", err)
	}

	return log, nil
}

// ListImportLogs returns recent imports, newest first.
func (s *Store) ListImportLogs(limit int) ([]ImportLog, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, filename, total_sheets, imported_sheets, skipped_sheets,
			error_sheets, days, status, error_message,
			started_at, COALESCE(completed_at, '')
		FROM import_logs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query import logs: %w", err)
	}
	defer rows.Close()

	var out []ImportLog
	for rows.Next() {
		var log ImportLog
		err := rows.Scan(
			&log.ID, &log.Filename, &log.TotalSheets, &log.ImportedSheets,
			&log.SkippedSheets, &log.ErrorSheets, &log.Days, &log.Status,
			&log.ErrorMessage, &log.StartedAt, &log.CompletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan import log: %w", err)
		}
		out = append(out, log)
	}

	return out, rows.Err()
}
