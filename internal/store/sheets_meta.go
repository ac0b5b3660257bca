package store

import (
	"encoding/json"
	"fmt"
)

// SheetMeta is the per-sheet trace of one import.
type SheetMeta struct {
	SheetName    string  `json:"sheetName"`
	SheetType    string  `json:"sheetType"`
	Confidence   float64 `json:"confidence"`
	DatesJSON    string  `json:"datesJson"`
	WarningsJSON string  `json:"warningsJson"`
	Status       string  `json:"status"`
	ErrorMessage string  `json:"errorMessage,omitempty"`
	ImportLogID  int64   `json:"importLogId"`
	SourceFile   string  `json:"sourceFile"`
}

// InsertSheetMeta records one sheet's classification and outcome.
func (s *Store) InsertSheetMeta(meta SheetMeta) error {
	_, err := s.db.Exec(`
		INSERT INTO sheets_meta (
			sheet_name, sheet_type, confidence,
			dates_json, warnings_json,
			status, error_message,
			import_log_id, source_file
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		meta.SheetName, meta.SheetType, meta.Confidence,
		meta.DatesJSON, meta.WarningsJSON,
		meta.Status, meta.ErrorMessage,
		meta.ImportLogID, meta.SourceFile,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sheets_meta: %w", err)
	}
	return nil
}

// MarshalStrings serializes a string slice for a *_json column.
func MarshalStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(b)
}
