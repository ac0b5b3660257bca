package parser

import "time"

// SheetType classifies a workbook sheet by the export that produced it.
type SheetType string

const (
	SheetTypePOSDay  SheetType = "pos_day"
	SheetTypeOnline  SheetType = "online"
	SheetTypeUnknown SheetType = "unknown"
)

// SheetRecognitionResult carries the classification of one sheet.
type SheetRecognitionResult struct {
	SheetName  string    `json:"sheetName"`
	SheetType  SheetType `json:"sheetType"`
	Confidence float64   `json:"confidence"` // 0-1
}

// ParseResult summarizes the outcome of parsing one sheet.
type ParseResult struct {
	SheetName string        `json:"sheetName"`
	SheetType SheetType     `json:"sheetType"`
	Status    string        `json:"status"` // imported/skipped/error
	Dates     []string      `json:"dates,omitempty"`
	Warnings  []string      `json:"warnings,omitempty"`
	Errors    []string      `json:"errors,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// ImportReport summarizes the outcome of one workbook import.
type ImportReport struct {
	Filename       string        `json:"filename"`
	TotalSheets    int           `json:"totalSheets"`
	ImportedSheets int           `json:"importedSheets"`
	SkippedSheets  int           `json:"skippedSheets"`
	ErrorSheets    int           `json:"errorSheets"`
	Days           int           `json:"days"`
	Duration       time.Duration `json:"duration"`
	Sheets         []ParseResult `json:"sheets"`
}
