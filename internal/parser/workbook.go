package parser

import (
	"errors"
	"io"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/merge"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/model"
)

// ParseWorkbook normalizes every recognized sheet of one export file into
// per-date records. Sheets that fail to parse are reported in the import
// report and logged, never fatal; only an unreadable file is.
func ParseWorkbook(path string, log *logrus.Logger) (map[string]*model.DailyRecord, *ImportReport, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, &model.FileAccessError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()
	return parseSheets(f, filepath.Base(path), log)
}

// ParseWorkbookReader is ParseWorkbook over an in-memory upload.
func ParseWorkbookReader(r io.Reader, filename string, log *logrus.Logger) (map[string]*model.DailyRecord, *ImportReport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, &model.FileAccessError{Path: filename, Op: "open", Err: err}
	}
	defer f.Close()
	return parseSheets(f, filename, log)
}

func parseSheets(f *excelize.File, filename string, log *logrus.Logger) (map[string]*model.DailyRecord, *ImportReport, error) {
	started := time.Now()
	recognizer := NewSheetRecognizer()
	posParser := NewPOSParser(f)
	onlineParser := NewOnlineParser(f)

	report := &ImportReport{Filename: filename}
	byDate := make(map[string]*model.DailyRecord)

	for _, sheetName := range f.GetSheetList() {
		sheetStart := time.Now()
		report.TotalSheets++

		rows, err := f.GetRows(sheetName)
		if err != nil {
			report.ErrorSheets++
			report.Sheets = append(report.Sheets, ParseResult{
				SheetName: sheetName, SheetType: SheetTypeUnknown, Status: "error",
				Errors: []string{err.Error()}, Duration: time.Since(sheetStart),
			})
			log.WithFields(logrus.Fields{"file": filename, "sheet": sheetName}).
				Warnf("read sheet failed: %v", err)
			continue
		}

		recognized := recognizer.Recognize(sheetName, rows)
		result := ParseResult{SheetName: sheetName, SheetType: recognized.SheetType}

		var records []*model.DailyRecord
		var warnings []string
		switch recognized.SheetType {
		case SheetTypePOSDay:
			record, w, perr := posParser.ParseSheet(sheetName)
			warnings = w
			err = perr
			if record != nil {
				records = []*model.DailyRecord{record}
			}
		case SheetTypeOnline:
			records, warnings, err = onlineParser.ParseSheet(sheetName)
		default:
			result.Status = "skipped"
			report.SkippedSheets++
			report.Sheets = append(report.Sheets, result)
			log.WithFields(logrus.Fields{"file": filename, "sheet": sheetName, "confidence": recognized.Confidence}).
				Debug("sheet not recognized, skipped")
			continue
		}

		for _, w := range warnings {
			log.WithFields(logrus.Fields{"file": filename, "sheet": sheetName}).Warn(w)
		}
		result.Warnings = warnings
		result.Duration = time.Since(sheetStart)

		if err != nil {
			var parseErr *model.ParseError
			if !errors.As(err, &parseErr) {
				// unexpected read failure, still scoped to this sheet
				log.WithFields(logrus.Fields{"file": filename, "sheet": sheetName}).
					Warnf("sheet failed: %v", err)
			} else {
				log.WithFields(logrus.Fields{"file": filename, "sheet": sheetName}).Warn(parseErr.Error())
			}
			result.Status = "error"
			result.Errors = append(result.Errors, err.Error())
			report.ErrorSheets++
			report.Sheets = append(report.Sheets, result)
			continue
		}

		result.Status = "imported"
		for _, record := range records {
			result.Dates = append(result.Dates, record.Key())
			if existing, ok := byDate[record.Key()]; ok {
				byDate[record.Key()] = merge.Combine(existing, record)
				continue
			}
			byDate[record.Key()] = record
		}
		report.ImportedSheets++
		report.Sheets = append(report.Sheets, result)
	}

	report.Days = len(byDate)
	report.Duration = time.Since(started)

	log.WithFields(logrus.Fields{
		"file":     filename,
		"sheets":   report.TotalSheets,
		"imported": report.ImportedSheets,
		"skipped":  report.SkippedSheets,
		"errors":   report.ErrorSheets,
		"days":     report.Days,
	}).Info("workbook normalized")

	return byDate, report, nil
}
