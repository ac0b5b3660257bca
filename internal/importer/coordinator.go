package importer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/merge"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/model"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/parser"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/store"
)

// Coordinator drives a workbook import end to end: sheet recognition,
// parsing, persistence, and the audit trail.
type Coordinator struct {
	store      *store.Store
	log        *logrus.Logger
	recognizer *parser.SheetRecognizer
}

// NewCoordinator creates an import coordinator.
func NewCoordinator(st *store.Store, log *logrus.Logger) *Coordinator {
	return &Coordinator{
		store:      st,
		log:        log,
		recognizer: parser.NewSheetRecognizer(),
	}
}

// ImportOptions selects the workbook to import.
type ImportOptions struct {
	FilePath string
	// Filename overrides the reported name, e.g. the original upload
	// name when FilePath points at a temp copy.
	Filename string
}

// ProgressEvent is one step of a running import.
type ProgressEvent struct {
	Type      string      `json:"type"` // start/info/sheet_start/sheet_done/warning/error/done
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Import runs the import in the background and returns its progress
// channel. The channel is closed when the import finishes; the final
// event is either "done" carrying the report or "error".
func (c *Coordinator) Import(opts ImportOptions) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.doImport(opts, progressChan)
	}()

	return progressChan
}

// sourceAccumulator combines same-date records of one source before
// they are persisted, tracking which sheets contributed to each date.
type sourceAccumulator struct {
	days   map[string]*model.DailyRecord
	sheets map[string][]string
}

func newSourceAccumulator() *sourceAccumulator {
	return &sourceAccumulator{
		days:   make(map[string]*model.DailyRecord),
		sheets: make(map[string][]string),
	}
}

func (a *sourceAccumulator) add(record *model.DailyRecord, sheetName string) {
	key := record.Key()
	if existing, ok := a.days[key]; ok {
		a.days[key] = merge.Combine(existing, record)
	} else {
		a.days[key] = record
	}
	a.sheets[key] = append(a.sheets[key], sheetName)
}

func (c *Coordinator) doImport(opts ImportOptions, progressChan chan ProgressEvent) {
	startTime := time.Now()

	filename := opts.Filename
	if filename == "" {
		filename = filepath.Base(opts.FilePath)
	}

	c.sendProgress(progressChan, ProgressEvent{
		Type:      "start",
		Message:   fmt.Sprintf("Importing %s", filename),
		Data:      map[string]string{"filename": filename},
		Timestamp: time.Now(),
	})

	fileSize, fileHash := fileFingerprint(opts.FilePath)
	logID, err := c.store.CreateImportLog(filename, opts.FilePath, fileSize, fileHash)
	if err != nil {
		c.log.Warnf("create import log: %v", err)
	}

	file, err := excelize.OpenFile(opts.FilePath)
	if err != nil {
		accessErr := &model.FileAccessError{Path: opts.FilePath, Op: "open", Err: err}
		c.fail(progressChan, logID, accessErr.Error())
		return
	}
	defer file.Close()

	posParser := parser.NewPOSParser(file)
	onlineParser := parser.NewOnlineParser(file)

	report := &parser.ImportReport{Filename: filename}
	accumulators := map[model.Source]*sourceAccumulator{
		model.SourcePOS:    newSourceAccumulator(),
		model.SourceOnline: newSourceAccumulator(),
	}

	sheetList := file.GetSheetList()
	report.TotalSheets = len(sheetList)

	c.sendProgress(progressChan, ProgressEvent{
		Type:      "info",
		Message:   fmt.Sprintf("Found %d sheets", len(sheetList)),
		Data:      map[string]interface{}{"total_sheets": len(sheetList)},
		Timestamp: time.Now(),
	})

	for _, sheetName := range sheetList {
		c.processSheet(sheetName, file, posParser, onlineParser, report, accumulators, logID, filename, progressChan)
	}

	dates := make(map[string]struct{})
	for source, acc := range accumulators {
		if len(acc.days) == 0 {
			continue
		}
		for key := range acc.days {
			dates[key] = struct{}{}
		}
		if err := c.persistSource(acc, filename); err != nil {
			c.log.WithFields(logrus.Fields{"file": filename, "source": source}).
				Errorf("persist failed: %v", err)
			c.fail(progressChan, logID, fmt.Sprintf("failed to store %s records: %v", source, err))
			return
		}
	}

	report.Days = len(dates)
	report.Duration = time.Since(startTime)

	if err := c.store.UpdateImportLog(logID, report.TotalSheets, report.ImportedSheets,
		report.SkippedSheets, report.ErrorSheets, report.Days, "completed", ""); err != nil {
		c.log.Warnf("update import log: %v", err)
	}

	c.log.WithFields(logrus.Fields{
		"file":     filename,
		"sheets":   report.TotalSheets,
		"imported": report.ImportedSheets,
		"skipped":  report.SkippedSheets,
		"errors":   report.ErrorSheets,
		"days":     report.Days,
	}).Info("import completed")

	c.sendProgress(progressChan, ProgressEvent{
		Type:      "done",
		Message:   "Import completed",
		Data:      report,
		Timestamp: time.Now(),
	})
}

func (c *Coordinator) processSheet(sheetName string, file *excelize.File,
	posParser *parser.POSParser, onlineParser *parser.OnlineParser,
	report *parser.ImportReport, accumulators map[model.Source]*sourceAccumulator,
	logID int64, filename string, progressChan chan ProgressEvent) {

	sheetStartTime := time.Now()

	c.sendProgress(progressChan, ProgressEvent{
		Type:      "sheet_start",
		Message:   fmt.Sprintf("Parsing sheet %q", sheetName),
		Data:      map[string]string{"sheet_name": sheetName},
		Timestamp: time.Now(),
	})

	rows, err := file.GetRows(sheetName)
	if err != nil {
		result := parser.ParseResult{
			SheetName: sheetName,
			SheetType: parser.SheetTypeUnknown,
			Status:    "error",
			Errors:    []string{fmt.Sprintf("failed to read sheet: %v", err)},
			Duration:  time.Since(sheetStartTime),
		}
		c.recordSheetResult(report, result, 0, logID, filename, progressChan)
		return
	}

	recognized := c.recognizer.Recognize(sheetName, rows)

	result := parser.ParseResult{SheetName: sheetName, SheetType: recognized.SheetType}

	var records []*model.DailyRecord
	var warnings []string
	var source model.Source

	switch recognized.SheetType {
	case parser.SheetTypePOSDay:
		source = model.SourcePOS
		record, w, perr := posParser.ParseSheet(sheetName)
		warnings = w
		err = perr
		if record != nil {
			records = []*model.DailyRecord{record}
		}
	case parser.SheetTypeOnline:
		source = model.SourceOnline
		records, warnings, err = onlineParser.ParseSheet(sheetName)
	default:
		result.Status = "skipped"
		result.Duration = time.Since(sheetStartTime)
		c.recordSheetResult(report, result, recognized.Confidence, logID, filename, progressChan)
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "warning",
			Message:   fmt.Sprintf("Sheet %q not recognized, skipped", sheetName),
			Timestamp: time.Now(),
		})
		return
	}

	for _, w := range warnings {
		c.log.WithFields(logrus.Fields{"file": filename, "sheet": sheetName}).Warn(w)
	}
	result.Warnings = warnings
	result.Duration = time.Since(sheetStartTime)

	if err != nil {
		result.Status = "error"
		result.Errors = append(result.Errors, err.Error())
		c.recordSheetResult(report, result, recognized.Confidence, logID, filename, progressChan)
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "warning",
			Message:   fmt.Sprintf("Sheet %q failed: %v", sheetName, err),
			Timestamp: time.Now(),
		})
		return
	}

	result.Status = "imported"
	for _, record := range records {
		result.Dates = append(result.Dates, record.Key())
		accumulators[source].add(record, sheetName)
	}
	c.recordSheetResult(report, result, recognized.Confidence, logID, filename, progressChan)

	c.sendProgress(progressChan, ProgressEvent{
		Type:    "sheet_done",
		Message: fmt.Sprintf("Sheet %q imported: %d day(s)", sheetName, len(records)),
		Data: map[string]interface{}{
			"sheet_name": sheetName,
			"sheet_type": string(recognized.SheetType),
			"dates":      result.Dates,
		},
		Timestamp: time.Now(),
	})
}

// persistSource writes one source's combined records, grouped by the
// sheets that produced each date so the stored rows stay traceable.
func (c *Coordinator) persistSource(acc *sourceAccumulator, filename string) error {
	groups := make(map[string][]*model.DailyRecord)
	for key, record := range acc.days {
		label := strings.Join(acc.sheets[key], "+")
		groups[label] = append(groups[label], record)
	}

	for label, records := range groups {
		sort.Slice(records, func(i, j int) bool {
			return records[i].Date.Before(records[j].Date)
		})
		if err := c.store.UpsertDays(records, label, filename); err != nil {
			return err
		}
	}

	return nil
}

func (c *Coordinator) recordSheetResult(report *parser.ImportReport, result parser.ParseResult,
	confidence float64, logID int64, filename string, progressChan chan ProgressEvent) {

	report.Sheets = append(report.Sheets, result)

	switch result.Status {
	case "imported":
		report.ImportedSheets++
	case "skipped":
		report.SkippedSheets++
	case "error":
		report.ErrorSheets++
	}

	meta := store.SheetMeta{
		SheetName:    result.SheetName,
		SheetType:    string(result.SheetType),
		Confidence:   confidence,
		DatesJSON:    store.MarshalStrings(result.Dates),
		WarningsJSON: store.MarshalStrings(result.Warnings),
		Status:       result.Status,
		ErrorMessage: strings.Join(result.Errors, "; "),
		ImportLogID:  logID,
		SourceFile:   filename,
	}
	if err := c.store.InsertSheetMeta(meta); err != nil {
		c.log.Warnf("insert sheet meta: %v", err)
	}
}

func (c *Coordinator) fail(progressChan chan ProgressEvent, logID int64, message string) {
	if err := c.store.UpdateImportLog(logID, 0, 0, 0, 0, 0, "failed", message); err != nil {
		c.log.Warnf("update import log: %v", err)
	}
	c.sendProgress(progressChan, ProgressEvent{
		Type:      "error",
		Message:   message,
		Timestamp: time.Now(),
	})
}

// fileFingerprint returns the file's size and content hash for the
// import log; failures degrade to zero values.
func fileFingerprint(path string) (int64, string) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, ""
	}

	f, err := os.Open(path)
	if err != nil {
		return info.Size(), ""
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return info.Size(), ""
	}

	return info.Size(), hex.EncodeToString(h.Sum(nil))
}

func (c *Coordinator) sendProgress(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
		// channel full, drop the event
	}
}
