package parser

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/model"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestParseWorkbook_MixedSheets(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	buildPOSDaySheet(t, f, "Thu 05-02", "05/02/2024")
	buildOnlineOrderSheet(t, f, "online orders")
	if _, err := f.NewSheet("notes"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	setRow(t, f, "notes", 1, "Remember to order napkins")

	path := filepath.Join(t.TempDir(), "export.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save fixture: %v", err)
	}
	_ = f.Close()

	byDate, report, err := ParseWorkbook(path, quietLogger())
	if err != nil {
		t.Fatalf("parse workbook: %v", err)
	}

	// Sheet1 is the blank default sheet excelize creates
	if report.TotalSheets != 4 {
		t.Fatalf("total sheets: %d", report.TotalSheets)
	}
	if report.ImportedSheets != 2 {
		t.Fatalf("imported sheets: %d (%+v)", report.ImportedSheets, report.Sheets)
	}
	if report.SkippedSheets != 2 {
		t.Fatalf("skipped sheets: %d", report.SkippedSheets)
	}
	if report.ErrorSheets != 0 {
		t.Fatalf("error sheets: %d (%+v)", report.ErrorSheets, report.Sheets)
	}
	if report.Days != 2 {
		t.Fatalf("days: %d", report.Days)
	}

	pos := byDate["2024-05-02"]
	if pos == nil {
		t.Fatalf("POS day missing")
	}
	// 2024-05-02 appears in the POS sheet and the online table; in a
	// single workbook parse the two fold into one record
	if pos.GrossAfter != 1075.50 {
		t.Fatalf("folded gross after: %v", pos.GrossAfter)
	}
	if byDate["2024-05-03"] == nil {
		t.Fatalf("online-only day missing")
	}
}

func TestParseWorkbook_UnreadableFile(t *testing.T) {
	t.Parallel()

	_, _, err := ParseWorkbook(filepath.Join(t.TempDir(), "missing.xlsx"), quietLogger())
	if err == nil {
		t.Fatalf("expected file access error")
	}
	var accessErr *model.FileAccessError
	if !errors.As(err, &accessErr) {
		t.Fatalf("error type: %T %v", err, err)
	}
}
