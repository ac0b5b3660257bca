package store

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "nikos.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func testDay(dateStr string, source model.Source, gross float64) *model.DailyRecord {
	date, _ := time.Parse(model.DateKey, dateStr)
	r := model.NewDailyRecord(date, source)
	r.GrossBefore = gross
	r.Discounts = gross * 0.1
	r.GrossAfter = gross - r.Discounts
	r.NetVAT = r.GrossAfter / 1.08
	r.Transactions = 42
	r.Payments = model.PaymentBreakdown{Card: r.GrossAfter, Tax: r.GrossAfter - r.NetVAT}
	r.Slots[0] = model.Slot{Sales: 12.5, Transactions: 3}
	r.Slots[45] = model.Slot{Sales: 8, Transactions: 1}
	return r
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestUpsertAndGetDays(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	days := []*model.DailyRecord{
		testDay("2025-02-06", model.SourcePOS, 1000),
		testDay("2025-02-07", model.SourcePOS, 1100),
		testDay("2025-02-06", model.SourceOnline, 200),
	}
	if err := s.UpsertDays(days, "Sheet1", "sales.xlsx"); err != nil {
		t.Fatalf("UpsertDays: %v", err)
	}

	got, err := s.GetDays(DayQueryOptions{})
	if err != nil {
		t.Fatalf("GetDays: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d records, want 3", len(got))
	}

	// Ordered by date then source: online sorts before pos.
	if got[0].Source != model.SourceOnline || got[0].Key() != "2025-02-06" {
		t.Errorf("first record = %s/%s", got[0].Key(), got[0].Source)
	}

	pos := got[1]
	if pos.Source != model.SourcePOS {
		t.Fatalf("second record source = %s, want pos", pos.Source)
	}
	if !almostEqual(pos.GrossBefore, 1000) || !almostEqual(pos.GrossAfter, 900) {
		t.Errorf("gross = %v/%v, want 1000/900", pos.GrossBefore, pos.GrossAfter)
	}
	if pos.Transactions != 42 {
		t.Errorf("transactions = %d, want 42", pos.Transactions)
	}
	if !almostEqual(pos.Payments.Card, 900) {
		t.Errorf("card = %v, want 900", pos.Payments.Card)
	}
	if !almostEqual(pos.Slots[0].Sales, 12.5) || pos.Slots[0].Transactions != 3 {
		t.Errorf("slot 0 = %+v", pos.Slots[0])
	}
	if !almostEqual(pos.Slots[45].Sales, 8) {
		t.Errorf("slot 45 = %+v", pos.Slots[45])
	}
	if pos.Slots[10].Sales != 0 || pos.Slots[10].Transactions != 0 {
		t.Errorf("slot 10 should be zero, got %+v", pos.Slots[10])
	}
	if pos.DayLabel != "Thursday" {
		t.Errorf("day label = %q, want Thursday", pos.DayLabel)
	}
}

func TestUpsertDaysReplaces(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	first := testDay("2025-02-06", model.SourcePOS, 1000)
	if err := s.UpsertDays([]*model.DailyRecord{first}, "Sheet1", "a.xlsx"); err != nil {
		t.Fatal(err)
	}

	second := testDay("2025-02-06", model.SourcePOS, 500)
	second.Slots[0] = model.Slot{}
	second.Slots[5] = model.Slot{Sales: 99, Transactions: 9}
	if err := s.UpsertDays([]*model.DailyRecord{second}, "Sheet1", "b.xlsx"); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetDays(DayQueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1 after replace", len(got))
	}
	if !almostEqual(got[0].GrossBefore, 500) {
		t.Errorf("gross before = %v, want replaced 500", got[0].GrossBefore)
	}
	if got[0].Slots[0].Sales != 0 {
		t.Errorf("slot 0 should be cleared by replace, got %+v", got[0].Slots[0])
	}
	if !almostEqual(got[0].Slots[5].Sales, 99) {
		t.Errorf("slot 5 = %+v, want 99", got[0].Slots[5])
	}
}

func TestGetDaysFilters(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	days := []*model.DailyRecord{
		testDay("2025-02-05", model.SourcePOS, 900),
		testDay("2025-02-06", model.SourcePOS, 1000),
		testDay("2025-02-07", model.SourcePOS, 1100),
		testDay("2025-02-06", model.SourceOnline, 200),
	}
	if err := s.UpsertDays(days, "", ""); err != nil {
		t.Fatal(err)
	}

	from := "2025-02-06"
	to := "2025-02-06"
	source := "pos"

	got, err := s.GetDays(DayQueryOptions{From: &from, To: &to, Source: &source})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if got[0].Key() != "2025-02-06" || got[0].Source != model.SourcePOS {
		t.Errorf("got %s/%s", got[0].Key(), got[0].Source)
	}

	count, err := s.CountDays(DayQueryOptions{Source: &source})
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("CountDays(pos) = %d, want 3", count)
	}
}

func TestDateRange(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	min, max, err := s.DateRange()
	if err != nil {
		t.Fatal(err)
	}
	if min != "" || max != "" {
		t.Errorf("empty store range = %q..%q, want empty", min, max)
	}

	days := []*model.DailyRecord{
		testDay("2025-02-06", model.SourcePOS, 1000),
		testDay("2025-03-01", model.SourcePOS, 1200),
	}
	if err := s.UpsertDays(days, "", ""); err != nil {
		t.Fatal(err)
	}

	min, max, err = s.DateRange()
	if err != nil {
		t.Fatal(err)
	}
	if min != "2025-02-06" || max != "2025-03-01" {
		t.Errorf("range = %q..%q", min, max)
	}
}

func TestDeleteDaysBySource(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	days := []*model.DailyRecord{
		testDay("2025-02-06", model.SourcePOS, 1000),
		testDay("2025-02-06", model.SourceOnline, 200),
	}
	if err := s.UpsertDays(days, "", ""); err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteDaysBySource("pos"); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetDays(DayQueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Source != model.SourceOnline {
		t.Errorf("after delete got %d records", len(got))
	}
}

func TestManualInputs(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	missing, err := s.GetManualInputs("2025-02-06")
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Errorf("missing week should return nil, got %+v", missing)
	}

	inputs := model.ManualInputs{CardSales: 5400.50, TaxCollected: 432.04}
	if err := s.UpsertManualInputs("2025-02-06", inputs); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetManualInputs("2025-02-06")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || !almostEqual(got.CardSales, 5400.50) || !almostEqual(got.TaxCollected, 432.04) {
		t.Errorf("got %+v", got)
	}

	// Upsert overwrites.
	inputs.CardSales = 6000
	if err := s.UpsertManualInputs("2025-02-06", inputs); err != nil {
		t.Fatal(err)
	}
	if err := s.UpsertManualInputs("2025-02-13", model.ManualInputs{CardSales: 100}); err != nil {
		t.Fatal(err)
	}

	all, err := s.AllManualInputs()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("AllManualInputs len = %d, want 2", len(all))
	}
	if !almostEqual(all["2025-02-06"].CardSales, 6000) {
		t.Errorf("overwritten card sales = %v", all["2025-02-06"].CardSales)
	}
}

func TestSettings(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	if _, err := s.GetSetting("commission_rate"); err == nil {
		t.Error("missing setting should error")
	}
	if _, ok := s.GetSettingFloat("commission_rate"); ok {
		t.Error("missing float setting should report !ok")
	}

	if err := s.SetSettingFloat("commission_rate", 0.25); err != nil {
		t.Fatal(err)
	}
	v, ok := s.GetSettingFloat("commission_rate")
	if !ok || !almostEqual(v, 0.25) {
		t.Errorf("got %v/%v", v, ok)
	}

	if err := s.SetSettingFloat("commission_rate", 0.30); err != nil {
		t.Fatal(err)
	}
	v, _ = s.GetSettingFloat("commission_rate")
	if !almostEqual(v, 0.30) {
		t.Errorf("overwrite got %v", v)
	}

	all, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("settings len = %d, want 1", len(all))
	}
}

func TestImportLogLifecycle(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	last, err := s.LastImportLog()
	if err != nil {
		t.Fatal(err)
	}
	if last != nil {
		t.Errorf("empty store LastImportLog = %+v, want nil", last)
	}

	id, err := s.CreateImportLog("sales.xlsx", "/tmp/sales.xlsx", 1234, "abc")
	if err != nil {
		t.Fatal(err)
	}

	if err := s.UpdateImportLog(id, 5, 4, 1, 0, 4, "completed", ""); err != nil {
		t.Fatal(err)
	}

	meta := SheetMeta{
		SheetName:   "Thursday",
		SheetType:   "pos_day",
		Confidence:  0.9,
		DatesJSON:   MarshalStrings([]string{"2025-02-06"}),
		Status:      "imported",
		ImportLogID: id,
		SourceFile:  "sales.xlsx",
	}
	if err := s.InsertSheetMeta(meta); err != nil {
		t.Fatal(err)
	}

	last, err = s.LastImportLog()
	if err != nil {
		t.Fatal(err)
	}
	if last == nil || last.ID != id {
		t.Fatalf("LastImportLog = %+v", last)
	}
	if last.Status != "completed" || last.ImportedSheets != 4 || last.Days != 4 {
		t.Errorf("log = %+v", last)
	}
	if last.CompletedAt == "" {
		t.Error("CompletedAt should be set")
	}

	logs, err := s.ListImportLogs(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 {
		t.Errorf("ListImportLogs len = %d, want 1", len(logs))
	}
}

func TestMarshalStrings(t *testing.T) {
	t.Parallel()

	if got := MarshalStrings(nil); got != "[]" {
		t.Errorf("nil = %q, want []", got)
	}
	if got := MarshalStrings([]string{"a", "b"}); got != `["a","b"]` {
		t.Errorf("got %q", got)
	}
}
