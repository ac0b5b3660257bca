package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/config"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/model"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/stats"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/store"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// testAPI wires the handler against a temp store and router.
type testAPI struct {
	router *gin.Engine
	store  *store.Store
	cfg    *config.AppConfig
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	st, err := store.New(filepath.Join(dir, "nikos.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	cfg := config.DefaultConfig()
	cfg.Data.DataDir = filepath.Join(dir, "data")

	h := NewHandler(st, cfg, quietLogger())
	router := gin.New()
	h.RegisterRoutes(router.Group("/api"))
	router.GET("/dashboard", h.Dashboard)
	return &testAPI{router: router, store: st, cfg: cfg}
}

func (a *testAPI) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) putJSON(t *testing.T, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), into); err != nil {
		t.Fatalf("decode response: %v (%s)", err, w.Body.String())
	}
}

func day(t *testing.T, key string, source model.Source, grossBefore, discounts, grossAfter float64,
	txns int, payments model.PaymentBreakdown) *model.DailyRecord {
	t.Helper()
	date, err := time.Parse(model.DateKey, key)
	if err != nil {
		t.Fatalf("parse date %s: %v", key, err)
	}
	r := model.NewDailyRecord(date, source)
	r.GrossBefore = grossBefore
	r.Discounts = discounts
	r.GrossAfter = grossAfter
	r.NetVAT = grossAfter
	r.Transactions = txns
	r.Payments = payments
	return r
}

// seedWeek stores two POS days and one overlapping online day, all in
// the sales week starting Thursday 2024-05-02.
func seedWeek(t *testing.T, a *testAPI) {
	t.Helper()

	pos := make([]*model.DailyRecord, 0, 2)
	for _, key := range []string{"2024-05-02", "2024-05-03"} {
		r := day(t, key, model.SourcePOS, 1050, 50, 1000, 40, model.PaymentBreakdown{Card: 900, Cash: 100, Tax: 80})
		r.NetVAT = 920
		r.Slots[8] = model.Slot{Sales: 600, Transactions: 25}  // 11:00 AM
		r.Slots[26] = model.Slot{Sales: 400, Transactions: 15} // 3:30 PM
		pos = append(pos, r)
	}
	if err := a.store.UpsertDays(pos, "Thu 05-02+Fri 05-03", "seed.xlsx"); err != nil {
		t.Fatalf("seed pos days: %v", err)
	}

	online := day(t, "2024-05-02", model.SourceOnline, 77.5, 2, 75.5, 2, model.PaymentBreakdown{Card: 75.5})
	online.NetVAT = 75.5
	if err := a.store.UpsertDays([]*model.DailyRecord{online}, "Online Orders", "seed.xlsx"); err != nil {
		t.Fatalf("seed online day: %v", err)
	}
}

func TestGetStatusEmpty(t *testing.T) {
	t.Parallel()
	a := newTestAPI(t)

	w := a.get(t, "/api/status")
	if w.Code != http.StatusOK {
		t.Fatalf("status code = %d", w.Code)
	}

	var resp StatusResponse
	decode(t, w, &resp)
	if resp.Initialized {
		t.Error("empty store reported initialized")
	}
	if resp.Days != 0 || resp.Weeks != 0 {
		t.Errorf("days/weeks = %d/%d, want 0/0", resp.Days, resp.Weeks)
	}
	if resp.Version != Version {
		t.Errorf("version = %q", resp.Version)
	}
	if resp.LastImport != nil {
		t.Errorf("last import = %+v, want nil", resp.LastImport)
	}
}

func TestGetStatusWithData(t *testing.T) {
	t.Parallel()
	a := newTestAPI(t)
	seedWeek(t, a)

	var resp StatusResponse
	decode(t, a.get(t, "/api/status"), &resp)

	if !resp.Initialized {
		t.Error("seeded store not initialized")
	}
	if resp.Days != 2 {
		t.Errorf("days = %d, want 2", resp.Days)
	}
	if resp.POSDays != 2 || resp.OnlineDays != 1 {
		t.Errorf("pos/online days = %d/%d, want 2/1", resp.POSDays, resp.OnlineDays)
	}
	if resp.Weeks != 1 {
		t.Errorf("weeks = %d, want 1", resp.Weeks)
	}
	if resp.FirstDate != "2024-05-02" || resp.LastDate != "2024-05-03" {
		t.Errorf("date range = %s..%s", resp.FirstDate, resp.LastDate)
	}
}

func TestListDaily(t *testing.T) {
	t.Parallel()
	a := newTestAPI(t)
	seedWeek(t, a)

	var resp struct {
		Days  []*model.DailyRecord `json:"days"`
		Count int                  `json:"count"`
	}
	decode(t, a.get(t, "/api/daily"), &resp)

	if resp.Count != 2 || len(resp.Days) != 2 {
		t.Fatalf("count = %d, days = %d", resp.Count, len(resp.Days))
	}
	first := resp.Days[0]
	if first.Key() != "2024-05-02" || first.Source != model.SourceMerged {
		t.Errorf("first day = %s/%s, want 2024-05-02/merged", first.Key(), first.Source)
	}
	if first.GrossAfter != 1075.5 || first.Transactions != 42 {
		t.Errorf("merged day = %+v", first)
	}
	if resp.Days[1].Source != model.SourcePOS {
		t.Errorf("second day source = %s, want pos", resp.Days[1].Source)
	}

	// Range filter.
	decode(t, a.get(t, "/api/daily?from=2024-05-03"), &resp)
	if resp.Count != 1 || resp.Days[0].Key() != "2024-05-03" {
		t.Errorf("filtered count = %d", resp.Count)
	}

	if w := a.get(t, "/api/daily?from=yesterday"); w.Code != http.StatusBadRequest {
		t.Errorf("bad from date: code = %d, want 400", w.Code)
	}
}

func TestListWeeks(t *testing.T) {
	t.Parallel()
	a := newTestAPI(t)
	seedWeek(t, a)

	var resp struct {
		Weeks []*model.WeeklyRecord `json:"weeks"`
		Count int                   `json:"count"`
	}
	decode(t, a.get(t, "/api/weeks"), &resp)

	if resp.Count != 1 {
		t.Fatalf("week count = %d, want 1", resp.Count)
	}
	wk := resp.Weeks[0]
	if wk.StartKey() != "2024-05-02" {
		t.Errorf("week start = %s", wk.StartKey())
	}
	if wk.Days != 2 || !wk.Partial {
		t.Errorf("days = %d, partial = %v", wk.Days, wk.Partial)
	}
	if wk.GrossAfter != 2075.5 || wk.Discounts != 102 {
		t.Errorf("week totals = %+v", wk)
	}
	if wk.Manual != nil {
		t.Errorf("manual = %+v, want nil", wk.Manual)
	}
}

func TestPutManualInputsAndCommission(t *testing.T) {
	t.Parallel()
	a := newTestAPI(t)
	seedWeek(t, a)

	// A mid-week date addresses its week's Thursday.
	w := a.putJSON(t, "/api/weeks/2024-05-04/manual", `{"cardSales":1800,"taxCollected":160}`)
	if w.Code != http.StatusOK {
		t.Fatalf("put manual: code = %d, body %s", w.Code, w.Body.String())
	}
	var putResp struct {
		WeekStart string             `json:"weekStart"`
		Manual    model.ManualInputs `json:"manual"`
	}
	decode(t, w, &putResp)
	if putResp.WeekStart != "2024-05-02" {
		t.Errorf("week start = %s, want 2024-05-02", putResp.WeekStart)
	}

	var report model.CommissionReport
	w = a.get(t, "/api/weeks/2024-05-02/commission")
	if w.Code != http.StatusOK {
		t.Fatalf("commission: code = %d, body %s", w.Code, w.Body.String())
	}
	decode(t, w, &report)

	if report.Partner != model.PartnerName || report.Operator != model.OperatorName {
		t.Errorf("parties = %s/%s", report.Partner, report.Operator)
	}
	if report.GrossBefore != 2177.5 {
		t.Errorf("gross before = %v, want 2177.5", report.GrossBefore)
	}
	if report.CardFee != 54 || report.CommissionableBase != 2123.5 {
		t.Errorf("card fee = %v, base = %v", report.CardFee, report.CommissionableBase)
	}
	if report.PartnerCommission != 424.7 || report.PartnerNet != 322.7 {
		t.Errorf("partner = %v, net = %v", report.PartnerCommission, report.PartnerNet)
	}
	if report.OperatorCommission != 1698.8 || report.CashOwed != 0 || report.OperatorTotal != 1858.8 {
		t.Errorf("operator = %v, cash = %v, total = %v",
			report.OperatorCommission, report.CashOwed, report.OperatorTotal)
	}

	// The weeks listing now carries the manual inputs.
	var weeksResp struct {
		Weeks []*model.WeeklyRecord `json:"weeks"`
	}
	decode(t, a.get(t, "/api/weeks"), &weeksResp)
	if weeksResp.Weeks[0].Manual == nil || weeksResp.Weeks[0].Manual.CardSales != 1800 {
		t.Errorf("manual not attached: %+v", weeksResp.Weeks[0].Manual)
	}
}

func TestCommissionErrors(t *testing.T) {
	t.Parallel()
	a := newTestAPI(t)
	seedWeek(t, a)

	// No manual inputs yet.
	if w := a.get(t, "/api/weeks/2024-05-02/commission"); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("without manual: code = %d, want 422", w.Code)
	}
	// Week with no data at all.
	if w := a.get(t, "/api/weeks/2030-01-03/commission"); w.Code != http.StatusNotFound {
		t.Errorf("unknown week: code = %d, want 404", w.Code)
	}
	// Not a date.
	if w := a.get(t, "/api/weeks/nope/commission"); w.Code != http.StatusBadRequest {
		t.Errorf("bad date: code = %d, want 400", w.Code)
	}
}

func TestPutManualInputsRejectsBadBody(t *testing.T) {
	t.Parallel()
	a := newTestAPI(t)

	if w := a.putJSON(t, "/api/weeks/2024-05-02/manual", `{"cardSales":-5,"taxCollected":0}`); w.Code != http.StatusBadRequest {
		t.Errorf("negative card sales: code = %d, want 400", w.Code)
	}
	if w := a.putJSON(t, "/api/weeks/2024-05-02/manual", `not json`); w.Code != http.StatusBadRequest {
		t.Errorf("bad json: code = %d, want 400", w.Code)
	}
	if w := a.putJSON(t, "/api/weeks/2024-13-99/manual", `{"cardSales":1,"taxCollected":1}`); w.Code != http.StatusBadRequest {
		t.Errorf("bad date: code = %d, want 400", w.Code)
	}
}

func TestRates(t *testing.T) {
	t.Parallel()
	a := newTestAPI(t)
	seedWeek(t, a)
	if w := a.putJSON(t, "/api/weeks/2024-05-02/manual", `{"cardSales":1800,"taxCollected":160}`); w.Code != http.StatusOK {
		t.Fatalf("put manual: code = %d", w.Code)
	}

	var resp RatesResponse
	decode(t, a.get(t, "/api/rates"), &resp)
	if resp.CommissionRate != 0.20 || resp.CardFeeRate != 0.03 || resp.TaxRate != 0.08 {
		t.Errorf("default rates = %+v", resp)
	}
	if len(resp.Overrides) != 0 {
		t.Errorf("overrides = %+v, want none", resp.Overrides)
	}

	// Override one rate; the others keep their config values.
	w := a.putJSON(t, "/api/rates", `{"commissionRate":0.25}`)
	if w.Code != http.StatusOK {
		t.Fatalf("put rates: code = %d, body %s", w.Code, w.Body.String())
	}
	decode(t, w, &resp)
	if resp.CommissionRate != 0.25 || resp.CardFeeRate != 0.03 {
		t.Errorf("rates after override = %+v", resp)
	}
	if v, ok := resp.Overrides[settingCommissionRate]; !ok || v != 0.25 {
		t.Errorf("overrides = %+v", resp.Overrides)
	}

	// The override feeds the commission computation.
	var report model.CommissionReport
	decode(t, a.get(t, "/api/weeks/2024-05-02/commission"), &report)
	if report.CommissionRate != 0.25 {
		t.Errorf("report rate = %v, want 0.25", report.CommissionRate)
	}
	if report.PartnerCommission != 530.88 {
		t.Errorf("partner commission = %v, want 530.88", report.PartnerCommission)
	}

	// Rejected writes persist nothing.
	if w := a.putJSON(t, "/api/rates", `{"cardFeeRate":1.5}`); w.Code != http.StatusBadRequest {
		t.Errorf("out of range rate: code = %d, want 400", w.Code)
	}
	if w := a.putJSON(t, "/api/rates", `{}`); w.Code != http.StatusBadRequest {
		t.Errorf("empty body: code = %d, want 400", w.Code)
	}
	decode(t, a.get(t, "/api/rates"), &resp)
	if resp.CardFeeRate != 0.03 {
		t.Errorf("card fee rate = %v, want unchanged 0.03", resp.CardFeeRate)
	}
}

func TestSlotStats(t *testing.T) {
	t.Parallel()
	a := newTestAPI(t)
	seedWeek(t, a)

	var resp struct {
		Slots []stats.SlotStat `json:"slots"`
		Days  int              `json:"days"`
	}
	decode(t, a.get(t, "/api/stats/slots"), &resp)

	if resp.Days != 2 {
		t.Errorf("days = %d, want 2", resp.Days)
	}
	if len(resp.Slots) != model.SlotCount {
		t.Fatalf("slot count = %d, want %d", len(resp.Slots), model.SlotCount)
	}
	slot := resp.Slots[8]
	if slot.Label != "11:00 AM" {
		t.Errorf("slot 8 label = %q", slot.Label)
	}
	if slot.TotalSales != 1200 || slot.MeanSales != 600 || slot.Transactions != 50 {
		t.Errorf("slot 8 = %+v", slot)
	}
}

func TestWeekdayStats(t *testing.T) {
	t.Parallel()
	a := newTestAPI(t)
	seedWeek(t, a)

	var resp struct {
		Weekdays []stats.WeekdayStat `json:"weekdays"`
		Days     int                 `json:"days"`
	}
	decode(t, a.get(t, "/api/stats/weekdays"), &resp)

	if len(resp.Weekdays) != 7 {
		t.Fatalf("weekday count = %d, want 7", len(resp.Weekdays))
	}
	if resp.Weekdays[0].Weekday != "Thursday" {
		t.Errorf("first weekday = %s, want Thursday", resp.Weekdays[0].Weekday)
	}
	if resp.Weekdays[0].TotalSales != 1075.5 || resp.Weekdays[1].TotalSales != 1000 {
		t.Errorf("thu/fri totals = %v/%v", resp.Weekdays[0].TotalSales, resp.Weekdays[1].TotalSales)
	}
	if resp.Weekdays[2].Days != 0 {
		t.Errorf("saturday days = %d, want 0", resp.Weekdays[2].Days)
	}
}
