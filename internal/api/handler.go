// Package api implements the dashboard's JSON and export surface. All
// views are computed on demand from the per-source day records in the
// store; nothing derived is ever read back from disk.
package api

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/commission"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/config"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/merge"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/model"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/store"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/week"
)

// Version reported by /api/status.
const Version = "1.0.0"

// Handler carries the API's dependencies.
type Handler struct {
	store     *store.Store
	cfg       *config.AppConfig
	log       *logrus.Logger
	sessions  *sessionStore
	startedAt time.Time
}

// NewHandler creates the API handler.
func NewHandler(st *store.Store, cfg *config.AppConfig, log *logrus.Logger) *Handler {
	return &Handler{
		store:     st,
		cfg:       cfg,
		log:       log,
		sessions:  newSessionStore(),
		startedAt: time.Now(),
	}
}

// RegisterRoutes registers the API under the given group.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	router.POST("/import", h.Import)
	router.GET("/import/:id/events", h.ImportEvents)
	router.GET("/imports", h.ImportLogs)

	router.GET("/daily", h.ListDaily)

	router.GET("/weeks", h.ListWeeks)
	router.PUT("/weeks/:start/manual", h.PutManualInputs)
	router.GET("/weeks/:start/commission", h.GetCommission)

	router.GET("/rates", h.GetRates)
	router.PUT("/rates", h.PutRates)

	router.GET("/stats/slots", h.SlotStats)
	router.GET("/stats/weekdays", h.WeekdayStats)

	router.GET("/export/workbook", h.ExportWorkbook)
	router.GET("/export/daily.csv", h.ExportDailyCSV)
	router.GET("/export/weekly.csv", h.ExportWeeklyCSV)
	router.GET("/export/commission.csv", h.ExportCommissionCSV)
	router.GET("/export/statement/:start", h.ExportStatement)
}

// dayOptions reads the optional from/to range of a request.
func dayOptions(c *gin.Context) (store.DayQueryOptions, bool) {
	var opts store.DayQueryOptions
	for _, q := range []struct {
		name string
		dst  **string
	}{
		{"from", &opts.From},
		{"to", &opts.To},
	} {
		value := c.Query(q.name)
		if value == "" {
			continue
		}
		if _, err := time.Parse(model.DateKey, value); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s must be a YYYY-MM-DD date", q.name)})
			return opts, false
		}
		v := value
		*q.dst = &v
	}
	return opts, true
}

// unified loads the requested range and merges the per-source rows into
// one record per date. Source group order is fixed so repeated calls
// yield identical output.
func (h *Handler) unified(opts store.DayQueryOptions) (map[string]*model.DailyRecord, error) {
	records, err := h.store.GetDays(opts)
	if err != nil {
		return nil, err
	}

	bySource := make(map[model.Source]map[string]*model.DailyRecord)
	for _, r := range records {
		group, ok := bySource[r.Source]
		if !ok {
			group = make(map[string]*model.DailyRecord)
			bySource[r.Source] = group
		}
		group[r.Key()] = r
	}

	names := make([]string, 0, len(bySource))
	for src := range bySource {
		names = append(names, string(src))
	}
	sort.Strings(names)

	sources := make([]map[string]*model.DailyRecord, 0, len(names))
	for _, name := range names {
		sources = append(sources, bySource[model.Source(name)])
	}
	return merge.Merge(sources...), nil
}

// weeks aggregates the unified dataset into sales weeks with manual
// inputs attached.
func (h *Handler) weeks(opts store.DayQueryOptions) ([]*model.WeeklyRecord, error) {
	unified, err := h.unified(opts)
	if err != nil {
		return nil, err
	}
	weeks := week.Aggregate(unified, week.Policy{PartialWeekGrowth: h.cfg.Policy.PartialWeekGrowth})

	manual, err := h.store.AllManualInputs()
	if err != nil {
		return nil, err
	}
	week.AttachManual(weeks, manual)
	return weeks, nil
}

// effectiveRates are the configured rates with any runtime overrides
// from the settings table applied on top.
func (h *Handler) effectiveRates() commission.Rates {
	rates := commission.Rates{
		Commission: h.cfg.Rates.CommissionRate,
		CardFee:    h.cfg.Rates.CardFeeRate,
		Tax:        h.cfg.Rates.TaxRate,
	}
	if v, ok := h.store.GetSettingFloat(settingCommissionRate); ok {
		rates.Commission = v
	}
	if v, ok := h.store.GetSettingFloat(settingCardFeeRate); ok {
		rates.CardFee = v
	}
	if v, ok := h.store.GetSettingFloat(settingTaxRate); ok {
		rates.Tax = v
	}
	return rates
}

func (h *Handler) serverError(c *gin.Context, err error) {
	h.log.WithError(err).Error("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
