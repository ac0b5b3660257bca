package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/model"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/store"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/week"
)

// StatusResponse reports service health and dataset extent.
type StatusResponse struct {
	Initialized   bool             `json:"initialized"`
	Version       string           `json:"version"`
	UptimeSeconds int64            `json:"uptimeSeconds"`
	Days          int              `json:"days"`
	POSDays       int              `json:"posDays"`
	OnlineDays    int              `json:"onlineDays"`
	Weeks         int              `json:"weeks"`
	FirstDate     string           `json:"firstDate,omitempty"`
	LastDate      string           `json:"lastDate,omitempty"`
	LastImport    *store.ImportLog `json:"lastImport,omitempty"`
}

// GetStatus reports the system state.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		Version:       Version,
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
	}

	unified, err := h.unified(store.DayQueryOptions{})
	if err != nil {
		h.serverError(c, err)
		return
	}
	resp.Days = len(unified)
	resp.Initialized = resp.Days > 0
	resp.Weeks = len(week.Aggregate(unified, week.Policy{PartialWeekGrowth: h.cfg.Policy.PartialWeekGrowth}))

	pos := string(model.SourcePOS)
	if n, err := h.store.CountDays(store.DayQueryOptions{Source: &pos}); err == nil {
		resp.POSDays = n
	}
	online := string(model.SourceOnline)
	if n, err := h.store.CountDays(store.DayQueryOptions{Source: &online}); err == nil {
		resp.OnlineDays = n
	}

	if first, last, err := h.store.DateRange(); err == nil {
		resp.FirstDate = first
		resp.LastDate = last
	}

	lastImport, err := h.store.LastImportLog()
	if err == nil {
		resp.LastImport = lastImport
	}

	c.JSON(http.StatusOK, resp)
}
