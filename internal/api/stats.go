package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/stats"
)

// SlotStats returns per-slot aggregates over the requested range with
// peak/slow classification.
// GET /api/stats/slots
func (h *Handler) SlotStats(c *gin.Context) {
	opts, ok := dayOptions(c)
	if !ok {
		return
	}

	unified, err := h.unified(opts)
	if err != nil {
		h.serverError(c, err)
		return
	}

	fractions := stats.Fractions{
		Peak: h.cfg.Policy.PeakFraction,
		Slow: h.cfg.Policy.SlowFraction,
	}
	c.JSON(http.StatusOK, gin.H{
		"slots": stats.Slots(unified, fractions),
		"days":  len(unified),
	})
}

// WeekdayStats returns day-of-week aggregates, Thursday first.
// GET /api/stats/weekdays
func (h *Handler) WeekdayStats(c *gin.Context) {
	opts, ok := dayOptions(c)
	if !ok {
		return
	}

	unified, err := h.unified(opts)
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"weekdays": stats.Weekdays(unified),
		"days":     len(unified),
	})
}
