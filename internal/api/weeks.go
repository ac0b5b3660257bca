package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/commission"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/model"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/store"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/week"
)

var validate = validator.New()

// ListWeeks returns the weekly aggregates, oldest first.
// GET /api/weeks
func (h *Handler) ListWeeks(c *gin.Context) {
	opts, ok := dayOptions(c)
	if !ok {
		return
	}

	weeks, err := h.weeks(opts)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"weeks": weeks, "count": len(weeks)})
}

// weekStartParam parses the :start path segment. A mid-week date
// resolves to its week's Thursday.
func weekStartParam(c *gin.Context) (string, bool) {
	date, err := time.Parse(model.DateKey, c.Param("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be a YYYY-MM-DD date"})
		return "", false
	}
	return week.Start(date).Format(model.DateKey), true
}

// PutManualInputs stores one week's manual card and tax scalars.
// PUT /api/weeks/:start/manual
func (h *Handler) PutManualInputs(c *gin.Context) {
	startKey, ok := weekStartParam(c)
	if !ok {
		return
	}

	var inputs model.ManualInputs
	if err := c.ShouldBindJSON(&inputs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be JSON with cardSales and taxCollected"})
		return
	}
	if err := validate.Struct(inputs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "card sales and tax collected must be non-negative"})
		return
	}

	if err := h.store.UpsertManualInputs(startKey, inputs); err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"weekStart": startKey, "manual": inputs})
}

// GetCommission computes the commission split for one week. A week
// without manual inputs is 422; out-of-range rates are 400.
// GET /api/weeks/:start/commission
func (h *Handler) GetCommission(c *gin.Context) {
	startKey, ok := weekStartParam(c)
	if !ok {
		return
	}

	weeks, err := h.weeks(store.DayQueryOptions{})
	if err != nil {
		h.serverError(c, err)
		return
	}

	var target *model.WeeklyRecord
	for _, wk := range weeks {
		if wk.StartKey() == startKey {
			target = wk
			break
		}
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no data for week %s", startKey)})
		return
	}

	policy := commission.Policy{AssumeCardOnly: h.cfg.Policy.AssumeCardOnly}
	report, err := commission.Compute(target, h.effectiveRates(), policy)
	if err != nil {
		var missing *model.MissingInputError
		if errors.As(err, &missing) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		var invalid *model.ValidationError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
