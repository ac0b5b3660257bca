package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/commission"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/exporter"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/merge"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/model"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/store"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv"
	contentTypePDF  = "application/pdf"
)

func attachment(c *gin.Context, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
}

// commissionReports computes the split for every week that has manual
// inputs. Weeks without them are skipped rather than failing the whole
// export.
func (h *Handler) commissionReports(weeks []*model.WeeklyRecord) ([]*model.CommissionReport, error) {
	rates := h.effectiveRates()
	policy := commission.Policy{AssumeCardOnly: h.cfg.Policy.AssumeCardOnly}

	reports := make([]*model.CommissionReport, 0, len(weeks))
	for _, wk := range weeks {
		report, err := commission.Compute(wk, rates, policy)
		if err != nil {
			var missing *model.MissingInputError
			if errors.As(err, &missing) {
				continue
			}
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// ExportWorkbook streams the unified dataset as an xlsx workbook with a
// summary sheet plus one sheet per day.
// GET /api/export/workbook
func (h *Handler) ExportWorkbook(c *gin.Context) {
	opts, ok := dayOptions(c)
	if !ok {
		return
	}

	unified, err := h.unified(opts)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if len(unified) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no data to export"})
		return
	}

	f, err := exporter.BuildWorkbook(unified)
	if err != nil {
		h.serverError(c, err)
		return
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		h.serverError(c, err)
		return
	}
	f.Close()

	attachment(c, "nikos-daily.xlsx")
	c.Data(http.StatusOK, contentTypeXLSX, buf.Bytes())
}

// ExportDailyCSV streams the unified day rows as CSV.
// GET /api/export/daily.csv
func (h *Handler) ExportDailyCSV(c *gin.Context) {
	opts, ok := dayOptions(c)
	if !ok {
		return
	}

	unified, err := h.unified(opts)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if len(unified) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no data to export"})
		return
	}

	var buf bytes.Buffer
	if err := exporter.WriteDailyCSV(&buf, merge.Sorted(unified)); err != nil {
		h.serverError(c, err)
		return
	}

	attachment(c, "nikos-daily.csv")
	c.Data(http.StatusOK, contentTypeCSV, buf.Bytes())
}

// ExportWeeklyCSV streams the aggregated weeks as CSV.
// GET /api/export/weekly.csv
func (h *Handler) ExportWeeklyCSV(c *gin.Context) {
	opts, ok := dayOptions(c)
	if !ok {
		return
	}

	weeks, err := h.weeks(opts)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if len(weeks) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no data to export"})
		return
	}

	var buf bytes.Buffer
	if err := exporter.WriteWeeklyCSV(&buf, weeks); err != nil {
		h.serverError(c, err)
		return
	}

	attachment(c, "nikos-weekly.csv")
	c.Data(http.StatusOK, contentTypeCSV, buf.Bytes())
}

// ExportCommissionCSV streams the commission reports for every week
// that has manual inputs.
// GET /api/export/commission.csv
func (h *Handler) ExportCommissionCSV(c *gin.Context) {
	opts, ok := dayOptions(c)
	if !ok {
		return
	}

	weeks, err := h.weeks(opts)
	if err != nil {
		h.serverError(c, err)
		return
	}

	reports, err := h.commissionReports(weeks)
	if err != nil {
		var invalid *model.ValidationError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.serverError(c, err)
		return
	}
	if len(reports) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no weeks with manual inputs to export"})
		return
	}

	var buf bytes.Buffer
	if err := exporter.WriteCommissionCSV(&buf, reports); err != nil {
		h.serverError(c, err)
		return
	}

	attachment(c, "nikos-commission.csv")
	c.Data(http.StatusOK, contentTypeCSV, buf.Bytes())
}

// ExportStatement renders the commission statement for one week as a
// PDF. The week may be addressed by any date inside it.
// GET /api/export/statement/:start
func (h *Handler) ExportStatement(c *gin.Context) {
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

	report, err := commission.Compute(target, h.effectiveRates(), commission.Policy{AssumeCardOnly: h.cfg.Policy.AssumeCardOnly})
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

	pdf, err := exporter.BuildStatement(report)
	if err != nil {
		h.serverError(c, err)
		return
	}

	attachment(c, fmt.Sprintf("statement-%s.pdf", report.InvoiceID))
	c.Data(http.StatusOK, contentTypePDF, pdf)
}
