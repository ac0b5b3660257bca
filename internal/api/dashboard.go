package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/merge"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/model"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/stats"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/store"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/util"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/week"
)

const (
	chartWidth  = "1100px"
	chartHeight = "400px"
)

// Dashboard renders the sales overview as a self-contained HTML page:
// daily gross, weekly trend, intraday profile, weekday profile and the
// payment mix.
// GET /dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	unified, err := h.unified(store.DayQueryOptions{})
	if err != nil {
		h.serverError(c, err)
		return
	}
	days := merge.Sorted(unified)
	weeks := week.Aggregate(unified, week.Policy{PartialWeekGrowth: h.cfg.Policy.PartialWeekGrowth})
	fractions := stats.Fractions{
		Peak: h.cfg.Policy.PeakFraction,
		Slow: h.cfg.Policy.SlowFraction,
	}

	page := components.NewPage()
	page.PageTitle = "Sodexo Nikos"
	page.AddCharts(
		dailyGrossChart(days),
		weeklyTrendChart(weeks),
		slotProfileChart(stats.Slots(unified, fractions)),
		weekdayChart(stats.Weekdays(unified)),
		paymentPie(days),
	)

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := page.Render(c.Writer); err != nil {
		h.log.WithError(err).Error("render dashboard")
	}
}

func dailyGrossChart(days []*model.DailyRecord) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Daily gross sales",
			Subtitle: "Gross after discounts, unified across sources",
		}),
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	labels := make([]string, 0, len(days))
	data := make([]opts.BarData, 0, len(days))
	for _, day := range days {
		labels = append(labels, day.Key())
		data = append(data, opts.BarData{Value: util.RoundHalfUp(day.GrossAfter, 2)})
	}
	bar.SetXAxis(labels).AddSeries("Gross after discounts", data)
	return bar
}

func weeklyTrendChart(weeks []*model.WeeklyRecord) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Weekly trend",
			Subtitle: "Gross after discounts per sales week, Thursday to Wednesday",
		}),
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	labels := make([]string, 0, len(weeks))
	data := make([]opts.LineData, 0, len(weeks))
	for _, wk := range weeks {
		labels = append(labels, wk.Label)
		data = append(data, opts.LineData{Value: util.RoundHalfUp(wk.GrossAfter, 2)})
	}
	line.SetXAxis(labels).AddSeries("Gross after discounts", data,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

func slotProfileChart(slots []stats.SlotStat) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Intraday profile",
			Subtitle: "Mean sales per 15-minute slot, 9:00 AM to 8:30 PM",
		}),
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	labels := make([]string, 0, len(slots))
	data := make([]opts.LineData, 0, len(slots))
	for _, slot := range slots {
		labels = append(labels, slot.Label)
		data = append(data, opts.LineData{Value: util.RoundHalfUp(slot.MeanSales, 2)})
	}
	line.SetXAxis(labels).AddSeries("Mean sales", data,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

func weekdayChart(weekdays []stats.WeekdayStat) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Weekday profile",
			Subtitle: "Total gross after discounts per day of week, Thursday first",
		}),
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	labels := make([]string, 0, len(weekdays))
	data := make([]opts.BarData, 0, len(weekdays))
	for _, day := range weekdays {
		labels = append(labels, day.Weekday)
		data = append(data, opts.BarData{Value: util.RoundHalfUp(day.TotalSales, 2)})
	}
	bar.SetXAxis(labels).AddSeries("Total sales", data)
	return bar
}

func paymentPie(days []*model.DailyRecord) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Payment mix",
			Subtitle: "Credit card and cash takings plus collected tax",
		}),
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
	)

	var card, cash, tax float64
	for _, day := range days {
		card += day.Payments.Card
		cash += day.Payments.Cash
		tax += day.Payments.Tax
	}
	pie.AddSeries("Payments", []opts.PieData{
		{Name: "Credit card", Value: util.RoundHalfUp(card, 2)},
		{Name: "Cash", Value: util.RoundHalfUp(cash, 2)},
		{Name: "Tax", Value: util.RoundHalfUp(tax, 2)},
	}, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c}"}))
	return pie
}
