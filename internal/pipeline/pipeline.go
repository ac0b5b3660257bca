// Package pipeline runs the whole flow as one synchronous pass: parse
// the input workbooks, merge per date, aggregate weeks, write exports.
// No server and no database are involved; a run with identical inputs
// produces identical CSV output.
package pipeline

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/commission"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/config"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/exporter"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/merge"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/model"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/parser"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/week"
)

// Options name one batch run's inputs and outputs. At least one input
// workbook and one output destination are required.
type Options struct {
	POSPath    string
	OnlinePath string
	ManualPath string // optional per-week manual inputs, TOML
	OutPath    string // output workbook
	CSVDir     string // optional directory for the CSV tables
}

// Result summarizes a completed batch run.
type Result struct {
	Days    int
	Weeks   int
	Written []string
}

// Run executes one batch pass. All inputs are parsed before anything
// is written, so a failing input leaves no partial output behind.
func Run(opts Options, cfg *config.AppConfig, log *logrus.Logger) (*Result, error) {
	if opts.POSPath == "" && opts.OnlinePath == "" {
		return nil, errors.New("no input workbook given")
	}
	if opts.OutPath == "" && opts.CSVDir == "" {
		return nil, errors.New("no output destination given")
	}

	var sources []map[string]*model.DailyRecord
	for _, path := range []string{opts.POSPath, opts.OnlinePath} {
		if path == "" {
			continue
		}
		records, _, err := parser.ParseWorkbook(path, log)
		if err != nil {
			return nil, err
		}
		sources = append(sources, records)
	}

	unified := merge.Merge(sources...)
	if len(unified) == 0 {
		return nil, errors.New("inputs contain no recognizable day data")
	}

	weeks := week.Aggregate(unified, week.Policy{PartialWeekGrowth: cfg.Policy.PartialWeekGrowth})

	if opts.ManualPath != "" {
		manual, err := LoadManualInputs(opts.ManualPath)
		if err != nil {
			return nil, err
		}
		week.AttachManual(weeks, manual)
	}

	result := &Result{Days: len(unified), Weeks: len(weeks)}

	if opts.OutPath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.OutPath), 0o755); err != nil {
			return nil, &model.FileAccessError{Path: opts.OutPath, Op: "create", Err: err}
		}
		f, err := exporter.BuildWorkbook(unified)
		if err != nil {
			return nil, err
		}
		err = f.SaveAs(opts.OutPath)
		f.Close()
		if err != nil {
			return nil, &model.FileAccessError{Path: opts.OutPath, Op: "write", Err: err}
		}
		result.Written = append(result.Written, opts.OutPath)
	}

	if opts.CSVDir != "" {
		written, err := writeCSVDir(opts.CSVDir, unified, weeks, cfg, log)
		if err != nil {
			return nil, err
		}
		result.Written = append(result.Written, written...)
	}

	log.WithFields(logrus.Fields{
		"days":    result.Days,
		"weeks":   result.Weeks,
		"outputs": len(result.Written),
	}).Info("batch run complete")

	return result, nil
}

// writeCSVDir renders the daily, weekly and commission tables into dir.
// The commission table is only written when at least one week has its
// manual inputs.
func writeCSVDir(dir string, unified map[string]*model.DailyRecord, weeks []*model.WeeklyRecord, cfg *config.AppConfig, log *logrus.Logger) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &model.FileAccessError{Path: dir, Op: "create", Err: err}
	}

	var written []string
	write := func(name string, render func(io.Writer) error) error {
		var buf bytes.Buffer
		if err := render(&buf); err != nil {
			return err
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return &model.FileAccessError{Path: path, Op: "write", Err: err}
		}
		written = append(written, path)
		return nil
	}

	if err := write("daily.csv", func(w io.Writer) error {
		return exporter.WriteDailyCSV(w, merge.Sorted(unified))
	}); err != nil {
		return nil, err
	}

	if err := write("weekly.csv", func(w io.Writer) error {
		return exporter.WriteWeeklyCSV(w, weeks)
	}); err != nil {
		return nil, err
	}

	reports, err := commissionReports(weeks, cfg, log)
	if err != nil {
		return nil, err
	}
	if len(reports) > 0 {
		if err := write("commission.csv", func(w io.Writer) error {
			return exporter.WriteCommissionCSV(w, reports)
		}); err != nil {
			return nil, err
		}
	}

	return written, nil
}

// commissionReports computes the split for every week carrying manual
// inputs. Weeks without them are skipped, not errors; bad configured
// rates fail the run before any week is computed.
func commissionReports(weeks []*model.WeeklyRecord, cfg *config.AppConfig, log *logrus.Logger) ([]*model.CommissionReport, error) {
	rates := commission.Rates{
		Commission: cfg.Rates.CommissionRate,
		CardFee:    cfg.Rates.CardFeeRate,
		Tax:        cfg.Rates.TaxRate,
	}
	if err := rates.Validate(); err != nil {
		return nil, err
	}
	policy := commission.Policy{AssumeCardOnly: cfg.Policy.AssumeCardOnly}

	var reports []*model.CommissionReport
	for _, wk := range weeks {
		report, err := commission.Compute(wk, rates, policy)
		if err != nil {
			var missing *model.MissingInputError
			if errors.As(err, &missing) {
				log.WithField("week", wk.StartKey()).Debug("no manual inputs, commission skipped")
				continue
			}
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}
