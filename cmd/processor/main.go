// Command processor runs the report pipeline over a directory of sail
// reports and writes the normalized activity table and week summaries as
// CSV files.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sailcli/internal/config"
	"sailcli/internal/dataprocessing"
	"sailcli/internal/errors"
	"sailcli/internal/exporter"
	"sailcli/internal/infrastructure"
)

func main() {
	inDir := flag.String("in", "reports", "input directory with .xlsx sail reports")
	outDir := flag.String("out", "out", "output directory for CSV files")
	weekStart := flag.String("week-start", "", "weekday an administrative week starts on (overrides config)")
	violations := flag.Bool("violations", false, "restrict selection to weeks below the contract target")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogger()

	if err := run(context.Background(), cfg, logger, *inDir, *outDir, *weekStart, *violations); err != nil {
		if errors.IsType(err, errors.ErrTypeEmptyInput) {
			logger.Info("nothing to display", "reason", err.Error())
			return
		}
		logger.Error("processing failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, inDir, outDir, weekStartFlag string, violations bool) error {
	weekStartValue := weekStartFlag
	if weekStartValue == "" {
		weekStartValue = cfg.Pipeline.WeekStart
	}
	weekStart, err := dataprocessing.ParseWeekStart(weekStartValue)
	if err != nil {
		return err
	}

	files, err := findReports(inDir)
	if err != nil {
		return err
	}
	logger.Info("processing sail reports",
		"input_dir", inDir,
		"files", len(files),
		"week_start", weekStart.String())

	inputs := make([]dataprocessing.Input, 0, len(files))
	var opened []*os.File
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		opened = append(opened, f)
		inputs = append(inputs, dataprocessing.Input{Name: filepath.Base(path), Reader: f})
	}

	pipeline := dataprocessing.NewPipeline(logger)
	result, err := pipeline.Run(ctx, inputs, dataprocessing.Options{
		WeekStart:      weekStart,
		ViolationsOnly: violations,
		ContractHours:  cfg.Pipeline.ContractHours,
		Year:           cfg.Pipeline.ReportYear,
	})
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		logger.Warn("data quality warning", "detail", w)
	}

	exp := exporter.NewReportExporter(outDir)
	if err := exp.ExportActivityTable(result.Records, "activity.csv"); err != nil {
		return err
	}
	if err := exp.ExportWeekSummaries(result.Windows, result.Contracts, "weeks.csv"); err != nil {
		return err
	}

	logger.Info("export complete",
		"output_dir", outDir,
		"records", len(result.Records),
		"weeks", len(result.Windows))
	return nil
}

// findReports lists the .xlsx files of a directory in name order.
func findReports(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".xlsx") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
