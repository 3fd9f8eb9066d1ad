package dataprocessing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "sailcli/internal/errors"
	"sailcli/pkg/contracts/domain"
)

// Input is one uploaded report file.
type Input struct {
	Name   string
	Reader io.Reader
}

// Options configures one pipeline run. The zero Layout means DefaultLayout.
type Options struct {
	WeekStart      time.Weekday
	Contracts      domain.ContractConfig
	ViolationsOnly bool
	Layout         ReportLayout
	// ContractHours is the weekly target applied to vessels missing from
	// Contracts; zero means domain.DefaultContractHours.
	ContractHours float64
	// Year resolves day markers that carry no year; zero means current year.
	Year int
}

// Result is the pipeline output handed to the presentation layer.
type Result struct {
	// Records is the fully normalized activity table: day-bounded records in
	// vessel order, chronological per vessel, each carrying its week
	// aggregates.
	Records   []domain.ActivityRecord  `json:"records"`
	Windows   []domain.WeekWindow      `json:"windows"`
	Selection domain.SelectionIndex    `json:"selection"`
	Vessels   []string                 `json:"vessels"`
	Contracts domain.ContractConfig    `json:"contracts"`
	Warnings  []string                 `json:"warnings,omitempty"`
}

// Pipeline runs the report normalization stages over one upload set. It is
// stateless: every Run takes explicit inputs and returns explicit outputs.
type Pipeline struct {
	logger *slog.Logger
}

// NewPipeline creates a pipeline.
func NewPipeline(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{logger: logger}
}

// Run parses all inputs and pushes them through merge, day-boundary split,
// week partitioning and window selection.
//
// Per-file parse failures become warnings; Run fails only when every file
// fails (the first error is returned) or nothing yields activity rows
// (EMPTY_INPUT, a soft "nothing to display" condition). Files parse
// concurrently but results are assembled in input order, so output is
// reproducible.
func (p *Pipeline) Run(ctx context.Context, inputs []Input, opts Options) (*Result, error) {
	if len(inputs) == 0 {
		return nil, apperrors.NewEmptyInput("no report files supplied")
	}
	if opts.Layout == (ReportLayout{}) {
		opts.Layout = DefaultLayout()
	}

	parser := NewParser(opts.Layout, opts.Year, p.logger)

	reports := make([]*domain.ShipReport, len(inputs))
	parseErrs := make([]error, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				parseErrs[i] = err
				return nil
			}
			reports[i], parseErrs[i] = parser.Parse(in.Reader, in.Name)
			return nil
		})
	}
	_ = g.Wait() // workers report per-file errors via parseErrs

	var warnings []string
	parsed := make([]*domain.ShipReport, 0, len(inputs))
	var firstErr error
	for i := range inputs {
		if parseErrs[i] != nil {
			if firstErr == nil {
				firstErr = parseErrs[i]
			}
			warnings = append(warnings, fmt.Sprintf("%s: %v", inputs[i].Name, parseErrs[i]))
			continue
		}
		parsed = append(parsed, reports[i])
		warnings = append(warnings, prefixed(inputs[i].Name, reports[i].Warnings)...)
	}
	if len(parsed) == 0 {
		return nil, apperrors.NewDataFormat("all report files failed to parse", firstErr)
	}

	table := Merge(parsed)
	if len(table) == 0 {
		return nil, apperrors.NewEmptyInput("reports contained no activity rows")
	}

	split := SplitDayBoundaries(table)
	windows := PartitionWeeks(split, opts.WeekStart)

	vessels := Vessels(split)
	defaultHours := opts.ContractHours
	if defaultHours <= 0 {
		defaultHours = domain.DefaultContractHours
	}
	contracts := make(domain.ContractConfig, len(vessels))
	for _, v := range vessels {
		contracts[v] = defaultHours
	}
	for v, h := range opts.Contracts {
		contracts[v] = h
	}
	selection := SelectWindows(windows, contracts, opts.ViolationsOnly)

	records := make([]domain.ActivityRecord, 0, len(split))
	for _, win := range windows {
		records = append(records, win.Records...)
	}

	p.logger.InfoContext(ctx, "pipeline run complete",
		slog.Int("files", len(inputs)),
		slog.Int("vessels", len(vessels)),
		slog.Int("records", len(records)),
		slog.Int("windows", len(windows)),
		slog.Int("warnings", len(warnings)))

	return &Result{
		Records:   records,
		Windows:   windows,
		Selection: selection,
		Vessels:   vessels,
		Contracts: contracts,
		Warnings:  warnings,
	}, nil
}

func prefixed(source string, warnings []string) []string {
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = fmt.Sprintf("%s: %s", source, w)
	}
	return out
}
