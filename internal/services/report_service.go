package services

import (
	"context"
	"log/slog"

	"sailcli/internal/config"
	"sailcli/internal/dataprocessing"
	"sailcli/pkg/contracts/domain"
)

// ReportService bridges the HTTP surface and the processing pipeline. It
// holds only configuration defaults; every request is processed from its
// own inputs with no cross-request state.
type ReportService struct {
	pipeline *dataprocessing.Pipeline
	defaults config.PipelineConfig
	logger   *slog.Logger
}

// NewReportService creates a report service with the given pipeline
// defaults.
func NewReportService(defaults config.PipelineConfig, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		pipeline: dataprocessing.NewPipeline(logger),
		defaults: defaults,
		logger:   logger.With(slog.String("component", "report_service")),
	}
}

// ProcessParams carries the per-request configuration overrides from the
// dashboard. Empty values fall back to the configured defaults.
type ProcessParams struct {
	WeekStart        string
	Contracts        domain.ContractConfig
	FilterViolations *bool
}

// Process runs the pipeline over the uploaded reports.
func (s *ReportService) Process(ctx context.Context, inputs []dataprocessing.Input, params ProcessParams) (*dataprocessing.Result, error) {
	weekStartValue := params.WeekStart
	if weekStartValue == "" {
		weekStartValue = s.defaults.WeekStart
	}
	weekStart, err := dataprocessing.ParseWeekStart(weekStartValue)
	if err != nil {
		return nil, err
	}

	violationsOnly := s.defaults.FilterViolations
	if params.FilterViolations != nil {
		violationsOnly = *params.FilterViolations
	}

	opts := dataprocessing.Options{
		WeekStart:      weekStart,
		Contracts:      params.Contracts,
		ViolationsOnly: violationsOnly,
		ContractHours:  s.defaults.ContractHours,
		Year:           s.defaults.ReportYear,
	}

	s.logger.InfoContext(ctx, "processing report upload",
		slog.Int("files", len(inputs)),
		slog.String("week_start", weekStart.String()),
		slog.Bool("violations_only", violationsOnly))

	return s.pipeline.Run(ctx, inputs, opts)
}

// DefaultContractHours returns the configured default weekly target.
func (s *ReportService) DefaultContractHours() float64 {
	return s.defaults.ContractHours
}
