// Package dataprocessing implements the ship-report normalization pipeline.
//
// Data flows through five stages:
//
//	raw .xlsx → Parser → Merge → SplitDayBoundaries → PartitionWeeks → SelectWindows
//
// The Parser reads one spreadsheet report with a fixed layout (see
// ReportLayout) and produces a per-vessel activity table with resolved
// timestamps and minute-granular durations. Merge concatenates tables from
// multiple uploads. SplitDayBoundaries rewrites the table so no record spans
// a calendar-day boundary. PartitionWeeks groups each vessel's records into
// administrative weeks starting on a configurable weekday and attaches the
// derived week aggregates. SelectWindows indexes the resulting windows
// against per-vessel contract-hours targets for period selection.
//
// All stages are pure transformations over in-memory tables. The Pipeline
// type wires them together; it is stateless and safe to reuse across
// uploads.
package dataprocessing
