package exporter

import (
	"fmt"
	"strconv"

	"sailcli/pkg/contracts/domain"
)

// ReportExporter writes the pipeline output as CSV files for download or
// batch processing.
type ReportExporter struct {
	csvWriter *CSVWriter
}

// NewReportExporter creates an exporter writing below outDir.
func NewReportExporter(outDir string) *ReportExporter {
	return &ReportExporter{csvWriter: NewCSVWriter(outDir)}
}

// ExportActivityTable writes the normalized activity table.
func (e *ReportExporter) ExportActivityTable(records []domain.ActivityRecord, name string) error {
	headers := []string{
		"Vessel", "Start", "End", "Category",
		"SailingMin", "WaitingMin", "RestingMin", "TerminalMin",
		"Speed", "StartDate", "StartWeekday",
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Vessel,
			r.Start.Format("2006-01-02 15:04:05"),
			r.End.Format("2006-01-02 15:04:05"),
			string(r.Category),
			strconv.Itoa(r.SailingMin),
			strconv.Itoa(r.WaitingMin),
			strconv.Itoa(r.RestingMin),
			strconv.Itoa(r.TerminalMin),
			formatFloat(r.Speed),
			r.StartDate,
			r.StartWeekday,
		})
	}

	return e.csvWriter.WriteCSV(name, WriteOptions{Headers: headers, Records: rows, BOMPrefix: true})
}

// ExportWeekSummaries writes one row per week window with its display-ready
// aggregates and the delta against the vessel's contract target.
func (e *ReportExporter) ExportWeekSummaries(windows []domain.WeekWindow, contracts domain.ContractConfig, name string) error {
	headers := []string{
		"Vessel", "WeekStart", "WeekEnd", "AvgSpeed",
		"SailingHours", "WaitingHours", "TerminalHours", "RestingHours",
		"ContractedHours", "ContractTarget", "Delta", "ShortWeek",
	}

	rows := make([][]string, 0, len(windows))
	for _, w := range windows {
		target := contracts.HoursFor(w.Vessel)
		rows = append(rows, []string{
			w.Vessel,
			w.Start().Format("2006-01-02 15:04:05"),
			w.End().Format("2006-01-02 15:04:05"),
			formatFloat(w.Summary.AvgSpeed),
			formatFloat(domain.Round1(w.Summary.SailingHours)),
			formatFloat(domain.Round1(w.Summary.WaitingHours)),
			formatFloat(domain.Round1(w.Summary.TerminalHours)),
			formatFloat(domain.Round1(w.Summary.RestingHours)),
			formatFloat(domain.Round1(w.Summary.ContractedHours)),
			formatFloat(target),
			formatFloat(domain.Round1(w.Summary.Delta(target))),
			strconv.FormatBool(w.Summary.ShortWeek),
		})
	}

	return e.csvWriter.WriteCSV(name, WriteOptions{Headers: headers, Records: rows, BOMPrefix: true})
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
