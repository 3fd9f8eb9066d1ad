package dataprocessing

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "sailcli/internal/errors"
	"sailcli/pkg/contracts/domain"
)

var (
	// dayMarkerPattern matches the "(23-7)" day-month marker in the
	// forward-filled day column.
	dayMarkerPattern = regexp.MustCompile(`\((\d{1,2})-(\d{1,2})\)`)
	// nextDayPattern matches the "(02 Aug)" rollover marker an end time
	// carries when an activity crosses midnight.
	nextDayPattern = regexp.MustCompile(`\((\d{1,2}) ([A-Za-z]{3})\)`)
)

// Parser reads one sail-report workbook and produces the vessel's activity
// table. Unparsable rows are skipped with a warning; layout violations fail
// the whole file.
type Parser struct {
	layout ReportLayout
	year   int
	logger *slog.Logger
}

// NewParser creates a parser for the given layout. Day and rollover markers
// carry no year, so they are resolved against year; zero means the current
// year.
func NewParser(layout ReportLayout, year int, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	if year == 0 {
		year = time.Now().Year()
	}
	return &Parser{layout: layout, year: year, logger: logger}
}

// ParseFile reads a sail report from disk.
func (p *Parser) ParseFile(path string) (*domain.ShipReport, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewDataFormat("failed to open workbook", err)
	}
	defer f.Close()
	return p.parse(f, filepath.Base(path))
}

// Parse reads a sail report from an uploaded stream.
func (p *Parser) Parse(r io.Reader, source string) (*domain.ShipReport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewDataFormat("failed to open workbook", err)
	}
	defer f.Close()
	return p.parse(f, source)
}

func (p *Parser) parse(f *excelize.File, source string) (*domain.ShipReport, error) {
	if err := p.layout.Validate(); err != nil {
		return nil, err
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewDataFormat("workbook has no sheets", nil)
	}
	sheet := sheets[0]

	vessel, err := f.GetCellValue(sheet, p.layout.VesselCell)
	if err != nil {
		return nil, apperrors.NewDataFormat("failed to read vessel cell", err)
	}
	vessel = strings.TrimSpace(vessel)
	if vessel == "" {
		return nil, apperrors.NewDataFormat(
			fmt.Sprintf("vessel name cell %s is empty", p.layout.VesselCell), nil)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewDataFormat("failed to read sheet rows", err)
	}
	if len(rows) < p.layout.HeaderRow+p.layout.TrailingRows+1 {
		return nil, apperrors.NewDataFormat(
			fmt.Sprintf("sheet has %d rows, expected header at row %d plus data", len(rows), p.layout.HeaderRow), nil)
	}

	cols, err := p.layout.mapColumns(rows[p.layout.HeaderRow-1])
	if err != nil {
		return nil, err
	}

	report := &domain.ShipReport{Vessel: vessel, Source: source}

	var nominal time.Time
	haveNominal := false

	body := rows[p.layout.HeaderRow : len(rows)-p.layout.TrailingRows]
	for i, row := range body {
		rowNum := p.layout.HeaderRow + 1 + i

		cell := func(idx int) string {
			if idx >= 0 && idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}

		// The day column is sparse; carry the last marker forward so every
		// row knows its nominal calendar date.
		if marker := cell(cols.day); marker != "" {
			if d, ok := p.parseDayMarker(marker); ok {
				nominal = d
				haveNominal = true
			}
		}

		startText := cell(cols.start)
		endText := cell(cols.end)
		if startText == "" && endText == "" {
			continue
		}
		if !haveNominal {
			p.warnRow(report, rowNum, "no day marker seen before this row")
			continue
		}

		rec, warnings, err := p.parseRow(rowNum, vessel, nominal, cols, cell)
		if err != nil {
			rowsSkipped.Inc()
			p.logger.Warn("skipping unparsable row",
				slog.String("source", source),
				slog.Int("row", rowNum),
				slog.String("error", err.Error()))
			report.Warnings = append(report.Warnings, fmt.Sprintf("row %d skipped: %v", rowNum, err))
			continue
		}
		for _, w := range warnings {
			p.warnRow(report, rowNum, w)
		}

		rowsParsed.Inc()
		report.Records = append(report.Records, rec)
	}

	reportsParsed.Inc()
	p.logger.Info("parsed sail report",
		slog.String("source", source),
		slog.String("vessel", vessel),
		slog.Int("records", len(report.Records)),
		slog.Int("warnings", len(report.Warnings)))

	return report, nil
}

func (p *Parser) warnRow(report *domain.ShipReport, rowNum int, msg string) {
	report.Warnings = append(report.Warnings, fmt.Sprintf("row %d: %s", rowNum, msg))
}

// parseRow resolves one body row into an ActivityRecord.
func (p *Parser) parseRow(rowNum int, vessel string, nominal time.Time, cols columnIndex, cell func(int) string) (domain.ActivityRecord, []string, error) {
	var warnings []string

	start, err := combineDayTime(nominal, cell(cols.start))
	if err != nil {
		return domain.ActivityRecord{}, nil, apperrors.NewRowParse(rowNum, "invalid start time", err)
	}

	end, err := p.resolveEnd(nominal, cell(cols.end))
	if err != nil {
		return domain.ActivityRecord{}, nil, apperrors.NewRowParse(rowNum, "invalid end time", err)
	}
	if !end.After(start) {
		// An end before its start with no rollover marker is a data-quality
		// problem upstream; guessing "next day" here would hide it.
		return domain.ActivityRecord{}, nil, apperrors.NewRowParse(rowNum,
			fmt.Sprintf("end %s is not after start %s and carries no next-day marker",
				end.Format("2006-01-02 15:04"), start.Format("2006-01-02 15:04")), nil)
	}

	minutes := map[domain.Category]int{}
	for _, col := range []struct {
		cat domain.Category
		idx int
	}{
		{domain.CategorySailing, cols.sailing},
		{domain.CategoryWaiting, cols.waiting},
		{domain.CategoryResting, cols.resting},
		{domain.CategoryTerminal, cols.terminal},
	} {
		m, err := parseClockMinutes(cell(col.idx))
		if err != nil {
			return domain.ActivityRecord{}, nil, apperrors.NewRowParse(rowNum,
				fmt.Sprintf("invalid %s duration", strings.ToLower(string(col.cat))), err)
		}
		minutes[col.cat] = m
	}

	positive := 0
	for _, m := range minutes {
		if m > 0 {
			positive++
		}
	}
	// Priority order Resting > Sailing > Waiting resolves rows where the
	// source filled more than one duration field; rows with none filled are
	// load/unload time at a terminal.
	category := domain.CategoryTerminal
	for _, c := range domain.Categories {
		if minutes[c] > 0 {
			category = c
			break
		}
	}
	if positive > 1 {
		warnings = append(warnings, fmt.Sprintf("%d duration fields are positive, classified as %s", positive, category))
	}

	rec := domain.ActivityRecord{
		Vessel:   vessel,
		Start:    start,
		End:      end,
		Category: category,
		Speed:    p.parseSpeed(cell(cols.speed), &warnings),
	}
	// The active duration is derived from the resolved span, keeping the
	// timeline invariant even when the source H:MM text disagrees.
	rec.SetMinutes(category, rec.SpanMinutes())
	tagDates(&rec)

	return rec, warnings, nil
}

// parseDayMarker extracts the "(d-m)" calendar date from a day-column value.
func (p *Parser) parseDayMarker(text string) (time.Time, bool) {
	m := dayMarkerPattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(p.year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// resolveEnd parses an end-time field, honoring an embedded next-day marker
// such as "06:00 (02 Aug)".
func (p *Parser) resolveEnd(nominal time.Time, text string) (time.Time, error) {
	m := nextDayPattern.FindStringSubmatch(text)
	if m == nil {
		return combineDayTime(nominal, text)
	}

	marker, err := time.Parse("2 Jan 2006", fmt.Sprintf("%s %s %d", m[1], m[2], p.year))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid next-day marker %q: %w", m[0], err)
	}
	timePart := strings.Fields(text)[0]
	return combineDayTime(marker, timePart)
}

func (p *Parser) parseSpeed(text string, warnings *[]string) float64 {
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "km/u"))
	if text == "" {
		return 0
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		*warnings = append(*warnings, fmt.Sprintf("unreadable speed %q ignored", text))
		return 0
	}
	return v
}

// combineDayTime joins a calendar date with an HH:MM time of day.
func combineDayTime(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time of day %q: %w", clock, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

// parseClockMinutes converts "H:MM" duration text to whole minutes. Absent
// values become zero so downstream sums are always defined.
func parseClockMinutes(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}
	parts := strings.Split(text, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid duration %q, want H:MM", text)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", text, err)
	}
	mins, err := strconv.Atoi(parts[1])
	if err != nil || mins < 0 || mins > 59 {
		return 0, fmt.Errorf("invalid duration %q", text)
	}
	if hours < 0 {
		return 0, fmt.Errorf("invalid duration %q", text)
	}
	return hours*60 + mins, nil
}
