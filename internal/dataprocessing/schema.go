package dataprocessing

import (
	"fmt"
	"strings"

	apperrors "sailcli/internal/errors"
)

// ReportLayout names the fixed positions of the sail-report spreadsheet
// layout. The layout is validated against each uploaded workbook instead of
// being assumed row by row.
type ReportLayout struct {
	// VesselCell is the cell holding the vessel name.
	VesselCell string
	// HeaderRow is the 1-based row containing the column headers. Data rows
	// follow immediately after it.
	HeaderRow int
	// TrailingRows is the number of summary rows discarded at the bottom of
	// the sheet.
	TrailingRows int
	Columns      ColumnNames
}

// ColumnNames enumerates the localized column headers of a sail report.
type ColumnNames struct {
	// Day is the forward-filled day-marker column. DayAlt is the older name
	// some reports use for the same column.
	Day    string
	DayAlt string

	Start    string
	End      string
	Sailing  string
	Waiting  string
	Resting  string
	Terminal string
	Speed    string
}

// DefaultLayout returns the layout of Cofano BOS sail reports.
func DefaultLayout() ReportLayout {
	return ReportLayout{
		VesselCell:   "B2",
		HeaderRow:    8,
		TrailingRows: 2,
		Columns: ColumnNames{
			Day:      "Niet-flexibel",
			DayAlt:   "Dag",
			Start:    "Start",
			End:      "Einde",
			Sailing:  "Vaaruren",
			Waiting:  "Wachttijd",
			Resting:  "Rusttijd",
			Terminal: "Laad/Lostijd",
			Speed:    "Snelheid",
		},
	}
}

// Validate checks that the layout itself is usable.
func (l ReportLayout) Validate() error {
	if l.VesselCell == "" || l.HeaderRow < 1 || l.TrailingRows < 0 {
		return apperrors.NewValidation("report layout is incomplete", nil)
	}
	c := l.Columns
	if c.Day == "" || c.Start == "" || c.End == "" ||
		c.Sailing == "" || c.Waiting == "" || c.Resting == "" || c.Terminal == "" {
		return apperrors.NewValidation("report layout is missing column names", nil)
	}
	return nil
}

// columnIndex holds the resolved positions of the layout's columns within a
// concrete header row. Speed is optional and -1 when absent.
type columnIndex struct {
	day      int
	start    int
	end      int
	sailing  int
	waiting  int
	resting  int
	terminal int
	speed    int
}

// mapColumns resolves the layout's column names against the workbook's
// header row. A missing required column fails the whole file.
func (l ReportLayout) mapColumns(header []string) (columnIndex, error) {
	idx := columnIndex{day: -1, start: -1, end: -1, sailing: -1, waiting: -1, resting: -1, terminal: -1, speed: -1}

	for j, name := range header {
		switch strings.TrimSpace(name) {
		case l.Columns.Day, l.Columns.DayAlt:
			idx.day = j
		case l.Columns.Start:
			idx.start = j
		case l.Columns.End:
			idx.end = j
		case l.Columns.Sailing:
			idx.sailing = j
		case l.Columns.Waiting:
			idx.waiting = j
		case l.Columns.Resting:
			idx.resting = j
		case l.Columns.Terminal:
			idx.terminal = j
		case l.Columns.Speed:
			idx.speed = j
		}
	}

	var missing []string
	for _, col := range []struct {
		name string
		pos  int
	}{
		{l.Columns.Day, idx.day},
		{l.Columns.Start, idx.start},
		{l.Columns.End, idx.end},
		{l.Columns.Sailing, idx.sailing},
		{l.Columns.Waiting, idx.waiting},
		{l.Columns.Resting, idx.resting},
		{l.Columns.Terminal, idx.terminal},
	} {
		if col.pos < 0 {
			missing = append(missing, col.name)
		}
	}
	if len(missing) > 0 {
		return idx, apperrors.NewDataFormat(
			fmt.Sprintf("header row is missing required columns: %s", strings.Join(missing, ", ")), nil)
	}
	return idx, nil
}
