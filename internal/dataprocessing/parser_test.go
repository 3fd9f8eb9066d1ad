package dataprocessing

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "sailcli/internal/errors"
	"sailcli/pkg/contracts/domain"
)

func newTestParser() *Parser {
	return NewParser(DefaultLayout(), 2024, nil)
}

func TestParser_Parse(t *testing.T) {
	buf := buildReportWorkbook(t, "MS Hollandia", [][]string{
		{"Do (1-8)", "08:00", "12:00", "4:00", "", "", "", "10.5 km/u"},
		{"", "12:00", "14:00", "", "2:00", "", "", ""},
		{"", "14:00", "15:00", "", "", "", "1:00", ""},
		{"", "22:00", "06:00 (02 Aug)", "8:00", "", "", "", "12.0 km/u"},
	})

	report, err := newTestParser().Parse(buf, "hollandia.xlsx")
	require.NoError(t, err)

	assert.Equal(t, "MS Hollandia", report.Vessel)
	assert.Equal(t, "hollandia.xlsx", report.Source)
	require.Len(t, report.Records, 4)
	assert.Empty(t, report.Warnings)

	first := report.Records[0]
	assert.Equal(t, time.Date(2024, 8, 1, 8, 0, 0, 0, time.UTC), first.Start)
	assert.Equal(t, time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC), first.End)
	assert.Equal(t, domain.CategorySailing, first.Category)
	assert.Equal(t, 240, first.SailingMin)
	assert.Zero(t, first.WaitingMin)
	assert.InDelta(t, 10.5, first.Speed, 0.001)
	assert.Equal(t, "2024-08-01", first.StartDate)
	assert.Equal(t, "Thursday", first.StartWeekday)

	// The day marker is forward-filled onto marker-less rows.
	second := report.Records[1]
	assert.Equal(t, time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC), second.Start)
	assert.Equal(t, domain.CategoryWaiting, second.Category)
	assert.Equal(t, 120, second.WaitingMin)

	third := report.Records[2]
	assert.Equal(t, domain.CategoryTerminal, third.Category)
	assert.Equal(t, 60, third.TerminalMin)

	// The rollover marker resolves the end onto the next calendar day.
	fourth := report.Records[3]
	assert.Equal(t, time.Date(2024, 8, 1, 22, 0, 0, 0, time.UTC), fourth.Start)
	assert.Equal(t, time.Date(2024, 8, 2, 6, 0, 0, 0, time.UTC), fourth.End)
	assert.Equal(t, domain.CategorySailing, fourth.Category)
	assert.Equal(t, 480, fourth.SailingMin)
}

func TestParser_EndBeforeStartIsSkippedNotGuessed(t *testing.T) {
	buf := buildReportWorkbook(t, "MS Hollandia", [][]string{
		{"Do (1-8)", "08:00", "12:00", "4:00", "", "", "", ""},
		{"", "23:00", "01:00", "2:00", "", "", "", ""},
	})

	report, err := newTestParser().Parse(buf, "hollandia.xlsx")
	require.NoError(t, err)

	require.Len(t, report.Records, 1)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "not after start")
}

func TestParser_CategoryPriority(t *testing.T) {
	tests := []struct {
		name     string
		row      []string
		want     domain.Category
		warnings int
	}{
		{
			name: "resting beats sailing",
			row:  []string{"", "08:00", "10:00", "2:00", "", "2:00", "", ""},
			want: domain.CategoryResting, warnings: 1,
		},
		{
			name: "sailing beats waiting",
			row:  []string{"", "08:00", "10:00", "2:00", "2:00", "", "", ""},
			want: domain.CategorySailing, warnings: 1,
		},
		{
			name: "no positive duration defaults to terminal",
			row:  []string{"", "08:00", "10:00", "", "", "", "", ""},
			want: domain.CategoryTerminal, warnings: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := [][]string{{"Do (1-8)", "06:00", "07:00", "1:00", "", "", "", ""}, tt.row}
			report, err := newTestParser().Parse(buildReportWorkbook(t, "MS Test", rows), "test.xlsx")
			require.NoError(t, err)
			require.Len(t, report.Records, 2)

			rec := report.Records[1]
			assert.Equal(t, tt.want, rec.Category)
			assert.Len(t, report.Warnings, tt.warnings)

			// Exactly one duration field set, matching the category and span.
			assert.Equal(t, 120, rec.DurationMin())
			for _, c := range domain.Categories {
				if c != tt.want {
					assert.Zero(t, rec.Minutes(c), "category %s should be zero", c)
				}
			}
		})
	}
}

func TestParser_UnparsableRowsAreSkippedWithWarning(t *testing.T) {
	buf := buildReportWorkbook(t, "MS Hollandia", [][]string{
		{"Do (1-8)", "08:00", "12:00", "4:00", "", "", "", ""},
		{"", "12:00", "13:00", "1:99", "", "", "", ""},
		{"", "garbage", "14:00", "1:00", "", "", "", ""},
		{"", "14:00", "15:00", "1:00", "", "", "", ""},
	})

	report, err := newTestParser().Parse(buf, "hollandia.xlsx")
	require.NoError(t, err)

	assert.Len(t, report.Records, 2)
	assert.Len(t, report.Warnings, 2)
}

func TestParser_MissingColumnFailsFile(t *testing.T) {
	buf := buildWorkbook(t, "MS Hollandia",
		[]string{"Niet-flexibel", "Start", "Vaaruren", "Wachttijd", "Rusttijd", "Laad/Lostijd", "Snelheid"},
		[][]string{{"Do (1-8)", "08:00", "4:00", "", "", "", ""}})

	_, err := newTestParser().Parse(buf, "hollandia.xlsx")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeDataFormat))
	assert.Contains(t, err.Error(), "Einde")
}

func TestParser_EmptyVesselCellFailsFile(t *testing.T) {
	buf := buildReportWorkbook(t, "", [][]string{
		{"Do (1-8)", "08:00", "12:00", "4:00", "", "", "", ""},
	})

	_, err := newTestParser().Parse(buf, "report.xlsx")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeDataFormat))
}

func TestParser_NotAWorkbook(t *testing.T) {
	_, err := newTestParser().Parse(strings.NewReader("not a workbook"), "broken.xlsx")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeDataFormat))
}

func TestParser_DayAltColumnName(t *testing.T) {
	buf := buildWorkbook(t, "MS Hollandia",
		[]string{"Dag", "Start", "Einde", "Vaaruren", "Wachttijd", "Rusttijd", "Laad/Lostijd", "Snelheid"},
		[][]string{{"Do (1-8)", "08:00", "12:00", "4:00", "", "", "", ""}})

	report, err := newTestParser().Parse(buf, "old-layout.xlsx")
	require.NoError(t, err)
	require.Len(t, report.Records, 1)
	assert.Equal(t, "2024-08-01", report.Records[0].StartDate)
}

func TestParseClockMinutes(t *testing.T) {
	tests := []struct {
		text    string
		want    int
		wantErr bool
	}{
		{"4:00", 240, false},
		{"0:30", 30, false},
		{"26:15", 1575, false},
		{"", 0, false},
		{"4", 0, true},
		{"4:60", 0, true},
		{"-1:00", 0, true},
		{"a:b", 0, true},
	}
	for _, tt := range tests {
		got, err := parseClockMinutes(tt.text)
		if tt.wantErr {
			assert.Error(t, err, "text %q", tt.text)
			continue
		}
		require.NoError(t, err, "text %q", tt.text)
		assert.Equal(t, tt.want, got, "text %q", tt.text)
	}
}
