package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sailcli/pkg/contracts/domain"
)

// dayRecord builds a single-day record of the given category covering
// hours [from, to) on the given date.
func dayRecord(vessel string, date time.Time, from, to int, category domain.Category) domain.ActivityRecord {
	return makeRecord(vessel,
		time.Date(date.Year(), date.Month(), date.Day(), from, 0, 0, 0, time.UTC),
		time.Date(date.Year(), date.Month(), date.Day(), to, 0, 0, 0, time.UTC),
		category)
}

func TestParseWeekStart(t *testing.T) {
	tests := []struct {
		value   string
		want    time.Weekday
		wantErr bool
	}{
		{"Saturday", time.Saturday, false},
		{"monday", time.Monday, false},
		{"0", time.Monday, false},
		{"5", time.Saturday, false},
		{"6", time.Sunday, false},
		{"7", 0, true},
		{"Funday", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseWeekStart(tt.value)
		if tt.wantErr {
			assert.Error(t, err, "value %q", tt.value)
			continue
		}
		require.NoError(t, err, "value %q", tt.value)
		assert.Equal(t, tt.want, got, "value %q", tt.value)
	}
}

func TestPartitionWeeks_ShortFirstWeek(t *testing.T) {
	// Week starts Saturday; the vessel's history starts on a Wednesday.
	// 2024-07-31 is a Wednesday, 2024-08-03 a Saturday.
	var records []domain.ActivityRecord
	for day := 0; day < 10; day++ {
		date := time.Date(2024, 7, 31, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day)
		records = append(records, dayRecord("ShipA", date, 8, 16, domain.CategorySailing))
	}

	windows := PartitionWeeks(records, time.Saturday)
	require.Len(t, windows, 2)

	first := windows[0]
	assert.True(t, first.Summary.ShortWeek)
	assert.Len(t, first.Records, 3) // Wednesday through Friday
	assert.Equal(t, "Wednesday", first.Records[0].StartWeekday)
	assert.Equal(t, "Friday", first.Records[len(first.Records)-1].StartWeekday)

	second := windows[1]
	assert.False(t, second.Summary.ShortWeek)
	assert.Equal(t, "Saturday", second.Records[0].StartWeekday)
	assert.Len(t, second.Records, 7)
}

func TestPartitionWeeks_AggregatesMatchRecords(t *testing.T) {
	base := time.Date(2024, 8, 3, 0, 0, 0, 0, time.UTC) // Saturday
	records := []domain.ActivityRecord{
		dayRecord("ShipA", base, 0, 8, domain.CategorySailing),
		dayRecord("ShipA", base, 8, 12, domain.CategoryWaiting),
		dayRecord("ShipA", base.AddDate(0, 0, 1), 0, 6, domain.CategoryResting),
		dayRecord("ShipA", base.AddDate(0, 0, 1), 6, 9, domain.CategoryTerminal),
	}
	records[0].Speed = 11.2
	records[1].Speed = 9.7

	windows := PartitionWeeks(records, time.Saturday)
	require.Len(t, windows, 1)

	s := windows[0].Summary
	assert.InDelta(t, 8.0, s.SailingHours, 1e-9)
	assert.InDelta(t, 4.0, s.WaitingHours, 1e-9)
	assert.InDelta(t, 6.0, s.RestingHours, 1e-9)
	assert.InDelta(t, 3.0, s.TerminalHours, 1e-9)
	// Contracted time excludes resting.
	assert.InDelta(t, 15.0, s.ContractedHours, 1e-9)
	assert.InDelta(t, 10.5, s.AvgSpeed, 1e-9) // rounded mean of 11.2 and 9.7

	// Aggregates always equal the sums over the window's own records.
	for c, want := range map[domain.Category]float64{
		domain.CategorySailing:  s.SailingHours,
		domain.CategoryWaiting:  s.WaitingHours,
		domain.CategoryResting:  s.RestingHours,
		domain.CategoryTerminal: s.TerminalHours,
	} {
		sum := 0
		for _, r := range windows[0].Records {
			sum += r.Minutes(c)
		}
		assert.InDelta(t, want, float64(sum)/60, 1e-9, "category %s", c)
	}
}

func TestPartitionWeeks_DenormalizesAggregatesOntoRecords(t *testing.T) {
	base := time.Date(2024, 8, 3, 0, 0, 0, 0, time.UTC)
	records := []domain.ActivityRecord{
		dayRecord("ShipA", base, 0, 8, domain.CategorySailing),
		dayRecord("ShipA", base.AddDate(0, 0, 1), 0, 4, domain.CategoryWaiting),
	}

	windows := PartitionWeeks(records, time.Saturday)
	require.Len(t, windows, 1)

	for _, rec := range windows[0].Records {
		require.NotNil(t, rec.Week)
		assert.Equal(t, windows[0].Summary, *rec.Week)
	}
	// The partitioner annotates copies, not its input.
	for _, rec := range records {
		assert.Nil(t, rec.Week)
	}
}

func TestPartitionWeeks_CoverageNoGapsNoOverlaps(t *testing.T) {
	// Two vessels, sparse histories (rows are not daily-contiguous).
	var records []domain.ActivityRecord
	start := time.Date(2024, 7, 29, 0, 0, 0, 0, time.UTC) // Monday
	for day := 0; day < 21; day += 2 {
		date := start.AddDate(0, 0, day)
		records = append(records, dayRecord("ShipA", date, 6, 18, domain.CategorySailing))
	}
	for day := 0; day < 14; day += 3 {
		date := start.AddDate(0, 0, day)
		records = append(records, dayRecord("ShipB", date, 0, 12, domain.CategoryWaiting))
	}

	windows := PartitionWeeks(records, time.Monday)

	counts := map[string]int{}
	for _, win := range windows {
		require.NotEmpty(t, win.Records)
		counts[win.Vessel] += len(win.Records)

		// Within a window, records stay chronological.
		for i := 0; i+1 < len(win.Records); i++ {
			assert.False(t, win.Records[i+1].Start.Before(win.Records[i].Start))
		}
		// No window spans more than seven distinct weekday offsets.
		for _, rec := range win.Records {
			offset := weekdayOffset(rec.Start.Weekday(), time.Monday)
			assert.GreaterOrEqual(t, offset, 0)
			assert.Less(t, offset, 7)
		}
	}
	assert.Equal(t, 11, counts["ShipA"])
	assert.Equal(t, 5, counts["ShipB"])

	// Consecutive windows of one vessel do not overlap in time.
	byVessel := map[string][]domain.WeekWindow{}
	for _, win := range windows {
		byVessel[win.Vessel] = append(byVessel[win.Vessel], win)
	}
	for vessel, wins := range byVessel {
		for i := 0; i+1 < len(wins); i++ {
			assert.True(t, wins[i].End().Before(wins[i+1].Start()) || wins[i].End().Equal(wins[i+1].Start()),
				"vessel %s windows %d and %d overlap", vessel, i, i+1)
		}
	}
}

func TestPartitionWeeks_BoundaryOnExactWeekday(t *testing.T) {
	// Rows on Fri, Sat, Sun with Saturday start: Friday alone, then Sat+Sun.
	records := []domain.ActivityRecord{
		dayRecord("ShipA", time.Date(2024, 8, 2, 0, 0, 0, 0, time.UTC), 8, 12, domain.CategorySailing),
		dayRecord("ShipA", time.Date(2024, 8, 3, 0, 0, 0, 0, time.UTC), 8, 12, domain.CategorySailing),
		dayRecord("ShipA", time.Date(2024, 8, 4, 0, 0, 0, 0, time.UTC), 8, 12, domain.CategorySailing),
	}

	windows := PartitionWeeks(records, time.Saturday)
	require.Len(t, windows, 2)
	assert.Len(t, windows[0].Records, 1)
	assert.Len(t, windows[1].Records, 2)
}

func TestPartitionWeeks_EmptyInput(t *testing.T) {
	assert.Empty(t, PartitionWeeks(nil, time.Saturday))
}
