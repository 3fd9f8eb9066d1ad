package dataprocessing

import (
	"fmt"
	"sort"
	"strings"
	"time"

	apperrors "sailcli/internal/errors"
	"sailcli/pkg/contracts/domain"
)

// weekdayNames is Monday-based, matching the 0-6 integer form of the
// week-start configuration surface.
var weekdayNames = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// ParseWeekStart resolves a configured week-start value: either a weekday
// name or an integer 0-6 meaning Monday-based.
func ParseWeekStart(value string) (time.Weekday, error) {
	value = strings.TrimSpace(value)
	if len(value) == 1 && value[0] >= '0' && value[0] <= '6' {
		return weekdayNames[value[0]-'0'], nil
	}
	for _, d := range weekdayNames {
		if strings.EqualFold(d.String(), value) {
			return d, nil
		}
	}
	return 0, apperrors.NewValidation(fmt.Sprintf("invalid week-start weekday %q", value), nil)
}

// PartitionWeeks groups each vessel's chronologically-ordered records into
// maximal contiguous administrative weeks. A new week begins exactly when
// the weekday sequence crosses the configured start weekday, detected by
// modular weekday distance between consecutive rows rather than calendar
// arithmetic, since rows need not be daily-contiguous.
//
// The first window of a vessel's history always starts at its first record;
// when that record's weekday is not the configured start, the window is
// flagged as a short week. Every record in a window carries a copy of the
// window's aggregates, so any row can answer which week totals it belongs
// to. Vessels without records are simply absent from the output.
func PartitionWeeks(records []domain.ActivityRecord, weekStart time.Weekday) []domain.WeekWindow {
	byVessel := make(map[string][]domain.ActivityRecord)
	for _, rec := range records {
		byVessel[rec.Vessel] = append(byVessel[rec.Vessel], rec)
	}

	vessels := make([]string, 0, len(byVessel))
	for v := range byVessel {
		vessels = append(vessels, v)
	}
	sort.Strings(vessels)

	var windows []domain.WeekWindow
	for _, vessel := range vessels {
		rows := byVessel[vessel]
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Start.Before(rows[j].Start) })

		bounds := weekStartIndices(rows, weekStart)
		for k := 0; k+1 < len(bounds); k++ {
			win := domain.WeekWindow{
				Vessel:  vessel,
				Records: rows[bounds[k]:bounds[k+1]],
			}
			win.Summary = summarize(win.Records)
			if bounds[k] == 0 && rows[0].Start.Weekday() != weekStart {
				win.Summary.ShortWeek = true
			}
			// Denormalize onto copies, never the partitioner's input.
			summary := win.Summary
			for i := range win.Records {
				win.Records[i].Week = &summary
			}
			windows = append(windows, win)
		}
	}
	return windows
}

// weekStartIndices returns the slice boundaries of a vessel's weeks: index 0,
// every index where a new week begins, and len(rows). A boundary lies between
// consecutive rows when the next row's modular offset from the configured
// start weekday shrinks, meaning the start weekday was crossed in between.
func weekStartIndices(rows []domain.ActivityRecord, weekStart time.Weekday) []int {
	bounds := []int{0}
	for i := 0; i+1 < len(rows); i++ {
		cur := weekdayOffset(rows[i].Start.Weekday(), weekStart)
		next := weekdayOffset(rows[i+1].Start.Weekday(), weekStart)
		if next < cur {
			bounds = append(bounds, i+1)
		}
	}
	return append(bounds, len(rows))
}

// weekdayOffset is the number of days from the week start to d in modular
// weekday order: 0 for the start weekday itself, up to 6.
func weekdayOffset(d, weekStart time.Weekday) int {
	return (int(d) - int(weekStart) + 7) % 7
}

// summarize recomputes a window's aggregates from its own records.
func summarize(records []domain.ActivityRecord) domain.WeekSummary {
	var sailing, waiting, resting, terminal int
	var speedSum float64
	speedCount := 0

	for _, r := range records {
		sailing += r.SailingMin
		waiting += r.WaitingMin
		resting += r.RestingMin
		terminal += r.TerminalMin
		if r.Speed > 0 {
			speedSum += r.Speed
			speedCount++
		}
	}

	s := domain.WeekSummary{
		SailingHours:    float64(sailing) / 60,
		WaitingHours:    float64(waiting) / 60,
		RestingHours:    float64(resting) / 60,
		TerminalHours:   float64(terminal) / 60,
		ContractedHours: float64(sailing+waiting+terminal) / 60,
	}
	if speedCount > 0 {
		s.AvgSpeed = domain.Round1(speedSum / float64(speedCount))
	}
	return s
}
