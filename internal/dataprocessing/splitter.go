package dataprocessing

import (
	"time"

	"sailcli/pkg/contracts/domain"
)

// SplitDayBoundaries rewrites the table so that no record's start and end
// fall on different calendar days. A record spanning days d0..dn becomes one
// record per day: d0 from the original start to 23:59:59, each intermediate
// day from 00:00:00 to 23:59:59, and dn from 00:00:00 to the original end.
// Each slice keeps the original record's category with its duration
// recomputed from the slice span, so the slices of one record sum to the
// original span give or take the one-minute ceil at each 23:59:59 boundary.
//
// Records already inside a single day pass through unchanged apart from
// re-tagged date and weekday fields, which makes the transformation
// idempotent.
func SplitDayBoundaries(records []domain.ActivityRecord) []domain.ActivityRecord {
	out := make([]domain.ActivityRecord, 0, len(records))
	for _, rec := range records {
		if !rec.CrossesDay() {
			tagDates(&rec)
			out = append(out, rec)
			continue
		}
		out = append(out, splitRecord(rec)...)
	}
	return out
}

// splitRecord emits the per-day slices of a record that crosses at least one
// day boundary.
func splitRecord(rec domain.ActivityRecord) []domain.ActivityRecord {
	firstDay := startOfDay(rec.Start)
	lastDay := startOfDay(rec.End)

	var slices []domain.ActivityRecord
	for day := firstDay; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		start, end := day, endOfDay(day)
		if day.Equal(firstDay) {
			start = rec.Start
		}
		if day.Equal(lastDay) {
			end = rec.End
		}
		// An end at exactly midnight leaves an empty final slice; drop it.
		if !end.After(start) {
			continue
		}

		slice := rec
		slice.Start, slice.End = start, end
		slice.SetMinutes(rec.Category, slice.SpanMinutes())
		tagDates(&slice)
		slices = append(slices, slice)
	}
	return slices
}

// tagDates refreshes the derived calendar-date and weekday fields from the
// record's timestamps.
func tagDates(rec *domain.ActivityRecord) {
	rec.StartDate = rec.Start.Format("2006-01-02")
	rec.EndDate = rec.End.Format("2006-01-02")
	rec.StartWeekday = rec.Start.Weekday().String()
	rec.EndWeekday = rec.End.Weekday().String()
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
