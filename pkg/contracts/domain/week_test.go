package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContractConfig_HoursFor(t *testing.T) {
	cfg := ContractConfig{"MS Hollandia": 98}
	assert.InDelta(t, 98, cfg.HoursFor("MS Hollandia"), 1e-9)
	assert.InDelta(t, DefaultContractHours, cfg.HoursFor("MS Batavia"), 1e-9)

	var nilCfg ContractConfig
	assert.InDelta(t, DefaultContractHours, nilCfg.HoursFor("MS Batavia"), 1e-9)
}

func TestWeekSummary_Delta(t *testing.T) {
	s := WeekSummary{ContractedHours: 103.75}
	assert.InDelta(t, -8.25, s.Delta(112), 1e-9)
	assert.InDelta(t, 3.75, s.Delta(100), 1e-9)
}

func TestWeekWindow_Bounds(t *testing.T) {
	start := time.Date(2024, 8, 3, 6, 0, 0, 0, time.UTC)
	win := WeekWindow{Records: []ActivityRecord{
		{Start: start, End: start.Add(4 * time.Hour)},
		{Start: start.Add(24 * time.Hour), End: start.Add(30 * time.Hour)},
	}}
	assert.Equal(t, start, win.Start())
	assert.Equal(t, start.Add(30*time.Hour), win.End())

	empty := WeekWindow{}
	assert.True(t, empty.Start().IsZero())
	assert.True(t, empty.End().IsZero())
}

func TestRound1(t *testing.T) {
	assert.InDelta(t, 88.3, Round1(88.25), 1e-9)
	assert.InDelta(t, -8.3, Round1(-8.25), 1e-9)
	assert.InDelta(t, 10.0, Round1(10.04), 1e-9)
}

func TestActivityRecord_Minutes(t *testing.T) {
	rec := ActivityRecord{
		Start:    time.Date(2024, 8, 1, 22, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 8, 2, 6, 0, 0, 0, time.UTC),
		Category: CategorySailing,
	}
	rec.SetMinutes(CategorySailing, rec.SpanMinutes())

	assert.Equal(t, 480, rec.SailingMin)
	assert.Equal(t, 0, rec.WaitingMin)
	assert.Equal(t, 480, rec.DurationMin())
	assert.True(t, rec.CrossesDay())

	// Reassignment zeroes the previous category.
	rec.SetMinutes(CategoryWaiting, 60)
	assert.Equal(t, 0, rec.SailingMin)
	assert.Equal(t, 60, rec.WaitingMin)
}
