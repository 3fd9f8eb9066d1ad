package domain

import (
	"math"
	"time"
)

// DefaultContractHours is the weekly contracted-hours target applied to a
// vessel when no explicit target is configured.
const DefaultContractHours = 112

// WeekSummary holds the derived aggregates of one administrative week.
// Values are always recomputed from the window's records, never cached
// independently of them.
type WeekSummary struct {
	AvgSpeed        float64 `json:"avg_speed"`
	SailingHours    float64 `json:"sailing_hours"`
	WaitingHours    float64 `json:"waiting_hours"`
	TerminalHours   float64 `json:"terminal_hours"`
	RestingHours    float64 `json:"resting_hours"`
	ContractedHours float64 `json:"contracted_hours"`

	// ShortWeek marks a vessel's first window when its first record does not
	// start on the configured week-start weekday.
	ShortWeek bool `json:"short_week,omitempty"`
}

// Delta returns the signed difference between the week's contracted hours
// and the given target. Negative means the contract was not met.
func (s WeekSummary) Delta(target float64) float64 {
	return s.ContractedHours - target
}

// WeekWindow is a contiguous run of one vessel's activity records within a
// single administrative week.
type WeekWindow struct {
	Vessel  string           `json:"vessel"`
	Records []ActivityRecord `json:"records"`
	Summary WeekSummary      `json:"summary"`
}

// Start returns the window's opening timestamp (first record's start).
func (w WeekWindow) Start() time.Time {
	if len(w.Records) == 0 {
		return time.Time{}
	}
	return w.Records[0].Start
}

// End returns the window's closing timestamp (last record's end).
func (w WeekWindow) End() time.Time {
	if len(w.Records) == 0 {
		return time.Time{}
	}
	return w.Records[len(w.Records)-1].End
}

// ContractConfig maps a vessel id to its weekly contracted-hours target.
type ContractConfig map[string]float64

// HoursFor returns the configured target for the vessel, falling back to
// DefaultContractHours.
func (c ContractConfig) HoursFor(vessel string) float64 {
	if c != nil {
		if h, ok := c[vessel]; ok {
			return h
		}
	}
	return DefaultContractHours
}

// DefaultContracts builds a config assigning the default target to every
// listed vessel.
func DefaultContracts(vessels []string) ContractConfig {
	cfg := make(ContractConfig, len(vessels))
	for _, v := range vessels {
		cfg[v] = DefaultContractHours
	}
	return cfg
}

// Round1 rounds to one decimal, the precision used for all displayed hour
// and speed values.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
