package domain

import (
	"sort"
	"time"
)

// WindowRef is a selectable reporting period: the bounding timestamps of one
// week window together with the vessel it belongs to.
type WindowRef struct {
	Vessel          string    `json:"vessel"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	ContractedHours float64   `json:"contracted_hours"`
}

// SelectionIndex maps window-start timestamps to the windows beginning
// there. Several vessels may share a start timestamp, so every start keys a
// list; selection by (start, vessel) is therefore always unambiguous.
type SelectionIndex struct {
	// Windows keys each distinct window-start timestamp.
	Windows map[time.Time][]WindowRef `json:"-"`

	// Dates maps each distinct start calendar date (2006-01-02) to the
	// earliest full start timestamp on that date, for UI selection controls.
	Dates map[string]time.Time `json:"dates"`
}

// NewSelectionIndex returns an empty, ready-to-fill index.
func NewSelectionIndex() SelectionIndex {
	return SelectionIndex{
		Windows: make(map[time.Time][]WindowRef),
		Dates:   make(map[string]time.Time),
	}
}

// Add records a window under its start timestamp and start date.
func (s SelectionIndex) Add(ref WindowRef) {
	s.Windows[ref.Start] = append(s.Windows[ref.Start], ref)
	key := ref.Start.Format("2006-01-02")
	if existing, ok := s.Dates[key]; !ok || ref.Start.Before(existing) {
		s.Dates[key] = ref.Start
	}
}

// At returns the windows starting at the given timestamp.
func (s SelectionIndex) At(start time.Time) []WindowRef {
	return s.Windows[start]
}

// Lookup finds the window of a specific vessel starting at the given
// timestamp.
func (s SelectionIndex) Lookup(start time.Time, vessel string) (WindowRef, bool) {
	for _, ref := range s.Windows[start] {
		if ref.Vessel == vessel {
			return ref, true
		}
	}
	return WindowRef{}, false
}

// SortedStarts returns all window-start timestamps in chronological order.
func (s SelectionIndex) SortedStarts() []time.Time {
	starts := make([]time.Time, 0, len(s.Windows))
	for start := range s.Windows {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
	return starts
}
