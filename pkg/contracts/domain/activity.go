package domain

import (
	"math"
	"time"
)

// Category classifies what a vessel was doing during one activity span.
type Category string

const (
	CategorySailing  Category = "Sailing"
	CategoryWaiting  Category = "Waiting"
	CategoryResting  Category = "Resting"
	CategoryTerminal Category = "Terminal"
)

// Categories lists all activity categories in priority order. When a source
// row carries more than one positive duration field, the first matching
// category in this order wins.
var Categories = []Category{CategoryResting, CategorySailing, CategoryWaiting, CategoryTerminal}

// ActivityRecord is one span of vessel activity. After normalization a
// record never crosses a calendar-day boundary and exactly one of the
// duration fields is non-zero, matching Category.
type ActivityRecord struct {
	Vessel      string    `json:"vessel"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Category    Category  `json:"category"`
	SailingMin  int       `json:"sailing_min"`
	WaitingMin  int       `json:"waiting_min"`
	RestingMin  int       `json:"resting_min"`
	TerminalMin int       `json:"terminal_min"`

	// Speed in km/h; zero when the source row carried no speed.
	Speed float64 `json:"speed,omitempty"`

	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	StartWeekday string `json:"start_weekday"`
	EndWeekday   string `json:"end_weekday"`

	// Week holds the denormalized aggregates of the administrative week this
	// record belongs to. Set by the week partitioner, nil before that.
	Week *WeekSummary `json:"week,omitempty"`
}

// DurationMin returns the duration of the record's active category.
func (r ActivityRecord) DurationMin() int {
	switch r.Category {
	case CategorySailing:
		return r.SailingMin
	case CategoryWaiting:
		return r.WaitingMin
	case CategoryResting:
		return r.RestingMin
	default:
		return r.TerminalMin
	}
}

// Minutes returns the duration recorded for the given category.
func (r ActivityRecord) Minutes(c Category) int {
	switch c {
	case CategorySailing:
		return r.SailingMin
	case CategoryWaiting:
		return r.WaitingMin
	case CategoryResting:
		return r.RestingMin
	default:
		return r.TerminalMin
	}
}

// SetMinutes assigns the duration for the given category, zeroing the rest.
func (r *ActivityRecord) SetMinutes(c Category, minutes int) {
	r.SailingMin, r.WaitingMin, r.RestingMin, r.TerminalMin = 0, 0, 0, 0
	switch c {
	case CategorySailing:
		r.SailingMin = minutes
	case CategoryWaiting:
		r.WaitingMin = minutes
	case CategoryResting:
		r.RestingMin = minutes
	default:
		r.TerminalMin = minutes
	}
}

// SpanMinutes returns the record's wall-clock span rounded up to whole
// minutes. Source timestamps are minute-granular, so the ceil only matters
// for the 23:59:59 day-slice boundaries.
func (r ActivityRecord) SpanMinutes() int {
	return int(math.Ceil(r.End.Sub(r.Start).Minutes()))
}

// CrossesDay reports whether start and end fall on different calendar days.
func (r ActivityRecord) CrossesDay() bool {
	sy, sm, sd := r.Start.Date()
	ey, em, ed := r.End.Date()
	return sy != ey || sm != em || sd != ed
}

// ShipReport is the parsed form of one uploaded spreadsheet report: all
// activity rows for a single vessel, in source order.
type ShipReport struct {
	Vessel   string           `json:"vessel"`
	Source   string           `json:"source"`
	Records  []ActivityRecord `json:"records"`
	Warnings []string         `json:"warnings,omitempty"`
}
