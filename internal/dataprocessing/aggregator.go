package dataprocessing

import (
	"sort"

	"sailcli/pkg/contracts/domain"
)

// Merge concatenates parsed reports into a single activity table. Row order
// within each source is preserved, rows are appended rather than merged by
// key, and no deduplication happens. An empty input yields an empty table,
// which callers must check before proceeding.
func Merge(reports []*domain.ShipReport) []domain.ActivityRecord {
	total := 0
	for _, r := range reports {
		if r != nil {
			total += len(r.Records)
		}
	}
	out := make([]domain.ActivityRecord, 0, total)
	for _, r := range reports {
		if r == nil {
			continue
		}
		out = append(out, r.Records...)
	}
	return out
}

// Vessels returns the distinct vessel ids of a table, sorted for
// deterministic output.
func Vessels(records []domain.ActivityRecord) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		if _, ok := seen[r.Vessel]; !ok {
			seen[r.Vessel] = struct{}{}
			out = append(out, r.Vessel)
		}
	}
	sort.Strings(out)
	return out
}
