package dataprocessing

import (
	"sailcli/pkg/contracts/domain"
)

// SelectWindows builds the selection index of reporting periods. For each
// vessel it records one window per distinct contracted-hours total, bounded
// by the window's first and last record. With violationsOnly set, windows
// meeting the vessel's contract target are excluded first.
//
// Every start timestamp keys an explicit per-vessel entry list in both
// modes, so two vessels sharing a start never shadow each other.
func SelectWindows(windows []domain.WeekWindow, contracts domain.ContractConfig, violationsOnly bool) domain.SelectionIndex {
	index := domain.NewSelectionIndex()
	seen := make(map[string]map[float64]bool)

	for _, win := range windows {
		if len(win.Records) == 0 {
			continue
		}
		hours := win.Summary.ContractedHours
		if violationsOnly && hours >= contracts.HoursFor(win.Vessel) {
			continue
		}
		if seen[win.Vessel] == nil {
			seen[win.Vessel] = make(map[float64]bool)
		}
		if seen[win.Vessel][hours] {
			// One reporting period per distinct total per vessel; the
			// earliest window wins.
			continue
		}
		seen[win.Vessel][hours] = true

		index.Add(domain.WindowRef{
			Vessel:          win.Vessel,
			Start:           win.Start(),
			End:             win.End(),
			ContractedHours: hours,
		})
	}
	return index
}
