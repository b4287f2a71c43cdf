package agenda

import (
	"sort"
	"time"
)

// FindCurrent returns the id of the single event considered active at
// now, using [start, end) containment. Among events sharing an identical
// adjusted start, the first one in projector output order wins. Input
// may be in any order: the scan runs over a stable-sorted copy, so the
// early exit past now is always safe. Returns "" when no interval
// contains now.
func FindCurrent(projected []ProjectedEvent, now time.Time) string {
	sorted := make([]ProjectedEvent, len(projected))
	copy(sorted, projected)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AdjustedStart.Before(sorted[j].AdjustedStart)
	})

	var currentID string
	var currentStart time.Time
	for _, ev := range sorted {
		if ev.AdjustedStart.After(now) {
			break
		}
		if ev.AdjustedEnd.After(now) {
			if currentID != "" && ev.AdjustedStart.Equal(currentStart) {
				continue
			}
			currentID = ev.ID
			currentStart = ev.AdjustedStart
		}
	}
	return currentID
}
