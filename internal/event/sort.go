package event

import (
	"sort"
	"strings"
)

// SortByStart orders events by start time, then case-insensitively by title
func SortByStart(events []*Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return compareByStart(events[i], events[j])
	})
}

// compareByStart returns true if event i should come before event j
func compareByStart(i, j *Event) bool {
	if !i.Start.Equal(j.Start) {
		return i.Start.Before(j.Start)
	}
	// Same start: fall back to title, then URL for a total order
	ti, tj := strings.ToLower(i.Title), strings.ToLower(j.Title)
	if ti != tj {
		return ti < tj
	}
	return i.URL < j.URL
}
