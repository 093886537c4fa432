package cli

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/city-events/internal/event"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortNone       SortOrder = "none"
	SortByDate     SortOrder = "date"
	SortByTitle    SortOrder = "title"
	SortByCategory SortOrder = "category"
)

// Valid reports whether the order is one of the known options
func (o SortOrder) Valid() bool {
	switch o {
	case SortNone, SortByDate, SortByTitle, SortByCategory:
		return true
	}
	return false
}

// sortEvents returns a sorted copy of events; SortNone keeps listing order
func sortEvents(events []event.Event, sortOrder SortOrder) []event.Event {
	sorted := make([]event.Event, len(events))
	copy(sorted, events)

	switch sortOrder {
	case SortByDate:
		sort.SliceStable(sorted, func(i, j int) bool {
			return compareByDate(sorted[i], sorted[j])
		})
	case SortByTitle:
		sort.SliceStable(sorted, func(i, j int) bool {
			ti, tj := strings.ToLower(sorted[i].Title), strings.ToLower(sorted[j].Title)
			if ti != tj {
				return ti < tj
			}
			// If titles are equal, sort by date
			return compareByDate(sorted[i], sorted[j])
		})
	case SortByCategory:
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].Category != sorted[j].Category {
				return sorted[i].Category < sorted[j].Category
			}
			// If categories are equal, sort by date
			return compareByDate(sorted[i], sorted[j])
		})
	}
	return sorted
}

// compareByDate compares two events by their start time
// Returns true if event i should come before event j
func compareByDate(i, j event.Event) bool {
	// If both dates are known, compare them
	if i.StartsAt != nil && j.StartsAt != nil {
		return i.StartsAt.Before(*j.StartsAt)
	}

	// If only one date is known, put it first
	if i.StartsAt != nil {
		return true
	}
	if j.StartsAt != nil {
		return false
	}

	// If neither has a date, sort by title
	return strings.ToLower(i.Title) < strings.ToLower(j.Title)
}
