// Package filter narrows an event listing down by category, date and text.
//
// Criteria arrive from the browser as plain strings (see Criteria) and are
// turned into a Filter, which is then applied to a listing:
//
//	f, err := filter.Criteria{Category: "music", Range: "Jun 1-15"}.Filter(time.Now())
//	if err != nil {
//	    return err
//	}
//	matches := f.Apply(events)
//
// Every active criterion must hold for an event to be kept. Once a date bound
// is set, events whose start time is unknown are dropped.
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/city-events/internal/event"
)

// CategoryAll disables category filtering
const CategoryAll = "all"

// isoDate is the format of date_from and date_to
const isoDate = "2006-01-02"

// Filter represents event filtering criteria
type Filter struct {
	// Category must equal the event's category when set
	Category string `json:"category,omitempty"`

	// Date range filtering, both bounds inclusive
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`

	// Search is a case-insensitive substring of the title or description
	Search string `json:"search,omitempty"`

	// Locations are case-insensitive substrings, any of which must appear in the location
	Locations []string `json:"locations,omitempty"`

	// Weekend-only filtering (Saturday/Sunday)
	WeekendsOnly bool `json:"weekends_only,omitempty"`

	// UpcomingAfter drops events that started before it. Events with an
	// unknown start time are kept.
	UpcomingAfter *time.Time `json:"upcoming_after,omitempty"`
}

// Criteria is the wire form of a filter as posted by the browser
type Criteria struct {
	Category     string `json:"category"`
	DateFrom     string `json:"date_from"`
	DateTo       string `json:"date_to"`
	Range        string `json:"range"`
	Search       string `json:"search"`
	Location     string `json:"location"` // comma-separated, any may match
	WeekendsOnly bool   `json:"weekends_only"`
	Upcoming     bool   `json:"upcoming"`
}

// Filter validates the criteria and builds a Filter.
// Range, when present, sets both bounds and takes precedence over DateFrom/DateTo.
// now anchors the year of ranges that omit one.
func (c Criteria) Filter(now time.Time) (*Filter, error) {
	f := NewFilter()

	if cat := strings.ToLower(strings.TrimSpace(c.Category)); cat != "" && cat != CategoryAll {
		if !knownCategory(cat) {
			return nil, fmt.Errorf("unknown category %q", c.Category)
		}
		f.Category = cat
	}
	f.Search = strings.TrimSpace(c.Search)
	for _, loc := range strings.Split(c.Location, ",") {
		if loc = strings.TrimSpace(loc); loc != "" {
			f.Locations = append(f.Locations, loc)
		}
	}
	f.WeekendsOnly = c.WeekendsOnly
	if c.Upcoming {
		f.UpcomingAfter = &now
	}

	if s := strings.TrimSpace(c.DateFrom); s != "" {
		from, err := time.ParseInLocation(isoDate, s, now.Location())
		if err != nil {
			return nil, fmt.Errorf("invalid date_from %q: expected YYYY-MM-DD", s)
		}
		f.DateFrom = &from
	}

	if s := strings.TrimSpace(c.DateTo); s != "" {
		to, err := time.ParseInLocation(isoDate, s, now.Location())
		if err != nil {
			return nil, fmt.Errorf("invalid date_to %q: expected YYYY-MM-DD", s)
		}
		to = endOfDay(to)
		f.DateTo = &to
	}

	if s := strings.TrimSpace(c.Range); s != "" {
		from, to, err := ParseDateRange(s, now)
		if err != nil {
			return nil, err
		}
		f.DateFrom, f.DateTo = from, to
	}

	if f.DateFrom != nil && f.DateTo != nil && f.DateFrom.After(*f.DateTo) {
		return nil, fmt.Errorf("start date must be before end date")
	}

	return f, nil
}

// NewFilter creates a new empty filter with no active criteria.
// The filter will match all events until criteria are added.
func NewFilter() *Filter {
	return &Filter{
		Locations: []string{},
	}
}

// IsEmpty checks if the filter has any active criteria.
// Returns true if the filter would match all events.
func (f *Filter) IsEmpty() bool {
	return f.Category == "" &&
		f.DateFrom == nil &&
		f.DateTo == nil &&
		f.Search == "" &&
		len(f.Locations) == 0 &&
		!f.WeekendsOnly &&
		f.UpcomingAfter == nil
}

// Matches checks if an event matches all active filter criteria.
//
// Matching logic:
//   - Category: exact, case-insensitive
//   - Date range: StartsAt must be within DateFrom and DateTo; events without a
//     start time never match a date criterion
//   - Search: title or description contains the term (case-insensitive)
//   - Locations: location contains at least one entry (case-insensitive)
//   - WeekendsOnly: StartsAt must be on Saturday or Sunday
//   - UpcomingAfter: the event must not have started yet; unknown start times pass
func (f *Filter) Matches(evt event.Event) bool {
	if f.Category != "" && !strings.EqualFold(evt.Category, f.Category) {
		return false
	}

	if f.UpcomingAfter != nil && !evt.IsUpcoming(*f.UpcomingAfter) {
		return false
	}

	if f.DateFrom != nil || f.DateTo != nil || f.WeekendsOnly {
		if evt.StartsAt == nil {
			return false
		}
		start := *evt.StartsAt

		if f.DateFrom != nil && start.Before(*f.DateFrom) {
			return false
		}
		if f.DateTo != nil && start.After(*f.DateTo) {
			return false
		}
		if f.WeekendsOnly {
			weekday := start.Weekday()
			if weekday != time.Saturday && weekday != time.Sunday {
				return false
			}
		}
	}

	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(evt.Title), term) &&
			!strings.Contains(strings.ToLower(evt.Description), term) {
			return false
		}
	}

	if len(f.Locations) > 0 {
		matched := false
		locationLower := strings.ToLower(evt.Location)
		for _, loc := range f.Locations {
			if strings.Contains(locationLower, strings.ToLower(loc)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// Apply returns the events matching the filter, preserving order.
// The result is never nil so it encodes as an empty JSON array.
func (f *Filter) Apply(events []event.Event) []event.Event {
	filtered := make([]event.Event, 0, len(events))
	for _, evt := range events {
		if f.IsEmpty() || f.Matches(evt) {
			filtered = append(filtered, evt)
		}
	}
	return filtered
}

// String returns a human-readable description of the active filter criteria.
// Returns "No active filters" if the filter is empty.
// Format: "Category: music | From: Jun 1, 2026 | To: Jun 15, 2026 | Search: jazz"
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if f.Category != "" {
		parts = append(parts, fmt.Sprintf("Category: %s", f.Category))
	}

	if f.DateFrom != nil {
		parts = append(parts, fmt.Sprintf("From: %s", f.DateFrom.Format("Jan 2, 2006")))
	}

	if f.DateTo != nil {
		parts = append(parts, fmt.Sprintf("To: %s", f.DateTo.Format("Jan 2, 2006")))
	}

	if f.Search != "" {
		parts = append(parts, fmt.Sprintf("Search: %s", f.Search))
	}

	if len(f.Locations) > 0 {
		parts = append(parts, fmt.Sprintf("Locations: %s", strings.Join(f.Locations, ", ")))
	}

	if f.WeekendsOnly {
		parts = append(parts, "Weekends only")
	}

	if f.UpcomingAfter != nil {
		parts = append(parts, "Upcoming only")
	}

	return strings.Join(parts, " | ")
}

func knownCategory(name string) bool {
	for _, c := range event.Categories() {
		if c == name {
			return true
		}
	}
	return false
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
