package event

import (
	"strings"
	"time"
)

// placeholderWhen is what listings show before organizers publish a schedule
const placeholderWhen = "Date/Time TBA"

// Layouts that carry a year
var datedLayouts = []string{
	"Monday, January 2, 2006 at 3:04 PM",
	"Monday, Jan 2, 2006 at 3:04 PM",
	"January 2, 2006 at 3:04 PM",
	"01/02/2006 at 3:04 PM",
	"2006-01-02 15:04:05",
	"Jan 2 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"1/2/2006",
	"2006-01-02",
}

// Layouts without a year; the year is taken from the reference time
var yearlessLayouts = []string{
	"Mon, Jan 2, 3:04 PM",
	"Mon, Jan 2 3:04 PM",
	"Monday, Jan 2 at 3:04 PM",
	"Monday, January 2 at 3:04 PM",
	"Jan 2",
	"January 2",
}

// ParseWhen attempts to turn free-form listing text into a start time.
//
// Dates that land before now are assumed to refer to next year's occurrence.
// Returns false for empty text, the "Date/Time TBA" placeholder, or anything no
// layout understands.
func ParseWhen(text string, now time.Time) (time.Time, bool) {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" || strings.EqualFold(text, placeholderWhen) {
		return time.Time{}, false
	}

	for _, layout := range datedLayouts {
		t, err := time.ParseInLocation(layout, text, now.Location())
		if err == nil {
			return rollForward(t, now), true
		}
	}

	for _, layout := range yearlessLayouts {
		t, err := time.ParseInLocation(layout, text, now.Location())
		if err == nil {
			t = time.Date(now.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
			return rollForward(t, now), true
		}
	}

	return time.Time{}, false
}

// rollForward moves a date that already passed to the same moment next year
func rollForward(t, now time.Time) time.Time {
	if t.Before(now) {
		return t.AddDate(now.Year()+1-t.Year(), 0, 0)
	}
	return t
}

// IsUpcoming checks if an event is in the future relative to now.
// Returns true if the date cannot be parsed (safer default).
func (e Event) IsUpcoming(now time.Time) bool {
	if e.StartsAt == nil {
		return true
	}
	return e.StartsAt.After(now)
}
