package event

import (
	"strings"
	"time"
)

// Event represents a single listing discovered for a city
type Event struct {
	Title       string     `json:"title"`
	When        string     `json:"when"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	URL         string     `json:"url,omitempty"`
	Source      string     `json:"source,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"` // nil when When could not be parsed
}

// MaxDescriptionLength is the rune limit applied to scraped descriptions
const MaxDescriptionLength = 200

// New creates an Event with trimmed fields, a category and a best-effort start time.
// now anchors year inference for dates that omit the year.
func New(title, when, location, description, url, source string, now time.Time) Event {
	evt := Event{
		Title:       strings.TrimSpace(title),
		When:        strings.TrimSpace(when),
		Location:    strings.TrimSpace(location),
		Description: strings.TrimSpace(description),
		URL:         strings.TrimSpace(url),
		Source:      source,
	}
	evt.Category = Categorize(evt.Title, evt.Description)
	if t, ok := ParseWhen(evt.When, now); ok {
		evt.StartsAt = &t
	}
	return evt
}

// Valid reports whether the event carries the minimum signal of a real listing
func (e Event) Valid() bool {
	return strings.TrimSpace(e.Title) != ""
}

// Dedupe drops events whose normalized title was already seen, keeping the first
// occurrence and the original order.
func Dedupe(events []Event) []Event {
	seen := make(map[string]bool, len(events))
	unique := make([]Event, 0, len(events))
	for _, evt := range events {
		key := strings.ToLower(strings.TrimSpace(evt.Title))
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, evt)
	}
	return unique
}

// Truncate shortens text to n runes, appending "..." when anything was cut
func Truncate(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}

var locationPrefixes = []string{"Location:", "Venue:", "Address:", "Where:"}

// NormalizeLocation cleans up scraped venue text.
//
// Text that only repeats the city becomes "Downtown {city}"; placeholders such as
// "TBA" or "Online" and very short strings become "{city} Area". Empty input stays
// empty so callers can tell a missing venue apart from a vague one.
func NormalizeLocation(text, city string) string {
	location := strings.TrimSpace(text)
	if location == "" {
		return ""
	}
	if strings.EqualFold(location, strings.TrimSpace(city)) {
		return "Downtown " + city
	}

	for _, prefix := range locationPrefixes {
		if strings.HasPrefix(location, prefix) {
			location = strings.TrimSpace(location[len(prefix):])
		}
	}

	switch strings.ToLower(location) {
	case "tba", "to be announced", "online", "virtual":
		return city + " Area"
	}
	if len([]rune(location)) < 5 {
		return city + " Area"
	}
	return location
}
