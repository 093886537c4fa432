package report

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/city-events/internal/event"
)

// DefaultDigestSize is how many events a digest mentions when no size is configured
const DefaultDigestSize = 3

// EmptyDigest is the digest of an empty listing
const EmptyDigest = "No events found."

// Summarize formats the first size events as a one-line weekend digest, e.g.
// "This weekend: Jazz Night (Sat 8 PM); Farmers Market (Sun 9 AM)."
func Summarize(events []event.Event, size int) string {
	if size <= 0 {
		size = DefaultDigestSize
	}
	if len(events) == 0 {
		return EmptyDigest
	}
	if len(events) > size {
		events = events[:size]
	}

	items := make([]string, 0, len(events))
	for _, evt := range events {
		item := evt.Title
		if evt.When != "" {
			item += fmt.Sprintf(" (%s)", evt.When)
		}
		items = append(items, item)
	}

	return "This weekend: " + strings.Join(items, "; ") + "."
}
