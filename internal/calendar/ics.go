package calendar

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pfrederiksen/city-events/internal/event"
)

const (
	uidDomain = "city-events"

	// DefaultDuration is assumed for every event; listings rarely publish an end time
	DefaultDuration = 2 * time.Hour

	// maxLineOctets is the RFC 5545 content line limit, excluding CRLF
	maxLineOctets = 75
)

// GenerateBulkICS generates one calendar holding every event, named calName when set.
// Returns an empty string when there are no events.
func GenerateBulkICS(events []event.Event, calName string, now time.Time) string {
	if len(events) == 0 {
		return ""
	}

	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//City Events//city-events//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	if calName != "" {
		writeLine(&ics, "X-WR-CALNAME:"+escapeICS(calName))
	}

	for _, evt := range events {
		writeEvent(&ics, evt, now)
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

func writeEvent(ics *strings.Builder, evt event.Event, now time.Time) {
	ics.WriteString("BEGIN:VEVENT\r\n")

	// UID - stable across exports of the same listing
	writeLine(ics, fmt.Sprintf("UID:%s@%s", evt.ID(), uidDomain))
	writeLine(ics, "DTSTAMP:"+formatICSTime(now))

	start := startTime(evt, now)
	writeLine(ics, "DTSTART:"+formatICSTime(start))
	writeLine(ics, "DTEND:"+formatICSTime(start.Add(DefaultDuration)))

	writeLine(ics, "SUMMARY:"+escapeICS(evt.Title))

	description := evt.Description
	if evt.When != "" {
		description = strings.TrimSpace(fmt.Sprintf("When: %s\n%s", evt.When, description))
	}
	if description != "" {
		writeLine(ics, "DESCRIPTION:"+escapeICS(description))
	}
	if evt.Location != "" {
		writeLine(ics, "LOCATION:"+escapeICS(evt.Location))
	}
	if evt.Category != "" {
		writeLine(ics, "CATEGORIES:"+escapeICS(strings.ToUpper(evt.Category)))
	}
	if evt.URL != "" {
		writeLine(ics, "URL:"+evt.URL)
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// startTime uses the parsed start, or 9 AM one week after now when the listing had none
func startTime(evt event.Event, now time.Time) time.Time {
	if evt.StartsAt != nil {
		return *evt.StartsAt
	}
	d := now.AddDate(0, 0, 7)
	return time.Date(d.Year(), d.Month(), d.Day(), 9, 0, 0, 0, now.Location())
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\r\n", "\\n")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

// writeLine writes a content line folded at 75 octets, never splitting a UTF-8 sequence
func writeLine(ics *strings.Builder, line string) {
	limit := maxLineOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		ics.WriteString(line[:cut])
		ics.WriteString("\r\n ")
		line = line[cut:]
		// continuation lines carry a leading space
		limit = maxLineOctets - 1
	}
	ics.WriteString(line)
	ics.WriteString("\r\n")
}
