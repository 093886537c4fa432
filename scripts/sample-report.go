package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/city-events/internal/calendar"
	"github.com/pfrederiksen/city-events/internal/report"
	"github.com/pfrederiksen/city-events/internal/source"
)

func main() {
	city := "Detroit"
	if len(os.Args) > 1 {
		city = os.Args[1]
	}

	now := time.Now()
	events := source.Fallback(city, now)

	builder := report.Builder{Now: func() time.Time { return now }}
	pdf, err := builder.Render(city, events, report.Summarize(events, report.DefaultDigestSize))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering report: %v\n", err)
		os.Exit(1)
	}

	files := map[string][]byte{
		report.Filename(city, now, "pdf"): pdf,
		report.Filename(city, now, "ics"): []byte(calendar.GenerateBulkICS(events, "Local Events in "+city, now)),
	}
	for name, data := range files {
		// Owner read/write only
		if err := os.WriteFile(name, data, 0600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Generated %s\n", name)
	}

	fmt.Println("\nOpen the PDF in any viewer, or import the .ics file into Google Calendar, Apple Calendar or Outlook.")
}
