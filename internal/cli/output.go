package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/city-events/internal/event"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	City       string        `json:"city"`
	CheckedAt  time.Time     `json:"checked_at"`
	Events     []event.Event `json:"events"`
	EventCount int           `json:"total_events"`
	Digest     string        `json:"digest"`
	Fallback   bool          `json:"fallback"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	header := fmt.Sprintf("Events in %s", result.City)
	if result.Fallback {
		header += " (demo listing, live sources unavailable)"
	}
	fmt.Fprintln(w, header)

	if result.EventCount == 0 {
		fmt.Fprintln(w, "No events found.")
		return nil
	}

	for i, evt := range result.Events {
		fmt.Fprintf(w, "\n%d. %s\n", i+1, evt.Title)
		if evt.When != "" {
			fmt.Fprintf(w, "   When: %s\n", evt.When)
		}
		if evt.Location != "" {
			fmt.Fprintf(w, "   Where: %s\n", evt.Location)
		}
		if verbose {
			fmt.Fprintf(w, "   ID: %s\n", evt.ID())
			fmt.Fprintf(w, "   Category: %s\n", evt.Category)
			if evt.Source != "" {
				fmt.Fprintf(w, "   Source: %s\n", evt.Source)
			}
			if evt.URL != "" {
				fmt.Fprintf(w, "   URL: %s\n", evt.URL)
			}
			if evt.Description != "" {
				fmt.Fprintf(w, "   %s\n", evt.Description)
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", result.Digest)
	fmt.Fprintf(w, "Total: %d events\n", result.EventCount)
	return nil
}
