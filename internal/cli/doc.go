// Package cli implements the command-line interface for city-events.
//
// The cli package provides the Cobra-based CLI with three commands: serve starts
// the HTTP server, search prints a city's listing and digest (text/JSON, optionally
// sorted by date/title/category) and export writes a PDF report or iCalendar file.
// It wires configuration, logging, metrics and the scraping strategies into an
// event source shared by all three.
package cli
