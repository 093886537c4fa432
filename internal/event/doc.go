// Package event provides the Event value shared by every pipeline in city-events.
//
// Events are immutable, request-scoped listings produced by a scraping strategy or by
// the fallback set. The package also holds the heuristics applied to raw scraped text:
// date parsing, category classification, location cleanup and de-duplication.
package event
