// Package scraper extracts event listings for a city from external listing sites.
//
// Each site is a Strategy. Extraction is heuristic: listing markup is not a stable
// contract, so every strategy tries several selectors and keeps whatever yields a
// title. A strategy performs exactly one GET per Fetch and never retries.
package scraper
