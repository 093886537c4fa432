package report

import (
	"regexp"
	"strings"
	"time"
)

var (
	whitespace = regexp.MustCompile(`\s+`)
	unsafeName = regexp.MustCompile(`[^A-Za-z0-9_-]`)
)

// Filename returns the download name for a city's document,
// e.g. Filename("New York!", 2024-06-01, "pdf") is "New_York_events_20240601.pdf".
func Filename(city string, date time.Time, ext string) string {
	name := whitespace.ReplaceAllString(strings.TrimSpace(city), "_")
	name = strings.Trim(unsafeName.ReplaceAllString(name, ""), "_")
	if name == "" {
		name = "events"
	}
	return name + "_events_" + date.Format("20060102") + "." + strings.TrimPrefix(ext, ".")
}
