// Package storage writes exported documents (PDF reports, calendars) to a local directory.
//
// Files are written atomically and the directory is created on first use.
// The default location is ~/Downloads/city-events.
package storage
