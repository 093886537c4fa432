// Package report turns an event listing into a short digest and a PDF document.
package report
