package filter

import (
	"testing"
	"time"
)

// nolint:gocyclo // Test function with many test cases
func TestParseDateRange(t *testing.T) {
	// fixedNow is Monday, June 1 2026
	tests := []struct {
		name        string
		input       string
		wantErr     bool
		checkResult func(from, to *time.Time) bool
	}{
		{
			name:  "Jun 1-15",
			input: "Jun 1-15",
			checkResult: func(from, to *time.Time) bool {
				return from.Equal(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)) &&
					to.Equal(time.Date(2026, 6, 15, 23, 59, 59, 0, time.UTC))
			},
		},
		{
			name:  "September 1-15",
			input: "September 1-15",
			checkResult: func(from, to *time.Time) bool {
				return from.Month() == time.September && from.Day() == 1 &&
					to.Month() == time.September && to.Day() == 15 && from.Year() == 2026
			},
		},
		{
			name:  "Sept abbreviation",
			input: "Sept 3-4",
			checkResult: func(from, to *time.Time) bool {
				return from.Month() == time.September && to.Day() == 4
			},
		},
		{
			name:  "past month rolls to next year",
			input: "Mar 1-15",
			checkResult: func(from, to *time.Time) bool {
				return from.Year() == 2027 && to.Year() == 2027
			},
		},
		{
			name:  "Jul 4 - Aug 2",
			input: "Jul 4 - Aug 2",
			checkResult: func(from, to *time.Time) bool {
				return from.Month() == time.July && from.Day() == 4 &&
					to.Month() == time.August && to.Day() == 2
			},
		},
		{
			name:  "Dec 25 - Jan 5 (cross year)",
			input: "Dec 25 - Jan 5",
			checkResult: func(from, to *time.Time) bool {
				return from.Month() == time.December && from.Day() == 25 &&
					to.Month() == time.January && to.Day() == 5 &&
					to.Year() == from.Year()+1
			},
		},
		{
			name:  "May 20 - Jul 4 (start month passed)",
			input: "May 20 - Jul 4",
			checkResult: func(from, to *time.Time) bool {
				return from.Year() == 2027 && to.Year() == 2027
			},
		},
		{
			name:  "July (entire month)",
			input: "July",
			checkResult: func(from, to *time.Time) bool {
				return from.Month() == time.July && from.Day() == 1 &&
					to.Month() == time.July && to.Day() == 31
			},
		},
		{
			name:  "Feb (entire month)",
			input: "Feb",
			checkResult: func(from, to *time.Time) bool {
				// February 2027 has 28 days
				return from.Month() == time.February && from.Day() == 1 &&
					to.Month() == time.February && to.Day() == 28
			},
		},
		{
			name:  "this weekend",
			input: "This  Weekend",
			checkResult: func(from, to *time.Time) bool {
				return from.Equal(time.Date(2026, 6, 6, 0, 0, 0, 0, time.UTC)) &&
					to.Equal(time.Date(2026, 6, 7, 23, 59, 59, 0, time.UTC))
			},
		},
		{
			name:  "next week",
			input: "next week",
			checkResult: func(from, to *time.Time) bool {
				return from.Equal(time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)) &&
					to.Equal(time.Date(2026, 6, 8, 23, 59, 59, 0, time.UTC))
			},
		},
		{name: "empty", input: "   ", wantErr: true},
		{name: "reversed days", input: "Jun 15-1", wantErr: true},
		{name: "day out of range", input: "Jun 1-45", wantErr: true},
		{name: "unknown month", input: "Smarch 1-5", wantErr: true},
		{name: "free text", input: "sometime soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := ParseDateRange(tt.input, fixedNow)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDateRange(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !tt.checkResult(from, to) {
				t.Errorf("ParseDateRange(%q) = %v - %v", tt.input, from, to)
			}
		})
	}
}

func TestWeekend(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"monday", time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC), time.Date(2026, 6, 6, 0, 0, 0, 0, time.UTC)},
		{"friday", time.Date(2026, 6, 5, 9, 0, 0, 0, time.UTC), time.Date(2026, 6, 6, 0, 0, 0, 0, time.UTC)},
		{"saturday", time.Date(2026, 6, 6, 22, 0, 0, 0, time.UTC), time.Date(2026, 6, 6, 0, 0, 0, 0, time.UTC)},
		{"sunday", time.Date(2026, 6, 7, 9, 0, 0, 0, time.UTC), time.Date(2026, 6, 6, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := weekend(tt.now)
			if !from.Equal(tt.want) {
				t.Errorf("weekend(%v) starts %v, want %v", tt.now, from, tt.want)
			}
			if to.Weekday() != time.Sunday {
				t.Errorf("weekend(%v) ends on %v", tt.now, to.Weekday())
			}
		})
	}
}

func TestParseMonth(t *testing.T) {
	tests := map[string]time.Month{
		"jan": time.January, "January": time.January, "may": time.May,
		"SEPT": time.September, "dec": time.December, "smarch": 0,
	}
	for input, want := range tests {
		if got := parseMonth(input); got != want {
			t.Errorf("parseMonth(%q) = %v, want %v", input, got, want)
		}
	}
}
