// Package schedule computes the uniform day offset between the template's
// anchor start date and the new project's baseline, and applies it to date
// values.
package schedule

import "time"

const dayLayout = "2006-01-02"

// Input dates arrive either as plain calendar dates from the TSV or as the
// RFC 3339 timestamps the milestones API returns.
var layouts = []string{dayLayout, time.RFC3339}

// ParseDate normalizes a date string to UTC midnight of its calendar day.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// DiffDays returns the whole-day offset from anchor to baseline, rounding
// toward negative infinity. Either side failing to parse yields 0, which
// leaves all dates untouched.
func DiffDays(baseline, anchor string) int {
	base, ok := ParseDate(baseline)
	if !ok {
		return 0
	}
	start, ok := ParseDate(anchor)
	if !ok {
		return 0
	}
	diff := base.Sub(start)
	days := int(diff.Hours() / 24)
	if diff < 0 && diff%(24*time.Hour) != 0 {
		days--
	}
	return days
}

// ShiftDate adds days whole days to a date value and re-serializes it as
// YYYY-MM-DD. The second result is false for unparsable input; callers log
// a warning and skip the field rather than failing the row.
func ShiftDate(s string, days int) (string, bool) {
	t, ok := ParseDate(s)
	if !ok {
		return "", false
	}
	return t.AddDate(0, 0, days).Format(dayLayout), true
}
