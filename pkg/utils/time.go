package utils

import "time"

// DateLayout is the wire format for due dates
const DateLayout = "2006-01-02"

// NowRFC3339 returns the current time in RFC3339 format
func NowRFC3339() string {
	return time.Now().Format(time.RFC3339)
}

// ParseRFC3339 parses a time string in RFC3339 format
func ParseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// ParseDate parses a YYYY-MM-DD date string
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders a time as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
