package domain

import (
	"strings"
	"time"
)

const (
	// DisplayLayout renders e.g. "07 March, 2025, 4:05 PM".
	DisplayLayout = "02 January, 2006, 3:04 PM"

	// UnknownDate is shown for a missing or unparsable timestamp.
	UnknownDate = "Unknown Date"
)

// Older posts were stamped with the en-US locale string instead of RFC 3339.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"1/2/2006, 3:04:05 PM",
	"2006-01-02 15:04:05",
}

// NewTimestamp formats t the way posts store it.
func NewTimestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}

// ParseTimestamp accepts any layout a stored post may carry.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp renders a stored timestamp for display.
func FormatTimestamp(s string) string {
	t, ok := ParseTimestamp(s)
	if !ok {
		return UnknownDate
	}
	return t.Local().Format(DisplayLayout)
}
