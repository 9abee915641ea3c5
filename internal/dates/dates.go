// Package dates converts task timestamps between the representations used by
// the UI (edit inputs, display strings) and the backend wire format.
//
// Every function is total: unparseable input degrades to a documented
// sentinel ("N/A", "" or a false ok flag) and never panics.
package dates

import (
	"strings"
	"time"
)

const (
	// WireLayout is the backend's LocalDateTime form: local calendar fields, no offset.
	WireLayout = "2006-01-02T15:04:05"
	// EditLayout is the value format of an HTML datetime-local input.
	EditLayout = "2006-01-02T15:04"

	displayDateLayout     = "Jan 2, 2006"
	displayDateTimeLayout = "Jan 2, 2006, 03:04 PM"

	// NotAvailable is returned by the display helpers for missing or invalid input.
	NotAvailable = "N/A"
)

// Layouts carrying an explicit offset; parsed values are converted to local time.
var offsetLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	time.RFC1123Z,
	time.RFC1123,
}

// Layouts without an offset; interpreted in local time.
var localLayouts = []string{
	WireLayout,
	EditLayout,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	displayDateTimeLayout,
	displayDateLayout,
}

// Parse accepts the formats the UI and backend exchange and returns the
// instant in local time.
func Parse(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.In(time.Local), true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// ToDisplay renders value as "Jan 2, 2006" (or "Jan 2, 2006, 03:04 PM" with
// includeTime). Missing or invalid input yields "N/A".
func ToDisplay(value string, includeTime bool) string {
	t, ok := Parse(value)
	if !ok {
		return NotAvailable
	}
	if includeTime {
		return t.Format(displayDateTimeLayout)
	}
	return t.Format(displayDateLayout)
}

// ToWireFormat converts value to WireLayout using its local calendar fields.
// ok is false when value is empty or unparseable.
func ToWireFormat(value string) (string, bool) {
	t, ok := Parse(value)
	if !ok {
		return "", false
	}
	return FormatWire(t), true
}

// ToEditFormat converts value to EditLayout, or "" when empty or unparseable.
func ToEditFormat(value string) string {
	t, ok := Parse(value)
	if !ok {
		return ""
	}
	return t.In(time.Local).Format(EditLayout)
}

// FormatWire formats t in WireLayout using local calendar fields.
func FormatWire(t time.Time) string {
	return t.In(time.Local).Format(WireLayout)
}
