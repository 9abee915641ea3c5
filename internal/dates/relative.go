package dates

import (
	"fmt"
	"time"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
	secondsPerDay    = 86400
	secondsPerMonth  = 2592000
	secondsPerYear   = 31536000
)

// ToRelative describes value relative to now ("in 3 days", "2 hours ago",
// "yesterday"). Missing or invalid input yields "N/A".
func ToRelative(value string, now time.Time) string {
	t, ok := Parse(value)
	if !ok {
		return NotAvailable
	}

	diff := floorDiv(int64(t.Sub(now)), int64(time.Second))
	abs := diff
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs < secondsPerMinute:
		return relative(diff, "second")
	case abs < secondsPerHour:
		return relative(floorDiv(diff, secondsPerMinute), "minute")
	case abs < secondsPerDay:
		return relative(floorDiv(diff, secondsPerHour), "hour")
	case abs < secondsPerMonth:
		return relative(floorDiv(diff, secondsPerDay), "day")
	case abs < secondsPerYear:
		return relative(floorDiv(diff, secondsPerMonth), "month")
	default:
		return relative(floorDiv(diff, secondsPerYear), "year")
	}
}

func relative(n int64, unit string) string {
	switch n {
	case 0:
		if unit == "second" {
			return "now"
		}
		return "this " + unit
	case 1:
		switch unit {
		case "day":
			return "tomorrow"
		case "month", "year":
			return "next " + unit
		}
	case -1:
		switch unit {
		case "day":
			return "yesterday"
		case "month", "year":
			return "last " + unit
		}
	}

	count := n
	if count < 0 {
		count = -count
	}
	label := unit
	if count != 1 {
		label += "s"
	}
	if n > 0 {
		return fmt.Sprintf("in %d %s", count, label)
	}
	return fmt.Sprintf("%d %s ago", count, label)
}

// floorDiv rounds toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
