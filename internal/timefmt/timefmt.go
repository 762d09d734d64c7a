// Package timefmt converts between the date and time representations used on
// the wire (YYYY-MM-DD, HH:MM:SS) and in input controls (HH:MM).
//
// Conversions never fail: malformed input yields the empty string.
package timefmt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout is the wire format for calendar days.
	DateLayout = "2006-01-02"
	// TimeLayout is the wire format for clock times.
	TimeLayout = "15:04:05"
)

// FormatDateToISO formats t as YYYY-MM-DD in t's own location.
func FormatDateToISO(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseISODate parses YYYY-MM-DD as midnight in the local time zone.
func ParseISODate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return d, nil
}

// FormatTimeToISO normalizes H, H:M, HH:MM or HH:MM:SS to HH:MM:SS.
func FormatTimeToISO(s string) string {
	h, m, sec, ok := parseClock(s)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}

// FormatTimeForInput normalizes a wire or loosely typed time to HH:MM,
// dropping seconds.
func FormatTimeForInput(s string) string {
	h, m, _, ok := parseClock(s)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// ParseClock returns the hour and minute of a time string.
func ParseClock(s string) (hours, minutes int, ok bool) {
	h, m, _, ok := parseClock(s)
	return h, m, ok
}

// ShiftHours returns the length of a shift in hours. A finish earlier than the
// start is read as finishing the next day. Unparseable input yields 0.
func ShiftHours(start, finish string) float64 {
	sh, sm, ok := ParseClock(start)
	if !ok {
		return 0
	}
	fh, fm, ok := ParseClock(finish)
	if !ok {
		return 0
	}

	startTotal := float64(sh) + float64(sm)/60
	finishTotal := float64(fh) + float64(fm)/60
	if finishTotal < startTotal {
		return (24 - startTotal) + finishTotal
	}
	return finishTotal - startTotal
}

// IsOvernight reports whether a well-formed shift crosses midnight.
func IsOvernight(start, finish string) bool {
	a, b := FormatTimeToISO(start), FormatTimeToISO(finish)
	return a != "" && b != "" && b < a
}

func parseClock(s string) (h, m, sec int, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, 0, false
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, 0, 0, false
	}

	vals := [3]int{}
	limits := [3]int{23, 59, 59}
	for i, p := range parts {
		if len(p) == 0 || len(p) > 2 || !isDigits(p) {
			return 0, 0, 0, false
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > limits[i] {
			return 0, 0, 0, false
		}
		vals[i] = n
	}
	return vals[0], vals[1], vals[2], true
}

// isDigits rejects the sign prefixes strconv.Atoi would accept.
func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
