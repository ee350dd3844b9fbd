// Package timeutil converts between "HH:MM" clock strings and minute
// offsets from midnight.
package timeutil

import (
	"errors"
	"fmt"
)

// MinutesPerDay is the number of minutes in a civil day.
const MinutesPerDay = 24 * 60

var errBadClock = errors.New("clock time must be HH:MM")

// ParseClock converts a strict "HH:MM" string to minutes since midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", errBadClock, s)
	}
	h, ok1 := twoDigits(s[0], s[1])
	m, ok2 := twoDigits(s[3], s[4])
	if !ok1 || !ok2 || h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q", errBadClock, s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight back to "HH:MM".
// Out-of-range values are wrapped into a single day.
func FormatClock(minutes int) string {
	minutes %= MinutesPerDay
	if minutes < 0 {
		minutes += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ClockToSeconds converts an "HH:MM" string to seconds since midnight.
func ClockToSeconds(s string) (int, error) {
	minutes, err := ParseClock(s)
	if err != nil {
		return 0, err
	}
	return minutes * 60, nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}
