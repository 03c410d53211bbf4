package timeline

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MinutesPerDay is the number of minutes in a 24-hour day.
	MinutesPerDay = 24 * 60
	// EndOfDay is the last addressable minute of a day (23:59).
	EndOfDay = MinutesPerDay - 1
)

// ToMinutes converts a "HH:MM" clock string to minutes since midnight.
// A malformed string is a bug on the caller's side: no bounds checking or
// clamping is performed and no error is reported.
func ToMinutes(clock string) int {
	hh, mm, _ := strings.Cut(clock, ":")
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	return h*60 + m
}

// ToClock formats minutes since midnight as a zero-padded "HH:MM" string.
func ToClock(offset int) string {
	return fmt.Sprintf("%02d:%02d", offset/60, offset%60)
}

// ToPercent maps minutes since midnight to a percentage of the day.
// Used for timeline layout only, never by the resolution arithmetic.
func ToPercent(offset int) float64 {
	return float64(offset) / MinutesPerDay * 100
}
