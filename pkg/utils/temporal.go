package utils

import (
	"fmt"
	"math"
	"time"
)

// DateDifferenceInHours returns the absolute difference between two moments
// in hours, rounded to 2 decimal places. Each date is combined with its
// time-of-day string ("15:04" or "15:04:05"). An empty time2 means date2
// already carries its own time component.
func DateDifferenceInHours(date1 time.Time, time1 string, date2 time.Time, time2 string) float64 {
	t1 := CombineDateAndTime(date1, time1)
	t2 := date2
	if time2 != "" {
		t2 = CombineDateAndTime(date2, time2)
	}

	diffMs := math.Abs(float64(t1.Sub(t2).Milliseconds()))
	hours := diffMs / (1000 * 60 * 60)
	return math.Round(hours*100) / 100
}

// CombineDateAndTime replaces the time-of-day of date with the given
// "HH:MM" or "HH:MM:SS" string. An unparseable or empty time leaves the
// date truncated to midnight.
func CombineDateAndTime(date time.Time, timeOfDay string) time.Time {
	base := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	if timeOfDay == "" {
		return base
	}

	var h, m, s int
	if n, err := fmt.Sscanf(timeOfDay, "%d:%d:%d", &h, &m, &s); err != nil && n < 2 {
		return base
	}
	return base.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second)
}

// ExtractHouseNumberFromCents derives a house number from the fractional
// cents of an amount: round((amount mod 1) * 100). Returns 0 for whole
// amounts. Does no range checking; callers validate against the configured
// house range.
func ExtractHouseNumberFromCents(amount float64) int {
	frac := math.Mod(amount, 1)
	return int(math.Round(frac * 100))
}
