package bcbp

import (
	"fmt"
	"strconv"
	"time"
)

// rollbackThreshold is how far in the future a naive date may land before it
// is assumed to belong to the previous year.
const rollbackThreshold = 180 * 24 * time.Hour

// ResolveDayOfYear turns a three digit day-of-year code into a calendar date
// relative to today. The result is midnight UTC of the resolved day.
//
// The naive candidate is day code of today's year. When that lands more than
// 180 days after today it is moved back one year. Candidates far in the past
// are kept as they are: recent and upcoming travel is what gets scanned.
func ResolveDayOfYear(code string, today time.Time) (time.Time, error) {
	if len(code) != 3 || !allDigits(code) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateCode, code)
	}
	day, _ := strconv.Atoi(code)
	if day < 1 || day > 366 {
		return time.Time{}, fmt.Errorf("%w: %q out of range", ErrInvalidDateCode, code)
	}

	ref := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	year := ref.Year()

	if day > daysIn(year) {
		// Day 366 only exists in leap years, so it can only mean last year.
		// With no leap year in reach the code is rejected rather than
		// rolled over into January.
		if day > daysIn(year-1) {
			return time.Time{}, fmt.Errorf("%w: day %d does not exist in %d or %d",
				ErrInvalidDateCode, day, year-1, year)
		}
		return yearDay(year-1, day), nil
	}

	candidate := yearDay(year, day)
	if candidate.Sub(ref) > rollbackThreshold && day <= daysIn(year-1) {
		candidate = yearDay(year-1, day)
	}
	return candidate, nil
}

// ResolveTimeOfDay reads the optional HHMM sub-field that follows the 13
// character details block. ok is false when it is absent or not a valid time.
func ResolveTimeOfDay(extended string) (hour, minute int, ok bool) {
	const start, end = maxDetailsLength, maxDetailsLength + 4
	if len(extended) < end {
		return 0, 0, false
	}
	hhmm := extended[start:end]
	if !allDigits(hhmm) {
		return 0, 0, false
	}
	hour, _ = strconv.Atoi(hhmm[:2])
	minute, _ = strconv.Atoi(hhmm[2:])
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// ResolveDeparture combines the date and optional time of a leg.
// timeKnown is false when the result is midnight only because no time was encoded.
func ResolveDeparture(block LegBlock, today time.Time) (departure *time.Time, timeKnown bool, err error) {
	date, err := ResolveDayOfYear(block.Details[:3], today)
	if err != nil {
		return nil, false, err
	}
	if hour, minute, ok := ResolveTimeOfDay(block.Extended); ok {
		date = date.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
		timeKnown = true
	}
	return &date, timeKnown, nil
}

func yearDay(year, day int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day-1)
}

func daysIn(year int) int {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}
