package dateutil

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var digitRuns = regexp.MustCompile(`\d+`)

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// IsWeekday returns true if the date is Monday-Friday
func IsWeekday(date time.Time) bool {
	weekday := date.Weekday()
	return weekday >= time.Monday && weekday <= time.Friday
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// MondayIndex returns the weekday as an index starting at Monday:
// Monday=0 .. Sunday=6.
func MondayIndex(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// ParseStemDate extracts a calendar date from a file name stem such as
// "2022-01-21". The digit groups are taken in year, month, day order;
// any non-digit runs may separate them.
func ParseStemDate(stem string) (time.Time, error) {
	groups := digitRuns.FindAllString(stem, -1)
	if len(groups) != 3 {
		return time.Time{}, fmt.Errorf("file name %q does not encode a YYYY-MM-DD date", stem)
	}

	year, _ := strconv.Atoi(groups[0])
	month, _ := strconv.Atoi(groups[1])
	day, _ := strconv.Atoi(groups[2])

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	// time.Date normalizes out-of-range components; reject them instead.
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return time.Time{}, fmt.Errorf("file name %q encodes an invalid date", stem)
	}

	return date, nil
}

// Today returns today's date (start of day)
func Today() time.Time {
	return StartOfDay(time.Now())
}
