package workday

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const minutesPerHour = 60

// schedulePrecisionMinutes is the granularity the downstream scheduler
// accepts; schedule-mode durations are rounded to it.
const schedulePrecisionMinutes = 5

var (
	durationPattern = regexp.MustCompile(`^[+]?(\d+(\.\d*)?|\.\d+)(min|h)$`)
	nonDigits       = regexp.MustCompile(`\D`)
)

// ParseDuration parses a duration entry in either of the accepted forms,
// "XYmin" or "X.Yh" (a leading '+' is optional), into whole minutes and
// fractional hours.
func ParseDuration(s string) (minutes int, hours float64, err error) {
	if !durationPattern.MatchString(s) {
		return 0, 0, fmt.Errorf("%w: invalid period found: %q; please inform with either of these formats: XYmin; X.Yh", ErrInvalidDuration, s)
	}

	value := strings.TrimPrefix(s, "+")
	if strings.HasSuffix(value, "h") {
		hours, err = strconv.ParseFloat(strings.TrimSuffix(value, "h"), 64)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: invalid period found: %q", ErrInvalidDuration, s)
		}
		minutes = int(math.Round(hours * minutesPerHour))
		return minutes, hours, nil
	}

	minutes, err = strconv.Atoi(strings.TrimSuffix(value, "min"))
	if err != nil {
		// The pattern admits fractional values but minutes must be whole.
		return 0, 0, fmt.Errorf("%w: invalid period found: %q; minutes must be a whole number", ErrInvalidDuration, s)
	}
	hours = math.Round(float64(minutes)/minutesPerHour*100) / 100
	return minutes, hours, nil
}

// ParseSchedulePair parses a start/end clock-time pair in HHMM form
// (shorter digit strings are zero-padded on the left, separators are
// ignored) into whole minutes and fractional hours. The duration is
// rounded to the nearest 5 minutes.
func ParseSchedulePair(start, end string) (minutes int, hours float64, err error) {
	startMin, err := parseClock(start)
	if err != nil {
		return 0, 0, err
	}
	endMin, err := parseClock(end)
	if err != nil {
		return 0, 0, err
	}

	minutes = endMin - startMin
	if minutes < 0 {
		return 0, 0, fmt.Errorf("%w: end time %q is before start time %q", ErrInvalidTimeSchedule, end, start)
	}

	minutes = int(math.Round(float64(minutes)/schedulePrecisionMinutes)) * schedulePrecisionMinutes
	return minutes, float64(minutes) / minutesPerHour, nil
}

// parseClock converts a clock-time string into minutes since midnight.
func parseClock(s string) (int, error) {
	digits := nonDigits.ReplaceAllString(s, "")
	if len(digits) > 4 {
		return 0, fmt.Errorf("%w: more than 4 digits in %q (got %d)", ErrInvalidTimeSchedule, s, len(digits))
	}
	digits = strings.Repeat("0", 4-len(digits)) + digits

	hour, _ := strconv.Atoi(digits[:2])
	minute, _ := strconv.Atoi(digits[2:])
	if hour > 23 || minute > 59 {
		return 0, fmt.Errorf("%w: %q is not a valid HHMM clock time", ErrInvalidTimeSchedule, s)
	}

	return hour*minutesPerHour + minute, nil
}
