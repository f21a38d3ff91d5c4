package calendar

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"go.uber.org/zap"
)

var (
	holidayPattern = regexp.MustCompile(`\d{4}\D\d{2}\D\d{2}`)
	separators     = regexp.MustCompile(`\D`)
)

// ParseHolidaysFile reads holiday dates from path. Files ending in
// ".ics" are parsed as iCalendar, every other file as line-oriented
// text where any line containing a YYYY-MM-DD pattern (separators may
// be any non-digit character) contributes a holiday.
func ParseHolidaysFile(path string, logger *zap.Logger) ([]time.Time, error) {
	if strings.EqualFold(filepath.Ext(path), ".ics") {
		return parseHolidaysICS(path, logger)
	}
	return parseHolidaysText(path, logger)
}

func parseHolidaysText(path string, logger *zap.Logger) ([]time.Time, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open holidays file: %w", err)
	}
	defer file.Close()

	var holidays []time.Time

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		match := holidayPattern.FindString(scanner.Text())
		if match == "" {
			continue
		}

		formatted := separators.ReplaceAllString(match, "-")
		date, err := time.ParseInLocation("2006-01-02", formatted, time.Local)
		if err != nil {
			logger.Warn("Failed to parse holiday date", zap.String("date", match), zap.Error(err))
			continue
		}

		holidays = append(holidays, date)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading holidays file: %w", err)
	}

	logger.Info("Holidays file loaded",
		zap.String("file", path),
		zap.Int("holidays", len(holidays)))

	return holidays, nil
}

func parseHolidaysICS(path string, logger *zap.Logger) ([]time.Time, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open holidays file: %w", err)
	}
	defer file.Close()

	cal, err := ical.ParseCalendar(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ICS holidays file %q: %w", path, err)
	}

	var holidays []time.Time

	for _, event := range cal.Events() {
		prop := event.GetProperty(ical.ComponentPropertyDtStart)
		if prop == nil {
			continue
		}

		// DTSTART may carry a time part; only the date matters here.
		value := prop.Value
		if i := strings.IndexByte(value, 'T'); i >= 0 {
			value = value[:i]
		}

		date, err := time.ParseInLocation("20060102", value, time.Local)
		if err != nil {
			logger.Warn("Failed to parse ICS event start", zap.String("dtstart", prop.Value), zap.Error(err))
			continue
		}

		holidays = append(holidays, date)
	}

	logger.Info("ICS holidays file loaded",
		zap.String("file", path),
		zap.Int("holidays", len(holidays)))

	return holidays, nil
}
