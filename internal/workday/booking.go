package workday

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/MoraesCaio/TJ-Feeder/internal/config"
)

// TimeMode selects which time-entry encoding a day file uses. It is
// resolved once from the header set and carried through the schedule.
type TimeMode int

const (
	DurationTimeMode TimeMode = iota + 1
	ScheduleTimeMode
)

// Header sets accepted in day files, one per time mode. Matching is
// order-insensitive but exact.
var (
	DurationHeaders = []string{"time_spent", "issue_name", "issue_description"}
	ScheduleHeaders = []string{"start_time", "end_time", "issue_name", "issue_description"}
)

// ModeFromConfig maps the configured time_mode string onto a TimeMode.
func ModeFromConfig(cfg *config.Config) (TimeMode, error) {
	switch cfg.TimeMode {
	case config.DurationMode:
		return DurationTimeMode, nil
	case config.ScheduleMode:
		return ScheduleTimeMode, nil
	default:
		return 0, fmt.Errorf("unknown time mode %q", cfg.TimeMode)
	}
}

// Headers returns the header set for the mode, in canonical column order.
func (m TimeMode) Headers() []string {
	if m == ScheduleTimeMode {
		return ScheduleHeaders
	}
	return DurationHeaders
}

// Booking is one time-booking row of a day file.
type Booking struct {
	IssueName        string
	IssueDescription string
	Minutes          int
	Hours            float64
}

// DaySchedule is the validated set of bookings for one calendar day,
// sorted by issue name.
type DaySchedule struct {
	Bookings        []Booking
	Mode            TimeMode
	TotalMinutes    int
	ExpectedMinutes int
}

// Load reads and validates one day CSV file. The header set selects the
// time mode; rows are sorted by issue name and their durations
// normalized to minutes.
func Load(path string, cfg *config.Config) (*DaySchedule, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open day file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%q is empty: %w", path, ErrEmptyInput)
	}

	headers := records[0]
	mode, err := detectMode(path, headers)
	if err != nil {
		return nil, err
	}

	rows := records[1:]
	if len(rows) == 0 {
		return nil, fmt.Errorf("%q is empty: %w", path, ErrEmptyInput)
	}

	column := make(map[string]int, len(headers))
	for i, name := range headers {
		column[name] = i
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i][column["issue_name"]] < rows[j][column["issue_name"]]
	})

	schedule := &DaySchedule{
		Bookings:        make([]Booking, 0, len(rows)),
		Mode:            mode,
		ExpectedMinutes: cfg.ExpectedMinutes(),
	}

	for _, row := range rows {
		booking := Booking{
			IssueName:        row[column["issue_name"]],
			IssueDescription: row[column["issue_description"]],
		}

		switch mode {
		case ScheduleTimeMode:
			booking.Minutes, booking.Hours, err = ParseSchedulePair(row[column["start_time"]], row[column["end_time"]])
		default:
			booking.Minutes, booking.Hours, err = ParseDuration(row[column["time_spent"]])
		}
		if err != nil {
			return nil, fmt.Errorf("%q: %w", path, err)
		}

		schedule.TotalMinutes += booking.Minutes
		schedule.Bookings = append(schedule.Bookings, booking)
	}

	return schedule, nil
}

// detectMode resolves the time mode from the header set, requiring an
// exact match against one of the accepted sets.
func detectMode(path string, headers []string) (TimeMode, error) {
	if sameSet(headers, DurationHeaders) {
		return DurationTimeMode, nil
	}
	if sameSet(headers, ScheduleHeaders) {
		return ScheduleTimeMode, nil
	}

	expected := "\n\t- " + strings.Join(DurationHeaders, "\n\t- ") +
		"\nOR\n\t- " + strings.Join(ScheduleHeaders, "\n\t- ")
	return 0, fmt.Errorf("%w: wrong headers for %q\nExpected headers:%s\nFound headers: %v",
		ErrSchemaMismatch, path, expected, headers)
}

func sameSet(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	seen := make(map[string]bool, len(got))
	for _, name := range got {
		seen[name] = true
	}
	if len(seen) != len(want) {
		return false
	}
	for _, name := range want {
		if !seen[name] {
			return false
		}
	}
	return true
}
