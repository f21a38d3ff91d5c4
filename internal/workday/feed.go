package workday

import (
	"fmt"
	"strings"
	"time"

	"github.com/MoraesCaio/TJ-Feeder/internal/config"
	"go.uber.org/zap"
)

// DailyFeed renders the schedule as booking feed lines for the given
// date. Columns are fixed-width; the line on which the cumulative
// worktime first exceeds the shift length carries an "{overtime 1}"
// marker.
func (s *DaySchedule) DailyFeed(year int, month time.Month, day int, cfg *config.Config) string {
	var feed strings.Builder

	shift := time.Duration(cfg.ShiftHours) * time.Hour
	cumulative := time.Duration(0)
	clock := time.Date(year, month, day, cfg.StartingHour, 0, 0, 0, time.Local)
	marked := false

	for _, booking := range s.Bookings {
		var spent string
		if cfg.UseMinutes {
			spent = fmt.Sprintf("+%dmin", booking.Minutes)
		} else {
			spent = fmt.Sprintf("+%.2fh", booking.Hours)
		}

		cumulative += time.Duration(booking.Minutes) * time.Minute
		if !marked && cumulative > shift {
			spent = fmt.Sprintf("%-7s {overtime 1}", spent)
			marked = true
		}

		fmt.Fprintf(&feed, "booking %-30s %s %-20s ",
			booking.IssueName, clock.Format("2006-01-02-15:04"), spent)
		if booking.IssueDescription != "" {
			fmt.Fprintf(&feed, "# %s\n", booking.IssueDescription)
		} else {
			feed.WriteString("\n")
		}

		clock = clock.Add(time.Duration(booking.Minutes) * time.Minute)
	}

	return feed.String()
}

// IssueWarnings returns a human-readable warning when the day is short
// of, or beyond, the expected shift length. Missing time takes
// precedence. Returns "" when the day balances out.
func (s *DaySchedule) IssueWarnings(logger *zap.Logger) string {
	due := DueMinutes(s.ExpectedMinutes, s.TotalMinutes)
	overtime := OvertimeMinutes(s.ExpectedMinutes, s.TotalMinutes)

	var warning string
	if due > 0 {
		warning = fmt.Sprintf("You are missing %.2f hours (%d minutes)", float64(due)/minutesPerHour, due)
	} else if overtime > 0 {
		warning = fmt.Sprintf("You've worked overtime of %.2f hours (%d minutes)", float64(overtime)/minutesPerHour, overtime)
	}

	if warning != "" {
		logger.Warn(warning,
			zap.Int("worktime_minutes", s.TotalMinutes),
			zap.Int("expected_minutes", s.ExpectedMinutes))
	}

	return warning
}
