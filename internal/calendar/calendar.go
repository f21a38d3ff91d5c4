package calendar

import (
	"fmt"
	"time"

	"github.com/MoraesCaio/TJ-Feeder/internal/config"
	"github.com/MoraesCaio/TJ-Feeder/pkg/dateutil"
	"go.uber.org/zap"
)

const dayKeyFormat = "2006-01-02"

// Engine enumerates the workdays of a reporting period, skipping
// weekends and the holidays loaded at construction. Immutable once
// built.
type Engine struct {
	cfg      *config.Config
	holidays map[string]struct{}
	logger   *zap.Logger
}

// New builds an Engine from the configured holidays file. A missing
// holidays_file key is fatal: the engine refuses to operate without a
// valid calendar.
func New(cfg *config.Config, logger *zap.Logger) (*Engine, error) {
	if cfg.HolidaysFile == "" {
		return nil, fmt.Errorf(
			`%w: holidays_file; set it with "tj-feed define --holidays-file <path>"`,
			config.ErrMissingKey)
	}

	holidays, err := ParseHolidaysFile(cfg.HolidaysFile, logger)
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		cfg:      cfg,
		holidays: make(map[string]struct{}, len(holidays)),
		logger:   logger,
	}
	for _, date := range holidays {
		engine.holidays[date.Format(dayKeyFormat)] = struct{}{}
	}

	logger.Debug("Calendar engine ready",
		zap.String("holidays_file", cfg.HolidaysFile),
		zap.Int("holidays", len(engine.holidays)))

	return engine, nil
}

// IsHoliday reports whether the date (time of day ignored) is a holiday.
func (e *Engine) IsHoliday(date time.Time) bool {
	_, ok := e.holidays[date.Format(dayKeyFormat)]
	return ok
}

// Workdays steps forward one day at a time from startDay of the given
// month, skipping weekends and holidays, until stop reports true for a
// date (that date excluded).
func (e *Engine) Workdays(year int, month time.Month, startDay int, stop func(time.Time) bool) []time.Time {
	current := time.Date(year, month, startDay, 0, 0, 0, 0, time.Local)

	var workdays []time.Time
	for !stop(current) {
		if e.IsHoliday(current) || dateutil.IsWeekend(current) {
			e.logger.Debug("Skipping day off", zap.String("date", current.Format(dayKeyFormat)))
			current = current.AddDate(0, 0, 1)
			continue
		}

		workdays = append(workdays, current)
		current = current.AddDate(0, 0, 1)
	}

	return workdays
}

// MonthWorkdays returns the workdays of the reporting month, which runs
// from the configured month_start_workday through the day before the
// same workday of the next month. Not calendar-month-aligned on
// purpose: it supports non-calendar pay periods.
func (e *Engine) MonthWorkdays(year int, month time.Month) []time.Time {
	stop := func(date time.Time) bool {
		return date.Day() == e.cfg.MonthStartWorkday && date.Month() != month
	}
	return e.Workdays(year, month, e.cfg.MonthStartWorkday, stop)
}

// WeekWorkdays returns the workdays from weekStartDay of the given
// month up to the first weekend day reached.
func (e *Engine) WeekWorkdays(year int, month time.Month, weekStartDay int) []time.Time {
	return e.Workdays(year, month, weekStartDay, dateutil.IsWeekend)
}
