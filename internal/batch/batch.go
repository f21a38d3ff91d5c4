package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/MoraesCaio/TJ-Feeder/internal/calendar"
	"github.com/MoraesCaio/TJ-Feeder/internal/config"
	"github.com/MoraesCaio/TJ-Feeder/internal/workday"
	"github.com/MoraesCaio/TJ-Feeder/pkg/dateutil"
	"go.uber.org/zap"
)

// Assembler creates and consumes month CSV directories.
type Assembler struct {
	cfg    *config.Config
	cal    *calendar.Engine
	logger *zap.Logger
}

// New creates a new Assembler
func New(cfg *config.Config, cal *calendar.Engine, logger *zap.Logger) *Assembler {
	return &Assembler{
		cfg:    cfg,
		cal:    cal,
		logger: logger,
	}
}

// CreateMonthDir creates <root>/<YYYY-MM>/ with one header-only CSV per
// workday of the reporting month. Existing day files are left
// untouched.
func (a *Assembler) CreateMonthDir(root string, year int, month time.Month) error {
	dir := filepath.Join(root, fmt.Sprintf("%d-%02d", year, month))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create month directory: %w", err)
	}

	mode, err := workday.ModeFromConfig(a.cfg)
	if err != nil {
		return err
	}
	headerLine := strings.Join(mode.Headers(), ",") + "\n"

	for _, day := range a.cal.MonthWorkdays(year, month) {
		path := filepath.Join(dir, day.Format("2006-01-02")+".csv")
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte(headerLine), 0o644); err != nil {
			return fmt.Errorf("failed to create day file %q: %w", path, err)
		}
	}

	a.logger.Info("Month directory created",
		zap.String("dir", dir),
		zap.String("time_mode", a.cfg.TimeMode))

	return nil
}

// FeedMonthDir renders every day file of a month directory into one
// feed, separating days with one blank line and weeks with three. Day
// files that fail validation are skipped with a warning; the batch
// continues.
func (a *Assembler) FeedMonthDir(dir string) (string, error) {
	if _, err := os.Stat(dir); err != nil {
		a.logger.Warn("Month directory not found, halting the process",
			zap.String("dir", dir), zap.Error(err))
		return "", nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return "", fmt.Errorf("failed to list %q: %w", dir, err)
	}
	// The week-break heuristic depends on ascending date order.
	sort.Strings(files)

	a.logger.Debug("Feeding month directory",
		zap.String("dir", dir), zap.Int("files", len(files)))

	var output strings.Builder
	lastSeenWeekday := 0 // Monday

	for _, file := range files {
		stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		date, err := dateutil.ParseStemDate(stem)
		if err != nil {
			a.logger.Warn("Skipping file with undated name", zap.String("file", file), zap.Error(err))
			continue
		}

		schedule, err := workday.Load(file, a.cfg)
		if err != nil {
			a.logger.Warn("Skipping day file", zap.String("file", file), zap.Error(err))
			continue
		}

		currentWeekday := dateutil.MondayIndex(date)
		warning := schedule.IssueWarnings(a.logger)

		// A weekday lower than the last seen one means a new week.
		if currentWeekday < lastSeenWeekday {
			output.WriteString("\n\n\n")
		} else {
			output.WriteString("\n")
		}
		if warning != "" {
			fmt.Fprintf(&output, "# %s\n", warning)
		}
		output.WriteString(schedule.DailyFeed(date.Year(), date.Month(), date.Day(), a.cfg))

		lastSeenWeekday = currentWeekday
	}

	return output.String(), nil
}
