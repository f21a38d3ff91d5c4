package batch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MoraesCaio/TJ-Feeder/internal/calendar"
	"github.com/MoraesCaio/TJ-Feeder/internal/config"
	"go.uber.org/zap"
)

func newTestAssembler(t *testing.T, cfg *config.Config) *Assembler {
	t.Helper()

	holidays := filepath.Join(t.TempDir(), "holidays.txt")
	if err := os.WriteFile(holidays, []byte("2022-08-15 holiday\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.HolidaysFile = holidays

	cal, err := calendar.New(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("calendar.New() error = %v", err)
	}
	return New(cfg, cal, zap.NewNop())
}

func defaultConfig() *config.Config {
	return &config.Config{
		StartingHour:      9,
		ShiftHours:        8,
		MonthStartWorkday: 1,
		TimeMode:          config.DurationMode,
	}
}

func writeDay(t *testing.T, dir, stem, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, stem+".csv"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const fullDay = "time_spent,issue_name,issue_description\n8h,TaskA,work\n"

func TestFeedMonthDirSeparators(t *testing.T) {
	dir := t.TempDir()

	// Mon, Tue, Wed of one week, then the following Monday.
	writeDay(t, dir, "2022-08-01", fullDay)
	writeDay(t, dir, "2022-08-02", fullDay)
	writeDay(t, dir, "2022-08-03", fullDay)
	writeDay(t, dir, "2022-08-08", fullDay)

	assembler := newTestAssembler(t, defaultConfig())
	output, err := assembler.FeedMonthDir(dir)
	if err != nil {
		t.Fatalf("FeedMonthDir() error = %v", err)
	}

	blocks := strings.Split(output, "\n\n\n")
	if len(blocks) != 2 {
		t.Fatalf("got %d week blocks, want 2:\n%q", len(blocks), output)
	}
	if got := strings.Count(blocks[0], "booking "); got != 3 {
		t.Errorf("first week has %d bookings, want 3:\n%q", got, blocks[0])
	}
	if got := strings.Count(blocks[1], "booking "); got != 1 {
		t.Errorf("second week has %d bookings, want 1:\n%q", got, blocks[1])
	}

	// Days within a week are separated by a single blank line.
	if !strings.HasPrefix(output, "\n") {
		t.Errorf("output must start with a day separator:\n%q", output)
	}
	if !strings.Contains(blocks[0], "2022-08-02-09:00") || !strings.Contains(blocks[1], "2022-08-08-09:00") {
		t.Errorf("feed lines missing expected dates:\n%q", output)
	}
}

func TestFeedMonthDirWarningComment(t *testing.T) {
	dir := t.TempDir()
	writeDay(t, dir, "2022-08-01", "time_spent,issue_name,issue_description\n7h,TaskA,work\n")

	assembler := newTestAssembler(t, defaultConfig())
	output, err := assembler.FeedMonthDir(dir)
	if err != nil {
		t.Fatalf("FeedMonthDir() error = %v", err)
	}

	lines := strings.Split(strings.Trim(output, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want warning + booking:\n%q", len(lines), output)
	}
	if lines[0] != "# You are missing 1.00 hours (60 minutes)" {
		t.Errorf("warning line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "booking TaskA") {
		t.Errorf("booking line = %q", lines[1])
	}
}

func TestFeedMonthDirSkipsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	writeDay(t, dir, "2022-08-01", fullDay)
	writeDay(t, dir, "2022-08-02", "wrong,headers\nx,y\n")
	writeDay(t, dir, "2022-08-03", "time_spent,issue_name,issue_description\n") // empty
	writeDay(t, dir, "2022-08-04", fullDay)

	assembler := newTestAssembler(t, defaultConfig())
	output, err := assembler.FeedMonthDir(dir)
	if err != nil {
		t.Fatalf("FeedMonthDir() error = %v", err)
	}

	if got := strings.Count(output, "booking "); got != 2 {
		t.Errorf("got %d bookings, want 2 (invalid days skipped):\n%q", got, output)
	}
}

func TestFeedMonthDirMissingDirectory(t *testing.T) {
	assembler := newTestAssembler(t, defaultConfig())

	output, err := assembler.FeedMonthDir(filepath.Join(t.TempDir(), "2022-08"))
	if err != nil {
		t.Fatalf("FeedMonthDir() error = %v", err)
	}
	if output != "" {
		t.Errorf("output = %q, want empty", output)
	}
}

func TestCreateMonthDir(t *testing.T) {
	root := t.TempDir()

	assembler := newTestAssembler(t, defaultConfig())
	if err := assembler.CreateMonthDir(root, 2022, time.August); err != nil {
		t.Fatalf("CreateMonthDir() error = %v", err)
	}

	dir := filepath.Join(root, "2022-08")
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}

	// August 2022 has 23 weekdays, minus the Aug 15 holiday.
	if len(entries) != 22 {
		t.Errorf("created %d day files, want 22", len(entries))
	}

	if _, err := os.Stat(filepath.Join(dir, "2022-08-15.csv")); !os.IsNotExist(err) {
		t.Error("holiday day file should not exist")
	}

	content, err := os.ReadFile(filepath.Join(dir, "2022-08-01.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "time_spent,issue_name,issue_description\n" {
		t.Errorf("day file content = %q", content)
	}
}

func TestCreateMonthDirScheduleHeaders(t *testing.T) {
	root := t.TempDir()

	cfg := defaultConfig()
	cfg.TimeMode = config.ScheduleMode

	assembler := newTestAssembler(t, cfg)
	if err := assembler.CreateMonthDir(root, 2022, time.August); err != nil {
		t.Fatalf("CreateMonthDir() error = %v", err)
	}

	content, err := os.ReadFile(filepath.Join(root, "2022-08", "2022-08-01.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "start_time,end_time,issue_name,issue_description\n" {
		t.Errorf("day file content = %q", content)
	}
}

func TestCreateMonthDirKeepsExistingFiles(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "2022-08")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeDay(t, dir, "2022-08-01", fullDay)

	assembler := newTestAssembler(t, defaultConfig())
	if err := assembler.CreateMonthDir(root, 2022, time.August); err != nil {
		t.Fatalf("CreateMonthDir() error = %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, "2022-08-01.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != fullDay {
		t.Errorf("existing day file was overwritten: %q", content)
	}
}
