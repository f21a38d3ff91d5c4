package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MoraesCaio/TJ-Feeder/internal/batch"
	"github.com/MoraesCaio/TJ-Feeder/internal/calendar"
	"github.com/MoraesCaio/TJ-Feeder/internal/config"
	"github.com/MoraesCaio/TJ-Feeder/internal/workday"
	"github.com/MoraesCaio/TJ-Feeder/pkg/dateutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	logLevel   string
	logFile    string
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tj-feed",
		Short: "TaskJuggler booking feed generator",
		Long:  "Convert per-day time-booking CSV files into TaskJuggler booking feeds, enforcing a configurable work calendar",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logFile != "" {
				l, err := initFileLogger(logFile, logLevel)
				if err == nil {
					logger = l
					return
				}
			}
			initLogger(logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: $HOME/.tj-feed/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file (rotated) instead of stderr")

	rootCmd.AddCommand(defineCmd())
	rootCmd.AddCommand(feedCmd())
	rootCmd.AddCommand(feedMonthCmd())
	rootCmd.AddCommand(createMonthCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func defineCmd() *cobra.Command {
	var (
		startingHour      int
		shiftHours        int
		monthStartWorkday int
		useMinutes        bool
		holidaysFile      string
		timeMode          string
	)

	cmd := &cobra.Command{
		Use:   "define",
		Short: "Set default configuration values",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if cmd.Flags().Changed("starting-hour") {
				fmt.Printf("Defining starting hour as %d\n", startingHour)
				cfg.StartingHour = startingHour
			}
			if cmd.Flags().Changed("shift-hours") {
				fmt.Printf("Defining shift duration as %d hours\n", shiftHours)
				cfg.ShiftHours = shiftHours
			}
			if cmd.Flags().Changed("month-start-workday") {
				fmt.Printf("Defining month start workday as %d\n", monthStartWorkday)
				cfg.MonthStartWorkday = monthStartWorkday
			}
			if cmd.Flags().Changed("use-minutes") {
				unit := "hours"
				if useMinutes {
					unit = "minutes"
				}
				fmt.Printf("Defining duration unit as %s\n", unit)
				cfg.UseMinutes = useMinutes
			}
			if cmd.Flags().Changed("holidays-file") {
				if _, err := os.Stat(holidaysFile); err != nil {
					return fmt.Errorf("holidays file not found: %w", err)
				}
				fmt.Printf("Defining holidays_file as %s\n", holidaysFile)
				cfg.HolidaysFile = holidaysFile
			}
			if cmd.Flags().Changed("time-mode") {
				fmt.Printf("Defining time_mode as %s\n", timeMode)
				cfg.TimeMode = timeMode
			}

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			fmt.Println("Saving default settings...")
			return cfg.Save(configPath)
		},
	}

	cmd.Flags().IntVar(&startingHour, "starting-hour", 0, "Starting hour of the shift (0-23)")
	cmd.Flags().IntVar(&shiftHours, "shift-hours", 0, "Shift length in hours (0-23)")
	cmd.Flags().IntVar(&monthStartWorkday, "month-start-workday", 0, "First workday of the reporting month (1-31)")
	cmd.Flags().BoolVar(&useMinutes, "use-minutes", false, "Report spent time in minutes instead of hours")
	cmd.Flags().StringVar(&holidaysFile, "holidays-file", "", "Path to the holidays file (text or .ics)")
	cmd.Flags().StringVar(&timeMode, "time-mode", "", fmt.Sprintf("Either %q or %q", config.DurationMode, config.ScheduleMode))

	return cmd
}

func feedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "feed <csv-file>",
		Short: "Generate the daily feed for one day CSV file",
		Long:  "Generate a daily TaskJuggler feed from a CSV file whose name encodes the date as YYYY-MM-DD (e.g. 2021-09-24.csv)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			csvFile := args[0]

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			stem := strings.TrimSuffix(filepath.Base(csvFile), filepath.Ext(csvFile))
			date, err := dateutil.ParseStemDate(stem)
			if err != nil {
				return err
			}

			schedule, err := workday.Load(csvFile, cfg)
			if err != nil {
				return err
			}

			fmt.Print(schedule.DailyFeed(date.Year(), date.Month(), date.Day(), cfg))
			schedule.IssueWarnings(logger)
			return nil
		},
	}
}

func feedMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "feed-month <month-directory>",
		Short: "Generate the feed for a month directory of day CSV files",
		Long:  "Concatenate daily feeds of a month directory, separating days with one blank line and weeks with three",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assembler, err := initializeAssembler()
			if err != nil {
				return err
			}

			output, err := assembler.FeedMonthDir(args[0])
			if err != nil {
				return err
			}

			fmt.Print(output)
			return nil
		},
	}
}

func createMonthCmd() *cobra.Command {
	var (
		year  int
		month int
	)

	cmd := &cobra.Command{
		Use:   "create-month <root-directory>",
		Short: "Create empty day CSV files for every workday of a month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if month < 1 || month > 12 {
				return fmt.Errorf("month must be between 1 and 12, got %d", month)
			}

			assembler, err := initializeAssembler()
			if err != nil {
				return err
			}

			return assembler.CreateMonthDir(args[0], year, time.Month(month))
		},
	}

	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "Year of the month directory")
	cmd.Flags().IntVar(&month, "month", int(time.Now().Month()), "Month of the month directory (1-12)")

	return cmd
}

func initializeAssembler() (*batch.Assembler, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cal, err := calendar.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	return batch.New(cfg, cal, logger), nil
}

func initLogger(level string) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.WarnLevel
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	// Setup encoder
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Parse log level
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	// Create core with lumberjack writer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
