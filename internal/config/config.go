package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Time entry modes accepted in the time_mode key.
const (
	DurationMode = "duration_mode"
	ScheduleMode = "schedule_mode"
)

// ErrMissingKey is returned when a required configuration key is absent.
var ErrMissingKey = errors.New("missing configuration key")

// Config represents application configuration
type Config struct {
	StartingHour      int    `mapstructure:"starting_hour"`
	ShiftHours        int    `mapstructure:"shift_hours"`
	MonthStartWorkday int    `mapstructure:"month_start_workday"`
	UseMinutes        bool   `mapstructure:"use_minutes"`
	HolidaysFile      string `mapstructure:"holidays_file"`
	TimeMode          string `mapstructure:"time_mode"`
}

// DefaultPath returns the config file path used when none is given.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".tj-feed", "config.yaml")
}

// Load loads configuration from file. An absent file yields the defaults;
// a present but malformed file is an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("starting_hour", 9)
	v.SetDefault("shift_hours", 8)
	v.SetDefault("month_start_workday", 1)
	v.SetDefault("use_minutes", false)
	v.SetDefault("holidays_file", "")
	v.SetDefault("time_mode", DurationMode)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.tj-feed")
	}

	// Read environment variables
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.StartingHour < 0 || c.StartingHour > 23 {
		return fmt.Errorf("starting_hour must be between 0 and 23, got %d", c.StartingHour)
	}
	if c.ShiftHours < 0 || c.ShiftHours > 23 {
		return fmt.Errorf("shift_hours must be between 0 and 23, got %d", c.ShiftHours)
	}
	if c.MonthStartWorkday < 1 || c.MonthStartWorkday > 31 {
		return fmt.Errorf("month_start_workday must be between 1 and 31, got %d", c.MonthStartWorkday)
	}
	if c.TimeMode != DurationMode && c.TimeMode != ScheduleMode {
		return fmt.Errorf("time_mode must be %q or %q, got %q", DurationMode, ScheduleMode, c.TimeMode)
	}
	return nil
}

// ExpectedMinutes returns the expected worktime of one shift in minutes.
func (c *Config) ExpectedMinutes() int {
	return c.ShiftHours * 60
}

// Save persists the configuration to configPath, creating the parent
// directory when needed.
func (c *Config) Save(configPath string) error {
	if configPath == "" {
		configPath = DefaultPath()
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("starting_hour", c.StartingHour)
	v.Set("shift_hours", c.ShiftHours)
	v.Set("month_start_workday", c.MonthStartWorkday)
	v.Set("use_minutes", c.UseMinutes)
	v.Set("holidays_file", c.HolidaysFile)
	v.Set("time_mode", c.TimeMode)

	if err := v.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
