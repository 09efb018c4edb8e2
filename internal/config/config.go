package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// DefaultCalendar is used when no calendar is configured or named.
const DefaultCalendar = "weekdays"

// Year window of the holiday-set calendars ("us").
const (
	DefaultFirstHolidayYear = 1970
	DefaultLastHolidayYear  = 2099
)

// Config represents application configuration
type Config struct {
	Calendars CalendarsConfig `mapstructure:"calendars"`
	Log       LogConfig       `mapstructure:"log"`
}

// CalendarsConfig represents calendar lookup configuration
type CalendarsConfig struct {
	LoadPaths        []string `mapstructure:"load_paths"` // Directories searched in order for <name>.yml
	Default          string   `mapstructure:"default"`
	FirstHolidayYear int      `mapstructure:"first_holiday_year"`
	LastHolidayYear  int      `mapstructure:"last_holiday_year"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"` // Empty logs to the console
	Level string `mapstructure:"level"`
}

// Load loads configuration from file. With an empty configPath the
// usual locations are searched and a missing file leaves the defaults in
// place; an explicit path must exist.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("calendars.load_paths", []string{})
	v.SetDefault("calendars.default", DefaultCalendar)
	v.SetDefault("calendars.first_holiday_year", DefaultFirstHolidayYear)
	v.SetDefault("calendars.last_holiday_year", DefaultLastHolidayYear)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("bizcal")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.bizcal")
		v.AddConfigPath("/etc/bizcal")
	}

	// Read environment variables (BIZCAL_CALENDARS_DEFAULT, ...)
	v.SetEnvPrefix("bizcal")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandPaths()

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Calendars.Default) == "" {
		return fmt.Errorf("calendars.default must not be empty")
	}
	for i, p := range c.Calendars.LoadPaths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("calendars.load_paths[%d] is empty", i)
		}
	}

	if c.Calendars.FirstHolidayYear > c.Calendars.LastHolidayYear {
		return fmt.Errorf("calendars.first_holiday_year %d is after calendars.last_holiday_year %d",
			c.Calendars.FirstHolidayYear, c.Calendars.LastHolidayYear)
	}

	if _, err := c.Log.ZapLevel(); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	return nil
}

// ZapLevel parses the configured log level. Empty means info.
func (c *LogConfig) ZapLevel() (zapcore.Level, error) {
	if c.Level == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return zapcore.InfoLevel, err
	}
	return level, nil
}

// ExpandPaths expands environment variables and a leading ~ in paths
func (c *Config) ExpandPaths() {
	for i, p := range c.Calendars.LoadPaths {
		c.Calendars.LoadPaths[i] = expandPath(p)
	}
	c.Log.File = expandPath(c.Log.File)
}

func expandPath(path string) string {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
