package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/username/bizcal/internal/calendar"
	"github.com/username/bizcal/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath   string
	calendarName string
	useTime      bool

	cfg       *config.Config
	logger    *zap.Logger
	calendars *calendar.Cache
)

func main() {
	os.Exit(exitStatus(newRootCmd().Execute()))
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bizcal",
		Short:         "Business calendar arithmetic",
		Long:          "Check business days, roll dates and count business days using named holiday calendars",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}

			if cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					logger = initLogger(cfg.Log.Level) // Fallback to console
				}
			} else {
				logger = initLogger(cfg.Log.Level)
			}

			loader := calendar.NewDefaultLoader(
				cfg.Calendars.LoadPaths,
				cfg.Calendars.FirstHolidayYear,
				cfg.Calendars.LastHolidayYear,
				logger,
			)
			calendars = calendar.NewCache(loader, logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: search ./bizcal.yaml, ~/.bizcal, /etc/bizcal)")
	rootCmd.PersistentFlags().StringVarP(&calendarName, "calendar", "n", "", "Calendar name (default from config)")
	rootCmd.PersistentFlags().BoolVar(&useTime, "time", false, "Treat dates as timestamps stepping by 24 hours")

	rootCmd.AddCommand(
		checkCmd(),
		rollCmd(),
		nextCmd(),
		prevCmd(),
		addCmd(),
		subtractCmd(),
		betweenCmd(),
		exportCmd(),
		showCmd(),
	)

	return rootCmd
}

// openCalendar returns the calendar selected by --calendar or the config.
func openCalendar() (*calendar.Calendar, error) {
	name := calendarName
	if name == "" {
		name = cfg.Calendars.Default
	}
	cal, err := calendars.Get(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load calendar: %w", err)
	}
	return cal, nil
}

func initLogger(level string) *zap.Logger {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	return logger
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

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
