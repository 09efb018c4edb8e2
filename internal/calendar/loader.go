package calendar

import (
	"fmt"

	"go.uber.org/zap"
)

// Loader resolves calendar names against an ordered list of sources.
// The first source that carries the name wins.
type Loader struct {
	sources []Source
	logger  *zap.Logger
}

// NewLoader creates a new Loader
func NewLoader(logger *zap.Logger, sources ...Source) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		sources: sources,
		logger:  logger,
	}
}

// NewDefaultLoader searches the given directories in order, then the
// built-in calendars, then the holiday sets expanded over
// firstYear..lastYear.
func NewDefaultLoader(loadPaths []string, firstYear, lastYear int, logger *zap.Logger) *Loader {
	sources := make([]Source, 0, len(loadPaths)+2)
	for _, dir := range loadPaths {
		sources = append(sources, NewDirSource(dir))
	}
	sources = append(sources, NewBuiltinSource(), NewHolidaySetSource(firstYear, lastYear))
	return NewLoader(logger, sources...)
}

// Load finds the named calendar and builds it. A definition that fails
// validation is an error; it does not fall through to later sources.
func (l *Loader) Load(name string) (*Calendar, error) {
	for _, src := range l.sources {
		cfg, err := src.Find(name)
		if err != nil {
			return nil, fmt.Errorf("calendar %q: %w", name, err)
		}
		if cfg == nil {
			l.logger.Debug("Calendar not in source",
				zap.String("calendar", name),
				zap.String("source", src.Name()))
			continue
		}

		cfg.Name = name
		cal, err := New(*cfg)
		if err != nil {
			return nil, fmt.Errorf("invalid calendar %q from %s: %w", name, src.Name(), err)
		}

		l.logger.Info("Calendar loaded",
			zap.String("calendar", name),
			zap.String("source", src.Name()),
			zap.Strings("working_days", cal.WorkingDays()),
			zap.Int("holidays", len(cal.holidays)),
			zap.Int("extra_working_dates", len(cal.extraWorkingDates)))

		return cal, nil
	}

	return nil, fmt.Errorf("%w '%s'", ErrCalendarNotFound, name)
}
