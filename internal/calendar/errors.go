package calendar

import (
	"errors"
	"fmt"
)

var (
	// ErrExtraWorkingDateOnWorkingDay is reported when an extra working date
	// falls on a weekday that is already a working day.
	ErrExtraWorkingDateOnWorkingDay = errors.New("extra working dates cannot be on working days")

	// ErrHolidayIsExtraWorkingDate is reported when a date is listed both as
	// a holiday and as an extra working date.
	ErrHolidayIsExtraWorkingDate = errors.New("holidays cannot be extra working dates")

	// ErrCalendarNotFound is returned by the loader when no source carries
	// the requested calendar.
	ErrCalendarNotFound = errors.New("no such calendar")

	// ErrUnknownKeys is returned when a calendar document carries keys other
	// than holidays, working_days and extra_working_dates.
	ErrUnknownKeys = errors.New("unknown calendar keys")
)

// InvalidDayError reports a working-day token that does not name a weekday.
type InvalidDayError struct {
	Day string
}

func (e *InvalidDayError) Error() string {
	return fmt.Sprintf("invalid day %q", e.Day)
}

// DateParseError reports a holiday or extra working date that could not be
// parsed.
type DateParseError struct {
	Field string
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("parse %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}

// InvariantError reports a calendar definition that breaks one of the
// cross-field rules. Rule is one of the Err* sentinels above.
type InvariantError struct {
	Rule error
	Date Date
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%v: %s (%s)", e.Rule, e.Date, e.Date.Weekday())
}

func (e *InvariantError) Unwrap() error {
	return e.Rule
}
