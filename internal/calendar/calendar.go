package calendar

import (
	"sort"
)

// Config is the declarative definition of a calendar, as found in a
// calendar document.
type Config struct {
	Name              string   `yaml:"-"`
	WorkingDays       []string `yaml:"working_days"`
	Holidays          []string `yaml:"holidays"`
	ExtraWorkingDates []string `yaml:"extra_working_dates"`
}

// Calendar answers business-day questions for a fixed set of working
// weekdays, holidays and extra working dates. A Calendar is immutable and
// safe for concurrent use.
type Calendar struct {
	name              string
	workingDays       weekdaySet
	holidays          map[Date]struct{}
	extraWorkingDates map[Date]struct{}
}

// New builds a Calendar from cfg. Working days default to Monday through
// Friday. It fails if a working day is not a weekday name, a date cannot be
// parsed, an extra working date falls on a working weekday, or a date is
// both a holiday and an extra working date.
func New(cfg Config) (*Calendar, error) {
	c := &Calendar{name: cfg.Name}

	var err error
	if c.extraWorkingDates, err = parseDates("extra working date", cfg.ExtraWorkingDates); err != nil {
		return nil, err
	}
	if err := c.setWorkingDays(cfg.WorkingDays); err != nil {
		return nil, err
	}
	if c.holidays, err = parseDates("holiday", cfg.Holidays); err != nil {
		return nil, err
	}

	for _, d := range sortedDates(c.holidays) {
		if _, ok := c.extraWorkingDates[d]; ok {
			return nil, &InvariantError{Rule: ErrHolidayIsExtraWorkingDate, Date: d}
		}
	}

	return c, nil
}

// MustNew is like New but panics on an invalid definition.
func MustNew(cfg Config) *Calendar {
	c, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Calendar) setWorkingDays(days []string) error {
	if len(days) == 0 {
		days = DefaultWorkingDays
	}

	for _, day := range days {
		weekday, err := NormalizeDay(day)
		if err != nil {
			return err
		}
		c.workingDays[weekday] = true
	}

	for _, d := range sortedDates(c.extraWorkingDates) {
		if c.workingDays.has(d.Weekday()) {
			return &InvariantError{Rule: ErrExtraWorkingDateOnWorkingDay, Date: d}
		}
	}
	return nil
}

func parseDates(field string, values []string) (map[Date]struct{}, error) {
	dates := make(map[Date]struct{}, len(values))
	for _, v := range values {
		d, err := ParseDate(v)
		if err != nil {
			return nil, &DateParseError{Field: field, Value: v, Err: err}
		}
		dates[d] = struct{}{}
	}
	return dates, nil
}

func sortedDates(set map[Date]struct{}) []Date {
	dates := make([]Date, 0, len(set))
	for d := range set {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
	return dates
}

// Name returns the calendar's identifier, empty if it has none.
func (c *Calendar) Name() string {
	return c.name
}

// WorkingDays returns the working weekday codes in Monday-first order.
func (c *Calendar) WorkingDays() []string {
	return c.workingDays.codes()
}

// Holidays returns the holidays in ascending order.
func (c *Calendar) Holidays() []Date {
	return sortedDates(c.holidays)
}

// ExtraWorkingDates returns the extra working dates in ascending order.
func (c *Calendar) ExtraWorkingDates() []Date {
	return sortedDates(c.extraWorkingDates)
}

// IsWorkingDay reports whether d is an extra working date or falls on a
// working weekday.
func (c *Calendar) IsWorkingDay(d Dated) bool {
	date := d.CalendarDate()
	if _, ok := c.extraWorkingDates[date]; ok {
		return true
	}
	return c.workingDays.has(date.Weekday())
}

// IsHoliday reports whether d is a listed holiday.
func (c *Calendar) IsHoliday(d Dated) bool {
	_, ok := c.holidays[d.CalendarDate()]
	return ok
}

// IsBusinessDay reports whether d is a working day that is not a holiday.
func (c *Calendar) IsBusinessDay(d Dated) bool {
	return c.IsWorkingDay(d) && !c.IsHoliday(d)
}

// BusinessDaysBetween counts the business days from the start of from up
// to, but not including, to. It returns 0 when to is not after from.
//
// Whole weeks are counted arithmetically: each contains every weekday once,
// so only holidays on working weekdays and extra working dates on other
// weekdays move the count. The remaining days are checked one by one.
func (c *Calendar) BusinessDaysBetween(from, to Dated) int {
	start, end := from.CalendarDate(), to.CalendarDate()

	days := end.Sub(start)
	if days <= 0 {
		return 0
	}
	fullWeeks, remaining := days/7, days%7
	weeksEnd := end.AddDays(-remaining)

	count := fullWeeks * c.workingDays.count()

	for d := range c.holidays {
		if inRange(d, start, weeksEnd) && c.workingDays.has(d.Weekday()) {
			count--
		}
	}
	for d := range c.extraWorkingDates {
		if inRange(d, start, weeksEnd) && !c.workingDays.has(d.Weekday()) {
			count++
		}
	}

	for d := weeksEnd; d.Before(end); d = d.AddDays(1) {
		if c.IsBusinessDay(d) {
			count++
		}
	}
	return count
}

// inRange reports whether d lies in [start, end).
func inRange(d, start, end Date) bool {
	return !d.Before(start) && d.Before(end)
}
