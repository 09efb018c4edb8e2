package calendar

import (
	"fmt"
	"time"

	"github.com/username/bizcal/pkg/dateutil"
)

const secondsPerDay = 24 * 60 * 60

// Dated is anything carrying a calendar-date component. Only the date
// participates in classification; any time of day is ignored.
type Dated interface {
	CalendarDate() Date
}

// Day is a Dated value that can step by whole day intervals. T is the
// concrete adapter type so that rolling a Date yields a Date and rolling a
// DateTime yields a DateTime.
type Day[T any] interface {
	Dated
	AddDays(n int) T
}

// Date is a calendar date without time of day or location. Fields out of
// range, as in Date{2014, time.February, 30}, are normalized by every
// method the way time.Date does.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date for the given year, month and day. Out of range
// values are normalized the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a date literal into a Date.
func ParseDate(s string) (Date, error) {
	t, err := dateutil.ParseDate(s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// CalendarDate returns d normalized.
func (d Date) CalendarDate() Date {
	return DateOf(d.Time())
}

// AddDays returns the date n calendar days after d (before d for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// Sub returns the number of whole days from other to d.
func (d Date) Sub(other Date) int {
	return int((d.Time().Unix() - other.Time().Unix()) / secondsPerDay)
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// After reports whether d is later than other.
func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

// Equal reports whether d and other are the same date.
func (d Date) Equal(other Date) bool {
	return d.CalendarDate() == other.CalendarDate()
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	d = d.CalendarDate()
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// DateTime is a point in time. Its calendar date is taken in the value's
// own location and it steps by fixed 24 hour durations.
type DateTime struct {
	time.Time
}

// At wraps t as a DateTime.
func At(t time.Time) DateTime {
	return DateTime{Time: t}
}

// CalendarDate returns the date component of dt.
func (dt DateTime) CalendarDate() Date {
	return DateOf(dt.Time)
}

// AddDays returns dt moved by n times 86400 seconds.
func (dt DateTime) AddDays(n int) DateTime {
	return DateTime{Time: dt.Time.Add(time.Duration(n) * 24 * time.Hour)}
}

func (dt DateTime) String() string {
	return dt.Time.Format(time.RFC3339)
}
