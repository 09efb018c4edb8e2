package dateutil

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// dateLayouts are tried in order by ParseDate. Layouts carrying a clock
// component come after the date-only ones.
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"02.01.2006",
	"20060102",
	"2 Jan 2006",
	"2 Jan, 2006",
	"2 January 2006",
	"2 January, 2006",
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"January 2, 2006",
	"Mon 2 Jan 2006",
	"Mon 2 Jan, 2006",
	"Mon, 2 Jan 2006",
	"Monday 2 Jan 2006",
	"Monday 2 Jan, 2006",
	"Monday, 2 Jan 2006",
	"Monday 2 January 2006",
	"Monday, 2 January 2006",
	"Monday, January 2, 2006",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05-0700",
}

var ordinalSuffix = regexp.MustCompile(`\b(\d{1,2})(st|nd|rd|th)\b`)

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// WeekdayCode returns the lower-case three letter code of the weekday
// ("mon", "tue", ...).
func WeekdayCode(day time.Weekday) string {
	return strings.ToLower(day.String()[:3])
}

// ParseDate parses date string in various formats. ISO dates, dotted
// European dates, RFC 3339 timestamps and English forms such as
// "Tuesday 1st Jan, 2013" are accepted. The result is in UTC unless the
// input carries an offset.
func ParseDate(dateStr string) (time.Time, error) {
	s := strings.TrimSpace(dateStr)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}
	s = ordinalSuffix.ReplaceAllString(s, "$1")
	s = strings.Join(strings.Fields(s), " ")

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", dateStr)
}

// HasClock reports whether the string carries a time-of-day component
// in one of the layouts ParseDate accepts.
func HasClock(dateStr string) bool {
	return strings.ContainsAny(strings.TrimSpace(dateStr), ":")
}

// Today returns today's date (start of day)
func Today() time.Time {
	return StartOfDay(time.Now())
}
