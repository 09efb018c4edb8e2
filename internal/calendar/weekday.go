package calendar

import (
	"strings"
	"time"

	"github.com/username/bizcal/pkg/dateutil"
)

// weekdayCodes maps the canonical three letter codes to weekdays.
var weekdayCodes = map[string]time.Weekday{
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
	"sun": time.Sunday,
}

// DefaultWorkingDays are used when a calendar lists no working days.
var DefaultWorkingDays = []string{"mon", "tue", "wed", "thu", "fri"}

// weekOrder is the order WorkingDays reports codes in.
var weekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// NormalizeDay turns a day name such as " Monday" or "TUE" into its
// weekday. The token is lower-cased, trimmed and cut to three characters.
func NormalizeDay(day string) (time.Weekday, error) {
	code := []rune(strings.ToLower(strings.TrimSpace(day)))
	if len(code) > 3 {
		code = code[:3]
	}

	weekday, ok := weekdayCodes[string(code)]
	if !ok {
		return 0, &InvalidDayError{Day: day}
	}
	return weekday, nil
}

// weekdaySet is a set of weekdays indexed by time.Weekday.
type weekdaySet [7]bool

func (s weekdaySet) has(day time.Weekday) bool {
	return s[day]
}

func (s weekdaySet) count() int {
	n := 0
	for _, ok := range s {
		if ok {
			n++
		}
	}
	return n
}

func (s weekdaySet) codes() []string {
	codes := make([]string, 0, 7)
	for _, day := range weekOrder {
		if s[day] {
			codes = append(codes, dateutil.WeekdayCode(day))
		}
	}
	return codes
}
