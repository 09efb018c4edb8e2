package calendar

import (
	"fmt"

	cal "github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// holidaySets are the named holiday rules offered as built-in calendars.
var holidaySets = map[string][]*cal.Holiday{
	"us": {
		us.NewYear,
		us.MlkDay,
		us.PresidentsDay,
		us.MemorialDay,
		us.Juneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	},
}

// HolidaySetSource serves calendars whose holidays are computed from
// holiday rules. Each rule is expanded to its observed date for every year
// in the window, so the resulting calendar is still a finite list of dates
// on a Monday to Friday week.
type HolidaySetSource struct {
	firstYear int
	lastYear  int
}

// NewHolidaySetSource creates a source expanding holidays for the years
// firstYear through lastYear inclusive.
func NewHolidaySetSource(firstYear, lastYear int) *HolidaySetSource {
	return &HolidaySetSource{firstYear: firstYear, lastYear: lastYear}
}

// Name returns the source's description.
func (s *HolidaySetSource) Name() string {
	return fmt.Sprintf("holiday sets %d-%d", s.firstYear, s.lastYear)
}

// Find expands the named holiday set.
func (s *HolidaySetSource) Find(name string) (*Config, error) {
	rules, ok := holidaySets[name]
	if !ok {
		return nil, nil
	}
	if s.firstYear > s.lastYear {
		return nil, fmt.Errorf("invalid holiday year window %d-%d", s.firstYear, s.lastYear)
	}

	seen := make(map[Date]struct{})
	for year := s.firstYear; year <= s.lastYear; year++ {
		for _, rule := range rules {
			_, observed := rule.Calc(year)
			if observed.IsZero() {
				continue
			}
			seen[DateOf(observed)] = struct{}{}
		}
	}

	holidays := make([]string, 0, len(seen))
	for _, d := range sortedDates(seen) {
		holidays = append(holidays, d.String())
	}

	return &Config{
		Name:        name,
		WorkingDays: append([]string(nil), DefaultWorkingDays...),
		Holidays:    holidays,
	}, nil
}
