package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHolidaySetSource_US(t *testing.T) {
	cfg, err := NewHolidaySetSource(2014, 2014).Find("us")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, "us", cfg.Name)
	require.Equal(t, DefaultWorkingDays, cfg.WorkingDays)

	for _, want := range []string{
		"2014-01-01",
		"2014-01-20",
		"2014-02-17",
		"2014-05-26",
		"2014-07-04",
		"2014-09-01",
		"2014-11-27",
		"2014-12-25",
	} {
		require.Contains(t, cfg.Holidays, want)
	}
	require.NotContains(t, cfg.Holidays, "2013-12-25")
	require.NotContains(t, cfg.Holidays, "2015-01-01")
}

func TestHolidaySetSource_ObservedDates(t *testing.T) {
	cfg, err := NewHolidaySetSource(2020, 2020).Find("us")
	require.NoError(t, err)

	// July 4th 2020 was a Saturday.
	require.Contains(t, cfg.Holidays, "2020-07-03")
	require.NotContains(t, cfg.Holidays, "2020-07-04")
}

func TestHolidaySetSource_Unknown(t *testing.T) {
	cfg, err := NewHolidaySetSource(2014, 2014).Find("atlantis")
	require.NoError(t, err)
	require.Nil(t, cfg)
}

func TestHolidaySetSource_InvalidWindow(t *testing.T) {
	_, err := NewHolidaySetSource(2015, 2014).Find("us")
	require.Error(t, err)
}

func TestLoader_HolidaySet(t *testing.T) {
	loader := NewLoader(zap.NewNop(), NewBuiltinSource(), NewHolidaySetSource(2014, 2015))

	cal, err := loader.Load("us")
	require.NoError(t, err)
	require.Equal(t, "us", cal.Name())

	require.False(t, cal.IsBusinessDay(d(2014, time.July, 4)))
	require.True(t, cal.IsBusinessDay(d(2014, time.July, 7)))
	require.Equal(t, 4, cal.BusinessDaysBetween(d(2014, time.July, 1), d(2014, time.July, 8)))
	require.Equal(t, d(2014, time.December, 26), NextBusinessDay(cal, d(2014, time.December, 24)))
}
