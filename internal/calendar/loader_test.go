package calendar

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeCalendar(t *testing.T, dir, file, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(body), 0o644))
}

func TestDecodeConfig(t *testing.T) {
	doc := `
working_days:
  - Monday
  - tuesday
holidays:
  - 2014-06-12
  - "1st Jan, 2015"
extra_working_dates:
  - 2014-06-14
`
	cfg, err := DecodeConfig(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, []string{"Monday", "tuesday"}, cfg.WorkingDays)
	require.Equal(t, []string{"2014-06-12", "1st Jan, 2015"}, cfg.Holidays)
	require.Equal(t, []string{"2014-06-14"}, cfg.ExtraWorkingDates)
}

func TestDecodeConfig_Empty(t *testing.T) {
	for _, doc := range []string{"", "~\n", "# nothing here\n"} {
		cfg, err := DecodeConfig(strings.NewReader(doc))
		require.NoError(t, err, "document %q", doc)
		require.Empty(t, cfg.WorkingDays)
		require.Empty(t, cfg.Holidays)
	}
}

func TestDecodeConfig_UnknownKeys(t *testing.T) {
	_, err := DecodeConfig(strings.NewReader("holidays: []\nbusiness_days: [mon]\n"))
	require.ErrorIs(t, err, ErrUnknownKeys)
	require.Contains(t, err.Error(), "business_days")
	require.Contains(t, err.Error(), "holidays, working_days, extra_working_dates")
}

func TestDecodeConfig_NotMapping(t *testing.T) {
	_, err := DecodeConfig(strings.NewReader("- mon\n- tue\n"))
	require.Error(t, err)
}

func TestFSSource_Find(t *testing.T) {
	src := NewFSSource("test", fstest.MapFS{
		"bacs.yml":    {Data: []byte("holidays:\n  - 2014-12-25\n")},
		"target.yaml": {Data: []byte("working_days: [mon, tue, wed, thu, fri]\n")},
	})

	cfg, err := src.Find("bacs")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, "bacs", cfg.Name)
	require.Equal(t, []string{"2014-12-25"}, cfg.Holidays)

	cfg, err = src.Find("target")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	cfg, err = src.Find("missing")
	require.NoError(t, err)
	require.Nil(t, cfg)
}

func TestFSSource_InvalidName(t *testing.T) {
	src := NewFSSource("test", fstest.MapFS{})
	for _, name := range []string{"", "../etc/passwd", "a/b", `a\b`, ".."} {
		_, err := src.Find(name)
		require.Error(t, err, "name %q", name)
	}
}

func TestBuiltinSource(t *testing.T) {
	cfg, err := NewBuiltinSource().Find("weekdays")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	cal, err := New(*cfg)
	require.NoError(t, err)
	require.Equal(t, []string{"mon", "tue", "wed", "thu", "fri"}, cal.WorkingDays())
	require.Empty(t, cal.Holidays())
}

func TestMapSource(t *testing.T) {
	src := MapSource{"custom": {WorkingDays: []string{"sat"}}}

	cfg, err := src.Find("custom")
	require.NoError(t, err)
	require.Equal(t, "custom", cfg.Name)
	require.Equal(t, "", src["custom"].Name)

	cfg, err = src.Find("other")
	require.NoError(t, err)
	require.Nil(t, cfg)
}

func TestLoader_SearchOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeCalendar(t, first, "shared.yml", "working_days: [sat, sun]\n")
	writeCalendar(t, second, "shared.yml", "working_days: [mon]\n")
	writeCalendar(t, second, "only-second.yml", "holidays: [2014-12-25]\n")

	loader := NewDefaultLoader([]string{first, second}, 2014, 2014, zap.NewNop())

	cal, err := loader.Load("shared")
	require.NoError(t, err)
	require.Equal(t, "shared", cal.Name())
	require.Equal(t, []string{"sat", "sun"}, cal.WorkingDays())

	cal, err = loader.Load("only-second")
	require.NoError(t, err)
	require.Len(t, cal.Holidays(), 1)

	cal, err = loader.Load("weekdays")
	require.NoError(t, err)
	require.Equal(t, "weekdays", cal.Name())
}

func TestLoader_OverridesBeforeDirectories(t *testing.T) {
	dir := t.TempDir()
	writeCalendar(t, dir, "bank.yml", "working_days: [mon]\n")

	loader := NewLoader(nil,
		MapSource{"bank": {WorkingDays: []string{"tue"}}},
		NewDirSource(dir),
	)

	cal, err := loader.Load("bank")
	require.NoError(t, err)
	require.Equal(t, []string{"tue"}, cal.WorkingDays())
}

func TestLoader_NotFound(t *testing.T) {
	loader := NewLoader(zap.NewNop(), NewDirSource(t.TempDir()))

	_, err := loader.Load("invalid-calendar")
	require.ErrorIs(t, err, ErrCalendarNotFound)
	require.Contains(t, err.Error(), "invalid-calendar")
}

func TestLoader_InvalidDefinition(t *testing.T) {
	dir := t.TempDir()
	writeCalendar(t, dir, "broken.yml", "working_days: [mon]\nextra_working_dates: [2018-03-26]\n")
	writeCalendar(t, dir, "typo.yml", "holiday: [2018-03-26]\n")

	loader := NewLoader(zap.NewNop(), NewDirSource(dir), NewBuiltinSource())

	_, err := loader.Load("broken")
	require.ErrorIs(t, err, ErrExtraWorkingDateOnWorkingDay)

	_, err = loader.Load("typo")
	require.ErrorIs(t, err, ErrUnknownKeys)
	require.False(t, errors.Is(err, ErrCalendarNotFound))
}
