// Package export renders calendar exception dates as iCalendar data.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	ics "github.com/emersion/go-ical"
	"github.com/username/bizcal/internal/calendar"
)

const productID = "-//bizcal//bizcal//EN"

// Event summaries of exported dates.
const (
	SummaryHoliday         = "Holiday"
	SummaryExtraWorkingDay = "Extra working day"
)

// ErrNoDates is returned when the period holds nothing to export.
var ErrNoDates = errors.New("no holidays or extra working dates in period")

type entry struct {
	date    calendar.Date
	summary string
}

// Build returns an iCalendar with one all-day event per holiday and extra
// working date of cal falling in [from, to).
func Build(cal *calendar.Calendar, from, to calendar.Date, stamp time.Time) *ics.Calendar {
	var entries []entry
	for _, d := range cal.Holidays() {
		if inRange(d, from, to) {
			entries = append(entries, entry{date: d, summary: SummaryHoliday})
		}
	}
	for _, d := range cal.ExtraWorkingDates() {
		if inRange(d, from, to) {
			entries = append(entries, entry{date: d, summary: SummaryExtraWorkingDay})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].date.Before(entries[j].date)
	})

	name := cal.Name()
	if name == "" {
		name = "calendar"
	}

	out := ics.NewCalendar()
	out.Props.SetText(ics.PropVersion, "2.0")
	out.Props.SetText(ics.PropProductID, productID)
	out.Props.SetText("X-WR-CALNAME", name)

	for _, e := range entries {
		comp := ics.NewComponent(ics.CompEvent)
		comp.Props.SetText(ics.PropUID, fmt.Sprintf("%s-%s@bizcal", name, e.date))
		comp.Props.SetText(ics.PropSummary, e.summary)
		comp.Props.SetDateTime(ics.PropDateTimeStamp, stamp)
		comp.Props.SetDate(ics.PropDateTimeStart, e.date.Time())
		comp.Props.SetDate(ics.PropDateTimeEnd, e.date.AddDays(1).Time())
		comp.Props.SetText("TRANSP", "TRANSPARENT")
		out.Children = append(out.Children, comp)
	}

	return out
}

// WriteICS encodes the exception dates of cal in [from, to) to w.
func WriteICS(w io.Writer, cal *calendar.Calendar, from, to calendar.Date) error {
	out := Build(cal, from, to, time.Now().UTC())
	if len(out.Children) == 0 {
		return ErrNoDates
	}
	if err := ics.NewEncoder(w).Encode(out); err != nil {
		return fmt.Errorf("encode ICS: %w", err)
	}
	return nil
}

// WriteICSFile writes the export to path atomically.
// It writes to a temp file first, then renames to the final path.
func WriteICSFile(path string, cal *calendar.Calendar, from, to calendar.Date) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	var buf bytes.Buffer
	if err := WriteICS(&buf, cal, from, to); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

func inRange(d, from, to calendar.Date) bool {
	return !d.Before(from) && d.Before(to)
}
