package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/username/bizcal/internal/calendar"
	"github.com/username/bizcal/internal/export"
	"github.com/username/bizcal/pkg/dateutil"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// errNotBusinessDay makes `check --exit-code` fail on non-business days.
var errNotBusinessDay = errors.New("not a business day")

type operation int

const (
	opRollForward operation = iota
	opRollBackward
	opNext
	opPrevious
	opAdd
	opSubtract
)

// dayArg is a command-line date or "today". Inputs with a clock, or any
// input when --time is set, use the DateTime adapter.
type dayArg struct {
	date  calendar.Date
	at    calendar.DateTime
	timed bool
}

func parseDayArg(s string) (dayArg, error) {
	if s == "today" {
		t := dateutil.Today()
		if useTime {
			return dayArg{at: calendar.At(t), timed: true}, nil
		}
		return dayArg{date: calendar.DateOf(t)}, nil
	}

	t, err := dateutil.ParseDate(s)
	if err != nil {
		return dayArg{}, fmt.Errorf("invalid date: %w", err)
	}
	if useTime || dateutil.HasClock(s) {
		return dayArg{at: calendar.At(t), timed: true}, nil
	}
	return dayArg{date: calendar.DateOf(t)}, nil
}

func (a dayArg) dated() calendar.Dated {
	if a.timed {
		return a.at
	}
	return a.date
}

// apply runs op with the adapter the argument selected.
func apply(cal *calendar.Calendar, arg dayArg, op operation, n int) string {
	if arg.timed {
		return shift(cal, arg.at, op, n).String()
	}
	return shift(cal, arg.date, op, n).String()
}

func shift[T calendar.Day[T]](cal *calendar.Calendar, day T, op operation, n int) T {
	switch op {
	case opRollBackward:
		return calendar.RollBackward(cal, day)
	case opNext:
		return calendar.NextBusinessDay(cal, day)
	case opPrevious:
		return calendar.PreviousBusinessDay(cal, day)
	case opAdd:
		return calendar.AddBusinessDays(cal, day, n)
	case opSubtract:
		return calendar.SubtractBusinessDays(cal, day, n)
	default:
		return calendar.RollForward(cal, day)
	}
}

// runShift builds the RunE of the single-date commands.
func runShift(op operation, withDelta bool) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		arg, err := parseDayArg(args[0])
		if err != nil {
			return err
		}

		n := 0
		if withDelta {
			n, err = strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid number of business days %q: %w", args[1], err)
			}
		}

		cal, err := openCalendar()
		if err != nil {
			return err
		}

		result := apply(cal, arg, op, n)
		logger.Debug("Date shifted",
			zap.String("calendar", cal.Name()),
			zap.String("input", args[0]),
			zap.Int("delta", n),
			zap.String("result", result))

		fmt.Fprintln(cmd.OutOrStdout(), result)
		return nil
	}
}

func checkCmd() *cobra.Command {
	var exitCode bool

	cmd := &cobra.Command{
		Use:   "check <date>",
		Short: "Show whether a date is a business day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg, err := parseDayArg(args[0])
			if err != nil {
				return err
			}
			cal, err := openCalendar()
			if err != nil {
				return err
			}

			day := arg.dated()
			date := day.CalendarDate()
			business := cal.IsBusinessDay(day)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "  Date:          %s (%s)\n", date, date.Weekday())
			fmt.Fprintf(out, "  Calendar:      %s\n", cal.Name())
			fmt.Fprintf(out, "  Business day:  %s\n", yesNo(business))
			fmt.Fprintf(out, "  Working day:   %s\n", yesNo(cal.IsWorkingDay(day)))
			fmt.Fprintf(out, "  Holiday:       %s\n", yesNo(cal.IsHoliday(day)))

			if exitCode && !business {
				return errNotBusinessDay
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "Exit with status 1 when the date is not a business day")

	return cmd
}

func rollCmd() *cobra.Command {
	var backward bool

	cmd := &cobra.Command{
		Use:   "roll <date>",
		Short: "Roll a date to the nearest business day",
		Long:  "Return the date itself if it is a business day, otherwise the next (or with --backward the previous) business day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op := opRollForward
			if backward {
				op = opRollBackward
			}
			return runShift(op, false)(cmd, args)
		},
	}

	cmd.Flags().BoolVarP(&backward, "backward", "b", false, "Roll backward instead of forward")

	return cmd
}

func nextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next <date>",
		Short: "First business day strictly after a date",
		Args:  cobra.ExactArgs(1),
		RunE:  runShift(opNext, false),
	}
}

func prevCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prev <date>",
		Short: "Last business day strictly before a date",
		Args:  cobra.ExactArgs(1),
		RunE:  runShift(opPrevious, false),
	}
}

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <date> <n>",
		Short: "Add business days to a date",
		Long:  "Roll the date forward, then move n business days ahead. Negative n subtracts (pass it after --).",
		Args:  cobra.ExactArgs(2),
		RunE:  runShift(opAdd, true),
	}
}

func subtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subtract <date> <n>",
		Short: "Subtract business days from a date",
		Long:  "Roll the date backward, then move n business days back. Negative n adds (pass it after --).",
		Args:  cobra.ExactArgs(2),
		RunE:  runShift(opSubtract, true),
	}
}

func betweenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "between <from> <to>",
		Short: "Count business days from the start of <from> to the start of <to>",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseDayArg(args[0])
			if err != nil {
				return err
			}
			to, err := parseDayArg(args[1])
			if err != nil {
				return err
			}
			cal, err := openCalendar()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cal.BusinessDaysBetween(from.dated(), to.dated()))
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var fromStr string
	var toStr string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export holidays and extra working dates as iCalendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := calendar.ParseDate(fromStr)
			if err != nil {
				return fmt.Errorf("invalid from date: %w", err)
			}
			to, err := calendar.ParseDate(toStr)
			if err != nil {
				return fmt.Errorf("invalid to date: %w", err)
			}
			cal, err := openCalendar()
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				return export.WriteICS(cmd.OutOrStdout(), cal, from, to)
			}
			if err := export.WriteICSFile(output, cal, from, to); err != nil {
				return err
			}

			logger.Info("Calendar exported",
				zap.String("calendar", cal.Name()),
				zap.String("output", output),
				zap.Stringer("from", from),
				zap.Stringer("to", to))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "First date of the period (inclusive)")
	cmd.Flags().StringVar(&toStr, "to", "", "End of the period (exclusive)")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "Output file, - for stdout")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

// calendarDocument is the normalized form printed by `show`.
type calendarDocument struct {
	WorkingDays       []string `yaml:"working_days"`
	Holidays          []string `yaml:"holidays"`
	ExtraWorkingDates []string `yaml:"extra_working_dates"`
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the normalized calendar definition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := openCalendar()
			if err != nil {
				return err
			}
			return writeDocument(cmd.OutOrStdout(), cal)
		},
	}
}

func writeDocument(w io.Writer, cal *calendar.Calendar) error {
	doc := calendarDocument{
		WorkingDays:       cal.WorkingDays(),
		Holidays:          dateStrings(cal.Holidays()),
		ExtraWorkingDates: dateStrings(cal.ExtraWorkingDates()),
	}

	fmt.Fprintf(w, "# %s\n", cal.Name())
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return enc.Close()
}

func dateStrings(dates []calendar.Date) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.String()
	}
	return out
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// exitStatus maps command errors to a process exit status.
func exitStatus(err error) int {
	if err == nil {
		return 0
	}
	if !errors.Is(err, errNotBusinessDay) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return 1
}
