package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"apptcal/internal/calendar"
	"apptcal/internal/config"
	"apptcal/internal/ics"
	appLog "apptcal/internal/log"
	"apptcal/internal/model"
	"apptcal/internal/monthtab"
	"apptcal/internal/slots"
	"apptcal/internal/workday"
)

// bookList collects repeated -book HH:MM flags.
type bookList []string

func (b *bookList) String() string { return strings.Join(*b, ",") }

func (b *bookList) Set(v string) error {
	*b = append(*b, strings.TrimSpace(v))
	return nil
}

type flagConfig struct {
	configPath   string
	month        int
	year         int
	day          string
	appointments string
	book         bookList
	export       bool
	logLevel     string
}

func main() {
	flags := parseFlags()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	// CLI flags override the file.
	if flags.appointments != "" {
		conf.Appointments = flags.appointments
	}
	if flags.logLevel != "" {
		conf.LogLevel = flags.logLevel
	}
	if lvl, ok := appLog.ParseLevel(conf.LogLevel); ok {
		appLog.SetLevel(lvl)
	} else {
		appLog.Warn("unknown log level, keeping info", "log_level", conf.LogLevel)
	}

	appLog.Debug("effective config",
		"timezone", conf.Timezone,
		"week_start", conf.WeekStart,
		"workdays", conf.Workdays,
		"holidays", len(conf.Holidays),
		"slot_limit", conf.Slots.Limit,
		"step_minutes", conf.Slots.StepMinutes,
		"appointments", conf.Appointments,
		"horizon_days", conf.HorizonDays,
	)

	if err := run(os.Stdout, conf, flags, time.Now()); err != nil {
		appLog.Error("apptcal failed", err)
		os.Exit(1)
	}
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "apptcal.yaml", "Path to config file")
	flag.IntVar(&cfg.month, "month", 0, "Month to show, 1-12 (default: current)")
	flag.IntVar(&cfg.year, "year", 0, "Year to show (default: current)")
	flag.StringVar(&cfg.day, "day", "", "Day to list slots for, YYYY-MM-DD")
	flag.StringVar(&cfg.appointments, "appointments", "", "Path to an .ics file with booked appointments (overrides config)")
	flag.Var(&cfg.book, "book", "Toggle the slot starting at HH:MM on -day (repeatable)")
	flag.BoolVar(&cfg.export, "export", false, "Print the selection as iCalendar after booking")
	flag.StringVar(&cfg.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	flag.Parse()

	return cfg
}

// run renders the month page and, when a day is given, its pickable slots.
func run(w io.Writer, conf *config.Config, flags flagConfig, now time.Time) error {
	loc, err := conf.Location()
	if err != nil {
		return err
	}
	cal, err := calendar.New(conf.FirstWeekday(), loc)
	if err != nil {
		return err
	}

	rule, err := workday.NewRule(workday.Options{
		Location: loc,
		Schedule: conf.Workdays,
		Holidays: conf.Holidays,
	})
	if err != nil {
		return err
	}

	runs, err := conf.SlotRuns()
	if err != nil {
		return err
	}
	gen := slots.NewGenerator(cal, runs, conf.SlotStep())

	month, year := int(cal.In(now).Month()), cal.In(now).Year()
	var day time.Time
	if flags.day != "" {
		d, err := time.ParseInLocation("2006-01-02", flags.day, loc)
		if err != nil {
			return fmt.Errorf("invalid -day %q: %w", flags.day, err)
		}
		if day, err = cal.Date(d.Year(), int(d.Month()), d.Day(), 12, 0); err != nil {
			return err
		}
		month, year = int(day.Month()), day.Year()
	}
	if flags.month != 0 {
		month = flags.month
	}
	if flags.year != 0 {
		year = flags.year
	}

	appts, err := loadAppointments(cal, conf, month, year, day)
	if err != nil {
		return err
	}
	byDay, err := slots.GroupByDay(cal, appts)
	if err != nil {
		return err
	}
	planner := slots.NewPlanner(cal, gen, rule.Predicate(), byDay, conf.Slots.Limit)

	if err := printMonth(w, cal, planner, rule, month, year); err != nil {
		return err
	}

	if day.IsZero() {
		if len(flags.book) > 0 {
			return errors.New("-book requires -day")
		}
		return nil
	}

	res, err := planner.Plan(day)
	if err != nil {
		return err
	}

	var selected []model.Appointment
	for _, hhmm := range flags.book {
		p, ok := findPickable(res, hhmm)
		if !ok {
			return fmt.Errorf("no slot at %s on %s", hhmm, flags.day)
		}
		intent := slots.Toggle(cal, p, selected)
		if intent.Kind == slots.None {
			appLog.Warn("slot already booked", "day", flags.day, "start", hhmm)
			continue
		}
		selected = intent.Apply(cal, selected)
		appLog.Debug("selection changed", "intent", intent.Kind, "start", intent.Appointment.Start)
	}

	printDay(w, cal, day, res, selected)

	if flags.export && len(selected) > 0 {
		fmt.Fprint(w, ics.Export(selected, now))
	}
	return nil
}

// loadAppointments reads the configured .ics file over the displayed month
// widened by the horizon, stretched to cover day when it falls outside.
// No file means no booked appointments.
func loadAppointments(cal *calendar.Calendar, conf *config.Config, month, year int, day time.Time) ([]model.Appointment, error) {
	if conf.Appointments == "" {
		return nil, nil
	}
	first, err := cal.FirstDayOfMonth(month, year)
	if err != nil {
		return nil, err
	}
	last, err := cal.LastDayOfMonth(month, year)
	if err != nil {
		return nil, err
	}
	start := startOfDay(first, cal.Location).AddDate(0, 0, -conf.HorizonDays)
	end := startOfDay(last, cal.Location).AddDate(0, 0, conf.HorizonDays+1)
	if !day.IsZero() {
		if ds := startOfDay(day, cal.Location); ds.Before(start) {
			start = ds
		}
		if de := startOfDay(day, cal.Location).AddDate(0, 0, 1); de.After(end) {
			end = de
		}
	}

	return ics.Load(ics.Source{ID: "appointments", Path: conf.Appointments}, ics.ExpandConfig{
		DisplayLocation: cal.Location,
		RangeStart:      start,
		RangeEnd:        end.Add(-time.Second),
	})
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func printMonth(w io.Writer, cal *calendar.Calendar, planner *slots.Planner, rule *workday.Rule, month, year int) error {
	grid, err := cal.MonthGrid(month, year)
	if err != nil {
		return err
	}

	// Neighbouring tabs are best effort: year 0 and 10000 have none.
	if tabs, err := monthtab.Adjacent(month, year); err == nil {
		fmt.Fprintf(w, "< %s   [%s]   %s >\n", tabs[0], tabs[1], tabs[2])
	} else {
		fmt.Fprintf(w, "[%s]\n", monthtab.Tab{Month: month, Year: year})
	}

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	for _, wd := range cal.Weekdays() {
		fmt.Fprintf(tw, "%s\t", wd.String()[:2])
	}
	fmt.Fprintln(tw)
	for _, row := range grid.Rows {
		for _, cell := range row {
			fmt.Fprintf(tw, "%s\t", cellText(cell, planner, rule))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// cellText marks days with appointments "*" and closed days "-".
func cellText(cell calendar.Cell, planner *slots.Planner, rule *workday.Rule) string {
	if !cell.InMonth {
		return ""
	}
	s := fmt.Sprintf("%d", cell.Date.Day())
	switch {
	case len(planner.AppointmentsOn(cell.Date)) > 0:
		s += "*"
	case !rule.IsWorkday(cell.Date):
		s += "-"
	}
	return s
}

func printDay(w io.Writer, cal *calendar.Calendar, day time.Time, res slots.Result, selected []model.Appointment) {
	fmt.Fprintf(w, "\n%s\n", day.Format("Monday, January 2, 2006"))
	if len(res.Pickables) == 0 {
		fmt.Fprintln(w, "no slots")
		return
	}

	chosen := make(map[calendar.DayTimeKey]bool, len(selected))
	for _, a := range selected {
		chosen[a.ID(cal)] = true
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, p := range res.Pickables {
		state := "open"
		switch {
		case !p.IsAvailable():
			state = "booked"
		case chosen[p.ID(cal)]:
			state = "selected"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", slots.Label(p.Start()), slots.Label(p.End()), state)
	}
	tw.Flush()
	fmt.Fprintf(w, "%d of %d open\n", slots.Remaining(res, selected), res.Available)
}

// findPickable matches "HH:MM" against the pickable starts.
func findPickable(res slots.Result, hhmm string) (model.Pickable, bool) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return model.Pickable{}, false
	}
	for _, p := range res.Pickables {
		s := p.Start()
		if s.Hour() == t.Hour() && s.Minute() == t.Minute() {
			return p, true
		}
	}
	return model.Pickable{}, false
}
