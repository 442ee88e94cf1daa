// Package workday decides which days accept bookings.
package workday

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	appLog "apptcal/internal/log"
)

// DefaultSchedule fires on every minute of Monday through Friday.
const DefaultSchedule = "* * * * MON-FRI"

const holidayLayout = "2006-01-02"

// Predicate reports whether bookings are accepted on the day of t.
type Predicate func(t time.Time) bool

// Weekdays rejects Saturdays and Sundays and accepts everything else.
func Weekdays(t time.Time) bool {
	return !isWeekend(t)
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Options configures a Rule.
type Options struct {
	// Location is the zone days are evaluated in. Nil means UTC.
	Location *time.Location

	// Schedule is a standard 5-field cron expression. A day is open when
	// the schedule fires at least once during it. Empty means DefaultSchedule.
	// Use the day-of-month / month / day-of-week fields to express closures,
	// e.g. "* * * 1-7,9-12 MON-FRI" closes August.
	Schedule string

	// Holidays lists closed days as YYYY-MM-DD.
	Holidays []string
}

// Rule is a workday predicate combining the weekend rule, a cron schedule and
// a holiday list.
type Rule struct {
	loc      *time.Location
	schedule cron.Schedule
	holidays map[string]struct{}
}

// NewRule parses opts. Invalid cron expressions and malformed holiday dates
// are errors.
func NewRule(opts Options) (*Rule, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	expr := strings.TrimSpace(opts.Schedule)
	if expr == "" {
		expr = DefaultSchedule
	}
	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("workday: parse schedule %q: %w", expr, err)
	}

	holidays := make(map[string]struct{}, len(opts.Holidays))
	for _, h := range opts.Holidays {
		h = strings.TrimSpace(h)
		d, err := time.ParseInLocation(holidayLayout, h, loc)
		if err != nil {
			return nil, fmt.Errorf("workday: parse holiday %q: %w", h, err)
		}
		holidays[d.Format(holidayLayout)] = struct{}{}
	}

	appLog.Debug("workday rule ready", "schedule", expr, "holidays", len(holidays), "timezone", loc.String())

	return &Rule{loc: loc, schedule: sched, holidays: holidays}, nil
}

// IsWorkday reports whether the calendar day of t (in the rule's location)
// accepts bookings.
func (r *Rule) IsWorkday(t time.Time) bool {
	t = t.In(r.loc)
	if isWeekend(t) {
		return false
	}
	if _, closed := r.holidays[t.Format(holidayLayout)]; closed {
		return false
	}

	y, m, d := t.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, r.loc)
	nextDay := time.Date(y, m, d+1, 0, 0, 0, 0, r.loc)
	// Next returns the first activation strictly after its argument.
	next := r.schedule.Next(dayStart.Add(-time.Second))
	return !next.IsZero() && next.Before(nextDay)
}

// Predicate exposes the rule as a Predicate.
func (r *Rule) Predicate() Predicate {
	return r.IsWorkday
}
