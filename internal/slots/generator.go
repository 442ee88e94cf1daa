// Package slots turns a day into bookable half-hour positions and merges
// them with the appointments already booked on that day.
package slots

import (
	"slices"
	"time"

	"apptcal/internal/calendar"
	"apptcal/internal/model"
	"apptcal/internal/workday"
)

// DefaultStep is the spacing between consecutive slot starts.
const DefaultStep = 30 * time.Minute

const minutesPerDay = 24 * 60

// Run is a contiguous block of slots starting at StartHour:StartMinute.
type Run struct {
	StartHour   int
	StartMinute int
	Duration    time.Duration
}

// DefaultRuns is the workday layout: a morning block from 08:00 and an
// afternoon block from 13:00, four hours each.
var DefaultRuns = []Run{
	{StartHour: 8, Duration: 4 * time.Hour},
	{StartHour: 13, Duration: 4 * time.Hour},
}

// Generator produces the slot sequence for a day.
type Generator struct {
	cal  *calendar.Calendar
	runs []Run
	step time.Duration
}

// NewGenerator returns a Generator. Empty runs means DefaultRuns; the step
// is truncated to whole minutes and anything under a minute means
// DefaultStep.
func NewGenerator(cal *calendar.Calendar, runs []Run, step time.Duration) *Generator {
	if len(runs) == 0 {
		runs = DefaultRuns
	}
	step = step.Truncate(time.Minute)
	if step <= 0 {
		step = DefaultStep
	}
	return &Generator{cal: cal, runs: append([]Run(nil), runs...), step: step}
}

// Generate returns the slots for the calendar day of day, ascending by start.
// It returns nil when isWorkday rejects the day; a nil isWorkday accepts
// every day. Only the calendar fields of day are used.
func (g *Generator) Generate(day time.Time, isWorkday workday.Predicate) []model.TimeSlot {
	day = g.cal.In(day)
	if isWorkday != nil && !isWorkday(day) {
		return nil
	}

	y, m, d := day.Date()
	stepMinutes := int(g.step / time.Minute)

	var out []model.TimeSlot
	for _, r := range g.runs {
		n := int(r.Duration / g.step)
		for i := 0; i < n; i++ {
			// Wall-clock minutes are normalized by time.Date, so each slot
			// lands on its nominal clock time even across a DST change.
			minute := r.StartMinute + i*stepMinutes
			if r.StartHour*60+minute+stepMinutes > minutesPerDay {
				// A run never spills into the next calendar day.
				break
			}
			start := time.Date(y, m, d, r.StartHour, minute, 0, 0, g.cal.Location)
			end := time.Date(y, m, d, r.StartHour, minute+stepMinutes, 0, 0, g.cal.Location)
			out = append(out, model.TimeSlot{Start: start, End: end})
		}
	}

	// Runs may be configured out of order or overlapping.
	slices.SortFunc(out, func(a, b model.TimeSlot) int { return a.Start.Compare(b.Start) })
	return slices.CompactFunc(out, func(a, b model.TimeSlot) bool { return a.Start.Equal(b.Start) })
}
