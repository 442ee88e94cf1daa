package slots

import (
	"fmt"
	"time"

	"apptcal/internal/calendar"
	"apptcal/internal/model"
	"apptcal/internal/workday"
)

// DefaultLimit caps how many slot positions are offered per day.
const DefaultLimit = 6

// Result is the merged view of one day.
type Result struct {
	// Pickables keeps the ascending order of the generated slots.
	Pickables []model.Pickable
	// Available counts the positions that resolved to an open slot.
	Available int
}

// Merge offers the first limit slots (all of them when limit <= 0). A slot
// whose clock time (hour and minute) matches an appointment is replaced by
// that appointment; each appointment fills at most one position. Neither
// input slice is modified.
func Merge(cal *calendar.Calendar, slots []model.TimeSlot, appointmentsForDay []model.Appointment, limit int) Result {
	if limit > 0 && len(slots) > limit {
		slots = slots[:limit]
	}

	remaining := append([]model.Appointment(nil), appointmentsForDay...)
	res := Result{Pickables: make([]model.Pickable, 0, len(slots))}

	for _, slot := range slots {
		idx := -1
		for i, a := range remaining {
			if cal.IsSameDate(a.Start, slot.Start, calendar.TimeOfDay) {
				idx = i
				break
			}
		}
		if idx >= 0 {
			res.Pickables = append(res.Pickables, model.BookedPickable(remaining[idx]))
			remaining = append(remaining[:idx], remaining[idx+1:]...)
			continue
		}
		res.Pickables = append(res.Pickables, model.AvailablePickable(slot))
		res.Available++
	}
	return res
}

// GroupByDay indexes appointments by the DayKey of their start.
func GroupByDay(cal *calendar.Calendar, appts []model.Appointment) (map[calendar.DayKey][]model.Appointment, error) {
	out := make(map[calendar.DayKey][]model.Appointment)
	for _, a := range appts {
		k, err := cal.DayKey(a.Start)
		if err != nil {
			return nil, fmt.Errorf("slots: appointment %q: %w", a.UID, err)
		}
		out[k] = append(out[k], a)
	}
	return out, nil
}

// Planner answers "what can be picked on this day" from a generator, a
// workday predicate, and appointments grouped by day.
type Planner struct {
	cal       *calendar.Calendar
	gen       *Generator
	isWorkday workday.Predicate
	byDay     map[calendar.DayKey][]model.Appointment
	limit     int
}

// NewPlanner wires the pieces together. byDay is read, never modified.
func NewPlanner(cal *calendar.Calendar, gen *Generator, isWorkday workday.Predicate, byDay map[calendar.DayKey][]model.Appointment, limit int) *Planner {
	return &Planner{cal: cal, gen: gen, isWorkday: isWorkday, byDay: byDay, limit: limit}
}

// Plan merges the day's generated slots with its booked appointments.
func (p *Planner) Plan(day time.Time) (Result, error) {
	k, err := p.cal.DayKey(day)
	if err != nil {
		return Result{}, err
	}
	slots := p.gen.Generate(day, p.isWorkday)
	return Merge(p.cal, slots, p.byDay[k], p.limit), nil
}

// AppointmentsOn returns the booked appointments for the day of t.
func (p *Planner) AppointmentsOn(t time.Time) []model.Appointment {
	k, err := p.cal.DayKey(t)
	if err != nil {
		return nil
	}
	return p.byDay[k]
}
