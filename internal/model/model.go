package model

import (
	"time"

	"apptcal/internal/calendar"
)

// Appointment is an interval already booked in the caller's store. The core
// only reads appointments; it never persists them.
type Appointment struct {
	SourceID string // where the appointment was loaded from (e.g. ICS file ID)
	UID      string // iCalendar UID, empty for appointments created by Toggle

	Summary  string
	Location string

	// Start / End are in the calendar's display location. Start is the
	// identity: two appointments starting in the same minute are the same.
	Start time.Time
	End   time.Time
}

// TimeSlot is a bookable candidate interval generated for one day. It is
// never stored; it exists only for the duration of a query.
type TimeSlot struct {
	Start time.Time
	End   time.Time
}

// Kind tags which variant a Pickable holds.
type Kind uint8

const (
	// Available is an open slot (Pickable.Slot is set).
	Available Kind = iota + 1
	// Booked is an existing appointment in a slot position (Pickable.Appointment is set).
	Booked
)

func (k Kind) String() string {
	switch k {
	case Available:
		return "available"
	case Booked:
		return "booked"
	default:
		return "unknown"
	}
}

// Pickable is one offerable position on a day: either an open TimeSlot or an
// existing Appointment. Switch on Kind; only the matching field is set.
type Pickable struct {
	Kind        Kind
	Slot        TimeSlot
	Appointment Appointment
}

func AvailablePickable(s TimeSlot) Pickable {
	return Pickable{Kind: Available, Slot: s}
}

func BookedPickable(a Appointment) Pickable {
	return Pickable{Kind: Booked, Appointment: a}
}

// Start returns the start of whichever variant is held.
func (p Pickable) Start() time.Time {
	if p.Kind == Booked {
		return p.Appointment.Start
	}
	return p.Slot.Start
}

// End returns the end of whichever variant is held.
func (p Pickable) End() time.Time {
	if p.Kind == Booked {
		return p.Appointment.End
	}
	return p.Slot.End
}

func (p Pickable) IsAvailable() bool {
	return p.Kind == Available
}

// ID is the minute-precision identity shared by slots and appointments.
func (p Pickable) ID(cal *calendar.Calendar) calendar.DayTimeKey {
	return cal.DayTimeKey(p.Start())
}

// ID is the minute-precision identity of the appointment.
func (a Appointment) ID(cal *calendar.Calendar) calendar.DayTimeKey {
	return cal.DayTimeKey(a.Start)
}
