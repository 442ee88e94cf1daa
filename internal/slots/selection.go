package slots

import (
	"strings"
	"time"

	"apptcal/internal/calendar"
	"apptcal/internal/model"
)

// IntentKind says what selecting a pickable would do.
type IntentKind uint8

const (
	// None means the position cannot be selected (booked by someone else).
	None IntentKind = iota
	// Book adds Intent.Appointment to the selection.
	Book
	// Unbook removes the selected appointment with the same start.
	Unbook
)

func (k IntentKind) String() string {
	switch k {
	case Book:
		return "book"
	case Unbook:
		return "unbook"
	default:
		return "none"
	}
}

// Intent is the mutation the caller should apply to its own selection.
type Intent struct {
	Kind        IntentKind
	Appointment model.Appointment
}

// Toggle computes the effect of selecting p given the appointments the user
// has selected so far. Selecting an already selected start un-books it;
// selecting an open slot books a new appointment at its start; a position
// booked outside the selection yields None.
func Toggle(cal *calendar.Calendar, p model.Pickable, selected []model.Appointment) Intent {
	id := p.ID(cal)
	for _, a := range selected {
		if a.ID(cal) == id {
			return Intent{Kind: Unbook, Appointment: a}
		}
	}
	if p.Kind != model.Available {
		return Intent{Kind: None}
	}
	return Intent{
		Kind:        Book,
		Appointment: model.Appointment{Start: p.Slot.Start, End: p.Slot.End},
	}
}

// Apply returns the selection after the intent. The input is not modified.
func (in Intent) Apply(cal *calendar.Calendar, selected []model.Appointment) []model.Appointment {
	out := make([]model.Appointment, 0, len(selected)+1)
	switch in.Kind {
	case Book:
		out = append(out, selected...)
		out = append(out, in.Appointment)
	case Unbook:
		id := in.Appointment.ID(cal)
		for _, a := range selected {
			if a.ID(cal) != id {
				out = append(out, a)
			}
		}
	default:
		out = append(out, selected...)
	}
	return out
}

// Remaining is the number of open positions left once the current selection
// is taken into account. It never goes below zero.
func Remaining(res Result, selected []model.Appointment) int {
	n := res.Available - len(selected)
	if n < 0 {
		return 0
	}
	return n
}

// Label renders a slot start as a compact 12-hour label, e.g. "8:30am".
func Label(t time.Time) string {
	return strings.ToLower(t.Format("3:04PM"))
}
