package calendar

import "time"

// Component selects which fields IsSameDate compares.
type Component uint8

const (
	Year Component = 1 << iota
	Month
	Day
	Hour
	Minute
	Second

	// DayComponents compares calendar days.
	DayComponents = Year | Month | Day
	// TimeOfDay compares the clock position only, ignoring the day.
	TimeOfDay = Hour | Minute
)

// IsSameDate reports whether a and b agree, in the calendar's location, on
// every component in comps. An empty set is trivially true.
func (c *Calendar) IsSameDate(a, b time.Time, comps Component) bool {
	a, b = c.In(a), c.In(b)
	if comps&Year != 0 && a.Year() != b.Year() {
		return false
	}
	if comps&Month != 0 && a.Month() != b.Month() {
		return false
	}
	if comps&Day != 0 && a.Day() != b.Day() {
		return false
	}
	if comps&Hour != 0 && a.Hour() != b.Hour() {
		return false
	}
	if comps&Minute != 0 && a.Minute() != b.Minute() {
		return false
	}
	if comps&Second != 0 && a.Second() != b.Second() {
		return false
	}
	return true
}
