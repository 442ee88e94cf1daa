package calendar

import "time"

// FirstDayOfWeekContaining returns t moved back to the first weekday of its
// week. Time of day is preserved.
func (c *Calendar) FirstDayOfWeekContaining(t time.Time) time.Time {
	t = c.In(t)
	return t.AddDate(0, 0, -c.weekdayOffset(t.Weekday()))
}

// weekdayOffset is how many days wd lies after the first weekday.
func (c *Calendar) weekdayOffset(wd time.Weekday) int {
	return (int(wd) - int(c.FirstWeekday) + 7) % 7
}

// FirstDayOfMonth returns day 1 of the month at 12:00.
func (c *Calendar) FirstDayOfMonth(month, year int) (time.Time, error) {
	if err := validateYearMonth(month, year); err != nil {
		return time.Time{}, err
	}
	return time.Date(year, time.Month(month), 1, anchorHour, 0, 0, 0, c.Location), nil
}

// LastDayOfMonth is the first day of the following month minus one day.
func (c *Calendar) LastDayOfMonth(month, year int) (time.Time, error) {
	if err := validateYearMonth(month, year); err != nil {
		return time.Time{}, err
	}
	nextMonth, nextYear := NextMonth(month, year)
	// Not validated: December 9999 rolls into year 10000 here, which is
	// fine as an intermediate.
	first := time.Date(nextYear, time.Month(nextMonth), 1, anchorHour, 0, 0, 0, c.Location)
	return first.AddDate(0, 0, -1), nil
}

// NextMonth returns the month after (month, year), wrapping December.
func NextMonth(month, year int) (int, int) {
	if month < 12 {
		return month + 1, year
	}
	return 1, year + 1
}

// PrevMonth returns the month before (month, year), wrapping January.
func PrevMonth(month, year int) (int, int) {
	if month > 1 {
		return month - 1, year
	}
	return 12, year - 1
}

// NumberOfWeeksInMonth counts the week rows the month spans under the
// calendar's first weekday: 4, 5 or 6.
func (c *Calendar) NumberOfWeeksInMonth(month, year int) (int, error) {
	first, err := c.FirstDayOfMonth(month, year)
	if err != nil {
		return 0, err
	}
	days := DaysIn(time.Month(month), year)
	return (c.weekdayOffset(first.Weekday()) + days + 6) / 7, nil
}

// Weekdays returns the header order of a week row.
func (c *Calendar) Weekdays() []time.Weekday {
	out := make([]time.Weekday, 7)
	for i := range out {
		out[i] = time.Weekday((int(c.FirstWeekday) + i) % 7)
	}
	return out
}

// Cell is one day in a month grid.
type Cell struct {
	Date time.Time
	// Key is zero for cells outside MinYear..MaxYear.
	Key     DayKey
	InMonth bool
}

// Grid is the full page for a month: Weeks rows of seven cells, starting on
// the first weekday on or before the 1st.
type Grid struct {
	Month int
	Year  int
	Weeks int
	Rows  [][]Cell
}

// MonthGrid lays out the month page. Leading and trailing cells belong to
// the neighbouring months and have InMonth=false.
func (c *Calendar) MonthGrid(month, year int) (Grid, error) {
	first, err := c.FirstDayOfMonth(month, year)
	if err != nil {
		return Grid{}, err
	}
	weeks, err := c.NumberOfWeeksInMonth(month, year)
	if err != nil {
		return Grid{}, err
	}

	start := c.FirstDayOfWeekContaining(first)
	g := Grid{Month: month, Year: year, Weeks: weeks, Rows: make([][]Cell, weeks)}
	for row := 0; row < weeks; row++ {
		cells := make([]Cell, 7)
		for col := range cells {
			d := start.AddDate(0, 0, row*7+col)
			// The grid spills into year 0 or 10000 around January 1 and
			// December 9999; those cells have no key.
			key, err := c.DayKey(d)
			if err != nil {
				key = 0
			}
			cells[col] = Cell{
				Date:    d,
				Key:     key,
				InMonth: d.Month() == time.Month(month) && d.Year() == year,
			}
		}
		g.Rows[row] = cells
	}
	return g, nil
}
