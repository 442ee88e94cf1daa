package calendar

import (
	"fmt"
	"time"
)

// DayKey identifies a calendar day independent of time of day.
//
// Layout (low to high bits): day 5 bits, month 4 bits, year 14 bits.
// Fields never overlap, so distinct days in MinYear..MaxYear never collide,
// and numeric order equals chronological order.
type DayKey uint32

const (
	dayBits   = 5
	monthBits = 4
	yearBits  = 14

	dayMask   = 1<<dayBits - 1
	monthMask = 1<<monthBits - 1
	yearMask  = 1<<yearBits - 1
)

// NewDayKey packs (year, month, day) after validating the date exists.
func NewDayKey(year, month, day int) (DayKey, error) {
	if err := validateYearMonth(month, year); err != nil {
		return 0, err
	}
	if day < 1 || day > DaysIn(time.Month(month), year) {
		return 0, fmt.Errorf("%w: day %d out of range for %04d-%02d", ErrInvalidDate, day, year, month)
	}
	return DayKey(uint32(year)<<(dayBits+monthBits) | uint32(month)<<dayBits | uint32(day)), nil
}

// Date unpacks the key.
func (k DayKey) Date() (year, month, day int) {
	v := uint32(k)
	return int(v >> (dayBits + monthBits) & yearMask), int(v >> dayBits & monthMask), int(v & dayMask)
}

func (k DayKey) String() string {
	y, m, d := k.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

// DayKey keys t by its calendar day in the calendar's location. Years
// outside MinYear..MaxYear are reported instead of wrapping.
func (c *Calendar) DayKey(t time.Time) (DayKey, error) {
	y, m, d := c.In(t).Date()
	return NewDayKey(y, int(m), d)
}

// DayTimeKey identifies an instant at minute precision: Unix seconds with
// seconds and sub-seconds dropped.
type DayTimeKey int64

// DayTimeKey truncates t to the minute in the calendar's location and
// returns its Unix time.
func (c *Calendar) DayTimeKey(t time.Time) DayTimeKey {
	t = c.In(t)
	// Stays on the same instant inside a DST fall-back hour.
	minute := t.Add(-time.Duration(t.Second())*time.Second - time.Duration(t.Nanosecond()))
	return DayTimeKey(minute.Unix())
}
