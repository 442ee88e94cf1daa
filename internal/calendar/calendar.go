// Package calendar implements month layout arithmetic and day keying for the
// booking calendar. Every computation goes through an explicit Calendar value
// carrying the first weekday and the time zone; nothing reads ambient locale
// state.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

const (
	// MinYear and MaxYear bound every date this package constructs or keys.
	MinYear = 1
	MaxYear = 9999

	// anchorHour is used for month/day boundary dates so that a DST shift
	// never moves the result onto a neighbouring calendar day.
	anchorHour = 12
)

var (
	ErrInvalidDate    = errors.New("calendar: invalid date")
	ErrInvalidWeekday = errors.New("calendar: invalid first weekday")
)

// Calendar is the configuration every calendar computation is evaluated in.
type Calendar struct {
	FirstWeekday time.Weekday
	Location     *time.Location
}

// New returns a Calendar whose weeks start on firstWeekday. A nil location
// means UTC.
func New(firstWeekday time.Weekday, loc *time.Location) (*Calendar, error) {
	if firstWeekday < time.Sunday || firstWeekday > time.Saturday {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWeekday, firstWeekday)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{FirstWeekday: firstWeekday, Location: loc}, nil
}

// In converts t into the calendar's location.
func (c *Calendar) In(t time.Time) time.Time {
	return t.In(c.Location)
}

// Date builds a date from components and rejects anything time.Date would
// silently normalize (Feb 30, month 13, minute 61, ...).
func (c *Calendar) Date(year, month, day, hour, minute int) (time.Time, error) {
	if err := validateYearMonth(month, year); err != nil {
		return time.Time{}, err
	}
	if day < 1 || day > DaysIn(time.Month(month), year) {
		return time.Time{}, fmt.Errorf("%w: day %d out of range for %04d-%02d", ErrInvalidDate, day, year, month)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("%w: time %02d:%02d", ErrInvalidDate, hour, minute)
	}
	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, c.Location), nil
}

// DaysIn reports the number of days in the given month of year.
func DaysIn(month time.Month, year int) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, month+1, 0, anchorHour, 0, 0, 0, time.UTC).Day()
}

func validateYearMonth(month, year int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidDate, month)
	}
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("%w: year %d outside %d..%d", ErrInvalidDate, year, MinYear, MaxYear)
	}
	return nil
}
