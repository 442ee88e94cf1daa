// Package monthtab addresses calendar pages by a single integer.
//
// An ID packs (month, year) as decimal fields: month*10000 + year. The year
// field is four digits wide, so years are limited to 0..9999 and Encode
// rejects anything wider instead of letting it bleed into the month digits.
// IDs group by month first, so numeric order is not chronological; use
// Tab.Index or Tab.Before for ordering.
package monthtab

import (
	"errors"
	"fmt"
)

const (
	yearField = 10000
	MaxYear   = yearField - 1
)

var ErrOutOfRange = errors.New("monthtab: month or year out of range")

// ID is the encoded (month, year) pair.
type ID int

// Tab is one month page.
type Tab struct {
	Month int
	Year  int
}

func validate(month, year int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d", ErrOutOfRange, month)
	}
	if year < 0 || year > MaxYear {
		return fmt.Errorf("%w: year %d", ErrOutOfRange, year)
	}
	return nil
}

// Encode packs month and year.
func Encode(month, year int) (ID, error) {
	if err := validate(month, year); err != nil {
		return 0, err
	}
	return ID(month*yearField + year), nil
}

// Decode unpacks an ID produced by Encode.
func Decode(id ID) (Tab, error) {
	if id < 0 {
		return Tab{}, fmt.Errorf("%w: id %d", ErrOutOfRange, id)
	}
	t := Tab{Month: int(id) / yearField, Year: int(id) % yearField}
	if err := validate(t.Month, t.Year); err != nil {
		return Tab{}, err
	}
	return t, nil
}

// ID encodes the tab.
func (t Tab) ID() (ID, error) {
	return Encode(t.Month, t.Year)
}

// Next is the following month, rolling December into January.
func (t Tab) Next() Tab {
	if t.Month < 12 {
		return Tab{Month: t.Month + 1, Year: t.Year}
	}
	return Tab{Month: 1, Year: t.Year + 1}
}

// Prev is the preceding month, rolling January into December.
func (t Tab) Prev() Tab {
	if t.Month > 1 {
		return Tab{Month: t.Month - 1, Year: t.Year}
	}
	return Tab{Month: 12, Year: t.Year - 1}
}

// Index counts months since January of year 0; it orders tabs chronologically.
func (t Tab) Index() int {
	return t.Year*12 + t.Month - 1
}

func (t Tab) Before(other Tab) bool {
	return t.Index() < other.Index()
}

func (t Tab) String() string {
	return fmt.Sprintf("%04d-%02d", t.Year, t.Month)
}

// Adjacent returns the previous, current and next month pages.
func Adjacent(month, year int) ([3]Tab, error) {
	if err := validate(month, year); err != nil {
		return [3]Tab{}, err
	}
	cur := Tab{Month: month, Year: year}
	return [3]Tab{cur.Prev(), cur, cur.Next()}, nil
}
