package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestDayKeyIgnoresTimeOfDay(t *testing.T) {
	c := mustCalendar(t, time.Monday, time.UTC)

	base, err := c.DayKey(time.Date(2020, 12, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("DayKey: %v", err)
	}
	for _, hm := range [][3]int{{8, 0, 0}, {12, 30, 15}, {23, 59, 59}} {
		d := time.Date(2020, 12, 2, hm[0], hm[1], hm[2], 999, time.UTC)
		got, err := c.DayKey(d)
		if err != nil {
			t.Fatalf("DayKey: %v", err)
		}
		if got != base {
			t.Errorf("DayKey(%s) = %v, want %v", d, got, base)
		}
	}
}

func TestDayKeyNoCollisionsAndOrdered(t *testing.T) {
	c := mustCalendar(t, time.Monday, time.UTC)

	seen := make(map[DayKey]time.Time)
	var prev DayKey
	d := time.Date(1999, 1, 1, 12, 0, 0, 0, time.UTC)
	end := time.Date(2005, 1, 1, 12, 0, 0, 0, time.UTC)
	for ; d.Before(end); d = d.AddDate(0, 0, 1) {
		k, err := c.DayKey(d)
		if err != nil {
			t.Fatalf("DayKey(%s): %v", d, err)
		}
		if other, ok := seen[k]; ok {
			t.Fatalf("DayKey collision: %s and %s both map to %v", other, d, k)
		}
		seen[k] = d
		if k <= prev {
			t.Fatalf("DayKey(%s) = %d not greater than previous %d", d, k, prev)
		}
		prev = k
	}
}

func TestDayKeyRangeEnds(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
		wantErr          bool
	}{
		{"first supported day", 1, 1, 1, false},
		{"last supported day", 9999, 12, 31, false},
		{"year zero", 0, 12, 31, true},
		{"year 10000", 10000, 1, 1, true},
		{"feb 30", 2020, 2, 30, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := NewDayKey(tt.year, tt.month, tt.day)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDate) {
					t.Fatalf("NewDayKey error = %v, want ErrInvalidDate", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewDayKey: %v", err)
			}
			y, m, d := k.Date()
			if y != tt.year || m != tt.month || d != tt.day {
				t.Errorf("Date() = %d-%d-%d, want %d-%d-%d", y, m, d, tt.year, tt.month, tt.day)
			}
		})
	}
}

func TestDayKeyOverflowYear(t *testing.T) {
	c := mustCalendar(t, time.Monday, time.UTC)
	if _, err := c.DayKey(time.Date(10000, 1, 1, 12, 0, 0, 0, time.UTC)); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("DayKey(year 10000) error = %v, want ErrInvalidDate", err)
	}
}

func TestDayKeyUsesCalendarLocation(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	c := mustCalendar(t, time.Monday, seoul)

	k, err := c.DayKey(time.Date(2020, 12, 1, 23, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("DayKey: %v", err)
	}
	if k.String() != "2020-12-02" {
		t.Errorf("DayKey = %s, want 2020-12-02", k)
	}
}

func TestDayTimeKey(t *testing.T) {
	c := mustCalendar(t, time.Monday, time.UTC)

	a := time.Date(2020, 12, 2, 8, 30, 0, 0, time.UTC)
	b := time.Date(2020, 12, 2, 8, 30, 42, 123456789, time.UTC)
	if c.DayTimeKey(a) != c.DayTimeKey(b) {
		t.Errorf("DayTimeKey should drop seconds: %d != %d", c.DayTimeKey(a), c.DayTimeKey(b))
	}
	if got, want := c.DayTimeKey(a), DayTimeKey(a.Unix()); got != want {
		t.Errorf("DayTimeKey = %d, want %d", got, want)
	}

	next := a.Add(time.Minute)
	if c.DayTimeKey(next) <= c.DayTimeKey(a) {
		t.Errorf("DayTimeKey should increase with time")
	}
	otherDay := a.AddDate(0, 0, 1)
	if c.DayTimeKey(otherDay) == c.DayTimeKey(a) {
		t.Errorf("same clock on different days must not collide")
	}
}
