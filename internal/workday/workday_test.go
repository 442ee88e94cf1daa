package workday

import (
	"testing"
	"time"
	_ "time/tzdata"
)

func TestWeekdays(t *testing.T) {
	tests := []struct {
		date string
		want bool
	}{
		{"2020-12-02", true},  // Wednesday
		{"2020-12-04", true},  // Friday
		{"2020-12-05", false}, // Saturday
		{"2020-12-06", false}, // Sunday
		{"2020-12-07", true},  // Monday
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d, err := time.Parse("2006-01-02", tt.date)
			if err != nil {
				t.Fatal(err)
			}
			if got := Weekdays(d); got != tt.want {
				t.Errorf("Weekdays(%s) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestRuleDefaults(t *testing.T) {
	r, err := NewRule(Options{})
	if err != nil {
		t.Fatalf("NewRule: %v", err)
	}

	wed := time.Date(2020, 12, 2, 15, 0, 0, 0, time.UTC)
	sat := time.Date(2020, 12, 5, 9, 0, 0, 0, time.UTC)
	if !r.IsWorkday(wed) {
		t.Errorf("Wednesday should be a workday")
	}
	if r.IsWorkday(sat) {
		t.Errorf("Saturday should not be a workday")
	}
}

func TestRuleHolidays(t *testing.T) {
	r, err := NewRule(Options{Holidays: []string{"2020-12-25", " 2021-01-01 "}})
	if err != nil {
		t.Fatalf("NewRule: %v", err)
	}

	if r.IsWorkday(time.Date(2020, 12, 25, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("Christmas listed as holiday should be closed")
	}
	if r.IsWorkday(time.Date(2021, 1, 1, 23, 59, 0, 0, time.UTC)) {
		t.Errorf("New Year listed as holiday should be closed")
	}
	if !r.IsWorkday(time.Date(2020, 12, 24, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("24 December should stay open")
	}
}

func TestRuleSchedule(t *testing.T) {
	// Closed in August and on the first day of every month.
	r, err := NewRule(Options{Schedule: "* * 2-31 1-7,9-12 *"})
	if err != nil {
		t.Fatalf("NewRule: %v", err)
	}

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"regular tuesday", time.Date(2021, 6, 8, 0, 0, 0, 0, time.UTC), true},
		{"august", time.Date(2021, 8, 10, 0, 0, 0, 0, time.UTC), false},
		{"first of month", time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC), false},
		{"weekend still closed", time.Date(2021, 6, 12, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.IsWorkday(tt.date); got != tt.want {
				t.Errorf("IsWorkday(%s) = %v, want %v", tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestRuleUsesLocation(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	r, err := NewRule(Options{Location: seoul})
	if err != nil {
		t.Fatalf("NewRule: %v", err)
	}

	// Friday 20:00 UTC is already Saturday morning in Seoul.
	fri := time.Date(2020, 12, 4, 20, 0, 0, 0, time.UTC)
	if r.IsWorkday(fri) {
		t.Errorf("expected Saturday in Seoul to be closed")
	}
	if !r.Predicate()(time.Date(2020, 12, 7, 9, 0, 0, 0, seoul)) {
		t.Errorf("expected Monday in Seoul to be open")
	}
}

func TestNewRuleErrors(t *testing.T) {
	if _, err := NewRule(Options{Schedule: "not a cron"}); err == nil {
		t.Errorf("expected error for invalid schedule")
	}
	if _, err := NewRule(Options{Holidays: []string{"2020-02-30"}}); err == nil {
		t.Errorf("expected error for invalid holiday")
	}
}
