package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"apptcal/internal/config"
)

const bookedICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:a1\r\n" +
	"DTSTAMP:20201201T000000Z\r\n" +
	"DTSTART:20201202T080000Z\r\n" +
	"DTEND:20201202T083000Z\r\n" +
	"SUMMARY:Check-up\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "booked.ics")
	if err := os.WriteFile(path, []byte(bookedICS), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg := config.DefaultConfig()
	cfg.Appointments = path
	return cfg
}

var testNow = time.Date(2020, 12, 1, 10, 0, 0, 0, time.UTC)

func TestRunMonth(t *testing.T) {
	var buf bytes.Buffer
	if err := run(&buf, testConfig(t), flagConfig{}, testNow); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"< 2020-11   [2020-12]   2021-01 >", "Mo", "Su", "2*", "5-", "31"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "open") {
		t.Errorf("no day was requested but slots were printed:\n%s", out)
	}
}

func TestRunDayWithBookings(t *testing.T) {
	flags := flagConfig{
		day:    "2020-12-02",
		book:   bookList{"08:30", "08:00", "09:00", "08:30"},
		export: true,
	}

	var buf bytes.Buffer
	if err := run(&buf, testConfig(t), flags, testNow); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Wednesday, December 2, 2020",
		"8:00am   8:30am   booked",
		"8:30am   9:00am   open",
		"9:00am   9:30am   selected",
		"10:30am  11:00am  open",
		"4 of 5 open",
		"BEGIN:VCALENDAR",
		"DTSTART:20201202T090000Z",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "11:30am") {
		t.Errorf("more than six positions offered:\n%s", out)
	}
}

func TestRunDayOutsideDisplayedMonth(t *testing.T) {
	flags := flagConfig{
		day:   "2020-12-02",
		month: 3,
		year:  2021,
		book:  bookList{"08:00"},
	}

	var buf bytes.Buffer
	if err := run(&buf, testConfig(t), flags, testNow); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"[2021-03]", "8:00am   8:30am   booked", "5 of 5 open"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "selected") {
		t.Errorf("booked slot was selected:\n%s", out)
	}
}

func TestRunWeekendHasNoSlots(t *testing.T) {
	var buf bytes.Buffer
	if err := run(&buf, testConfig(t), flagConfig{day: "2020-12-05"}, testNow); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(buf.String(), "no slots") {
		t.Errorf("expected no slots on a Saturday:\n%s", buf.String())
	}
}

func TestRunErrors(t *testing.T) {
	cases := []struct {
		name  string
		flags flagConfig
	}{
		{"book without day", flagConfig{book: bookList{"09:00"}}},
		{"bad day", flagConfig{day: "2020-13-40"}},
		{"unknown slot", flagConfig{day: "2020-12-02", book: bookList{"07:00"}}},
		{"bad month", flagConfig{month: 13}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := run(&buf, testConfig(t), tc.flags, testNow); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}
