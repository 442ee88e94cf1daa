package ics

import (
	"fmt"
	"os"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	appLog "apptcal/internal/log"
	"apptcal/internal/model"
)

const productID = "-//apptcal//booking calendar//EN"

// uidNamespace scopes the deterministic UIDs given to appointments that were
// created locally and have none yet.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("apptcal"))

// AppointmentUID returns a.UID, or a UID derived from the start minute when
// the appointment was created by a selection and has none.
func AppointmentUID(a model.Appointment) string {
	if a.UID != "" {
		return a.UID
	}
	key := a.Start.UTC().Truncate(time.Minute).Format(time.RFC3339)
	return uuid.NewSHA1(uidNamespace, []byte(key)).String()
}

// Export serializes appointments as a VCALENDAR. now is used for DTSTAMP.
func Export(appts []model.Appointment, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, a := range appts {
		ev := cal.AddEvent(AppointmentUID(a))
		ev.SetDtStampTime(now)
		ev.SetStartAt(a.Start)
		end := a.End
		if end.IsZero() {
			end = a.Start
		}
		ev.SetEndAt(end)
		if a.Summary != "" {
			ev.SetSummary(a.Summary)
		}
		if a.Location != "" {
			ev.SetLocation(a.Location)
		}
	}
	return cal.Serialize()
}

// Load reads a local .ics file and expands it into appointments within the
// window described by cfg. Nothing is fetched over the network.
func Load(src Source, cfg ExpandConfig) ([]model.Appointment, error) {
	if src.Path == "" {
		return nil, fmt.Errorf("ics: source %q has no path", src.ID)
	}
	body, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("ics: read %s: %w", src.Path, err)
	}

	events, err := ParseICS(src, body, cfg.DisplayLocation)
	if err != nil {
		return nil, err
	}
	res, err := ExpandAppointments(events, cfg)
	if err != nil {
		return nil, err
	}

	appLog.Info("ics appointments loaded",
		"id", src.ID,
		"appointments", len(res.Appointments),
		"truncated", len(res.TruncatedEvents),
		"range_start", cfg.RangeStart,
		"range_end", cfg.RangeEnd,
	)
	return res.Appointments, nil
}
