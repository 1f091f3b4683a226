package ics

import (
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "holiday-calendar/internal/log"
	"holiday-calendar/internal/model"
)

// Export renders a calendar and its schedules as an iCalendar document.
// Each schedule becomes an all-day VEVENT on its stored date; schedules
// without a readable date are left out.
func Export(cal model.Calendar, schedules []model.Schedule, stamp time.Time) string {
	out := ical.NewCalendarFor("holiday-calendar")
	out.SetMethod(ical.MethodPublish)
	if cal.Name != "" {
		out.SetXWRCalName(cal.Name)
	}
	if cal.Description != "" {
		out.SetXWRCalDesc(cal.Description)
	}
	if cal.TimeZone != "" {
		out.SetXWRTimezone(cal.TimeZone)
	}
	if cal.ColorOption.Hex != "" {
		out.SetColor(cal.ColorOption.Hex)
	}

	for _, s := range schedules {
		day, err := model.ParseDateUnits(s.DateTime.Date)
		if err != nil {
			appLog.Debug("ics export skipping schedule", "id", s.ID, "date", s.DateTime.Date)
			continue
		}
		ev := out.AddEvent(s.ID)
		ev.SetDtStampTime(stamp.UTC())
		ev.SetAllDayStartAt(day.Time())
		ev.SetAllDayEndAt(day.AddDays(1).Time())
		ev.SetSummary(s.Title)
		if s.Description != "" {
			ev.SetDescription(s.Description)
		}
		if s.Location != "" {
			ev.SetLocation(s.Location)
		}
		ev.SetTimeTransparency(ical.TransparencyTransparent)
	}
	return out.Serialize()
}
