package holiday

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"

	appLog "holiday-calendar/internal/log"
	"holiday-calendar/internal/model"
)

// ErrMalformedDate is returned when an event start cannot be read as a date.
var ErrMalformedDate = errors.New("malformed event start date")

// Holiday schedules occupy a fixed slot; both bounds are 24 in the
// client's time-slot units.
const (
	holidayStartSlot = 24
	holidayEndSlot   = 24
)

// locationToken separates the organizer from the region in display names
// such as "Holidays in United States".
const locationToken = " in "

const localDateTime = "2006-01-02T15:04:05"

// Normalizer converts Google holiday feeds into calendar and schedule records.
type Normalizer struct {
	colors ColorPicker
	ids    IDGenerator
	loc    *time.Location
}

// NewNormalizer builds a Normalizer. loc is the zone timestamp starts are
// read in; nil means time.Local.
func NewNormalizer(colors ColorPicker, ids IDGenerator, loc *time.Location) *Normalizer {
	if colors == nil {
		colors = RandomColors{}
	}
	if ids == nil {
		ids = UUIDs{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &Normalizer{colors: colors, ids: ids, loc: loc}
}

// ImportCalendarMetadata builds the Calendar record for a region feed.
// Missing feed fields default to empty strings; it never fails.
func (n *Normalizer) ImportCalendarMetadata(feed *calendar.Events, calendarID int, region string) model.Calendar {
	cal := model.Calendar{
		ID:          calendarID,
		ColorOption: n.colors.Pick(),
		Selected:    true,
		Removable:   true,
		Type:        model.CalendarHoliday,
		Region:      region,
	}
	if feed != nil {
		cal.Name = feed.Summary
		cal.TimeZone = feed.TimeZone
		cal.Description = feed.Description
	}
	return cal
}

// ImportEvent converts one feed event into a Schedule owned by calendarID.
//
// The stored date is the day before the event start, for both bare dates
// and timestamps. An event without a start gets an empty date.
func (n *Normalizer) ImportEvent(ev *calendar.Event, calendarID int) (model.Schedule, error) {
	if ev == nil {
		ev = &calendar.Event{}
	}
	date, err := n.scheduleDate(ev.Start)
	if err != nil {
		return model.Schedule{}, fmt.Errorf("event %q: %w", ev.Summary, err)
	}

	return model.Schedule{
		ID:           n.ids.NewID(),
		Title:        ev.Summary,
		Description:  ev.Description,
		CalendarID:   calendarID,
		CalendarType: model.CalendarHoliday,
		DateTime: model.DateTimeInfo{
			AllDay: false,
			Once:   true,
			Date:   date,
			Time:   model.TimeSlot{Start: holidayStartSlot, End: holidayEndSlot},
		},
		Type:        model.ScheduleEvent,
		IsExternal:  true,
		Location:    extractLocation(ev.Organizer),
		ColorOption: n.colors.Pick(),
	}, nil
}

// ImportFeed imports a whole region feed. Events whose start cannot be
// parsed are skipped and reported in errs.
func (n *Normalizer) ImportFeed(feed *calendar.Events, calendarID int, region string) (model.Calendar, []model.Schedule, []error) {
	cal := n.ImportCalendarMetadata(feed, calendarID, region)
	if feed == nil {
		return cal, nil, nil
	}

	schedules := make([]model.Schedule, 0, len(feed.Items))
	var errs []error
	for _, ev := range feed.Items {
		s, err := n.ImportEvent(ev, calendarID)
		if err != nil {
			appLog.Error("skipping holiday event", err, "region", region, "calendar_id", calendarID)
			errs = append(errs, err)
			continue
		}
		schedules = append(schedules, s)
	}
	appLog.Debug("holiday feed imported", "region", region, "events", len(feed.Items), "schedules", len(schedules))
	return cal, schedules, errs
}

func (n *Normalizer) scheduleDate(start *calendar.EventDateTime) (string, error) {
	if start == nil {
		return "", nil
	}

	var day model.DateUnits
	switch {
	case start.Date != "":
		t, err := time.Parse(time.DateOnly, start.Date)
		if err != nil {
			return "", fmt.Errorf("%w: date %q", ErrMalformedDate, start.Date)
		}
		day = model.FromTime(t)
	case start.DateTime != "":
		t, err := time.Parse(time.RFC3339, start.DateTime)
		if err != nil {
			// Timestamps without an offset are wall-clock times in n.loc.
			t, err = time.ParseInLocation(localDateTime, start.DateTime, n.loc)
			if err != nil {
				return "", fmt.Errorf("%w: dateTime %q", ErrMalformedDate, start.DateTime)
			}
		}
		day = model.FromTime(t.In(n.loc))
	default:
		return "", nil
	}

	// Feed starts sit one day after the civil date the schedule is shown on.
	return day.AddDays(-1).String(), nil
}

func extractLocation(organizer *calendar.EventOrganizer) string {
	if organizer == nil || organizer.DisplayName == "" {
		return ""
	}
	parts := strings.Split(organizer.DisplayName, locationToken)
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
