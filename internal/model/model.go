package model

import (
	"fmt"
	"strconv"
	"time"
)

type CalendarType string

const (
	CalendarPersonal CalendarType = "personal"
	CalendarHoliday  CalendarType = "holiday"
)

type ScheduleType string

const (
	ScheduleEvent ScheduleType = "event"
	ScheduleTask  ScheduleType = "task"
)

// ColorOption is one entry of the palette used to paint calendars and schedules.
type ColorOption struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// DateUnits is a civil date with no time-of-day or zone.
type DateUnits struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// FromTime takes the civil date of t in t's own location.
func FromTime(t time.Time) DateUnits {
	y, m, d := t.Date()
	return DateUnits{Year: y, Month: int(m), Day: d}
}

// ParseDateUnits parses the 8-digit YYYYMMDD form produced by String.
func ParseDateUnits(s string) (DateUnits, error) {
	if len(s) != 8 {
		return DateUnits{}, fmt.Errorf("date %q: want 8 digits", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return DateUnits{}, fmt.Errorf("date %q: not numeric", s)
	}
	d := DateUnits{Year: n / 10000, Month: n / 100 % 100, Day: n % 100}
	if !d.Valid() {
		return DateUnits{}, fmt.Errorf("date %q: out of range", s)
	}
	return d, nil
}

// Time returns midnight UTC of the date.
func (d DateUnits) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays shifts the date by n calendar days.
func (d DateUnits) AddDays(n int) DateUnits {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// Valid reports whether the date names a real calendar day.
func (d DateUnits) Valid() bool {
	if d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	return FromTime(d.Time()) == d
}

func (d DateUnits) Equal(o DateUnits) bool {
	return d == o
}

// String renders the YYYYMMDD lookup key.
func (d DateUnits) String() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)
}

type Calendar struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	ColorOption ColorOption  `json:"colorOption"`
	Selected    bool         `json:"selected"`
	Removable   bool         `json:"removable"`
	Type        CalendarType `json:"type"`
	TimeZone    string       `json:"timeZone"`
	Description string       `json:"description"`
	Region      string       `json:"region"`
}

// TimeSlot bounds are kept in the units the client renders with.
type TimeSlot struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type DateTimeInfo struct {
	AllDay bool     `json:"allDay"`
	Once   bool     `json:"once"`
	Date   string   `json:"date"`
	Time   TimeSlot `json:"time"`
}

type Schedule struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	CalendarID   int          `json:"calendarId"`
	CalendarType CalendarType `json:"calendarType"`
	DateTime     DateTimeInfo `json:"dateTime"`
	Type         ScheduleType `json:"type"`
	IsExternal   bool         `json:"isExternal"`
	Location     string       `json:"location"`
	ColorOption  ColorOption  `json:"colorOption"`
}
