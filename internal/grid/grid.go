// Package grid arranges a month into a fixed 6x7 grid of days and computes
// the per-day display state of a mini calendar.
//
// Months are addressed by index: 0 is January of the reference year (the
// year of "today"), 11 its December, 12 the following January and -1 the
// previous December.
package grid

import (
	"time"

	"holiday-calendar/internal/model"
)

const (
	Weeks       = 6
	DaysPerWeek = 7
)

// YearMonth identifies the month a grid displays.
type YearMonth struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Contains reports whether d falls in the month.
func (ym YearMonth) Contains(d model.DateUnits) bool {
	return d.Year == ym.Year && d.Month == ym.Month
}

// MonthGrid is a header row of weekday labels followed by six weeks.
type MonthGrid struct {
	Month    YearMonth                           `json:"month"`
	Title    string                              `json:"title"`
	Weekdays [DaysPerWeek]string                 `json:"weekdays"`
	Days     [Weeks][DaysPerWeek]model.DateUnits `json:"days"`
}

// IndexFor returns the month index of d relative to the year of today.
func IndexFor(d model.DateUnits, today model.DateUnits) int {
	return (d.Year-today.Year)*12 + (d.Month - 1)
}

// MonthAt resolves a month index against the year of today.
func MonthAt(index int, today model.DateUnits) YearMonth {
	t := time.Date(today.Year, time.January+time.Month(index), 1, 0, 0, 0, 0, time.UTC)
	return YearMonth{Year: t.Year(), Month: int(t.Month())}
}

// BuildGrid lays out the month at index. The first cell is the locale's
// week start on or before the 1st; the grid always holds 42 days.
func BuildGrid(today model.DateUnits, index int, locale Locale) MonthGrid {
	if locale == nil {
		locale = English{}
	}
	ym := MonthAt(index, today)
	first := time.Date(ym.Year, time.Month(ym.Month), 1, 0, 0, 0, 0, time.UTC)

	lead := (int(first.Weekday()) - int(locale.WeekStart()) + DaysPerWeek) % DaysPerWeek
	cursor := first.AddDate(0, 0, -lead)

	g := MonthGrid{Month: ym, Title: locale.MonthTitle(ym)}
	for i := range g.Weekdays {
		g.Weekdays[i] = locale.WeekdayLabel(time.Weekday((int(locale.WeekStart()) + i) % DaysPerWeek))
	}
	for w := 0; w < Weeks; w++ {
		for d := 0; d < DaysPerWeek; d++ {
			g.Days[w][d] = model.FromTime(cursor)
			cursor = cursor.AddDate(0, 0, 1)
		}
	}
	return g
}

// Cells flattens the grid in display order.
func (g MonthGrid) Cells() []model.DateUnits {
	out := make([]model.DateUnits, 0, Weeks*DaysPerWeek)
	for _, week := range g.Days {
		out = append(out, week[:]...)
	}
	return out
}

// Modifier is the display state of one grid day.
type Modifier string

const (
	ModifierNone     Modifier = ""
	ModifierToday    Modifier = "today"
	ModifierGreyed   Modifier = "greyed"
	ModifierSelected Modifier = "selected"
)

// ClassifyDay picks exactly one modifier for day; today outranks greyed,
// which outranks selected.
func ClassifyDay(day, highlighted model.DateUnits, displayed YearMonth, today model.DateUnits) Modifier {
	inMonth := displayed.Contains(day)
	switch {
	case day == today && inMonth:
		return ModifierToday
	case !inMonth:
		return ModifierGreyed
	case day == highlighted:
		return ModifierSelected
	}
	return ModifierNone
}

// EventMark summarises the schedules that fall on a day.
type EventMark struct {
	HasEvents bool `json:"hasEvents"`
	Count     int  `json:"count"`
}

// AnnotateEvents counts schedules whose stored date is day.
func AnnotateEvents(day model.DateUnits, schedules []model.Schedule) EventMark {
	key := day.String()
	n := 0
	for _, s := range schedules {
		if s.DateTime.Date == key {
			n++
		}
	}
	return EventMark{HasEvents: n > 0, Count: n}
}
