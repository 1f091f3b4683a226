package grid

import (
	"fmt"
	"time"
)

// Locale isolates week-start and label conventions from the grid layout.
type Locale interface {
	WeekStart() time.Weekday
	WeekdayLabel(time.Weekday) string
	MonthTitle(YearMonth) string
}

// English labels weekdays with their initial letter.
type English struct {
	Start time.Weekday
}

func (e English) WeekStart() time.Weekday { return e.Start }

func (English) WeekdayLabel(d time.Weekday) string {
	return d.String()[:1]
}

func (English) MonthTitle(ym YearMonth) string {
	return fmt.Sprintf("%s %d", time.Month(ym.Month), ym.Year)
}
