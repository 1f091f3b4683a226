package app

import (
	"holiday-calendar/internal/grid"
	"holiday-calendar/internal/model"
)

type importResponse struct {
	Calendar  model.Calendar `json:"calendar"`
	Schedules int            `json:"schedules"`
	Skipped   int            `json:"skipped"`
}

type updateCalendarReq struct {
	Selected *bool `json:"selected" binding:"required"`
}

type selectedDateReq struct {
	Date string `json:"date" binding:"required"` // YYYYMMDD
}

type selectedDateResponse struct {
	Date  string          `json:"date"`
	Units model.DateUnits `json:"units"`
}

// monthResponse is the month grid with per-day display state.
type monthResponse struct {
	Index       int                      `json:"index"`
	Month       grid.YearMonth           `json:"month"`
	Title       string                   `json:"title"`
	Weekdays    [grid.DaysPerWeek]string `json:"weekdays"`
	Today       string                   `json:"today"`
	Highlighted string                   `json:"highlighted"`
	Weeks       [][]grid.Cell            `json:"weeks"`
}
