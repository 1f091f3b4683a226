package app

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"holiday-calendar/internal/grid"
	appLog "holiday-calendar/internal/log"
	"holiday-calendar/internal/model"
	"holiday-calendar/internal/store"
)

// POST /api/imports/:region
// Fetches the region feed, normalizes it and adds the calendar and its
// schedules to the store.
func (a *App) ImportRegionHandler(c *gin.Context) {
	region := c.Param("region")
	if a.Store.HasRegion(region) {
		c.JSON(http.StatusConflict, gin.H{"error": store.ErrRegionImported.Error()})
		return
	}

	events, err := a.Feeds.RegionFeed(c.Request.Context(), region)
	if err != nil {
		appLog.Error("Error fetching holiday events", err, "region", region)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Failed to fetch holiday events",
			"message": err.Error(),
		})
		return
	}

	cal, schedules, errs := a.Normalizer.ImportFeed(events, a.Store.NextCalendarID(), region)
	if err := a.Store.AddCalendar(cal, schedules); err != nil {
		if errors.Is(err, store.ErrRegionImported) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	appLog.Info("holiday calendar imported", "region", region, "calendar_id", cal.ID, "schedules", len(schedules), "skipped", len(errs))
	c.JSON(http.StatusCreated, importResponse{
		Calendar:  cal,
		Schedules: len(schedules),
		Skipped:   len(errs),
	})
}

// GET /api/calendars
func (a *App) ListCalendarsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, a.Store.Calendars())
}

// PATCH /api/calendars/:id
func (a *App) UpdateCalendarHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid calendar id"})
		return
	}
	var payload updateCalendarReq
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cal, err := a.Store.SetCalendarSelected(id, *payload.Selected)
	if errors.Is(err, store.ErrCalendarNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cal)
}

// DELETE /api/calendars/:id
func (a *App) DeleteCalendarHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid calendar id"})
		return
	}
	if cal, ok := a.Store.Calendar(id); ok && !cal.Removable {
		c.JSON(http.StatusForbidden, gin.H{"error": "calendar is not removable"})
		return
	}

	if err := a.Store.RemoveCalendar(id); err != nil {
		if errors.Is(err, store.ErrCalendarNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/schedules?date=YYYYMMDD
func (a *App) ListSchedulesHandler(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		c.JSON(http.StatusOK, a.Store.VisibleSchedules())
		return
	}
	d, err := model.ParseDateUnits(dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	schedules := a.Store.SchedulesOn(d)
	if schedules == nil {
		schedules = []model.Schedule{}
	}
	c.JSON(http.StatusOK, schedules)
}

// GET /api/month?index=N&highlight=YYYYMMDD
// Without index the month of the highlighted date is shown; without
// highlight the store's selected date is used.
func (a *App) MonthHandler(c *gin.Context) {
	today := model.FromTime(a.now())

	highlighted := a.Store.SelectedDate()
	if h := c.Query("highlight"); h != "" {
		d, err := model.ParseDateUnits(h)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid highlight"})
			return
		}
		highlighted = d
	}

	index := grid.IndexFor(highlighted, today)
	if s := c.Query("index"); s != "" {
		i, err := strconv.Atoi(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
			return
		}
		index = i
	}

	g := grid.BuildGrid(today, index, a.Locale)
	schedules := a.Store.VisibleSchedules()

	weeks := make([][]grid.Cell, 0, grid.Weeks)
	for _, week := range g.Days {
		row := make([]grid.Cell, 0, grid.DaysPerWeek)
		for _, d := range week {
			row = append(row, grid.Cell{
				Date:     d,
				Modifier: grid.ClassifyDay(d, highlighted, g.Month, today),
				Events:   grid.AnnotateEvents(d, schedules),
			})
		}
		weeks = append(weeks, row)
	}

	c.JSON(http.StatusOK, monthResponse{
		Index:       index,
		Month:       g.Month,
		Title:       g.Title,
		Weekdays:    g.Weekdays,
		Today:       today.String(),
		Highlighted: highlighted.String(),
		Weeks:       weeks,
	})
}

// GET /api/selected-date
func (a *App) GetSelectedDateHandler(c *gin.Context) {
	d := a.Store.SelectedDate()
	c.JSON(http.StatusOK, selectedDateResponse{Date: d.String(), Units: d})
}

// PUT /api/selected-date
func (a *App) SetSelectedDateHandler(c *gin.Context) {
	var payload selectedDateReq
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d, err := model.ParseDateUnits(payload.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a.Store.SetSelectedDate(d)
	c.JSON(http.StatusOK, selectedDateResponse{Date: d.String(), Units: d})
}
