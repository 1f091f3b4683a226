package app

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"holiday-calendar/internal/ics"
	appLog "holiday-calendar/internal/log"
)

// GET /health
func (a *App) HealthHandler(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// GET /api/holidays/:region
// Proxies the region's public holiday calendar, all pages combined.
func (a *App) GetHolidayEventsHandler(c *gin.Context) {
	region := c.Param("region")

	events, err := a.Feeds.RegionFeed(c.Request.Context(), region)
	if err != nil {
		appLog.Error("Error fetching holiday events", err, "region", region)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Failed to fetch holiday events",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, events)
}

// GET /api/holidays/:region/ics
// Normalizes the region feed and serves it as an iCalendar download.
// Events with malformed dates are left out and counted in X-Skipped-Events.
func (a *App) ExportHolidayICSHandler(c *gin.Context) {
	region := c.Param("region")

	events, err := a.Feeds.RegionFeed(c.Request.Context(), region)
	if err != nil {
		appLog.Error("Error fetching holiday events", err, "region", region)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Failed to fetch holiday events",
			"message": err.Error(),
		})
		return
	}

	cal, schedules, errs := a.Normalizer.ImportFeed(events, 0, region)
	body := ics.Export(cal, schedules, a.now())

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": region + ".ics"}))
	c.Header("X-Skipped-Events", strconv.Itoa(len(errs)))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}
