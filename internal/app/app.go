package app

import (
	"context"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/calendar/v3"

	"holiday-calendar/internal/grid"
	"holiday-calendar/internal/holiday"
	appLog "holiday-calendar/internal/log"
	"holiday-calendar/internal/store"
)

// FeedSource returns the holiday event list of a region.
type FeedSource interface {
	RegionFeed(ctx context.Context, region string) (*calendar.Events, error)
}

type App struct {
	Feeds      FeedSource
	Normalizer *holiday.Normalizer
	Store      *store.Store
	Locale     grid.Locale
	Now        func() time.Time
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(a *App, corsOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(), corsMiddleware(corsOrigins))

	router.GET("/health", a.HealthHandler)

	api := router.Group("/api")
	{
		holidays := api.Group("/holidays")
		{
			// Get the available holiday events based on the region value.
			holidays.GET("/:region", a.GetHolidayEventsHandler)
			holidays.GET("/:region/ics", a.ExportHolidayICSHandler)
		}
		api.POST("/imports/:region", a.ImportRegionHandler)

		calendars := api.Group("/calendars")
		{
			calendars.GET("", a.ListCalendarsHandler)
			calendars.PATCH("/:id", a.UpdateCalendarHandler)
			calendars.DELETE("/:id", a.DeleteCalendarHandler)
		}
		api.GET("/schedules", a.ListSchedulesHandler)
		api.GET("/month", a.MonthHandler)
		api.GET("/selected-date", a.GetSelectedDateHandler)
		api.PUT("/selected-date", a.SetSelectedDateHandler)
	}
	return router
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// RequestLogger logs one line per request through the application logger.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		kv := []any{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		if len(c.Errors) > 0 {
			appLog.Error("http request", c.Errors.Last(), kv...)
			return
		}
		appLog.Info("http request", kv...)
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
