package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"holiday-calendar/internal/app"
	"holiday-calendar/internal/config"
	"holiday-calendar/internal/google"
	"holiday-calendar/internal/grid"
	"holiday-calendar/internal/holiday"
	appLog "holiday-calendar/internal/log"
	"holiday-calendar/internal/server"
	"holiday-calendar/internal/store"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", *configPath)
		os.Exit(1)
	}
	appLog.SetLevel(appLog.ParseLevel(cfg.LogLevel))
	if appLog.CurrentLevel() != appLog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	loc, err := cfg.Location()
	if err != nil {
		appLog.Error("invalid timezone", err, "timezone", cfg.Timezone)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := google.NewService(ctx, cfg.APIKey)
	if err != nil {
		appLog.Error("failed to create calendar service", err)
		os.Exit(1)
	}

	appLog.Info("effective config",
		"listen", cfg.Listen,
		"calendar_id", cfg.CalendarID,
		"default_region", cfg.DefaultRegion,
		"years_back", cfg.YearsBack,
		"years_ahead", cfg.YearsAhead,
		"week_start", cfg.WeekStart,
		"timezone", loc.String(),
		"api_key_set", cfg.APIKey != "",
	)

	now, _ := cfg.Clock()

	appInstance := &app.App{
		Feeds: google.NewProvider(srv, google.Settings{
			CalendarID:    cfg.CalendarID,
			DefaultRegion: cfg.DefaultRegion,
			YearsBack:     cfg.YearsBack,
			YearsAhead:    cfg.YearsAhead,
			PageSize:      cfg.PageSize,
		}),
		Normalizer: holiday.NewNormalizer(holiday.RandomColors{}, holiday.UUIDs{}, loc),
		Store:      store.New(now),
		Locale:     grid.English{Start: cfg.FirstWeekday()},
		Now:        now,
	}

	router := app.NewRouter(appInstance, cfg.CORSOrigins)

	if err := server.Run(ctx, cfg.Listen, router); err != nil {
		appLog.Error("server stopped", err)
		os.Exit(1)
	}
	appLog.Info("holiday-calendar exiting")
}
