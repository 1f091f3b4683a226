package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"holiday-calendar/internal/config"
	"holiday-calendar/internal/grid"
	"holiday-calendar/internal/holiday"
	appLog "holiday-calendar/internal/log"
	"holiday-calendar/internal/model"
	"holiday-calendar/internal/store"
	"holiday-calendar/internal/tui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type regionList []string

func (r *regionList) String() string { return strings.Join(*r, ",") }

func (r *regionList) Set(v string) error {
	*r = append(*r, v)
	return nil
}

func main() {
	var regions regionList
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	logPath := flag.String("log", "", "Write logs to this file instead of discarding them")
	initial := flag.String("initial", "", "Initially highlighted date, YYYYMMDD")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Var(&regions, "region", "Holiday region to import, e.g. en.usa (repeatable)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("minical %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// The alternate screen owns stdout, so logs go to a file or nowhere.
	appLog.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		appLog.SetOutput(f)
	}
	appLog.SetLevel(appLog.ParseLevel(cfg.LogLevel))

	loc, err := cfg.Location()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading timezone %q: %v\n", cfg.Timezone, err)
		os.Exit(1)
	}

	var initialDate *model.DateUnits
	if *initial != "" {
		d, err := model.ParseDateUnits(*initial)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -initial: %v\n", err)
			os.Exit(1)
		}
		initialDate = &d
	}

	now, _ := cfg.Clock()
	st := store.New(now)
	nav := grid.NewNavigator(st, grid.English{Start: cfg.FirstWeekday()}, now, initialDate)
	normalizer := holiday.NewNormalizer(holiday.RandomColors{}, holiday.UUIDs{}, loc)
	feed := holiday.NewFeed(cfg.HolidayAPIURL, nil)

	m := tui.New(nav, st, normalizer, feed, regions)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}
