package google

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	appLog "holiday-calendar/internal/log"
)

// Settings configures which public holiday calendar is read and how much of it.
type Settings struct {
	CalendarID    string
	DefaultRegion string
	YearsBack     int
	YearsAhead    int
	PageSize      int64
}

// Provider reads public holiday calendars through the Calendar v3 API.
type Provider struct {
	srv      *calendar.Service
	settings Settings
	now      func() time.Time
}

// NewService creates a Calendar service. With an API key the public
// calendars are read anonymously; without one Application Default
// Credentials with the read-only scope are used.
func NewService(ctx context.Context, apiKey string, opts ...option.ClientOption) (*calendar.Service, error) {
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	} else if len(opts) == 0 {
		client, err := google.DefaultClient(ctx, calendar.CalendarReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("no api key and no default credentials: %w", err)
		}
		opts = append(opts, option.WithHTTPClient(client))
	}
	srv, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return srv, nil
}

func NewProvider(srv *calendar.Service, settings Settings) *Provider {
	return &Provider{srv: srv, settings: settings, now: time.Now}
}

// CalendarID is the upstream id for region, e.g. "en.usa#holiday@group.v.calendar.google.com".
func (p *Provider) CalendarID(region string) string {
	if region == "" {
		region = p.settings.DefaultRegion
	}
	return region + "#" + p.settings.CalendarID
}

// Window is the requested event range: Jan 1 YearsBack years ago to
// Dec 31 YearsAhead years ahead.
func (p *Provider) Window() (time.Time, time.Time) {
	now := p.now()
	loc := now.Location()
	timeMin := time.Date(now.Year()-p.settings.YearsBack, time.January, 1, 0, 0, 0, 0, loc)
	timeMax := time.Date(now.Year()+p.settings.YearsAhead, time.December, 31, 0, 0, 0, 0, loc)
	return timeMin, timeMax
}

// RegionFeed lists every event of the region's holiday calendar in the
// window, following page tokens until exhausted.
func (p *Provider) RegionFeed(ctx context.Context, region string) (*calendar.Events, error) {
	if region == "" {
		region = p.settings.DefaultRegion
	}
	timeMin, timeMax := p.Window()

	call := p.srv.Events.List(p.CalendarID(region)).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		MaxResults(p.settings.PageSize).
		SingleEvents(true)

	var (
		items []*calendar.Event
		pages int
	)
	err := call.Pages(ctx, func(page *calendar.Events) error {
		pages++
		items = append(items, page.Items...)
		return nil
	})
	if err != nil {
		appLog.Error("holiday events list failed", err, "region", region)
		return nil, err
	}
	appLog.Info("holiday events listed", "region", region, "items", len(items), "pages", pages)

	return &calendar.Events{
		Items:   items,
		Summary: "Holidays for " + region,
	}, nil
}
