package holiday

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"

	appLog "holiday-calendar/internal/log"
)

// StatusError reports a non-2xx answer from the holiday API.
type StatusError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("holiday api: %s: %s", e.Status, e.Message)
	}
	return "holiday api: " + e.Status
}

// Feed fetches region feeds from the holiday API ("{BaseURL}/{region}").
type Feed struct {
	BaseURL string
	client  *http.Client
}

// NewFeed creates a Feed. A nil client gets a 15s timeout client.
func NewFeed(baseURL string, client *http.Client) *Feed {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Feed{BaseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// FetchRegionFeed issues one GET for region and decodes the event list.
// Transport and decode errors are returned as-is; nothing is retried.
func (f *Feed) FetchRegionFeed(ctx context.Context, region string) (*calendar.Events, error) {
	if f.BaseURL == "" {
		return nil, errors.New("holiday api url not set")
	}

	endpoint := f.BaseURL + "/" + url.PathEscape(region)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	appLog.Debug("holiday feed fetch start", "region", region)
	resp, err := f.client.Do(req)
	if err != nil {
		appLog.Error("holiday feed fetch failed", err, "region", region)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		err := &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Message: body.Message}
		appLog.Error("holiday feed fetch failed", err, "region", region)
		return nil, err
	}

	var events calendar.Events
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		appLog.Error("holiday feed decode failed", err, "region", region)
		return nil, err
	}
	appLog.Info("holiday feed fetched", "region", region, "items", len(events.Items))
	return &events, nil
}
