package app

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"

	"holiday-calendar/internal/grid"
	"holiday-calendar/internal/holiday"
	"holiday-calendar/internal/model"
	"holiday-calendar/internal/store"
)

type fakeFeeds struct {
	feeds map[string]*calendar.Events
	calls int
}

func (f *fakeFeeds) RegionFeed(_ context.Context, region string) (*calendar.Events, error) {
	f.calls++
	feed, ok := f.feeds[region]
	if !ok {
		return nil, errors.New("googleapi: Error 404: Not Found, notFound")
	}
	return feed, nil
}

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return "sched-" + strconv.Itoa(s.n)
}

func fixedNow() time.Time { return time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC) }

func newTestApp(t *testing.T) (*App, *gin.Engine, *fakeFeeds) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	feeds := &fakeFeeds{feeds: map[string]*calendar.Events{
		"en.singapore": {
			Summary: "Holidays for en.singapore",
			Items: []*calendar.Event{
				{Summary: "Deepavali", Start: &calendar.EventDateTime{Date: "2026-11-09"}, Organizer: &calendar.EventOrganizer{DisplayName: "Holidays in Singapore"}},
				{Summary: "Christmas Day", Start: &calendar.EventDateTime{Date: "2026-12-25"}},
				{Summary: "Broken", Start: &calendar.EventDateTime{Date: "25/12/2026"}},
			},
		},
		"en.usa": {
			Summary: "Holidays for en.usa",
			Items: []*calendar.Event{
				{Summary: "Christmas Day", Start: &calendar.EventDateTime{Date: "2026-12-25"}},
			},
		},
	}}
	a := &App{
		Feeds:      feeds,
		Normalizer: holiday.NewNormalizer(holiday.RandomColors{}, &seqIDs{}, time.UTC),
		Store:      store.New(fixedNow),
		Locale:     grid.English{Start: time.Sunday},
		Now:        fixedNow,
	}
	return a, NewRouter(a, []string{"*"}), feeds
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	_, r, _ := newTestApp(t)
	w := do(t, r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "OK", w.Body.String())
}

func TestGetHolidayEventsProxiesFeed(t *testing.T) {
	_, r, _ := newTestApp(t)
	w := do(t, r, http.MethodGet, "/api/holidays/en.usa", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got calendar.Events
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, "Holidays for en.usa", got.Summary)
	require.Len(t, got.Items, 1)
}

func TestGetHolidayEventsUpstreamFailure(t *testing.T) {
	_, r, _ := newTestApp(t)
	w := do(t, r, http.MethodGet, "/api/holidays/xx.nowhere", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Failed to fetch holiday events", body["error"])
	require.Contains(t, body["message"], "Not Found")
}

func TestExportHolidayICS(t *testing.T) {
	_, r, _ := newTestApp(t)
	w := do(t, r, http.MethodGet, "/api/holidays/en.singapore/ics", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/calendar")
	require.Contains(t, w.Header().Get("Content-Disposition"), "en.singapore.ics")
	require.Contains(t, w.Body.String(), "DTSTART;VALUE=DATE:20261108")
	require.Equal(t, 2, strings.Count(w.Body.String(), "BEGIN:VEVENT"))
	require.Equal(t, "1", w.Header().Get("X-Skipped-Events"))
}

func TestExportHolidayICSQuotesFilename(t *testing.T) {
	_, r, feeds := newTestApp(t)
	feeds.feeds[`en"x`] = feeds.feeds["en.usa"]

	w := do(t, r, http.MethodGet, "/api/holidays/en%22x/ics", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "0", w.Header().Get("X-Skipped-Events"))

	disposition, params, err := mime.ParseMediaType(w.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	require.Equal(t, "attachment", disposition)
	require.Equal(t, `en"x.ics`, params["filename"])
}

func TestImportRegion(t *testing.T) {
	a, r, feeds := newTestApp(t)

	w := do(t, r, http.MethodPost, "/api/imports/en.singapore", "")
	require.Equal(t, http.StatusCreated, w.Code)

	var resp importResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Holidays for en.singapore", resp.Calendar.Name)
	require.Equal(t, "en.singapore", resp.Calendar.Region)
	require.Equal(t, model.CalendarHoliday, resp.Calendar.Type)
	require.Equal(t, 2, resp.Schedules)
	require.Equal(t, 1, resp.Skipped)

	schedules := a.Store.Schedules()
	require.Len(t, schedules, 2)
	require.Equal(t, "20261108", schedules[0].DateTime.Date)
	require.Equal(t, "Singapore", schedules[0].Location)
	require.Equal(t, resp.Calendar.ID, schedules[0].CalendarID)

	w = do(t, r, http.MethodPost, "/api/imports/en.singapore", "")
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, 1, feeds.calls)

	w = do(t, r, http.MethodPost, "/api/imports/xx.nowhere", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalendarSelectionAndDeletion(t *testing.T) {
	_, r, _ := newTestApp(t)
	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/api/imports/en.singapore", "").Code)
	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/api/imports/en.usa", "").Code)

	var cals []model.Calendar
	w := do(t, r, http.MethodGet, "/api/calendars", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cals))
	require.Len(t, cals, 2)
	usa := cals[1].ID

	var onXmasEve []model.Schedule
	w = do(t, r, http.MethodGet, "/api/schedules?date=20261224", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &onXmasEve))
	require.Len(t, onXmasEve, 2)

	w = do(t, r, http.MethodPatch, "/api/calendars/"+strconv.Itoa(usa), `{"selected":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodGet, "/api/schedules?date=20261224", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &onXmasEve))
	require.Len(t, onXmasEve, 1)

	require.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPatch, "/api/calendars/"+strconv.Itoa(usa), `{}`).Code)
	require.Equal(t, http.StatusNotFound, do(t, r, http.MethodPatch, "/api/calendars/99", `{"selected":true}`).Code)

	require.Equal(t, http.StatusOK, do(t, r, http.MethodDelete, "/api/calendars/"+strconv.Itoa(usa), "").Code)
	require.Equal(t, http.StatusNotFound, do(t, r, http.MethodDelete, "/api/calendars/"+strconv.Itoa(usa), "").Code)
	require.Equal(t, http.StatusBadRequest, do(t, r, http.MethodDelete, "/api/calendars/abc", "").Code)
}

func TestListSchedulesRejectsBadDate(t *testing.T) {
	_, r, _ := newTestApp(t)
	require.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/schedules?date=2026-12-24", "").Code)

	w := do(t, r, http.MethodGet, "/api/schedules?date=20261224", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, "[]", w.Body.String())
}

func TestMonthGrid(t *testing.T) {
	_, r, _ := newTestApp(t)
	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/api/imports/en.singapore", "").Code)

	w := do(t, r, http.MethodGet, "/api/month?highlight=20261108", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp monthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 10, resp.Index)
	require.Equal(t, grid.YearMonth{Year: 2026, Month: 11}, resp.Month)
	require.Equal(t, "November 2026", resp.Title)
	require.Equal(t, "20261017", resp.Today)
	require.Len(t, resp.Weeks, 6)

	byDate := map[string]grid.Cell{}
	for _, week := range resp.Weeks {
		require.Len(t, week, 7)
		for _, c := range week {
			byDate[c.Date.String()] = c
		}
	}
	require.Len(t, byDate, 42)
	require.Equal(t, grid.ModifierSelected, byDate["20261108"].Modifier)
	require.Equal(t, grid.EventMark{HasEvents: true, Count: 1}, byDate["20261108"].Events)
	require.Equal(t, grid.ModifierNone, byDate["20261109"].Modifier)
	require.Equal(t, grid.ModifierGreyed, byDate["20261201"].Modifier)
}

func TestMonthGridDefaultsToSelectedDate(t *testing.T) {
	_, r, _ := newTestApp(t)
	var resp monthResponse
	w := do(t, r, http.MethodGet, "/api/month", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 9, resp.Index)
	require.Equal(t, grid.ModifierToday, resp.Weeks[2][6].Modifier)

	w = do(t, r, http.MethodGet, "/api/month?index=-1", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, grid.YearMonth{Year: 2025, Month: 12}, resp.Month)

	require.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/month?index=x", "").Code)
	require.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/month?highlight=x", "").Code)
}

func TestSelectedDate(t *testing.T) {
	_, r, _ := newTestApp(t)

	w := do(t, r, http.MethodPut, "/api/selected-date", `{"date":"20270102"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got selectedDateResponse
	w = do(t, r, http.MethodGet, "/api/selected-date", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, "20270102", got.Date)
	require.Equal(t, model.DateUnits{Year: 2027, Month: 1, Day: 2}, got.Units)

	var month monthResponse
	w = do(t, r, http.MethodGet, "/api/month", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &month))
	require.Equal(t, 12, month.Index)

	require.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPut, "/api/selected-date", `{"date":"20271340"}`).Code)
	require.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPut, "/api/selected-date", `{}`).Code)
}
