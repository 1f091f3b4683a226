// Package store holds the in-memory application state: imported calendars,
// their schedules and the selected date.
package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"holiday-calendar/internal/model"
)

var (
	ErrCalendarNotFound = errors.New("calendar not found")
	ErrRegionImported   = errors.New("region already imported")
)

// Store is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	nextID    int
	calendars map[int]model.Calendar
	schedules []model.Schedule
	selected  model.DateUnits
}

// New returns an empty store whose selected date is today.
func New(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		nextID:    1,
		calendars: make(map[int]model.Calendar),
		selected:  model.FromTime(now()),
	}
}

// NextCalendarID reserves a fresh calendar id.
func (s *Store) NextCalendarID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	return id
}

// AddCalendar stores cal with its schedules. A holiday calendar for a
// region that is already present is rejected.
func (s *Store) AddCalendar(cal model.Calendar, schedules []model.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cal.Region != "" {
		for _, c := range s.calendars {
			if c.Region == cal.Region {
				return ErrRegionImported
			}
		}
	}
	s.calendars[cal.ID] = cal
	if cal.ID >= s.nextID {
		s.nextID = cal.ID + 1
	}
	s.schedules = append(s.schedules, schedules...)
	return nil
}

// AddSchedules appends schedules without touching calendars.
func (s *Store) AddSchedules(schedules ...model.Schedule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedules = append(s.schedules, schedules...)
}

// HasRegion reports whether a calendar for region was imported.
func (s *Store) HasRegion(region string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.calendars {
		if c.Region == region {
			return true
		}
	}
	return false
}

// Calendar looks up one calendar by id.
func (s *Store) Calendar(id int) (model.Calendar, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.calendars[id]
	return c, ok
}

// Calendars returns all calendars ordered by id.
func (s *Store) Calendars() []model.Calendar {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Calendar, 0, len(s.calendars))
	for _, c := range s.calendars {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) SetCalendarSelected(id int, selected bool) (model.Calendar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.calendars[id]
	if !ok {
		return model.Calendar{}, ErrCalendarNotFound
	}
	c.Selected = selected
	s.calendars[id] = c
	return c, nil
}

// RemoveCalendar deletes a calendar and every schedule pointing at it.
func (s *Store) RemoveCalendar(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.calendars[id]; !ok {
		return ErrCalendarNotFound
	}
	delete(s.calendars, id)

	kept := s.schedules[:0]
	for _, sc := range s.schedules {
		if sc.CalendarID != id {
			kept = append(kept, sc)
		}
	}
	s.schedules = kept
	return nil
}

// Schedules returns every stored schedule in insertion order.
func (s *Store) Schedules() []model.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Schedule(nil), s.schedules...)
}

// CalendarSchedules returns the schedules of one calendar.
func (s *Store) CalendarSchedules(id int) []model.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Schedule
	for _, sc := range s.schedules {
		if sc.CalendarID == id {
			out = append(out, sc)
		}
	}
	return out
}

// VisibleSchedules filters out schedules of deselected calendars.
// Schedules whose calendar is unknown stay visible.
func (s *Store) VisibleSchedules() []model.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Schedule, 0, len(s.schedules))
	for _, sc := range s.schedules {
		if c, ok := s.calendars[sc.CalendarID]; ok && !c.Selected {
			continue
		}
		out = append(out, sc)
	}
	return out
}

// SchedulesOn returns the visible schedules stored on d.
func (s *Store) SchedulesOn(d model.DateUnits) []model.Schedule {
	key := d.String()
	var out []model.Schedule
	for _, sc := range s.VisibleSchedules() {
		if sc.DateTime.Date == key {
			out = append(out, sc)
		}
	}
	return out
}

func (s *Store) SelectedDate() model.DateUnits {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

func (s *Store) SetSelectedDate(d model.DateUnits) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = d
}
