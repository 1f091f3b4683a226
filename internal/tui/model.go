// Package tui renders the mini calendar in a terminal.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"google.golang.org/api/calendar/v3"

	"holiday-calendar/internal/grid"
	"holiday-calendar/internal/holiday"
	appLog "holiday-calendar/internal/log"
	"holiday-calendar/internal/model"
	"holiday-calendar/internal/store"
)

// Fetcher loads a region's holiday feed.
type Fetcher interface {
	FetchRegionFeed(ctx context.Context, region string) (*calendar.Events, error)
}

// feedMsg carries the outcome of one region fetch.
type feedMsg struct {
	region string
	feed   *calendar.Events
	err    error
}

type Model struct {
	nav        *grid.Navigator
	store      *store.Store
	normalizer *holiday.Normalizer
	fetcher    Fetcher
	regions    []string

	keys   keyMap
	help   help.Model
	styles styles

	pending int
	status  string
	failed  bool
}

// New builds the model. Every region in regions is fetched once on Init.
func New(nav *grid.Navigator, st *store.Store, normalizer *holiday.Normalizer, fetcher Fetcher, regions []string) *Model {
	return &Model{
		nav:        nav,
		store:      st,
		normalizer: normalizer,
		fetcher:    fetcher,
		regions:    regions,
		keys:       defaultKeyMap(),
		help:       help.New(),
		styles:     newStyles(),
	}
}

func (m *Model) Init() tea.Cmd {
	if m.fetcher == nil || len(m.regions) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(m.regions))
	for _, region := range m.regions {
		m.pending++
		cmds = append(cmds, m.fetch(region))
	}
	m.status = fmt.Sprintf("loading %s...", strings.Join(m.regions, ", "))
	return tea.Batch(cmds...)
}

func (m *Model) fetch(region string) tea.Cmd {
	return func() tea.Msg {
		feed, err := m.fetcher.FetchRegionFeed(context.Background(), region)
		return feedMsg{region: region, feed: feed, err: err}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case feedMsg:
		m.importFeed(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.PrevMonth):
			m.nav.Decrement()
		case key.Matches(msg, m.keys.NextMonth):
			m.nav.Increment()
		case key.Matches(msg, m.keys.Left):
			m.moveHighlight(-1)
		case key.Matches(msg, m.keys.Right):
			m.moveHighlight(1)
		case key.Matches(msg, m.keys.Up):
			m.moveHighlight(-7)
		case key.Matches(msg, m.keys.Down):
			m.moveHighlight(7)
		case key.Matches(msg, m.keys.Today):
			m.nav.SelectDay(m.nav.Today())
		}
	}
	return m, nil
}

// importFeed applies a fetch result whenever it arrives.
func (m *Model) importFeed(msg feedMsg) {
	if m.pending > 0 {
		m.pending--
	}
	if msg.err != nil {
		appLog.Error("region fetch failed", msg.err, "region", msg.region)
		m.status = fmt.Sprintf("%s: %v", msg.region, msg.err)
		m.failed = true
		return
	}

	cal, schedules, errs := m.normalizer.ImportFeed(msg.feed, m.store.NextCalendarID(), msg.region)
	if err := m.store.AddCalendar(cal, schedules); err != nil {
		m.status = fmt.Sprintf("%s: %v", msg.region, err)
		m.failed = true
		return
	}
	m.failed = false
	m.status = fmt.Sprintf("%s: %d holidays", msg.region, len(schedules))
	if len(errs) > 0 {
		m.status += fmt.Sprintf(" (%d skipped)", len(errs))
	}
}

func (m *Model) moveHighlight(days int) {
	h := m.nav.Highlighted()
	if !h.Valid() {
		h = m.nav.Today()
	}
	m.nav.SelectDay(h.AddDays(days))
}

func (m *Model) View() string {
	cells := m.nav.Cells()
	g := m.nav.Grid()

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(g.Title))
	b.WriteString("\n")

	header := make([]string, 0, grid.DaysPerWeek)
	for _, label := range g.Weekdays {
		header = append(header, m.styles.Weekday.Render(label))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	b.WriteString("\n")

	for w := 0; w < grid.Weeks; w++ {
		row := make([]string, 0, grid.DaysPerWeek)
		for _, c := range cells[w*grid.DaysPerWeek : (w+1)*grid.DaysPerWeek] {
			row = append(row, m.renderCell(c))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
		b.WriteString("\n")
	}

	calendarView := m.styles.Frame.Render(strings.TrimRight(b.String(), "\n"))

	sections := []string{calendarView, m.renderAgenda()}
	if m.status != "" {
		st := m.styles.Status
		if m.failed {
			st = m.styles.Error
		}
		sections = append(sections, st.Render(m.status))
	}
	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderCell(c grid.Cell) string {
	marker := " "
	if c.Events.HasEvents {
		marker = "•"
	}
	text := fmt.Sprintf("%2d%s", c.Date.Day, marker)

	switch c.Modifier {
	case grid.ModifierToday:
		return m.styles.Today.Render(text)
	case grid.ModifierSelected:
		return m.styles.Selected.Render(text)
	case grid.ModifierGreyed:
		return m.styles.Greyed.Render(text)
	}
	return m.styles.Day.Render(text)
}

// renderAgenda lists the schedules on the highlighted day.
func (m *Model) renderAgenda() string {
	h := m.nav.Highlighted()
	if !h.Valid() {
		return ""
	}
	title := m.styles.Muted.Render(h.Time().Format("Mon, 02 Jan 2006"))
	schedules := m.store.SchedulesOn(h)
	if len(schedules) == 0 {
		return title + "\n" + m.styles.Muted.Render("  no events")
	}

	lines := []string{title}
	for _, s := range schedules {
		line := m.styles.Dot.Render("• ") + m.styles.Event.Render(s.Title)
		if s.Location != "" {
			line += m.styles.Muted.Render(" (" + s.Location + ")")
		}
		lines = append(lines, "  "+line)
	}
	return strings.Join(lines, "\n")
}

// Highlighted exposes the highlighted date, mainly for callers embedding the model.
func (m *Model) Highlighted() model.DateUnits {
	return m.nav.Highlighted()
}
