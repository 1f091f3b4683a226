package grid

import (
	"time"

	"holiday-calendar/internal/model"
)

// Selection is the externally owned state a Navigator reads and writes.
type Selection interface {
	SelectedDate() model.DateUnits
	SetSelectedDate(model.DateUnits)
	VisibleSchedules() []model.Schedule
}

type initialState int

const (
	initialAbsent initialState = iota
	initialPending
	initialConsumed
)

// Cell is one annotated grid day.
type Cell struct {
	Date     model.DateUnits `json:"date"`
	Modifier Modifier        `json:"modifier"`
	Events   EventMark       `json:"events"`
}

// Navigator is the month navigation state of one mini calendar.
//
// An initial date, when given, is highlighted until the first SelectDay;
// from then on the highlight follows Selection.SelectedDate. Whenever the
// highlighted date changes the displayed month moves to contain it.
type Navigator struct {
	sel    Selection
	locale Locale
	today  model.DateUnits

	initial     initialState
	initialDate model.DateUnits

	index     int
	grid      MonthGrid
	lastShown model.DateUnits
}

// NewNavigator captures today from now and positions the grid on the
// highlighted date's month. initial may be nil.
func NewNavigator(sel Selection, locale Locale, now func() time.Time, initial *model.DateUnits) *Navigator {
	if now == nil {
		now = time.Now
	}
	if locale == nil {
		locale = English{}
	}
	n := &Navigator{
		sel:    sel,
		locale: locale,
		today:  model.FromTime(now()),
	}
	if initial != nil {
		n.initial = initialPending
		n.initialDate = *initial
	}

	n.lastShown = n.Highlighted()
	if n.lastShown.Valid() {
		n.JumpTo(n.lastShown)
	} else {
		n.setIndex(n.today.Month - 1)
	}
	return n
}

// Today is the reference date captured at construction.
func (n *Navigator) Today() model.DateUnits { return n.today }

// Index is the displayed month index.
func (n *Navigator) Index() int { return n.index }

// Grid is the currently displayed month.
func (n *Navigator) Grid() MonthGrid { return n.grid }

// Highlighted is the pending initial date, or the selection's date once
// the initial date has been consumed (or was never given).
func (n *Navigator) Highlighted() model.DateUnits {
	if n.initial == initialPending {
		return n.initialDate
	}
	return n.sel.SelectedDate()
}

func (n *Navigator) Decrement() { n.setIndex(n.index - 1) }

func (n *Navigator) Increment() { n.setIndex(n.index + 1) }

// JumpTo displays the month containing d.
func (n *Navigator) JumpTo(d model.DateUnits) {
	n.setIndex(IndexFor(d, n.today))
}

// SelectDay makes d the selected date. The first call consumes the
// initial date. A day outside the displayed month moves the grid first.
func (n *Navigator) SelectDay(d model.DateUnits) {
	if n.initial == initialPending {
		n.initial = initialConsumed
	}
	if !n.grid.Month.Contains(d) {
		n.JumpTo(d)
	}
	n.sel.SetSelectedDate(d)
	n.Sync()
}

// Sync moves the grid to the highlighted date's month if the highlight
// changed since it was last seen, e.g. after an external selection.
func (n *Navigator) Sync() {
	h := n.Highlighted()
	if h == n.lastShown {
		return
	}
	n.lastShown = h
	if h.Valid() {
		n.JumpTo(h)
	}
}

// Classify returns the modifier of d in the displayed month.
func (n *Navigator) Classify(d model.DateUnits) Modifier {
	n.Sync()
	return ClassifyDay(d, n.Highlighted(), n.grid.Month, n.today)
}

// Cells annotates every grid day against the visible schedules.
func (n *Navigator) Cells() []Cell {
	n.Sync()
	highlighted := n.Highlighted()
	schedules := n.sel.VisibleSchedules()

	days := n.grid.Cells()
	out := make([]Cell, len(days))
	for i, d := range days {
		out[i] = Cell{
			Date:     d,
			Modifier: ClassifyDay(d, highlighted, n.grid.Month, n.today),
			Events:   AnnotateEvents(d, schedules),
		}
	}
	return out
}

func (n *Navigator) setIndex(i int) {
	n.index = i
	n.grid = BuildGrid(n.today, i, n.locale)
}
