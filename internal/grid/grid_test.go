package grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"holiday-calendar/internal/model"
)

func du(y, m, d int) model.DateUnits { return model.DateUnits{Year: y, Month: m, Day: d} }

func TestBuildGridAlwaysSixWeeks(t *testing.T) {
	today := du(2026, 10, 17)
	for _, start := range []time.Weekday{time.Sunday, time.Monday} {
		locale := English{Start: start}
		// Ten years either side covers every month length and leap years.
		for idx := -120; idx <= 120; idx++ {
			g := BuildGrid(today, idx, locale)
			cells := g.Cells()
			require.Len(t, cells, 42)

			require.Equal(t, start, cells[0].Time().Weekday())
			for i := 1; i < len(cells); i++ {
				require.Equal(t, cells[i-1].AddDays(1), cells[i], "index %d cell %d", idx, i)
			}

			first := du(g.Month.Year, g.Month.Month, 1)
			require.Contains(t, cells[:7], first)
			// The displayed month sits at row 2, column 1 in every layout.
			require.True(t, g.Month.Contains(g.Days[2][1]))
		}
	}
}

func TestBuildGridFebruary2026StartsOnSunday(t *testing.T) {
	g := BuildGrid(du(2026, 10, 17), 1, English{Start: time.Sunday})
	require.Equal(t, YearMonth{Year: 2026, Month: 2}, g.Month)
	require.Equal(t, "February 2026", g.Title)
	require.Equal(t, du(2026, 2, 1), g.Days[0][0])
	require.Equal(t, du(2026, 3, 14), g.Days[5][6])
	require.Equal(t, [7]string{"S", "M", "T", "W", "T", "F", "S"}, g.Weekdays)
}

func TestBuildGridMondayStart(t *testing.T) {
	// 1 Oct 2026 is a Thursday.
	g := BuildGrid(du(2026, 10, 17), 9, English{Start: time.Monday})
	require.Equal(t, du(2026, 9, 28), g.Days[0][0])
	require.Equal(t, [7]string{"M", "T", "W", "T", "F", "S", "S"}, g.Weekdays)
}

func TestMonthAtAndIndexFor(t *testing.T) {
	today := du(2026, 10, 17)
	require.Equal(t, YearMonth{2026, 1}, MonthAt(0, today))
	require.Equal(t, YearMonth{2025, 12}, MonthAt(-1, today))
	require.Equal(t, YearMonth{2027, 1}, MonthAt(12, today))
	require.Equal(t, YearMonth{2024, 2}, MonthAt(-23, today))

	require.Equal(t, 9, IndexFor(du(2026, 10, 1), today))
	require.Equal(t, 12, IndexFor(du(2027, 1, 5), today))
	require.Equal(t, -1, IndexFor(du(2025, 12, 31), today))
	require.Equal(t, -23, IndexFor(du(2024, 2, 29), today))

	for idx := -30; idx <= 30; idx++ {
		ym := MonthAt(idx, today)
		require.Equal(t, idx, IndexFor(du(ym.Year, ym.Month, 1), today))
	}
}

func TestClassifyDay(t *testing.T) {
	today := du(2026, 10, 17)
	oct := YearMonth{2026, 10}

	require.Equal(t, ModifierToday, ClassifyDay(today, du(2026, 10, 3), oct, today))
	// Today outranks selected.
	require.Equal(t, ModifierToday, ClassifyDay(today, today, oct, today))
	require.Equal(t, ModifierSelected, ClassifyDay(du(2026, 10, 3), du(2026, 10, 3), oct, today))
	require.Equal(t, ModifierNone, ClassifyDay(du(2026, 10, 4), du(2026, 10, 3), oct, today))
	require.Equal(t, ModifierGreyed, ClassifyDay(du(2026, 9, 30), du(2026, 9, 30), oct, today))

	// Today shown as an overflow day of another month is greyed.
	nov := YearMonth{2026, 11}
	require.Equal(t, ModifierGreyed, ClassifyDay(today, today, nov, today))
}

func TestClassifyDayExactlyOneModifier(t *testing.T) {
	today := du(2026, 10, 17)
	valid := map[Modifier]bool{ModifierNone: true, ModifierToday: true, ModifierGreyed: true, ModifierSelected: true}
	g := BuildGrid(today, 9, English{})
	for _, highlighted := range []model.DateUnits{today, du(2026, 10, 1), du(2026, 9, 27)} {
		for _, d := range g.Cells() {
			m := ClassifyDay(d, highlighted, g.Month, today)
			require.True(t, valid[m])
			if d == today {
				require.Equal(t, ModifierToday, m)
			}
		}
	}
}

func TestAnnotateEvents(t *testing.T) {
	schedules := []model.Schedule{
		{ID: "a", DateTime: model.DateTimeInfo{Date: "20261224"}},
		{ID: "b", DateTime: model.DateTimeInfo{Date: "20261224"}},
		{ID: "c", DateTime: model.DateTimeInfo{Date: "20261231"}},
		{ID: "d"},
	}
	require.Equal(t, EventMark{HasEvents: true, Count: 2}, AnnotateEvents(du(2026, 12, 24), schedules))
	require.Equal(t, EventMark{HasEvents: true, Count: 1}, AnnotateEvents(du(2026, 12, 31), schedules))
	require.Equal(t, EventMark{}, AnnotateEvents(du(2026, 12, 25), schedules))
	require.Equal(t, EventMark{}, AnnotateEvents(du(2026, 12, 25), nil))
}
