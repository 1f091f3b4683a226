package tui

import "github.com/charmbracelet/lipgloss"

// Tokyo Night palette.
var (
	colorForeground    = lipgloss.Color("#c0caf5")
	colorForegroundDim = lipgloss.Color("#565f89")
	colorPrimary       = lipgloss.Color("#7aa2f7")
	colorAccent        = lipgloss.Color("#7dcfff")
	colorSelection     = lipgloss.Color("#33467c")
	colorError         = lipgloss.Color("#f7768e")
	colorBorder        = lipgloss.Color("#3b4261")
)

const cellWidth = 4

type styles struct {
	Frame    lipgloss.Style
	Title    lipgloss.Style
	Weekday  lipgloss.Style
	Day      lipgloss.Style
	Today    lipgloss.Style
	Selected lipgloss.Style
	Greyed   lipgloss.Style
	Dot      lipgloss.Style
	Event    lipgloss.Style
	Muted    lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
}

func newStyles() styles {
	cell := lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Right)
	return styles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Weekday:  cell.Foreground(colorForegroundDim),
		Day:      cell.Foreground(colorForeground),
		Today:    cell.Bold(true).Foreground(colorPrimary),
		Selected: cell.Bold(true).Background(colorSelection).Foreground(colorForeground),
		Greyed:   cell.Foreground(colorForegroundDim),
		Dot:      lipgloss.NewStyle().Foreground(colorAccent),
		Event:    lipgloss.NewStyle().Foreground(colorForeground),
		Muted:    lipgloss.NewStyle().Foreground(colorForegroundDim),
		Status:   lipgloss.NewStyle().Foreground(colorAccent),
		Error:    lipgloss.NewStyle().Foreground(colorError),
	}
}
