// Package style provides small rendering helpers on top of lipgloss.
package style

import (
	"fmt"

	"github.com/coursecast/coursecast/color"
	"github.com/charmbracelet/lipgloss"
)

// Interface palette.
var (
	Base   = lipgloss.Color("#1e1e2e")
	Text   = lipgloss.Color("#cdd6f4")
	Mauve  = lipgloss.Color("#cba6f7")
	Red    = lipgloss.Color("#f38ba8")
	Yellow = lipgloss.Color("#f9e2af")
	Green  = lipgloss.Color("#a6e3a1")

	AccentColor = Mauve
	ErrorColor  = Red
	HiRed       = Red
	FaintColor  = lipgloss.Color("#6c7086")
)

// New returns an empty style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg returns a renderer that applies the foreground color c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return New().Foreground(c).Render(s) }
}

// Truncate returns a renderer that constrains the output to max cells.
func Truncate(max int) func(string) string {
	return func(s string) string { return New().Width(max).Render(s) }
}

var (
	Faint = func(s string) string { return New().Faint(true).Render(s) }
	Bold  = func(s string) string { return New().Bold(true).Render(s) }
)

// Title renders a section banner.
var Title = func(s string) string {
	return New().Foreground(color.New("230")).Background(color.New("62")).Padding(0, 1).Render(s)
}

// ErrorTitle renders the banner of the failure view.
var ErrorTitle = func(s string) string {
	return New().Foreground(color.New("230")).Background(color.Red).Padding(0, 1).Render(s)
}

// Level renders a course difficulty in its color.
func Level(level string) string {
	return Fg(color.ForLevel(level))(level)
}

// Price renders a course price. Zero is shown as Free.
func Price(price float64) string {
	if price <= 0 {
		return Fg(color.Green)("Free")
	}
	return Fg(color.Green)(fmt.Sprintf("$%.2f", price))
}
