// Package color holds the terminal colors used by the CLI and the interface.
package color

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// New initializes a lipgloss.Color from an ANSI index or a hex value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// ANSI colors follow the user's terminal theme.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")
	White  = New("7")

	HiRed    = New("9")
	HiPurple = New("13")
	HiCyan   = New("14")
)

var (
	Orange = New("#ffb703")
	Gray   = New("#808080")
)

// ForLevel maps a course difficulty to its color. Unknown levels are gray.
func ForLevel(level string) lipgloss.Color {
	switch strings.ToLower(level) {
	case "beginner":
		return Green
	case "intermediate":
		return Yellow
	case "advanced":
		return Red
	default:
		return Gray
	}
}
