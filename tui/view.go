package tui

import (
	"fmt"
	"strings"

	"github.com/coursecast/coursecast/color"
	"github.com/coursecast/coursecast/icon"
	"github.com/coursecast/coursecast/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case coursesState:
		output = b.viewCourses()
	case searchState:
		output = b.viewSearch()
	case playerState:
		output = b.viewPlayer()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewCourses() string {
	return listExtraPaddingStyle.Render(b.coursesC.View())
}

func (b *statefulBubble) viewSearch() string {
	lines := []string{
		style.Title("Search Courses"),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.searchSuggestion.Get(); ok {
		lines = append(lines, "", style.Faint(fmt.Sprintf("%s %s", icon.Get(icon.Search), suggestion)))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewPlayer() string {
	v := b.view

	title := "Opening..."
	var details string
	if course, ok := v.course.Get(); ok {
		title = course.Title
		details = style.Faint(fmt.Sprintf("%s • %s • %s", course.Instructor, course.Level, course.Category))
	}

	var status string
	switch {
	case v.failed:
		status = style.Fg(color.Red)(icon.Get(icon.Fail) + " Unable to load video")
	case v.buffering || !v.open:
		status = b.spinnerC.View() + " Buffering"
	case v.snap.IsPlaying:
		status = style.Fg(color.Green)(icon.Get(icon.Play) + " Playing")
	default:
		status = icon.Get(icon.Pause) + " Paused"
	}

	volume := fmt.Sprintf("%s %d%%", icon.Get(icon.Volume), int(v.snap.Volume*100+0.5))
	if v.muted {
		volume = icon.Get(icon.Muted) + " Muted"
	}

	lines := []string{
		style.Title("Now Playing"),
		"",
		style.Truncate(b.width)(style.Fg(color.Purple)(title)),
		style.Truncate(b.width)(details),
		"",
		status,
		"",
		b.progressC.View(),
		fmt.Sprintf("%s / -%s", v.elapsed, v.remaining),
		"",
		fmt.Sprintf("Progress: %d%%   %s", v.percent, volume),
	}

	if v.failed && v.snap.Err != nil {
		lines = append(lines, "", wrap.String(style.Faint(v.snap.Err.Error()), b.width))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(style.ErrorColor).Bold(true)
	errorMsg := wrap.String(errorStyle.Render(b.lastError.Error()), b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
