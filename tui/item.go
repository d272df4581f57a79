package tui

import (
	"fmt"
	"strings"

	"github.com/coursecast/coursecast/catalog"
	"github.com/coursecast/coursecast/icon"
	"github.com/coursecast/coursecast/key"
	"github.com/coursecast/coursecast/progress"
	"github.com/coursecast/coursecast/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// courseItem is a course row in the library list.
type courseItem struct {
	course   *catalog.Course
	progress mo.Option[*progress.CourseProgress]
	owned    bool
}

func (c *courseItem) Title() string {
	title := c.course.Title
	if c.owned {
		title = fmt.Sprintf("%s %s", title, lipgloss.NewStyle().Foreground(style.AccentColor).Render(icon.Get(icon.Owned)))
	}
	return title
}

func (c *courseItem) Description() string {
	parts := []string{
		c.course.Instructor,
		style.Level(c.course.Level),
		lipgloss.NewStyle().Foreground(style.AccentColor).Render(fmt.Sprintf("★ %.1f", c.course.Rating)),
		style.Price(c.course.Price),
		c.course.Duration,
	}

	if p, ok := c.progress.Get(); ok && viper.GetBool(key.TUIShowProgress) {
		switch {
		case p.Completed:
			parts = append(parts, lipgloss.NewStyle().Foreground(style.Green).Render(icon.Get(icon.Completed)+" Completed"))
		case p.Percent() > 0:
			parts = append(parts, lipgloss.NewStyle().Foreground(style.Yellow).Render(fmt.Sprintf("%d%%", p.Percent())))
		}
	}

	return strings.Join(parts, " • ")
}

func (c *courseItem) FilterValue() string {
	return c.course.Title + " " + c.course.Instructor
}
