// Package tui provides the primary terminal user interface: the course
// library and the player surface on top of it.
package tui

import (
	"github.com/coursecast/coursecast/catalog"
	"github.com/coursecast/coursecast/player"
	tea "github.com/charmbracelet/bubbletea"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// CourseID opens the player for this course right away.
	CourseID string
	// Query is the initial library filter.
	Query catalog.Query
}

// Run starts the player runtime and the Bubble Tea program. The runtime is
// closed, and the open course flushed, when the program exits.
func Run(options *Options) error {
	courses, err := catalog.Load()
	if err != nil {
		return err
	}

	p, err := player.New(&player.Options{Courses: courses})
	if err != nil {
		return err
	}
	p.Start()
	defer p.Close()

	bubble := newBubble(options, courses, p)
	bubble.loadCourses()

	if options.CourseID != "" {
		bubble.newState(playerState)
	} else {
		bubble.newState(coursesState)
	}

	_, err = tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
