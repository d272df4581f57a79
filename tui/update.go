package tui

import (
	"fmt"

	"github.com/coursecast/coursecast/auth"
	"github.com/coursecast/coursecast/internal/ui"
	"github.com/coursecast/coursecast/key"
	"github.com/coursecast/coursecast/playback"
	"github.com/coursecast/coursecast/query"
	"github.com/coursecast/coursecast/util"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

func (b *statefulBubble) Init() tea.Cmd {
	if id := b.options.CourseID; id != "" {
		return tea.Batch(b.openCourse(id), b.spinnerC.Tick)
	}
	return textinput.Blink
}

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = uiCmd
	}

	switch msg := msg.(type) {
	case error:
		b.raiseError(msg)
		return b, cmd
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case courseOpenedMsg:
		b.view = playerView{}
		b.resumeNoticed = false
		b.newState(playerState)
		return b, tea.Batch(cmd, b.refreshPlayer(), b.spinnerC.Tick)
	case courseClosedMsg:
		return b, tea.Batch(cmd, b.loadCourses())
	case purchasedMsg:
		return b, tea.Batch(cmd, ui.Notify(msg.message), b.loadCourses())
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	}

	switch b.state {
	case coursesState:
		return b.updateCourses(msg, cmd)
	case searchState:
		return b.updateSearch(msg, cmd)
	case playerState:
		return b.updatePlayer(msg, cmd)
	case errorState:
		return b.updateError(msg, cmd)
	}

	return b, cmd
}

func (b *statefulBubble) updateCourses(msg tea.Msg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		item, selected := b.coursesC.SelectedItem().(*courseItem)

		switch {
		case bubblesKey.Matches(msg, b.keymap.watch) && selected:
			return b, tea.Batch(cmd, b.openCourse(item.course.ID))
		case bubblesKey.Matches(msg, b.keymap.search):
			b.inputC.SetValue(b.query.Search)
			b.inputC.CursorEnd()
			b.newState(searchState)
			return b, tea.Batch(cmd, b.inputC.Focus())
		case bubblesKey.Matches(msg, b.keymap.buy) && selected:
			if !auth.SignedIn() {
				return b, tea.Batch(cmd, ui.Notify("Sign in with `coursecast login` to buy courses"))
			}
			return b, tea.Batch(cmd, b.buyCourse(item.course))
		case bubblesKey.Matches(msg, b.keymap.back) && b.query.Search != "":
			b.query.Search = ""
			return b, tea.Batch(cmd, b.loadCourses())
		}
	}

	var listCmd tea.Cmd
	b.coursesC, listCmd = b.coursesC.Update(msg)
	return b, tea.Batch(cmd, listCmd)
}

func (b *statefulBubble) updateSearch(msg tea.Msg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			b.query.Search = b.inputC.Value()
			if err := query.Remember(b.query.Search, 1); err != nil {
				return b, func() tea.Msg { return err }
			}
			b.inputC.Blur()
			b.previousState()
			b.coursesC.ResetSelected()
			return b, tea.Batch(cmd, b.loadCourses())
		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion) && b.searchSuggestion.IsPresent():
			b.inputC.SetValue(b.searchSuggestion.MustGet())
			b.searchSuggestion = mo.None[string]()
			b.inputC.CursorEnd()
			return b, cmd
		case bubblesKey.Matches(msg, b.keymap.back):
			b.inputC.Blur()
			b.previousState()
			return b, cmd
		}
	}

	var inputCmd tea.Cmd
	b.inputC, inputCmd = b.inputC.Update(msg)

	b.searchSuggestion = mo.None[string]()
	if value := b.inputC.Value(); value != "" {
		if suggestion, ok := query.Suggest(value).Get(); ok && suggestion != value {
			b.searchSuggestion = mo.Some(suggestion)
		}
	}

	return b, tea.Batch(cmd, inputCmd)
}

func (b *statefulBubble) updatePlayer(msg tea.Msg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	skip := float64(viper.GetInt(key.PlayerSkipSeconds))
	step := float64(viper.GetInt(key.PlayerVolumeStep)) / 100

	switch msg := msg.(type) {
	case playerTickMsg:
		return b, tea.Batch(cmd, b.refreshPlayer())
	case playerView:
		b.view = msg
		if !msg.open {
			return b.leavePlayer(tea.Batch(cmd, b.loadCourses()))
		}

		if from := msg.snap.ResumedFrom; from > 0 && !b.resumeNoticed {
			b.resumeNoticed = true
			cmd = tea.Batch(cmd, ui.Notify(fmt.Sprintf("Resumed from %s", util.FormatSeconds(from))))
		}

		return b, tea.Batch(cmd, b.progressC.SetPercent(float64(msg.percent)/100), b.tickPlayer())
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			return b.leavePlayer(tea.Batch(cmd, b.closeCourse()))
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.playPause):
			return b, tea.Batch(cmd, b.command((*playback.Session).TogglePause))
		case bubblesKey.Matches(msg, b.keymap.seekBack):
			return b, tea.Batch(cmd, b.command(func(s *playback.Session) { s.Skip(-skip) }))
		case bubblesKey.Matches(msg, b.keymap.seekForward):
			return b, tea.Batch(cmd, b.command(func(s *playback.Session) { s.Skip(skip) }))
		case bubblesKey.Matches(msg, b.keymap.volumeUp):
			return b, tea.Batch(cmd, b.command(func(s *playback.Session) {
				s.SetVolume(b.player.State().Snapshot().Volume + step)
			}))
		case bubblesKey.Matches(msg, b.keymap.volumeDown):
			return b, tea.Batch(cmd, b.command(func(s *playback.Session) {
				s.SetVolume(b.player.State().Snapshot().Volume - step)
			}))
		case bubblesKey.Matches(msg, b.keymap.mute):
			return b, tea.Batch(cmd, b.command((*playback.Session).ToggleMute))
		}
	}

	var spinnerCmd tea.Cmd
	model, progressCmd := b.progressC.Update(msg)
	b.progressC = model.(progress.Model)
	b.spinnerC, spinnerCmd = b.spinnerC.Update(msg)
	return b, tea.Batch(cmd, progressCmd, spinnerCmd)
}

// leavePlayer returns to the library.
func (b *statefulBubble) leavePlayer(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	b.view = playerView{}
	if b.statesHistory.len() > 0 {
		b.previousState()
	} else {
		b.setState(coursesState)
	}
	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.Msg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.statesHistory.len() > 0 {
				b.previousState()
			} else {
				b.setState(coursesState)
			}
		}
	}
	return b, cmd
}
