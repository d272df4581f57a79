package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/coursecast/coursecast/auth"
	"github.com/coursecast/coursecast/catalog"
	"github.com/coursecast/coursecast/internal/ui"
	"github.com/coursecast/coursecast/log"
	"github.com/coursecast/coursecast/modal"
	"github.com/coursecast/coursecast/playback"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

const (
	refreshInterval = 250 * time.Millisecond
	callTimeout     = time.Second
)

// playerView is a copy of the player surface projections taken on the loop.
type playerView struct {
	open      bool
	course    mo.Option[*catalog.Course]
	snap      playback.Snapshot
	buffering bool
	failed    bool
	muted     bool
	elapsed   string
	remaining string
	percent   int
}

type (
	playerTickMsg   struct{}
	courseOpenedMsg struct{ courseID string }
	courseClosedMsg struct{}
	purchasedMsg    struct{ message string }
)

// loadCourses fills the library list from the catalog, the query and saved progress.
func (b *statefulBubble) loadCourses() tea.Cmd {
	saved, err := b.player.Store().All()
	if err != nil {
		log.Warnf("list progress: %v", err)
	}

	user := auth.Current()

	items := lo.Map(b.courses.Find(b.query), func(c *catalog.Course, _ int) list.Item {
		item := &courseItem{course: c}
		if p, ok := saved[c.ID]; ok {
			item.progress = mo.Some(p)
		}
		if u, ok := user.Get(); ok {
			item.owned = u.Owns(c.ID)
		}
		return item
	})

	if b.query.Search != "" {
		b.coursesC.Title = fmt.Sprintf("Courses - %q", b.query.Search)
	} else {
		b.coursesC.Title = "Courses"
	}

	return b.coursesC.SetItems(items)
}

// openCourse opens the player surface for courseID.
func (b *statefulBubble) openCourse(courseID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		var openErr error
		if err := b.player.Do(ctx, func(c *modal.Controller) {
			openErr = c.Open(courseID)
		}); err != nil {
			return err
		}
		if openErr != nil {
			return openErr
		}

		return courseOpenedMsg{courseID: courseID}
	}
}

// closeCourse closes the player surface and waits for the progress flush.
func (b *statefulBubble) closeCourse() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		if err := b.player.Do(ctx, func(c *modal.Controller) { c.Close() }); err != nil {
			return err
		}
		return courseClosedMsg{}
	}
}

func (b *statefulBubble) tickPlayer() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return playerTickMsg{}
	})
}

// refreshPlayer reads the surface projections on the loop.
func (b *statefulBubble) refreshPlayer() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		var v playerView
		err := b.player.Do(ctx, func(c *modal.Controller) {
			c.CloseIfMissing()
			v = playerView{
				open:      c.IsOpen(),
				course:    c.Course(),
				snap:      b.player.State().Snapshot(),
				buffering: c.IsBuffering(),
				failed:    c.HasError(),
				muted:     c.Session().Muted(),
				elapsed:   c.Elapsed(),
				remaining: c.Remaining(),
				percent:   c.Percent(),
			}
		})
		if err != nil {
			log.Warnf("refresh player: %v", err)
			return nil
		}

		return v
	}
}

// command sends a user command to the session without waiting for it.
func (b *statefulBubble) command(fn func(s *playback.Session)) tea.Cmd {
	return func() tea.Msg {
		b.player.Post(func(c *modal.Controller) { fn(c.Session()) })
		return nil
	}
}

// buyCourse purchases the selected course for the signed-in user.
func (b *statefulBubble) buyCourse(course *catalog.Course) tea.Cmd {
	return func() tea.Msg {
		msg, err := auth.Purchase(b.courses, course.ID)
		if err != nil {
			return ui.NoticeMsg{Text: err.Error()}
		}
		return purchasedMsg{message: msg}
	}
}
