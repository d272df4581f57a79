// Package modal owns the player surface: at most one course is open at a
// time, and opening, switching and closing courses go through here.
package modal

import (
	"errors"
	"fmt"

	"github.com/coursecast/coursecast/catalog"
	"github.com/coursecast/coursecast/log"
	"github.com/coursecast/coursecast/loop"
	"github.com/coursecast/coursecast/playback"
	"github.com/coursecast/coursecast/progress"
	"github.com/coursecast/coursecast/util"
	"github.com/samber/mo"
)

// ErrCourseNotFound is returned when opening a course the catalog does not have.
var ErrCourseNotFound = errors.New("course not found")

// Phase is the lifecycle state of the surface.
type Phase int

const (
	Closed Phase = iota
	// Opening means saved progress is being read before binding.
	Opening
	Bound
)

func (p Phase) String() string {
	switch p {
	case Closed:
		return "closed"
	case Opening:
		return "opening"
	case Bound:
		return "bound"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Courses looks up a course by id.
type Courses interface {
	Course(id string) (*catalog.Course, error)
}

// Config wires a Controller to its collaborators.
type Config struct {
	Courses Courses
	Store   progress.Store
	Session *playback.Session
	State   *playback.State
	Exec    loop.Executor
}

// Controller drives the open/close transitions of the player.
// All methods must be called on the loop thread.
type Controller struct {
	courses Courses
	store   progress.Store
	session *playback.Session
	state   *playback.State
	exec    loop.Executor

	phase    Phase
	courseID mo.Option[string]
	// gen invalidates progress reads of opens that were superseded.
	gen uint64
}

// New returns a closed Controller.
func New(cfg Config) *Controller {
	return &Controller{
		courses: cfg.Courses,
		store:   cfg.Store,
		session: cfg.Session,
		state:   cfg.State,
		exec:    cfg.Exec,
	}
}

// Open shows the course. A different open course is closed first, the same
// one is left alone. The saved position is read and handed to the session
// as the resume point.
func (c *Controller) Open(courseID string) error {
	if current, ok := c.courseID.Get(); ok && current == courseID {
		return nil
	}

	if c.phase != Closed {
		c.Close()
	}

	course, err := c.courses.Course(courseID)
	if err != nil {
		log.Warnf("open course %s: %v", courseID, err)
		return fmt.Errorf("%w: %s", ErrCourseNotFound, courseID)
	}

	c.gen++
	gen := c.gen
	c.phase = Opening
	c.courseID = mo.Some(courseID)

	c.exec.Go(func() {
		saved := c.store.Read(courseID)

		c.exec.Post(func() {
			if gen != c.gen || c.phase != Opening {
				return
			}

			resume := mo.None[float64]()
			if p, ok := saved.Get(); ok {
				resume = mo.Some(p.CurrentTime)
			}

			c.session.Bind(course.ID, course.Title, course.VideoURL, resume)
			c.phase = Bound
		})
	})

	return nil
}

// Close tears down the open session, if any, and empties the shared state.
func (c *Controller) Close() {
	c.gen++

	if c.phase == Bound {
		c.session.Unbind()
	}

	c.phase = Closed
	c.courseID = mo.None[string]()
	c.state.Reset()
}

// SignOut closes the surface and then forgets every saved position.
func (c *Controller) SignOut() {
	c.Close()

	if err := c.store.ClearAll(); err != nil {
		log.Warnf("clear progress on sign out: %v", err)
	}
}

// Session returns the playback session for user commands.
func (c *Controller) Session() *playback.Session {
	return c.session
}

// Phase returns the lifecycle state.
func (c *Controller) Phase() Phase {
	return c.phase
}

// IsOpen reports whether a course is open or opening.
func (c *Controller) IsOpen() bool {
	return c.phase != Closed
}

// Course returns the open course. A course that has disappeared from the
// catalog is reported as absent so that nothing is rendered for it.
func (c *Controller) Course() mo.Option[*catalog.Course] {
	id, ok := c.courseID.Get()
	if !ok {
		return mo.None[*catalog.Course]()
	}

	course, err := c.courses.Course(id)
	if err != nil {
		return mo.None[*catalog.Course]()
	}
	return mo.Some(course)
}

// CloseIfMissing closes the surface when the open course has left the
// catalog and reports whether it did.
func (c *Controller) CloseIfMissing() bool {
	if c.phase == Closed || c.Course().IsPresent() {
		return false
	}

	log.Warnf("course %s is no longer in the catalog, closing", c.courseID.OrEmpty())
	c.Close()
	return true
}

// IsBuffering reports whether the surface is waiting for media.
func (c *Controller) IsBuffering() bool {
	return c.phase == Opening || (c.phase == Bound && c.state.Snapshot().Buffering)
}

// HasError reports whether the open session failed to load.
func (c *Controller) HasError() bool {
	return c.phase == Bound && c.state.Snapshot().Phase == playback.Failed
}

// Elapsed is the formatted playback position.
func (c *Controller) Elapsed() string {
	return util.FormatSeconds(c.state.Snapshot().CurrentTime)
}

// Remaining is the formatted time left.
func (c *Controller) Remaining() string {
	return util.FormatSeconds(c.state.Snapshot().Remaining())
}

// Percent is the watched share of the media, 0 while the duration is unknown.
func (c *Controller) Percent() int {
	snap := c.state.Snapshot()
	if snap.Duration <= 0 {
		return 0
	}
	return int(util.Clamp(snap.CurrentTime/snap.Duration*100, 0, 100))
}
