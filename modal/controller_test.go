package modal

import (
	"errors"
	"testing"
	"time"

	"github.com/coursecast/coursecast/catalog"
	"github.com/coursecast/coursecast/clock"
	"github.com/coursecast/coursecast/loop"
	"github.com/coursecast/coursecast/media"
	"github.com/coursecast/coursecast/media/mediatest"
	"github.com/coursecast/coursecast/playback"
	"github.com/coursecast/coursecast/progress"
	"github.com/coursecast/coursecast/progress/progresstest"
	"github.com/coursecast/coursecast/transport"
	. "github.com/smartystreets/goconvey/convey"
)

// shrinkingCatalog serves the embedded catalog minus the removed ids.
type shrinkingCatalog struct {
	removed map[string]bool
}

func (s *shrinkingCatalog) Course(id string) (*catalog.Course, error) {
	if s.removed[id] {
		return nil, catalog.ErrNotFound
	}
	return catalog.Embedded().Course(id)
}

func (s *shrinkingCatalog) remove(id string) {
	s.removed[id] = true
}

type harness struct {
	ctrl    *Controller
	courses *shrinkingCatalog
	element *mediatest.Element
	store   *progresstest.Recorder
	clock   *clock.Fake
	state   *playback.State
}

func newHarness(exec loop.Executor) *harness {
	h := &harness{
		element: mediatest.New(),
		store:   progresstest.NewRecorder(),
		clock:   clock.NewFake(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
		state:   playback.NewState(1),
		courses: &shrinkingCatalog{removed: make(map[string]bool)},
	}

	session := playback.New(playback.Config{
		Element:  h.element,
		Resolver: transport.Direct,
		Policy:   progress.NewPolicy(h.store, h.clock, exec, progress.DefaultSaveInterval),
		State:    h.state,
		Exec:     exec,
		Autoplay: true,
	})

	h.ctrl = New(Config{
		Courses: h.courses,
		Store:   h.store,
		Session: session,
		State:   h.state,
		Exec:    exec,
	})
	return h
}

func (h *harness) seed(courseID string, currentTime, duration float64) {
	h.store.Seed(courseID, progress.New(currentTime, duration, h.clock.Now()))
}

func (h *harness) lastStart() float64 {
	loads := h.element.Loads()
	So(loads, ShouldNotBeEmpty)
	return loads[len(loads)-1].StartAt
}

func TestResume(t *testing.T) {
	Convey("Given saved positions around the resume threshold", t, func() {
		h := newHarness(loop.Inline{})
		h.seed("1", 50, 600)
		h.seed("2", 10, 600)
		h.seed("3", 30, 600)

		Convey("A course saved past 30 seconds resumes there", func() {
			So(h.ctrl.Open("1"), ShouldBeNil)
			So(h.lastStart(), ShouldEqual, 50.0)
		})

		Convey("A course saved at 10 seconds starts from the beginning", func() {
			So(h.ctrl.Open("2"), ShouldBeNil)
			So(h.lastStart(), ShouldEqual, 0.0)
			So(h.element.CallsNamed("seek"), ShouldBeEmpty)
		})

		Convey("A course saved at exactly 30 seconds starts from the beginning", func() {
			So(h.ctrl.Open("3"), ShouldBeNil)
			So(h.lastStart(), ShouldEqual, 0.0)
		})

		Convey("A course never watched starts from the beginning", func() {
			So(h.ctrl.Open("4"), ShouldBeNil)
			So(h.lastStart(), ShouldEqual, 0.0)
		})
	})
}

func TestOpen(t *testing.T) {
	Convey("Given a closed controller", t, func() {
		h := newHarness(loop.Inline{})

		Convey("When a known course is opened", func() {
			So(h.ctrl.Open("1"), ShouldBeNil)

			Convey("Then it is bound and buffering", func() {
				So(h.ctrl.Phase(), ShouldEqual, Bound)
				So(h.ctrl.IsOpen(), ShouldBeTrue)
				So(h.ctrl.IsBuffering(), ShouldBeTrue)
				So(h.ctrl.Course().MustGet().ID, ShouldEqual, "1")
				So(h.state.Snapshot().CourseID.MustGet(), ShouldEqual, "1")
			})

			Convey("Then opening it again changes nothing", func() {
				So(h.ctrl.Open("1"), ShouldBeNil)
				So(h.element.Loads(), ShouldHaveLength, 1)
				So(h.element.CallsNamed("unload"), ShouldBeEmpty)
			})
		})

		Convey("When an unknown course is opened", func() {
			err := h.ctrl.Open("404")

			Convey("Then it stays closed", func() {
				So(errors.Is(err, ErrCourseNotFound), ShouldBeTrue)
				So(h.ctrl.Phase(), ShouldEqual, Closed)
				So(h.element.Loads(), ShouldBeEmpty)
			})
		})

		Convey("When the media fails to load", func() {
			So(h.ctrl.Open("1"), ShouldBeNil)
			h.element.Signal(media.Waiting)
			h.element.Fail(errors.New("decode"))

			Convey("Then the error is shown and buffering cleared", func() {
				So(h.ctrl.HasError(), ShouldBeTrue)
				So(h.ctrl.IsBuffering(), ShouldBeFalse)
				So(h.ctrl.IsOpen(), ShouldBeTrue)
			})
		})
	})

	Convey("Given a controller whose progress read has not completed", t, func() {
		exec := &loop.Manual{}
		h := newHarness(exec)
		h.seed("1", 100, 600)

		So(h.ctrl.Open("1"), ShouldBeNil)

		Convey("Then it is opening", func() {
			So(h.ctrl.Phase(), ShouldEqual, Opening)
			So(h.ctrl.IsBuffering(), ShouldBeTrue)
			So(h.state.Snapshot().CourseID.IsAbsent(), ShouldBeTrue)

			exec.Flush()
			So(h.ctrl.Phase(), ShouldEqual, Bound)
			So(h.lastStart(), ShouldEqual, 100.0)
		})

		Convey("When it is closed before the read completes", func() {
			h.ctrl.Close()
			exec.Flush()

			Convey("Then nothing is bound", func() {
				So(h.ctrl.Phase(), ShouldEqual, Closed)
				So(h.element.Loads(), ShouldBeEmpty)
			})
		})

		Convey("When another course is opened before the read completes", func() {
			So(h.ctrl.Open("2"), ShouldBeNil)
			exec.Flush()

			Convey("Then only the second course is bound", func() {
				loads := h.element.Loads()
				So(loads, ShouldHaveLength, 1)
				So(loads[0].Title, ShouldEqual, "Next.js 15 & Server Components Deep Dive")
				So(h.state.Snapshot().CourseID.MustGet(), ShouldEqual, "2")
			})
		})
	})
}

func TestWatchScenario(t *testing.T) {
	Convey("Given course 1 open with a 600 second video", t, func() {
		h := newHarness(loop.Inline{})
		So(h.ctrl.Open("1"), ShouldBeNil)
		h.element.Signal(media.CanPlay)
		h.element.Metadata(600)
		h.element.Signal(media.Play)

		Convey("When playback reaches 120 seconds and is paused", func() {
			for t := 1.0; t <= 120; t++ {
				h.element.TimeUpdate(t)
				h.clock.Advance(time.Second)
			}
			h.element.Signal(media.Pause)

			Convey("Then exactly one write records the pause", func() {
				writes := h.store.Writes()
				So(writes, ShouldHaveLength, 1)
				So(writes[0].CourseID, ShouldEqual, "1")
				So(writes[0].Record.CurrentTime, ShouldEqual, 120.0)
				So(writes[0].Record.Duration, ShouldEqual, 600.0)
				So(writes[0].Record.Completed, ShouldBeFalse)
			})

			Convey("When playback resumes to 540 seconds and goes idle", func() {
				h.element.Signal(media.Play)
				for t := 121.0; t <= 540; t++ {
					h.element.TimeUpdate(t)
					h.clock.Advance(time.Second)
				}
				h.clock.Advance(5 * time.Second)

				Convey("Then a timed write marks the course completed", func() {
					writes := h.store.Writes()
					So(writes, ShouldHaveLength, 2)
					So(writes[1].Record.CurrentTime, ShouldEqual, 540.0)
					So(writes[1].Record.Duration, ShouldEqual, 600.0)
					So(writes[1].Record.Completed, ShouldBeTrue)
					So(h.ctrl.Percent(), ShouldEqual, 90)
					So(h.ctrl.Elapsed(), ShouldEqual, "9:00")
					So(h.ctrl.Remaining(), ShouldEqual, "1:00")
				})
			})
		})
	})
}

func TestSwitchCourse(t *testing.T) {
	Convey("Given course A playing at 200 seconds", t, func() {
		h := newHarness(loop.Inline{})
		So(h.ctrl.Open("1"), ShouldBeNil)
		h.element.Metadata(600)
		h.element.TimeUpdate(200)

		Convey("When course B is opened without closing A", func() {
			So(h.ctrl.Open("2"), ShouldBeNil)

			Convey("Then A is flushed before B binds", func() {
				writes := h.store.Writes()
				So(writes, ShouldHaveLength, 1)
				So(writes[0].CourseID, ShouldEqual, "1")
				So(writes[0].Record.CurrentTime, ShouldEqual, 200.0)

				names := []string{}
				for _, c := range h.element.Calls() {
					names = append(names, c.Name)
				}
				So(names, ShouldResemble, []string{"load", "unload", "load"})
				So(h.state.Snapshot().CourseID.MustGet(), ShouldEqual, "2")
			})

			Convey("Then A's pending timer never writes into any course", func() {
				h.clock.Advance(time.Minute)
				So(h.store.Writes(), ShouldHaveLength, 1)
			})

			Convey("Then B starts from a fresh state", func() {
				So(h.state.Snapshot().Duration, ShouldEqual, 0.0)
				So(h.state.Snapshot().CurrentTime, ShouldEqual, 0.0)
			})
		})
	})

	Convey("Given course A with an event still queued on the loop", t, func() {
		exec := &loop.Manual{}
		h := newHarness(exec)
		So(h.ctrl.Open("1"), ShouldBeNil)
		exec.Flush()
		h.element.Metadata(600)
		h.element.TimeUpdate(250)

		Convey("When course B is opened before the loop drains", func() {
			So(h.ctrl.Open("2"), ShouldBeNil)
			exec.Flush()

			Convey("Then A's events are not applied to B", func() {
				snap := h.state.Snapshot()
				So(snap.CourseID.MustGet(), ShouldEqual, "2")
				So(snap.CurrentTime, ShouldEqual, 0.0)
				So(snap.Duration, ShouldEqual, 0.0)
				So(h.store.Writes(), ShouldBeEmpty)
			})
		})
	})
}

func TestClose(t *testing.T) {
	Convey("Given a playing course", t, func() {
		h := newHarness(loop.Inline{})
		So(h.ctrl.Open("1"), ShouldBeNil)
		h.element.Metadata(600)
		h.element.Signal(media.Play)
		h.element.TimeUpdate(75)

		Convey("When it is closed", func() {
			h.ctrl.Close()

			Convey("Then the shared state is empty", func() {
				snap := h.state.Snapshot()
				So(snap.CourseID.IsAbsent(), ShouldBeTrue)
				So(snap.IsPlaying, ShouldBeFalse)
				So(snap.CurrentTime, ShouldEqual, 0.0)
				So(snap.Duration, ShouldEqual, 0.0)
				So(h.ctrl.IsOpen(), ShouldBeFalse)
				So(h.ctrl.Course().IsAbsent(), ShouldBeTrue)
			})

			Convey("Then the position was flushed and the source detached", func() {
				So(h.store.Last().MustGet().Record.CurrentTime, ShouldEqual, 75.0)
				So(h.element.Source().IsAbsent(), ShouldBeTrue)
			})

			Convey("Then reopening resumes at the flushed position", func() {
				So(h.ctrl.Open("1"), ShouldBeNil)
				So(h.lastStart(), ShouldEqual, 75.0)
			})

			Convey("Then closing again is harmless", func() {
				h.ctrl.Close()
				So(h.store.Writes(), ShouldHaveLength, 1)
			})
		})
	})
}

func TestCourseLeavesCatalog(t *testing.T) {
	Convey("Given a bound course that is then removed from the catalog", t, func() {
		h := newHarness(loop.Inline{})
		So(h.ctrl.Open("1"), ShouldBeNil)
		h.element.Metadata(600)
		h.element.TimeUpdate(90)
		So(h.ctrl.Phase(), ShouldEqual, Bound)

		h.courses.remove("1")

		Convey("Then the course is reported absent and every projection still works", func() {
			So(h.ctrl.Course().IsAbsent(), ShouldBeTrue)
			So(func() {
				_ = h.ctrl.IsBuffering()
				_ = h.ctrl.HasError()
				_ = h.ctrl.Elapsed()
				_ = h.ctrl.Remaining()
				_ = h.ctrl.Percent()
			}, ShouldNotPanic)
			So(h.ctrl.Percent(), ShouldEqual, 15)
		})

		Convey("When the surface is checked", func() {
			closed := h.ctrl.CloseIfMissing()

			Convey("Then it closes and flushes the last position", func() {
				So(closed, ShouldBeTrue)
				So(h.ctrl.IsOpen(), ShouldBeFalse)
				So(h.state.Snapshot().CourseID.IsAbsent(), ShouldBeTrue)
				So(h.store.Last().MustGet().Record.CurrentTime, ShouldEqual, 90.0)
				So(h.element.Source().IsAbsent(), ShouldBeTrue)
			})

			Convey("Then checking again does nothing", func() {
				So(h.ctrl.CloseIfMissing(), ShouldBeFalse)
				So(h.store.Writes(), ShouldHaveLength, 1)
			})
		})

		Convey("Then reopening it is refused", func() {
			h.ctrl.Close()
			So(errors.Is(h.ctrl.Open("1"), ErrCourseNotFound), ShouldBeTrue)
		})
	})

	Convey("Given a course still in the catalog", t, func() {
		h := newHarness(loop.Inline{})
		So(h.ctrl.Open("2"), ShouldBeNil)

		Convey("Then the surface stays open", func() {
			So(h.ctrl.CloseIfMissing(), ShouldBeFalse)
			So(h.ctrl.IsOpen(), ShouldBeTrue)
		})
	})
}

func TestSignOut(t *testing.T) {
	Convey("Given saved progress and an open course", t, func() {
		h := newHarness(loop.Inline{})
		h.seed("2", 300, 600)
		h.seed("3", 45, 600)
		So(h.ctrl.Open("1"), ShouldBeNil)
		h.element.Metadata(600)
		h.element.TimeUpdate(90)

		Convey("When the user signs out", func() {
			h.ctrl.SignOut()

			Convey("Then everything is cleared exactly once after the session closed", func() {
				So(h.store.Clears(), ShouldEqual, 1)
				So(h.ctrl.IsOpen(), ShouldBeFalse)
				for _, id := range []string{"1", "2", "3"} {
					So(h.store.Read(id).IsAbsent(), ShouldBeTrue)
				}
			})
		})
	})
}
