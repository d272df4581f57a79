// Package playback binds a course's media to the single media element and
// mirrors what the element reports into the shared session State.
package playback

import (
	"context"
	"errors"
	"fmt"

	"github.com/coursecast/coursecast/log"
	"github.com/coursecast/coursecast/loop"
	"github.com/coursecast/coursecast/media"
	"github.com/coursecast/coursecast/progress"
	"github.com/coursecast/coursecast/transport"
	"github.com/coursecast/coursecast/util"
	"github.com/samber/mo"
)

// DefaultResumeThreshold is the saved position, in seconds, a session must
// exceed to be resumed instead of starting over.
const DefaultResumeThreshold = 30.0

// ErrLoad wraps every failure to bring a source to a playable state.
var ErrLoad = errors.New("unable to load video")

// Config wires a Session to its collaborators.
type Config struct {
	Element  media.Element
	Resolver transport.Resolver
	Policy   *progress.Policy
	State    *State

	// Exec is the loop thread that owns the session.
	Exec loop.Executor
	// Device runs element commands in order, off the loop thread.
	Device loop.Executor

	// ResumeThreshold defaults to DefaultResumeThreshold.
	ResumeThreshold float64
	Autoplay        bool
}

// Session drives the media element for one course at a time.
// Every method must be called on the loop thread.
type Session struct {
	el       media.Element
	resolver transport.Resolver
	policy   *progress.Policy
	state    *State
	exec     loop.Executor
	device   loop.Executor

	threshold float64
	autoplay  bool

	// binding increases on every Bind and Unbind; work tagged with an older
	// value belongs to a session that has moved on.
	binding     uint64
	courseID    mo.Option[string]
	cancel      context.CancelFunc
	unsubscribe func()
}

// New returns an unbound Session.
func New(cfg Config) *Session {
	threshold := cfg.ResumeThreshold
	if threshold <= 0 {
		threshold = DefaultResumeThreshold
	}

	device := cfg.Device
	if device == nil {
		device = loop.Inline{}
	}

	return &Session{
		el:        cfg.Element,
		resolver:  cfg.Resolver,
		policy:    cfg.Policy,
		state:     cfg.State,
		exec:      cfg.Exec,
		device:    device,
		threshold: threshold,
		autoplay:  cfg.Autoplay,
	}
}

// Bound reports whether a course is bound.
func (s *Session) Bound() bool {
	return s.courseID.IsPresent()
}

// CourseID returns the bound course, if any.
func (s *Session) CourseID() mo.Option[string] {
	return s.courseID
}

// Bind unbinds any current course and starts loading locator for courseID.
// resumeFrom is applied only when it exceeds the resume threshold.
func (s *Session) Bind(courseID, title, locator string, resumeFrom mo.Option[float64]) {
	if s.Bound() {
		s.Unbind()
	}

	s.binding++
	binding := s.binding
	s.courseID = mo.Some(courseID)

	start := 0.0
	if r, ok := resumeFrom.Get(); ok && r > s.threshold {
		start = r
		log.Infof("resuming course %s from %s", courseID, util.FormatSeconds(r))
	}

	s.state.open(courseID, start)

	s.unsubscribe = s.el.Subscribe(func(ev media.Event) {
		s.exec.Post(func() { s.handle(binding, courseID, ev) })
	})

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	log.WithFields(log.Fields{"course": courseID, "locator": locator}).Info("binding session")

	s.exec.Go(func() {
		stream, err := s.resolver.Resolve(ctx, locator)
		s.exec.Post(func() {
			if !s.current(binding) || ctx.Err() != nil {
				log.Debugf("dropping transport result for course %s", courseID)
				return
			}
			if err != nil {
				s.fail(fmt.Errorf("%w: %w", ErrLoad, err))
				return
			}

			s.load(ctx, binding, media.Source{
				URL:      stream.URL,
				Headers:  stream.Headers,
				Title:    title,
				Volume:   s.state.Snapshot().Volume,
				Muted:    s.state.Snapshot().Muted,
				StartAt:  start,
				Autoplay: s.autoplay,
			})
		})
	})
}

func (s *Session) load(ctx context.Context, binding uint64, src media.Source) {
	s.device.Post(func() {
		if ctx.Err() != nil {
			return
		}
		if err := s.el.Load(ctx, src); err != nil {
			s.exec.Post(func() {
				if s.current(binding) {
					s.fail(fmt.Errorf("%w: %w", ErrLoad, err))
				}
			})
		}
	})
}

// Unbind tears the session down. Pending transport work and the debounce
// timer are cancelled, the last known position is flushed, then the source
// is detached.
func (s *Session) Unbind() {
	courseID, ok := s.courseID.Get()
	if !ok {
		s.policy.Cancel()
		return
	}

	s.binding++
	s.courseID = mo.None[string]()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}

	snap := s.state.Snapshot()
	s.policy.Flush(courseID, snap.CurrentTime, snap.Duration)

	s.command("unload", s.el.Unload)
	log.Infof("unbound course %s", courseID)
}

// Close unbinds and releases the media element.
func (s *Session) Close() {
	s.Unbind()
	s.command("close", s.el.Close)
}

func (s *Session) current(binding uint64) bool {
	return binding == s.binding && s.Bound()
}

func (s *Session) handle(binding uint64, courseID string, ev media.Event) {
	snap := s.state.Snapshot()
	if !s.current(binding) || snap.CourseID.OrEmpty() != courseID {
		log.Debugf("dropping %s for course %s", ev, courseID)
		return
	}
	if snap.Phase == Failed {
		return
	}

	switch ev.Kind {
	case media.LoadStart, media.Waiting:
		s.state.setBuffering(true)
	case media.CanPlay, media.Playing:
		s.state.setBuffering(false)
	case media.LoadedMetadata:
		s.state.setDuration(ev.Duration)
	case media.TimeUpdate:
		s.state.setTime(ev.Time)
		s.policy.Tick(courseID, max(ev.Time, 0), snap.Duration)
	case media.Play:
		s.state.setPlaying(true)
	case media.Pause:
		s.state.setPlaying(false)
		s.policy.Pause(courseID, snap.CurrentTime, snap.Duration)
	case media.VolumeChange:
		v := util.Clamp(ev.Volume, 0, 1)
		s.state.setVolume(v)
		s.policy.RememberVolume(v)
	case media.Ended:
		end := snap.CurrentTime
		if snap.Duration > 0 {
			end = snap.Duration
			s.state.setTime(end)
		}
		s.state.setPlaying(false)
		s.policy.Pause(courseID, end, snap.Duration)
	case media.Error:
		s.fail(fmt.Errorf("%w: %w", ErrLoad, ev.Err))
	}
}

func (s *Session) fail(err error) {
	log.WithFields(log.Fields{"course": s.courseID.OrEmpty()}).Errorf("playback failed: %v", err)
	s.state.fail(err)
}

// usable reports whether user commands apply to the session.
func (s *Session) usable() bool {
	return s.Bound() && s.state.Snapshot().Phase != Failed
}

// TogglePause pauses a playing session and resumes a paused one.
func (s *Session) TogglePause() {
	if s.state.Snapshot().IsPlaying {
		s.Pause()
	} else {
		s.Play()
	}
}

func (s *Session) Play() {
	if s.usable() {
		s.command("play", s.el.Play)
	}
}

func (s *Session) Pause() {
	if s.usable() {
		s.command("pause", s.el.Pause)
	}
}

// Seek moves to t clamped to [0, duration]. It does nothing until the duration is known.
func (s *Session) Seek(t float64) {
	snap := s.state.Snapshot()
	if !s.usable() || snap.Duration <= 0 {
		return
	}

	t = util.Clamp(t, 0, snap.Duration)
	s.state.setTime(t)
	s.command("seek", func() error { return s.el.Seek(t) })
}

// Skip seeks relative to the current position.
func (s *Session) Skip(delta float64) {
	s.Seek(s.state.Snapshot().CurrentTime + delta)
}

// SetVolume applies v clamped to [0, 1] and remembers it.
func (s *Session) SetVolume(v float64) {
	v = util.Clamp(v, 0, 1)
	s.state.setVolume(v)
	s.policy.RememberVolume(v)

	if s.Bound() {
		s.command("volume", func() error { return s.el.SetVolume(v) })
	}
}

// ToggleMute silences the sound or brings it back. The volume and the saved
// volume are left untouched, and the mute outlives the binding.
func (s *Session) ToggleMute() {
	muted := !s.state.Snapshot().Muted
	s.state.setMuted(muted)

	if s.Bound() {
		s.command("mute", func() error { return s.el.SetMuted(muted) })
	}
}

// Muted reports whether the sound is off.
func (s *Session) Muted() bool {
	return s.state.Snapshot().Muted
}

// command runs an element command on the device executor and logs failures.
func (s *Session) command(name string, fn func() error) {
	s.device.Post(func() {
		if err := fn(); err != nil {
			log.Warnf("media %s: %v", name, err)
		}
	})
}
