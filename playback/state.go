package playback

import (
	"fmt"
	"sync"

	"github.com/coursecast/coursecast/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/exp/slices"
)

// Phase is the load sub-state of a session.
type Phase int

const (
	// Idle means no source is bound.
	Idle Phase = iota
	// Loading means a source is being resolved or fetched.
	Loading
	// Ready means the element can render the source.
	Ready
	// Failed is terminal until the next bind.
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Snapshot is a copy of the shared session state.
type Snapshot struct {
	CourseID    mo.Option[string]
	IsPlaying   bool
	CurrentTime float64
	Duration    float64
	Volume      float64
	Muted       bool

	Phase     Phase
	Buffering bool
	Err       error

	// ResumedFrom is the position the session was resumed at, 0 if it started from the beginning.
	ResumedFrom float64
}

// Remaining returns the time left, 0 while the duration is unknown.
func (s Snapshot) Remaining() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return max(s.Duration-s.CurrentTime, 0)
}

// State is the container of the one active playback session.
//
// Reads are safe from any goroutine. Mutations happen on the loop thread
// through the transition methods, each of which notifies subscribers.
type State struct {
	mu   sync.Mutex
	snap Snapshot
	next int
	subs map[int]func(Snapshot)
}

// NewState returns an empty state with the given volume.
func NewState(volume float64) *State {
	return &State{snap: Snapshot{Volume: util.Clamp(volume, 0, 1)}}
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Subscribe registers fn to receive every new snapshot.
func (s *State) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs == nil {
		s.subs = make(map[int]func(Snapshot))
	}
	id := s.next
	s.next++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Reset empties the session. Volume and mute are kept.
func (s *State) Reset() {
	s.update(func(snap *Snapshot) {
		*snap = Snapshot{Volume: snap.Volume, Muted: snap.Muted}
	})
}

func (s *State) open(courseID string, resumedFrom float64) {
	s.update(func(snap *Snapshot) {
		*snap = Snapshot{
			CourseID:    mo.Some(courseID),
			Volume:      snap.Volume,
			Muted:       snap.Muted,
			Phase:       Loading,
			Buffering:   true,
			ResumedFrom: resumedFrom,
		}
	})
}

func (s *State) setBuffering(buffering bool) {
	s.update(func(snap *Snapshot) {
		snap.Buffering = buffering
		if !buffering && snap.Phase == Loading {
			snap.Phase = Ready
		}
	})
}

func (s *State) setDuration(d float64) {
	s.update(func(snap *Snapshot) { snap.Duration = max(d, 0) })
}

func (s *State) setTime(t float64) {
	s.update(func(snap *Snapshot) { snap.CurrentTime = max(t, 0) })
}

func (s *State) setPlaying(playing bool) {
	s.update(func(snap *Snapshot) { snap.IsPlaying = playing })
}

func (s *State) setVolume(v float64) {
	s.update(func(snap *Snapshot) { snap.Volume = util.Clamp(v, 0, 1) })
}

func (s *State) setMuted(muted bool) {
	s.update(func(snap *Snapshot) { snap.Muted = muted })
}

func (s *State) fail(err error) {
	s.update(func(snap *Snapshot) {
		snap.Phase = Failed
		snap.Err = err
		snap.Buffering = false
		snap.IsPlaying = false
	})
}

func (s *State) update(fn func(*Snapshot)) {
	s.mu.Lock()
	fn(&s.snap)
	snap := s.snap
	ids := lo.Keys(s.subs)
	slices.Sort(ids)
	subs := lo.Map(ids, func(id int, _ int) func(Snapshot) { return s.subs[id] })
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}
