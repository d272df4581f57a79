// Package progresstest provides a recording progress.Store for tests.
package progresstest

import (
	"errors"
	"sync"

	"github.com/coursecast/coursecast/progress"
	"github.com/samber/mo"
)

// ErrInjected is returned by a Recorder configured to fail.
var ErrInjected = errors.New("injected store failure")

// Write is one recorded call to Store.Write.
type Write struct {
	CourseID string
	Record   progress.CourseProgress
}

// Recorder wraps an in-memory store and records every write and clear.
type Recorder struct {
	progress.Store

	mu     sync.Mutex
	writes []Write
	clears int
	fail   bool
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{Store: progress.NewMemory()}
}

// Fail makes subsequent writes return ErrInjected.
func (r *Recorder) Fail(fail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail = fail
}

func (r *Recorder) Write(courseID string, p *progress.CourseProgress) error {
	r.mu.Lock()
	r.writes = append(r.writes, Write{CourseID: courseID, Record: *p})
	fail := r.fail
	r.mu.Unlock()

	if fail {
		return ErrInjected
	}
	return r.Store.Write(courseID, p)
}

func (r *Recorder) ClearAll() error {
	r.mu.Lock()
	r.clears++
	r.mu.Unlock()
	return r.Store.ClearAll()
}

// Seed stores a record without recording it as a write.
func (r *Recorder) Seed(courseID string, p *progress.CourseProgress) {
	_ = r.Store.Write(courseID, p)
}

// Writes returns the recorded writes in call order.
func (r *Recorder) Writes() []Write {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Write(nil), r.writes...)
}

// Last returns the most recent write, if any.
func (r *Recorder) Last() mo.Option[Write] {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.writes) == 0 {
		return mo.None[Write]()
	}
	return mo.Some(r.writes[len(r.writes)-1])
}

// Clears returns how many times ClearAll was called.
func (r *Recorder) Clears() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clears
}

// Reset forgets recorded calls without touching stored data.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes = nil
	r.clears = 0
}
