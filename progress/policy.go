package progress

import (
	"time"

	"github.com/coursecast/coursecast/clock"
	"github.com/coursecast/coursecast/log"
	"github.com/coursecast/coursecast/loop"
)

// DefaultSaveInterval is the quiet period after the last time update before progress is written.
const DefaultSaveInterval = 5 * time.Second

// Policy decides when watch progress reaches the Store.
//
// Time updates are debounced: each Tick restarts a single one-shot timer and
// only a timer that survives a full interval writes. Pause and Flush write
// immediately. All methods must be called from the executor's thread.
type Policy struct {
	store    Store
	clock    clock.Clock
	exec     loop.Executor
	interval time.Duration

	timer clock.Timer
	gen   uint64
	guard func() bool
}

// NewPolicy returns a Policy writing to store. A non-positive interval selects DefaultSaveInterval.
func NewPolicy(store Store, c clock.Clock, exec loop.Executor, interval time.Duration) *Policy {
	if interval <= 0 {
		interval = DefaultSaveInterval
	}

	return &Policy{
		store:    store,
		clock:    c,
		exec:     exec,
		interval: interval,
	}
}

// Tick records a time update and (re)starts the debounce timer.
func (p *Policy) Tick(courseID string, currentTime, duration float64) {
	p.Cancel()

	gen := p.gen
	p.timer = p.clock.AfterFunc(p.interval, func() {
		p.exec.Post(func() {
			// superseded by a later tick, pause, flush or cancel
			if gen != p.gen {
				return
			}
			p.timer = nil
			p.write(courseID, currentTime, duration)
		})
	})
}

// Pause cancels any pending timed write and writes now.
func (p *Policy) Pause(courseID string, currentTime, duration float64) {
	p.Cancel()
	p.write(courseID, currentTime, duration)
}

// Flush is the teardown write: it cancels the timer and writes when both
// position and duration are known.
func (p *Policy) Flush(courseID string, currentTime, duration float64) {
	p.Cancel()
	if currentTime > 0 && duration > 0 {
		p.write(courseID, currentTime, duration)
	}
}

// Cancel drops the pending timed write, including one whose timer already
// fired but whose callback has not yet run.
func (p *Policy) Cancel() {
	p.gen++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

// Guard installs a check run before every progress write. Writes are
// dropped while it returns false.
func (p *Policy) Guard(fn func() bool) {
	p.guard = fn
}

// Pending reports whether a timed write is scheduled.
func (p *Policy) Pending() bool {
	return p.timer != nil
}

// RememberVolume saves the last used volume.
func (p *Policy) RememberVolume(v float64) {
	if err := p.store.SetVolume(v); err != nil {
		log.Warnf("save volume: %v", err)
	}
}

func (p *Policy) write(courseID string, currentTime, duration float64) {
	if duration <= 0 {
		return
	}
	if p.guard != nil && !p.guard() {
		log.Warnf("progress of course %s not saved: the session changed", courseID)
		return
	}

	record := New(currentTime, duration, p.clock.Now())
	if err := p.store.Write(courseID, record); err != nil {
		log.WithFields(log.Fields{
			"course":   courseID,
			"position": currentTime,
		}).Warnf("write progress: %v", err)
		return
	}

	log.Debugf("progress of course %s saved at %s", courseID, record)
}
