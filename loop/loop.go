// Package loop provides the single logical thread that owns all playback state.
//
// Media events, timer expirations, transport results and user commands are
// posted to a Loop and executed one at a time in arrival order. Blocking work
// is started with Go and reports back with Post.
package loop

import (
	"context"
	"sync"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

// Executor schedules work onto the owning thread.
type Executor interface {
	// Post enqueues fn to run on the owning thread.
	Post(fn func())
	// Go runs fn off the owning thread. fn must use Post to touch owned state.
	Go(fn func())
}

// Loop is a FIFO executor backed by an unbounded queue.
// Post never blocks, so handlers may post from within handlers.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	workers conc.WaitGroup
	onPanic func(recovered *panics.Recovered)
}

// New returns an idle Loop. Call Run to start executing posted work.
func New() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// OnPanic installs a handler for panics raised by posted functions.
// Without a handler the panic propagates out of Run.
func (l *Loop) OnPanic(fn func(recovered *panics.Recovered)) {
	l.onPanic = fn
}

func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) Go(fn func()) {
	l.workers.Go(fn)
}

// Run executes posted functions until ctx is cancelled, then waits for
// background work started with Go to finish.
func (l *Loop) Run(ctx context.Context) error {
	defer l.workers.Wait()

	for {
		for _, fn := range l.drain() {
			l.exec(fn)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Call posts fn and blocks until it has run or ctx is done.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	l.Post(func() {
		defer close(done)
		fn()
	})

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loop) drain() []func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	batch := l.queue
	l.queue = nil
	return batch
}

func (l *Loop) exec(fn func()) {
	if l.onPanic == nil {
		fn()
		return
	}

	var catcher panics.Catcher
	catcher.Try(fn)
	if r := catcher.Recovered(); r != nil {
		l.onPanic(r)
	}
}

// Inline runs posted and background work immediately on the calling goroutine.
type Inline struct{}

func (Inline) Post(fn func()) { fn() }

func (Inline) Go(fn func()) { fn() }

// Manual queues posted work until Flush is called.
// Background work runs immediately and its posts are queued.
type Manual struct {
	mu    sync.Mutex
	queue []func()
}

func (m *Manual) Post(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, fn)
}

func (m *Manual) Go(fn func()) { fn() }

// Len returns the number of queued functions.
func (m *Manual) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Flush runs queued functions, including those they post, until the queue is empty.
func (m *Manual) Flush() {
	for {
		m.mu.Lock()
		batch := m.queue
		m.queue = nil
		m.mu.Unlock()

		if len(batch) == 0 {
			return
		}
		for _, fn := range batch {
			fn()
		}
	}
}
