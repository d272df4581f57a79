// Package mediatest provides a scriptable media.Element for tests.
package mediatest

import (
	"context"
	"sync"

	"github.com/coursecast/coursecast/media"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Call is one recorded command sent to the Element.
type Call struct {
	Name  string
	Value float64
}

// Element records commands and emits events only when told to.
type Element struct {
	media.Bus

	mu      sync.Mutex
	calls   []Call
	source  mo.Option[media.Source]
	loads   []media.Source
	loadErr error
	closed  bool
}

// New returns an idle Element.
func New() *Element {
	return &Element{}
}

// FailLoad makes subsequent Load calls return err.
func (e *Element) FailLoad(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loadErr = err
}

func (e *Element) record(name string, value float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, Call{Name: name, Value: value})
}

func (e *Element) Load(_ context.Context, src media.Source) error {
	e.record("load", src.StartAt)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.loadErr != nil {
		return e.loadErr
	}
	e.source = mo.Some(src)
	e.loads = append(e.loads, src)
	return nil
}

func (e *Element) Unload() error {
	e.record("unload", 0)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.source = mo.None[media.Source]()
	return nil
}

func (e *Element) Play() error {
	e.record("play", 0)
	return nil
}

func (e *Element) Pause() error {
	e.record("pause", 0)
	return nil
}

func (e *Element) Seek(seconds float64) error {
	e.record("seek", seconds)
	return nil
}

func (e *Element) SetVolume(v float64) error {
	e.record("volume", v)
	return nil
}

func (e *Element) SetMuted(muted bool) error {
	e.record("mute", lo.Ternary(muted, 1.0, 0.0))
	return nil
}

func (e *Element) Close() error {
	e.record("close", 0)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}

// Source returns the currently loaded source, if any.
func (e *Element) Source() mo.Option[media.Source] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.source
}

// Loads returns every source passed to a successful Load.
func (e *Element) Loads() []media.Source {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]media.Source(nil), e.loads...)
}

// Calls returns the recorded commands in call order.
func (e *Element) Calls() []Call {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Call(nil), e.calls...)
}

// CallsNamed returns the recorded commands with the given name.
func (e *Element) CallsNamed(name string) []Call {
	var named []Call
	for _, c := range e.Calls() {
		if c.Name == name {
			named = append(named, c)
		}
	}
	return named
}

// Closed reports whether Close was called.
func (e *Element) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// Metadata emits a LoadedMetadata event.
func (e *Element) Metadata(duration float64) {
	e.Emit(media.Event{Kind: media.LoadedMetadata, Duration: duration})
}

// TimeUpdate emits a TimeUpdate event.
func (e *Element) TimeUpdate(t float64) {
	e.Emit(media.Event{Kind: media.TimeUpdate, Time: t})
}

// Fail emits an Error event.
func (e *Element) Fail(err error) {
	e.Emit(media.Event{Kind: media.Error, Err: err})
}

// Signal emits an event carrying no payload.
func (e *Element) Signal(kind media.Kind) {
	e.Emit(media.Event{Kind: kind})
}
