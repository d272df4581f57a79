// Package media defines the playable media element driven by a playback session.
//
// An Element renders a single source at a time and reports what happens to it
// as a stream of Events. Implementations deliver events from their own
// goroutines; consumers are expected to hop onto their owning thread.
package media

import (
	"context"
	"fmt"
)

// Kind is the type of a media Event.
type Kind int

const (
	// LoadStart is emitted when the element starts fetching a new source.
	LoadStart Kind = iota
	// CanPlay is emitted when enough data is available to start rendering.
	CanPlay
	// Waiting is emitted when playback stalls for lack of data.
	Waiting
	// Playing is emitted when playback (re)starts after a stall or a start.
	Playing
	// LoadedMetadata is emitted when the duration becomes known.
	LoadedMetadata
	// TimeUpdate is emitted as the playback position advances.
	TimeUpdate
	// Play is emitted when playback is requested to run.
	Play
	// Pause is emitted when playback is suspended.
	Pause
	// VolumeChange is emitted when the volume changes.
	VolumeChange
	// Ended is emitted when the end of the media is reached.
	Ended
	// Error is emitted when the source cannot be rendered.
	Error
)

var kindNames = map[Kind]string{
	LoadStart:      "loadstart",
	CanPlay:        "canplay",
	Waiting:        "waiting",
	Playing:        "playing",
	LoadedMetadata: "loadedmetadata",
	TimeUpdate:     "timeupdate",
	Play:           "play",
	Pause:          "pause",
	VolumeChange:   "volumechange",
	Ended:          "ended",
	Error:          "error",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Event is a notification from an Element. Only the fields relevant to Kind are set.
type Event struct {
	Kind     Kind
	Time     float64
	Duration float64
	Volume   float64
	Err      error
}

func (e Event) String() string {
	switch e.Kind {
	case TimeUpdate:
		return fmt.Sprintf("%s(%.2f)", e.Kind, e.Time)
	case LoadedMetadata:
		return fmt.Sprintf("%s(%.2f)", e.Kind, e.Duration)
	case VolumeChange:
		return fmt.Sprintf("%s(%.2f)", e.Kind, e.Volume)
	case Error:
		return fmt.Sprintf("%s(%v)", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

// Source describes what an Element should load.
type Source struct {
	// URL is the resolved media URL or local path.
	URL string
	// Headers are sent with every media request.
	Headers map[string]string
	// Title is displayed by the element.
	Title string
	// Volume is the initial volume scalar in [0, 1].
	Volume float64
	// Muted silences the source without changing Volume.
	Muted bool
	// StartAt is the initial position in seconds. Zero starts from the beginning.
	StartAt float64
	// Autoplay starts playback once the source is ready.
	Autoplay bool
}

// Element is a single-source media renderer.
type Element interface {
	// Load replaces the current source. Progress is reported through events.
	Load(ctx context.Context, src Source) error
	// Unload detaches the current source and stops fetching it.
	Unload() error
	Play() error
	Pause() error
	// Seek moves to an absolute position in seconds.
	Seek(seconds float64) error
	// SetVolume applies a volume scalar in [0, 1].
	SetVolume(v float64) error
	// SetMuted silences or restores the sound. The volume is left as is.
	SetMuted(muted bool) error
	// Subscribe registers fn for events and returns a function that removes it.
	Subscribe(fn func(Event)) (cancel func())
	// Close releases the element and all its resources.
	Close() error
}
