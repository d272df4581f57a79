// Package progress persists per-course watch progress and decides when it is written.
package progress

import (
	"fmt"
	"time"

	"github.com/coursecast/coursecast/util"
)

// CompletionRatio is the watched fraction at or above which a course counts as completed.
const CompletionRatio = 0.90

// CourseProgress is the durable watch record of a single course.
type CourseProgress struct {
	CurrentTime float64   `json:"currentTime" jsonschema:"minimum=0,description=Playback position in seconds"`
	Duration    float64   `json:"duration" jsonschema:"minimum=0,description=Media length in seconds"`
	LastWatched time.Time `json:"lastWatched" jsonschema:"description=Time of the write"`
	Completed   bool      `json:"completed" jsonschema:"description=Watched fraction reached 0.9 when written"`
}

// New builds a record for the given position. The position is clamped to
// [0, duration] and Completed is derived from the watched fraction.
func New(currentTime, duration float64, at time.Time) *CourseProgress {
	duration = util.Max(duration, 0)
	currentTime = util.Max(currentTime, 0)
	if duration > 0 {
		currentTime = util.Min(currentTime, duration)
	}

	return &CourseProgress{
		CurrentTime: currentTime,
		Duration:    duration,
		LastWatched: at.UTC(),
		Completed:   duration > 0 && currentTime/duration >= CompletionRatio,
	}
}

// Ratio returns the watched fraction, or 0 when the duration is unknown.
func (p *CourseProgress) Ratio() float64 {
	if p.Duration <= 0 {
		return 0
	}
	return p.CurrentTime / p.Duration
}

// Percent returns the watched fraction as a whole percentage.
func (p *CourseProgress) Percent() int {
	return int(p.Ratio() * 100)
}

func (p *CourseProgress) String() string {
	return fmt.Sprintf("%s / %s (%d%%)", util.FormatSeconds(p.CurrentTime), util.FormatSeconds(p.Duration), p.Percent())
}
