// Package pattern defines the compiled pattern document: the compiler's
// output and the scheduler's sole input. A Document is immutable once
// produced; replacing a running pattern means swapping the document
// reference, never editing one in place.
package pattern

import "sort"

// Schema defaults. The statement grammar has no slot for velocity or
// duration yet, so every compiled event carries these values.
const (
	DefaultVelocity = 1.0
	DefaultDuration = 0.5

	// FallbackLoopBeats is the loop length of a document with no events.
	FallbackLoopBeats = 16.0
)

// ImportBinding declares which sample module an instrument name comes from.
type ImportBinding struct {
	Instrument string `json:"instrument"`
	Module     string `json:"module"`
}

// NoteEvent is the atomic unit of playback: one instrument trigger at a
// beat offset. Times and durations are beat counts; conversion to wall
// clock happens in the scheduler, driven by a tempo that can change after
// compilation.
type NoteEvent struct {
	Instrument string  `json:"instrument"`
	Note       string  `json:"note"`
	Time       float64 `json:"time"`
	Velocity   float64 `json:"velocity"`
	Duration   float64 `json:"duration"`
}

// Document is a compiled pattern: ordered imports plus one event track per
// block type. Within a track, events are sorted by time ascending, stable
// on ties; the scheduler's window sweep depends on this invariant.
type Document struct {
	Imports []ImportBinding        `json:"imports"`
	Tracks  map[string][]NoteEvent `json:"patterns"`
}

// New returns an empty document with allocated slices, so the JSON form is
// {"imports":[],"patterns":{}} rather than nulls.
func New() *Document {
	return &Document{
		Imports: []ImportBinding{},
		Tracks:  map[string][]NoteEvent{},
	}
}

// LoopLength is the loop length in beats: the maximum time+duration across
// all tracks, or FallbackLoopBeats for a document with no events.
func (d *Document) LoopLength() float64 {
	length := 0.0
	for _, events := range d.Tracks {
		for _, ev := range events {
			if end := ev.Time + ev.Duration; end > length {
				length = end
			}
		}
	}
	if length == 0 {
		return FallbackLoopBeats
	}
	return length
}

// TrackNames returns the track names in sorted order. Map iteration order
// is not deterministic; every consumer that needs a stable event order
// (the scheduler, serializers, tests) goes through this.
func (d *Document) TrackNames() []string {
	names := make([]string, 0, len(d.Tracks))
	for name := range d.Tracks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EventCount is the total number of events across all tracks.
func (d *Document) EventCount() int {
	n := 0
	for _, events := range d.Tracks {
		n += len(events)
	}
	return n
}
