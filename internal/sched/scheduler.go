// Package sched converts a compiled pattern document into precisely timed
// trigger events against a tempo-driven transport, with loop wraparound and
// safe hot swap of the document while playing.
package sched

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"strum/internal/pattern"
)

const (
	// DefaultTempo is the startup tempo in beats per minute.
	DefaultTempo = 120.0
	// DefaultTickInterval is the tick period Run uses when none is given.
	DefaultTickIntervalMs = 15
)

// ErrBadTempo rejects non-positive or non-finite tempos.
var ErrBadTempo = errors.New("tempo must be a positive, finite bpm value")

// Trigger is one emitted event: a note due in the window the last tick
// swept, stamped with the beat it was scheduled for.
type Trigger struct {
	Instrument string
	Note       string
	Velocity   float64
	Duration   float64
	Beat       float64 // scheduled beat offset within the loop
}

// Options configures a Scheduler.
type Options struct {
	Clock     Clock            // nil selects a real monotonic clock
	Tempo     float64          // bpm; 0 selects DefaultTempo
	Registry  Registry         // may be nil: triggers only reach OnTrigger
	OnTrigger func(Trigger)    // called for every fired event, in order
	OnError   func(error)      // called for non-fatal per-event errors
}

// Scheduler owns the transport state machine and the tick sweep. All state
// lives behind one mutex: mutators are cheap, and ticks snapshot the active
// document once per invocation, so a Load from another goroutine never
// exposes a half-updated track to a running sweep.
type Scheduler struct {
	mu        sync.Mutex
	clock     Clock
	state     State
	tempo     float64
	snap      snapshot
	pos       float64 // beat position as of lastMs
	lastMs    uint64
	registry  Registry
	onTrigger func(Trigger)
	onError   func(error)
}

// snapshot is the immutable view of one loaded document: tracks flattened
// into name-sorted order so sweeps are deterministic, plus the loop length.
type snapshot struct {
	doc    *pattern.Document
	tracks []trackView
	loop   float64
}

type trackView struct {
	name   string
	events []pattern.NoteEvent // sorted by time; owned by the document
}

// New creates a stopped scheduler with an empty document loaded.
func New(opts Options) *Scheduler {
	clock := opts.Clock
	if clock == nil {
		clock = NewRealClock()
	}
	tempo := opts.Tempo
	if tempo <= 0 {
		tempo = DefaultTempo
	}
	s := &Scheduler{
		clock:     clock,
		state:     StateStopped,
		tempo:     tempo,
		registry:  opts.Registry,
		onTrigger: opts.OnTrigger,
		onError:   opts.OnError,
	}
	s.snap = buildSnapshot(pattern.New())
	return s
}

func buildSnapshot(doc *pattern.Document) snapshot {
	tracks := make([]trackView, 0, len(doc.Tracks))
	for _, name := range doc.TrackNames() {
		tracks = append(tracks, trackView{name: name, events: doc.Tracks[name]})
	}
	return snapshot{doc: doc, tracks: tracks, loop: doc.LoopLength()}
}

// Load replaces the active document. It does not start playback and does
// not move the beat position, so a swap mid-play keeps the transport
// running: the very next tick sweeps the same window over the new tracks.
// Events the old document already fired that sit later in the new one are
// intentionally skipped; that is the documented policy for live edits.
func (s *Scheduler) Load(doc *pattern.Document) {
	if doc == nil {
		doc = pattern.New()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = buildSnapshot(doc)
	if s.pos >= s.snap.loop {
		s.pos = math.Mod(s.pos, s.snap.loop)
	}
}

// Start begins or resumes playback: from Stopped the position is 0, from
// Paused it continues at the frozen position. Starting while playing is a
// no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StatePlaying {
		return
	}
	if s.state == StateStopped {
		s.pos = 0
	}
	s.lastMs = s.clock.NowMs()
	s.state = StatePlaying
}

// Pause freezes the transport at the position of the last tick. No events
// fire until Start resumes from it.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StatePlaying {
		s.state = StatePaused
	}
}

// Stop halts playback from any state and resets the position to 0.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateStopped
	s.pos = 0
}

// SetTempo changes the bpm used to convert elapsed wall time into beats.
// It applies from the next tick onward; events already fired are never
// rescheduled.
func (s *Scheduler) SetTempo(bpm float64) error {
	if bpm <= 0 || math.IsInf(bpm, 0) || math.IsNaN(bpm) {
		return ErrBadTempo
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tempo = bpm
	return nil
}

// State returns the current transport state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Position returns the beat position as of the last tick.
func (s *Scheduler) Position() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

// Tempo returns the current bpm.
func (s *Scheduler) Tempo() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tempo
}

// LoopLength returns the loop length of the active document in beats.
func (s *Scheduler) LoopLength() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.loop
}

// Tick advances the virtual beat clock to the current time and fires every
// event whose time falls in the half-open window [previous, current),
// splitting the window at the loop boundary on wraparound. Events with
// identical times fire in stored order; tracks fire in name order. The
// fired triggers are returned in emission order.
//
// If a tick arrives so late that more than one full loop elapsed, the
// missed cycles are skipped rather than replayed.
func (s *Scheduler) Tick() []Trigger {
	s.mu.Lock()
	if s.state != StatePlaying {
		s.mu.Unlock()
		return nil
	}

	snap := s.snap
	now := s.clock.NowMs()
	elapsed := float64(now-s.lastMs) * s.tempo / 60000.0
	prev := s.pos
	cur := prev + elapsed

	var fired []Trigger
	if cur < snap.loop {
		fired = sweep(snap, prev, cur, nil)
	} else {
		fired = sweep(snap, prev, snap.loop, nil)
		cur = math.Mod(cur-snap.loop, snap.loop)
		fired = sweep(snap, 0, cur, fired)
	}

	s.pos = cur
	s.lastMs = now

	registry := s.registry
	onTrigger := s.onTrigger
	onError := s.onError
	s.mu.Unlock()

	// Dispatch outside the lock so slow consumers cannot stall mutators.
	for _, tr := range fired {
		if onTrigger != nil {
			onTrigger(tr)
		}
		if registry == nil {
			continue
		}
		inst, ok := registry.Instrument(tr.Instrument)
		if !ok {
			if onError != nil {
				onError(&ScheduleError{Instrument: tr.Instrument, Note: tr.Note, Beat: tr.Beat})
			}
			continue
		}
		inst.Trigger(tr.Note, tr.Velocity, tr.Duration, tr.Beat)
	}
	return fired
}

// sweep collects events with time in [from, to) across all tracks, using
// binary search to find each track's window start.
func sweep(snap snapshot, from, to float64, out []Trigger) []Trigger {
	if to <= from {
		return out
	}
	for _, tv := range snap.tracks {
		events := tv.events
		i := sort.Search(len(events), func(k int) bool {
			return events[k].Time >= from
		})
		for ; i < len(events) && events[i].Time < to; i++ {
			ev := events[i]
			out = append(out, Trigger{
				Instrument: ev.Instrument,
				Note:       ev.Note,
				Velocity:   ev.Velocity,
				Duration:   ev.Duration,
				Beat:       ev.Time,
			})
		}
	}
	return out
}

// Run drives the tick loop on the scheduler's clock until the context is
// canceled. The interval is in milliseconds; 0 selects the default.
func (s *Scheduler) Run(ctx context.Context, intervalMs uint64) error {
	if intervalMs == 0 {
		intervalMs = DefaultTickIntervalMs
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		s.Tick()
		s.clock.SleepUntilMs(s.clock.NowMs() + intervalMs)
	}
}
