package sched_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"strum/internal/pattern"
	"strum/internal/sched"
)

func fourBeatDoc() *pattern.Document {
	return &pattern.Document{
		Imports: []pattern.ImportBinding{},
		Tracks: map[string][]pattern.NoteEvent{
			"melody": {
				{Instrument: "piano", Note: "C4", Time: 0, Velocity: 1, Duration: 1},
				{Instrument: "piano", Note: "E4", Time: 1, Velocity: 1, Duration: 1},
				{Instrument: "piano", Note: "G4", Time: 2, Velocity: 1, Duration: 1},
				{Instrument: "piano", Note: "C5", Time: 3, Velocity: 1, Duration: 1},
			},
		},
	}
}

// newVirtual builds a playing scheduler on a virtual clock at 120 bpm
// (2 beats per second: 500 ms per beat).
func newVirtual(t *testing.T, doc *pattern.Document, opts sched.Options) (*sched.Scheduler, *sched.VirtualClock) {
	t.Helper()
	clock := &sched.VirtualClock{}
	opts.Clock = clock
	if opts.Tempo == 0 {
		opts.Tempo = 120
	}
	s := sched.New(opts)
	s.Load(doc)
	return s, clock
}

func tickAfter(s *sched.Scheduler, clock *sched.VirtualClock, ms uint64) []sched.Trigger {
	clock.Advance(ms)
	return s.Tick()
}

func notes(triggers []sched.Trigger) []string {
	out := make([]string, len(triggers))
	for i, tr := range triggers {
		out[i] = tr.Note
	}
	return out
}

func TestLoopLengthFromDocument(t *testing.T) {
	s, _ := newVirtual(t, fourBeatDoc(), sched.Options{})
	if got := s.LoopLength(); got != 4.0 {
		t.Errorf("LoopLength = %v, want 4", got)
	}

	s.Load(pattern.New())
	if got := s.LoopLength(); got != pattern.FallbackLoopBeats {
		t.Errorf("empty document LoopLength = %v, want %v", got, pattern.FallbackLoopBeats)
	}
}

func TestTickFiresHalfOpenWindows(t *testing.T) {
	s, clock := newVirtual(t, fourBeatDoc(), sched.Options{})
	s.Start()

	// 250 ms = 0.5 beat per tick.
	got := notes(tickAfter(s, clock, 250)) // [0, 0.5)
	if !reflect.DeepEqual(got, []string{"C4"}) {
		t.Errorf("tick 1 fired %v, want [C4]", got)
	}
	got = notes(tickAfter(s, clock, 250)) // [0.5, 1)
	if len(got) != 0 {
		t.Errorf("tick 2 fired %v, want none", got)
	}
	got = notes(tickAfter(s, clock, 250)) // [1, 1.5)
	if !reflect.DeepEqual(got, []string{"E4"}) {
		t.Errorf("tick 3 fired %v, want [E4]", got)
	}
}

func TestWraparoundFiresFirstEventExactlyOnce(t *testing.T) {
	// Tick in 300 ms steps (0.6 beat) so a window straddles the 4-beat
	// loop boundary: [3.6, 4.2) must fire the beat-0 event exactly once.
	s, clock := newVirtual(t, fourBeatDoc(), sched.Options{})
	s.Start()

	counts := map[string]int{}
	for i := 0; i < 7; i++ { // 7 ticks cover [0, 4.2)
		for _, n := range notes(tickAfter(s, clock, 300)) {
			counts[n]++
		}
	}

	if counts["C4"] != 2 {
		t.Errorf("C4 fired %d times across the wrap, want 2 (once per cycle)", counts["C4"])
	}
	for _, n := range []string{"E4", "G4", "C5"} {
		if counts[n] != 1 {
			t.Errorf("%s fired %d times, want 1", n, counts[n])
		}
	}
	// After wrapping, position must be back inside the loop.
	if pos := s.Position(); pos < 0 || pos >= 4 {
		t.Errorf("position after wrap = %v, want in [0,4)", pos)
	}
}

func TestSchedulerDeterminism(t *testing.T) {
	run := func() [][]string {
		s, clock := newVirtual(t, fourBeatDoc(), sched.Options{})
		s.Start()
		var out [][]string
		for i := 0; i < 16; i++ {
			out = append(out, notes(tickAfter(s, clock, 170)))
		}
		return out
	}

	first := run()
	for i := 0; i < 3; i++ {
		if again := run(); !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differed:\n%v\n%v", i, first, again)
		}
	}
}

func TestTieOrderIsStable(t *testing.T) {
	doc := &pattern.Document{
		Imports: []pattern.ImportBinding{},
		Tracks: map[string][]pattern.NoteEvent{
			"rhythm": {
				{Instrument: "synth", Note: "Kick", Time: 1, Velocity: 1, Duration: 0.5},
				{Instrument: "synth", Note: "Snare", Time: 1, Velocity: 1, Duration: 0.5},
			},
		},
	}
	s, clock := newVirtual(t, doc, sched.Options{})
	s.Start()

	got := notes(tickAfter(s, clock, 1000)) // [0, 2)
	if !reflect.DeepEqual(got, []string{"Kick", "Snare"}) {
		t.Errorf("identical times must fire in stored order: %v", got)
	}
}

func TestTracksFireInNameOrder(t *testing.T) {
	doc := &pattern.Document{
		Imports: []pattern.ImportBinding{},
		Tracks: map[string][]pattern.NoteEvent{
			"rhythm": {{Instrument: "synth", Note: "Kick", Time: 0, Velocity: 1, Duration: 0.5}},
			"melody": {{Instrument: "piano", Note: "C4", Time: 0, Velocity: 1, Duration: 0.5}},
		},
	}
	s, clock := newVirtual(t, doc, sched.Options{})
	s.Start()

	got := notes(tickAfter(s, clock, 250))
	if !reflect.DeepEqual(got, []string{"C4", "Kick"}) {
		t.Errorf("tracks must fire in sorted name order: %v", got)
	}
}

func TestPausePreservesPositionStopResets(t *testing.T) {
	s, clock := newVirtual(t, fourBeatDoc(), sched.Options{})
	s.Start()
	tickAfter(s, clock, 750) // pos = 1.5

	s.Pause()
	if s.State() != sched.StatePaused {
		t.Fatalf("state = %v, want paused", s.State())
	}
	pausedAt := s.Position()

	// Time passing while paused must not move the position or fire events.
	if got := tickAfter(s, clock, 5000); got != nil {
		t.Errorf("paused tick fired %v", got)
	}
	if s.Position() != pausedAt {
		t.Errorf("position moved while paused: %v -> %v", pausedAt, s.Position())
	}

	// Resume continues from the frozen position: [1.5, 2.5) fires G4.
	s.Start()
	got := notes(tickAfter(s, clock, 500))
	if !reflect.DeepEqual(got, []string{"G4"}) {
		t.Errorf("resume fired %v, want [G4]", got)
	}

	s.Stop()
	if s.State() != sched.StateStopped || s.Position() != 0 {
		t.Errorf("stop must reset: state=%v pos=%v", s.State(), s.Position())
	}

	// Start after stop replays from the beginning.
	s.Start()
	got = notes(tickAfter(s, clock, 250))
	if !reflect.DeepEqual(got, []string{"C4"}) {
		t.Errorf("restart fired %v, want [C4]", got)
	}
}

func TestSetTempoAppliesToFutureTicksOnly(t *testing.T) {
	s, clock := newVirtual(t, fourBeatDoc(), sched.Options{})
	s.Start()

	tickAfter(s, clock, 250) // 0.5 beat at 120 bpm
	if err := s.SetTempo(240); err != nil {
		t.Fatalf("SetTempo failed: %v", err)
	}
	tickAfter(s, clock, 250) // 1.0 beat at 240 bpm

	if got := s.Position(); got != 1.5 {
		t.Errorf("position = %v, want 1.5 (0.5 at 120 bpm + 1.0 at 240 bpm)", got)
	}

	if err := s.SetTempo(0); !errors.Is(err, sched.ErrBadTempo) {
		t.Errorf("SetTempo(0) = %v, want ErrBadTempo", err)
	}
	if err := s.SetTempo(-10); !errors.Is(err, sched.ErrBadTempo) {
		t.Errorf("SetTempo(-10) = %v, want ErrBadTempo", err)
	}
}

func TestHotSwapSkipsAlreadyPassedEvents(t *testing.T) {
	s, clock := newVirtual(t, fourBeatDoc(), sched.Options{})
	s.Start()
	tickAfter(s, clock, 750) // pos = 1.5; C4 and E4 already fired

	// New document: one event behind the position, one ahead.
	s.Load(&pattern.Document{
		Imports: []pattern.ImportBinding{},
		Tracks: map[string][]pattern.NoteEvent{
			"melody": {
				{Instrument: "piano", Note: "D4", Time: 1, Velocity: 1, Duration: 1},
				{Instrument: "piano", Note: "A4", Time: 2, Velocity: 1, Duration: 1},
			},
		},
	})

	// Next tick sweeps [1.5, 2.5) over the new tracks: D4 at beat 1 was
	// already passed and is skipped by policy; A4 fires once.
	got := notes(tickAfter(s, clock, 500))
	if !reflect.DeepEqual(got, []string{"A4"}) {
		t.Errorf("post-swap tick fired %v, want [A4]", got)
	}
}

func TestMissingInstrumentDoesNotHaltPattern(t *testing.T) {
	doc := &pattern.Document{
		Imports: []pattern.ImportBinding{},
		Tracks: map[string][]pattern.NoteEvent{
			"melody": {
				{Instrument: "ghost", Note: "C4", Time: 0, Velocity: 1, Duration: 0.5},
				{Instrument: "piano", Note: "E4", Time: 0.5, Velocity: 1, Duration: 0.5},
			},
		},
	}

	var triggered []string
	var errs []error
	registry := sched.MapRegistry{
		"piano": sched.InstrumentFunc(func(note string, _, _, _ float64) {
			triggered = append(triggered, note)
		}),
	}
	s, clock := newVirtual(t, doc, sched.Options{
		Registry: registry,
		OnError:  func(err error) { errs = append(errs, err) },
	})
	s.Start()

	tickAfter(s, clock, 500) // [0, 1): both events

	if len(errs) != 1 {
		t.Fatalf("expected one schedule error, got %v", errs)
	}
	var schedErr *sched.ScheduleError
	if !errors.As(errs[0], &schedErr) || schedErr.Instrument != "ghost" {
		t.Errorf("unexpected error: %v", errs[0])
	}
	if !reflect.DeepEqual(triggered, []string{"E4"}) {
		t.Errorf("remaining events must still trigger: %v", triggered)
	}
}

func TestTickWhileStoppedFiresNothing(t *testing.T) {
	s, clock := newVirtual(t, fourBeatDoc(), sched.Options{})
	if got := tickAfter(s, clock, 1000); got != nil {
		t.Errorf("stopped tick fired %v", got)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var fired int
	clock := &sched.VirtualClock{}
	s := sched.New(sched.Options{
		Clock: clock,
		Tempo: 120,
		OnTrigger: func(sched.Trigger) {
			fired++
			if fired >= 8 {
				cancel()
			}
		},
	})
	s.Load(fourBeatDoc())
	s.Start()

	err := s.Run(ctx, 250)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run returned %v, want context.Canceled", err)
	}
	if fired < 8 {
		t.Errorf("expected at least 8 triggers before cancel, got %d", fired)
	}
}
