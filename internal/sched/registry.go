package sched

import "fmt"

// Instrument is the capability the scheduler needs from a sound producer.
// The scheduler never interprets instruments; it only triggers them.
type Instrument interface {
	Trigger(note string, velocity, duration, at float64)
}

// Registry resolves instrument names to trigger capabilities.
type Registry interface {
	Instrument(name string) (Instrument, bool)
}

// MapRegistry is a Registry backed by a plain map.
type MapRegistry map[string]Instrument

func (r MapRegistry) Instrument(name string) (Instrument, bool) {
	inst, ok := r[name]
	return inst, ok
}

// InstrumentFunc adapts a function to the Instrument interface.
type InstrumentFunc func(note string, velocity, duration, at float64)

func (f InstrumentFunc) Trigger(note string, velocity, duration, at float64) {
	f(note, velocity, duration, at)
}

// ScheduleError reports a trigger that could not be delivered because the
// instrument is absent from the registry. It is per-event and non-fatal:
// one missing sample must not halt the rest of the pattern.
type ScheduleError struct {
	Instrument string
	Note       string
	Beat       float64
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf("no instrument %q registered for note %s at beat %g", e.Instrument, e.Note, e.Beat)
}
