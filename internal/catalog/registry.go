package catalog

import (
	"fmt"
	"io"
	"sync"

	"strum/internal/sched"
)

// consoleInstrument writes one line per trigger. It stands in for a
// real synthesis backend; the scheduler only needs the capability.
type consoleInstrument struct {
	name string
	mu   *sync.Mutex
	w    io.Writer
}

func (ci *consoleInstrument) Trigger(note string, velocity, duration, at float64) {
	ci.mu.Lock()
	defer ci.mu.Unlock()
	fmt.Fprintf(ci.w, "%7.3f  %-8s %-6s vel=%.2f dur=%.2f\n", at, ci.name, note, velocity, duration)
}

// ConsoleRegistry builds a sched.Registry over the catalog where every
// instrument prints its triggers to w. Instruments absent from the
// catalog stay unresolvable, so the scheduler surfaces them as
// per-event errors.
func (c *Catalog) ConsoleRegistry(w io.Writer) sched.Registry {
	mu := &sync.Mutex{}
	reg := make(sched.MapRegistry, len(c.instruments))
	for name := range c.instruments {
		reg[name] = &consoleInstrument{name: name, mu: mu, w: w}
	}
	return reg
}
