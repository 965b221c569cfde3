package main

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"strum/internal/catalog"
	"strum/internal/pattern"
	"strum/internal/sched"
	"strum/internal/ui"
)

// playWithUI runs the tick loop in a goroutine and feeds its triggers
// and positions to the transport view. Closing the event channel ends
// the view; quitting the view cancels the loop.
func playWithUI(ctx context.Context, target string, doc *pattern.Document, cat *catalog.Catalog, tempo float64, tick uint64, loops int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan ui.Event, 256)
	outcome := make(chan error, 1)

	clock := sched.NewRealClock()
	s := sched.New(sched.Options{
		Clock:    clock,
		Tempo:    tempo,
		Registry: cat.ConsoleRegistry(discard{}),
		OnTrigger: func(tr sched.Trigger) {
			select {
			case events <- ui.Event{
				Kind:       ui.EventTrigger,
				Instrument: tr.Instrument,
				Note:       tr.Note,
				Beat:       tr.Beat,
			}:
			case <-ctx.Done():
			}
		},
	})
	s.Load(doc)

	go func() {
		s.Start()
		err := tickLoop(ctx, s, clock, tick, loops, func(pos float64) {
			select {
			case events <- ui.Event{
				Kind:     ui.EventPosition,
				Position: pos,
				Loop:     s.LoopLength(),
				Tempo:    s.Tempo(),
			}:
			default:
				// Position updates are droppable; the next tick sends another.
			}
		})
		s.Stop()
		if err == context.Canceled {
			err = nil
		}
		outcome <- err
		close(events)
	}()

	model := ui.NewTransportModel(filepath.Base(target), s.LoopLength(), tempo, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	cancel()
	err := <-outcome
	if uiErr != nil && uiErr != tea.ErrProgramKilled && uiErr != context.Canceled {
		return uiErr
	}
	return err
}

// discard drops trigger output while the transport view owns the screen.
type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
