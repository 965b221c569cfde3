package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"strum/internal/catalog"
	"strum/internal/driver"
	"strum/internal/pattern"
	"strum/internal/sched"
)

var playCmd = &cobra.Command{
	Use:   "play [flags] [file.pat]",
	Short: "Compile a pattern and play it on the scheduler",
	Long: `Play compiles a pattern file and drives it through the tempo scheduler,
looping until interrupted. Without an argument, the pattern comes from
[play].main in the nearest strum.toml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().Float64("tempo", 0, "tempo in beats per minute (0 = manifest or 120)")
	playCmd.Flags().Uint64("tick", sched.DefaultTickIntervalMs, "tick interval in milliseconds")
	playCmd.Flags().Int("loops", 0, "stop after this many loops (0 = until interrupted)")
	playCmd.Flags().String("ui", "auto", "interactive playback view (auto|on|off)")
	playCmd.Flags().String("catalog", "", "instrument catalog TOML file (default: built-in)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	target, manifestTempo, err := resolvePlayInput(args)
	if err != nil {
		return err
	}

	tempo, err := cmd.Flags().GetFloat64("tempo")
	if err != nil {
		return err
	}
	if tempo == 0 {
		tempo = manifestTempo
	}
	if tempo == 0 {
		tempo = sched.DefaultTempo
	}
	tick, err := cmd.Flags().GetUint64("tick")
	if err != nil {
		return err
	}
	loops, err := cmd.Flags().GetInt("loops")
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	maxDiag, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}

	result, err := driver.CompileFile(target, driver.CompileOptions{MaxDiagnostics: maxDiag})
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}
	if err := reportDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}
	if result.Document == nil {
		return fmt.Errorf("compilation failed")
	}

	cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if shouldUseTUI(mode) {
		return playWithUI(ctx, target, result.Document, cat, tempo, tick, loops)
	}
	return playToConsole(ctx, result.Document, cat, tempo, tick, loops)
}

// resolvePlayInput picks the pattern file: the argument, or the nearest
// manifest's [play].main. The manifest may also set a default tempo.
func resolvePlayInput(args []string) (string, float64, error) {
	if len(args) == 1 {
		return args[0], 0, nil
	}
	manifest, ok, err := loadProjectManifest(".")
	if err != nil {
		return "", 0, err
	}
	if !ok {
		return "", 0, fmt.Errorf("%s", noStrumTomlMessage)
	}
	target, err := resolvePlayTarget(manifest)
	if err != nil {
		return "", 0, err
	}
	return target, manifest.Config.Play.Tempo, nil
}

func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	path, err := cmd.Flags().GetString("catalog")
	if err != nil {
		return nil, err
	}
	if path == "" {
		return catalog.Builtin(), nil
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return cat, nil
}

func playToConsole(ctx context.Context, doc *pattern.Document, cat *catalog.Catalog, tempo float64, tick uint64, loops int) error {
	clock := sched.NewRealClock()
	s := sched.New(sched.Options{
		Clock:    clock,
		Tempo:    tempo,
		Registry: cat.ConsoleRegistry(os.Stdout),
		OnError: func(err error) {
			fmt.Fprintf(os.Stderr, "schedule: %v\n", err)
		},
	})
	s.Load(doc)
	s.Start()
	defer s.Stop()

	return tickLoop(ctx, s, clock, tick, loops, nil)
}

// tickLoop drives the scheduler until the context is canceled or the
// pattern has wrapped the requested number of times. onTick runs after
// every tick with the current position.
func tickLoop(ctx context.Context, s *sched.Scheduler, clock sched.Clock, intervalMs uint64, loops int, onTick func(pos float64)) error {
	if intervalMs == 0 {
		intervalMs = sched.DefaultTickIntervalMs
	}
	prev := s.Position()
	wrapped := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.Tick()
		pos := s.Position()
		if pos < prev {
			wrapped++
			if loops > 0 && wrapped >= loops {
				return nil
			}
		}
		prev = pos

		if onTick != nil {
			onTick(pos)
		}
		clock.SleepUntilMs(clock.NowMs() + intervalMs)
	}
}
