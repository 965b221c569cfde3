package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"strum/internal/driver"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] <file.pat|directory>",
	Short: "Compile pattern sources into playable documents",
	Long: `Compile turns a pattern source file into its document form: imports plus
per-block note events with times, velocities, and durations. Given a
directory, every *.pat file under it is compiled in parallel.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().String("format", "json", "output format (json|summary)")
	compileCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	compileCmd.Flags().Bool("cache", false, "reuse cached documents for unchanged files")
}

func runCompile(cmd *cobra.Command, args []string) error {
	path := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiag, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if st.IsDir() {
		return runCompileDir(cmd, path, format, maxDiag)
	}

	opts := driver.CompileOptions{
		MaxDiagnostics: maxDiag,
		CollectTimings: timings,
	}

	var result *driver.CompileResult
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return err
	}
	if useCache {
		cache, cerr := driver.OpenDiskCache("strum")
		if cerr != nil {
			return fmt.Errorf("failed to open cache: %w", cerr)
		}
		result, err = driver.CompileFileCached(path, opts, cache)
	} else {
		result, err = driver.CompileFile(path, opts)
	}
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}

	if result.Bag != nil {
		if err := reportDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
			return err
		}
	}
	if timings && len(result.Timings.Phases) > 0 {
		printTimings(os.Stderr, result.Timings)
	}

	switch format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result.Response()); err != nil {
			return err
		}
	case "summary":
		printDocumentSummary(os.Stdout, path, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if result.Document == nil {
		return fmt.Errorf("compilation failed")
	}
	return nil
}

func runCompileDir(cmd *cobra.Command, dir, format string, maxDiag int) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	results, err := driver.CompileDir(cmd.Context(), dir, driver.CompileOptions{MaxDiagnostics: maxDiag}, jobs)
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}

	failed := 0
	for _, r := range results {
		if r.FileSet != nil {
			if err := reportDiagnostics(cmd, r.Bag, r.FileSet); err != nil {
				return err
			}
		} else if r.Bag != nil && r.Bag.HasErrors() {
			if d, ok := r.Bag.FirstError(); ok {
				fmt.Fprintf(os.Stderr, "%s: %s\n", r.Path, d.Message)
			}
		}
		if r.Document == nil {
			failed++
			continue
		}
		if !quiet && format == "summary" {
			fmt.Fprintf(os.Stdout, "%s: %d tracks, %d events, loop %.2f beats\n",
				r.Path, len(r.Document.Tracks), r.Document.EventCount(), r.Document.LoopLength())
		}
	}

	if !quiet {
		fmt.Fprintf(os.Stdout, "compiled %d/%d files\n", len(results)-failed, len(results))
	}
	if failed > 0 {
		return fmt.Errorf("%d files failed to compile", failed)
	}
	return nil
}
