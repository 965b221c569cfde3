package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new strum project",
	Long: `Initialize a new strum project by creating a project manifest (strum.toml)
and a starter pattern file (main.pat). If [path|name] is omitted, initializes
the current directory. If a non-existing name is provided, a directory will be
created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit initializes a strum project at the specified target path (or the
// current working directory when no argument or "." is provided) by creating a
// strum.toml manifest and a main.pat starter pattern.
//
// It resolves the target path, creates the directory if it does not exist,
// derives a project name from the directory basename (falling back to
// "strum-project" for invalid names), and refuses to initialize if strum.toml
// already exists.
func runInit(cmd *cobra.Command, args []string) error {
	// Resolve target directory
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		// treat as path or name relative to cwd
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	// Ensure directory exists
	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	// Determine project name from directory basename
	name := filepath.Base(target)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "strum-project"
	}

	// Create manifest file if not exists
	manifestPath := filepath.Join(target, "strum.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	manifest := buildDefaultManifest(name)
	if err := os.WriteFile(manifestPath, []byte(manifest), os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	// Create main.pat if not exists
	mainPath := filepath.Join(target, "main.pat")
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMainPat()), 0o600); err != nil {
			return fmt.Errorf("failed to write main.pat: %w", err)
		}
		createdMain = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized strum project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - strum.toml\n")
	if createdMain {
		fmt.Fprintf(os.Stdout, "  - main.pat\n")
	} else {
		fmt.Fprintf(os.Stdout, "  - main.pat (existing)\n")
	}
	return nil
}

// buildDefaultManifest returns a minimal TOML manifest for a strum project
// using the provided package name. The manifest contains [package] metadata
// and a [play] section pointing at main.pat.
func buildDefaultManifest(name string) string {
	// Minimal TOML manifest used as a project marker.
	return fmt.Sprintf(`# Strum project manifest
[package]
name = "%s"
version = "0.1.0"

[play]
main = "main.pat"
tempo = 120
`, name)
}

// defaultMainPat returns the starter pattern written by init: a piano scale
// over a synth backbeat, enough to hear something on the first play.
func defaultMainPat() string {
	return `import piano from "keys";
import synth from "drums";

melody {
    piano C4 0;
    piano E4 1;
    piano G4 2;
    piano C5 3;
}

rhythm {
    synth Kick 0;
    synth HiHat 1;
    synth Snare 2;
    synth HiHat 3;
}
`
}
