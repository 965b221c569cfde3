package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"strum/internal/diag"
	"strum/internal/diagfmt"
	"strum/internal/source"
)

// prettyOpts reads the root flags and builds the pretty-print options
// every command uses for stderr diagnostics.
func prettyOpts(cmd *cobra.Command) (diagfmt.PrettyOpts, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return diagfmt.PrettyOpts{}, err
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr))
	return diagfmt.PrettyOpts{
		Color:     useColor,
		Context:   true,
		ShowNotes: true,
	}, nil
}

// reportDiagnostics prints the bag to stderr when it has anything to say.
func reportDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || (!bag.HasErrors() && !bag.HasWarnings()) {
		return nil
	}
	opts, err := prettyOpts(cmd)
	if err != nil {
		return err
	}
	bag.Sort()
	diagfmt.Pretty(os.Stderr, bag, fs, opts)
	return nil
}

func maxDiagnostics(cmd *cobra.Command) (int, error) {
	n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return n, nil
}
