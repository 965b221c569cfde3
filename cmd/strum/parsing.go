package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"strum/internal/diagfmt"
	"strum/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.pat",
	Short: "Parse a pattern source file and output its tree",
	Long:  `Parse analyzes a pattern source file and prints imports, blocks, and statements`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiag, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Parse(args[0], maxDiag)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if err := reportDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return fmt.Errorf("parsing failed")
	}

	switch format {
	case "pretty":
		return diagfmt.FormatFilePretty(os.Stdout, result.File, result.FileSet)
	case "json":
		return diagfmt.FormatFileJSON(os.Stdout, result.File)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
