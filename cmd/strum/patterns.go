package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"strum/internal/driver"
	"strum/internal/store"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Manage the saved pattern library",
	Long:  `Patterns saves compiled documents under chosen names and retrieves them later`,
}

var patternsSaveCmd = &cobra.Command{
	Use:   "save [flags] file.pat name",
	Short: "Compile a pattern file and save it under a name",
	Args:  cobra.ExactArgs(2),
	RunE:  runPatternsSave,
}

var patternsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved patterns, newest first",
	Args:  cobra.NoArgs,
	RunE:  runPatternsList,
}

var patternsShowCmd = &cobra.Command{
	Use:   "show id",
	Short: "Print a saved pattern document as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runPatternsShow,
}

var patternsDeleteCmd = &cobra.Command{
	Use:   "delete id",
	Short: "Remove a saved pattern",
	Args:  cobra.ExactArgs(1),
	RunE:  runPatternsDelete,
}

func init() {
	patternsCmd.PersistentFlags().String("db", "", "pattern library database (default: $XDG_DATA_HOME/strum/patterns.db)")
	patternsCmd.AddCommand(patternsSaveCmd)
	patternsCmd.AddCommand(patternsListCmd)
	patternsCmd.AddCommand(patternsShowCmd)
	patternsCmd.AddCommand(patternsDeleteCmd)
}

func openLibrary(cmd *cobra.Command) (store.Store, error) {
	path, err := cmd.Flags().GetString("db")
	if err != nil {
		return nil, err
	}
	if path == "" {
		base := os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, herr := os.UserHomeDir()
			if herr != nil {
				return nil, herr
			}
			base = filepath.Join(home, ".local", "share")
		}
		dir := filepath.Join(base, "strum")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "patterns.db")
	}
	return store.NewSQLiteStore(path)
}

func runPatternsSave(cmd *cobra.Command, args []string) error {
	file, name := args[0], args[1]

	maxDiag, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	result, err := driver.CompileFile(file, driver.CompileOptions{MaxDiagnostics: maxDiag})
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}
	if err := reportDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}
	if result.Document == nil {
		return fmt.Errorf("compilation failed")
	}

	lib, err := openLibrary(cmd)
	if err != nil {
		return fmt.Errorf("failed to open pattern library: %w", err)
	}
	defer lib.Close()

	rec, err := lib.Save(cmd.Context(), name, result.Document)
	if err != nil {
		return fmt.Errorf("failed to save pattern: %w", err)
	}
	fmt.Fprintf(os.Stdout, "saved %q as %s\n", rec.Name, rec.ID)
	return nil
}

func runPatternsList(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary(cmd)
	if err != nil {
		return fmt.Errorf("failed to open pattern library: %w", err)
	}
	defer lib.Close()

	recs, err := lib.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list patterns: %w", err)
	}
	if len(recs) == 0 {
		fmt.Fprintln(os.Stdout, "no saved patterns")
		return nil
	}
	for _, rec := range recs {
		fmt.Fprintf(os.Stdout, "%s  %s  %-20s %d events\n",
			rec.ID, rec.CreatedAt.Format("2006-01-02 15:04"), rec.Name, rec.Document.EventCount())
	}
	return nil
}

func runPatternsShow(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary(cmd)
	if err != nil {
		return fmt.Errorf("failed to open pattern library: %w", err)
	}
	defer lib.Close()

	rec, err := lib.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load pattern: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rec)
}

func runPatternsDelete(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary(cmd)
	if err != nil {
		return fmt.Errorf("failed to open pattern library: %w", err)
	}
	defer lib.Close()

	if err := lib.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete pattern: %w", err)
	}
	fmt.Fprintf(os.Stdout, "deleted %s\n", args[0])
	return nil
}
