package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"strum/internal/diag"
	"strum/internal/pattern"
	"strum/internal/source"
)

// CompileDirResult is the compile outcome for one file in a directory run.
type CompileDirResult struct {
	Path     string
	FileSet  *source.FileSet
	Document *pattern.Document
	Bag      *diag.Bag
}

// listPatternFiles returns a sorted list of all *.pat files under dir.
func listPatternFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".pat") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// CompileDir compiles every *.pat file under dir, up to jobs files in
// parallel (jobs <= 0 means GOMAXPROCS). Results come back in sorted
// path order; per-file failures land in that file's Bag, and load
// failures become IOLoadFile diagnostics rather than aborting the run.
func CompileDir(ctx context.Context, dir string, opts CompileOptions, jobs int) ([]CompileDirResult, error) {
	files, err := listPatternFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	// Indexes are unique per goroutine, no mutex needed.
	results := make([]CompileDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			result, err := CompileFile(path, opts)
			if err != nil {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFile,
					Message:  "failed to load file: " + err.Error(),
					Primary:  source.Span{},
				})
				results[i] = CompileDirResult{Path: path, Bag: bag}
				return nil
			}

			results[i] = CompileDirResult{
				Path:     path,
				FileSet:  result.FileSet,
				Document: result.Document,
				Bag:      result.Bag,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
