package driver

import (
	"strum/internal/ast"
	"strum/internal/compile"
	"strum/internal/diag"
	"strum/internal/lexer"
	"strum/internal/observ"
	"strum/internal/parser"
	"strum/internal/pattern"
	"strum/internal/source"
)

// CompileResult carries the output of the full pipeline for one file.
// Document is nil when any phase reported an error.
type CompileResult struct {
	FileSet  *source.FileSet
	FileID   source.FileID
	File     *ast.File
	Document *pattern.Document
	Bag      *diag.Bag
	Timings  observ.Report
}

// CompileOptions tunes a compile run.
type CompileOptions struct {
	MaxDiagnostics int
	CollectTimings bool
}

// CompileFile runs load, tokenize+parse, and compile for one file.
func CompileFile(path string, opts CompileOptions) (*CompileResult, error) {
	timer := observ.NewTimer()

	idx := timer.Begin("load")
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	timer.End(idx, path)
	if err != nil {
		return nil, err
	}
	return compilePipeline(fs, fileID, opts, timer), nil
}

// CompileText compiles in-memory content under a virtual file name.
func CompileText(name string, content []byte, opts CompileOptions) *CompileResult {
	timer := observ.NewTimer()

	idx := timer.Begin("load")
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	timer.End(idx, name)

	return compilePipeline(fs, fileID, opts, timer)
}

func compilePipeline(fs *source.FileSet, fileID source.FileID, opts CompileOptions, timer *observ.Timer) *CompileResult {
	file := fs.Get(fileID)
	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := &diag.BagReporter{Bag: bag}

	idx := timer.Begin("parse")
	lx := lexer.New(file, lexer.Options{Reporter: lexer.DiagReporter{R: reporter}})
	parsed := parser.ParseFile(fs, lx, parser.Options{Reporter: reporter})
	timer.End(idx, "")

	var doc *pattern.Document
	if !bag.HasErrors() {
		idx = timer.Begin("compile")
		doc = compile.Compile(parsed.File, compile.Options{Reporter: reporter})
		timer.End(idx, "")
	}

	result := &CompileResult{
		FileSet:  fs,
		FileID:   fileID,
		File:     parsed.File,
		Document: doc,
		Bag:      bag,
	}
	if opts.CollectTimings {
		result.Timings = timer.Report()
	}
	return result
}
