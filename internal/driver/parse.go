package driver

import (
	"strum/internal/ast"
	"strum/internal/diag"
	"strum/internal/lexer"
	"strum/internal/parser"
	"strum/internal/source"
)

// ParseResult carries the parsed tree and its diagnostics.
type ParseResult struct {
	FileSet *source.FileSet
	FileID  source.FileID
	File    *ast.File
	Bag     *diag.Bag
}

// Parse loads and parses one pattern source file.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return parse(fs, fileID, maxDiagnostics), nil
}

// ParseText parses in-memory content under a virtual file name.
func ParseText(name string, content []byte, maxDiagnostics int) *ParseResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return parse(fs, fileID, maxDiagnostics)
}

func parse(fs *source.FileSet, fileID source.FileID, maxDiagnostics int) *ParseResult {
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)
	reporter := &diag.BagReporter{Bag: bag}

	lx := lexer.New(file, lexer.Options{Reporter: lexer.DiagReporter{R: reporter}})
	result := parser.ParseFile(fs, lx, parser.Options{Reporter: reporter})

	return &ParseResult{
		FileSet: fs,
		FileID:  fileID,
		File:    result.File,
		Bag:     bag,
	}
}
