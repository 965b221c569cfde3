// Package driver orchestrates the pipeline phases: load, tokenize,
// parse, compile. Commands call into it instead of wiring the phases
// themselves, so the CLI and the tests share one code path.
package driver

import (
	"strum/internal/diag"
	"strum/internal/lexer"
	"strum/internal/source"
	"strum/internal/token"
)

// TokenizeResult carries everything a token listing needs.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads a file and collects its tokens up to and including EOF.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return tokenize(fs, fileID, maxDiagnostics), nil
}

// TokenizeText tokenizes in-memory content under a virtual file name.
func TokenizeText(name string, content []byte, maxDiagnostics int) *TokenizeResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return tokenize(fs, fileID, maxDiagnostics)
}

func tokenize(fs *source.FileSet, fileID source.FileID, maxDiagnostics int) *TokenizeResult {
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)

	lx := lexer.New(file, lexer.Options{
		Reporter: lexer.DiagReporter{R: &diag.BagReporter{Bag: bag}},
	})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}
}
