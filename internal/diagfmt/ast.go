package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"strum/internal/ast"
	"strum/internal/source"
)

// FormatFilePretty prints the parsed tree with resolved positions:
//
//	file play.pat
//	  import piano from "pianoset" (1:1)
//	  melody (3:1)
//	    piano C4 0 (4:5)
func FormatFilePretty(w io.Writer, f *ast.File, fs *source.FileSet) error {
	name := "<unknown>"
	if sf := fs.Get(f.Span.File); sf != nil {
		name = sf.Path
	}
	fmt.Fprintf(w, "file %s\n", name)

	for _, imp := range f.Imports {
		start, _ := fs.Resolve(imp.Span)
		fmt.Fprintf(w, "  import %s from %q (%d:%d)\n", imp.Instrument, imp.Module, start.Line, start.Col)
	}
	for _, blk := range f.Blocks {
		start, _ := fs.Resolve(blk.Span)
		fmt.Fprintf(w, "  %s (%d:%d)\n", blk.Type, start.Line, start.Col)
		for _, stmt := range blk.Statements {
			sstart, _ := fs.Resolve(stmt.Span)
			fmt.Fprintf(w, "    %s %s %s (%d:%d)\n", stmt.Instrument, stmt.Note, stmt.Time, sstart.Line, sstart.Col)
		}
	}
	return nil
}

// FileJSON is the JSON shape of a parsed pattern file.
type FileJSON struct {
	Imports []ImportJSON `json:"imports"`
	Blocks  []BlockJSON  `json:"blocks"`
}

type ImportJSON struct {
	Instrument string      `json:"instrument"`
	Module     string      `json:"module"`
	Span       source.Span `json:"span"`
}

type BlockJSON struct {
	Type       string          `json:"type"`
	Statements []StatementJSON `json:"statements"`
	Span       source.Span     `json:"span"`
}

type StatementJSON struct {
	Instrument string      `json:"instrument"`
	Note       string      `json:"note"`
	Time       string      `json:"time"`
	Span       source.Span `json:"span"`
}

// BuildFileJSON shapes the tree for JSON output.
func BuildFileJSON(f *ast.File) FileJSON {
	out := FileJSON{
		Imports: make([]ImportJSON, 0, len(f.Imports)),
		Blocks:  make([]BlockJSON, 0, len(f.Blocks)),
	}
	for _, imp := range f.Imports {
		out.Imports = append(out.Imports, ImportJSON{
			Instrument: imp.Instrument,
			Module:     imp.Module,
			Span:       imp.Span,
		})
	}
	for _, blk := range f.Blocks {
		bj := BlockJSON{
			Type:       blk.Type.String(),
			Statements: make([]StatementJSON, 0, len(blk.Statements)),
			Span:       blk.Span,
		}
		for _, stmt := range blk.Statements {
			bj.Statements = append(bj.Statements, StatementJSON{
				Instrument: stmt.Instrument,
				Note:       stmt.Note,
				Time:       stmt.Time,
				Span:       stmt.Span,
			})
		}
		out.Blocks = append(out.Blocks, bj)
	}
	return out
}

// FormatFileJSON prints the parsed tree as an indented JSON document.
func FormatFileJSON(w io.Writer, f *ast.File) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildFileJSON(f))
}
