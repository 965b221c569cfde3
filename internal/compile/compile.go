// Package compile walks a parsed syntax tree, validates its semantics, and
// emits the pattern document handed to the scheduler and other consumers.
package compile

import (
	"sort"
	"strconv"

	"strum/internal/ast"
	"strum/internal/diag"
	"strum/internal/pattern"
)

// Options configures a compile run.
type Options struct {
	Reporter diag.Reporter
}

// Compile validates the syntax tree and builds a pattern document. On any
// error-severity diagnostic the document is nil. Rules:
//
//   - A block type may appear at most once; a second `melody { }` is
//     rejected as a duplicate rather than merged, so track ownership stays
//     unambiguous.
//   - Event times must be >= 0; zero is the valid start of a pattern.
//   - Imports are declarative. A statement naming an instrument that no
//     import binds still compiles, but draws a warning when the file has
//     imports to check against.
//   - Within each track, events are stably sorted by time, preserving
//     source order on ties.
//
// Velocity and duration have no grammar slot; the schema defaults apply
// uniformly.
func Compile(file *ast.File, opts Options) *pattern.Document {
	c := compiler{opts: opts}
	return c.run(file)
}

type compiler struct {
	opts   Options
	failed bool
}

func (c *compiler) run(file *ast.File) *pattern.Document {
	doc := pattern.New()

	imported := make(map[string]bool, len(file.Imports))
	for _, imp := range file.Imports {
		if imported[imp.Instrument] {
			c.errorAt(diag.SemaDuplicateImport, imp, "duplicate import: "+imp.Instrument)
			continue
		}
		imported[imp.Instrument] = true
		doc.Imports = append(doc.Imports, pattern.ImportBinding{
			Instrument: imp.Instrument,
			Module:     imp.Module,
		})
	}

	seen := make(map[ast.BlockType]ast.Block, len(file.Blocks))
	for _, block := range file.Blocks {
		if prev, dup := seen[block.Type]; dup {
			d := diag.NewError(diag.SemaDuplicateBlock, block.KwSpan,
				"duplicate block: "+block.Type.String()).
				WithNote(prev.KwSpan, "first '"+block.Type.String()+"' block is here")
			c.report(d)
			continue
		}
		seen[block.Type] = block

		doc.Tracks[block.Type.String()] = c.compileBlock(block, imported)
	}

	if c.failed {
		return nil
	}
	return doc
}

func (c *compiler) compileBlock(block ast.Block, imported map[string]bool) []pattern.NoteEvent {
	events := make([]pattern.NoteEvent, 0, len(block.Statements))
	for _, stmt := range block.Statements {
		beat, err := strconv.ParseFloat(stmt.Time, 64)
		if err != nil {
			c.report(diag.NewError(diag.SemaBadTimestamp, stmt.TimeSpan,
				"malformed timestamp '"+stmt.Time+"'"))
			continue
		}
		if beat < 0 {
			c.report(diag.NewError(diag.SemaNegativeTime, stmt.TimeSpan,
				"negative time: "+stmt.Time))
			continue
		}
		if len(imported) > 0 && !imported[stmt.Instrument] {
			c.warn(diag.SemaUnknownInstrument, stmt,
				"instrument '"+stmt.Instrument+"' is not bound by any import")
		}
		events = append(events, pattern.NoteEvent{
			Instrument: stmt.Instrument,
			Note:       stmt.Note,
			Time:       beat,
			Velocity:   pattern.DefaultVelocity,
			Duration:   pattern.DefaultDuration,
		})
	}

	// Stable: statements with equal times keep their source order, which is
	// also the order the scheduler fires them in.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time < events[j].Time
	})
	return events
}

func (c *compiler) errorAt(code diag.Code, imp ast.Import, msg string) {
	c.report(diag.NewError(code, imp.Span, msg))
}

func (c *compiler) warn(code diag.Code, stmt ast.Statement, msg string) {
	if c.opts.Reporter != nil {
		c.opts.Reporter.Report(code, diag.SevWarning, stmt.Span, msg, nil)
	}
}

func (c *compiler) report(d diag.Diagnostic) {
	if d.Severity >= diag.SevError {
		c.failed = true
	}
	if c.opts.Reporter != nil {
		c.opts.Reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
	}
}
