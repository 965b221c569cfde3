// Package testkit holds invariant checks shared by tests across
// packages.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"strum/internal/ast"
	"strum/internal/pattern"
	"strum/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed
// file:
// 1) file.Span is within file content bounds
// 2) every import and block span is non-empty and inside file.Span
// 3) file.Span covers the union of top-level spans
func CheckSpanInvariants(f *ast.File, sf *source.File) error {
	if f == nil || sf == nil {
		return fmt.Errorf("nil file")
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}

	var union source.Span
	var haveItem bool
	check := func(sp source.Span, what string) error {
		if sp.End <= sp.Start {
			return fmt.Errorf("empty %s span: %v", what, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, sf.ID)
		}
		if sp.Start < f.Span.Start || sp.End > f.Span.End {
			return fmt.Errorf("%s span %v is outside file span %v", what, sp, f.Span)
		}
		if !haveItem {
			union = sp
			haveItem = true
		} else {
			union = union.Cover(sp)
		}
		return nil
	}

	for _, imp := range f.Imports {
		if err := check(imp.Span, "import"); err != nil {
			return err
		}
	}
	for _, blk := range f.Blocks {
		if err := check(blk.Span, "block"); err != nil {
			return err
		}
		for _, stmt := range blk.Statements {
			if stmt.Span.Start < blk.Span.Start || stmt.Span.End > blk.Span.End {
				return fmt.Errorf("statement span %v is outside block span %v", stmt.Span, blk.Span)
			}
		}
	}

	if haveItem {
		if union.Start < f.Span.Start || union.End > f.Span.End {
			return fmt.Errorf("file span %v does not cover union of items %v", f.Span, union)
		}
	}
	return nil
}

// CheckDocumentInvariants verifies the wire-shape invariants of a
// compiled document: per-track time ordering, non-negative times, and
// velocities in [0, 1].
func CheckDocumentInvariants(doc *pattern.Document) error {
	if doc == nil {
		return fmt.Errorf("nil document")
	}
	for _, name := range doc.TrackNames() {
		events := doc.Tracks[name]
		for i, ev := range events {
			if ev.Time < 0 {
				return fmt.Errorf("track %s event %d has negative time %g", name, i, ev.Time)
			}
			if ev.Velocity < 0 || ev.Velocity > 1 {
				return fmt.Errorf("track %s event %d has velocity %g outside [0,1]", name, i, ev.Velocity)
			}
			if i > 0 && events[i-1].Time > ev.Time {
				return fmt.Errorf("track %s not sorted at event %d: %g > %g", name, i, events[i-1].Time, ev.Time)
			}
		}
	}
	return nil
}
