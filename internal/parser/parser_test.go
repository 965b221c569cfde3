package parser

import (
	"testing"

	"strum/internal/ast"
	"strum/internal/diag"
	"strum/internal/lexer"
	"strum/internal/source"
	"strum/internal/testkit"
)

func parseSrc(t *testing.T, src string) (Result, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.pat", []byte(src))
	file := fs.Get(id)

	bag := diag.NewBag(16)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: lexer.DiagReporter{R: reporter}})

	result := ParseFile(fs, lx, Options{Reporter: reporter})
	if !result.Bag.HasErrors() {
		if err := testkit.CheckSpanInvariants(result.File, file); err != nil {
			t.Fatalf("span invariants: %v", err)
		}
	}
	return result, fs
}

func TestParseSimpleBlock(t *testing.T) {
	result, _ := parseSrc(t, "melody { piano C4 0; piano E4 0.5; piano G4 1.0; }")
	if result.Bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", result.Bag.Items())
	}

	file := result.File
	if len(file.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(file.Blocks))
	}
	block := file.Blocks[0]
	if block.Type != ast.BlockMelody {
		t.Errorf("expected melody block, got %v", block.Type)
	}
	if len(block.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(block.Statements))
	}

	want := []ast.Statement{
		{Instrument: "piano", Note: "C4", Time: "0"},
		{Instrument: "piano", Note: "E4", Time: "0.5"},
		{Instrument: "piano", Note: "G4", Time: "1.0"},
	}
	for i, w := range want {
		got := block.Statements[i]
		if got.Instrument != w.Instrument || got.Note != w.Note || got.Time != w.Time {
			t.Errorf("statement %d: got %s %s %s, want %s %s %s",
				i, got.Instrument, got.Note, got.Time, w.Instrument, w.Note, w.Time)
		}
	}
}

func TestParseImports(t *testing.T) {
	result, _ := parseSrc(t, `
		import piano from "pianoset";
		import synth from "synthset";

		rhythm {
			synth Kick 0;
			synth Snare 0.5;
		}
	`)
	if result.Bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", result.Bag.Items())
	}

	file := result.File
	if len(file.Imports) != 2 {
		t.Fatalf("expected 2 imports, got %d", len(file.Imports))
	}
	if file.Imports[0].Instrument != "piano" || file.Imports[0].Module != "pianoset" {
		t.Errorf("first import: %+v", file.Imports[0])
	}
	if file.Imports[1].Instrument != "synth" || file.Imports[1].Module != "synthset" {
		t.Errorf("second import: %+v", file.Imports[1])
	}
	if len(file.Blocks) != 1 || file.Blocks[0].Type != ast.BlockRhythm {
		t.Fatalf("expected one rhythm block, got %+v", file.Blocks)
	}
	if file.Blocks[0].Statements[0].Note != "Kick" {
		t.Errorf("percussion label must parse as a note: %+v", file.Blocks[0].Statements[0])
	}
}

func TestParseEmptyProgram(t *testing.T) {
	result, _ := parseSrc(t, "")
	if result.Bag.HasErrors() {
		t.Fatalf("empty program must parse: %+v", result.Bag.Items())
	}
	if len(result.File.Imports) != 0 || len(result.File.Blocks) != 0 {
		t.Errorf("expected empty file, got %+v", result.File)
	}
}

func TestParseEmptyBlock(t *testing.T) {
	result, _ := parseSrc(t, "harmony { }")
	if result.Bag.HasErrors() {
		t.Fatalf("empty block must parse: %+v", result.Bag.Items())
	}
	if len(result.File.Blocks) != 1 || len(result.File.Blocks[0].Statements) != 0 {
		t.Errorf("expected one empty block, got %+v", result.File.Blocks)
	}
}

func TestParseAllBlockTypes(t *testing.T) {
	result, _ := parseSrc(t, "melody { } rhythm { } harmony { } contrast { }")
	if result.Bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", result.Bag.Items())
	}
	want := []ast.BlockType{ast.BlockMelody, ast.BlockRhythm, ast.BlockHarmony, ast.BlockContrast}
	if len(result.File.Blocks) != len(want) {
		t.Fatalf("expected %d blocks, got %d", len(want), len(result.File.Blocks))
	}
	for i, w := range want {
		if result.File.Blocks[i].Type != w {
			t.Errorf("block %d: expected %v, got %v", i, w, result.File.Blocks[i].Type)
		}
	}
}

func TestParseMissingSemicolon(t *testing.T) {
	result, fs := parseSrc(t, "melody {\n piano C4 0\n}")
	if !result.Bag.HasErrors() {
		t.Fatal("expected a syntax error")
	}
	first, _ := result.Bag.FirstError()
	if first.Code != diag.SynExpectSemicolon {
		t.Errorf("expected SynExpectSemicolon, got %v", first.Code)
	}
	start, _ := fs.Resolve(first.Primary)
	if start.Line != 3 {
		t.Errorf("expected error on line 3 (at '}'), got line %d", start.Line)
	}
}

func TestParseFailFast(t *testing.T) {
	// Both statements are malformed; only the first may be reported.
	result, _ := parseSrc(t, "melody { piano C4; synth; }")
	errs := 0
	for _, d := range result.Bag.Items() {
		if d.Severity >= diag.SevError {
			errs++
		}
	}
	if errs != 1 {
		t.Errorf("fail-fast parser must report exactly one error, got %d: %+v", errs, result.Bag.Items())
	}
}

func TestParseImportAfterBlock(t *testing.T) {
	result, _ := parseSrc(t, `melody { } import piano from "pianoset";`)
	first, ok := result.Bag.FirstError()
	if !ok || first.Code != diag.SynImportAfterBlock {
		t.Errorf("expected SynImportAfterBlock, got %+v", result.Bag.Items())
	}
}

func TestParseUnclosedBlock(t *testing.T) {
	result, _ := parseSrc(t, "melody { piano C4 0;")
	first, ok := result.Bag.FirstError()
	if !ok || first.Code != diag.SynExpectRBrace {
		t.Errorf("expected SynExpectRBrace, got %+v", result.Bag.Items())
	}
}

func TestParseTopLevelGarbage(t *testing.T) {
	result, _ := parseSrc(t, "piano C4 0;")
	first, ok := result.Bag.FirstError()
	if !ok || first.Code != diag.SynUnexpectedTopLevel {
		t.Errorf("expected SynUnexpectedTopLevel, got %+v", result.Bag.Items())
	}
}
