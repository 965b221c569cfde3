package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"strum/internal/diag"
	"strum/internal/diagfmt"
	"strum/internal/source"
	"strum/internal/token"
)

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("play.pat", []byte("melody {\n    piano C4 0\n}\n"))

	bag := diag.NewBag(16)
	// "piano C4 0" is missing its semicolon: underline the trailing 0.
	bad := source.Span{File: id, Start: 22, End: 23}
	bag.Add(diag.NewError(diag.SynExpectSemicolon, bad, "expected ';' after statement").
		WithNote(source.Span{File: id, Start: 0, End: 6}, "inside this block"))
	return bag, fs
}

func TestPretty(t *testing.T) {
	bag, fs := sampleBag(t)

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{Context: true, ShowNotes: true})
	out := buf.String()

	for _, want := range []string{
		"play.pat:2:14: ERROR SynExpectSemicolon: expected ';' after statement",
		"    piano C4 0",
		"note: inside this block (1:1)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// The caret sits under the offending character: 4 columns of leading
	// indent plus column 14 of the source line.
	caret := strings.Repeat(" ", 4+13) + "^"
	if !strings.Contains(out, "\n"+caret+"\n") {
		t.Errorf("output missing caret line %q:\n%s", caret, out)
	}
}

func TestPrettyNoContext(t *testing.T) {
	bag, fs := sampleBag(t)

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{})
	out := buf.String()

	if strings.Contains(out, "^") {
		t.Errorf("context disabled but underline printed:\n%s", out)
	}
	if strings.Contains(out, "note:") {
		t.Errorf("notes disabled but printed:\n%s", out)
	}
}

func TestJSON(t *testing.T) {
	bag, fs := sampleBag(t)

	var buf bytes.Buffer
	if err := diagfmt.JSON(&buf, bag, fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %+v", out)
	}

	d := out.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "SynExpectSemicolon" {
		t.Errorf("unexpected head: %+v", d)
	}
	if d.Location.File != "play.pat" || d.Location.StartLine != 2 || d.Location.StartCol != 14 {
		t.Errorf("unexpected location: %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "inside this block" {
		t.Errorf("unexpected notes: %+v", d.Notes)
	}
}

func TestJSONMax(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("play.pat", []byte("melody {}\n"))

	bag := diag.NewBag(16)
	for i := 0; i < 5; i++ {
		bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: 0, End: 1}, "boom"))
	}

	var buf bytes.Buffer
	if err := diagfmt.JSON(&buf, bag, fs, diagfmt.JSONOpts{Max: 2}); err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if out.Count != 2 {
		t.Errorf("expected 2 diagnostics after truncation, got %d", out.Count)
	}
}

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("play.pat", []byte("piano C4 0;"))

	tokens := []token.Token{
		{Kind: token.Ident, Span: source.Span{File: id, Start: 0, End: 5}, Text: "piano"},
		{Kind: token.Note, Span: source.Span{File: id, Start: 6, End: 8}, Text: "C4"},
		{Kind: token.IntLit, Span: source.Span{File: id, Start: 9, End: 10}, Text: "0"},
		{Kind: token.Semicolon, Span: source.Span{File: id, Start: 10, End: 11}},
		{Kind: token.EOF, Span: source.Span{File: id, Start: 11, End: 11}},
	}

	var buf bytes.Buffer
	if err := diagfmt.FormatTokensPretty(&buf, tokens, fs); err != nil {
		t.Fatalf("format failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{`"piano"`, `"C4"`, "at 1:1-1:6", "EOF"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatTokensJSON(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("play.pat", []byte("piano"))

	tokens := []token.Token{
		{Kind: token.Ident, Span: source.Span{File: id, Start: 0, End: 5}, Text: "piano"},
		{Kind: token.EOF, Span: source.Span{File: id, Start: 5, End: 5}},
	}

	var buf bytes.Buffer
	if err := diagfmt.FormatTokensJSON(&buf, tokens); err != nil {
		t.Fatalf("format failed: %v", err)
	}

	var out []diagfmt.TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if len(out) != 2 || out[0].Kind != "Ident" || out[0].Text != "piano" {
		t.Errorf("unexpected tokens: %+v", out)
	}
}
