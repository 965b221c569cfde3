package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"strum/internal/diag"
	"strum/internal/source"
)

// Pretty renders diagnostics for humans, one block per diagnostic:
//
//	<path>:<line>:<col>: <SEVERITY> <CODE>: <message>
//	    <source line>
//	        ^~~~
//	  note: <note message>
//
// The bag is printed in its current order; call bag.Sort() first for
// file/offset order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	paint := severityPainter(d.Severity, opts.Color)

	path := "<unknown>"
	if f := fs.Get(d.Primary.File); f != nil {
		path = f.Path
	}
	start, _ := fs.Resolve(d.Primary)

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		path, start.Line, start.Col,
		paint(d.Severity.String()), d.Code.String(), d.Message)

	if opts.Context {
		writeContext(w, d.Primary, fs, paint)
	}

	if opts.ShowNotes {
		for _, note := range d.Notes {
			nstart, _ := fs.Resolve(note.Span)
			fmt.Fprintf(w, "  note: %s (%d:%d)\n", note.Msg, nstart.Line, nstart.Col)
		}
	}
}

func writeContext(w io.Writer, span source.Span, fs *source.FileSet, paint func(...interface{}) string) {
	f := fs.Get(span.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(span)
	line := f.GetLine(start.Line)
	if line == "" && span.Len() == 0 {
		return
	}

	fmt.Fprintf(w, "    %s\n", line)

	// Underline the span within its first line.
	col := int(start.Col)
	if col < 1 {
		col = 1
	}
	width := 1
	if start.Line == end.Line && int(end.Col) > col {
		width = int(end.Col) - col
	}
	if col-1 > len(line) {
		col = len(line) + 1
	}
	marker := "^"
	if width > 1 {
		marker += strings.Repeat("~", width-1)
	}
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", col-1), paint(marker))
}

func severityPainter(sev diag.Severity, enabled bool) func(...interface{}) string {
	if !enabled {
		return fmt.Sprint
	}
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold).Sprint
	case diag.SevWarning:
		return color.New(color.FgYellow).Sprint
	default:
		return color.New(color.FgCyan).Sprint
	}
}
