package lexer

import (
	"strum/internal/diag"
	"strum/internal/source"
)

// Reporter is a thin interface so the lexer does not format diagnostics
// itself; it only calls out with a code, span, and message.
type Reporter interface {
	Report(code diag.Code, span source.Span, msg string)
}

// Options configures a Lexer.
type Options struct {
	Reporter Reporter // may be nil: errors are dropped but lexing continues
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, sp, msg)
	}
}

// DiagReporter adapts a diag.Reporter to the lexer's Reporter contract,
// tagging every report as an error.
type DiagReporter struct {
	R diag.Reporter
}

func (a DiagReporter) Report(code diag.Code, span source.Span, msg string) {
	if a.R == nil {
		return
	}
	a.R.Report(code, diag.SevError, span, msg, nil)
}
