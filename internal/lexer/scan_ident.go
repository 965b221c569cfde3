package lexer

import (
	"strum/internal/diag"
	"strum/internal/token"
)

// scanIdentOrKeyword scans [A-Za-z_][A-Za-z0-9_#]* and classifies the result
// as a keyword, a pitched note name, or a plain identifier. The '#' byte is
// admitted mid-word only so that F#3 lexes as a single note token; an
// identifier that is not note-shaped never contains '#' per the grammar, so
// such a token is reported as invalid.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	lx.cursor.Bump()
	for {
		b := lx.cursor.Peek()
		if !isIdentContinue(b) && b != '#' {
			break
		}
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])

	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	if token.IsPitchedNote(text) {
		return token.Token{Kind: token.Note, Span: sp, Text: text}
	}
	for i := 0; i < len(text); i++ {
		if text[i] == '#' {
			lx.report(diag.LexUnknownChar, sp, "'#' is only valid inside a note name like F#3")
			return token.Token{Kind: token.Invalid, Span: sp, Text: text}
		}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
