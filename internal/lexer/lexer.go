package lexer

import (
	"strum/internal/diag"
	"strum/internal/source"
	"strum/internal/token"
)

// Lexer produces the token stream for one pattern source file. It is total:
// unknown bytes become Invalid tokens with a diagnostic, and after EOF it
// keeps returning EOF.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // one-token buffer for Peek
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next significant token. Whitespace (including newlines)
// is insignificant and skipped.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipWhitespace()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStart(ch):
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '-' && lx.digitFollows():
		// A signed timestamp lexes as one number; the range check lives in
		// the compiler so that `piano C4 -1;` fails as "negative time".
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	default:
		return lx.scanPunct()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan is a zero-length span at the current cursor position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) skipWhitespace() {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\n', '\r':
			lx.cursor.Bump()
		default:
			return
		}
	}
}

func (lx *Lexer) digitFollows() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '-' && isDec(b1)
}

func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	ch := lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])

	switch ch {
	case '{':
		return token.Token{Kind: token.LBrace, Span: sp, Text: text}
	case '}':
		return token.Token{Kind: token.RBrace, Span: sp, Text: text}
	case ';':
		return token.Token{Kind: token.Semicolon, Span: sp, Text: text}
	}

	lx.report(diag.LexUnknownChar, sp, "unexpected character '"+text+"'")
	return token.Token{Kind: token.Invalid, Span: sp, Text: text}
}
