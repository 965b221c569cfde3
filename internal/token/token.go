package token

import (
	"strum/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit:
		return true
	default:
		return false
	}
}

// IsBlockKeyword reports whether the token opens a pattern block.
func (t Token) IsBlockKeyword() bool {
	switch t.Kind {
	case KwMelody, KwRhythm, KwHarmony, KwContrast:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is any language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwImport, KwFrom, KwMelody, KwRhythm, KwHarmony, KwContrast:
		return true
	default:
		return false
	}
}

// IsNumber reports whether the token is a legal timestamp literal.
func (t Token) IsNumber() bool {
	return t.Kind == IntLit || t.Kind == FloatLit
}
