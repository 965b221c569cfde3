package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token (instrument or percussion name).
	Ident
	// Note represents a pitched note name such as C4, F#3, or Bb2.
	Note

	// IntLit represents an integer literal token.
	IntLit
	// FloatLit represents a float literal token.
	FloatLit
	// StringLit represents a double-quoted module name.
	StringLit

	// KwImport represents the 'import' keyword.
	KwImport // import
	// KwFrom represents the 'from' keyword.
	KwFrom // from
	// KwMelody represents the 'melody' block keyword.
	KwMelody // melody
	// KwRhythm represents the 'rhythm' block keyword.
	KwRhythm // rhythm
	// KwHarmony represents the 'harmony' block keyword.
	KwHarmony // harmony
	// KwContrast represents the 'contrast' block keyword.
	KwContrast // contrast

	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
	// Semicolon represents the semicolon token.
	Semicolon // ;
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Ident:
		return "Ident"
	case Note:
		return "Note"
	case IntLit:
		return "IntLit"
	case FloatLit:
		return "FloatLit"
	case StringLit:
		return "StringLit"
	case KwImport:
		return "KwImport"
	case KwFrom:
		return "KwFrom"
	case KwMelody:
		return "KwMelody"
	case KwRhythm:
		return "KwRhythm"
	case KwHarmony:
		return "KwHarmony"
	case KwContrast:
		return "KwContrast"
	case LBrace:
		return "LBrace"
	case RBrace:
		return "RBrace"
	case Semicolon:
		return "Semicolon"
	}
	return "Unknown"
}
