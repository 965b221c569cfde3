package token

var keywords = map[string]Kind{
	"import":   KwImport,
	"from":     KwFrom,
	"melody":   KwMelody,
	"rhythm":   KwRhythm,
	"harmony":  KwHarmony,
	"contrast": KwContrast,
}

// LookupKeyword returns the keyword kind for ident, if any. Keywords are
// case-sensitive; only lowercase forms are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
