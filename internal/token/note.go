package token

// IsPitchedNote reports whether text has the shape of a pitched note name:
// a letter A-G, an optional '#' or 'b' accidental, and a single octave digit.
// Anything else that lexes as an identifier is a percussion label (Kick,
// Snare, HiHat) and stays an Ident.
func IsPitchedNote(text string) bool {
	if len(text) < 2 || len(text) > 3 {
		return false
	}
	if text[0] < 'A' || text[0] > 'G' {
		return false
	}
	rest := text[1:]
	if len(rest) == 2 {
		if rest[0] != '#' && rest[0] != 'b' {
			return false
		}
		rest = rest[1:]
	}
	return rest[0] >= '0' && rest[0] <= '9'
}
