package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	cases := []struct {
		ident string
		want  Kind
		ok    bool
	}{
		{"import", KwImport, true},
		{"from", KwFrom, true},
		{"melody", KwMelody, true},
		{"rhythm", KwRhythm, true},
		{"harmony", KwHarmony, true},
		{"contrast", KwContrast, true},
		{"Melody", Invalid, false},
		{"piano", Invalid, false},
		{"", Invalid, false},
	}
	for _, tc := range cases {
		got, ok := LookupKeyword(tc.ident)
		if ok != tc.ok {
			t.Errorf("LookupKeyword(%q): ok=%v, want %v", tc.ident, ok, tc.ok)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("LookupKeyword(%q) = %v, want %v", tc.ident, got, tc.want)
		}
	}
}

func TestIsPitchedNote(t *testing.T) {
	pitched := []string{"C4", "A0", "G9", "F#3", "Bb2", "E4"}
	for _, s := range pitched {
		if !IsPitchedNote(s) {
			t.Errorf("IsPitchedNote(%q) = false, want true", s)
		}
	}

	unpitched := []string{"Kick", "Snare", "H4x", "c4", "C", "C#", "C##4", "Cb", "X4", "4C", ""}
	for _, s := range unpitched {
		if IsPitchedNote(s) {
			t.Errorf("IsPitchedNote(%q) = true, want false", s)
		}
	}
}

func TestKindPredicates(t *testing.T) {
	if !(Token{Kind: KwMelody}).IsBlockKeyword() {
		t.Error("KwMelody must be a block keyword")
	}
	if (Token{Kind: KwImport}).IsBlockKeyword() {
		t.Error("KwImport is not a block keyword")
	}
	if !(Token{Kind: FloatLit}).IsNumber() || !(Token{Kind: IntLit}).IsNumber() {
		t.Error("numeric literals must satisfy IsNumber")
	}
	if !(Token{Kind: StringLit}).IsLiteral() {
		t.Error("StringLit must be a literal")
	}
	if (Token{Kind: Ident}).IsKeyword() {
		t.Error("Ident is not a keyword")
	}
}
