package ast

import "strum/internal/token"

// BlockType enumerates the four block roles of the grammar.
type BlockType uint8

const (
	BlockMelody BlockType = iota
	BlockRhythm
	BlockHarmony
	BlockContrast
)

func (bt BlockType) String() string {
	switch bt {
	case BlockMelody:
		return "melody"
	case BlockRhythm:
		return "rhythm"
	case BlockHarmony:
		return "harmony"
	case BlockContrast:
		return "contrast"
	}
	return "unknown"
}

// BlockTypeForKeyword maps a block keyword token kind to its BlockType.
func BlockTypeForKeyword(k token.Kind) (BlockType, bool) {
	switch k {
	case token.KwMelody:
		return BlockMelody, true
	case token.KwRhythm:
		return BlockRhythm, true
	case token.KwHarmony:
		return BlockHarmony, true
	case token.KwContrast:
		return BlockContrast, true
	default:
		return 0, false
	}
}
