// Package ast holds the syntax tree for one pattern source file. The grammar
// is flat (imports followed by blocks of statements, no nesting), so nodes
// are plain structs owned by slices; every node keeps the span it was parsed
// from for diagnostics.
package ast

import (
	"strum/internal/source"
)

// File is the root node: the ordered imports and blocks of one source file.
type File struct {
	Imports []Import
	Blocks  []Block
	Span    source.Span
}

// Import binds an instrument name to a sample module: `import piano from "pianoset";`.
type Import struct {
	Instrument string
	Module     string
	Span       source.Span
}

// Block groups statements under one block type: `melody { ... }`.
type Block struct {
	Type       BlockType
	Statements []Statement
	Span       source.Span
	KwSpan     source.Span // span of the block keyword, for duplicate-block notes
}

// Statement is a single note trigger: `piano C4 0.5;`. Time keeps the raw
// literal text; numeric conversion and range checks belong to the compiler.
type Statement struct {
	Instrument string
	Note       string
	Time       string
	Span       source.Span
	TimeSpan   source.Span
}
