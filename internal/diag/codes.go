package diag

import "fmt"

// Code identifies a diagnostic. Numeric ranges group codes by phase:
// 100s I/O, 1000s lexical, 2000s syntax, 3000s semantic.
type Code uint16

const (
	// UnknownCode is the zero value for uncategorized diagnostics.
	UnknownCode Code = 0

	// I/O.
	IOLoadFile Code = 101

	// Lexical.
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003

	// Syntax.
	SynUnexpectedToken    Code = 2001
	SynUnexpectedTopLevel Code = 2002
	SynExpectSemicolon    Code = 2003
	SynExpectLBrace       Code = 2004
	SynExpectRBrace       Code = 2005
	SynExpectIdentifier   Code = 2006
	SynExpectNote         Code = 2007
	SynExpectTimestamp    Code = 2008
	SynExpectModuleName   Code = 2009
	SynExpectFrom         Code = 2010
	SynImportAfterBlock   Code = 2011

	// Semantic.
	SemaDuplicateBlock     Code = 3001
	SemaNegativeTime       Code = 3002
	SemaBadTimestamp       Code = 3003
	SemaUnknownInstrument  Code = 3004
	SemaDuplicateImport    Code = 3005
)

var codeNames = map[Code]string{
	UnknownCode:           "Unknown",
	IOLoadFile:            "IOLoadFile",
	LexUnknownChar:        "LexUnknownChar",
	LexUnterminatedString: "LexUnterminatedString",
	LexBadNumber:          "LexBadNumber",
	SynUnexpectedToken:    "SynUnexpectedToken",
	SynUnexpectedTopLevel: "SynUnexpectedTopLevel",
	SynExpectSemicolon:    "SynExpectSemicolon",
	SynExpectLBrace:       "SynExpectLBrace",
	SynExpectRBrace:       "SynExpectRBrace",
	SynExpectIdentifier:   "SynExpectIdentifier",
	SynExpectNote:         "SynExpectNote",
	SynExpectTimestamp:    "SynExpectTimestamp",
	SynExpectModuleName:   "SynExpectModuleName",
	SynExpectFrom:         "SynExpectFrom",
	SynImportAfterBlock:   "SynImportAfterBlock",
	SemaDuplicateBlock:    "SemaDuplicateBlock",
	SemaNegativeTime:      "SemaNegativeTime",
	SemaBadTimestamp:      "SemaBadTimestamp",
	SemaUnknownInstrument: "SemaUnknownInstrument",
	SemaDuplicateImport:   "SemaDuplicateImport",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", uint16(c))
}
