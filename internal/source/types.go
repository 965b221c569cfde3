package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about how a source file was ingested.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM indicates a UTF-8 byte order mark was stripped on load.
	FileHadBOM
	// FileNormalizedCRLF indicates CRLF line endings were rewritten to LF.
	FileNormalizedCRLF
	// FileNormalizedNFC indicates the content was not in NFC and was renormalized.
	FileNormalizedNFC
)

// File captures metadata and content for a single pattern source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // byte offsets of '\n', for offset -> line:col resolution
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a human-readable position in a source file. Both fields are 1-based.
type LineCol struct {
	Line uint32
	Col  uint32
}
