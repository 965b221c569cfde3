package driver

import (
	"fmt"

	"strum/internal/pattern"
	"strum/internal/source"
)

// CompileResponse is the machine-readable envelope around a compile:
// success with the document, or failure with the first error message.
type CompileResponse struct {
	Success bool              `json:"success"`
	Pattern *pattern.Document `json:"pattern"`
	Error   *string           `json:"error"`
}

// Response shapes the result into the success/pattern/error envelope.
func (r *CompileResult) Response() CompileResponse {
	if r.Document != nil && !r.Bag.HasErrors() {
		return CompileResponse{Success: true, Pattern: r.Document}
	}

	msg := "compilation failed"
	if d, ok := r.Bag.FirstError(); ok {
		start, _ := r.FileSet.Resolve(d.Primary)
		msg = formatError(d.Message, start)
	}
	return CompileResponse{Success: false, Error: &msg}
}

func formatError(msg string, at source.LineCol) string {
	if at.Line == 0 {
		return msg
	}
	return fmt.Sprintf("%s (line %d, column %d)", msg, at.Line, at.Col)
}
