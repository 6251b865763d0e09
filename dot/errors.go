package dot

import (
	"fmt"
	"strings"
)

// ParseError describes why a DOT document could not be parsed and where.
type ParseError struct {
	Filename string
	// Offset is the byte offset into the input.
	Offset int
	// Line is the 1-based line number.
	Line int
	// Column is the 1-based column, counted in characters.
	Column int
	// Expected lists the alternatives that would have been accepted at this position.
	Expected []string
	// Found is the text at the error position, empty at the end of the input.
	Found string
	// Message is set for errors that are not a simple mismatch, such as unsupported constructs.
	Message string

	// fatal errors are not recovered from by trying another alternative.
	fatal bool
}

func (e *ParseError) Error() string {
	var what string
	switch {
	case e.Message != "":
		what = e.Message
	case len(e.Expected) > 0:
		found := "end of input"
		if e.Found != "" {
			found = fmt.Sprintf("%q", e.Found)
		}
		what = fmt.Sprintf("expected %s, found %s", strings.Join(e.Expected, " or "), found)
	default:
		what = "invalid syntax"
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, what)
}
