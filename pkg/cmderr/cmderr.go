// Package cmderr defines the syntax-error values produced while scanning
// and parsing command input.
//
// Errors are created through a Type, which couples a message template to
// the cursor position where the problem occurred. The parser and reader
// never format messages themselves; they instantiate a Type with the
// offending values and let the caller render the result.
package cmderr

import (
	"fmt"
	"strings"
)

// ContextAmount is how many characters of input are echoed back before
// the error marker when rendering a positioned error.
const ContextAmount = 10

// Reader is the read-only view of a scanner that a positioned error
// captures its input and cursor from.
type Reader interface {
	Input() string
	Cursor() int
}

// Type is a reusable error template. The message is a fmt format string;
// Create instantiates it with concrete values.
type Type struct {
	format string
}

// NewType creates an error template from a fmt format string.
func NewType(format string) *Type {
	return &Type{format: format}
}

// Create builds a SyntaxError with no position information.
func (t *Type) Create(args ...any) *SyntaxError {
	return &SyntaxError{
		errType: t,
		message: fmt.Sprintf(t.format, args...),
		cursor:  -1,
	}
}

// CreateWithContext builds a SyntaxError positioned at the reader's
// current cursor.
func (t *Type) CreateWithContext(r Reader, args ...any) *SyntaxError {
	return &SyntaxError{
		errType: t,
		message: fmt.Sprintf(t.format, args...),
		input:   r.Input(),
		cursor:  r.Cursor(),
	}
}

// SyntaxError is a positioned scan or parse failure. It records the full
// input and the cursor where the problem was detected; cursor is -1 when
// no position is known.
type SyntaxError struct {
	errType *Type
	message string
	input   string
	cursor  int
}

// Type returns the template this error was created from. Callers compare
// it against the exported Type vars to classify an error.
func (e *SyntaxError) Type() *Type { return e.errType }

// Message returns the rendered message without position context.
func (e *SyntaxError) Message() string { return e.message }

// Input returns the full input the error occurred in, if known.
func (e *SyntaxError) Input() string { return e.input }

// Cursor returns the position of the error, or -1 if unknown.
func (e *SyntaxError) Cursor() int { return e.cursor }

// Context returns the tail of the input leading up to the cursor,
// suffixed with an error marker, or "" when no position is known.
func (e *SyntaxError) Context() string {
	if e.cursor < 0 {
		return ""
	}
	cursor := e.cursor
	if cursor > len(e.input) {
		cursor = len(e.input)
	}
	var b strings.Builder
	if cursor > ContextAmount {
		b.WriteString("...")
	}
	start := cursor - ContextAmount
	if start < 0 {
		start = 0
	}
	b.WriteString(e.input[start:cursor])
	b.WriteString("<--[HERE]")
	return b.String()
}

func (e *SyntaxError) Error() string {
	if e.cursor < 0 {
		return e.message
	}
	return fmt.Sprintf("%s at position %d: %s", e.message, e.cursor, e.Context())
}

// Built-in reader error templates.
var (
	ReaderExpectedStartOfQuote = NewType("Expected quote to start a string")
	ReaderExpectedEndOfQuote   = NewType("Unclosed quoted string")
	ReaderInvalidEscape        = NewType("Invalid escape sequence '%s' in quoted string")
	ReaderInvalidBool          = NewType("Invalid boolean, expected 'true' or 'false' but found '%s'")
	ReaderExpectedBool         = NewType("Expected boolean")
	ReaderInvalidInt           = NewType("Invalid integer '%s'")
	ReaderExpectedInt          = NewType("Expected integer")
	ReaderInvalidInt64         = NewType("Invalid long '%s'")
	ReaderExpectedInt64        = NewType("Expected long")
	ReaderInvalidFloat32       = NewType("Invalid float '%s'")
	ReaderExpectedFloat32      = NewType("Expected float")
	ReaderInvalidFloat64       = NewType("Invalid double '%s'")
	ReaderExpectedFloat64      = NewType("Expected double")
	ReaderExpectedSymbol       = NewType("Expected '%c'")
)

// Built-in parser and dispatcher error templates.
var (
	LiteralIncorrect            = NewType("Expected literal %s")
	DispatcherUnknownCommand    = NewType("Unknown command")
	DispatcherUnknownArgument   = NewType("Incorrect argument for command")
	DispatcherExpectedSeparator = NewType("Expected whitespace to end one argument, but found trailing data")
	DispatcherParseError        = NewType("Could not parse command: %v")
)
