// Package reader implements the cursor-based scanner that command
// parsing consumes input through.
//
// A StringReader wraps an immutable input string with a movable cursor.
// Callers save the cursor before a speculative read and restore it on
// failure; all read helpers leave the cursor where scanning stopped and
// report failures as *cmderr.SyntaxError values positioned at the
// offending cursor.
package reader

import (
	"strconv"
	"strings"

	"github.com/psaab/cmdgraph/pkg/cmderr"
)

const syntaxEscape = '\\'

// Immutable is the read-only view of a StringReader handed to predicates
// and error factories that must not advance the cursor.
type Immutable interface {
	Input() string
	Cursor() int
	Remaining() string
	RemainingLength() int
	TotalLength() int
	CanRead() bool
	CanReadN(n int) bool
	Peek() byte
}

// StringReader scans an input string through a movable cursor.
type StringReader struct {
	input  string
	cursor int
}

// New creates a reader positioned at the start of input.
func New(input string) *StringReader {
	return &StringReader{input: input}
}

// Copy returns an independent reader over the same input at the same
// cursor. Parsing speculates on copies so a failed attempt never moves
// the caller's cursor.
func (r *StringReader) Copy() *StringReader {
	return &StringReader{input: r.input, cursor: r.cursor}
}

// Input returns the full input string.
func (r *StringReader) Input() string { return r.input }

// Cursor returns the current cursor position.
func (r *StringReader) Cursor() int { return r.cursor }

// SetCursor moves the cursor to an absolute position.
func (r *StringReader) SetCursor(cursor int) { r.cursor = cursor }

// TotalLength returns the length of the input.
func (r *StringReader) TotalLength() int { return len(r.input) }

// RemainingLength returns how many bytes are left to read.
func (r *StringReader) RemainingLength() int { return len(r.input) - r.cursor }

// Consumed returns the portion of input before the cursor.
func (r *StringReader) Consumed() string { return r.input[:r.cursor] }

// Remaining returns the portion of input at and after the cursor.
func (r *StringReader) Remaining() string { return r.input[r.cursor:] }

// CanRead reports whether at least one byte remains.
func (r *StringReader) CanRead() bool { return r.CanReadN(1) }

// CanReadN reports whether at least n bytes remain.
func (r *StringReader) CanReadN(n int) bool { return r.cursor+n <= len(r.input) }

// Peek returns the byte at the cursor without consuming it.
func (r *StringReader) Peek() byte { return r.input[r.cursor] }

// PeekAt returns the byte offset bytes past the cursor.
func (r *StringReader) PeekAt(offset int) byte { return r.input[r.cursor+offset] }

// Read consumes and returns one byte.
func (r *StringReader) Read() byte {
	c := r.input[r.cursor]
	r.cursor++
	return c
}

// Skip consumes one byte.
func (r *StringReader) Skip() { r.cursor++ }

// SkipWhitespace consumes any run of whitespace at the cursor.
func (r *StringReader) SkipWhitespace() {
	for r.CanRead() && isWhitespace(r.Peek()) {
		r.Skip()
	}
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isAllowedNumber(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == '-'
}

func isAllowedInUnquotedString(c byte) bool {
	return c >= '0' && c <= '9' ||
		c >= 'A' && c <= 'Z' ||
		c >= 'a' && c <= 'z' ||
		c == '_' || c == '-' || c == '.' || c == '+'
}

// IsAllowedInUnquotedString reports whether r may appear in an
// unquoted token.
func IsAllowedInUnquotedString(r rune) bool {
	return r < 128 && isAllowedInUnquotedString(byte(r))
}

func isQuote(c byte) bool {
	return c == '"' || c == '\''
}

// ReadInt scans an integer at the cursor.
func (r *StringReader) ReadInt() (int, error) {
	start := r.cursor
	for r.CanRead() && isAllowedNumber(r.Peek()) {
		r.Skip()
	}
	number := r.input[start:r.cursor]
	if number == "" {
		return 0, cmderr.ReaderExpectedInt.CreateWithContext(r)
	}
	value, err := strconv.Atoi(number)
	if err != nil {
		r.cursor = start
		return 0, cmderr.ReaderInvalidInt.CreateWithContext(r, number)
	}
	return value, nil
}

// ReadInt64 scans a 64-bit integer at the cursor.
func (r *StringReader) ReadInt64() (int64, error) {
	start := r.cursor
	for r.CanRead() && isAllowedNumber(r.Peek()) {
		r.Skip()
	}
	number := r.input[start:r.cursor]
	if number == "" {
		return 0, cmderr.ReaderExpectedInt64.CreateWithContext(r)
	}
	value, err := strconv.ParseInt(number, 10, 64)
	if err != nil {
		r.cursor = start
		return 0, cmderr.ReaderInvalidInt64.CreateWithContext(r, number)
	}
	return value, nil
}

// ReadFloat32 scans a 32-bit float at the cursor.
func (r *StringReader) ReadFloat32() (float32, error) {
	start := r.cursor
	for r.CanRead() && isAllowedNumber(r.Peek()) {
		r.Skip()
	}
	number := r.input[start:r.cursor]
	if number == "" {
		return 0, cmderr.ReaderExpectedFloat32.CreateWithContext(r)
	}
	value, err := strconv.ParseFloat(number, 32)
	if err != nil {
		r.cursor = start
		return 0, cmderr.ReaderInvalidFloat32.CreateWithContext(r, number)
	}
	return float32(value), nil
}

// ReadFloat64 scans a 64-bit float at the cursor.
func (r *StringReader) ReadFloat64() (float64, error) {
	start := r.cursor
	for r.CanRead() && isAllowedNumber(r.Peek()) {
		r.Skip()
	}
	number := r.input[start:r.cursor]
	if number == "" {
		return 0, cmderr.ReaderExpectedFloat64.CreateWithContext(r)
	}
	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		r.cursor = start
		return 0, cmderr.ReaderInvalidFloat64.CreateWithContext(r, number)
	}
	return value, nil
}

// ReadUnquotedString scans a run of plain identifier characters
// (letters, digits, underscore, dash, dot, plus). Never fails; returns
// "" when the cursor is not at such a character.
func (r *StringReader) ReadUnquotedString() string {
	start := r.cursor
	for r.CanRead() && isAllowedInUnquotedString(r.Peek()) {
		r.Skip()
	}
	return r.input[start:r.cursor]
}

// ReadQuotedString scans a string wrapped in single or double quotes,
// honoring backslash escapes of the quote and the backslash itself.
func (r *StringReader) ReadQuotedString() (string, error) {
	if !r.CanRead() {
		return "", nil
	}
	next := r.Peek()
	if !isQuote(next) {
		return "", cmderr.ReaderExpectedStartOfQuote.CreateWithContext(r)
	}
	r.Skip()
	return r.ReadStringUntil(next)
}

// ReadStringUntil scans up to an unescaped terminator, consuming it.
func (r *StringReader) ReadStringUntil(terminator byte) (string, error) {
	var result strings.Builder
	escaped := false
	for r.CanRead() {
		c := r.Read()
		if escaped {
			if c == terminator || c == syntaxEscape {
				result.WriteByte(c)
				escaped = false
			} else {
				r.SetCursor(r.cursor - 1)
				return "", cmderr.ReaderInvalidEscape.CreateWithContext(r, string(c))
			}
		} else if c == syntaxEscape {
			escaped = true
		} else if c == terminator {
			return result.String(), nil
		} else {
			result.WriteByte(c)
		}
	}
	return "", cmderr.ReaderExpectedEndOfQuote.CreateWithContext(r)
}

// ReadString scans either a quoted or an unquoted string, depending on
// what the cursor is at.
func (r *StringReader) ReadString() (string, error) {
	if !r.CanRead() {
		return "", nil
	}
	next := r.Peek()
	if isQuote(next) {
		r.Skip()
		return r.ReadStringUntil(next)
	}
	return r.ReadUnquotedString(), nil
}

// ReadBool scans the literal words "true" or "false".
func (r *StringReader) ReadBool() (bool, error) {
	start := r.cursor
	value, err := r.ReadString()
	if err != nil {
		return false, err
	}
	if value == "" {
		return false, cmderr.ReaderExpectedBool.CreateWithContext(r)
	}
	switch value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		r.cursor = start
		return false, cmderr.ReaderInvalidBool.CreateWithContext(r, value)
	}
}

// Expect consumes c at the cursor or fails.
func (r *StringReader) Expect(c byte) error {
	if !r.CanRead() || r.Peek() != c {
		return cmderr.ReaderExpectedSymbol.CreateWithContext(r, c)
	}
	r.Skip()
	return nil
}
