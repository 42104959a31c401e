package argtypes

import (
	"context"
	"strings"

	"github.com/psaab/cmdgraph/pkg/dispatch"
	"github.com/psaab/cmdgraph/pkg/reader"
)

// StringKind selects how much of the input a StringType consumes.
type StringKind int

const (
	// SingleWord consumes one unquoted token.
	SingleWord StringKind = iota
	// QuotablePhrase consumes one token, or a quoted phrase with escapes.
	QuotablePhrase
	// GreedyPhrase consumes everything to the end of the input.
	GreedyPhrase
)

// StringType parses string arguments.
type StringType struct {
	Kind StringKind
}

// Word returns a string type that reads a single unquoted token.
func Word() StringType { return StringType{Kind: SingleWord} }

// String returns a string type that reads one token or a quoted phrase.
func String() StringType { return StringType{Kind: QuotablePhrase} }

// Greedy returns a string type that reads the rest of the input.
func Greedy() StringType { return StringType{Kind: GreedyPhrase} }

func (t StringType) Parse(rd *reader.StringReader, _ *dispatch.ContextBuilder) (any, error) {
	switch t.Kind {
	case GreedyPhrase:
		text := rd.Remaining()
		rd.SetCursor(rd.TotalLength())
		return text, nil
	case SingleWord:
		return rd.ReadUnquotedString(), nil
	default:
		return rd.ReadString()
	}
}

func (StringType) Suggest(_ context.Context, _ *dispatch.CommandContext, sb *dispatch.SuggestionsBuilder) (*dispatch.Suggestions, error) {
	return dispatch.EmptySuggestions(), nil
}

func (t StringType) Examples() []string {
	switch t.Kind {
	case GreedyPhrase:
		return []string{"word", "words with spaces", "\"and symbols\""}
	case SingleWord:
		return []string{"word", "words_with_underscores"}
	default:
		return []string{"\"quoted phrase\"", "word", "\"\""}
	}
}

func (t StringType) String() string {
	switch t.Kind {
	case GreedyPhrase:
		return "string()"
	case SingleWord:
		return "word()"
	default:
		return "phrase()"
	}
}

// GetString returns the bound string argument name.
func GetString(c *dispatch.CommandContext, name string) (string, error) {
	return dispatch.GetArgument[string](c, name)
}

// EscapeIfRequired quotes and escapes input when it contains characters
// that cannot appear in an unquoted token.
func EscapeIfRequired(input string) string {
	for _, r := range input {
		if !reader.IsAllowedInUnquotedString(r) {
			return escape(input)
		}
	}
	return input
}

func escape(input string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range input {
		if r == '\\' || r == '"' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}
