package dispatch

import (
	"context"

	"github.com/psaab/cmdgraph/pkg/reader"
)

// ArgumentType is a pluggable argument-value parser. Implementations
// scan a value off the reader, offer completions, and declare example
// inputs for ambiguity analysis.
//
// Parse must tolerate a nil ContextBuilder: the ambiguity analyzer
// probes types against bare example strings with no parse in progress.
type ArgumentType interface {
	Parse(rd *reader.StringReader, b *ContextBuilder) (any, error)
	Suggest(ctx context.Context, c *CommandContext, sb *SuggestionsBuilder) (*Suggestions, error)
	Examples() []string
}

// ArgumentNode matches a typed value and binds it under the node's name.
type ArgumentNode struct {
	baseNode
	name              string
	argType           ArgumentType
	customSuggestions SuggestionProvider
}

// Type returns the node's declared value type.
func (n *ArgumentNode) Type() ArgumentType { return n.argType }

// CustomSuggestions returns the node's suggestion override, or nil.
func (n *ArgumentNode) CustomSuggestions() SuggestionProvider { return n.customSuggestions }

func (n *ArgumentNode) Name() string      { return n.name }
func (n *ArgumentNode) UsageText() string { return "<" + n.name + ">" }

// Parse invokes the value parser and records the bound value together
// with the consumed range.
func (n *ArgumentNode) Parse(rd *reader.StringReader, b *ContextBuilder) error {
	start := rd.Cursor()
	value, err := n.argType.Parse(rd, b)
	if err != nil {
		return err
	}
	parsed := &ParsedArgument{Range: Between(start, rd.Cursor()), Value: value}
	b.WithArgument(n.name, parsed)
	b.WithNode(n, parsed.Range)
	return nil
}

func (n *ArgumentNode) Suggest(ctx context.Context, c *CommandContext, sb *SuggestionsBuilder) (*Suggestions, error) {
	if n.customSuggestions != nil {
		return n.customSuggestions(ctx, c, sb)
	}
	return n.argType.Suggest(ctx, c, sb)
}

func (n *ArgumentNode) Examples() []string { return n.argType.Examples() }

func (n *ArgumentNode) validInput(input string) bool {
	rd := reader.New(input)
	if _, err := n.argType.Parse(rd, nil); err != nil {
		return false
	}
	return !rd.CanRead() || rd.Peek() == ' '
}
