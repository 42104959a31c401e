package dispatch

import (
	"context"
	"strings"

	"github.com/psaab/cmdgraph/pkg/cmderr"
	"github.com/psaab/cmdgraph/pkg/reader"
)

// LiteralNode matches one exact keyword token.
type LiteralNode struct {
	baseNode
	literal      string
	literalLower string
}

// Literal returns the keyword this node matches.
func (n *LiteralNode) Literal() string { return n.literal }

func (n *LiteralNode) Name() string      { return n.literal }
func (n *LiteralNode) UsageText() string { return n.literal }

// Parse matches the keyword at the cursor. The keyword must be followed
// by a separator or end of input; a partial or longer token does not
// match.
func (n *LiteralNode) Parse(rd *reader.StringReader, b *ContextBuilder) error {
	start := rd.Cursor()
	end := n.parseLiteral(rd)
	if end > -1 {
		b.WithNode(n, Between(start, end))
		return nil
	}
	return cmderr.LiteralIncorrect.CreateWithContext(rd, n.literal)
}

// parseLiteral consumes the keyword and returns the end cursor, or -1
// leaving the cursor untouched.
func (n *LiteralNode) parseLiteral(rd *reader.StringReader) int {
	start := rd.Cursor()
	if rd.CanReadN(len(n.literal)) {
		end := start + len(n.literal)
		if rd.Input()[start:end] == n.literal {
			rd.SetCursor(end)
			if !rd.CanRead() || rd.Peek() == ' ' {
				return end
			}
			rd.SetCursor(start)
		}
	}
	return -1
}

func (n *LiteralNode) Suggest(ctx context.Context, c *CommandContext, sb *SuggestionsBuilder) (*Suggestions, error) {
	if strings.HasPrefix(n.literalLower, sb.RemainingLower()) {
		return sb.Suggest(n.literal).Build(), nil
	}
	return EmptySuggestions(), nil
}

func (n *LiteralNode) Examples() []string { return []string{n.literal} }

func (n *LiteralNode) validInput(input string) bool {
	return n.parseLiteral(reader.New(input)) > -1
}
