package shell

import (
	"context"
	"strings"

	"github.com/psaab/cmdgraph/pkg/dispatch"
)

// completer adapts dispatcher suggestions to readline tab completion.
type completer struct {
	sh *Shell
}

// complete computes suggestions for the input up to pos.
func (s *Shell) complete(text string, pos int) *dispatch.Suggestions {
	ctx, cancel := context.WithTimeout(context.Background(), s.suggestTimeout)
	defer cancel()
	parse := s.dispatcher.Parse(text[:pos], s.source)
	suggestions, err := s.dispatcher.SuggestAt(ctx, parse, pos)
	if err != nil {
		return dispatch.EmptySuggestions()
	}
	return suggestions
}

func (c *completer) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	suggestions := c.sh.complete(text, len(text))
	if suggestions.IsEmpty() {
		return nil, 0
	}

	// The token being completed is whatever the suggestions replace.
	partial := text[suggestions.Range.Start:]

	names := make([]string, 0, len(suggestions.List))
	for _, sg := range suggestions.List {
		if strings.HasPrefix(sg.Text, partial) {
			names = append(names, sg.Text)
		}
	}
	if len(names) == 0 {
		return nil, 0
	}

	if len(names) == 1 {
		suffix := names[0][len(partial):]
		return [][]rune{[]rune(suffix + " ")}, len(partial)
	}

	// Multiple matches: show descriptions above the prompt and fill in
	// the unambiguous part.
	WriteHelp(c.sh.stdout(), HelpCandidates(suggestions))
	cp := CommonPrefix(names)
	suffix := cp[len(partial):]
	if suffix == "" {
		return nil, 0
	}
	return [][]rune{[]rune(suffix)}, len(partial)
}
