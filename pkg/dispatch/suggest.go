package dispatch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Suggest computes ranked completions at the end of the parsed input.
func (d *Dispatcher) Suggest(ctx context.Context, parse *ParseResults) (*Suggestions, error) {
	return d.SuggestAt(ctx, parse, parse.Reader.TotalLength())
}

// SuggestAt computes ranked completions at an arbitrary cursor
// position.
//
// Every candidate node's suggestion call runs as its own task, since a
// value parser may need to consult an external resource; results are
// joined and merged after all tasks finish, so the ranking never
// depends on completion order. Cancelling ctx cancels outstanding
// tasks.
func (d *Dispatcher) SuggestAt(ctx context.Context, parse *ParseResults, cursor int) (*Suggestions, error) {
	if d.metrics != nil {
		d.metrics.observeSuggest()
	}
	contextBuilder := parse.Context
	suggestionCtx, err := contextBuilder.FindSuggestionContext(cursor)
	if err != nil {
		return nil, err
	}
	parent := suggestionCtx.Parent
	start := suggestionCtx.Start
	if cursor < start {
		start = cursor
	}

	full := parse.Reader.Input()
	truncated := full[:cursor]
	cc := contextBuilder.Build(truncated)

	children := parent.Children()
	results := make([]*Suggestions, len(children))
	g, gctx := errgroup.WithContext(ctx)
	for i, node := range children {
		i, node := i, node
		if !node.CanUse(contextBuilder.Source()) {
			continue
		}
		g.Go(func() error {
			s, err := node.Suggest(gctx, cc, NewSuggestionsBuilder(truncated, start))
			if err != nil {
				// A failing provider contributes nothing; its siblings
				// still complete.
				return nil
			}
			results[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return MergeSuggestions(full, results), nil
}
