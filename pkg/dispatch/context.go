package dispatch

import (
	"fmt"
)

// ParsedArgument is one bound value and the input range it was matched
// from.
type ParsedArgument struct {
	Range StringRange
	Value any
}

// ParsedNode is one matched node and its input range.
type ParsedNode struct {
	Node  Node
	Range StringRange
}

// SuggestionContext names the node whose children are the completion
// candidates at a cursor, and the input position completions start at.
type SuggestionContext struct {
	Parent Node
	Start  int
}

// ContextBuilder accumulates the bound path during a single parse
// attempt. Builders are created fresh per attempt and owned by the
// parse call; they are never shared across concurrent parses.
type ContextBuilder struct {
	dispatcher *Dispatcher
	source     Source
	rootNode   Node
	args       map[string]*ParsedArgument
	nodes      []*ParsedNode
	command    Command
	child      *ContextBuilder
	span       StringRange
	modifier   RedirectModifier
	forks      bool
}

// NewContextBuilder creates a builder rooted at rootNode, spanning
// nothing yet, starting at the given input position.
func NewContextBuilder(d *Dispatcher, source Source, rootNode Node, start int) *ContextBuilder {
	return &ContextBuilder{
		dispatcher: d,
		source:     source,
		rootNode:   rootNode,
		args:       make(map[string]*ParsedArgument),
		span:       At(start),
	}
}

// Source returns the caller identity the parse runs for.
func (b *ContextBuilder) Source() Source { return b.source }

// WithSource replaces the caller identity.
func (b *ContextBuilder) WithSource(src Source) *ContextBuilder {
	b.source = src
	return b
}

// RootNode returns the node this builder's path is rooted at.
func (b *ContextBuilder) RootNode() Node { return b.rootNode }

// Arguments returns the values bound so far, keyed by argument name.
func (b *ContextBuilder) Arguments() map[string]*ParsedArgument { return b.args }

// Nodes returns the matched path so far.
func (b *ContextBuilder) Nodes() []*ParsedNode { return b.nodes }

// Span returns the input range matched so far.
func (b *ContextBuilder) Span() StringRange { return b.span }

// Child returns the builder for the subtree behind a redirect, or nil.
func (b *ContextBuilder) Child() *ContextBuilder { return b.child }

// WithArgument binds a parsed value under name.
func (b *ContextBuilder) WithArgument(name string, parsed *ParsedArgument) *ContextBuilder {
	b.args[name] = parsed
	return b
}

// WithCommand records the execution callback of the last matched node.
func (b *ContextBuilder) WithCommand(cmd Command) *ContextBuilder {
	b.command = cmd
	return b
}

// WithNode appends a matched node, extends the bound span and adopts
// the node's redirect-modifier and fork flag.
func (b *ContextBuilder) WithNode(node Node, r StringRange) *ContextBuilder {
	b.nodes = append(b.nodes, &ParsedNode{Node: node, Range: r})
	b.span = Encompassing(b.span, r)
	b.modifier = node.RedirectModifier()
	b.forks = node.IsFork()
	return b
}

// WithChild attaches the builder for the path behind a redirect.
func (b *ContextBuilder) WithChild(child *ContextBuilder) *ContextBuilder {
	b.child = child
	return b
}

// Copy returns an independent builder sharing no mutable state, so a
// failed sibling attempt cannot leak bindings into the next one.
func (b *ContextBuilder) Copy() *ContextBuilder {
	cp := &ContextBuilder{
		dispatcher: b.dispatcher,
		source:     b.source,
		rootNode:   b.rootNode,
		args:       make(map[string]*ParsedArgument, len(b.args)),
		nodes:      append([]*ParsedNode(nil), b.nodes...),
		command:    b.command,
		child:      b.child,
		span:       b.span,
		modifier:   b.modifier,
		forks:      b.forks,
	}
	for k, v := range b.args {
		cp.args[k] = v
	}
	return cp
}

// Build freezes the builder chain into an executable context.
func (b *ContextBuilder) Build(input string) *CommandContext {
	var child *CommandContext
	if b.child != nil {
		child = b.child.Build(input)
	}
	return &CommandContext{
		source:   b.source,
		input:    input,
		args:     b.args,
		command:  b.command,
		rootNode: b.rootNode,
		nodes:    b.nodes,
		span:     b.span,
		child:    child,
		modifier: b.modifier,
		forks:    b.forks,
	}
}

// FindSuggestionContext locates the parent node whose children are the
// completion candidates at cursor.
func (b *ContextBuilder) FindSuggestionContext(cursor int) (*SuggestionContext, error) {
	if b.span.Start > cursor {
		return nil, fmt.Errorf("cannot find node before cursor %d", cursor)
	}
	if b.span.End < cursor {
		if b.child != nil {
			return b.child.FindSuggestionContext(cursor)
		}
		if len(b.nodes) > 0 {
			last := b.nodes[len(b.nodes)-1]
			return &SuggestionContext{Parent: last.Node, Start: last.Range.End + 1}, nil
		}
		return &SuggestionContext{Parent: b.rootNode, Start: b.span.Start}, nil
	}
	prev := b.rootNode
	for _, pn := range b.nodes {
		if pn.Range.Start <= cursor && cursor <= pn.Range.End {
			return &SuggestionContext{Parent: prev, Start: pn.Range.Start}, nil
		}
		prev = pn.Node
	}
	if prev == nil {
		return nil, fmt.Errorf("cannot find node before cursor %d", cursor)
	}
	return &SuggestionContext{Parent: prev, Start: b.span.Start}, nil
}

// CommandContext is the frozen result of a successful parse: the bound
// path handed to execution callbacks.
type CommandContext struct {
	source   Source
	input    string
	args     map[string]*ParsedArgument
	command  Command
	rootNode Node
	nodes    []*ParsedNode
	span     StringRange
	child    *CommandContext
	modifier RedirectModifier
	forks    bool
}

// Source returns the caller identity, as transformed by any redirects
// traversed so far.
func (c *CommandContext) Source() Source { return c.source }

// Input returns the full command input string.
func (c *CommandContext) Input() string { return c.input }

// Command returns the node's execution callback, or nil.
func (c *CommandContext) Command() Command { return c.command }

// RootNode returns the node this context's path is rooted at.
func (c *CommandContext) RootNode() Node { return c.rootNode }

// Nodes returns the matched path.
func (c *CommandContext) Nodes() []*ParsedNode { return c.nodes }

// Span returns the input range this context covers.
func (c *CommandContext) Span() StringRange { return c.span }

// Child returns the context behind a redirect, or nil.
func (c *CommandContext) Child() *CommandContext { return c.child }

// LastChild returns the deepest context in the redirect chain.
func (c *CommandContext) LastChild() *CommandContext {
	result := c
	for result.child != nil {
		result = result.child
	}
	return result
}

// RedirectModifier returns the modifier adopted from the redirecting
// node, or nil.
func (c *CommandContext) RedirectModifier() RedirectModifier { return c.modifier }

// IsForked reports whether this context fans execution out.
func (c *CommandContext) IsForked() bool { return c.forks }

// HasNodes reports whether any node was matched at this level.
func (c *CommandContext) HasNodes() bool { return len(c.nodes) > 0 }

// Argument returns the raw bound value for name.
func (c *CommandContext) Argument(name string) (any, bool) {
	pa, ok := c.args[name]
	if !ok {
		return nil, false
	}
	return pa.Value, true
}

// CopyFor returns a context identical to c but executing for a
// different source.
func (c *CommandContext) CopyFor(src Source) *CommandContext {
	cp := *c
	cp.source = src
	return &cp
}

// GetArgument returns the bound value for name, asserted to T.
func GetArgument[T any](c *CommandContext, name string) (T, error) {
	var zero T
	pa, ok := c.args[name]
	if !ok {
		return zero, fmt.Errorf("no argument %q in command context", name)
	}
	value, ok := pa.Value.(T)
	if !ok {
		return zero, fmt.Errorf("argument %q is %T, not %T", name, pa.Value, zero)
	}
	return value, nil
}
