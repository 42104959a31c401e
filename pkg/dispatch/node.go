package dispatch

import (
	"context"
	"errors"

	"github.com/psaab/cmdgraph/pkg/reader"
)

// Source identifies the caller a command is resolved and executed for.
// Hosts pass whatever value models their notion of identity (a user, a
// session, a connection) and type-assert it back in callbacks.
type Source = any

// Command is an execution callback attached to a node. It returns a
// host-defined integer outcome.
type Command func(c *CommandContext) (int, error)

// RedirectModifier derives the sources a redirected execution continues
// with. Returning more than one source fans execution out when the node
// is forked.
type RedirectModifier func(c *CommandContext) ([]Source, error)

// SingleRedirectModifier is a RedirectModifier that can only ever
// produce one derived source.
type SingleRedirectModifier func(c *CommandContext) (Source, error)

// Requirement gates a node on the caller's identity.
type Requirement func(src Source) bool

// ContextRequirement gates a node on the in-progress parse state.
type ContextRequirement func(b *ContextBuilder, rd reader.Immutable) bool

// SuggestionProvider overrides an argument node's completion source.
type SuggestionProvider func(ctx context.Context, c *CommandContext, sb *SuggestionsBuilder) (*Suggestions, error)

// Structural tree errors. These indicate an invalid tree definition and
// are never recovered from.
var (
	ErrRootChild           = errors.New("cannot add a root node as a child of any other node")
	ErrForwardWithChildren = errors.New("cannot forward a node with children")
	ErrRootArgument        = errors.New("only literal commands can be registered at the root")
	ErrLiteralSuggestions  = errors.New("literal nodes cannot carry custom suggestions")
)

// Node is a single command-tree node. Exactly three variants exist:
// *RootNode, *LiteralNode and *ArgumentNode.
type Node interface {
	// Name is the child-map key: the keyword for literals, the binding
	// name for arguments, "" for the root.
	Name() string
	// UsageText is the node's rendering in usage strings.
	UsageText() string
	// CanUse reports whether the caller may see and use this node.
	CanUse(src Source) bool
	// CanUseContext reports whether the node applies given the parse
	// state accumulated so far.
	CanUseContext(b *ContextBuilder, rd reader.Immutable) bool
	// Parse matches the node against the reader, appending the matched
	// range (and bound value, for arguments) to the context builder.
	Parse(rd *reader.StringReader, b *ContextBuilder) error
	// Suggest computes the node's completions for the builder's
	// remaining input.
	Suggest(ctx context.Context, c *CommandContext, sb *SuggestionsBuilder) (*Suggestions, error)
	// Examples returns sample inputs the node accepts, used by the
	// ambiguity analyzer.
	Examples() []string

	Children() []Node
	Child(name string) Node
	AddChild(child Node) error
	RemoveChild(name string)
	Command() Command
	Redirect() Node
	RedirectModifier() RedirectModifier
	IsFork() bool
	// RelevantNodes selects the candidate children worth attempting at
	// the reader's position: an exact literal match first (if any),
	// then the argument children.
	RelevantNodes(rd *reader.StringReader) []Node

	base() *baseNode
	validInput(input string) bool
}

// baseNode holds the fields shared by all node variants: the ordered
// child map, the argument-only submap used for relevant-node selection,
// eligibility predicates and redirect wiring.
type baseNode struct {
	children    map[string]Node
	order       []string
	arguments   map[string]*ArgumentNode
	argOrder    []string
	hasLiterals bool

	command     Command
	requirement Requirement
	contextReq  ContextRequirement
	redirect    Node
	modifier    RedirectModifier
	forks       bool
}

func (b *baseNode) base() *baseNode { return b }

// Children returns the child nodes in insertion order.
func (b *baseNode) Children() []Node {
	nodes := make([]Node, 0, len(b.order))
	for _, name := range b.order {
		nodes = append(nodes, b.children[name])
	}
	return nodes
}

// Child returns the child with the given name, or nil.
func (b *baseNode) Child(name string) Node {
	return b.children[name]
}

// AddChild inserts child, or merges it into an existing child with the
// same name: a non-nil incoming command replaces the existing one, and
// the incoming node's children are re-added recursively. Existing
// children are never discarded.
func (b *baseNode) AddChild(child Node) error {
	if _, ok := child.(*RootNode); ok {
		return ErrRootChild
	}
	name := child.Name()
	if existing, ok := b.children[name]; ok {
		if cmd := child.Command(); cmd != nil {
			existing.base().command = cmd
		}
		for _, grandchild := range child.Children() {
			if err := existing.AddChild(grandchild); err != nil {
				return err
			}
		}
		return nil
	}
	if b.children == nil {
		b.children = make(map[string]Node)
	}
	b.children[name] = child
	b.order = append(b.order, name)
	switch c := child.(type) {
	case *LiteralNode:
		b.hasLiterals = true
	case *ArgumentNode:
		if b.arguments == nil {
			b.arguments = make(map[string]*ArgumentNode)
		}
		b.arguments[name] = c
		b.argOrder = append(b.argOrder, name)
	}
	return nil
}

// RemoveChild detaches the named child and its argument-map entry.
// Removing an absent name is a no-op.
func (b *baseNode) RemoveChild(name string) {
	if _, ok := b.children[name]; !ok {
		return
	}
	delete(b.children, name)
	for i, n := range b.order {
		if n == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	if _, ok := b.arguments[name]; ok {
		delete(b.arguments, name)
		for i, n := range b.argOrder {
			if n == name {
				b.argOrder = append(b.argOrder[:i], b.argOrder[i+1:]...)
				break
			}
		}
	}
}

// Command returns the node's execution callback, or nil.
func (b *baseNode) Command() Command { return b.command }

// Redirect returns the node execution continues at instead of this
// node's own children, or nil.
func (b *baseNode) Redirect() Node { return b.redirect }

// RedirectModifier returns the modifier applied when following the
// node's redirect, or nil.
func (b *baseNode) RedirectModifier() RedirectModifier { return b.modifier }

// IsFork reports whether redirect execution fans out per derived source.
func (b *baseNode) IsFork() bool { return b.forks }

// CanUse evaluates the source-eligibility predicate.
func (b *baseNode) CanUse(src Source) bool {
	if b.requirement == nil {
		return true
	}
	return b.requirement(src)
}

// CanUseContext evaluates the context-eligibility predicate.
func (b *baseNode) CanUseContext(cb *ContextBuilder, rd reader.Immutable) bool {
	if b.contextReq == nil {
		return true
	}
	return b.contextReq(cb, rd)
}

// RelevantNodes peeks one whitespace-free fragment ahead. On an exact
// literal match that literal is returned first, followed by all
// argument children; otherwise only the argument children are
// candidates. Non-matching literals are never attempted.
func (b *baseNode) RelevantNodes(rd *reader.StringReader) []Node {
	if b.hasLiterals {
		cursor := rd.Cursor()
		for rd.CanRead() && rd.Peek() != ' ' {
			rd.Skip()
		}
		text := rd.Input()[cursor:rd.Cursor()]
		rd.SetCursor(cursor)
		if lit, ok := b.children[text].(*LiteralNode); ok {
			if len(b.argOrder) == 0 {
				return []Node{lit}
			}
			nodes := make([]Node, 0, len(b.argOrder)+1)
			nodes = append(nodes, lit)
			for _, name := range b.argOrder {
				nodes = append(nodes, b.arguments[name])
			}
			return nodes
		}
	}
	nodes := make([]Node, 0, len(b.argOrder))
	for _, name := range b.argOrder {
		nodes = append(nodes, b.arguments[name])
	}
	return nodes
}

// RootNode is the unnamed entry point of a command tree. It cannot be
// matched against input or added as a child of another node.
type RootNode struct {
	baseNode
}

// NewRoot creates an empty root node.
func NewRoot() *RootNode { return &RootNode{} }

func (n *RootNode) Name() string      { return "" }
func (n *RootNode) UsageText() string { return "" }

func (n *RootNode) Parse(rd *reader.StringReader, b *ContextBuilder) error { return nil }

func (n *RootNode) Suggest(ctx context.Context, c *CommandContext, sb *SuggestionsBuilder) (*Suggestions, error) {
	return EmptySuggestions(), nil
}

func (n *RootNode) Examples() []string { return nil }

func (n *RootNode) validInput(input string) bool { return false }
