package dispatch

import "strings"

// Builder assembles a subtree fluently before it is frozen into nodes.
// Literal and Argument create the two buildable variants; Then nests
// child builders; Build (or Dispatcher.Register) freezes the subtree.
type Builder struct {
	name        string
	argType     ArgumentType // nil for literal builders
	children    []*Builder
	childNodes  []Node
	command     Command
	requirement Requirement
	contextReq  ContextRequirement
	target      Node
	modifier    RedirectModifier
	forks       bool
	suggestions SuggestionProvider
}

// Literal starts a builder for a node matching the exact keyword name.
func Literal(name string) *Builder {
	return &Builder{name: name}
}

// Argument starts a builder for a node binding a value of the given
// type under name.
func Argument(name string, argType ArgumentType) *Builder {
	return &Builder{name: name, argType: argType}
}

// Then nests child subtrees under this node.
func (b *Builder) Then(children ...*Builder) *Builder {
	b.children = append(b.children, children...)
	return b
}

// ThenNode nests already-built nodes under this node.
func (b *Builder) ThenNode(nodes ...Node) *Builder {
	b.childNodes = append(b.childNodes, nodes...)
	return b
}

// Executes attaches the execution callback.
func (b *Builder) Executes(cmd Command) *Builder {
	b.command = cmd
	return b
}

// Requires gates the node on the caller's identity.
func (b *Builder) Requires(fn Requirement) *Builder {
	b.requirement = fn
	return b
}

// RequiresContext gates the node on in-progress parse state.
func (b *Builder) RequiresContext(fn ContextRequirement) *Builder {
	b.contextReq = fn
	return b
}

// Suggests overrides the argument's completion source. Only valid on
// argument builders; Build fails otherwise.
func (b *Builder) Suggests(p SuggestionProvider) *Builder {
	b.suggestions = p
	return b
}

// Redirect aliases this node to target: execution continues at target's
// subtree with the caller unchanged.
func (b *Builder) Redirect(target Node) *Builder {
	return b.Forward(target, nil, false)
}

// RedirectWith aliases this node to target, transforming the caller
// through a single-source modifier.
func (b *Builder) RedirectWith(target Node, modifier SingleRedirectModifier) *Builder {
	return b.Forward(target, func(c *CommandContext) ([]Source, error) {
		src, err := modifier(c)
		if err != nil {
			return nil, err
		}
		return []Source{src}, nil
	}, false)
}

// Fork redirects to target and fans execution out over every source the
// modifier derives, with per-branch failure isolation.
func (b *Builder) Fork(target Node, modifier RedirectModifier) *Builder {
	return b.Forward(target, modifier, true)
}

// Forward sets the raw redirect wiring.
func (b *Builder) Forward(target Node, modifier RedirectModifier, forks bool) *Builder {
	b.target = target
	b.modifier = modifier
	b.forks = forks
	return b
}

// Build freezes the builder and its children into nodes.
func (b *Builder) Build() (Node, error) {
	if b.target != nil && (len(b.children) > 0 || len(b.childNodes) > 0) {
		return nil, ErrForwardWithChildren
	}
	if b.argType == nil && b.suggestions != nil {
		return nil, ErrLiteralSuggestions
	}

	base := baseNode{
		command:     b.command,
		requirement: b.requirement,
		contextReq:  b.contextReq,
		redirect:    b.target,
		modifier:    b.modifier,
		forks:       b.forks,
	}
	var node Node
	if b.argType != nil {
		node = &ArgumentNode{
			baseNode:          base,
			name:              b.name,
			argType:           b.argType,
			customSuggestions: b.suggestions,
		}
	} else {
		node = &LiteralNode{
			baseNode:     base,
			literal:      b.name,
			literalLower: strings.ToLower(b.name),
		}
	}

	for _, child := range b.children {
		built, err := child.Build()
		if err != nil {
			return nil, err
		}
		if err := node.AddChild(built); err != nil {
			return nil, err
		}
	}
	for _, child := range b.childNodes {
		if err := node.AddChild(child); err != nil {
			return nil, err
		}
	}
	return node, nil
}
