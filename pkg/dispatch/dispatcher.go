package dispatch

import (
	"errors"
	"sort"

	"github.com/psaab/cmdgraph/pkg/cmderr"
	"github.com/psaab/cmdgraph/pkg/reader"
)

// ResultConsumer observes every completed execution branch: forked
// branches report individually, a plain execution reports once.
type ResultConsumer func(c *CommandContext, success bool, result int)

// ParseResults is the outcome of resolving input against the tree: the
// bound path (possibly partial), the reader positioned after the last
// match, and the per-node errors of failed candidates.
type ParseResults struct {
	Context *ContextBuilder
	Reader  *reader.StringReader
	Errors  map[Node]*cmderr.SyntaxError
}

// Dispatcher owns a command tree and resolves, executes and completes
// input against it. Register the vocabulary before any concurrent
// Parse/Execute/Suggest calls begin; mutation must not race with
// parsing.
type Dispatcher struct {
	root     *RootNode
	consumer ResultConsumer
	metrics  *Metrics
}

// New creates a dispatcher with an empty root.
func New() *Dispatcher {
	return &Dispatcher{root: NewRoot()}
}

// Root returns the tree's root node.
func (d *Dispatcher) Root() *RootNode { return d.root }

// SetConsumer installs the per-branch completion callback.
func (d *Dispatcher) SetConsumer(consumer ResultConsumer) { d.consumer = consumer }

// SetMetrics installs a metrics sink. Pass nil to disable.
func (d *Dispatcher) SetMetrics(m *Metrics) { d.metrics = m }

func (d *Dispatcher) consume(c *CommandContext, success bool, result int) {
	if d.consumer != nil {
		d.consumer(c, success, result)
	}
}

// Register builds a top-level literal command and adds it to the root.
// The returned node is the anchor for redirects.
func (d *Dispatcher) Register(b *Builder) (Node, error) {
	if b.argType != nil {
		return nil, ErrRootArgument
	}
	node, err := b.Build()
	if err != nil {
		return nil, err
	}
	if err := d.root.AddChild(node); err != nil {
		return nil, err
	}
	return node, nil
}

// Parse resolves input for the given caller. The result is always
// non-nil: a failed or partial parse carries the per-node errors and
// the best-effort bound path, which Suggest builds on.
func (d *Dispatcher) Parse(input string, src Source) *ParseResults {
	return d.ParseReader(reader.New(input), src)
}

// ParseReader is Parse over an existing reader, which may be positioned
// mid-input.
func (d *Dispatcher) ParseReader(rd *reader.StringReader, src Source) *ParseResults {
	ctx := NewContextBuilder(d, src, d.root, rd.Cursor())
	results := d.parseNodes(d.root, rd, ctx)
	if d.metrics != nil {
		d.metrics.observeParse(len(results.Errors) > 0)
	}
	return results
}

func (d *Dispatcher) parseNodes(node Node, original *reader.StringReader, contextSoFar *ContextBuilder) *ParseResults {
	src := contextSoFar.Source()
	var errs map[Node]*cmderr.SyntaxError
	var potentials []*ParseResults

	for _, child := range node.RelevantNodes(original) {
		if !child.CanUse(src) {
			continue
		}
		if !child.CanUseContext(contextSoFar, original) {
			continue
		}
		context := contextSoFar.Copy()
		rd := original.Copy()

		err := child.Parse(rd, context)
		if err == nil && rd.CanRead() && rd.Peek() != ' ' {
			err = cmderr.DispatcherExpectedSeparator.CreateWithContext(rd)
		}
		if err != nil {
			// A failed candidate never aborts its siblings; the error
			// is kept for reporting and suggestions.
			if errs == nil {
				errs = make(map[Node]*cmderr.SyntaxError, 1)
			}
			errs[child] = asSyntaxError(err, rd)
			continue
		}

		context.WithCommand(child.Command())
		more := 2
		if child.Redirect() != nil {
			more = 1
		}
		if rd.CanReadN(more) {
			rd.Skip()
			if redirect := child.Redirect(); redirect != nil {
				childContext := NewContextBuilder(d, src, redirect, rd.Cursor())
				parsed := d.parseNodes(redirect, rd, childContext)
				context.WithChild(parsed.Context)
				return &ParseResults{Context: context, Reader: parsed.Reader, Errors: parsed.Errors}
			}
			potentials = append(potentials, d.parseNodes(child, rd, context))
		} else {
			potentials = append(potentials, &ParseResults{Context: context, Reader: rd})
		}
	}

	if len(potentials) > 0 {
		if len(potentials) > 1 {
			// Prefer a fully consumed parse, then an error-free one.
			sort.SliceStable(potentials, func(i, j int) bool {
				a, b := potentials[i], potentials[j]
				aDone, bDone := !a.Reader.CanRead(), !b.Reader.CanRead()
				if aDone != bDone {
					return aDone
				}
				aClean, bClean := len(a.Errors) == 0, len(b.Errors) == 0
				if aClean != bClean {
					return aClean
				}
				return false
			})
		}
		return potentials[0]
	}

	return &ParseResults{Context: contextSoFar, Reader: original, Errors: errs}
}

// asSyntaxError passes positioned errors through and wraps anything
// else (a misbehaving argument type) at the reader's position.
func asSyntaxError(err error, rd *reader.StringReader) *cmderr.SyntaxError {
	var se *cmderr.SyntaxError
	if errors.As(err, &se) {
		return se
	}
	return cmderr.DispatcherParseError.CreateWithContext(rd, err)
}

// Execute parses and runs input for the given caller.
//
// The integer result is the callback's outcome for a plain execution,
// or the count of successful branches for a forked one. Forked branch
// failures are aggregated into the returned error (errors.Join) and do
// not stop sibling branches; on a non-forked path the first failure
// aborts.
func (d *Dispatcher) Execute(input string, src Source) (int, error) {
	return d.ExecuteParsed(d.Parse(input, src))
}

// ExecuteParsed runs an already parsed command.
func (d *Dispatcher) ExecuteParsed(parse *ParseResults) (int, error) {
	result, err := d.executeParsed(parse)
	if d.metrics != nil {
		d.metrics.observeExecute(err != nil)
	}
	return result, err
}

func (d *Dispatcher) executeParsed(parse *ParseResults) (int, error) {
	if parse.Reader.CanRead() {
		switch {
		case len(parse.Errors) > 0:
			return 0, deepestError(parse.Errors)
		case parse.Context.Span().IsEmpty():
			return 0, cmderr.DispatcherUnknownCommand.CreateWithContext(parse.Reader)
		default:
			return 0, cmderr.DispatcherUnknownArgument.CreateWithContext(parse.Reader)
		}
	}

	command := parse.Reader.Input()
	original := parse.Context.Build(command)

	var (
		result     int
		successes  int
		branchErrs []error
		forked     bool
		found      bool
	)
	contexts := []*CommandContext{original}
	var next []*CommandContext

	for contexts != nil {
		for _, c := range contexts {
			child := c.Child()
			if child != nil {
				forked = forked || c.IsForked()
				if !child.HasNodes() {
					continue
				}
				found = true
				modifier := c.RedirectModifier()
				if modifier == nil {
					next = append(next, child.CopyFor(c.Source()))
					continue
				}
				sources, err := modifier(c)
				if err != nil {
					d.consume(c, false, 0)
					if !forked {
						return 0, err
					}
					branchErrs = append(branchErrs, err)
					continue
				}
				for _, s := range sources {
					next = append(next, child.CopyFor(s))
				}
				if d.metrics != nil {
					d.metrics.observeForkBranches(len(sources))
				}
			} else if cmd := c.Command(); cmd != nil {
				found = true
				value, err := cmd(c)
				if err != nil {
					d.consume(c, false, 0)
					if !forked {
						return 0, err
					}
					branchErrs = append(branchErrs, err)
					continue
				}
				result += value
				successes++
				d.consume(c, true, value)
			}
		}
		contexts, next = next, nil
	}

	if !found {
		d.consume(original, false, 0)
		return 0, cmderr.DispatcherUnknownCommand.CreateWithContext(parse.Reader)
	}
	if forked {
		return successes, errors.Join(branchErrs...)
	}
	return result, nil
}

// deepestError picks the recorded error that consumed the most input,
// the most specific diagnosis among the attempted branches.
func deepestError(errs map[Node]*cmderr.SyntaxError) *cmderr.SyntaxError {
	var best *cmderr.SyntaxError
	for _, e := range errs {
		switch {
		case best == nil:
			best = e
		case e.Cursor() > best.Cursor():
			best = e
		case e.Cursor() == best.Cursor() && e.Message() < best.Message():
			// Deterministic pick when several candidates failed at the
			// same position.
			best = e
		}
	}
	return best
}

// Path returns the chain of node names leading from the root to target,
// or nil if target is not in the tree. Redirects are not followed.
func (d *Dispatcher) Path(target Node) []string {
	var lists [][]Node
	addPaths(d.root, &lists, nil)
	for _, list := range lists {
		if list[len(list)-1] == target {
			path := make([]string, 0, len(list)-1)
			for _, n := range list {
				if n != Node(d.root) {
					path = append(path, n.Name())
				}
			}
			return path
		}
	}
	return nil
}

func addPaths(node Node, result *[][]Node, parents []Node) {
	current := append(append([]Node(nil), parents...), node)
	*result = append(*result, current)
	for _, child := range node.Children() {
		addPaths(child, result, current)
	}
}

// FindNode walks the tree along a chain of node names. Returns nil as
// soon as a name is missing.
func (d *Dispatcher) FindNode(path []string) Node {
	var node Node = d.root
	for _, name := range path {
		node = node.Child(name)
		if node == nil {
			return nil
		}
	}
	return node
}
