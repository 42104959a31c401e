package dispatch

import "strings"

const (
	argumentSeparator  = " "
	usageOptionalOpen  = "["
	usageOptionalClose = "]"
	usageRequiredOpen  = "("
	usageRequiredClose = ")"
	usageOr            = "|"
)

// Usage pairs a child node with its rendered usage string.
type Usage struct {
	Node Node
	Text string
}

// AllUsage flattens every commandable path under node into one usage
// string per path, in child insertion order. Redirects render as an
// arrow to the target (or "..." for the root) instead of recursing.
// With restricted set, paths the source cannot use are omitted.
func (d *Dispatcher) AllUsage(node Node, src Source, restricted bool) []string {
	var result []string
	d.addUsage(node, src, &result, "", restricted)
	return result
}

func (d *Dispatcher) addUsage(node Node, src Source, result *[]string, prefix string, restricted bool) {
	if restricted && !node.CanUse(src) {
		return
	}
	if node.Command() != nil {
		*result = append(*result, prefix)
	}
	if redirect := node.Redirect(); redirect != nil {
		target := "-> " + redirect.UsageText()
		if redirect == Node(d.root) {
			target = "..."
		}
		if prefix == "" {
			*result = append(*result, node.UsageText()+argumentSeparator+target)
		} else {
			*result = append(*result, prefix+argumentSeparator+target)
		}
		return
	}
	for _, child := range node.Children() {
		childPrefix := child.UsageText()
		if prefix != "" {
			childPrefix = prefix + argumentSeparator + child.UsageText()
		}
		d.addUsage(child, src, result, childPrefix, restricted)
	}
}

// SmartUsage renders one compact usage string per usable child of
// node, collapsing single-child chains and folding alternatives into
// (a|b|c) groups, with optional parts in brackets.
func (d *Dispatcher) SmartUsage(node Node, src Source) []Usage {
	var result []Usage
	optional := node.Command() != nil
	for _, child := range node.Children() {
		if !child.CanUse(src) {
			continue
		}
		if text := d.smartUsage(child, src, optional, false); text != "" {
			result = append(result, Usage{Node: child, Text: text})
		}
	}
	return result
}

func (d *Dispatcher) smartUsage(node Node, src Source, optional, deep bool) string {
	if !node.CanUse(src) {
		return ""
	}

	self := node.UsageText()
	if optional {
		self = usageOptionalOpen + node.UsageText() + usageOptionalClose
	}
	childOptional := node.Command() != nil
	if deep {
		return self
	}

	if redirect := node.Redirect(); redirect != nil {
		target := "-> " + redirect.UsageText()
		if redirect == Node(d.root) {
			target = "..."
		}
		return self + argumentSeparator + target
	}

	var children []Node
	for _, child := range node.Children() {
		if child.CanUse(src) {
			children = append(children, child)
		}
	}
	switch {
	case len(children) == 1:
		if usage := d.smartUsage(children[0], src, childOptional, childOptional); usage != "" {
			return self + argumentSeparator + usage
		}
	case len(children) > 1:
		// Distinct child usages fold into one alternatives group;
		// identical ones collapse to a single entry.
		seen := make(map[string]struct{})
		var childUsage []string
		for _, child := range children {
			usage := d.smartUsage(child, src, childOptional, true)
			if usage == "" {
				continue
			}
			if _, ok := seen[usage]; ok {
				continue
			}
			seen[usage] = struct{}{}
			childUsage = append(childUsage, usage)
		}
		if len(childUsage) == 1 {
			return self + argumentSeparator + childUsage[0]
		}
		if len(childUsage) > 1 {
			var alternatives []string
			for _, child := range children {
				alternatives = append(alternatives, child.UsageText())
			}
			openTok, closeTok := usageRequiredOpen, usageRequiredClose
			if childOptional {
				openTok, closeTok = usageOptionalOpen, usageOptionalClose
			}
			return self + argumentSeparator + openTok + strings.Join(alternatives, usageOr) + closeTok
		}
	}
	return self
}
