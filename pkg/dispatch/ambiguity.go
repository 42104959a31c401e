package dispatch

import "sort"

// AmbiguityConsumer receives one finding per ambiguous sibling pair:
// the examples of child that sibling also accepts as valid input.
// Findings are diagnostics, never errors; they block nothing.
type AmbiguityConsumer func(parent, child, sibling Node, examples []string)

// FindAmbiguities walks the whole tree reporting every sibling pair
// whose accepted inputs overlap, as witnessed by the children's
// declared example strings.
//
// The search is quadratic in siblings times examples. It is meant as a
// design-time diagnostic over a finished tree, not something to run
// per request.
func (d *Dispatcher) FindAmbiguities(consumer AmbiguityConsumer) {
	findAmbiguities(d.root, consumer)
}

// FindAmbiguities reports overlaps in the subtree rooted at node.
func FindAmbiguities(node Node, consumer AmbiguityConsumer) {
	findAmbiguities(node, consumer)
}

func findAmbiguities(node Node, consumer AmbiguityConsumer) {
	children := node.Children()
	for _, child := range children {
		for _, sibling := range children {
			if child == sibling {
				continue
			}
			var matches []string
			seen := make(map[string]struct{})
			for _, input := range child.Examples() {
				if _, ok := seen[input]; ok {
					continue
				}
				if sibling.validInput(input) {
					seen[input] = struct{}{}
					matches = append(matches, input)
				}
			}
			if len(matches) > 0 {
				sort.Strings(matches)
				consumer(node, child, sibling, matches)
			}
		}
		findAmbiguities(child, consumer)
	}
}
