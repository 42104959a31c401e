// Package dispatch implements a typed, hierarchical command grammar:
// a tree of literal and argument nodes that raw input is resolved
// against.
//
// This is the single source of truth for the three core algorithms:
//
//   - parsing: walk the tree against a cursor, binding typed argument
//     values and backtracking on failed candidates
//   - execution: run the bound command chain, following redirects and
//     fanning out forked branches with isolated failure handling
//   - suggestion: concurrently collect and merge ranked completions
//     for every node reachable at a cursor position
//
// Hosts define their own vocabulary with the Literal and Argument
// builders, register it on a Dispatcher, and supply argument types
// (pkg/argtypes or their own), execution callbacks, and a source value
// representing the caller. The package performs no I/O and keeps no
// state between calls beyond the registered tree.
package dispatch
