package dispatch

import "github.com/psaab/cmdgraph/pkg/reader"

// StringRange is a half-open [Start, End) span of the input string.
type StringRange struct {
	Start int
	End   int
}

// At returns an empty range at pos.
func At(pos int) StringRange { return StringRange{Start: pos, End: pos} }

// Between returns the range [start, end).
func Between(start, end int) StringRange { return StringRange{Start: start, End: end} }

// Encompassing returns the smallest range covering both a and b.
func Encompassing(a, b StringRange) StringRange {
	r := a
	if b.Start < r.Start {
		r.Start = b.Start
	}
	if b.End > r.End {
		r.End = b.End
	}
	return r
}

// Get returns the spanned substring of s.
func (r StringRange) Get(s string) string { return s[r.Start:r.End] }

// GetFrom returns the spanned substring of a reader's input.
func (r StringRange) GetFrom(rd reader.Immutable) string { return rd.Input()[r.Start:r.End] }

// IsEmpty reports whether the range spans nothing.
func (r StringRange) IsEmpty() bool { return r.Start == r.End }

// Length returns the number of spanned bytes.
func (r StringRange) Length() int { return r.End - r.Start }
