package dispatch

import (
	"sort"
	"strings"
)

// Suggestion is one ranked completion: replacement text for a range of
// the overall input, with an optional tooltip shown next to it.
type Suggestion struct {
	Range   StringRange
	Text    string
	Tooltip string
}

// Apply substitutes the suggestion into the input it was computed for.
func (s *Suggestion) Apply(input string) string {
	if s.Range.Start == 0 && s.Range.End == len(input) {
		return s.Text
	}
	var b strings.Builder
	b.WriteString(input[:s.Range.Start])
	b.WriteString(s.Text)
	b.WriteString(input[s.Range.End:])
	return b.String()
}

// Expand rewrites the suggestion to cover r, pulling the surrounding
// command text into the replacement so all merged suggestions share one
// range.
func (s *Suggestion) Expand(command string, r StringRange) *Suggestion {
	if r == s.Range {
		return s
	}
	var b strings.Builder
	if r.Start < s.Range.Start {
		b.WriteString(command[r.Start:s.Range.Start])
	}
	b.WriteString(s.Text)
	if r.End > s.Range.End {
		b.WriteString(command[s.Range.End:r.End])
	}
	return &Suggestion{Range: r, Text: b.String(), Tooltip: s.Tooltip}
}

// Suggestions is a merged, deduplicated, ranked completion list whose
// entries all replace the same input range.
type Suggestions struct {
	Range StringRange
	List  []*Suggestion
}

// EmptySuggestions returns a suggestion list with no entries.
func EmptySuggestions() *Suggestions { return &Suggestions{} }

// IsEmpty reports whether no completions were produced.
func (s *Suggestions) IsEmpty() bool { return len(s.List) == 0 }

// MergeSuggestions combines per-node suggestion lists into one ranked
// list over the full command input.
func MergeSuggestions(command string, input []*Suggestions) *Suggestions {
	var nonEmpty []*Suggestions
	for _, s := range input {
		if s != nil && !s.IsEmpty() {
			nonEmpty = append(nonEmpty, s)
		}
	}
	switch len(nonEmpty) {
	case 0:
		return EmptySuggestions()
	case 1:
		return nonEmpty[0]
	}
	var all []*Suggestion
	for _, s := range nonEmpty {
		all = append(all, s.List...)
	}
	return CreateSuggestions(command, all)
}

// CreateSuggestions normalizes raw suggestions to one shared range,
// dedupes by text, and sorts case-insensitively (ties broken
// case-sensitively for a stable order).
func CreateSuggestions(command string, suggestions []*Suggestion) *Suggestions {
	if len(suggestions) == 0 {
		return EmptySuggestions()
	}
	start, end := len(command)+1, 0
	for _, s := range suggestions {
		if s.Range.Start < start {
			start = s.Range.Start
		}
		if s.Range.End > end {
			end = s.Range.End
		}
	}
	r := Between(start, end)
	type key struct {
		text    string
		tooltip string
	}
	seen := make(map[key]struct{}, len(suggestions))
	texts := make([]*Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		expanded := s.Expand(command, r)
		k := key{expanded.Text, expanded.Tooltip}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		texts = append(texts, expanded)
	}
	sort.SliceStable(texts, func(i, j int) bool {
		a, b := strings.ToLower(texts[i].Text), strings.ToLower(texts[j].Text)
		if a != b {
			return a < b
		}
		return texts[i].Text < texts[j].Text
	})
	return &Suggestions{Range: r, List: texts}
}

// SuggestionsBuilder accumulates completions for the input tail
// starting at Start. Builders are per-call and never shared.
type SuggestionsBuilder struct {
	Input          string
	Start          int
	Remaining      string
	remainingLower string
	results        []*Suggestion
}

// NewSuggestionsBuilder creates a builder whose suggestions replace
// input[start:].
func NewSuggestionsBuilder(input string, start int) *SuggestionsBuilder {
	remaining := input[start:]
	return &SuggestionsBuilder{
		Input:          input,
		Start:          start,
		Remaining:      remaining,
		remainingLower: strings.ToLower(remaining),
	}
}

// RemainingLower returns the lowercased input tail, for prefix checks.
func (b *SuggestionsBuilder) RemainingLower() string { return b.remainingLower }

// Suggest adds a completion. Suggesting exactly the remaining input is
// a no-op, as it would change nothing.
func (b *SuggestionsBuilder) Suggest(text string) *SuggestionsBuilder {
	if text == b.Remaining {
		return b
	}
	b.results = append(b.results, &Suggestion{Range: Between(b.Start, len(b.Input)), Text: text})
	return b
}

// SuggestWithTooltip adds a completion with a tooltip.
func (b *SuggestionsBuilder) SuggestWithTooltip(text, tooltip string) *SuggestionsBuilder {
	if text == b.Remaining {
		return b
	}
	b.results = append(b.results, &Suggestion{Range: Between(b.Start, len(b.Input)), Text: text, Tooltip: tooltip})
	return b
}

// Add copies another builder's results into this one.
func (b *SuggestionsBuilder) Add(other *SuggestionsBuilder) *SuggestionsBuilder {
	b.results = append(b.results, other.results...)
	return b
}

// Build merges the accumulated completions into one ranked list.
func (b *SuggestionsBuilder) Build() *Suggestions {
	return CreateSuggestions(b.Input, b.results)
}

// CreateOffset returns a fresh builder over the same input at a
// different start position.
func (b *SuggestionsBuilder) CreateOffset(start int) *SuggestionsBuilder {
	return NewSuggestionsBuilder(b.Input, start)
}

// Restart returns a fresh builder at the same start position.
func (b *SuggestionsBuilder) Restart() *SuggestionsBuilder {
	return b.CreateOffset(b.Start)
}
