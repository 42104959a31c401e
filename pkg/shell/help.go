package shell

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/psaab/cmdgraph/pkg/dispatch"
)

// Candidate is one completion shown in help output.
type Candidate struct {
	Name string
	Desc string
}

// HelpCandidates converts a suggestion list into help candidates,
// carrying tooltips through as descriptions.
func HelpCandidates(s *dispatch.Suggestions) []Candidate {
	candidates := make([]Candidate, 0, len(s.List))
	for _, sg := range s.List {
		candidates = append(candidates, Candidate{Name: sg.Text, Desc: sg.Tooltip})
	}
	return candidates
}

// WriteHelp prints candidates in aligned columns, sorted by name.
func WriteHelp(w io.Writer, candidates []Candidate) {
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Name < candidates[j].Name })
	maxWidth := 20
	for _, c := range candidates {
		if len(c.Name)+2 > maxWidth {
			maxWidth = len(c.Name) + 2
		}
	}
	var sb strings.Builder
	sb.WriteString("Possible completions:\n")
	for _, c := range candidates {
		if c.Desc != "" {
			fmt.Fprintf(&sb, "  %-*s %s\n", maxWidth, c.Name, c.Desc)
		} else {
			fmt.Fprintf(&sb, "  %s\n", c.Name)
		}
	}
	io.WriteString(w, sb.String())
}

// CommonPrefix returns the longest prefix shared by all names.
func CommonPrefix(names []string) string {
	if len(names) == 0 {
		return ""
	}
	prefix := names[0]
	for _, name := range names[1:] {
		for !strings.HasPrefix(name, prefix) {
			prefix = prefix[:len(prefix)-1]
			if prefix == "" {
				return ""
			}
		}
	}
	return prefix
}
