package shell

import (
	"strings"
	"testing"

	"github.com/psaab/cmdgraph/pkg/dispatch"
)

func run(result int) dispatch.Command {
	return func(*dispatch.CommandContext) (int, error) { return result, nil }
}

func testDispatcher(t *testing.T) *dispatch.Dispatcher {
	t.Helper()
	d := dispatch.New()
	for _, b := range []*dispatch.Builder{
		dispatch.Literal("show").Then(
			dispatch.Literal("status").Executes(run(1)),
			dispatch.Literal("statistics").Executes(run(1)),
			dispatch.Literal("version").Executes(run(1)),
		),
		dispatch.Literal("shutdown").Executes(run(1)),
	} {
		if _, err := d.Register(b); err != nil {
			t.Fatalf("register: %v", err)
		}
	}
	return d
}

func testShell(t *testing.T) *Shell {
	t.Helper()
	s, err := New(Config{Dispatcher: testDispatcher(t), Stdout: &strings.Builder{}})
	if err != nil {
		t.Fatalf("new shell: %v", err)
	}
	return s
}

func TestNewRequiresDispatcher(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for missing dispatcher")
	}
}

func TestWriteHelp(t *testing.T) {
	var out strings.Builder
	WriteHelp(&out, []Candidate{
		{Name: "version", Desc: "Show version"},
		{Name: "status"},
	})
	want := "Possible completions:\n" +
		"  status\n" +
		"  version              Show version\n"
	if out.String() != want {
		t.Errorf("help output:\n%q\nwant:\n%q", out.String(), want)
	}
}

func TestWriteHelpWideNames(t *testing.T) {
	var out strings.Builder
	WriteHelp(&out, []Candidate{
		{Name: "a-very-long-command-name-indeed", Desc: "long"},
		{Name: "b", Desc: "short"},
	})
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %q", lines)
	}
	// Descriptions start at the same column.
	if strings.Index(lines[1], "long") != strings.Index(lines[2], "short") {
		t.Errorf("descriptions not aligned:\n%s", out.String())
	}
}

func TestCommonPrefix(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  string
	}{
		{name: "empty", names: nil, want: ""},
		{name: "single", names: []string{"status"}, want: "status"},
		{name: "shared", names: []string{"status", "statistics"}, want: "stat"},
		{name: "nothing shared", names: []string{"alpha", "beta"}, want: ""},
		{name: "full overlap", names: []string{"show", "show"}, want: "show"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CommonPrefix(tt.names); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompleterSingleMatch(t *testing.T) {
	s := testShell(t)
	c := &completer{sh: s}

	line := []rune("show v")
	got, length := c.Do(line, len(line))
	if len(got) != 1 || string(got[0]) != "ersion " {
		t.Fatalf("completions = %q, want single \"ersion \"", got)
	}
	if length != 1 {
		t.Errorf("partial length = %d, want 1", length)
	}
}

func TestCompleterCommonPrefix(t *testing.T) {
	s := testShell(t)
	out := &strings.Builder{}
	s.out = out
	c := &completer{sh: s}

	line := []rune("show s")
	got, length := c.Do(line, len(line))
	if len(got) != 1 || string(got[0]) != "tat" {
		t.Fatalf("completions = %q, want shared \"tat\"", got)
	}
	if length != 1 {
		t.Errorf("partial length = %d, want 1", length)
	}
	if !strings.Contains(out.String(), "Possible completions:") {
		t.Errorf("help not shown:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "statistics") || !strings.Contains(out.String(), "status") {
		t.Errorf("help missing candidates:\n%s", out.String())
	}
}

func TestCompleterNoMatch(t *testing.T) {
	s := testShell(t)
	c := &completer{sh: s}

	line := []rune("bogus ")
	if got, _ := c.Do(line, len(line)); got != nil {
		t.Errorf("completions = %q, want none", got)
	}
}

func TestCompleterAmbiguousNoSharedSuffix(t *testing.T) {
	s := testShell(t)
	s.out = &strings.Builder{}
	c := &completer{sh: s}

	// "sho" extends to both "show" and nothing shared beyond "sh"... the
	// registered roots are show and shutdown, sharing only "sh".
	line := []rune("sh")
	got, _ := c.Do(line, len(line))
	if got != nil {
		t.Errorf("completions = %q, want none beyond the typed prefix", got)
	}
}

func TestHelpListener(t *testing.T) {
	s := testShell(t)
	out := &strings.Builder{}
	s.out = out

	// Simulate '?' typed at the end of "show ?".
	line := []rune("show ?")
	cleaned, pos, handled := s.helpListener(line, len(line), '?')
	if !handled {
		t.Fatal("listener did not handle '?'")
	}
	if string(cleaned) != "show " || pos != 5 {
		t.Errorf("cleaned = %q pos = %d, want \"show \" 5", string(cleaned), pos)
	}
	for _, name := range []string{"statistics", "status", "version"} {
		if !strings.Contains(out.String(), name) {
			t.Errorf("help output missing %s:\n%s", name, out.String())
		}
	}
}

func TestHelpListenerNoCandidates(t *testing.T) {
	s := testShell(t)
	out := &strings.Builder{}
	s.out = out

	line := []rune("bogus ?")
	_, _, handled := s.helpListener(line, len(line), '?')
	if !handled {
		t.Fatal("listener did not handle '?'")
	}
	if !strings.Contains(out.String(), "(no help available)") {
		t.Errorf("output = %q", out.String())
	}
}

func TestHelpListenerPassesOtherKeys(t *testing.T) {
	s := testShell(t)
	line := []rune("show")
	got, pos, handled := s.helpListener(line, len(line), 'w')
	if handled {
		t.Fatal("listener consumed a regular key")
	}
	if string(got) != "show" || pos != len(line) {
		t.Errorf("line altered: %q %d", string(got), pos)
	}
}
