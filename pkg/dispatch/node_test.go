package dispatch_test

import (
	"errors"
	"testing"

	"github.com/psaab/cmdgraph/pkg/argtypes"
	"github.com/psaab/cmdgraph/pkg/dispatch"
	"github.com/psaab/cmdgraph/pkg/reader"
)

func mustBuild(t *testing.T, b *dispatch.Builder) dispatch.Node {
	t.Helper()
	node, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return node
}

func childNames(node dispatch.Node) []string {
	var names []string
	for _, c := range node.Children() {
		names = append(names, c.Name())
	}
	return names
}

func TestAddChildPreservesOrder(t *testing.T) {
	root := dispatch.NewRoot()
	for _, name := range []string{"charlie", "alpha", "bravo"} {
		if err := root.AddChild(mustBuild(t, dispatch.Literal(name))); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	got := childNames(root)
	want := []string{"charlie", "alpha", "bravo"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("children = %v, want insertion order %v", got, want)
		}
	}
}

func TestAddChildMergesGrandchildren(t *testing.T) {
	parent := dispatch.NewRoot()
	if err := parent.AddChild(mustBuild(t, dispatch.Literal("base").
		Then(dispatch.Literal("one").Executes(run(1))))); err != nil {
		t.Fatalf("add first: %v", err)
	}
	if err := parent.AddChild(mustBuild(t, dispatch.Literal("base").
		Then(dispatch.Literal("two").Executes(run(2))))); err != nil {
		t.Fatalf("add second: %v", err)
	}

	base := parent.Child("base")
	if base == nil {
		t.Fatal("merged child missing")
	}
	if len(base.Children()) != 2 {
		t.Fatalf("grandchildren = %v, want one and two", childNames(base))
	}
	if base.Child("one") == nil || base.Child("two") == nil {
		t.Errorf("grandchildren = %v, want one and two", childNames(base))
	}
}

func TestAddChildCommandReplacement(t *testing.T) {
	parent := dispatch.NewRoot()
	if err := parent.AddChild(mustBuild(t, dispatch.Literal("cmd").Executes(run(1)))); err != nil {
		t.Fatalf("add first: %v", err)
	}

	// A bare duplicate keeps the existing command.
	if err := parent.AddChild(mustBuild(t, dispatch.Literal("cmd"))); err != nil {
		t.Fatalf("add bare: %v", err)
	}
	if parent.Child("cmd").Command() == nil {
		t.Fatal("bare duplicate dropped the command")
	}

	// A duplicate with a command replaces it.
	if err := parent.AddChild(mustBuild(t, dispatch.Literal("cmd").Executes(run(2)))); err != nil {
		t.Fatalf("add replacement: %v", err)
	}
	got, err := parent.Child("cmd").Command()(nil)
	if err != nil || got != 2 {
		t.Errorf("command result = (%d, %v), want (2, nil)", got, err)
	}
}

func TestAddChildRejectsRoot(t *testing.T) {
	parent := mustBuild(t, dispatch.Literal("parent"))
	if err := parent.AddChild(dispatch.NewRoot()); !errors.Is(err, dispatch.ErrRootChild) {
		t.Errorf("err = %v, want ErrRootChild", err)
	}
}

func TestRemoveChild(t *testing.T) {
	root := dispatch.NewRoot()
	for _, name := range []string{"a", "b", "c"} {
		if err := root.AddChild(mustBuild(t, dispatch.Literal(name))); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	root.RemoveChild("b")
	got := childNames(root)
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("children = %v, want [a c]", got)
	}
	if root.Child("b") != nil {
		t.Error("removed child still reachable by name")
	}
}

func TestRelevantNodes(t *testing.T) {
	root := dispatch.NewRoot()
	lit := mustBuild(t, dispatch.Literal("status"))
	arg := mustBuild(t, dispatch.Argument("name", argtypes.Word()))
	arg2 := mustBuild(t, dispatch.Argument("count", argtypes.Int()))
	for _, n := range []dispatch.Node{lit, arg, arg2} {
		if err := root.AddChild(n); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "exact literal first", input: "status", want: []string{"status", "name", "count"}},
		{name: "literal with trailing", input: "status extra", want: []string{"status", "name", "count"}},
		{name: "no literal match", input: "other", want: []string{"name", "count"}},
		{name: "prefix is not a match", input: "stat", want: []string{"name", "count"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, n := range root.RelevantNodes(reader.New(tt.input)) {
				got = append(got, n.Name())
			}
			if len(got) != len(tt.want) {
				t.Fatalf("relevant = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("relevant = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestLiteralParseRequiresBoundary(t *testing.T) {
	lit := mustBuild(t, dispatch.Literal("stop"))

	tests := []struct {
		input  string
		ok     bool
		cursor int
	}{
		{input: "stop", ok: true, cursor: 4},
		{input: "stop now", ok: true, cursor: 4},
		{input: "stopped", ok: false, cursor: 0},
		{input: "sto", ok: false, cursor: 0},
		{input: "Stop", ok: false, cursor: 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			rd := reader.New(tt.input)
			ctx := dispatch.NewContextBuilder(nil, nil, lit, 0)
			err := lit.Parse(rd, ctx)
			if tt.ok != (err == nil) {
				t.Fatalf("parse err = %v, want ok=%v", err, tt.ok)
			}
			if rd.Cursor() != tt.cursor {
				t.Errorf("cursor = %d, want %d", rd.Cursor(), tt.cursor)
			}
		})
	}
}

func TestUsageText(t *testing.T) {
	lit := mustBuild(t, dispatch.Literal("show"))
	arg := mustBuild(t, dispatch.Argument("iface", argtypes.Word()))
	if lit.UsageText() != "show" {
		t.Errorf("literal usage = %q", lit.UsageText())
	}
	if arg.UsageText() != "<iface>" {
		t.Errorf("argument usage = %q", arg.UsageText())
	}
}
