package dispatch_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/psaab/cmdgraph/pkg/argtypes"
	"github.com/psaab/cmdgraph/pkg/dispatch"
)

type admin struct{}

func isAdmin(src dispatch.Source) bool {
	_, ok := src.(*admin)
	return ok
}

func buildUsageTree(t *testing.T) *dispatch.Dispatcher {
	t.Helper()
	d := dispatch.New()
	mustRegister(t, d, dispatch.Literal("help").Executes(run(1)))
	mustRegister(t, d, dispatch.Literal("interface").Then(
		dispatch.Argument("name", argtypes.Word()).Executes(run(1)).Then(
			dispatch.Literal("up").Executes(run(1)),
			dispatch.Literal("down").Executes(run(1)),
		),
	))
	mustRegister(t, d, dispatch.Literal("reload").
		Requires(isAdmin).
		Executes(run(1)))
	mustRegister(t, d, dispatch.Literal("again").Redirect(d.Root()))
	return d
}

func TestAllUsage(t *testing.T) {
	d := buildUsageTree(t)

	got := d.AllUsage(d.Root(), &caller{}, false)
	want := []string{
		"help",
		"interface <name>",
		"interface <name> up",
		"interface <name> down",
		"reload",
		"again ...",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("usage mismatch (-want +got):\n%s", diff)
	}
}

func TestAllUsageRestricted(t *testing.T) {
	d := buildUsageTree(t)

	got := d.AllUsage(d.Root(), &caller{}, true)
	for _, line := range got {
		if line == "reload" {
			t.Fatal("restricted usage leaked an impermissible command")
		}
	}

	got = d.AllUsage(d.Root(), &admin{}, true)
	found := false
	for _, line := range got {
		if line == "reload" {
			found = true
		}
	}
	if !found {
		t.Error("admin usage is missing the gated command")
	}
}

func TestSmartUsage(t *testing.T) {
	d := buildUsageTree(t)

	got := d.SmartUsage(d.Root(), &admin{})
	byName := make(map[string]string, len(got))
	for _, u := range got {
		byName[u.Node.Name()] = u.Text
	}

	want := map[string]string{
		"help":      "help",
		"interface": "interface <name> [up|down]",
		"reload":    "reload",
		"again":     "again ...",
	}
	if diff := cmp.Diff(want, byName); diff != "" {
		t.Errorf("smart usage mismatch (-want +got):\n%s", diff)
	}
}

func TestSmartUsageAlternativesRequired(t *testing.T) {
	d := dispatch.New()
	mustRegister(t, d, dispatch.Literal("mode").Then(
		dispatch.Literal("fast").Executes(run(1)),
		dispatch.Literal("safe").Executes(run(1)),
	))

	got := d.SmartUsage(d.Root(), &caller{})
	if len(got) != 1 {
		t.Fatalf("usages = %v, want one", got)
	}
	if got[0].Text != "mode (fast|safe)" {
		t.Errorf("text = %q, want %q", got[0].Text, "mode (fast|safe)")
	}
}

func TestFindAmbiguities(t *testing.T) {
	// The word argument accepts both literals' example inputs, but the
	// literals do not accept each other ("foo" against "foobar" fails
	// the token boundary, "foobar" is not "foo").
	d := dispatch.New()
	mustRegister(t, d, dispatch.Literal("cmd").Then(
		dispatch.Literal("foo").Executes(run(1)),
		dispatch.Literal("foobar").Executes(run(1)),
		dispatch.Argument("text", argtypes.Word()).Executes(run(2)),
	))

	type finding struct {
		parent, child, sibling string
		examples               []string
	}
	var findings []finding
	d.FindAmbiguities(func(parent, child, sibling dispatch.Node, examples []string) {
		findings = append(findings, finding{
			parent:   parent.Name(),
			child:    child.Name(),
			sibling:  sibling.Name(),
			examples: examples,
		})
	})

	// Each literal's example leaks into the argument; the word
	// examples are not valid input for either literal.
	want := []finding{
		{parent: "cmd", child: "foo", sibling: "text", examples: []string{"foo"}},
		{parent: "cmd", child: "foobar", sibling: "text", examples: []string{"foobar"}},
	}
	if diff := cmp.Diff(want, findings, cmp.AllowUnexported(finding{})); diff != "" {
		t.Errorf("findings mismatch (-want +got):\n%s", diff)
	}
}

func TestFindAmbiguitiesCleanTree(t *testing.T) {
	d := dispatch.New()
	mustRegister(t, d, dispatch.Literal("one").Then(
		dispatch.Literal("alpha").Executes(run(1)),
		dispatch.Literal("beta").Executes(run(1)),
	))

	calls := 0
	d.FindAmbiguities(func(dispatch.Node, dispatch.Node, dispatch.Node, []string) {
		calls++
	})
	if calls != 0 {
		t.Errorf("found %d ambiguities in a clean tree", calls)
	}
}
