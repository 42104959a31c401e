package dispatch

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()
	m.observeParse(false)
	m.observeParse(true)
	m.observeExecute(false)
	m.observeExecute(true)
	m.observeForkBranches(3)
	m.observeSuggest()

	tests := []struct {
		name string
		got  uint64
		want uint64
	}{
		{name: "parses", got: m.parsesTotal.Load(), want: 2},
		{name: "parse errors", got: m.parseErrorsTotal.Load(), want: 1},
		{name: "executions", got: m.executionsTotal.Load(), want: 2},
		{name: "execution errors", got: m.executionErrsTotal.Load(), want: 1},
		{name: "fork branches", got: m.forkBranchesTotal.Load(), want: 3},
		{name: "suggestions", got: m.suggestionsTotal.Load(), want: 1},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}

func TestMetricsCollect(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(m); err != nil {
		t.Fatalf("register: %v", err)
	}
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) != 6 {
		t.Errorf("gathered %d metric families, want 6", len(families))
	}
}

func TestDispatcherObservesMetrics(t *testing.T) {
	d := New()
	m := NewMetrics()
	d.SetMetrics(m)
	node, err := Literal("noop").Executes(func(*CommandContext) (int, error) { return 1, nil }).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := d.root.AddChild(node); err != nil {
		t.Fatalf("add child: %v", err)
	}

	if _, err := d.Execute("noop", nil); err != nil {
		t.Fatalf("execute: %v", err)
	}
	d.Execute("unknown", nil)

	if got := m.parsesTotal.Load(); got != 2 {
		t.Errorf("parses = %d, want 2", got)
	}
	if got := m.executionsTotal.Load(); got != 2 {
		t.Errorf("executions = %d, want 2", got)
	}
	if got := m.executionErrsTotal.Load(); got != 1 {
		t.Errorf("execution errors = %d, want 1", got)
	}
}
