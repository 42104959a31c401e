package dispatch

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts dispatcher activity and exposes it as a
// prometheus.Collector. Install one with Dispatcher.SetMetrics and
// register it with a prometheus registry; collection reads the live
// counters on each scrape.
type Metrics struct {
	parsesTotal        atomic.Uint64
	parseErrorsTotal   atomic.Uint64
	executionsTotal    atomic.Uint64
	executionErrsTotal atomic.Uint64
	forkBranchesTotal  atomic.Uint64
	suggestionsTotal   atomic.Uint64

	parsesDesc        *prometheus.Desc
	parseErrorsDesc   *prometheus.Desc
	executionsDesc    *prometheus.Desc
	executionErrsDesc *prometheus.Desc
	forkBranchesDesc  *prometheus.Desc
	suggestionsDesc   *prometheus.Desc
}

// NewMetrics creates an empty metrics sink.
func NewMetrics() *Metrics {
	return &Metrics{
		parsesDesc: prometheus.NewDesc(
			"cmdgraph_parses_total",
			"Total parse calls.",
			nil, nil,
		),
		parseErrorsDesc: prometheus.NewDesc(
			"cmdgraph_parse_errors_total",
			"Total parse calls that recorded candidate errors.",
			nil, nil,
		),
		executionsDesc: prometheus.NewDesc(
			"cmdgraph_executions_total",
			"Total command executions.",
			nil, nil,
		),
		executionErrsDesc: prometheus.NewDesc(
			"cmdgraph_execution_errors_total",
			"Total command executions that returned an error.",
			nil, nil,
		),
		forkBranchesDesc: prometheus.NewDesc(
			"cmdgraph_fork_branches_total",
			"Total derived branches produced by forked redirects.",
			nil, nil,
		),
		suggestionsDesc: prometheus.NewDesc(
			"cmdgraph_suggestion_requests_total",
			"Total suggestion computations.",
			nil, nil,
		),
	}
}

func (m *Metrics) observeParse(hadErrors bool) {
	m.parsesTotal.Add(1)
	if hadErrors {
		m.parseErrorsTotal.Add(1)
	}
}

func (m *Metrics) observeExecute(failed bool) {
	m.executionsTotal.Add(1)
	if failed {
		m.executionErrsTotal.Add(1)
	}
}

func (m *Metrics) observeForkBranches(n int) {
	m.forkBranchesTotal.Add(uint64(n))
}

func (m *Metrics) observeSuggest() {
	m.suggestionsTotal.Add(1)
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	ch <- m.parsesDesc
	ch <- m.parseErrorsDesc
	ch <- m.executionsDesc
	ch <- m.executionErrsDesc
	ch <- m.forkBranchesDesc
	ch <- m.suggestionsDesc
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(m.parsesDesc, prometheus.CounterValue, float64(m.parsesTotal.Load()))
	ch <- prometheus.MustNewConstMetric(m.parseErrorsDesc, prometheus.CounterValue, float64(m.parseErrorsTotal.Load()))
	ch <- prometheus.MustNewConstMetric(m.executionsDesc, prometheus.CounterValue, float64(m.executionsTotal.Load()))
	ch <- prometheus.MustNewConstMetric(m.executionErrsDesc, prometheus.CounterValue, float64(m.executionErrsTotal.Load()))
	ch <- prometheus.MustNewConstMetric(m.forkBranchesDesc, prometheus.CounterValue, float64(m.forkBranchesTotal.Load()))
	ch <- prometheus.MustNewConstMetric(m.suggestionsDesc, prometheus.CounterValue, float64(m.suggestionsTotal.Load()))
}
