// Package metrics publishes engine counters via expvar.
package metrics

import (
	"expvar"
)

// Run / node counters.
var (
	runsTotal        = new(expvar.Int)
	runFailuresTotal = new(expvar.Int)
	nodeExecsTotal   = new(expvar.Int)
	nodeFailsTotal   = new(expvar.Int)
	activeRuns       = new(expvar.Int)
)

// Event counters keyed by event type.
var eventsTotal = expvar.NewMap("stategraph_events_total")

func init() {
	expvar.Publish("stategraph_runs_total", runsTotal)
	expvar.Publish("stategraph_run_failures_total", runFailuresTotal)
	expvar.Publish("stategraph_node_executions_total", nodeExecsTotal)
	expvar.Publish("stategraph_node_failures_total", nodeFailsTotal)
	expvar.Publish("stategraph_active_runs", activeRuns)
}

func IncRuns()        { runsTotal.Add(1) }
func IncRunFailures() { runFailuresTotal.Add(1) }
func IncNodeExecs()   { nodeExecsTotal.Add(1) }
func IncNodeFailures() { nodeFailsTotal.Add(1) }
func IncActiveRuns()  { activeRuns.Add(1) }
func DecActiveRuns()  { activeRuns.Add(-1) }

func IncEvent(eventType string) { eventsTotal.Add(eventType, 1) }
