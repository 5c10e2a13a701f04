package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stategraph/stategraph/internal/app/dto"
	"github.com/stategraph/stategraph/internal/core/graph"
	"github.com/stategraph/stategraph/internal/core/record"
	"github.com/stategraph/stategraph/internal/core/state"
	"github.com/stategraph/stategraph/internal/infrastructure/metrics"
)

// RunRecorder persists the audit trail of a finished run. Failures are
// logged and swallowed by the runner; observability never perturbs control
// flow.
type RunRecorder interface {
	Record(ctx context.Context, rec *record.Record) (string, error)
}

// Runner is the compiled, immutable executor of one graph. It is a strict
// sequential interpreter: one node at a time, no parallel execution within
// a run. A single Runner may serve many interleaved or concurrent runs;
// all per-run data lives in the run context, never on the Runner or nodes.
// PRINCIPLES:
// - SRP: Focuses only on the resolution loop and event emission
// - DIP: Recorder and observers are injected abstractions
type Runner struct {
	graphName string
	nodes     map[string]graph.Node
	edges     map[string]string
	resolvers map[string]graph.Resolver
	entry     string
	config    dto.RunConfig
	reducers  state.Reducers
	bus       *EventBus
	recorder  RunRecorder
	logger    *slog.Logger
}

// Option configures a Runner at compile time.
type Option func(*Runner)

// WithMaxIterations caps node executions per run.
func WithMaxIterations(n int) Option {
	return func(r *Runner) { r.config.MaxIterations = n }
}

// WithStreamBuffer sizes the event channel returned by Stream.
func WithStreamBuffer(n int) Option {
	return func(r *Runner) { r.config.StreamBuffer = n }
}

// WithReducers registers per-key merge strategies for state updates.
func WithReducers(reducers state.Reducers) Option {
	return func(r *Runner) { r.reducers = reducers }
}

// WithObserver subscribes an observer to every event of every run.
func WithObserver(o Observer) Option {
	return func(r *Runner) { r.bus.Subscribe(o) }
}

// WithRecorder attaches a durable execution recorder.
func WithRecorder(rec RunRecorder) Option {
	return func(r *Runner) { r.recorder = rec }
}

// WithLogger replaces the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = l
		r.bus.logger = l
	}
}

// NewRunner validates the graph and compiles it into an immutable executor.
// The builder can be discarded or mutated afterwards; the runner keeps its
// own snapshot.
func NewRunner(g *graph.Graph, opts ...Option) (*Runner, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	logger := slog.Default()
	r := &Runner{
		graphName: g.Name(),
		nodes:     make(map[string]graph.Node),
		edges:     make(map[string]string),
		resolvers: make(map[string]graph.Resolver),
		entry:     g.EntryPoint(),
		logger:    logger,
		bus:       NewEventBus(logger),
	}
	for _, name := range g.NodeNames() {
		node, _ := g.NodeByName(name)
		r.nodes[name] = node
		if to, ok := g.StaticEdge(name); ok {
			r.edges[name] = to
		}
		if resolve, ok := g.ResolverFor(name); ok {
			r.resolvers[name] = resolve
		}
	}
	for _, opt := range opts {
		opt(r)
	}
	r.config.Normalize()
	return r, nil
}

// GraphName returns the name of the compiled graph.
func (r *Runner) GraphName() string { return r.graphName }

// runContext owns all per-run mutable data: the state bag, collected node
// results and the event sink. Created fresh for each Invoke/Stream call.
type runContext struct {
	runID   string
	input   state.Values
	st      state.Values
	results []record.NodeResult
	started time.Time
	emit    func(dto.Event)
}

func (r *Runner) newRunContext(initial state.Values, sink func(dto.Event)) *runContext {
	return &runContext{
		runID:   uuid.NewString(),
		input:   initial.Clone(),
		st:      initial.Clone(),
		started: time.Now(),
		emit:    sink,
	}
}

// Invoke runs the graph to completion and returns the final state.
func (r *Runner) Invoke(ctx context.Context, initial state.Values) (state.Values, error) {
	rc := r.newRunContext(initial, r.bus.Publish)
	err := r.run(ctx, rc)
	r.record(ctx, rc, err)
	if err != nil {
		return nil, err
	}
	return rc.st, nil
}

// Stream runs the graph in a background goroutine and returns the ordered
// event sequence. Each call is an independent run; the channel is closed
// when the run finishes. Events are also fanned out to subscribed
// observers.
func (r *Runner) Stream(ctx context.Context, initial state.Values) <-chan dto.Event {
	ch := make(chan dto.Event, r.config.StreamBuffer)
	go func() {
		defer close(ch)
		rc := r.newRunContext(initial, func(ev dto.Event) {
			r.bus.Publish(ev)
			select {
			case ch <- ev:
			case <-ctx.Done():
			}
		})
		err := r.run(ctx, rc)
		r.record(ctx, rc, err)
	}()
	return ch
}

// run drives the resolution loop shared by Invoke and Stream.
func (r *Runner) run(ctx context.Context, rc *runContext) error {
	metrics.IncActiveRuns()
	defer metrics.DecActiveRuns()

	rc.emit(r.event(rc, dto.EventStart, "", nil, nil, nil))
	r.logger.Debug("run started", "graph", r.graphName, "run_id", rc.runID)

	current := r.entry
	for step := 0; ; step++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if step >= r.config.MaxIterations {
			err := fmt.Errorf("%w: %d iterations on graph %s",
				dto.ErrExecutionLimit, r.config.MaxIterations, r.graphName)
			rc.emit(r.event(rc, dto.EventNodeError, current, nil, nil, err))
			return err
		}

		node, ok := r.nodes[current]
		if !ok {
			// Integrity error: the compile step validated the entry point and
			// resolveNext validates every transition, so this is a defect.
			return fmt.Errorf("%w: %s (graph integrity)", dto.ErrUnknownNode, current)
		}

		rc.emit(r.event(rc, dto.EventNodeStart, current, nil, nil, nil))
		cmd, result := r.executeNode(ctx, current, node, rc)
		rc.results = append(rc.results, result)
		metrics.IncNodeExecs()

		if result.ExecutionState != record.StateSuccess {
			metrics.IncNodeFailures()
			err := fmt.Errorf("%w: node %s: %s", dto.ErrNodeFailed, current, result.Error)
			rc.emit(r.event(rc, dto.EventNodeError, current, nil, nil, err))
			return err
		}

		rc.st = r.reducers.Apply(rc.st, cmd.Update)
		rc.emit(r.event(rc, dto.EventNodeComplete, current, cmd.Update, nil, nil))

		next, terminal, err := r.resolveNext(current, cmd, rc.st)
		if err != nil {
			// A resolver naming an unregistered node is handled identically
			// to a node error.
			rc.emit(r.event(rc, dto.EventNodeError, current, nil, nil, err))
			return err
		}
		if terminal {
			break
		}
		current = next
	}

	rc.emit(r.event(rc, dto.EventFinal, "", rc.st, nil, nil))
	r.logger.Debug("run finished", "graph", r.graphName, "run_id", rc.runID,
		"steps", len(rc.results))
	return nil
}

// executeNode runs one node, converting errors and panics into a failed
// NodeResult. Streaming nodes are driven chunk by chunk.
func (r *Runner) executeNode(ctx context.Context, name string, node graph.Node, rc *runContext) (graph.Command, record.NodeResult) {
	result := record.NodeResult{
		NodeName:       name,
		NodeType:       graph.TypeOf(node),
		ExecutionState: record.StateRunning,
		StartTime:      time.Now(),
	}

	var cmd graph.Command
	var err error
	func() {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("panic: %v", p)
			}
		}()
		if streaming, ok := node.(graph.StreamingNode); ok {
			cmd, err = r.driveStream(ctx, name, streaming, rc)
		} else {
			cmd, err = node.Execute(ctx, rc.st)
		}
	}()

	result.EndTime = time.Now()
	switch {
	case err == nil:
		result.ExecutionState = record.StateSuccess
		result.StateUpdate = cmd.Update
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		result.ExecutionState = record.StateCancelled
		result.Error = err.Error()
	default:
		result.ExecutionState = record.StateFailed
		result.Error = err.Error()
	}
	return cmd, result
}

// driveStream consumes a streaming node's chunks, emitting node_streaming
// for each one. The last chunk's command is the one merged into state.
func (r *Runner) driveStream(ctx context.Context, name string, node graph.StreamingNode, rc *runContext) (graph.Command, error) {
	var last graph.Command
	for chunk := range node.ExecuteStream(ctx, rc.st) {
		if chunk.Err != nil {
			return graph.Command{}, chunk.Err
		}
		last = chunk.Command
		rc.emit(r.event(rc, dto.EventNodeStreaming, name, nil, chunk.Command.Update, nil))
		if err := ctx.Err(); err != nil {
			return graph.Command{}, err
		}
	}
	return last, nil
}

// resolveNext determines the node after current: an explicit redirect wins,
// then the conditional-edge resolver, then the static edge. No route at all
// terminates the run, exactly like routing to End.
func (r *Runner) resolveNext(current string, cmd graph.Command, st state.Values) (string, bool, error) {
	target := ""
	switch {
	case cmd.HasRedirect():
		target = cmd.Goto
	default:
		if resolve, ok := r.resolvers[current]; ok {
			target = resolve(st)
		} else if to, ok := r.edges[current]; ok {
			target = to
		}
	}

	if target == "" || target == graph.End {
		return "", true, nil
	}
	if _, ok := r.nodes[target]; !ok {
		return "", false, fmt.Errorf("%w: %s (routed from %s)", dto.ErrUnknownNode, target, current)
	}
	return target, false, nil
}

// event assembles one protocol event.
func (r *Runner) event(rc *runContext, t dto.EventType, node string, output, intermediate state.Values, err error) dto.Event {
	ev := dto.Event{
		Type:         t,
		GraphName:    r.graphName,
		RunID:        rc.runID,
		Node:         node,
		Output:       output,
		Intermediate: intermediate,
		Timestamp:    time.Now(),
	}
	if err != nil {
		ev.Error = err.Error()
	}
	metrics.IncEvent(string(t))
	return ev
}

// record persists the run's audit trail. A recorder failure is logged and
// swallowed; it never aborts the run being recorded.
func (r *Runner) record(ctx context.Context, rc *runContext, runErr error) {
	metrics.IncRuns()
	if runErr != nil {
		metrics.IncRunFailures()
	}
	if r.recorder == nil {
		return
	}

	now := time.Now()
	rec := &record.Record{
		ID:              rc.runID,
		GraphName:       r.graphName,
		InputData:       rc.input,
		OutputResult:    rc.st,
		NodeResults:     rc.results,
		StartTime:       rc.started,
		EndTime:         now,
		DurationSeconds: now.Sub(rc.started).Seconds(),
		Success:         runErr == nil,
		CreatedAt:       now,
	}
	if runErr != nil {
		rec.ErrorMessage = runErr.Error()
	}
	if _, err := r.recorder.Record(ctx, rec); err != nil {
		r.logger.Warn("execution record not persisted",
			"graph", r.graphName, "run_id", rc.runID, "error", err)
	}
}
